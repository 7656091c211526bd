package primitives

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilepathHashIsStable(t *testing.T) {
	p := Filepath("/tmp/some/table.dat")
	require.Equal(t, p.Hash(), p.Hash())
}

func TestFilepathHashDiffersByPath(t *testing.T) {
	a := Filepath("/tmp/a.dat")
	b := Filepath("/tmp/b.dat")
	require.NotEqual(t, a.Hash(), b.Hash())
}

func TestFilepathString(t *testing.T) {
	p := Filepath("/tmp/table.dat")
	require.Equal(t, "/tmp/table.dat", p.String())
}

func TestFilepathAbsResolvesRelative(t *testing.T) {
	p := Filepath("table.dat")
	abs, err := p.Abs()
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(abs.String()))

	want, err := filepath.Abs("table.dat")
	require.NoError(t, err)
	require.Equal(t, want, abs.String())
}

func TestFilepathAbsIsStableForHashing(t *testing.T) {
	rel := Filepath("table.dat")
	absOnce, err := rel.Abs()
	require.NoError(t, err)
	absTwice, err := rel.Abs()
	require.NoError(t, err)
	require.Equal(t, absOnce.Hash(), absTwice.Hash())
}
