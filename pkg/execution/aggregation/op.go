package aggregation

import "fmt"

// Op identifies an aggregate function.
type Op int

const (
	Min Op = iota
	Max
	Sum
	Avg
	Count
)

func (o Op) String() string {
	switch o {
	case Min:
		return "min"
	case Max:
		return "max"
	case Sum:
		return "sum"
	case Avg:
		return "avg"
	case Count:
		return "count"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// NoGrouping marks an Aggregator as ungrouped: every input tuple folds into
// a single synthetic group.
const NoGrouping = -1
