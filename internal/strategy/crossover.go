package strategy

import "math"

// comparisonEpsilon is the relative tolerance under which two derived values
// are treated as equal. It keeps rounding noise on flat series from being
// read as a cross.
const comparisonEpsilon = 1e-9

type relation int

const (
	relationUnknown relation = iota
	relationBelow
	relationEqual
	relationAbove
)

type crossDirection int

const (
	crossNone crossDirection = iota
	crossUp
	crossDown
)

func compare(a, b float64) relation {
	tolerance := comparisonEpsilon * math.Max(1, math.Max(math.Abs(a), math.Abs(b)))

	switch {
	case a-b > tolerance:
		return relationAbove
	case b-a > tolerance:
		return relationBelow
	default:
		return relationEqual
	}
}

// crossover remembers how two series related on the previous bar.
type crossover struct {
	prev relation
	// unknownCrosses makes the first observed relation count as a cross, as if
	// the series had been equal before both were populated.
	unknownCrosses bool
}

// observe records the relation of a to b and reports whether a crossed b.
// A cross up needs a previous relation of below or equal and a current one of above.
func (c *crossover) observe(a, b float64) crossDirection {
	current := compare(a, b)
	prev := c.prev
	c.prev = current

	crossable := func(from relation) bool {
		return prev == from || prev == relationEqual || (prev == relationUnknown && c.unknownCrosses)
	}

	switch {
	case current == relationAbove && crossable(relationBelow):
		return crossUp
	case current == relationBelow && crossable(relationAbove):
		return crossDown
	default:
		return crossNone
	}
}

// reset drops the previous relation.
func (c *crossover) reset() {
	c.prev = relationUnknown
}
