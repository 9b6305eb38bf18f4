package ranges

import (
	"fmt"
	"math"

	"github.com/glossopoeia/settype/compiler/category"
	"github.com/glossopoeia/settype/compiler/types"
	"github.com/rjNemo/underscore"
)

// The possible results of a boolean operator applied to every pair of values
// drawn from two types.
type Truth int

const (
	// No pair of values exists.
	Vacuous Truth = iota
	DefinitelyTrue
	DefinitelyFalse
	Either
)

func TruthOf(someTrue bool, someFalse bool) Truth {
	switch {
	case someTrue && someFalse:
		return Either
	case someTrue:
		return DefinitelyTrue
	case someFalse:
		return DefinitelyFalse
	default:
		return Vacuous
	}
}

func (t Truth) String() string {
	switch t {
	case Vacuous:
		return "vacuous"
	case DefinitelyTrue:
		return "true"
	case DefinitelyFalse:
		return "false"
	case Either:
		return "either"
	default:
		panic(fmt.Sprintf("ranges: invalid truth %d", int(t)))
	}
}

func (t Truth) Negate() Truth {
	switch t {
	case DefinitelyTrue:
		return DefinitelyFalse
	case DefinitelyFalse:
		return DefinitelyTrue
	default:
		return t
	}
}

// The possible results of l < r over the numbers of the two types. Values of
// other categories are ignored; comparisons with NaN are always false.
func Less(l types.Type, r types.Type) Truth {
	return compare(l, r, SomeLess, SomeGreaterEqual)
}

func LessEqual(l types.Type, r types.Type) Truth {
	return compare(l, r, SomeLessEqual, SomeGreater)
}

func Greater(l types.Type, r types.Type) Truth {
	return compare(l, r, SomeGreater, SomeLessEqual)
}

func GreaterEqual(l types.Type, r types.Type) Truth {
	return compare(l, r, SomeGreaterEqual, SomeLess)
}

type bounds struct {
	rng     Range
	ordered bool
	nan     bool
}

func numberBounds(t types.Type) []bounds {
	if types.IsAny(t) {
		t = types.AllNumbers{}
	}
	nums := underscore.Filter(types.Members(t), func(v types.Value) bool { return v.Category() == category.Number })
	return underscore.Map(nums, func(v types.Value) bounds {
		switch nt := v.(type) {
		case types.AllNumbers:
			inf := math.Inf(1)
			return bounds{Range{-inf, inf, false, false}, true, true}
		case types.NumLiteral:
			if nt.IsNaN() {
				return bounds{nan: true}
			}
		}
		rng, err := NewRange(v.(types.NumberType))
		if err != nil {
			panic(err)
		}
		return bounds{rng: rng, ordered: true}
	})
}

func compare(l types.Type, r types.Type, holds func(Range, Range) bool, fails func(Range, Range) bool) Truth {
	someTrue, someFalse := false, false
	rbs := numberBounds(r)
	for _, lb := range numberBounds(l) {
		for _, rb := range rbs {
			if lb.nan || rb.nan {
				someFalse = true
			}
			if lb.ordered && rb.ordered {
				someTrue = someTrue || holds(lb.rng, rb.rng)
				someFalse = someFalse || fails(lb.rng, rb.rng)
			}
		}
	}
	return TruthOf(someTrue, someFalse)
}
