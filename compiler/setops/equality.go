package setops

import (
	"fmt"

	"github.com/glossopoeia/settype/compiler/ranges"
	"github.com/glossopoeia/settype/compiler/types"
	"github.com/rjNemo/underscore"
)

// Which outcomes comparing a value of one type with a value of another for
// equality can have. The two outcomes are independent bits.
type Equality int

const (
	Neither      Equality = 0
	SomeEqual    Equality = 1
	SomeNotEqual Equality = 2
	Both                  = SomeEqual | SomeNotEqual
)

func (e Equality) String() string {
	switch e {
	case Neither:
		return "neither"
	case SomeEqual:
		return "some-equal"
	case SomeNotEqual:
		return "some-not-equal"
	case Both:
		return "both"
	default:
		panic(fmt.Sprintf("setops: invalid equality %d", int(e)))
	}
}

// Classify the pairs of values drawn from the two types: whether some pair is
// equal, and whether some pair is not. Neither is only possible when one of the
// types is empty.
func ValueEqual(l types.Type, r types.Type) Equality {
	if types.IsNever(l) || types.IsNever(r) {
		return Neither
	}

	common := Intersect(l, r)
	selfEqual := !types.IsNever(common) && !neverSelfEqual(common)
	res := Neither
	if selfEqual {
		res |= SomeEqual
	}
	if !selfEqual || Cardinality(l) != 1 || Cardinality(r) != 1 {
		res |= SomeNotEqual
	}
	return res
}

// Whether no value of the type is equal to itself, which holds for NaN and for
// structs holding NaN.
func neverSelfEqual(t types.Type) bool {
	switch tt := t.(type) {
	case types.NumLiteral:
		return tt.IsNaN()
	case *types.Instance:
		return underscore.Any(tt.Fields(), neverSelfEqual)
	case *types.Union:
		return underscore.All(tt.Items(), func(v types.Value) bool { return neverSelfEqual(v) })
	default:
		return false
	}
}

// The possible results of the == operator on values of the two types.
func Equal(l types.Type, r types.Type) ranges.Truth {
	eq := ValueEqual(l, r)
	return ranges.TruthOf(eq&SomeEqual != 0, eq&SomeNotEqual != 0)
}

// The possible results of the != operator on values of the two types.
func NotEqual(l types.Type, r types.Type) ranges.Truth {
	eq := ValueEqual(l, r)
	return ranges.TruthOf(eq&SomeNotEqual != 0, eq&SomeEqual != 0)
}
