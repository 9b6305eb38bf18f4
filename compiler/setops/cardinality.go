package setops

import (
	"fmt"
	"math"

	"github.com/glossopoeia/settype/compiler/types"
)

// A count of values that saturates at Unbounded.
type Count uint64

const Unbounded = Count(math.MaxUint64)

func (c Count) IsUnbounded() bool {
	return c == Unbounded
}

func (c Count) String() string {
	if c.IsUnbounded() {
		return "unbounded"
	}
	return fmt.Sprint(uint64(c))
}

func (c Count) add(o Count) Count {
	if c > Unbounded-o {
		return Unbounded
	}
	return c + o
}

func (c Count) mul(o Count) Count {
	if c == 0 || o == 0 {
		return 0
	}
	if c > Unbounded/o {
		return Unbounded
	}
	return c * o
}

// The number of values in the type, or Unbounded when there are too many to
// count. Struct instances count every combination of their field values.
func Cardinality(t types.Type) Count {
	switch tt := t.(type) {
	case types.Never:
		return 0
	case types.Any:
		return Unbounded
	case *types.Union:
		res := Count(0)
		for _, m := range tt.Items() {
			res = res.add(Cardinality(m))
		}
		return res
	case types.NumLiteral, types.StrLiteral:
		return 1
	case types.IntInterval:
		if math.IsInf(tt.Min(), 0) || math.IsInf(tt.Max(), 0) {
			return Unbounded
		}
		span := tt.Max() - tt.Min() + 1
		if span >= math.MaxUint64 {
			return Unbounded
		}
		return Count(span)
	case *types.Instance:
		res := Count(1)
		for _, f := range tt.Fields() {
			res = res.mul(Cardinality(f))
		}
		return res
	case types.AllNumbers, types.Interval, types.NonIntInterval,
		types.AllStrings, types.StrExcept, types.AllStructs, types.StructExcept:
		return Unbounded
	default:
		panic(fmt.Sprintf("setops: unknown type variant %T", t))
	}
}
