package ranges

import (
	"fmt"
	"math"

	"github.com/glossopoeia/settype/compiler/types"
)

// The order bounds of a number primitive. Integrality is not tracked: an
// integer interval and an interval with the same bounds have the same range.
type Range struct {
	Min, Max                   float64
	MinExclusive, MaxExclusive bool
}

// Returned when a number type has no range, because it contains NaN, which is
// unordered.
type RangeError struct {
	Type types.NumberType
}

func (e RangeError) Error() string {
	return fmt.Sprintf("ranges: %v contains NaN and has no order bounds", e.Type)
}

// Create the range of a number primitive.
func NewRange(t types.NumberType) (Range, error) {
	switch tt := t.(type) {
	case types.NumLiteral:
		if tt.IsNaN() {
			return Range{}, RangeError{t}
		}
		return Range{tt.Value(), tt.Value(), false, false}, nil
	case types.IntInterval:
		return Range{tt.Min(), tt.Max(), math.IsInf(tt.Min(), 0), math.IsInf(tt.Max(), 0)}, nil
	case types.NonIntInterval:
		return Range{tt.Min(), tt.Max(), true, true}, nil
	case types.Interval:
		return Range{tt.Min(), tt.Max(), tt.MinOpen(), tt.MaxOpen()}, nil
	case types.AllNumbers:
		return Range{}, RangeError{t}
	default:
		panic(fmt.Sprintf("ranges: unknown number variant %T", t))
	}
}

func (r Range) String() string {
	open, close := "[", "]"
	if r.MinExclusive {
		open = "("
	}
	if r.MaxExclusive {
		close = ")"
	}
	return fmt.Sprintf("%s%s,%s%s", open, types.FormatNumber(r.Min), types.FormatNumber(r.Max), close)
}

// Whether some value of l is less than some value of r.
func SomeLess(l Range, r Range) bool {
	return l.Min < r.Max
}

// Whether some value of l is less than or equal to some value of r.
func SomeLessEqual(l Range, r Range) bool {
	return SomeLess(l, r) || l.Min == r.Max && !l.MinExclusive && !r.MaxExclusive
}

func SomeGreater(l Range, r Range) bool {
	return SomeLess(r, l)
}

func SomeGreaterEqual(l Range, r Range) bool {
	return SomeLessEqual(r, l)
}
