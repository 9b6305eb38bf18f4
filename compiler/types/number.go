package types

import (
	"fmt"
	"math"
	"strconv"

	"github.com/glossopoeia/settype/compiler/category"
)

// A number type is a value type over the reals. The number line here is the
// extended reals plus NaN. The infinities are not integers: an integer bound of
// ±Inf means the range is unbounded on that side, and ±Inf values belong only
// to literals, to AllNumbers, and to intervals with an inclusive infinite bound.
type NumberType interface {
	Value
	isNumber()
}

const (
	rankNumLiteral = iota
	rankIntInterval
	rankNonIntInterval
	rankInterval
	rankAllNumbers
)

// Whether the number is a finite integer.
func IsInteger(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x) && x == math.Trunc(x)
}

// Whether the number can bound an integer or non-integer range: a finite
// integer or one of the infinities.
func IsIntegralBound(x float64) bool {
	return math.IsInf(x, 0) || IsInteger(x)
}

func FormatNumber(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// Negative zero equals zero but formats as -0, so it is never stored.
func positiveZero(x float64) float64 {
	if x == 0 {
		return 0
	}
	return x
}

// The set of all numbers, including NaN and the infinities.
type AllNumbers struct{}

func (AllNumbers) Category() category.Category { return category.Number }
func (AllNumbers) Signature() string           { return "number" }
func (AllNumbers) String() string              { return "number" }
func (AllNumbers) isType()                     {}
func (AllNumbers) isNumber()                   {}
func (AllNumbers) variantRank() int            { return rankAllNumbers }

// A single number, which may be NaN or one of the infinities.
type NumLiteral struct {
	value float64
}

// Create a number literal.
func NewLiteral(v float64) NumLiteral {
	return NumLiteral{positiveZero(v)}
}

func (l NumLiteral) Value() float64 { return l.value }
func (l NumLiteral) IsNaN() bool    { return math.IsNaN(l.value) }

func (NumLiteral) Category() category.Category { return category.Number }
func (l NumLiteral) Signature() string         { return FormatNumber(l.value) }
func (l NumLiteral) String() string            { return l.Signature() }
func (NumLiteral) isType()                     {}
func (NumLiteral) isNumber()                   {}
func (NumLiteral) variantRank() int            { return rankNumLiteral }

// A continuous range of reals with open or closed bounds. Contains both the
// integers and the non-integers between its bounds. An infinite bound that is
// closed includes the infinity itself.
type Interval struct {
	min, max         float64
	minOpen, maxOpen bool
}

// Create an interval, panicking if the bounds break the interval invariants:
// no NaN bounds, min strictly below max, and no open range spanning exactly one
// unit between two integers, which must be a NonIntInterval instead.
func MustInterval(min, max float64, minOpen, maxOpen bool) Interval {
	if math.IsNaN(min) || math.IsNaN(max) {
		panic("types: interval bounds cannot be NaN")
	}
	if min >= max {
		panic(fmt.Sprintf("types: interval requires min < max, got %v and %v", min, max))
	}
	if minOpen && maxOpen && IsInteger(min) && IsInteger(max) && max == min+1 {
		panic(fmt.Sprintf("types: open interval (%v, %v) must be a non-integer interval", min, max))
	}
	return Interval{positiveZero(min), positiveZero(max), minOpen, maxOpen}
}

func (i Interval) Min() float64  { return i.min }
func (i Interval) Max() float64  { return i.max }
func (i Interval) MinOpen() bool { return i.minOpen }
func (i Interval) MaxOpen() bool { return i.maxOpen }

func (Interval) Category() category.Category { return category.Number }

func (i Interval) Signature() string {
	open, close := "[", "]"
	if i.minOpen {
		open = "("
	}
	if i.maxOpen {
		close = ")"
	}
	return fmt.Sprintf("%s%s,%s%s", open, FormatNumber(i.min), FormatNumber(i.max), close)
}

func (i Interval) String() string { return i.Signature() }
func (Interval) isType()          {}
func (Interval) isNumber()        {}
func (Interval) variantRank() int { return rankInterval }

// The integers between two inclusive integer bounds. An infinite bound means
// the range is unbounded on that side.
type IntInterval struct {
	min, max float64
}

// Create an integer interval, panicking if a bound is NaN or not integral, or
// if min is not strictly below max.
func MustIntInterval(min, max float64) IntInterval {
	if !IsIntegralBound(min) || !IsIntegralBound(max) {
		panic(fmt.Sprintf("types: integer interval bounds must be integers or infinite, got %v and %v", min, max))
	}
	if min >= max {
		panic(fmt.Sprintf("types: integer interval requires min < max, got %v and %v", min, max))
	}
	return IntInterval{positiveZero(min), positiveZero(max)}
}

func (i IntInterval) Min() float64 { return i.min }
func (i IntInterval) Max() float64 { return i.max }

func (IntInterval) Category() category.Category { return category.Number }

func (i IntInterval) Signature() string {
	return fmt.Sprintf("int[%s,%s]", FormatNumber(i.min), FormatNumber(i.max))
}

func (i IntInterval) String() string { return i.Signature() }
func (IntInterval) isType()          {}
func (IntInterval) isNumber()        {}
func (IntInterval) variantRank() int { return rankIntInterval }

// The non-integer reals strictly between two integer bounds, which may be
// infinite. Never contains an integer or an infinity.
type NonIntInterval struct {
	min, max float64
}

// Create a non-integer interval, panicking if a bound is NaN or not integral,
// or if min is not strictly below max.
func MustNonIntInterval(min, max float64) NonIntInterval {
	if !IsIntegralBound(min) || !IsIntegralBound(max) {
		panic(fmt.Sprintf("types: non-integer interval bounds must be integers or infinite, got %v and %v", min, max))
	}
	if min >= max {
		panic(fmt.Sprintf("types: non-integer interval requires min < max, got %v and %v", min, max))
	}
	return NonIntInterval{positiveZero(min), positiveZero(max)}
}

func (i NonIntInterval) Min() float64 { return i.min }
func (i NonIntInterval) Max() float64 { return i.max }

func (NonIntInterval) Category() category.Category { return category.Number }

func (i NonIntInterval) Signature() string {
	return fmt.Sprintf("nonint(%s,%s)", FormatNumber(i.min), FormatNumber(i.max))
}

func (i NonIntInterval) String() string { return i.Signature() }
func (NonIntInterval) isType()          {}
func (NonIntInterval) isNumber()        {}
func (NonIntInterval) variantRank() int { return rankNonIntInterval }
