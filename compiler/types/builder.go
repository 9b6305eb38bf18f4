package types

import (
	"math"
)

// Normalizing factories. Unlike the Must constructors these never reject a
// range for being empty or degenerate: they collapse it to Never, to a literal,
// or to the non-integer form, so that anything built through them is already
// canonical in isolation. NaN bounds are still a programming error and panic.

// Build the reals between two bounds, each open or closed.
func NewInterval(min, max float64, minOpen, maxOpen bool) Type {
	rejectNaN(min, max)
	switch {
	case min > max:
		return Never{}
	case min == max:
		if minOpen || maxOpen {
			return Never{}
		}
		return NewLiteral(min)
	case minOpen && maxOpen && IsInteger(min) && IsInteger(max) && max == min+1:
		return MustNonIntInterval(min, max)
	default:
		return MustInterval(min, max, minOpen, maxOpen)
	}
}

func NewClosedInterval(min, max float64) Type {
	return NewInterval(min, max, false, false)
}

func NewOpenInterval(min, max float64) Type {
	return NewInterval(min, max, true, true)
}

// Build the integers between two inclusive bounds. Non-integral bounds are
// rounded inward; an infinite bound leaves the range unbounded on that side.
// Rounding -0.5 up gives -0, which the constructors store as 0.
func NewIntInterval(min, max float64) Type {
	rejectNaN(min, max)
	lo, hi := math.Ceil(min), math.Floor(max)
	switch {
	case lo > hi:
		return Never{}
	case lo == hi:
		if math.IsInf(lo, 0) {
			return Never{}
		}
		return NewLiteral(lo)
	default:
		return MustIntInterval(lo, hi)
	}
}

// Build the non-integers strictly between two bounds. When a bound is not
// itself an integer, the partial unit next to it has no integers to exclude
// and becomes an open interval, so the result may be a union of up to three
// pieces.
func NewNonIntInterval(min, max float64) Type {
	rejectNaN(min, max)
	if min >= max {
		return Never{}
	}
	lo, hi := math.Ceil(min), math.Floor(max)
	if lo > hi {
		return MustInterval(min, max, true, true)
	}
	pieces := []Value{}
	if lo > min {
		pieces = append(pieces, MustInterval(min, lo, true, true))
	}
	if lo < hi {
		pieces = append(pieces, MustNonIntInterval(lo, hi))
	}
	if hi < max {
		pieces = append(pieces, MustInterval(hi, max, true, true))
	}
	return FromMembers(pieces)
}

// Build a struct instance type, or Never when any field is Never.
func NewInstance(desc *Descriptor, fields ...Type) Type {
	for _, f := range fields {
		if IsNever(f) {
			return Never{}
		}
	}
	return MustInstance(desc, fields...)
}

// Build the strings other than the excluded ones: every string when nothing
// is excluded.
func NewStrExcept(excluded ...string) StringType {
	if len(excluded) == 0 {
		return AllStrings{}
	}
	return MustStrExcept(excluded...)
}

// Build the structs of every descriptor other than the excluded ones.
func NewStructExcept(excluded ...*Descriptor) StructType {
	if len(excluded) == 0 {
		return AllStructs{}
	}
	return MustStructExcept(excluded...)
}

func rejectNaN(min, max float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		panic("types: range bounds cannot be NaN")
	}
}
