package types

import (
	"fmt"
	"math"

	"github.com/glossopoeia/settype/compiler/util"
	"golang.org/x/exp/slices"
)

// A list of value types that is deduplicated by signature and sorted by the
// canonical ordering. Only Canonicalize produces one.
type Canonical struct {
	items []Value
}

func (c Canonical) Items() []Value {
	return slices.Clone(c.items)
}

func (c Canonical) Len() int {
	return len(c.items)
}

// Deduplicate the value types by signature and sort them by the canonical
// ordering. The input list is not modified.
func Canonicalize(items []Value) Canonical {
	res := util.UniqueBy(items, func(v Value) string { return v.Signature() })
	slices.SortFunc(res, func(l Value, r Value) bool { return Compare(l, r) < 0 })
	return Canonical{res}
}

// Three-way comparison of types in the canonical ordering. The primary key is
// the category, the secondary key the variant within the category, and the
// last key is specific to the variant. Types with the same signature compare
// equal.
func Compare(l Type, r Type) int {
	if c := util.Compare(l.Category(), r.Category()); c != 0 {
		return c
	}
	switch lt := l.(type) {
	case Never, Any:
		return 0
	case *Union:
		return util.CompareSlices(lt.items, r.(*Union).items, compareValues)
	case Value:
		return compareValues(lt, r.(Value))
	default:
		panic(fmt.Sprintf("types: unknown type variant %T", l))
	}
}

func compareValues(l Value, r Value) int {
	if c := util.Compare(l.Category(), r.Category()); c != 0 {
		return c
	}
	if c := util.Compare(l.variantRank(), r.variantRank()); c != 0 {
		return c
	}
	switch lt := l.(type) {
	case AllNumbers, AllStrings, AllStructs:
		return 0
	case NumLiteral:
		return compareNumbers(lt.value, r.(NumLiteral).value)
	case IntInterval:
		rt := r.(IntInterval)
		return compareBounds(lt.min, lt.max, false, false, rt.min, rt.max, false, false)
	case NonIntInterval:
		rt := r.(NonIntInterval)
		return compareBounds(lt.min, lt.max, true, true, rt.min, rt.max, true, true)
	case Interval:
		rt := r.(Interval)
		return compareBounds(lt.min, lt.max, lt.minOpen, lt.maxOpen, rt.min, rt.max, rt.minOpen, rt.maxOpen)
	case StrLiteral:
		return util.Compare(lt.value, r.(StrLiteral).value)
	case StrExcept:
		return util.CompareSlices(lt.excluded, r.(StrExcept).excluded, util.Compare[string])
	case *Instance:
		rt := r.(*Instance)
		if c := CompareDescriptors(lt.desc, rt.desc); c != 0 {
			return c
		}
		return util.CompareSlices(lt.fields, rt.fields, Compare)
	case StructExcept:
		return util.CompareSlices(lt.excluded, r.(StructExcept).excluded, CompareDescriptors)
	default:
		panic(fmt.Sprintf("types: unknown value variant %T", l))
	}
}

func compareBounds(lmin, lmax float64, lminOpen, lmaxOpen bool, rmin, rmax float64, rminOpen, rmaxOpen bool) int {
	if c := compareNumbers(lmin, rmin); c != 0 {
		return c
	}
	if c := compareNumbers(lmax, rmax); c != 0 {
		return c
	}
	if c := util.CompareBool(lminOpen, rminOpen); c != 0 {
		return c
	}
	return util.CompareBool(lmaxOpen, rmaxOpen)
}

// NaN sorts after every other number and equal to itself.
func compareNumbers(l float64, r float64) int {
	switch ln, rn := math.IsNaN(l), math.IsNaN(r); {
	case ln && rn:
		return 0
	case ln:
		return 1
	case rn:
		return -1
	default:
		return util.Compare(l, r)
	}
}
