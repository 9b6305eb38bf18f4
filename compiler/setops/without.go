package setops

import (
	"fmt"

	"github.com/glossopoeia/settype/compiler/category"
	"github.com/glossopoeia/settype/compiler/types"
)

// Compute a representable superset of the values in left that are not in
// right. The result is exact except in two cases:
//
//   - a single number is never cut out of the middle of an Interval, which
//     is left whole;
//   - a struct instance only loses values when every field of right covers
//     the matching field of left, or when all but one do, in which case that
//     one field is subtracted.
//
// The result is never Any unless right is Never.
func Without(left types.Type, right types.Type) types.Type {
	res := without(left, right)
	if types.IsAny(res) && !types.IsNever(right) {
		panic(fmt.Sprintf("setops: %v without %v produced any", left, right))
	}
	return res
}

func without(left types.Type, right types.Type) types.Type {
	switch {
	case types.IsNever(right):
		return left
	case types.IsAny(right):
		return types.Never{}
	case types.IsNever(left):
		return types.Never{}
	}

	if ru, ok := right.(*types.Union); ok {
		res := left
		for _, m := range ru.Items() {
			if res = without(res, m); types.IsNever(res) {
				return res
			}
		}
		return res
	}

	rv := right.(types.Value)
	switch lt := left.(type) {
	case types.Any:
		return complementAll(rv)
	case *types.Union:
		parts := []types.Type{}
		for _, m := range lt.Items() {
			parts = append(parts, withoutValue(m, rv))
		}
		return Union(parts...)
	case types.Value:
		return withoutValue(lt, rv)
	default:
		panic(fmt.Sprintf("setops: unknown type variant %T", left))
	}
}

func withoutValue(l types.Value, r types.Value) types.Type {
	if l.Category() != r.Category() {
		return l
	}
	switch l.Category() {
	case category.Number:
		return withoutNumber(l.(types.NumberType), r.(types.NumberType))
	case category.String:
		return Intersect(l, Complement(r))
	case category.Struct:
		return withoutStruct(l, r)
	default:
		panic(fmt.Sprintf("setops: unexpected value category %v", l.Category()))
	}
}

func withoutNumber(l types.NumberType, r types.NumberType) types.Type {
	rs := numSetOf(r)
	if lit, ok := l.(types.NumLiteral); ok {
		if rs.contains(lit.Value()) {
			return types.Never{}
		}
		return lit
	}
	if lit, ok := r.(types.NumLiteral); ok && isInnerPoint(l, lit.Value()) {
		return l
	}
	return numSetOf(l).minus(rs).toType()
}

// Whether x lies strictly between the bounds of an Interval.
func isInnerPoint(t types.NumberType, x float64) bool {
	it, ok := t.(types.Interval)
	return ok && it.Min() < x && x < it.Max()
}

func withoutStruct(l types.Value, r types.Value) types.Type {
	inst, ok := l.(*types.Instance)
	if !ok {
		return Intersect(l, Complement(r))
	}

	switch rt := r.(type) {
	case types.AllStructs:
		return types.Never{}
	case types.StructExcept:
		if rt.Excludes(inst.Descriptor()) {
			return inst
		}
		return types.Never{}
	case *types.Instance:
		return withoutInstance(inst, rt)
	default:
		panic(fmt.Sprintf("setops: unknown struct variant %T", r))
	}
}

func withoutInstance(l *types.Instance, r *types.Instance) types.Type {
	if l.Descriptor() != r.Descriptor() {
		return l
	}
	uncovered := -1
	for i := range l.Fields() {
		if IsSubsetOf(l.Field(i), r.Field(i)) {
			continue
		}
		if uncovered >= 0 {
			return l
		}
		uncovered = i
	}
	if uncovered < 0 {
		return types.Never{}
	}
	return l.WithField(uncovered, Without(l.Field(uncovered), r.Field(uncovered)))
}
