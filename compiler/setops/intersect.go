package setops

import (
	"fmt"

	"github.com/glossopoeia/settype/compiler/category"
	"github.com/glossopoeia/settype/compiler/types"
	"github.com/glossopoeia/settype/compiler/util"
)

// Compute the exact intersection of the given types. With no inputs the
// result is Any, the identity of intersection.
func Intersect(ts ...types.Type) types.Type {
	operands := []types.Type{}
	for _, t := range ts {
		switch t.(type) {
		case types.Never:
			return types.Never{}
		case types.Any:
			continue
		default:
			operands = append(operands, t)
		}
	}

	switch len(operands) {
	case 0:
		return types.Any{}
	case 1:
		return operands[0]
	case 2:
		l, lok := operands[0].(types.Value)
		r, rok := operands[1].(types.Value)
		if lok && rok {
			return intersectValues(l, r)
		}
	}

	// Intersection distributes over the members of each operand. Each step is
	// re-merged, since pieces from different members may now be adjacent.
	acc := types.Members(operands[0])
	for _, next := range operands[1:] {
		parts := []types.Value{}
		for _, l := range acc {
			for _, r := range types.Members(next) {
				parts = append(parts, types.Members(intersectValues(l, r))...)
			}
		}
		acc = types.Members(unionValues(parts))
		if len(acc) == 0 {
			return types.Never{}
		}
	}
	return unionValues(acc)
}

// Whether the two types have no value in common.
func IsDisjointWith(l types.Type, r types.Type) bool {
	return types.IsNever(Intersect(l, r))
}

func intersectValues(l types.Value, r types.Value) types.Type {
	if l.Category() != r.Category() {
		return types.Never{}
	}
	switch l.Category() {
	case category.Number:
		ls, rs := numSetOf(l.(types.NumberType)), numSetOf(r.(types.NumberType))
		return ls.intersect(rs).toType()
	case category.String:
		return intersectStrings(l, r)
	case category.Struct:
		return intersectStructs(l, r)
	default:
		panic(fmt.Sprintf("setops: unexpected value category %v", l.Category()))
	}
}

func intersectStrings(l types.Value, r types.Value) types.Type {
	switch lt := l.(type) {
	case types.AllStrings:
		return r
	case types.StrLiteral:
		switch rt := r.(type) {
		case types.AllStrings:
			return lt
		case types.StrLiteral:
			if lt.Value() == rt.Value() {
				return lt
			}
			return types.Never{}
		case types.StrExcept:
			return excludeString(rt, lt)
		}
	case types.StrExcept:
		switch rt := r.(type) {
		case types.AllStrings:
			return lt
		case types.StrLiteral:
			return excludeString(lt, rt)
		case types.StrExcept:
			return types.NewStrExcept(util.SetUnion(lt.Excluded(), rt.Excluded())...)
		}
	}
	panic(fmt.Sprintf("setops: unknown string variants %T and %T", l, r))
}

func excludeString(ex types.StrExcept, lit types.StrLiteral) types.Type {
	if ex.Excludes(lit.Value()) {
		return types.Never{}
	}
	return lit
}

func intersectStructs(l types.Value, r types.Value) types.Type {
	switch lt := l.(type) {
	case types.AllStructs:
		return r
	case *types.Instance:
		switch rt := r.(type) {
		case types.AllStructs:
			return lt
		case *types.Instance:
			return intersectInstances(lt, rt)
		case types.StructExcept:
			return excludeInstance(rt, lt)
		}
	case types.StructExcept:
		switch rt := r.(type) {
		case types.AllStructs:
			return lt
		case *types.Instance:
			return excludeInstance(lt, rt)
		case types.StructExcept:
			excluded := util.SetUnionBy(lt.Excluded(), rt.Excluded(), (*types.Descriptor).ID)
			return types.NewStructExcept(excluded...)
		}
	}
	panic(fmt.Sprintf("setops: unknown struct variants %T and %T", l, r))
}

func excludeInstance(ex types.StructExcept, inst *types.Instance) types.Type {
	if ex.Excludes(inst.Descriptor()) {
		return types.Never{}
	}
	return inst
}

func intersectInstances(l *types.Instance, r *types.Instance) types.Type {
	if l.Descriptor() != r.Descriptor() {
		return types.Never{}
	}
	fields := make([]types.Type, len(l.Fields()))
	for i := range fields {
		fields[i] = Intersect(l.Field(i), r.Field(i))
		if types.IsNever(fields[i]) {
			return types.Never{}
		}
	}
	return types.NewInstance(l.Descriptor(), fields...)
}
