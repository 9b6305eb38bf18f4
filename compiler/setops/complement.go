package setops

import (
	"fmt"

	"github.com/glossopoeia/settype/compiler/category"
	"github.com/glossopoeia/settype/compiler/types"
	"github.com/rjNemo/underscore"
)

// The values of the same category that are not in the given value type. Exact
// for numbers and strings. For struct instances the per-field differences are
// computed with Without, so the result may be larger than the true complement.
func Complement(v types.Value) types.Type {
	switch v.Category() {
	case category.Number:
		return numSetOf(v.(types.NumberType)).complement().toType()
	case category.String:
		return complementString(v)
	case category.Struct:
		return complementStruct(v)
	default:
		panic(fmt.Sprintf("setops: unexpected value category %v", v.Category()))
	}
}

// The values of every category that are not in the given value type.
func complementAll(v types.Value) types.Type {
	others := underscore.Filter(
		[]types.Value{types.AllNumbers{}, types.AllStrings{}, types.AllStructs{}},
		func(all types.Value) bool { return all.Category() != v.Category() })
	return Union(Complement(v), unionValues(others))
}

func complementString(v types.Value) types.Type {
	switch vt := v.(type) {
	case types.AllStrings:
		return types.Never{}
	case types.StrLiteral:
		return types.MustStrExcept(vt.Value())
	case types.StrExcept:
		lits := underscore.Map(vt.Excluded(), func(s string) types.Value { return types.NewStrLiteral(s) })
		return types.FromMembers(lits)
	default:
		panic(fmt.Sprintf("setops: unknown string variant %T", v))
	}
}

func complementStruct(v types.Value) types.Type {
	switch vt := v.(type) {
	case types.AllStructs:
		return types.Never{}
	case types.StructExcept:
		fulls := underscore.Map(vt.Excluded(), func(d *types.Descriptor) types.Value { return types.FullInstance(d) })
		return unionValues(fulls)
	case *types.Instance:
		// A struct of the same descriptor is outside the instance when at
		// least one of its fields is outside the instance's field.
		desc := vt.Descriptor()
		parts := []types.Type{types.MustStructExcept(desc)}
		for i, decl := range desc.FieldTypes() {
			rest := Without(decl, vt.Field(i))
			if types.IsNever(rest) {
				continue
			}
			parts = append(parts, types.FullInstance(desc).WithField(i, rest))
		}
		return Union(parts...)
	default:
		panic(fmt.Sprintf("setops: unknown struct variant %T", v))
	}
}
