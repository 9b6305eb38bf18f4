package setops

import (
	"fmt"

	"github.com/glossopoeia/settype/compiler/category"
	"github.com/glossopoeia/settype/compiler/types"
	"github.com/glossopoeia/settype/compiler/util"
	"golang.org/x/exp/slices"
)

// Compute the smallest representable union of the given types. Never inputs
// are skipped, any Any input makes the result Any, and a union that covers
// every number, string and struct is Any as well.
func Union(ts ...types.Type) types.Type {
	nums := numSet{}
	strs := []types.Value{}
	structs := []types.Value{}
	for _, t := range ts {
		if types.IsAny(t) {
			return types.Any{}
		}
		for _, v := range types.Members(t) {
			switch v.Category() {
			case category.Number:
				nums = nums.union(numSetOf(v.(types.NumberType)))
			case category.String:
				strs = mergeInto(strs, v, mergeStrings)
			case category.Struct:
				structs = mergeInto(structs, v, mergeStructs)
			default:
				panic(fmt.Sprintf("setops: unexpected member category %v", v.Category()))
			}
		}
	}

	if nums.isFull() && isOnly(strs, types.AllStrings{}) && isOnly(structs, types.AllStructs{}) {
		return types.Any{}
	}
	return types.FromMembers(append(append(nums.values(), strs...), structs...))
}

func unionValues(vs []types.Value) types.Type {
	ts := make([]types.Type, len(vs))
	for i, v := range vs {
		ts[i] = v
	}
	return Union(ts...)
}

func isOnly(vs []types.Value, v types.Value) bool {
	return len(vs) == 1 && vs[0] == v
}

// Attempts to merge two members of the same category into an equivalent list
// of members. Reports false when the two cannot be represented more simply
// together than apart.
type mergeFunc func(existing types.Value, incoming types.Value) ([]types.Value, bool)

// Add a member to a list of pairwise non-mergeable members. A merge removes
// the existing peer and sends the merge results back through the worklist,
// since a merged member may now merge with a member it previously could not.
func mergeInto(members []types.Value, incoming types.Value, merge mergeFunc) []types.Value {
	work := []types.Value{incoming}
	for len(work) > 0 {
		next := work[len(work)-1]
		work = work[:len(work)-1]

		merged := false
		for i, m := range members {
			if res, ok := merge(m, next); ok {
				members = slices.Delete(members, i, i+1)
				work = append(work, res...)
				merged = true
				break
			}
		}
		if !merged {
			members = append(members, next)
		}
	}
	return members
}

func mergeStrings(l types.Value, r types.Value) ([]types.Value, bool) {
	if types.Same(l, r) {
		return []types.Value{l}, true
	}
	switch lt := l.(type) {
	case types.AllStrings:
		return []types.Value{lt}, true
	case types.StrLiteral:
		switch rt := r.(type) {
		case types.AllStrings:
			return []types.Value{rt}, true
		case types.StrLiteral:
			return nil, false
		case types.StrExcept:
			return []types.Value{includeString(rt, lt)}, true
		}
	case types.StrExcept:
		switch rt := r.(type) {
		case types.AllStrings:
			return []types.Value{rt}, true
		case types.StrLiteral:
			return []types.Value{includeString(lt, rt)}, true
		case types.StrExcept:
			return []types.Value{types.NewStrExcept(util.SetIntersect(lt.Excluded(), rt.Excluded())...)}, true
		}
	}
	panic(fmt.Sprintf("setops: unknown string variants %T and %T", l, r))
}

func includeString(ex types.StrExcept, lit types.StrLiteral) types.Value {
	return types.NewStrExcept(util.SetMinus(ex.Excluded(), []string{lit.Value()})...)
}

func mergeStructs(l types.Value, r types.Value) ([]types.Value, bool) {
	if types.Same(l, r) {
		return []types.Value{l}, true
	}
	switch lt := l.(type) {
	case types.AllStructs:
		return []types.Value{lt}, true
	case *types.Instance:
		switch rt := r.(type) {
		case types.AllStructs:
			return []types.Value{rt}, true
		case *types.Instance:
			return mergeInstances(lt, rt)
		case types.StructExcept:
			return includeInstance(rt, lt)
		}
	case types.StructExcept:
		switch rt := r.(type) {
		case types.AllStructs:
			return []types.Value{rt}, true
		case *types.Instance:
			return includeInstance(lt, rt)
		case types.StructExcept:
			kept := util.SetIntersectBy(lt.Excluded(), rt.Excluded(), (*types.Descriptor).ID)
			return []types.Value{types.NewStructExcept(kept...)}, true
		}
	}
	panic(fmt.Sprintf("setops: unknown struct variants %T and %T", l, r))
}

// An instance joins an inverted set that does not exclude its descriptor. It
// fills the hole left by an excluded descriptor only when it covers every
// struct of that descriptor.
func includeInstance(ex types.StructExcept, inst *types.Instance) ([]types.Value, bool) {
	desc := inst.Descriptor()
	if !ex.Excludes(desc) {
		return []types.Value{ex}, true
	}
	if !isFullInstance(inst) {
		return nil, false
	}
	kept := util.SetMinusBy(ex.Excluded(), []*types.Descriptor{desc}, (*types.Descriptor).ID)
	return []types.Value{types.NewStructExcept(kept...)}, true
}

func isFullInstance(inst *types.Instance) bool {
	decl := inst.Descriptor().FieldTypes()
	for i, f := range inst.Fields() {
		if !IsSubsetOf(decl[i], f) {
			return false
		}
	}
	return true
}

// Instances of the same descriptor merge when one contains the other, or when
// they differ in a single field, which is then the union of both fields.
func mergeInstances(l *types.Instance, r *types.Instance) ([]types.Value, bool) {
	if l.Descriptor() != r.Descriptor() {
		return nil, false
	}
	if fieldsSubset(l, r) {
		return []types.Value{r}, true
	}
	if fieldsSubset(r, l) {
		return []types.Value{l}, true
	}

	diff := -1
	for i := range l.Fields() {
		if types.Same(l.Field(i), r.Field(i)) {
			continue
		}
		if diff >= 0 {
			return nil, false
		}
		diff = i
	}
	merged := l.WithField(diff, Union(l.Field(diff), r.Field(diff)))
	return []types.Value{merged.(types.Value)}, true
}

func fieldsSubset(l *types.Instance, r *types.Instance) bool {
	for i := range l.Fields() {
		if !IsSubsetOf(l.Field(i), r.Field(i)) {
			return false
		}
	}
	return true
}
