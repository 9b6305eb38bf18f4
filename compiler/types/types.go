package types

import (
	"fmt"
	"strings"

	"github.com/glossopoeia/settype/compiler/category"
	"github.com/rjNemo/underscore"
)

// A type denotes a set of runtime values. The variants form a closed sum:
// Never, Any, *Union, and the value types of each category. The unexported
// marker method keeps other packages from adding variants, so every type
// switch over Type in this module can treat a missing case as a bug.
type Type interface {
	fmt.Stringer
	// The category of the type, the primary key of the canonical ordering.
	Category() category.Category
	// A canonical string identifying the set representation. Two types are
	// interchangeable if and only if their signatures are equal.
	Signature() string
	isType()
}

// A value type is a primitive: a non-union type bound to exactly one value
// category. Value types are the members of unions.
type Value interface {
	Type
	// Position of the variant within its category, the secondary key of the
	// canonical ordering.
	variantRank() int
}

// The empty set of values.
type Never struct{}

func (Never) Category() category.Category { return category.Never }
func (Never) Signature() string           { return "never" }
func (Never) String() string              { return "never" }
func (Never) isType()                     {}

// The set of all values.
type Any struct{}

func (Any) Category() category.Category { return category.Any }
func (Any) Signature() string           { return "any" }
func (Any) String() string              { return "any" }
func (Any) isType()                     {}

// Whether the type is the empty set.
func IsNever(t Type) bool {
	_, ok := t.(Never)
	return ok
}

// Whether the type is the universal set.
func IsAny(t Type) bool {
	_, ok := t.(Any)
	return ok
}

// A union of two or more value types. The members are always canonical:
// deduplicated and sorted by the canonical ordering. Whether the members are
// also pairwise non-mergeable is up to the producer; the set algebra only ever
// builds unions from fully merged member lists.
type Union struct {
	items []Value
	sig   sigCell
}

// Create a union from a canonical member list. Panics if there are fewer than
// two members, since those cases are Never or the single member itself.
func NewUnion(items Canonical) *Union {
	if len(items.items) < 2 {
		panic(fmt.Sprintf("types: union requires at least two members, got %d", len(items.items)))
	}
	return &Union{items: items.items}
}

// The members of the union, in canonical order. The returned slice is a copy.
func (u *Union) Items() []Value {
	res := make([]Value, len(u.items))
	copy(res, u.items)
	return res
}

func (u *Union) Len() int {
	return len(u.items)
}

func (u *Union) Category() category.Category { return category.Union }

func (u *Union) Signature() string {
	return u.sig.get(func() string {
		sigs := underscore.Map(u.items, func(v Value) string { return v.Signature() })
		return strings.Join(sigs, " | ")
	})
}

func (u *Union) String() string { return u.Signature() }
func (u *Union) isType()        {}

// The members of a type seen as a union: nothing for Never, the items of a
// union, or the value type itself. Any has no finite member list and panics.
func Members(t Type) []Value {
	switch ct := t.(type) {
	case Never:
		return nil
	case *Union:
		return ct.Items()
	case Value:
		return []Value{ct}
	case Any:
		panic("types: Any cannot be decomposed into value members")
	default:
		panic(fmt.Sprintf("types: unknown type variant %T", t))
	}
}

// Build the type denoted by a list of already merged value types: Never for an
// empty list, the single member itself, or a canonical union.
func FromMembers(items []Value) Type {
	canon := Canonicalize(items)
	switch len(canon.items) {
	case 0:
		return Never{}
	case 1:
		return canon.items[0]
	default:
		return NewUnion(canon)
	}
}
