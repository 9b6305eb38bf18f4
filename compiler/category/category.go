package category

// Every type in the set algebra belongs to exactly one category. The category
// is the top of the type ordering hierarchy: it is the primary key when the
// members of a union are sorted, and it decides which pairs of primitives can
// interact at all, since values from different value categories never overlap.
type Category int

const (
	// The empty set. No runtime value inhabits a type of this category.
	Never Category = iota + 1
	// The universal set, containing every number, string and struct.
	Any
	// Real numbers, including the infinities and NaN.
	Number
	// Strings of any content.
	String
	// Struct instances of any descriptor.
	Struct
	// A canonical union of two or more value types.
	Union
)

func (c Category) String() string {
	switch c {
	case Never:
		return "never"
	case Any:
		return "any"
	case Number:
		return "number"
	case String:
		return "string"
	case Struct:
		return "struct"
	case Union:
		return "union"
	default:
		panic("Invalid category encountered.")
	}
}

// Whether types of this category are primitives: value types bound to a single
// category of runtime values, as opposed to Never, Any and unions.
func (c Category) IsValue() bool {
	return c == Number || c == String || c == Struct
}

// The value categories, in canonical order.
func Values() []Category {
	return []Category{Number, String, Struct}
}
