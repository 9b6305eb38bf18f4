package setops

import "github.com/glossopoeia/settype/compiler/types"

// Whether every value of left is also a value of right. Exact for numbers and
// strings. Struct unions with more than one representation of the same set
// may be reported as not being subsets of each other.
func IsSubsetOf(left types.Type, right types.Type) bool {
	switch {
	case types.IsNever(left):
		return true
	case types.IsNever(right):
		return false
	case types.IsAny(right):
		return true
	case types.IsAny(left):
		return false
	}
	return types.Same(Intersect(left, right), Union(left))
}

func IsSupersetOf(left types.Type, right types.Type) bool {
	return IsSubsetOf(right, left)
}
