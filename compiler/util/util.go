package util

import (
	"github.com/rjNemo/underscore"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Keep the first element of the list for each distinct selector value, preserving
// the original order of the kept elements.
func UniqueBy[T any, V comparable](ls []T, selector func(v T) V) []T {
	res := []T{}
	seen := make(map[V]struct{}, len(ls))
	for _, e := range ls {
		s := selector(e)
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			res = append(res, e)
		}
	}
	return res
}

// A sorted copy of the list with duplicates removed.
func SortedSet[T constraints.Ordered](ls []T) []T {
	res := slices.Clone(ls)
	slices.Sort(res)
	return slices.Compact(res)
}

func SetUnion[T constraints.Ordered](l []T, r []T) []T {
	return SortedSet(append(slices.Clone(l), r...))
}

func SetIntersect[T constraints.Ordered](l []T, r []T) []T {
	return underscore.Filter(SortedSet(l), func(e T) bool { return slices.Contains(r, e) })
}

func SetMinus[T constraints.Ordered](l []T, r []T) []T {
	return underscore.Filter(SortedSet(l), func(e T) bool { return !slices.Contains(r, e) })
}

// Keyed set operations, for elements that are identified by an ordered key
// rather than compared directly. Results are sorted by key.
func SetUnionBy[T any, K constraints.Ordered](l []T, r []T, key func(T) K) []T {
	byKey := make(map[K]T, len(l)+len(r))
	for _, e := range l {
		byKey[key(e)] = e
	}
	for _, e := range r {
		if _, ok := byKey[key(e)]; !ok {
			byKey[key(e)] = e
		}
	}
	return sortedValues(byKey)
}

func SetIntersectBy[T any, K constraints.Ordered](l []T, r []T, key func(T) K) []T {
	inRight := keySet(r, key)
	byKey := make(map[K]T, len(l))
	for _, e := range l {
		if _, ok := inRight[key(e)]; ok {
			byKey[key(e)] = e
		}
	}
	return sortedValues(byKey)
}

func SetMinusBy[T any, K constraints.Ordered](l []T, r []T, key func(T) K) []T {
	inRight := keySet(r, key)
	byKey := make(map[K]T, len(l))
	for _, e := range l {
		if _, ok := inRight[key(e)]; !ok {
			byKey[key(e)] = e
		}
	}
	return sortedValues(byKey)
}

func keySet[T any, K comparable](ls []T, key func(T) K) map[K]struct{} {
	res := make(map[K]struct{}, len(ls))
	for _, e := range ls {
		res[key(e)] = struct{}{}
	}
	return res
}

func sortedValues[T any, K constraints.Ordered](m map[K]T) []T {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return underscore.Map(keys, func(k K) T { return m[k] })
}

// Three-way comparison of ordered values.
func Compare[T constraints.Ordered](l T, r T) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

// Lexicographic three-way comparison of two lists, with the shorter list
// ordered first when one is a prefix of the other.
func CompareSlices[T any](l []T, r []T, cmp func(a T, b T) int) int {
	for i := 0; i < len(l) && i < len(r); i++ {
		if c := cmp(l[i], r[i]); c != 0 {
			return c
		}
	}
	return Compare(len(l), len(r))
}

// Three-way comparison of booleans, false ordered first.
func CompareBool(l bool, r bool) int {
	switch {
	case l == r:
		return 0
	case !l:
		return -1
	default:
		return 1
	}
}
