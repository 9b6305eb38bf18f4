package setops

import (
	"math"
	"testing"

	"github.com/glossopoeia/settype/compiler/ranges"
	"github.com/glossopoeia/settype/compiler/types"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var (
	inf = math.Inf(1)
	nan = math.NaN()
)

func lit(v float64) types.Type       { return types.NewLiteral(v) }
func str(s string) types.Type        { return types.NewStrLiteral(s) }
func closed(a, b float64) types.Type { return types.NewClosedInterval(a, b) }
func ints(a, b float64) types.Type   { return types.NewIntInterval(a, b) }

func newPoint() (*types.Descriptor, *types.Descriptor) {
	reg := types.NewRegistry()
	point := reg.Define("Point", types.Field{Name: "x", Type: types.AllNumbers{}}, types.Field{Name: "y", Type: types.AllNumbers{}})
	label := reg.Define("Label", types.Field{Name: "text", Type: types.AllStrings{}})
	return point, label
}

func TestUnion(t *testing.T) {
	point, _ := newPoint()
	pt := func(x, y types.Type) types.Type { return types.NewInstance(point, x, y) }

	data := [][]types.Type{
		{},
		{types.Never{}, types.Never{}},
		{lit(1), types.Any{}},
		{lit(1), lit(2)},
		{lit(1), lit(3)},
		{types.NewInterval(0, 1, false, true), lit(1)},
		{types.NewNonIntInterval(0, 1), lit(0)},
		{ints(0, 5), types.NewNonIntInterval(0, 5)},
		{types.NewOpenInterval(0, 5), lit(5)},
		{types.NewOpenInterval(0, 5), closed(5, 10)},
		{ints(0, 10), closed(2.5, 3.5)},
		{lit(1.5), types.NewInterval(1, 2, false, true)},
		{lit(inf), types.NewInterval(0, inf, false, true)},
		{ints(-inf, 0), ints(1, inf)},
		{types.NewNonIntInterval(-inf, inf), ints(-inf, inf)},
		{types.NewNonIntInterval(-inf, inf), ints(-inf, inf), lit(nan), lit(inf), lit(-inf)},
		{types.NewNonIntInterval(0, 10), ints(4, 6)},
		{lit(nan), lit(nan)},
		{lit(5), str("a")},
		{types.AllNumbers{}, types.AllStrings{}, types.AllStructs{}},
		{str("a"), types.NewStrExcept("a", "b")},
		{str("a"), types.NewStrExcept("a")},
		{types.NewStrExcept("a", "b"), types.NewStrExcept("b", "c")},
		{str("c"), types.NewStrExcept("a")},
		{pt(lit(1), lit(1)), pt(lit(2), lit(1))},
		{pt(lit(1), lit(1)), pt(types.AllNumbers{}, types.AllNumbers{})},
		{pt(lit(1), lit(1)), pt(lit(2), lit(2))},
		{pt(types.AllNumbers{}, types.AllNumbers{}), types.NewStructExcept(point)},
		{pt(lit(1), lit(1)), types.NewStructExcept(point)},
	}

	testCases := []struct {
		name string
		exp  string
	}{
		{"Empty", "never"},
		{"Nevers", "never"},
		{"Any", "any"},
		{"AdjacentIntegers", "int[1,2]"},
		{"DistantIntegers", "1 | 3"},
		{"CloseOpenBound", "[0,1]"},
		{"CloseNonIntBound", "[0,1)"},
		{"IntegersAndNonIntegers", "[0,5]"},
		{"CloseUpperBound", "(0,5]"},
		{"TouchingIntervals", "(0,10]"},
		{"IntervalInsideIntegers", "int[0,2] | int[4,10] | [2.5,3.5]"},
		{"AbsorbedFraction", "[1,2)"},
		{"InfiniteBound", "[0,+Inf]"},
		{"AllIntegers", "int[-Inf,+Inf]"},
		{"AllFiniteReals", "(-Inf,+Inf)"},
		{"AllNumbers", "number"},
		{"IntegersInsideNonIntegers", "int[4,6] | nonint(0,10)"},
		{"NaN", "NaN"},
		{"Categories", `5 | "a"`},
		{"Everything", "any"},
		{"IncludedLiteral", `string-{"b"}`},
		{"FilledExcept", "string"},
		{"ExceptExcept", `string-{"b"}`},
		{"AbsorbedLiteral", `string-{"a"}`},
		{"OneFieldDiffers", "Point#1{x: int[1,2], y: 1}"},
		{"SubsetInstance", "Point#1{x: number, y: number}"},
		{"TwoFieldsDiffer", "Point#1{x: 1, y: 1} | Point#1{x: 2, y: 2}"},
		{"FullInstanceFillsExcept", "struct"},
		{"PartialInstanceStays", "Point#1{x: 1, y: 1} | struct-{Point#1}"},
	}

	for ind, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := Union(data[ind]...).Signature()
			if res != tc.exp {
				t.Errorf("Expected %v, got %v instead", tc.exp, res)
			}
		})
	}
}

func TestIntersect(t *testing.T) {
	point, label := newPoint()
	pt := func(x, y types.Type) types.Type { return types.NewInstance(point, x, y) }

	data := [][]types.Type{
		{},
		{lit(1), types.Never{}},
		{types.Any{}, lit(1)},
		{ints(0, 10), closed(5, inf)},
		{closed(0, 10), types.NewNonIntInterval(-inf, 5)},
		{closed(0, 10), closed(10, 20)},
		{types.NewInterval(0, 10, false, true), closed(10, 20)},
		{Union(lit(1), lit(3), str("a")), Union(ints(2, 5), types.AllStrings{})},
		{types.AllNumbers{}, lit(nan)},
		{types.NewStrExcept("a"), types.NewStrExcept("b")},
		{str("a"), types.NewStrExcept("a")},
		{str("a"), types.AllStrings{}},
		{pt(closed(0, 10), types.AllNumbers{}), pt(closed(5, 20), lit(1))},
		{pt(lit(1), lit(1)), pt(lit(2), lit(1))},
		{pt(lit(1), lit(1)), types.NewInstance(label, str("a"))},
		{pt(lit(1), lit(1)), types.NewStructExcept(point)},
		{types.NewStructExcept(point), types.NewStructExcept(label)},
		{closed(0, 10), closed(5, 20), ints(-inf, 7)},
	}

	testCases := []struct {
		name string
		exp  string
	}{
		{"Empty", "any"},
		{"Never", "never"},
		{"AnyIdentity", "1"},
		{"IntegersFromInterval", "int[5,10]"},
		{"NonIntegersFromInterval", "nonint(0,5)"},
		{"TouchingClosed", "10"},
		{"TouchingOpen", "never"},
		{"Distributes", `3 | "a"`},
		{"NaNInNumber", "NaN"},
		{"ExceptExcept", `string-{"a","b"}`},
		{"ExcludedLiteral", "never"},
		{"AllStringsIdentity", `"a"`},
		{"FieldWise", "Point#1{x: [5,10], y: 1}"},
		{"FieldCollapses", "never"},
		{"DifferentDescriptors", "never"},
		{"ExcludedDescriptor", "never"},
		{"ExceptUnion", "struct-{Point#1,Label#2}"},
		{"ThreeOperands", "int[5,7]"},
	}

	for ind, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := Intersect(data[ind]...).Signature()
			if res != tc.exp {
				t.Errorf("Expected %v, got %v instead", tc.exp, res)
			}
		})
	}
}

func TestWithout(t *testing.T) {
	point, label := newPoint()
	pt := func(x, y types.Type) types.Type { return types.NewInstance(point, x, y) }

	data := []struct {
		l types.Type
		r types.Type
	}{
		{lit(1), types.Never{}},
		{lit(1), types.Any{}},
		{types.Never{}, lit(1)},
		{closed(0, 10), lit(5)},
		{ints(0, 10), lit(5)},
		{closed(0, 10), lit(10)},
		{closed(0, 10), closed(3, 4)},
		{types.NewNonIntInterval(0, 10), lit(0.5)},
		{types.NewNonIntInterval(0, 10), lit(2)},
		{lit(5), ints(0, 10)},
		{lit(5), types.NewNonIntInterval(0, 10)},
		{types.Any{}, lit(5)},
		{Union(lit(1), str("a"), lit(3)), Union(lit(1), str("a"))},
		{types.AllStrings{}, str("a")},
		{types.NewStrExcept("a"), types.NewStrExcept("a", "b")},
		{pt(ints(0, 10), lit(1)), pt(lit(5), types.AllNumbers{})},
		{pt(lit(1), lit(1)), pt(types.AllNumbers{}, types.AllNumbers{})},
		{pt(Union(lit(1), lit(3)), Union(lit(1), lit(3))), pt(lit(1), lit(1))},
		{pt(lit(1), lit(1)), types.NewInstance(label, str("a"))},
		{pt(lit(1), lit(1)), types.NewStructExcept(label)},
		{pt(lit(1), lit(1)), types.NewStructExcept(point)},
		{types.AllStructs{}, pt(types.AllNumbers{}, types.AllNumbers{})},
		{types.AllStructs{}, pt(lit(1), types.AllNumbers{})},
	}

	testCases := []struct {
		name string
		exp  string
	}{
		{"MinusNever", "1"},
		{"MinusAny", "never"},
		{"FromNever", "never"},
		{"PointInInterval", "[0,10]"},
		{"PointInIntegers", "int[0,4] | int[6,10]"},
		{"IntervalBound", "[0,10)"},
		{"IntervalHole", "[0,3) | (4,10]"},
		{"PointInNonIntegers", "nonint(1,10) | (0,0.5) | (0.5,1)"},
		{"IntegerInNonIntegers", "nonint(0,10)"},
		{"LiteralPresent", "never"},
		{"LiteralAbsent", "5"},
		{"AnyMinusLiteral", "NaN | [-Inf,5) | (5,+Inf] | string | struct"},
		{"UnionMinusUnion", "3"},
		{"StringMinusLiteral", `string-{"a"}`},
		{"ExceptMinusExcept", `"b"`},
		{"OneFieldUncovered", "Point#1{x: int[0,4] | int[6,10], y: 1}"},
		{"AllFieldsCovered", "never"},
		{"TwoFieldsUncovered", "Point#1{x: 1 | 3, y: 1 | 3}"},
		{"OtherDescriptor", "Point#1{x: 1, y: 1}"},
		{"NotExcluded", "never"},
		{"Excluded", "Point#1{x: 1, y: 1}"},
		{"StructsMinusFull", "struct-{Point#1}"},
		{"StructsMinusPartial", "Point#1{x: NaN | [-Inf,1) | (1,+Inf], y: number} | struct-{Point#1}"},
	}

	for ind, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := Without(data[ind].l, data[ind].r).Signature()
			if res != tc.exp {
				t.Errorf("Expected %v, got %v instead", tc.exp, res)
			}
		})
	}
}

func TestComplement(t *testing.T) {
	point, _ := newPoint()

	data := []types.Value{
		types.NewLiteral(5),
		types.MustIntInterval(0, 10),
		types.AllNumbers{},
		types.NewLiteral(nan),
		types.NewStrLiteral("a"),
		types.MustStrExcept("a", "b"),
		types.AllStrings{},
		types.MustStructExcept(point),
		types.AllStructs{},
	}

	testCases := []struct {
		name string
		exp  string
	}{
		{"Literal", "NaN | [-Inf,5) | (5,+Inf]"},
		{"Integers", "NaN | nonint(0,10) | [-Inf,0) | (10,+Inf]"},
		{"AllNumbers", "never"},
		{"NaN", "[-Inf,+Inf]"},
		{"StrLiteral", `string-{"a"}`},
		{"StrExcept", `"a" | "b"`},
		{"AllStrings", "never"},
		{"StructExcept", "Point#1{x: number, y: number}"},
		{"AllStructs", "never"},
	}

	for ind, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := Complement(data[ind]).Signature()
			if res != tc.exp {
				t.Errorf("Expected %v, got %v instead", tc.exp, res)
			}
		})
	}
}

func TestSubset(t *testing.T) {
	point, _ := newPoint()

	data := []struct {
		l types.Type
		r types.Type
	}{
		{lit(nan), types.AllNumbers{}},
		{types.AllNumbers{}, lit(nan)},
		{types.Never{}, types.Never{}},
		{lit(1), types.Never{}},
		{types.Any{}, types.AllNumbers{}},
		{types.AllNumbers{}, types.Any{}},
		{ints(0, 10), closed(0, 10)},
		{closed(0, 10), ints(0, 10)},
		{Union(lit(1), str("a")), Union(ints(0, 5), types.AllStrings{})},
		{types.NewInstance(point, lit(1), lit(2)), types.NewStructExcept(point)},
		{types.NewInstance(point, lit(1), lit(2)), types.AllStructs{}},
	}

	exp := []bool{true, false, true, false, false, true, true, false, true, false, true}

	for ind, tc := range data {
		t.Run(tc.l.Signature()+"<="+tc.r.Signature(), func(t *testing.T) {
			if res := IsSubsetOf(tc.l, tc.r); res != exp[ind] {
				t.Errorf("Expected %v, got %v instead", exp[ind], res)
			}
			if res := IsSupersetOf(tc.r, tc.l); res != exp[ind] {
				t.Errorf("Expected superset %v, got %v instead", exp[ind], res)
			}
		})
	}
}

func TestNegativeZeroBounds(t *testing.T) {
	negZero := math.Copysign(0, -1)

	data := []struct {
		l types.Type
		r types.Type
	}{
		{ints(-0.5, 3), ints(0, 3)},
		{types.NewInterval(negZero, 1, false, true), types.NewInterval(0, 1, false, true)},
		{types.NewNonIntInterval(-3, negZero), types.NewNonIntInterval(-3, 0)},
		{Intersect(closed(-0.5, 3), ints(-5, 5)), ints(0, 3)},
		{Without(ints(-0.5, 3), lit(3)), ints(0, 2)},
	}

	for _, tc := range data {
		t.Run(tc.r.Signature(), func(t *testing.T) {
			if !types.Same(tc.l, tc.r) {
				t.Errorf("Expected %v, got %v instead", tc.r, tc.l)
			}
			if !IsSubsetOf(tc.l, tc.r) || !IsSubsetOf(tc.r, tc.l) {
				t.Errorf("Expected %v and %v to be subsets of each other", tc.l, tc.r)
			}
		})
	}
}

func TestDisjoint(t *testing.T) {
	if !IsDisjointWith(ints(0, 10), types.NewNonIntInterval(0, 10)) {
		t.Errorf("Expected integers and non-integers to be disjoint")
	}
	if IsDisjointWith(closed(0, 1), types.NewNonIntInterval(0, 1)) {
		t.Errorf("Expected an interval to share its non-integers")
	}
}

func TestCardinality(t *testing.T) {
	point, _ := newPoint()

	data := []types.Type{
		types.Never{},
		types.Any{},
		lit(5),
		str("a"),
		ints(0, 9),
		ints(0, inf),
		closed(0, 1),
		types.NewInstance(point, ints(1, 3), ints(1, 2)),
		Union(lit(1), str("a"), str("b")),
		types.NewStrExcept("a"),
	}

	testCases := []struct {
		name string
		exp  Count
	}{
		{"Never", 0},
		{"Any", Unbounded},
		{"Literal", 1},
		{"StrLiteral", 1},
		{"FiniteIntegers", 10},
		{"InfiniteIntegers", Unbounded},
		{"Interval", Unbounded},
		{"Instance", 6},
		{"Union", 3},
		{"StrExcept", Unbounded},
	}

	for ind, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := Cardinality(data[ind])
			if res != tc.exp {
				t.Errorf("Expected %v, got %v instead", tc.exp, res)
			}
		})
	}

	if Unbounded.add(1) != Unbounded || Count(1<<40).mul(1<<40) != Unbounded {
		t.Errorf("Expected counts to saturate")
	}
}

func TestValueEqual(t *testing.T) {
	point, _ := newPoint()

	data := []struct {
		l types.Type
		r types.Type
	}{
		{lit(1), lit(1)},
		{lit(1), lit(2)},
		{ints(1, 2), lit(1)},
		{lit(nan), lit(nan)},
		{types.Never{}, lit(1)},
		{str("a"), types.AllStrings{}},
		{types.NewInstance(point, lit(nan), lit(1)), types.NewInstance(point, lit(nan), lit(1))},
		{types.NewInstance(point, lit(1), lit(1)), types.NewInstance(point, lit(1), lit(1))},
		{lit(1), str("1")},
	}

	testCases := []struct {
		name  string
		exp   Equality
		eq    ranges.Truth
		notEq ranges.Truth
	}{
		{"SameLiteral", SomeEqual, ranges.DefinitelyTrue, ranges.DefinitelyFalse},
		{"DifferentLiterals", SomeNotEqual, ranges.DefinitelyFalse, ranges.DefinitelyTrue},
		{"Overlapping", Both, ranges.Either, ranges.Either},
		{"NaN", SomeNotEqual, ranges.DefinitelyFalse, ranges.DefinitelyTrue},
		{"Empty", Neither, ranges.Vacuous, ranges.Vacuous},
		{"LiteralInAll", Both, ranges.Either, ranges.Either},
		{"NaNField", SomeNotEqual, ranges.DefinitelyFalse, ranges.DefinitelyTrue},
		{"SameInstance", SomeEqual, ranges.DefinitelyTrue, ranges.DefinitelyFalse},
		{"Categories", SomeNotEqual, ranges.DefinitelyFalse, ranges.DefinitelyTrue},
	}

	for ind, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l, r := data[ind].l, data[ind].r
			if res := ValueEqual(l, r); res != tc.exp {
				t.Errorf("Expected %v, got %v instead", tc.exp, res)
			}
			if res := Equal(l, r); res != tc.eq {
				t.Errorf("Expected == to be %v, got %v instead", tc.eq, res)
			}
			if res := NotEqual(l, r); res != tc.notEq {
				t.Errorf("Expected != to be %v, got %v instead", tc.notEq, res)
			}
		})
	}
}

func TestNumSetRoundTrip(t *testing.T) {
	data := []types.NumberType{
		types.AllNumbers{},
		types.NewLiteral(1),
		types.NewLiteral(2.5),
		types.NewLiteral(nan),
		types.NewLiteral(inf),
		types.NewLiteral(-inf),
		types.MustInterval(0, 10, false, false),
		types.MustInterval(0, 10, false, true),
		types.MustInterval(0, 10, true, false),
		types.MustInterval(0, 10, true, true),
		types.MustInterval(0, 1, false, true),
		types.MustInterval(0, 1, true, false),
		types.MustInterval(0.5, 2, true, true),
		types.MustInterval(0.5, 0.75, false, false),
		types.MustInterval(2.5, 3, true, false),
		types.MustInterval(2.5, 3.5, true, true),
		types.MustInterval(-inf, inf, true, true),
		types.MustInterval(-inf, inf, false, false),
		types.MustInterval(-inf, 0, false, true),
		types.MustIntInterval(0, 10),
		types.MustIntInterval(-inf, 0),
		types.MustIntInterval(-inf, inf),
		types.MustNonIntInterval(0, 1),
		types.MustNonIntInterval(0, 10),
		types.MustNonIntInterval(-inf, 0),
		types.MustNonIntInterval(-inf, inf),
	}

	opts := []cmp.Option{cmp.AllowUnexported(numSet{}, intRange{}, realSeg{}), cmpopts.EquateEmpty()}
	for _, p := range data {
		t.Run(p.Signature(), func(t *testing.T) {
			s := numSetOf(p)
			if res := s.toType(); !types.Same(res, p) {
				t.Errorf("Expected %v, got %v instead", p, res)
			}
			if res := s.complement().complement(); !cmp.Equal(res, s, opts...) {
				t.Errorf("Expected double complement to be %v, got %v instead", s, res)
			}
			if res := s.union(s.complement()); !res.isFull() {
				t.Errorf("Expected a set and its complement to cover every number")
			}
			if res := s.intersect(s.complement()); !res.isEmpty() {
				t.Errorf("Expected a set and its complement to be disjoint")
			}
		})
	}
}

func TestWithoutNeverAny(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Expected no panic, got %v", r)
		}
	}()
	if res := Without(types.Any{}, types.AllStrings{}); types.IsAny(res) {
		t.Errorf("Expected a proper subset of any")
	}
}
