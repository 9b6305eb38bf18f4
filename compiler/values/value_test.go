package values

import (
	"math"
	"testing"

	"github.com/glossopoeia/settype/compiler/types"
)

func newDescriptors() (*types.Descriptor, *types.Descriptor) {
	reg := types.NewRegistry()
	point := reg.Define("Point", types.Field{Name: "x", Type: types.AllNumbers{}}, types.Field{Name: "y", Type: types.AllNumbers{}})
	label := reg.Define("Label", types.Field{Name: "text", Type: types.AllStrings{}})
	return point, label
}

func TestString(t *testing.T) {
	point, _ := newDescriptors()

	data := []Value{
		Number(1.5),
		Number(math.Inf(-1)),
		String("a b"),
		NewStruct(point, Number(1), Number(2)),
	}
	exp := []string{"1.5", "-Inf", `"a b"`, "Point{x: 1, y: 2}"}

	for i, v := range data {
		if res := v.String(); res != exp[i] {
			t.Errorf("Expected %v, got %v instead", exp[i], res)
		}
	}
}

func TestNewStructPanics(t *testing.T) {
	point, _ := newDescriptors()
	defer func() {
		if recover() == nil {
			t.Errorf("Expected a panic for a missing field")
		}
	}()
	NewStruct(point, Number(1))
}

func TestTypeOf(t *testing.T) {
	point, label := newDescriptors()

	data := []Value{
		Number(3),
		Number(math.NaN()),
		String("x"),
		NewStruct(point, Number(1), Number(2)),
		NewStruct(label, String("hi")),
	}
	exp := []string{"3", "NaN", `"x"`, "Point#1{x: 1, y: 2}", `Label#2{text: "hi"}`}

	for i, v := range data {
		if res := TypeOf(v).Signature(); res != exp[i] {
			t.Errorf("Expected %v, got %v instead", exp[i], res)
		}
		if !Contains(TypeOf(v), v) {
			t.Errorf("Expected %v to be a member of its own type", v)
		}
	}
}

func TestContains(t *testing.T) {
	point, label := newDescriptors()
	inf := math.Inf(1)
	origin := NewStruct(point, Number(0), Number(0))

	testCases := []struct {
		name string
		ty   types.Type
		v    Value
		exp  bool
	}{
		{"Never", types.Never{}, Number(1), false},
		{"Any", types.Any{}, String("a"), true},
		{"AllNumbers", types.AllNumbers{}, Number(math.NaN()), true},
		{"NaNLiteral", types.NewLiteral(math.NaN()), Number(math.NaN()), true},
		{"Literal", types.NewLiteral(2), Number(2), true},
		{"OtherLiteral", types.NewLiteral(2), Number(3), false},
		{"IntInterval", types.NewIntInterval(0, 5), Number(5), true},
		{"IntIntervalFraction", types.NewIntInterval(0, 5), Number(2.5), false},
		{"IntIntervalInfinity", types.NewIntInterval(0, inf), Number(inf), false},
		{"NonInt", types.NewNonIntInterval(0, 5), Number(2.5), true},
		{"NonIntInteger", types.NewNonIntInterval(0, 5), Number(2), false},
		{"NonIntInfinity", types.NewNonIntInterval(0, inf), Number(inf), false},
		{"ClosedInterval", types.NewClosedInterval(0, 1), Number(1), true},
		{"OpenInterval", types.NewOpenInterval(0, 2), Number(2), false},
		{"ClosedInfiniteBound", types.NewClosedInterval(0, inf), Number(inf), true},
		{"OpenInfiniteBound", types.NewInterval(0, inf, false, true), Number(inf), false},
		{"WrongCategory", types.AllNumbers{}, String("1"), false},
		{"StrLiteral", types.NewStrLiteral("a"), String("a"), true},
		{"StrExcept", types.NewStrExcept("a"), String("a"), false},
		{"AllStrings", types.AllStrings{}, String(""), true},
		{"AllStructs", types.AllStructs{}, origin, true},
		{"StructExcept", types.NewStructExcept(point), origin, false},
		{"StructExceptOther", types.NewStructExcept(label), origin, true},
		{"Instance", types.NewInstance(point, types.NewIntInterval(-1, 1), types.AllNumbers{}), origin, true},
		{"InstanceField", types.NewInstance(point, types.NewLiteral(1), types.AllNumbers{}), origin, false},
		{"InstanceDescriptor", types.FullInstance(label), origin, false},
		{"Union", types.FromMembers([]types.Value{types.NewStrLiteral("a"), types.NewLiteral(0)}), Number(0), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if res := Contains(tc.ty, tc.v); res != tc.exp {
				t.Errorf("Expected %v, got %v instead", tc.exp, res)
			}
		})
	}
}
