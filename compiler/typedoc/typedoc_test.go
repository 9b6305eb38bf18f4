package typedoc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glossopoeia/settype/compiler/ranges"
	"github.com/glossopoeia/settype/compiler/setops"
	"github.com/glossopoeia/settype/compiler/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shapes = `
structs:
  - name: Point
    fields:
      - {name: x, type: number}
      - {name: y, type: number}
  - name: Tag
    fields:
      - {name: label, type: string}
      - {name: extra}
types:
  - name: small
    type: {int: [0, 10]}
  - name: upper
    type: {interval: {min: 5}}
  - name: both
    type: {intersect: [small, upper]}
  - name: origin
    type: {instance: {of: Point, fields: {x: 0, y: 0}}}
ops:
  - both
  - {union: [1, 2]}
  - {union: [1, 3]}
  - {without: [{closed: [0, 10]}, 5]}
  - {without: [small, 5]}
  - {subset: [{lit: .nan}, number]}
  - {cardinality: small}
  - {less: [small, upper]}
  - {range: upper}
  - {member: {type: origin, value: {struct: Point, fields: {x: 0, y: 0}}}}
  - {member: {type: origin, value: {struct: Point, fields: {x: 0, y: 1}}}}
  - {typeof: hello}
  - {complement: {str: a}}
`

func TestRunDocument(t *testing.T) {
	doc, err := Parse([]byte(shapes))
	require.NoError(t, err)

	env := NewEnv(nil)
	results, err := env.Run(doc)
	require.NoError(t, err)

	exp := []string{
		"int[5,10]",
		"int[1,2]",
		"1 | 3",
		"[0,10]",
		"int[0,4] | int[6,10]",
		"subset(NaN, number) = true",
		"cardinality(int[0,10]) = 11",
		"less(int[0,10], [5,+Inf]) = either",
		"range([5,+Inf]) = [5,+Inf]",
		"member(Point#1{x: 0, y: 0}, Point#1{x: 0, y: 0}) = true",
		"member(Point#1{x: 0, y: 0}, Point#1{x: 0, y: 1}) = false",
		`"hello"`,
		`string-{"a"}`,
	}
	res := make([]string, len(results))
	for i, r := range results {
		res[i] = r.String()
	}
	assert.Equal(t, exp, res)

	assert.Equal(t, []string{"small", "upper", "both", "origin"}, env.Names())
	tag, ok := env.Struct("Tag")
	require.True(t, ok)
	assert.Equal(t, types.Type(types.Any{}), tag.FieldType(1))
}

func TestExpressions(t *testing.T) {
	env := NewEnv(nil)
	_, err := env.DefineStruct(StructDecl{Name: "Unit"})
	require.NoError(t, err)

	testCases := []struct {
		src string
		exp string
	}{
		{"never", "never"},
		{"any", "any"},
		{"4.5", "4.5"},
		{"{lit: -.inf}", "-Inf"},
		{"{str: 12}", `"12"`},
		{"[1, {str: a}]", `1 | "a"`},
		{"{nonint: [0, 3]}", "nonint(0,3)"},
		{"{open: [0, 1]}", "nonint(0,1)"},
		{"{open: [0, 2]}", "(0,2)"},
		{"{interval: {min: 0, max: 1, max-open: true}}", "[0,1)"},
		{"{except: [b, a]}", `string-{"a","b"}`},
		{"{structs-except: [Unit]}", "struct-{Unit#1}"},
		{"{instance: {of: Unit}}", "Unit#1{}"},
		{"{not: number}", "string | struct"},
		{"{without: [number, {int: [-.inf, .inf]}]}", "-Inf | +Inf | NaN | nonint(-Inf,+Inf)"},
	}

	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			res, err := env.ExprString(tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.exp, res.Signature())
		})
	}
}

func TestExpressionErrors(t *testing.T) {
	env := NewEnv(nil)

	testCases := []struct {
		src string
		msg string
	}{
		{"missing", `unknown type "missing"`},
		{"true", "unexpected !!bool scalar"},
		{"{frob: 1}", `unknown type form "frob"`},
		{"{int: [1]}", "expected [min, max]"},
		{"{int: [.nan, 1]}", "bounds cannot be NaN"},
		{"{lit: a}", "expected a number"},
		{"{without: [1]}", "expected a list of two types"},
		{"{complement: [1, a]}", `unknown type "a"`},
		{"{complement: [1, {str: a}]}", "expected a single primitive"},
		{"{instance: {of: Nope}}", `unknown struct "Nope"`},
		{"{a: 1, b: 2}", "expected a mapping with a single key"},
		{"", "empty expression"},
	}

	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			_, err := env.ExprString(tc.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestEvalString(t *testing.T) {
	env := NewEnv(nil)

	res, err := env.EvalString("{equal: [{lit: .nan}, {lit: .nan}]}")
	require.NoError(t, err)
	assert.Equal(t, ranges.DefinitelyFalse, res.Value)

	res, err = env.EvalString("{value-equal: [1, 1]}")
	require.NoError(t, err)
	assert.Equal(t, setops.SomeEqual, res.Value)

	res, err = env.EvalString("{disjoint: [1, {str: a}]}")
	require.NoError(t, err)
	assert.Equal(t, true, res.Value)

	_, err = env.EvalString("{range: number}")
	var rangeErr ranges.RangeError
	require.ErrorAs(t, err, &rangeErr)

	_, err = env.EvalString("{range: {str: a}}")
	assert.ErrorContains(t, err, "expected a number primitive")
}

func TestDeclarationErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		msg  string
	}{
		{"DuplicateStruct", "structs: [{name: A}, {name: A}]", "struct A is already declared"},
		{"DuplicateField", "structs: [{name: A, fields: [{name: x}, {name: x}]}]", "duplicate field x"},
		{"NeverField", "structs: [{name: A, fields: [{name: x, type: never}]}]", "field x has no values"},
		{"ReservedName", "types: [{name: number, type: 1}]", `reserved name "number"`},
		{"ForwardReference", "types: [{name: a, type: b}, {name: b, type: 1}]", "type a"},
		{"BadOp", "ops: [{subset: [1]}]", "op 1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Parse([]byte(tc.src))
			require.NoError(t, err)
			_, err = NewEnv(nil).Run(doc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(shapes), 0644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, doc.Structs, 2)
	assert.Len(t, doc.Types, 4)
	assert.Len(t, doc.Ops, 13)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("structs: {"), 0644))
	_, err = Load(path)
	assert.ErrorContains(t, err, path)
}
