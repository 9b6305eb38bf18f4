package typedoc

import (
	"github.com/glossopoeia/settype/compiler/ranges"
	"github.com/glossopoeia/settype/compiler/setops"
	"github.com/glossopoeia/settype/compiler/types"
	"github.com/glossopoeia/settype/compiler/values"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type relation func(e *Env, l types.Type, r types.Type) any

var relations = map[string]relation{
	"subset":   func(e *Env, l, r types.Type) any { return e.alg.IsSubsetOf(l, r) },
	"superset": func(e *Env, l, r types.Type) any { return e.alg.IsSubsetOf(r, l) },
	"disjoint": func(e *Env, l, r types.Type) any { return types.IsNever(e.alg.Intersect(l, r)) },
	"same":     func(_ *Env, l, r types.Type) any { return types.Same(l, r) },

	"equal":       func(_ *Env, l, r types.Type) any { return setops.Equal(l, r) },
	"not-equal":   func(_ *Env, l, r types.Type) any { return setops.NotEqual(l, r) },
	"value-equal": func(_ *Env, l, r types.Type) any { return setops.ValueEqual(l, r) },

	"less":          func(_ *Env, l, r types.Type) any { return ranges.Less(l, r) },
	"less-equal":    func(_ *Env, l, r types.Type) any { return ranges.LessEqual(l, r) },
	"greater":       func(_ *Env, l, r types.Type) any { return ranges.Greater(l, r) },
	"greater-equal": func(_ *Env, l, r types.Type) any { return ranges.GreaterEqual(l, r) },
}

// Evaluate an operation from a single line of YAML.
func (e *Env) EvalString(src string) (Result, error) {
	n, err := parseNode(src)
	if err != nil {
		return Result{}, err
	}
	return e.Eval(n)
}

// Evaluate an operation: a relation between two types, a query on one type,
// or otherwise a type expression whose result is the type itself.
func (e *Env) Eval(n *yaml.Node) (Result, error) {
	n = resolve(n)
	if n.Kind == yaml.MappingNode && len(n.Content) == 2 {
		op, arg := n.Content[0].Value, resolve(n.Content[1])
		if rel, ok := relations[op]; ok {
			l, r, err := e.pair(arg)
			if err != nil {
				return Result{}, err
			}
			return Result{op, []types.Type{l, r}, rel(e, l, r)}, nil
		}
		switch op {
		case "cardinality":
			t, err := e.Expr(arg)
			if err != nil {
				return Result{}, err
			}
			return Result{op, []types.Type{t}, setops.Cardinality(t)}, nil
		case "range":
			return e.numberRange(arg)
		case "member":
			return e.member(arg)
		case "typeof":
			v, err := e.Value(arg)
			if err != nil {
				return Result{}, err
			}
			return Result{Value: values.TypeOf(v)}, nil
		}
	}
	t, err := e.Expr(n)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: t}, nil
}

func (e *Env) numberRange(n *yaml.Node) (Result, error) {
	t, err := e.Expr(n)
	if err != nil {
		return Result{}, err
	}
	num, ok := t.(types.NumberType)
	if !ok {
		return Result{}, errorf(n, "range of %v: expected a number primitive", t)
	}
	rng, err := ranges.NewRange(num)
	if err != nil {
		return Result{}, errors.WithMessagef(err, "line %d", n.Line)
	}
	return Result{"range", []types.Type{t}, rng}, nil
}

type memberDecl struct {
	Type  yaml.Node `yaml:"type"`
	Value yaml.Node `yaml:"value"`
}

func (e *Env) member(n *yaml.Node) (Result, error) {
	var decl memberDecl
	if err := n.Decode(&decl); err != nil {
		return Result{}, errorf(n, "invalid member query: %v", err)
	}
	t, err := e.Expr(&decl.Type)
	if err != nil {
		return Result{}, err
	}
	v, err := e.Value(&decl.Value)
	if err != nil {
		return Result{}, err
	}
	return Result{"member", []types.Type{t, values.TypeOf(v)}, values.Contains(t, v)}, nil
}

type structValueDecl struct {
	Struct string               `yaml:"struct"`
	Fields map[string]yaml.Node `yaml:"fields"`
}

// Decode a value: a number, a string, or a struct value with every field
// given.
func (e *Env) Value(n *yaml.Node) (values.Value, error) {
	n = resolve(n)
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!int" || n.Tag == "!!float" {
			x, err := number(n)
			return values.Number(x), err
		}
		return values.String(n.Value), nil
	case yaml.MappingNode:
		var decl structValueDecl
		if err := n.Decode(&decl); err != nil {
			return nil, errorf(n, "invalid struct value: %v", err)
		}
		desc, ok := e.structs[decl.Struct]
		if !ok {
			return nil, errorf(n, "unknown struct %q", decl.Struct)
		}
		fields := make([]values.Value, desc.FieldCount())
		for name, fn := range decl.Fields {
			i := desc.FieldIndex(name)
			if i < 0 {
				return nil, errorf(&fn, "struct %s has no field %s", decl.Struct, name)
			}
			v, err := e.Value(&fn)
			if err != nil {
				return nil, err
			}
			fields[i] = v
		}
		for i, f := range fields {
			if f == nil {
				return nil, errorf(n, "struct %s value is missing field %s", decl.Struct, desc.Fields()[i].Name)
			}
		}
		return values.NewStruct(desc, fields...), nil
	default:
		return nil, errorf(n, "expected a value")
	}
}
