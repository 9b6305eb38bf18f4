package typedoc

import (
	"math"

	"github.com/glossopoeia/settype/compiler/types"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var keywords = map[string]types.Type{
	"never":  types.Never{},
	"any":    types.Any{},
	"number": types.AllNumbers{},
	"string": types.AllStrings{},
	"struct": types.AllStructs{},
}

// Decode a type expression from a single line of YAML.
func (e *Env) ExprString(src string) (types.Type, error) {
	n, err := parseNode(src)
	if err != nil {
		return nil, err
	}
	return e.Expr(n)
}

// Decode a type expression. A number is a literal, a name is a keyword or a
// bound type, a sequence is the union of its elements, and a mapping with a
// single key applies the form the key names.
func (e *Env) Expr(n *yaml.Node) (types.Type, error) {
	n = resolve(n)
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!int", "!!float":
			x, err := number(n)
			if err != nil {
				return nil, err
			}
			return types.NewLiteral(x), nil
		case "!!str":
			if t, ok := keywords[n.Value]; ok {
				return t, nil
			}
			if t, ok := e.named[n.Value]; ok {
				return t, nil
			}
			return nil, errorf(n, "unknown type %q", n.Value)
		}
		return nil, errorf(n, "unexpected %s scalar", n.Tag)
	case yaml.SequenceNode:
		ts, err := e.exprs(n)
		if err != nil {
			return nil, err
		}
		return e.alg.Union(ts...), nil
	case yaml.MappingNode:
		form, arg, err := single(n)
		if err != nil {
			return nil, err
		}
		return e.form(form, arg)
	default:
		return nil, errorf(n, "expected a type expression")
	}
}

func (e *Env) form(form *yaml.Node, arg *yaml.Node) (types.Type, error) {
	switch form.Value {
	case "lit":
		x, err := number(arg)
		if err != nil {
			return nil, err
		}
		return types.NewLiteral(x), nil
	case "str":
		if arg.Kind != yaml.ScalarNode {
			return nil, errorf(arg, "expected a string")
		}
		return types.NewStrLiteral(arg.Value), nil
	case "int", "nonint", "closed", "open":
		min, max, err := bounds(arg)
		if err != nil {
			return nil, err
		}
		switch form.Value {
		case "int":
			return types.NewIntInterval(min, max), nil
		case "nonint":
			return types.NewNonIntInterval(min, max), nil
		case "closed":
			return types.NewClosedInterval(min, max), nil
		default:
			return types.NewOpenInterval(min, max), nil
		}
	case "interval":
		return interval(arg)
	case "except":
		strs, err := scalars(arg)
		if err != nil {
			return nil, err
		}
		return types.NewStrExcept(strs...), nil
	case "structs-except":
		names, err := scalars(arg)
		if err != nil {
			return nil, err
		}
		descs := make([]*types.Descriptor, len(names))
		for i, name := range names {
			d, ok := e.structs[name]
			if !ok {
				return nil, errorf(arg, "unknown struct %s", name)
			}
			descs[i] = d
		}
		return types.NewStructExcept(descs...), nil
	case "instance":
		return e.instance(arg)
	case "union", "intersect":
		ts, err := e.exprs(arg)
		if err != nil {
			return nil, err
		}
		if form.Value == "union" {
			return e.alg.Union(ts...), nil
		}
		return e.alg.Intersect(ts...), nil
	case "without":
		l, r, err := e.pair(arg)
		if err != nil {
			return nil, err
		}
		return e.alg.Without(l, r), nil
	case "complement":
		t, err := e.Expr(arg)
		if err != nil {
			return nil, err
		}
		v, ok := t.(types.Value)
		if !ok {
			return nil, errorf(arg, "complement of %v: expected a single primitive", t)
		}
		return e.alg.Complement(v), nil
	case "not":
		t, err := e.Expr(arg)
		if err != nil {
			return nil, err
		}
		return e.alg.Without(types.Any{}, t), nil
	default:
		return nil, errorf(form, "unknown type form %q", form.Value)
	}
}

type intervalDecl struct {
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	MinOpen bool    `yaml:"min-open"`
	MaxOpen bool    `yaml:"max-open"`
}

func interval(n *yaml.Node) (types.Type, error) {
	decl := intervalDecl{Min: math.Inf(-1), Max: math.Inf(1)}
	if err := n.Decode(&decl); err != nil {
		return nil, errorf(n, "invalid interval: %v", err)
	}
	if math.IsNaN(decl.Min) || math.IsNaN(decl.Max) {
		return nil, errorf(n, "interval bounds cannot be NaN")
	}
	return types.NewInterval(decl.Min, decl.Max, decl.MinOpen, decl.MaxOpen), nil
}

type instanceDecl struct {
	Of     string               `yaml:"of"`
	Fields map[string]yaml.Node `yaml:"fields"`
}

// An instance of a declared struct. Fields left out take their declared type.
func (e *Env) instance(n *yaml.Node) (types.Type, error) {
	var decl instanceDecl
	if err := n.Decode(&decl); err != nil {
		return nil, errorf(n, "invalid instance: %v", err)
	}
	desc, ok := e.structs[decl.Of]
	if !ok {
		return nil, errorf(n, "unknown struct %q", decl.Of)
	}
	fields := desc.FieldTypes()
	for name, fn := range decl.Fields {
		i := desc.FieldIndex(name)
		if i < 0 {
			return nil, errorf(&fn, "struct %s has no field %s", decl.Of, name)
		}
		t, err := e.Expr(&fn)
		if err != nil {
			return nil, err
		}
		fields[i] = t
	}
	return types.NewInstance(desc, fields...), nil
}

func (e *Env) exprs(n *yaml.Node) ([]types.Type, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, errorf(n, "expected a list of types")
	}
	ts := make([]types.Type, len(n.Content))
	for i, c := range n.Content {
		t, err := e.Expr(c)
		if err != nil {
			return nil, err
		}
		ts[i] = t
	}
	return ts, nil
}

func (e *Env) pair(n *yaml.Node) (types.Type, types.Type, error) {
	if n.Kind != yaml.SequenceNode || len(n.Content) != 2 {
		return nil, nil, errorf(n, "expected a list of two types")
	}
	ts, err := e.exprs(n)
	if err != nil {
		return nil, nil, err
	}
	return ts[0], ts[1], nil
}

func bounds(n *yaml.Node) (float64, float64, error) {
	if n.Kind != yaml.SequenceNode || len(n.Content) != 2 {
		return 0, 0, errorf(n, "expected [min, max]")
	}
	min, err := number(n.Content[0])
	if err != nil {
		return 0, 0, err
	}
	max, err := number(n.Content[1])
	if err != nil {
		return 0, 0, err
	}
	if math.IsNaN(min) || math.IsNaN(max) {
		return 0, 0, errorf(n, "bounds cannot be NaN")
	}
	return min, max, nil
}

func number(n *yaml.Node) (float64, error) {
	n = resolve(n)
	var x float64
	if n.Kind != yaml.ScalarNode || n.Tag != "!!int" && n.Tag != "!!float" {
		return 0, errorf(n, "expected a number")
	}
	if err := n.Decode(&x); err != nil {
		return 0, errorf(n, "invalid number: %v", err)
	}
	return x, nil
}

func scalars(n *yaml.Node) ([]string, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, errorf(n, "expected a list")
	}
	res := make([]string, len(n.Content))
	for i, c := range n.Content {
		if c.Kind != yaml.ScalarNode {
			return nil, errorf(c, "expected a scalar")
		}
		res[i] = c.Value
	}
	return res, nil
}

// The key and value of a mapping with exactly one entry.
func single(n *yaml.Node) (*yaml.Node, *yaml.Node, error) {
	if len(n.Content) != 2 {
		return nil, nil, errorf(n, "expected a mapping with a single key")
	}
	return n.Content[0], resolve(n.Content[1]), nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for {
		switch {
		case n.Kind == yaml.DocumentNode && len(n.Content) == 1:
			n = n.Content[0]
		case n.Kind == yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
}

func parseNode(src string) (*yaml.Node, error) {
	var n yaml.Node
	if err := yaml.Unmarshal([]byte(src), &n); err != nil {
		return nil, errors.Wrap(err, "invalid expression")
	}
	if n.Kind == 0 {
		return nil, errors.New("empty expression")
	}
	return &n, nil
}

func errorf(n *yaml.Node, format string, args ...any) error {
	return errors.Errorf("line %d: "+format, append([]any{n.Line}, args...)...)
}
