package typedoc

import (
	"fmt"
	"os"
	"strings"

	"github.com/glossopoeia/settype/compiler/setops"
	"github.com/glossopoeia/settype/compiler/types"
	"github.com/pkg/errors"
	"github.com/rjNemo/underscore"
	"gopkg.in/yaml.v3"
)

// A YAML document declaring struct descriptors, named types and operations
// over them. Structs are declared first, then types in order, so a type may
// only refer to the structs and the types declared before it.
type Document struct {
	Structs []StructDecl `yaml:"structs"`
	Types   []TypeDecl   `yaml:"types"`
	Ops     []yaml.Node  `yaml:"ops"`
}

type StructDecl struct {
	Name   string      `yaml:"name"`
	Fields []FieldDecl `yaml:"fields"`
}

// A field without a type accepts any value.
type FieldDecl struct {
	Name string    `yaml:"name"`
	Type yaml.Node `yaml:"type"`
}

type TypeDecl struct {
	Name string    `yaml:"name"`
	Type yaml.Node `yaml:"type"`
}

func Parse(src []byte) (*Document, error) {
	doc := &Document{}
	if err := yaml.Unmarshal(src, doc); err != nil {
		return nil, errors.Wrap(err, "invalid type document")
	}
	return doc, nil
}

func Load(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	doc, err := Parse(src)
	return doc, errors.WithMessage(err, path)
}

// The set operations an Env evaluates with.
type Algebra interface {
	Union(ts ...types.Type) types.Type
	Intersect(ts ...types.Type) types.Type
	Without(left types.Type, right types.Type) types.Type
	Complement(v types.Value) types.Type
	IsSubsetOf(left types.Type, right types.Type) bool
}

type plain struct{}

func (plain) Union(ts ...types.Type) types.Type     { return setops.Union(ts...) }
func (plain) Intersect(ts ...types.Type) types.Type { return setops.Intersect(ts...) }
func (plain) Without(l, r types.Type) types.Type    { return setops.Without(l, r) }
func (plain) Complement(v types.Value) types.Type   { return setops.Complement(v) }
func (plain) IsSubsetOf(l, r types.Type) bool       { return setops.IsSubsetOf(l, r) }

// Evaluates with the set operations directly, without caching.
var Plain Algebra = plain{}

// The struct descriptors and named types in scope.
type Env struct {
	alg     Algebra
	reg     *types.Registry
	structs map[string]*types.Descriptor
	named   map[string]types.Type
	names   []string
}

func NewEnv(alg Algebra) *Env {
	if alg == nil {
		alg = Plain
	}
	return &Env{
		alg:     alg,
		reg:     types.NewRegistry(),
		structs: map[string]*types.Descriptor{},
		named:   map[string]types.Type{},
	}
}

func (e *Env) Registry() *types.Registry { return e.reg }

// The names of the bound types, in binding order.
func (e *Env) Names() []string {
	return append([]string{}, e.names...)
}

func (e *Env) Lookup(name string) (types.Type, bool) {
	t, ok := e.named[name]
	return t, ok
}

func (e *Env) Struct(name string) (*types.Descriptor, bool) {
	d, ok := e.structs[name]
	return d, ok
}

// Bind a name to a type, replacing any earlier binding of the name.
func (e *Env) Bind(name string, t types.Type) error {
	if _, ok := keywords[name]; ok || name == "" {
		return errors.Errorf("cannot bind reserved name %q", name)
	}
	if _, ok := e.named[name]; !ok {
		e.names = append(e.names, name)
	}
	e.named[name] = t
	return nil
}

// Register a struct descriptor. Struct names are unique within an Env.
func (e *Env) DefineStruct(decl StructDecl) (*types.Descriptor, error) {
	if _, ok := e.structs[decl.Name]; ok {
		return nil, errors.Errorf("struct %s is already declared", decl.Name)
	}
	seen := map[string]bool{}
	fields := make([]types.Field, len(decl.Fields))
	for i, f := range decl.Fields {
		if seen[f.Name] {
			return nil, errors.Errorf("struct %s: duplicate field %s", decl.Name, f.Name)
		}
		seen[f.Name] = true

		ft := types.Type(types.Any{})
		if f.Type.Kind != 0 {
			t, err := e.Expr(&f.Type)
			if err != nil {
				return nil, errors.WithMessagef(err, "struct %s: field %s", decl.Name, f.Name)
			}
			ft = t
		}
		if types.IsNever(ft) {
			return nil, errors.Errorf("struct %s: field %s has no values", decl.Name, f.Name)
		}
		fields[i] = types.Field{Name: f.Name, Type: ft}
	}
	desc := e.reg.Define(decl.Name, fields...)
	e.structs[decl.Name] = desc
	return desc, nil
}

// Declare the document's structs and types.
func (e *Env) Declare(doc *Document) error {
	for _, s := range doc.Structs {
		if _, err := e.DefineStruct(s); err != nil {
			return err
		}
	}
	for _, d := range doc.Types {
		t, err := e.Expr(&d.Type)
		if err != nil {
			return errors.WithMessagef(err, "type %s", d.Name)
		}
		if err := e.Bind(d.Name, t); err != nil {
			return err
		}
	}
	return nil
}

// Declare the document and evaluate its operations in order.
func (e *Env) Run(doc *Document) ([]Result, error) {
	if err := e.Declare(doc); err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(doc.Ops))
	for i := range doc.Ops {
		res, err := e.Eval(&doc.Ops[i])
		if err != nil {
			return results, errors.WithMessagef(err, "op %d", i+1)
		}
		results = append(results, res)
	}
	return results, nil
}

// The outcome of an operation. A plain type expression has no op.
type Result struct {
	Op    string
	Args  []types.Type
	Value any
}

func (r Result) String() string {
	if r.Op == "" {
		return fmt.Sprint(r.Value)
	}
	return fmt.Sprintf("%s = %v", r.Call(), r.Value)
}

// The operation applied to its arguments, without the result.
func (r Result) Call() string {
	args := underscore.Map(r.Args, func(t types.Type) string { return t.String() })
	return fmt.Sprintf("%s(%s)", r.Op, strings.Join(args, ", "))
}
