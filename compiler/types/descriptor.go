package types

import (
	"fmt"
	"sync"

	"github.com/glossopoeia/settype/compiler/util"
	"github.com/rjNemo/underscore"
)

// Identifies a descriptor within its registry. Identifiers are assigned in
// definition order starting at 1, so the same sequence of definitions yields
// the same identifiers on every run.
type DescriptorID int

// A named field of a struct descriptor, with the type of values it may hold.
type Field struct {
	Name string
	Type Type
}

// A descriptor is the named field schema of a struct. Descriptors are compared
// by identity: two descriptors defined separately with the same name and the
// same fields are different struct types. Identity is the registry-assigned id,
// never the memory address.
type Descriptor struct {
	id     DescriptorID
	name   string
	fields []Field
}

func (d *Descriptor) ID() DescriptorID { return d.id }
func (d *Descriptor) Name() string     { return d.name }
func (d *Descriptor) FieldCount() int  { return len(d.fields) }

// The declared fields of the descriptor. The returned slice is a copy.
func (d *Descriptor) Fields() []Field {
	res := make([]Field, len(d.fields))
	copy(res, d.fields)
	return res
}

func (d *Descriptor) FieldType(i int) Type {
	return d.fields[i].Type
}

// The declared field types, in field order.
func (d *Descriptor) FieldTypes() []Type {
	return underscore.Map(d.fields, func(f Field) Type { return f.Type })
}

// The index of the named field, or -1 when the descriptor has no such field.
func (d *Descriptor) FieldIndex(name string) int {
	for i, f := range d.fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("%s#%d", d.name, d.id)
}

// Three-way comparison of descriptors for the canonical ordering: by field
// count, then by name, then by identity.
func CompareDescriptors(l *Descriptor, r *Descriptor) int {
	if c := util.Compare(len(l.fields), len(r.fields)); c != 0 {
		return c
	}
	if c := util.Compare(l.name, r.name); c != 0 {
		return c
	}
	return util.Compare(l.id, r.id)
}

// Whether two descriptors describe the same shape: same name, same field names
// in the same order, and field types with equal signatures. Used when the same
// struct name is declared in more than one scope, to decide whether values of
// one can stand in for the other. Compatible descriptors are still distinct
// types to the set algebra.
func Compatible(l *Descriptor, r *Descriptor) bool {
	if l == r {
		return true
	}
	if l.name != r.name || len(l.fields) != len(r.fields) {
		return false
	}
	for i := range l.fields {
		if l.fields[i].Name != r.fields[i].Name {
			return false
		}
		if l.fields[i].Type.Signature() != r.fields[i].Type.Signature() {
			return false
		}
	}
	return true
}

// A registry defines descriptors and hands out their identities. Descriptors
// from different registries must not be mixed in the same type, since their
// identifiers overlap.
type Registry struct {
	mu     sync.Mutex
	descs  []*Descriptor
	byName map[string][]*Descriptor
}

func NewRegistry() *Registry {
	return &Registry{byName: map[string][]*Descriptor{}}
}

// Define a new descriptor. Panics if a field type is Never, since no instance
// could ever be built, or if two fields share a name.
func (r *Registry) Define(name string, fields ...Field) *Descriptor {
	seen := map[string]struct{}{}
	for _, f := range fields {
		if IsNever(f.Type) {
			panic(fmt.Sprintf("types: field %s.%s cannot have type never", name, f.Name))
		}
		if _, ok := seen[f.Name]; ok {
			panic(fmt.Sprintf("types: duplicate field %s.%s", name, f.Name))
		}
		seen[f.Name] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	d := &Descriptor{
		id:     DescriptorID(len(r.descs) + 1),
		name:   name,
		fields: append([]Field{}, fields...),
	}
	r.descs = append(r.descs, d)
	r.byName[name] = append(r.byName[name], d)
	return d
}

// All descriptors defined with the given name, in definition order.
func (r *Registry) Lookup(name string) []*Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Descriptor{}, r.byName[name]...)
}

func (r *Registry) Get(id DescriptorID) (*Descriptor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id < 1 || int(id) > len(r.descs) {
		return nil, false
	}
	return r.descs[id-1], true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.descs)
}
