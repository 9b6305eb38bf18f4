package types

import (
	"fmt"
	"strings"

	"github.com/glossopoeia/settype/compiler/category"
	"github.com/glossopoeia/settype/compiler/util"
	"github.com/rjNemo/underscore"
)

type StructType interface {
	Value
	isStruct()
}

const (
	rankInstance = iota
	rankStructExcept
	rankAllStructs
)

// The set of all structs, of any descriptor.
type AllStructs struct{}

func (AllStructs) Category() category.Category { return category.Struct }
func (AllStructs) Signature() string           { return "struct" }
func (AllStructs) String() string              { return "struct" }
func (AllStructs) isType()                     {}
func (AllStructs) isStruct()                   {}
func (AllStructs) variantRank() int            { return rankAllStructs }

// The structs of one descriptor whose field values lie in the given field
// types. The instance owns its field list.
type Instance struct {
	desc   *Descriptor
	fields []Type
	sig    sigCell
}

// Create a struct instance type, panicking if the number of fields does not
// match the descriptor or if a field is Never.
func MustInstance(desc *Descriptor, fields ...Type) *Instance {
	if len(fields) != len(desc.fields) {
		panic(fmt.Sprintf("types: %s has %d fields, got %d", desc, len(desc.fields), len(fields)))
	}
	for i, f := range fields {
		if IsNever(f) {
			panic(fmt.Sprintf("types: field %s.%s cannot be never", desc, desc.fields[i].Name))
		}
	}
	return &Instance{desc: desc, fields: append([]Type{}, fields...)}
}

// The instance of the descriptor containing every value it can hold: each
// field is its declared type.
func FullInstance(desc *Descriptor) *Instance {
	return MustInstance(desc, desc.FieldTypes()...)
}

func (s *Instance) Descriptor() *Descriptor { return s.desc }
func (s *Instance) Field(i int) Type        { return s.fields[i] }

// The field types of the instance. The returned slice is a copy.
func (s *Instance) Fields() []Type {
	return append([]Type{}, s.fields...)
}

// A copy of the instance with one field replaced. Returns Never if the new
// field type is Never.
func (s *Instance) WithField(i int, t Type) Type {
	fields := s.Fields()
	fields[i] = t
	return NewInstance(s.desc, fields...)
}

func (s *Instance) Category() category.Category { return category.Struct }

func (s *Instance) Signature() string {
	return s.sig.get(func() string {
		parts := make([]string, len(s.fields))
		for i, f := range s.fields {
			parts[i] = s.desc.fields[i].Name + ": " + f.Signature()
		}
		return s.desc.String() + "{" + strings.Join(parts, ", ") + "}"
	})
}

func (s *Instance) String() string   { return s.Signature() }
func (s *Instance) isType()          {}
func (s *Instance) isStruct()        {}
func (s *Instance) variantRank() int { return rankInstance }

// All structs except those of a finite, non-empty set of descriptors.
type StructExcept struct {
	excluded []*Descriptor
}

// Create an inverted struct set, panicking if nothing is excluded.
func MustStructExcept(excluded ...*Descriptor) StructExcept {
	if len(excluded) == 0 {
		panic("types: inverted struct set must exclude at least one descriptor")
	}
	return StructExcept{util.SetUnionBy(excluded, nil, (*Descriptor).ID)}
}

// The excluded descriptors, ordered by identity. The returned slice is a copy.
func (s StructExcept) Excluded() []*Descriptor {
	return append([]*Descriptor{}, s.excluded...)
}

func (s StructExcept) Excludes(d *Descriptor) bool {
	return underscore.Any(s.excluded, func(e *Descriptor) bool { return e.id == d.id })
}

func (StructExcept) Category() category.Category { return category.Struct }

func (s StructExcept) Signature() string {
	names := underscore.Map(s.excluded, (*Descriptor).String)
	return "struct-{" + strings.Join(names, ",") + "}"
}

func (s StructExcept) String() string { return s.Signature() }
func (StructExcept) isType()          {}
func (StructExcept) isStruct()        {}
func (StructExcept) variantRank() int { return rankStructExcept }
