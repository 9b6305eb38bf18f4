package values

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/glossopoeia/settype/compiler/types"
	"github.com/rjNemo/underscore"
)

// A runtime value: a number, a string or a struct.
type Value interface {
	fmt.Stringer
	isValue()
}

type Number float64

type String string

type Struct struct {
	desc   *types.Descriptor
	fields []Value
}

// Create a struct value, panicking if the number of fields does not match the
// descriptor.
func NewStruct(desc *types.Descriptor, fields ...Value) Struct {
	if len(fields) != desc.FieldCount() {
		panic(fmt.Sprintf("values: %s has %d fields, got %d", desc, desc.FieldCount(), len(fields)))
	}
	return Struct{desc, append([]Value{}, fields...)}
}

func (s Struct) Descriptor() *types.Descriptor { return s.desc }
func (s Struct) Field(i int) Value             { return s.fields[i] }

func (n Number) String() string { return types.FormatNumber(float64(n)) }
func (s String) String() string { return strconv.Quote(string(s)) }

func (s Struct) String() string {
	decl := s.desc.Fields()
	parts := make([]string, len(s.fields))
	for i, f := range s.fields {
		parts[i] = decl[i].Name + ": " + f.String()
	}
	return s.desc.Name() + "{" + strings.Join(parts, ", ") + "}"
}

func (Number) isValue() {}
func (String) isValue() {}
func (Struct) isValue() {}

// The smallest type containing the value.
func TypeOf(v Value) types.Type {
	switch vt := v.(type) {
	case Number:
		return types.NewLiteral(float64(vt))
	case String:
		return types.NewStrLiteral(string(vt))
	case Struct:
		fields := underscore.Map(vt.fields, TypeOf)
		return types.MustInstance(vt.desc, fields...)
	default:
		panic(fmt.Sprintf("values: unknown value variant %T", v))
	}
}

// Whether the value is a member of the type. Decided directly from the type's
// representation, without going through the set algebra.
func Contains(t types.Type, v Value) bool {
	switch tt := t.(type) {
	case types.Never:
		return false
	case types.Any:
		return true
	case *types.Union:
		return underscore.Any(tt.Items(), func(m types.Value) bool { return Contains(m, v) })
	case types.NumberType:
		n, ok := v.(Number)
		return ok && containsNumber(tt, float64(n))
	case types.StringType:
		s, ok := v.(String)
		return ok && containsString(tt, string(s))
	case types.StructType:
		s, ok := v.(Struct)
		return ok && containsStruct(tt, s)
	default:
		panic(fmt.Sprintf("values: unknown type variant %T", t))
	}
}

func containsNumber(t types.NumberType, x float64) bool {
	switch tt := t.(type) {
	case types.AllNumbers:
		return true
	case types.NumLiteral:
		return tt.Value() == x || tt.IsNaN() && math.IsNaN(x)
	case types.IntInterval:
		return types.IsInteger(x) && tt.Min() <= x && x <= tt.Max()
	case types.NonIntInterval:
		return !types.IsIntegralBound(x) && !math.IsNaN(x) && tt.Min() < x && x < tt.Max()
	case types.Interval:
		above := tt.Min() < x || !tt.MinOpen() && tt.Min() == x
		below := x < tt.Max() || !tt.MaxOpen() && tt.Max() == x
		return above && below
	default:
		panic(fmt.Sprintf("values: unknown number variant %T", t))
	}
}

func containsString(t types.StringType, s string) bool {
	switch tt := t.(type) {
	case types.AllStrings:
		return true
	case types.StrLiteral:
		return tt.Value() == s
	case types.StrExcept:
		return !tt.Excludes(s)
	default:
		panic(fmt.Sprintf("values: unknown string variant %T", t))
	}
}

func containsStruct(t types.StructType, s Struct) bool {
	switch tt := t.(type) {
	case types.AllStructs:
		return true
	case types.StructExcept:
		return !tt.Excludes(s.desc)
	case *types.Instance:
		if tt.Descriptor() != s.desc {
			return false
		}
		for i, f := range s.fields {
			if !Contains(tt.Field(i), f) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("values: unknown struct variant %T", t))
	}
}
