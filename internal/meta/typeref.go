package meta

import "strings"

// TypeCode identifies primitive types. Everything else is NotPrimitive.
type TypeCode int

const (
	NotPrimitive TypeCode = iota
	Void
	Boolean
	Char
	Int8
	UInt8
	Int16
	UInt16
	Int32
	UInt32
	Int64
	UInt64
	Single
	Double
	String
)

var primitiveNames = map[TypeCode]string{
	Void:    "System.Void",
	Boolean: "System.Boolean",
	Char:    "System.Char",
	Int8:    "System.SByte",
	UInt8:   "System.Byte",
	Int16:   "System.Int16",
	UInt16:  "System.UInt16",
	Int32:   "System.Int32",
	UInt32:  "System.UInt32",
	Int64:   "System.Int64",
	UInt64:  "System.UInt64",
	Single:  "System.Single",
	Double:  "System.Double",
	String:  "System.String",
}

// String returns the framework name of the primitive ("System.Int32").
func (c TypeCode) String() string {
	if name, ok := primitiveNames[c]; ok {
		return name
	}
	return "NotPrimitive"
}

// IsIntegral reports whether values of this code are integers.
func (c TypeCode) IsIntegral() bool {
	switch c {
	case Char, Int8, UInt8, Int16, UInt16, Int32, UInt32, Int64, UInt64:
		return true
	}
	return false
}

// IsFloatingPoint reports whether values of this code are real numbers.
func (c TypeCode) IsFloatingPoint() bool {
	return c == Single || c == Double
}

// TypeRef references a type from a signature, field or attribute.
//
// Exactly one of the following shapes applies:
//   - primitive: Code != NotPrimitive, Name is the framework name
//   - array: Element != nil, Rank >= 1
//   - generic parameter: GenericParameter != ""
//   - named type: Name is the full name, Definition may point at the declaration
type TypeRef struct {
	Name             string
	Code             TypeCode
	IsValueType      bool
	IsEnum           bool
	Element          *TypeRef
	Rank             int
	GenericParameter string
	Definition       *TypeDefinition
}

// Primitive returns a reference to a primitive type.
func Primitive(code TypeCode) *TypeRef {
	return &TypeRef{
		Name:        code.String(),
		Code:        code,
		IsValueType: code != String && code != NotPrimitive,
	}
}

// ArrayOf returns a reference to an array of elem with the given rank.
func ArrayOf(elem *TypeRef, rank int) *TypeRef {
	return &TypeRef{Element: elem, Rank: rank}
}

// Named returns a reference to a declared type.
func Named(def *TypeDefinition) *TypeRef {
	return &TypeRef{
		Name:        def.FullName(),
		IsValueType: def.Kind == KindStruct || def.Kind == KindEnum,
		IsEnum:      def.Kind == KindEnum,
		Definition:  def,
	}
}

// GenericParam returns a reference to a type generic parameter.
func GenericParam(name string) *TypeRef {
	return &TypeRef{Name: name, GenericParameter: name}
}

// IsArray reports whether the reference denotes an array.
func (t *TypeRef) IsArray() bool {
	return t != nil && t.Element != nil
}

// IsStruct reports whether the reference denotes a user-defined value type.
func (t *TypeRef) IsStruct() bool {
	return t.IsValueType && !t.IsEnum && t.Code == NotPrimitive
}

// String renders the type the way a signature would show it.
func (t *TypeRef) String() string {
	if t == nil {
		return primitiveNames[Void]
	}
	if t.Element != nil {
		return t.Element.String() + ArraySuffix(t.Rank)
	}
	return t.Name
}

// ArraySuffix returns the documentation-id suffix for an array of the given
// rank: "[]" for vectors, "[0:,0:]" for two dimensions and so on.
func ArraySuffix(rank int) string {
	if rank <= 1 {
		return "[]"
	}
	dims := make([]string, rank)
	for i := range dims {
		dims[i] = "0:"
	}
	return "[" + strings.Join(dims, ",") + "]"
}
