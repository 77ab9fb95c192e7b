package meta

import "strings"

// Assembly is the unit of translation.
type Assembly struct {
	Name    string
	Modules []*Module
}

// Module groups top-level type definitions.
type Module struct {
	Name  string
	Types []*TypeDefinition
}

// TypeKind categorizes a type definition.
type TypeKind int

const (
	KindClass TypeKind = iota
	KindDelegate
	KindInterface
	KindStruct
	KindEnum
)

var typeKindNames = map[TypeKind]string{
	KindClass:     "class",
	KindDelegate:  "delegate",
	KindInterface: "interface",
	KindStruct:    "struct",
	KindEnum:      "enum",
}

func (k TypeKind) String() string {
	if name, ok := typeKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseTypeKind maps a kind name ("class", "delegate", ...) to a TypeKind.
func ParseTypeKind(s string) (TypeKind, bool) {
	for k, name := range typeKindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// TypeDefinition is a class, delegate, interface, struct or enum.
type TypeDefinition struct {
	Namespace         string
	Name              string
	Kind              TypeKind
	GenericParameters []string

	// DeclaringType is non-nil for nested types.
	DeclaringType *TypeDefinition
	NestedTypes   []*TypeDefinition

	Fields  []*FieldDefinition
	Methods []*MethodDefinition
}

// FullName returns the namespace-qualified name, with enclosing types joined by '.'.
func (t *TypeDefinition) FullName() string {
	if t.DeclaringType != nil {
		return t.DeclaringType.FullName() + "." + t.Name
	}
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// String implements fmt.Stringer.
func (t *TypeDefinition) String() string {
	return t.FullName()
}

// Method returns the first method with the given name, or nil.
func (t *TypeDefinition) Method(name string) *MethodDefinition {
	for _, m := range t.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// MethodDefinition describes a method and its body.
type MethodDefinition struct {
	Name           string
	ContainingType *TypeDefinition
	IsStatic       bool
	IsAbstract     bool
	IsConstructor  bool
	Parameters     []*ParameterDefinition
	ReturnType     *TypeRef
	Attributes     []*CustomAttribute
	Body           *MethodBody
	Location       Location
}

// IsVoid reports whether the method returns nothing.
func (m *MethodDefinition) IsVoid() bool {
	return m.ReturnType == nil || m.ReturnType.Code == Void
}

// String implements fmt.Stringer.
func (m *MethodDefinition) String() string {
	var b strings.Builder
	if m.ContainingType != nil {
		b.WriteString(m.ContainingType.FullName())
		b.WriteByte('.')
	}
	b.WriteString(m.Name)
	b.WriteByte('(')
	for i, p := range m.Parameters {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.Type.String())
	}
	b.WriteByte(')')
	return b.String()
}

// MethodBody holds the body source handed to the statement translator.
type MethodBody struct {
	Source   string
	Location Location
}

// FieldDefinition describes a field of a type.
type FieldDefinition struct {
	Name           string
	ContainingType *TypeDefinition
	Type           *TypeRef
	IsStatic       bool
}

// PassingMode is how a parameter is passed.
type PassingMode int

const (
	ByValue PassingMode = iota
	ByReference
	Out
)

func (m PassingMode) String() string {
	switch m {
	case ByReference:
		return "ref"
	case Out:
		return "out"
	default:
		return "value"
	}
}

// ParameterDefinition describes a method parameter.
type ParameterDefinition struct {
	Name  string
	Index int
	Type  *TypeRef
	Mode  PassingMode
}

// IsByReference reports whether the parameter is passed by reference or as out.
func (p *ParameterDefinition) IsByReference() bool {
	return p.Mode == ByReference || p.Mode == Out
}

// CustomAttribute is an attribute attached to a method.
type CustomAttribute struct {
	Type      *TypeRef
	Arguments []AttributeArgument
}

// AttributeArgument is either a *MetadataConstant or a *NonLiteral.
type AttributeArgument interface {
	attributeArgument()
}

// MetadataConstant is a compile-time literal attribute argument.
type MetadataConstant struct {
	Type  TypeCode
	Value any
}

func (*MetadataConstant) attributeArgument() {}

// NonLiteral is an attribute argument that is not a compile-time literal
// (typeof expressions, arrays, enum references).
type NonLiteral struct {
	Text string
}

func (*NonLiteral) attributeArgument() {}

// Location is a source position supplied by debug information.
type Location struct {
	File   string
	Line   int
	Column int
}

// IsValid reports whether the location carries a file and line.
func (l Location) IsValid() bool {
	return l.File != "" && l.Line > 0
}
