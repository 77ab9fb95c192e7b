package loader

import (
	"math"
	"strings"

	"github.com/roach88/bct/internal/meta"
)

var builtinTypes = map[string]meta.TypeCode{
	"void":   meta.Void,
	"bool":   meta.Boolean,
	"char":   meta.Char,
	"sbyte":  meta.Int8,
	"byte":   meta.UInt8,
	"short":  meta.Int16,
	"ushort": meta.UInt16,
	"int":    meta.Int32,
	"uint":   meta.UInt32,
	"long":   meta.Int64,
	"ulong":  meta.UInt64,
	"float":  meta.Single,
	"double": meta.Double,
	"string": meta.String,
}

// builder converts documents into meta definitions. Type definitions are
// created for the whole assembly first so that signatures can reference
// types declared later.
type builder struct {
	byFullName  map[string]*meta.TypeDefinition
	byShortName map[string][]*meta.TypeDefinition
	docs        map[*meta.TypeDefinition]*typeDoc
}

func build(doc *assemblyDoc) (*meta.Assembly, error) {
	if doc.Name == "" {
		return nil, loadErrorf(ErrCodeMissingField, doc.Pos, "assembly name is required")
	}
	b := &builder{
		byFullName:  make(map[string]*meta.TypeDefinition),
		byShortName: make(map[string][]*meta.TypeDefinition),
		docs:        make(map[*meta.TypeDefinition]*typeDoc),
	}

	asm := &meta.Assembly{Name: doc.Name}
	for _, md := range doc.Modules {
		if md.Name == "" {
			return nil, loadErrorf(ErrCodeMissingField, md.Pos, "module name is required")
		}
		mod := &meta.Module{Name: md.Name}
		for _, td := range md.Types {
			t, err := b.declare(td, nil)
			if err != nil {
				return nil, err
			}
			mod.Types = append(mod.Types, t)
		}
		asm.Modules = append(asm.Modules, mod)
	}

	var err error
	meta.Walk(asm, func(t *meta.TypeDefinition) {
		if err == nil {
			err = b.members(t)
		}
	})
	if err != nil {
		return nil, err
	}
	return asm, nil
}

// declare creates the definition for td and its nested types.
func (b *builder) declare(td *typeDoc, outer *meta.TypeDefinition) (*meta.TypeDefinition, error) {
	if td.Name == "" {
		return nil, loadErrorf(ErrCodeMissingField, td.Pos, "type name is required")
	}
	kindName := td.Kind
	if kindName == "" {
		kindName = "class"
	}
	kind, ok := meta.ParseTypeKind(kindName)
	if !ok {
		return nil, loadErrorf(ErrCodeInvalidType, td.Pos, "unknown kind %q for type %s", td.Kind, td.Name)
	}
	t := &meta.TypeDefinition{
		Name:              td.Name,
		Kind:              kind,
		GenericParameters: td.GenericParameters,
		DeclaringType:     outer,
	}
	if outer == nil {
		t.Namespace = td.Namespace
	}
	full := t.FullName()
	if _, dup := b.byFullName[full]; dup {
		return nil, loadErrorf(ErrCodeInvalidValue, td.Pos, "type %s declared twice", full)
	}
	b.byFullName[full] = t
	b.byShortName[t.Name] = append(b.byShortName[t.Name], t)
	b.docs[t] = td

	for _, nd := range td.Nested {
		nested, err := b.declare(nd, t)
		if err != nil {
			return nil, err
		}
		t.NestedTypes = append(t.NestedTypes, nested)
	}
	return t, nil
}

// members fills in the fields and methods of t.
func (b *builder) members(t *meta.TypeDefinition) error {
	td := b.docs[t]
	scope := genericScope(t)

	seen := make(map[string]bool)
	for _, fd := range td.Fields {
		if fd.Name == "" {
			return loadErrorf(ErrCodeMissingField, fd.Pos, "field name is required in %s", t.FullName())
		}
		if seen[fd.Name] {
			return loadErrorf(ErrCodeInvalidValue, fd.Pos, "field %s.%s declared twice", t.FullName(), fd.Name)
		}
		seen[fd.Name] = true
		typ, err := b.resolve(fd.Type, scope, fd.Pos)
		if err != nil {
			return err
		}
		t.Fields = append(t.Fields, &meta.FieldDefinition{
			Name:           fd.Name,
			ContainingType: t,
			Type:           typ,
			IsStatic:       fd.Static,
		})
	}

	for _, md := range td.Methods {
		m, err := b.method(t, md, scope)
		if err != nil {
			return err
		}
		t.Methods = append(t.Methods, m)
	}
	return nil
}

func (b *builder) method(t *meta.TypeDefinition, md *methodDoc, scope []string) (*meta.MethodDefinition, error) {
	if md.Name == "" {
		return nil, loadErrorf(ErrCodeMissingField, md.Pos, "method name is required in %s", t.FullName())
	}
	returns := md.Returns
	if returns == "" {
		returns = "void"
	}
	ret, err := b.resolve(returns, scope, md.Pos)
	if err != nil {
		return nil, err
	}
	m := &meta.MethodDefinition{
		Name:           md.Name,
		ContainingType: t,
		IsStatic:       md.Static,
		IsAbstract:     md.Abstract,
		IsConstructor:  md.Constructor,
		ReturnType:     ret,
		Location:       meta.Location{File: md.Pos.File, Line: md.Pos.Line, Column: md.Pos.Column},
	}
	if md.Body != nil {
		m.Body = &meta.MethodBody{Source: *md.Body, Location: m.Location}
	}

	for i, pd := range md.Parameters {
		typ, err := b.resolve(pd.Type, scope, pd.Pos)
		if err != nil {
			return nil, err
		}
		mode, err := passingMode(pd)
		if err != nil {
			return nil, err
		}
		m.Parameters = append(m.Parameters, &meta.ParameterDefinition{
			Name:  pd.Name,
			Index: i,
			Type:  typ,
			Mode:  mode,
		})
	}

	for _, ad := range md.Attributes {
		a, err := attribute(ad)
		if err != nil {
			return nil, err
		}
		m.Attributes = append(m.Attributes, a)
	}
	return m, nil
}

func passingMode(pd *paramDoc) (meta.PassingMode, error) {
	switch pd.Mode {
	case "", "value":
		return meta.ByValue, nil
	case "ref":
		return meta.ByReference, nil
	case "out":
		return meta.Out, nil
	default:
		return 0, loadErrorf(ErrCodeInvalidType, pd.Pos, "unknown passing mode %q for parameter %s", pd.Mode, pd.Name)
	}
}

func attribute(ad *attributeDoc) (*meta.CustomAttribute, error) {
	if ad.Type == "" {
		return nil, loadErrorf(ErrCodeMissingField, ad.Pos, "attribute type is required")
	}
	a := &meta.CustomAttribute{Type: &meta.TypeRef{Name: ad.Type}}
	for _, arg := range ad.Arguments {
		v, err := argument(arg)
		if err != nil {
			return nil, err
		}
		a.Arguments = append(a.Arguments, v)
	}
	return a, nil
}

// argument maps a plain literal to the metadata type its value implies and
// a typed literal to the named primitive. Values are not checked against
// their declared type here; the translator rejects mismatches.
func argument(arg *argumentDoc) (meta.AttributeArgument, error) {
	if arg.Expr != "" {
		return &meta.NonLiteral{Text: arg.Expr}, nil
	}
	if arg.Type != "" {
		code, ok := builtinTypes[arg.Type]
		if !ok || code == meta.Void {
			return nil, loadErrorf(ErrCodeInvalidType, arg.Pos, "unknown literal type %q", arg.Type)
		}
		return &meta.MetadataConstant{Type: code, Value: arg.Value}, nil
	}
	switch v := arg.Value.(type) {
	case bool:
		return &meta.MetadataConstant{Type: meta.Boolean, Value: v}, nil
	case int:
		return integerConstant(int64(v)), nil
	case int64:
		return integerConstant(v), nil
	case float64:
		return &meta.MetadataConstant{Type: meta.Double, Value: v}, nil
	case string:
		return &meta.MetadataConstant{Type: meta.String, Value: v}, nil
	default:
		return nil, loadErrorf(ErrCodeInvalidValue, arg.Pos, "unsupported attribute argument %v", arg.Value)
	}
}

// integerConstant types an untyped integer as Int32 when it fits and as
// Int64 otherwise.
func integerConstant(v int64) *meta.MetadataConstant {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return &meta.MetadataConstant{Type: meta.Int64, Value: v}
	}
	return &meta.MetadataConstant{Type: meta.Int32, Value: v}
}

// genericScope lists the generic parameters visible in t: those of the
// enclosing types first, then t's own.
func genericScope(t *meta.TypeDefinition) []string {
	if t == nil {
		return nil
	}
	return append(genericScope(t.DeclaringType), t.GenericParameters...)
}

// resolve parses a type string: a builtin keyword, "object", an in-scope
// generic parameter, or a declared type by full or unique short name, each
// optionally followed by array suffixes such as "[]" or "[,]".
func (b *builder) resolve(s string, scope []string, pos Position) (*meta.TypeRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, loadErrorf(ErrCodeMissingField, pos, "type is required")
	}
	base, ranks, ok := splitArray(s)
	if !ok {
		return nil, loadErrorf(ErrCodeInvalidType, pos, "malformed array type %q", s)
	}
	typ, err := b.resolveBase(base, scope, pos)
	if err != nil {
		return nil, err
	}
	for _, rank := range ranks {
		typ = meta.ArrayOf(typ, rank)
	}
	return typ, nil
}

func (b *builder) resolveBase(name string, scope []string, pos Position) (*meta.TypeRef, error) {
	if code, ok := builtinTypes[name]; ok {
		return meta.Primitive(code), nil
	}
	switch name {
	case "object":
		return &meta.TypeRef{Name: "System.Object"}, nil
	case "decimal":
		return &meta.TypeRef{Name: "System.Decimal", IsValueType: true}, nil
	}
	for _, g := range scope {
		if g == name {
			return meta.GenericParam(name), nil
		}
	}
	if t, ok := b.byFullName[name]; ok {
		return meta.Named(t), nil
	}
	switch candidates := b.byShortName[name]; len(candidates) {
	case 0:
		return nil, loadErrorf(ErrCodeInvalidType, pos, "unknown type %q", name)
	case 1:
		return meta.Named(candidates[0]), nil
	default:
		return nil, loadErrorf(ErrCodeInvalidType, pos, "type name %q is ambiguous, use the full name", name)
	}
}

// splitArray strips trailing array suffixes from s and returns their ranks
// in source order: "int[][,]" is ("int", [1, 2]).
func splitArray(s string) (string, []int, bool) {
	var ranks []int
	for strings.HasSuffix(s, "]") {
		open := strings.LastIndex(s, "[")
		if open <= 0 {
			return "", nil, false
		}
		inner := s[open+1 : len(s)-1]
		if strings.Trim(inner, ",") != "" {
			return "", nil, false
		}
		ranks = append([]int{len(inner) + 1}, ranks...)
		s = s[:open]
	}
	return s, ranks, true
}
