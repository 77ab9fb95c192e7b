package testutil

import "github.com/roach88/bct/internal/meta"

// Class returns an empty class definition.
func Class(namespace, name string, members ...any) *meta.TypeDefinition {
	return build(&meta.TypeDefinition{Namespace: namespace, Name: name, Kind: meta.KindClass}, members)
}

// Delegate returns a delegate definition whose Invoke method has the given
// return type and parameters.
func Delegate(namespace, name string, ret *meta.TypeRef, params ...*meta.ParameterDefinition) *meta.TypeDefinition {
	invoke := Method("Invoke", ret, params...)
	invoke.IsAbstract = true
	return build(&meta.TypeDefinition{Namespace: namespace, Name: name, Kind: meta.KindDelegate}, []any{invoke})
}

// TypeOfKind returns an empty definition of any kind.
func TypeOfKind(namespace, name string, kind meta.TypeKind) *meta.TypeDefinition {
	return &meta.TypeDefinition{Namespace: namespace, Name: name, Kind: kind}
}

// Generic sets t's own generic parameters and returns t.
func Generic(t *meta.TypeDefinition, params ...string) *meta.TypeDefinition {
	t.GenericParameters = params
	return t
}

// build attaches members (methods, fields, nested types) to t, wiring the
// back references.
func build(t *meta.TypeDefinition, members []any) *meta.TypeDefinition {
	for _, m := range members {
		switch m := m.(type) {
		case *meta.MethodDefinition:
			m.ContainingType = t
			t.Methods = append(t.Methods, m)
		case *meta.FieldDefinition:
			m.ContainingType = t
			t.Fields = append(t.Fields, m)
		case *meta.TypeDefinition:
			m.DeclaringType = t
			m.Namespace = ""
			t.NestedTypes = append(t.NestedTypes, m)
		default:
			panic("testutil: unsupported member type")
		}
	}
	return t
}

// Method returns an instance method. Parameter indexes follow the argument
// order. A nil ret means void.
func Method(name string, ret *meta.TypeRef, params ...*meta.ParameterDefinition) *meta.MethodDefinition {
	if ret == nil {
		ret = meta.Primitive(meta.Void)
	}
	for i, p := range params {
		p.Index = i
	}
	return &meta.MethodDefinition{Name: name, ReturnType: ret, Parameters: params}
}

// Static marks m static and returns it.
func Static(m *meta.MethodDefinition) *meta.MethodDefinition {
	m.IsStatic = true
	return m
}

// Body sets m's body source and returns m.
func Body(m *meta.MethodDefinition, source string) *meta.MethodDefinition {
	m.Body = &meta.MethodBody{Source: source}
	return m
}

// Param returns a by-value parameter.
func Param(name string, typ *meta.TypeRef) *meta.ParameterDefinition {
	return &meta.ParameterDefinition{Name: name, Type: typ, Mode: meta.ByValue}
}

// RefParam returns a by-reference parameter.
func RefParam(name string, typ *meta.TypeRef) *meta.ParameterDefinition {
	return &meta.ParameterDefinition{Name: name, Type: typ, Mode: meta.ByReference}
}

// OutParam returns an out parameter.
func OutParam(name string, typ *meta.TypeRef) *meta.ParameterDefinition {
	return &meta.ParameterDefinition{Name: name, Type: typ, Mode: meta.Out}
}

// Field returns a field definition.
func Field(name string, typ *meta.TypeRef, static bool) *meta.FieldDefinition {
	return &meta.FieldDefinition{Name: name, Type: typ, IsStatic: static}
}

// Assembly wraps types in a single-module assembly.
func Assembly(name string, types ...*meta.TypeDefinition) *meta.Assembly {
	return &meta.Assembly{
		Name:    name,
		Modules: []*meta.Module{{Name: name + ".dll", Types: types}},
	}
}

// Int is shorthand for the Int32 primitive.
func Int() *meta.TypeRef { return meta.Primitive(meta.Int32) }

// Bool is shorthand for the Boolean primitive.
func Bool() *meta.TypeRef { return meta.Primitive(meta.Boolean) }

// String is shorthand for the String primitive.
func String() *meta.TypeRef { return meta.Primitive(meta.String) }
