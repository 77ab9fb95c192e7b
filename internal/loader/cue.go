package loader

import (
	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// decodeCUE reads the struct-based CUE form, where modules, types, fields,
// methods and nested types are keyed by name:
//
//	assembly: name: "Sample"
//	module: "Sample.dll": type: Counter: {
//		namespace: "Acme"
//		kind:      "class"
//		field: count: {type: "int", static: true}
//		method: add: {name: "Add", returns: "int", parameters: [{name: "x", type: "int"}]}
//	}
//
// A method's name defaults to its label; overloads use distinct labels
// with an explicit name.
func decodeCUE(filename string, src []byte) (*assemblyDoc, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	asm := v.LookupPath(cue.ParsePath("assembly"))
	if !asm.Exists() {
		return nil, loadErrorf(ErrCodeMissingField, cuePosition(v.Pos()), "assembly is required")
	}
	name, err := stringField(asm, "name", true)
	if err != nil {
		return nil, err
	}
	doc := &assemblyDoc{Name: name, Pos: cuePosition(asm.Pos())}

	err = eachField(v, "module", func(label string, mv cue.Value) error {
		mod := &moduleDoc{Name: label, Pos: cuePosition(mv.Pos())}
		if err := eachField(mv, "type", func(label string, tv cue.Value) error {
			t, err := decodeCUEType(label, tv)
			if err != nil {
				return err
			}
			mod.Types = append(mod.Types, t)
			return nil
		}); err != nil {
			return err
		}
		doc.Modules = append(doc.Modules, mod)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeCUEType(label string, v cue.Value) (*typeDoc, error) {
	t := &typeDoc{Name: label, Pos: cuePosition(v.Pos())}
	var err error
	if t.Namespace, err = stringField(v, "namespace", false); err != nil {
		return nil, err
	}
	if t.Kind, err = stringField(v, "kind", false); err != nil {
		return nil, err
	}
	if t.GenericParameters, err = stringList(v, "generic_parameters"); err != nil {
		return nil, err
	}

	err = eachField(v, "field", func(label string, fv cue.Value) error {
		f := &fieldDoc{Name: label, Pos: cuePosition(fv.Pos())}
		var err error
		if f.Type, err = stringField(fv, "type", true); err != nil {
			return err
		}
		if f.Static, err = boolField(fv, "static"); err != nil {
			return err
		}
		t.Fields = append(t.Fields, f)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = eachField(v, "method", func(label string, mv cue.Value) error {
		m, err := decodeCUEMethod(label, mv)
		if err != nil {
			return err
		}
		t.Methods = append(t.Methods, m)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = eachField(v, "nested", func(label string, nv cue.Value) error {
		nested, err := decodeCUEType(label, nv)
		if err != nil {
			return err
		}
		t.Nested = append(t.Nested, nested)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func decodeCUEMethod(label string, v cue.Value) (*methodDoc, error) {
	m := &methodDoc{Pos: cuePosition(v.Pos())}
	var err error
	if m.Name, err = stringField(v, "name", false); err != nil {
		return nil, err
	}
	if m.Name == "" {
		m.Name = label
	}
	if m.Returns, err = stringField(v, "returns", false); err != nil {
		return nil, err
	}
	if m.Static, err = boolField(v, "static"); err != nil {
		return nil, err
	}
	if m.Abstract, err = boolField(v, "abstract"); err != nil {
		return nil, err
	}
	if m.Constructor, err = boolField(v, "constructor"); err != nil {
		return nil, err
	}

	bodyVal := v.LookupPath(cue.ParsePath("body"))
	if bodyVal.Exists() {
		body, err := bodyVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		m.Body = &body
	}

	err = eachElem(v, "parameters", func(pv cue.Value) error {
		p := &paramDoc{Pos: cuePosition(pv.Pos())}
		var err error
		if p.Name, err = stringField(pv, "name", false); err != nil {
			return err
		}
		if p.Type, err = stringField(pv, "type", true); err != nil {
			return err
		}
		if p.Mode, err = stringField(pv, "mode", false); err != nil {
			return err
		}
		m.Parameters = append(m.Parameters, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = eachElem(v, "attributes", func(av cue.Value) error {
		a := &attributeDoc{Pos: cuePosition(av.Pos())}
		var err error
		if a.Type, err = stringField(av, "type", true); err != nil {
			return err
		}
		if err := eachElem(av, "arguments", func(argv cue.Value) error {
			arg, err := decodeCUEArgument(argv)
			if err != nil {
				return err
			}
			a.Arguments = append(a.Arguments, arg)
			return nil
		}); err != nil {
			return err
		}
		m.Attributes = append(m.Attributes, a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func decodeCUEArgument(v cue.Value) (*argumentDoc, error) {
	arg := &argumentDoc{Pos: cuePosition(v.Pos())}
	if v.Kind() == cue.StructKind {
		var err error
		if arg.Expr, err = stringField(v, "expr", false); err != nil {
			return nil, err
		}
		if arg.Type, err = stringField(v, "type", false); err != nil {
			return nil, err
		}
		if value := v.LookupPath(cue.ParsePath("value")); value.Exists() {
			if arg.Value, err = cueScalar(value); err != nil {
				return nil, err
			}
		}
		return arg, nil
	}
	value, err := cueScalar(v)
	if err != nil {
		return nil, err
	}
	arg.Value = value
	return arg, nil
}

// cueScalar converts a concrete bool, int, float or string value.
func cueScalar(v cue.Value) (any, error) {
	var (
		out any
		err error
	)
	switch v.Kind() {
	case cue.BoolKind:
		out, err = v.Bool()
	case cue.IntKind:
		out, err = v.Int64()
	case cue.FloatKind:
		out, err = v.Float64()
	case cue.StringKind:
		out, err = v.String()
	default:
		return nil, loadErrorf(ErrCodeInvalidValue, cuePosition(v.Pos()),
			"attribute argument must be a literal or {expr: ...}, got %v", v.Kind())
	}
	if err != nil {
		return nil, formatCUEError(err)
	}
	return out, nil
}

func stringField(v cue.Value, name string, required bool) (string, error) {
	fv := v.LookupPath(cue.ParsePath(name))
	if !fv.Exists() {
		if required {
			return "", loadErrorf(ErrCodeMissingField, cuePosition(v.Pos()), "%s is required", name)
		}
		return "", nil
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func boolField(v cue.Value, name string) (bool, error) {
	fv := v.LookupPath(cue.ParsePath(name))
	if !fv.Exists() {
		return false, nil
	}
	b, err := fv.Bool()
	if err != nil {
		return false, formatCUEError(err)
	}
	return b, nil
}

func stringList(v cue.Value, name string) ([]string, error) {
	var out []string
	err := eachElem(v, name, func(ev cue.Value) error {
		s, err := ev.String()
		if err != nil {
			return formatCUEError(err)
		}
		out = append(out, s)
		return nil
	})
	return out, err
}

// eachField calls fn for every regular field of the struct at name, in
// declaration order. A missing struct is not an error.
func eachField(v cue.Value, name string, fn func(label string, fv cue.Value) error) error {
	sv := v.LookupPath(cue.ParsePath(name))
	if !sv.Exists() {
		return nil
	}
	iter, err := sv.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		if err := fn(iter.Label(), iter.Value()); err != nil {
			return err
		}
	}
	return nil
}

// eachElem calls fn for every element of the list at name.
func eachElem(v cue.Value, name string, fn func(ev cue.Value) error) error {
	lv := v.LookupPath(cue.ParsePath(name))
	if !lv.Exists() {
		return nil
	}
	iter, err := lv.List()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		if err := fn(iter.Value()); err != nil {
			return err
		}
	}
	return nil
}
