package meta

// Index resolves qualified names against the types of an assembly.
// Types are indexed under their full name; methods and fields under
// "<type full name>.<member name>". Overloaded methods share one key.
type Index struct {
	types   map[string]*TypeDefinition
	methods map[string][]*MethodDefinition
	fields  map[string]*FieldDefinition
}

// NewIndex walks every module of asm, including nested types.
func NewIndex(asm *Assembly) *Index {
	idx := &Index{
		types:   make(map[string]*TypeDefinition),
		methods: make(map[string][]*MethodDefinition),
		fields:  make(map[string]*FieldDefinition),
	}
	for _, mod := range asm.Modules {
		for _, t := range mod.Types {
			idx.addType(t)
		}
	}
	return idx
}

func (idx *Index) addType(t *TypeDefinition) {
	name := t.FullName()
	idx.types[name] = t
	for _, m := range t.Methods {
		key := name + "." + m.Name
		idx.methods[key] = append(idx.methods[key], m)
	}
	for _, f := range t.Fields {
		idx.fields[name+"."+f.Name] = f
	}
	for _, nested := range t.NestedTypes {
		idx.addType(nested)
	}
}

// Type returns the type with the given full name.
func (idx *Index) Type(name string) (*TypeDefinition, bool) {
	t, ok := idx.types[name]
	return t, ok
}

// Methods returns every overload registered under "<type>.<method>".
func (idx *Index) Methods(qualified string) []*MethodDefinition {
	return idx.methods[qualified]
}

// Field returns the field registered under "<type>.<field>".
func (idx *Index) Field(qualified string) (*FieldDefinition, bool) {
	f, ok := idx.fields[qualified]
	return f, ok
}

// Walk calls fn for every type in declaration order, outer types before
// their nested types.
func Walk(asm *Assembly, fn func(*TypeDefinition)) {
	var visit func(*TypeDefinition)
	visit = func(t *TypeDefinition) {
		fn(t)
		for _, nested := range t.NestedTypes {
			visit(nested)
		}
	}
	for _, mod := range asm.Modules {
		for _, t := range mod.Types {
			visit(t)
		}
	}
}
