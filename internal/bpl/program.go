package bpl

import (
	"fmt"
	"strings"
)

// VarKind is the storage class of a Variable.
type VarKind int

const (
	FormalIn VarKind = iota
	FormalOut
	Local
)

// Variable is a procedure formal or an implementation local.
type Variable struct {
	Name string
	Type Type
	Kind VarKind
}

// NewFormal creates a formal in input (in == true) or output position.
func NewFormal(name string, typ Type, in bool) *Variable {
	kind := FormalOut
	if in {
		kind = FormalIn
	}
	return &Variable{Name: name, Type: typ, Kind: kind}
}

// NewLocal creates an implementation local.
func NewLocal(name string, typ Type) *Variable {
	return &Variable{Name: name, Type: typ, Kind: Local}
}

// IsFormal reports whether v is a formal in either position.
func (v *Variable) IsFormal() bool {
	return v.Kind == FormalIn || v.Kind == FormalOut
}

// Decl returns the "name: type" form used in signatures and var lists.
func (v *Variable) Decl() string {
	return v.Name + ": " + v.Type.String()
}

// Attribute is a key with positional parameters, rendered {:key p1, p2}.
type Attribute struct {
	Key    string
	Params []Expr
}

func (a *Attribute) String() string {
	if len(a.Params) == 0 {
		return "{:" + a.Key + "}"
	}
	params := make([]string, len(a.Params))
	for i, p := range a.Params {
		params[i] = p.String()
	}
	return "{:" + a.Key + " " + strings.Join(params, ", ") + "}"
}

// Decl is a top-level declaration.
type Decl interface {
	DeclName() string
	decl()
}

// TypeDecl declares an uninterpreted sort.
type TypeDecl struct {
	Name string
}

func (*TypeDecl) decl() {}

func (d *TypeDecl) DeclName() string { return d.Name }

// Constant is a named symbolic value. Delegate targets are unique int
// constants named after the target procedure.
type Constant struct {
	Name   string
	Type   Type
	Unique bool
}

func (*Constant) decl() {}

func (c *Constant) DeclName() string { return c.Name }

// Ident returns an expression referencing the constant.
func (c *Constant) Ident() *IdentExpr {
	return &IdentExpr{Name: c.Name, Typ: c.Type}
}

// GlobalVariable is program-wide mutable storage (field storage).
type GlobalVariable struct {
	Name string
	Type Type
}

func (*GlobalVariable) decl() {}

func (g *GlobalVariable) DeclName() string { return g.Name }

// Ident returns an expression referencing the global.
func (g *GlobalVariable) Ident() *IdentExpr {
	return &IdentExpr{Name: g.Name, Typ: g.Type}
}

// Procedure is a signature: name, ordered in-formals and out-formals.
type Procedure struct {
	Name       string
	InParams   []*Variable
	OutParams  []*Variable
	Attributes []*Attribute
}

func (*Procedure) decl() {}

func (p *Procedure) DeclName() string { return p.Name }

// Implementation is a body bound to one Procedure.
type Implementation struct {
	Proc       *Procedure
	Locals     []*Variable
	Blocks     []*Block
	Attributes []*Attribute
}

func (*Implementation) decl() {}

func (i *Implementation) DeclName() string { return i.Proc.Name }

// AddAttribute appends an attribute to the implementation.
func (i *Implementation) AddAttribute(key string, params ...Expr) {
	i.Attributes = append(i.Attributes, &Attribute{Key: key, Params: params})
}

// Block returns the block with the given ID, or nil.
func (i *Implementation) Block(id BlockID) *Block {
	for _, b := range i.Blocks {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// Entry returns the first block.
func (i *Implementation) Entry() *Block {
	if len(i.Blocks) == 0 {
		return nil
	}
	return i.Blocks[0]
}

// Validate checks block-level well-formedness: at least one block, unique
// IDs and labels, one transfer per block, and goto targets that exist.
func (i *Implementation) Validate() error {
	if len(i.Blocks) == 0 {
		return fmt.Errorf("implementation %s: no blocks", i.Proc.Name)
	}
	ids := make(map[BlockID]bool, len(i.Blocks))
	labels := make(map[string]bool, len(i.Blocks))
	for _, b := range i.Blocks {
		if ids[b.ID] {
			return fmt.Errorf("implementation %s: duplicate block id %d", i.Proc.Name, b.ID)
		}
		ids[b.ID] = true
		if labels[b.Label] {
			return fmt.Errorf("implementation %s: duplicate label %q", i.Proc.Name, b.Label)
		}
		labels[b.Label] = true
		if b.Transfer == nil {
			return fmt.Errorf("implementation %s: block %q has no transfer", i.Proc.Name, b.Label)
		}
	}
	for _, b := range i.Blocks {
		for _, target := range b.Transfer.Successors() {
			if !ids[target] {
				return fmt.Errorf("implementation %s: block %q jumps to unknown block %d", i.Proc.Name, b.Label, target)
			}
		}
	}
	return nil
}

// Program is the ordered collection of top-level declarations.
type Program struct {
	Decls []Decl
}

// NewProgram returns a program with the Ref sort declared.
func NewProgram() *Program {
	return &Program{Decls: []Decl{&TypeDecl{Name: string(Ref)}}}
}

// Add appends a declaration.
func (p *Program) Add(d Decl) {
	p.Decls = append(p.Decls, d)
}

// Procedures returns every procedure in declaration order.
func (p *Program) Procedures() []*Procedure {
	var procs []*Procedure
	for _, d := range p.Decls {
		if proc, ok := d.(*Procedure); ok {
			procs = append(procs, proc)
		}
	}
	return procs
}

// Implementations returns every implementation in declaration order.
func (p *Program) Implementations() []*Implementation {
	var impls []*Implementation
	for _, d := range p.Decls {
		if impl, ok := d.(*Implementation); ok {
			impls = append(impls, impl)
		}
	}
	return impls
}

// Constants returns every constant in declaration order.
func (p *Program) Constants() []*Constant {
	var consts []*Constant
	for _, d := range p.Decls {
		if c, ok := d.(*Constant); ok {
			consts = append(consts, c)
		}
	}
	return consts
}

// Procedure returns the procedure with the given name, or nil.
func (p *Program) Procedure(name string) *Procedure {
	for _, d := range p.Decls {
		if proc, ok := d.(*Procedure); ok && proc.Name == name {
			return proc
		}
	}
	return nil
}

// Implementation returns the implementation of the named procedure, or nil.
func (p *Program) Implementation(name string) *Implementation {
	for _, d := range p.Decls {
		if impl, ok := d.(*Implementation); ok && impl.Proc.Name == name {
			return impl
		}
	}
	return nil
}
