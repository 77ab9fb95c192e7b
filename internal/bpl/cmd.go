package bpl

import "strings"

// Cmd is a straight-line command.
type Cmd interface {
	String() string
	cmd()
}

// AssignCmd is a parallel assignment. Each Lhs is an *IdentExpr or a
// *MapSelect.
type AssignCmd struct {
	Lhs []Expr
	Rhs []Expr
}

func (*AssignCmd) cmd() {}

func (c *AssignCmd) String() string {
	return joinExprs(c.Lhs) + " := " + joinExprs(c.Rhs) + ";"
}

// SimpleAssign builds lhs := rhs.
func SimpleAssign(lhs *Variable, rhs Expr) *AssignCmd {
	return &AssignCmd{Lhs: []Expr{Ident(lhs)}, Rhs: []Expr{rhs}}
}

// AssumeCmd restricts executions to those where Expr holds.
type AssumeCmd struct {
	Expr       Expr
	Attributes []*Attribute
}

func (*AssumeCmd) cmd() {}

func (c *AssumeCmd) String() string {
	return "assume " + attributePrefix(c.Attributes) + c.Expr.String() + ";"
}

// Assume builds assume e.
func Assume(e Expr) *AssumeCmd {
	return &AssumeCmd{Expr: e}
}

// CallCmd calls a procedure by name.
type CallCmd struct {
	Callee     string
	Ins        []Expr
	Outs       []*IdentExpr
	Attributes []*Attribute
}

func (*CallCmd) cmd() {}

func (c *CallCmd) String() string {
	var b strings.Builder
	b.WriteString("call ")
	b.WriteString(attributePrefix(c.Attributes))
	if len(c.Outs) > 0 {
		outs := make([]string, len(c.Outs))
		for i, o := range c.Outs {
			outs[i] = o.String()
		}
		b.WriteString(strings.Join(outs, ", "))
		b.WriteString(" := ")
	}
	b.WriteString(c.Callee)
	b.WriteString("(")
	b.WriteString(joinExprs(c.Ins))
	b.WriteString(");")
	return b.String()
}

func joinExprs(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

func attributePrefix(attrs []*Attribute) string {
	var b strings.Builder
	for _, a := range attrs {
		b.WriteString(a.String())
		b.WriteString(" ")
	}
	return b.String()
}
