package bpl

import (
	"strconv"
	"strings"
)

// Expr is an IR expression. Type returns nil for expressions that are only
// valid as attribute parameters (*StringLit).
type Expr interface {
	String() string
	Type() Type
	expr()
}

// IdentExpr references a variable, formal or constant by name.
type IdentExpr struct {
	Name string
	Typ  Type
}

func (*IdentExpr) expr() {}

func (e *IdentExpr) Type() Type { return e.Typ }

func (e *IdentExpr) String() string { return e.Name }

// Ident returns an expression referencing v.
func Ident(v *Variable) *IdentExpr {
	return &IdentExpr{Name: v.Name, Typ: v.Type}
}

// BoolLit is a boolean literal.
type BoolLit bool

// Canonical boolean literals.
var (
	True  = BoolLit(true)
	False = BoolLit(false)
)

func (BoolLit) expr() {}

func (BoolLit) Type() Type { return Bool }

func (b BoolLit) String() string {
	if b {
		return "true"
	}
	return "false"
}

// IntLit is an integer literal.
type IntLit int64

func (IntLit) expr() {}

func (IntLit) Type() Type { return Int }

func (i IntLit) String() string { return strconv.FormatInt(int64(i), 10) }

// StringLit is a string literal. The IR has no string values; string
// literals only appear as attribute parameters.
type StringLit string

func (StringLit) expr() {}

func (StringLit) Type() Type { return nil }

func (s StringLit) String() string { return strconv.Quote(string(s)) }

// BinaryOp is a binary operator.
type BinaryOp string

const (
	OpEq  BinaryOp = "=="
	OpNeq BinaryOp = "!="
	OpLt  BinaryOp = "<"
	OpLe  BinaryOp = "<="
	OpGt  BinaryOp = ">"
	OpGe  BinaryOp = ">="
	OpAdd BinaryOp = "+"
	OpSub BinaryOp = "-"
	OpMul BinaryOp = "*"
	OpAnd BinaryOp = "&&"
	OpOr  BinaryOp = "||"
)

// IsRelational reports whether the operator yields a bool.
func (op BinaryOp) IsRelational() bool {
	switch op {
	case OpEq, OpNeq, OpLt, OpLe, OpGt, OpGe, OpAnd, OpOr:
		return true
	}
	return false
}

// BinaryExpr applies a binary operator.
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// Binary builds a binary expression.
func Binary(op BinaryOp, left, right Expr) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: left, Right: right}
}

// Eq builds left == right.
func Eq(left, right Expr) *BinaryExpr {
	return Binary(OpEq, left, right)
}

func (*BinaryExpr) expr() {}

func (e *BinaryExpr) Type() Type {
	if e.Op.IsRelational() {
		return Bool
	}
	return e.Left.Type()
}

func (e *BinaryExpr) String() string {
	var b strings.Builder
	writeOperand(&b, e.Left)
	b.WriteString(" ")
	b.WriteString(string(e.Op))
	b.WriteString(" ")
	writeOperand(&b, e.Right)
	return b.String()
}

func writeOperand(b *strings.Builder, e Expr) {
	if _, nested := e.(*BinaryExpr); nested {
		b.WriteString("(")
		b.WriteString(e.String())
		b.WriteString(")")
		return
	}
	b.WriteString(e.String())
}

// UnaryOp is a unary operator.
type UnaryOp string

const (
	OpNot UnaryOp = "!"
	OpNeg UnaryOp = "-"
)

// UnaryExpr applies a unary operator.
type UnaryExpr struct {
	Op UnaryOp
	X  Expr
}

func (*UnaryExpr) expr() {}

func (e *UnaryExpr) Type() Type {
	if e.Op == OpNot {
		return Bool
	}
	return e.X.Type()
}

func (e *UnaryExpr) String() string {
	var b strings.Builder
	b.WriteString(string(e.Op))
	writeOperand(&b, e.X)
	return b.String()
}

// MapSelect reads Map[Index].
type MapSelect struct {
	Map   Expr
	Index Expr
}

func (*MapSelect) expr() {}

func (e *MapSelect) Type() Type {
	if m, ok := e.Map.Type().(*MapType); ok {
		return m.Value
	}
	return nil
}

func (e *MapSelect) String() string {
	return e.Map.String() + "[" + e.Index.String() + "]"
}
