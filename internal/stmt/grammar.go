package stmt

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

var bodyLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"String", `"(\\.|[^"\\])*"`, nil},
		{"Integer", `[0-9]+`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},

		// Operators (longest first)
		{"Operator", `:=|\|\||&&|==|!=|<=|>=|[-+*<>=!]`, nil},

		// Punctuation (must come after operators)
		{"Punct", `[{}();,.:]`, nil},

		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})

// Body is a parsed method body.
type Body struct {
	Stmts []*Stmt `@@*`
}

// Stmt is one statement. Exactly one field is set.
type Stmt struct {
	Pos lexer.Position

	Var    *VarStmt    `  @@`
	Assume *AssumeStmt `| @@`
	Record *RecordStmt `| @@`
	Return *ReturnStmt `| @@`
	If     *IfStmt     `| @@`
	Try    *TryStmt    `| @@`
	Call   *CallStmt   `| @@`
	Assign *AssignStmt `| @@`
}

type VarStmt struct {
	Name string `"var" @Ident ":"`
	Type string `@("int" | "bool" | "real" | "ref") ";"`
}

type AssumeStmt struct {
	Cond *Expr `"assume" @@ ";"`
}

type RecordStmt struct {
	Label string `"record" @String`
	Value *Expr  `@@ ";"`
}

type ReturnStmt struct {
	Keyword string `@"return"`
	Value   *Expr  `@@? ";"`
}

type IfStmt struct {
	Cond *Expr       `"if" "(" @@ ")"`
	Then []*Stmt     `"{" @@* "}"`
	Else *ElseClause `@@?`
}

type ElseClause struct {
	Stmts []*Stmt `"else" "{" @@* "}"`
}

type TryStmt struct {
	Body    []*Stmt        `"try" "{" @@* "}"`
	Catch   []*Stmt        `"catch" "{" @@* "}"`
	Finally *FinallyClause `@@?`
}

type FinallyClause struct {
	Stmts []*Stmt `"finally" "{" @@* "}"`
}

// CallStmt calls a method, or with Invoke set, a delegate's dispatch
// procedure.
type CallStmt struct {
	Outs   []*Path `"call" ( @@ ( "," @@ )* ":=" )?`
	Invoke bool    `@"invoke"?`
	Callee *Path   `@@`
	Args   []*Expr `"(" ( @@ ( "," @@ )* )? ")" ";"`
}

type AssignStmt struct {
	Target   *Path         `@@ "="`
	Delegate *DelegateExpr `( @@`
	Value    *Expr         `| @@ ) ";"`
}

// DelegateExpr creates a delegate of type Type bound to Target.
type DelegateExpr struct {
	Type   *Path `"delegate" @@`
	Target *Path `@@`
}

// Expr is a flat operator chain; precedence is applied during lowering.
type Expr struct {
	Left *Unary    `@@`
	Tail []*OpTerm `@@*`
}

type OpTerm struct {
	Op    string `@("||" | "&&" | "==" | "!=" | "<=" | ">=" | "<" | ">" | "+" | "-" | "*")`
	Right *Unary `@@`
}

type Unary struct {
	Op      string   `( @("!" | "-")`
	Operand *Unary   `  @@ )`
	Primary *Primary `| @@`
}

type Primary struct {
	Bool *string `  @("true" | "false")`
	Int  *int64  `| @Integer`
	Path *Path   `| @@`
	Sub  *Expr   `| "(" @@ ")"`
}

// Path is a dotted name such as "x", "this.f" or "Acme.Util.Max".
type Path struct {
	Parts []string `@Ident ( "." @Ident )*`
}

func (p *Path) String() string {
	return strings.Join(p.Parts, ".")
}
