package bpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProgram() *Program {
	p := NewProgram()
	p.Add(&Constant{Name: "C.M", Type: Int, Unique: true})
	p.Add(&GlobalVariable{Name: "C.count", Type: &MapType{Key: Ref, Value: Int}})

	this := NewFormal("this", Ref, true)
	xIn := NewFormal("x$in", Int, true)
	result := NewFormal("$result", Int, false)
	proc := &Procedure{
		Name:      "P",
		InParams:  []*Variable{this, xIn},
		OutParams: []*Variable{result},
	}
	p.Add(proc)

	x := NewLocal("x", Int)
	bb := NewBodyBuilder()
	entry := bb.NewBlock("entry")
	entry.Add(SimpleAssign(x, Ident(xIn)), SimpleAssign(result, Ident(x)))
	entry.Transfer = &Return{}
	impl := &Implementation{Proc: proc, Locals: []*Variable{x}, Blocks: bb.Blocks()}
	impl.AddAttribute("pure", True)
	p.Add(impl)
	return p
}

func TestPrintProgram(t *testing.T) {
	want := `type Ref;

const unique C.M: int;

var C.count: [Ref]int;

procedure P(this: Ref, x$in: int) returns ($result: int);

implementation {:pure true} P(this: Ref, x$in: int) returns ($result: int)
{
  var x: int;

  entry:
    x := x$in;
    $result := x;
    return;
}
`
	assert.Equal(t, want, Print(sampleProgram()))
}

func TestPrintGotoUsesLabels(t *testing.T) {
	proc := &Procedure{Name: "D", InParams: []*Variable{NewFormal("this", Int, true)}}
	bb := NewBodyBuilder()
	start := bb.NewBlock("start")
	a := bb.NewBlock("label_A")
	blocked := bb.NewBlock("blocked")
	start.Transfer = GotoBlocks(a, blocked)
	a.Add(Assume(Eq(&IdentExpr{Name: "this", Typ: Int}, &IdentExpr{Name: "A", Typ: Int})))
	a.Add(&CallCmd{Callee: "A"})
	a.Transfer = &Return{}
	blocked.Add(Assume(False))
	blocked.Transfer = &Return{}
	impl := &Implementation{Proc: proc, Blocks: bb.Blocks()}

	p := &Program{}
	p.Add(impl)

	want := `implementation D(this: int)
{
  start:
    goto label_A, blocked;

  label_A:
    assume this == A;
    call A();
    return;

  blocked:
    assume false;
    return;
}
`
	assert.Equal(t, want, Print(p))
}

func TestCommandStrings(t *testing.T) {
	r := &IdentExpr{Name: "r", Typ: Int}
	s := &IdentExpr{Name: "s", Typ: Bool}
	call := &CallCmd{
		Callee:     "boogie_si_record_int",
		Ins:        []Expr{r},
		Attributes: []*Attribute{{Key: "cexpr", Params: []Expr{StringLit("r")}}},
	}
	assert.Equal(t, `call {:cexpr "r"} boogie_si_record_int(r);`, call.String())

	multi := &CallCmd{Callee: "F", Ins: []Expr{IntLit(1), True}, Outs: []*IdentExpr{r, s}}
	assert.Equal(t, "call r, s := F(1, true);", multi.String())

	assume := &AssumeCmd{Expr: True, Attributes: []*Attribute{{Key: "sourceloc", Params: []Expr{StringLit("a.cs"), IntLit(3)}}}}
	assert.Equal(t, `assume {:sourceloc "a.cs", 3} true;`, assume.String())

	nested := Binary(OpAnd, Binary(OpLt, r, IntLit(0)), &UnaryExpr{Op: OpNot, X: s})
	assert.Equal(t, "(r < 0) && !s", nested.String())
}

func TestValidate(t *testing.T) {
	proc := &Procedure{Name: "V"}

	t.Run("valid", func(t *testing.T) {
		impl := sampleProgram().Implementation("P")
		require.NotNil(t, impl)
		assert.NoError(t, impl.Validate())
	})

	t.Run("no blocks", func(t *testing.T) {
		impl := &Implementation{Proc: proc}
		assert.ErrorContains(t, impl.Validate(), "no blocks")
	})

	t.Run("missing transfer", func(t *testing.T) {
		bb := NewBodyBuilder()
		bb.NewBlock("a")
		impl := &Implementation{Proc: proc, Blocks: bb.Blocks()}
		assert.ErrorContains(t, impl.Validate(), "no transfer")
	})

	t.Run("unknown target", func(t *testing.T) {
		bb := NewBodyBuilder()
		a := bb.NewBlock("a")
		a.Transfer = &Goto{Targets: []BlockID{7}}
		impl := &Implementation{Proc: proc, Blocks: bb.Blocks()}
		assert.ErrorContains(t, impl.Validate(), "unknown block 7")
	})

	t.Run("duplicate label", func(t *testing.T) {
		bb := NewBodyBuilder()
		a := bb.NewBlock("a")
		a.Transfer = &Return{}
		b := bb.NewBlock("a")
		b.Transfer = &Return{}
		impl := &Implementation{Proc: proc, Blocks: bb.Blocks()}
		assert.ErrorContains(t, impl.Validate(), "duplicate label")
	})
}

func TestBlockPrepend(t *testing.T) {
	x := NewLocal("x", Int)
	b := &Block{}
	b.Add(SimpleAssign(x, IntLit(2)))
	b.Prepend(SimpleAssign(x, IntLit(1)))
	require.Len(t, b.Cmds, 2)
	assert.Equal(t, "x := 1;", b.Cmds[0].String())
	assert.Equal(t, "x := 2;", b.Cmds[1].String())
}

func TestProgramLookups(t *testing.T) {
	p := sampleProgram()
	assert.Len(t, p.Procedures(), 1)
	assert.Len(t, p.Implementations(), 1)
	assert.Len(t, p.Constants(), 1)
	assert.NotNil(t, p.Procedure("P"))
	assert.Nil(t, p.Procedure("missing"))
	assert.Nil(t, p.Implementation("missing"))
}
