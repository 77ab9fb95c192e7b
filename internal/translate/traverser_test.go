package translate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bct/internal/bpl"
	"github.com/roach88/bct/internal/meta"
	"github.com/roach88/bct/internal/testutil"
)

// stubFactory hands out a translator that runs body for every method and
// counts invocations per method name.
type stubFactory struct {
	body  func(m *meta.MethodDefinition, sink *Sink) ([]*bpl.Block, error)
	calls map[string]int
	debug []DebugInfo
}

func newStub(body func(m *meta.MethodDefinition, sink *Sink) ([]*bpl.Block, error)) *stubFactory {
	return &stubFactory{body: body, calls: make(map[string]int)}
}

func (f *stubFactory) NewStatementTranslator(sink *Sink, debug DebugInfo) StatementTranslator {
	f.debug = append(f.debug, debug)
	return StatementTranslatorFunc(func(m *meta.MethodDefinition, sink *Sink) ([]*bpl.Block, error) {
		f.calls[m.Name]++
		if f.body == nil {
			return nil, nil
		}
		return f.body(m, sink)
	})
}

func returnBlock(label string) *bpl.Block {
	return &bpl.Block{Label: label, Transfer: &bpl.Return{}}
}

func TestClassify(t *testing.T) {
	class := testutil.Class("Acme", "C")
	delegate := testutil.Delegate("Acme", "D", nil)

	assert.Equal(t, ClassType{Def: class}, Classify(class))
	assert.Equal(t, DelegateType{Def: delegate}, Classify(delegate))
	for _, kind := range []meta.TypeKind{meta.KindInterface, meta.KindStruct, meta.KindEnum} {
		typ := testutil.TypeOfKind("Acme", "X", kind)
		assert.Equal(t, UnsupportedType{Name: "Acme.X", Kind: kind}, Classify(typ))
	}
}

func TestRun_ScenarioC(t *testing.T) {
	c := testutil.Class("Acme", "C",
		testutil.Method("M", testutil.Int(),
			testutil.Param("p", testutil.Int()),
			testutil.RefParam("q", testutil.Int()),
		),
	)

	result, err := NewTranslator(nil).Run(testutil.Assembly("Sample", c))
	require.NoError(t, err)

	const name = "Acme.C.M$System.Int32$System.Int32$"
	proc := result.Program.Procedure(name)
	require.NotNil(t, proc)
	assert.Equal(t, []string{"this", "p$in", "q$in"}, names(proc.InParams))
	assert.Equal(t, []string{"q$out", "$result"}, names(proc.OutParams))

	impl := result.Program.Implementation(name)
	require.NotNil(t, impl)
	assert.Same(t, proc, impl.Proc)
	assert.Equal(t, []string{"p"}, names(impl.Locals))
	require.Len(t, impl.Blocks, 1)
	assert.Equal(t, []string{"p := p$in;", "q$out := q$in;"}, cmdStrings(impl.Blocks[0]))
	assert.IsType(t, &bpl.Return{}, impl.Blocks[0].Transfer)
}

func TestRun_OutCopyStorageMatchesPassingMode(t *testing.T) {
	c := testutil.Class("Acme", "C",
		testutil.Method("M", nil,
			testutil.Param("a", testutil.Int()),
			testutil.OutParam("b", testutil.Int()),
			testutil.Param("c", testutil.Bool()),
			testutil.RefParam("d", testutil.String()),
		),
	)
	result, err := NewTranslator(nil).Run(testutil.Assembly("Sample", c))
	require.NoError(t, err)

	impl := result.Program.Implementations()[0]
	outFormals := map[string]bool{}
	for _, v := range impl.Proc.OutParams {
		outFormals[v.Name] = true
	}
	localNames := map[string]bool{}
	for _, v := range impl.Locals {
		localNames[v.Name] = true
	}

	assert.True(t, localNames["a"])
	assert.True(t, localNames["c"])
	assert.False(t, outFormals["a"])
	assert.False(t, outFormals["c"])
	assert.True(t, outFormals["b$out"])
	assert.True(t, outFormals["d$out"])
	assert.False(t, localNames["b$out"])
	assert.False(t, localNames["d$out"])
	assert.Len(t, impl.Proc.InParams, 5)
	assert.Len(t, impl.Proc.OutParams, 2)
	assert.Contains(t, cmdStrings(impl.Blocks[0]), "b$out := b$in;")
}

func TestRun_SeedsFirstTranslatedBlock(t *testing.T) {
	c := testutil.Class("Acme", "C",
		testutil.Method("M", testutil.Int(), testutil.Param("x", testutil.Int())),
	)
	stub := newStub(func(m *meta.MethodDefinition, sink *Sink) ([]*bpl.Block, error) {
		tmp := sink.NewTemp(bpl.Int)
		x, ok := sink.Parameter("x")
		require.True(t, ok)
		bb := bpl.NewBodyBuilder()
		entry := bb.NewBlock("entry")
		exit := bb.NewBlock("exit")
		entry.Add(bpl.SimpleAssign(tmp, bpl.Ident(x.Out)))
		entry.Transfer = bpl.GotoBlocks(exit)
		exit.Add(bpl.SimpleAssign(sink.RetVariable, bpl.Ident(tmp)))
		exit.Transfer = &bpl.Return{}
		return bb.Blocks(), nil
	})

	result, err := NewTranslator(stub).Run(testutil.Assembly("Sample", c))
	require.NoError(t, err)

	impl := result.Program.Implementations()[0]
	assert.Equal(t, []string{"x", "$tmp0"}, names(impl.Locals))
	require.Len(t, impl.Blocks, 2)
	assert.Equal(t, []string{"x := x$in;", "$tmp0 := x;"}, cmdStrings(impl.Blocks[0]))
	assert.Equal(t, []string{"$result := $tmp0;"}, cmdStrings(impl.Blocks[1]))
}

func TestRun_StatementTranslatorCalledOncePerMethod(t *testing.T) {
	c := testutil.Class("Acme", "C",
		testutil.Method("A", nil),
		testutil.Method("B", nil),
		testutil.Class("", "Inner", testutil.Method("C", nil)),
	)
	stub := newStub(nil)

	result, err := NewTranslator(stub, WithDebugInfo(MethodLocations{})).Run(testutil.Assembly("Sample", c))
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"A": 1, "B": 1, "C": 1}, stub.calls)
	require.Len(t, stub.debug, 3)
	assert.Equal(t, MethodLocations{}, stub.debug[0])
	assert.Equal(t, Stats{Types: 2, Methods: 3}, result.Stats)
	assert.NotNil(t, result.Program.Implementation("Acme.C.Inner.C"))
}

func TestRun_AbstractMethod(t *testing.T) {
	m := testutil.Method("Area", testutil.Int())
	m.IsAbstract = true
	c := testutil.Class("Acme", "Shape", m)
	stub := newStub(nil)

	result, err := NewTranslator(stub).Run(testutil.Assembly("Sample", c))

	assert.Nil(t, result)
	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeAbstractMethod, code)
	assert.Contains(t, err.Error(), "Acme.Shape.Area")
	assert.Empty(t, stub.calls)
}

func TestRun_UnsupportedType(t *testing.T) {
	for _, kind := range []meta.TypeKind{meta.KindInterface, meta.KindStruct, meta.KindEnum} {
		t.Run(kind.String(), func(t *testing.T) {
			asm := testutil.Assembly("Sample",
				testutil.Class("Acme", "Fine", testutil.Method("M", nil)),
				testutil.TypeOfKind("Acme", "Odd", kind),
			)

			result, err := NewTranslator(nil).Run(asm)

			assert.Nil(t, result)
			require.Error(t, err)
			var ue *UnsupportedFeatureError
			require.True(t, errors.As(err, &ue))
			assert.Equal(t, ErrCodeUnsupportedType, ue.Code)
			assert.Equal(t, "Acme.Odd", ue.Construct)
		})
	}
}

func TestRun_NestedUnsupportedTypeAborts(t *testing.T) {
	c := testutil.Class("Acme", "Outer", testutil.TypeOfKind("", "Shape", meta.KindInterface))

	_, err := NewTranslator(nil).Run(testutil.Assembly("Sample", c))

	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeUnsupportedType, code)
	assert.Contains(t, err.Error(), "Acme.Outer.Shape")
}

func TestRun_StatementTranslatorErrorWrapped(t *testing.T) {
	boom := errors.New("boom")
	c := testutil.Class("Acme", "C", testutil.Method("M", nil))
	stub := newStub(func(*meta.MethodDefinition, *Sink) ([]*bpl.Block, error) {
		return nil, boom
	})

	result, err := NewTranslator(stub).Run(testutil.Assembly("Sample", c))

	assert.Nil(t, result)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Acme.C.M")
	assert.False(t, IsUnsupported(err))
}

func TestRun_MalformedBodyRejected(t *testing.T) {
	c := testutil.Class("Acme", "C", testutil.Method("M", nil))
	stub := newStub(func(*meta.MethodDefinition, *Sink) ([]*bpl.Block, error) {
		return []*bpl.Block{{Label: "dangling"}}, nil
	})

	_, err := NewTranslator(stub).Run(testutil.Assembly("Sample", c))

	assert.ErrorContains(t, err, "no transfer")
}

func TestRun_Attributes(t *testing.T) {
	m := testutil.Method("M", nil)
	m.Attributes = []*meta.CustomAttribute{
		attr("System.Diagnostics.Contracts.PureAttribute", lit(meta.Boolean, true), &meta.NonLiteral{Text: "x"}, lit(meta.Int32, 3)),
	}
	bad := testutil.Method("N", nil)
	bad.Attributes = []*meta.CustomAttribute{attr("Acme.RatioAttribute", lit(meta.Double, 0.5))}

	result, err := NewTranslator(nil).Run(testutil.Assembly("Sample", testutil.Class("Acme", "C", m)))
	require.NoError(t, err)
	impl := result.Program.Implementation("Acme.C.M")
	require.Len(t, impl.Attributes, 1)
	assert.Equal(t, "{:System.Diagnostics.Contracts.Pure true, 3}", impl.Attributes[0].String())

	_, err = NewTranslator(nil).Run(testutil.Assembly("Sample", testutil.Class("Acme", "D", bad)))
	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeInvalidAttributeArgument, code)
	assert.Contains(t, err.Error(), "Acme.D.N")
}

func TestRun_Fields(t *testing.T) {
	c := testutil.Class("Acme", "C",
		testutil.Field("count", testutil.Int(), true),
		testutil.Field("flag", testutil.Bool(), false),
	)

	result, err := NewTranslator(nil).Run(testutil.Assembly("Sample", c))
	require.NoError(t, err)

	text := bpl.Print(result.Program)
	assert.Contains(t, text, "var Acme.C.count: int;")
	assert.Contains(t, text, "var Acme.C.flag: [Ref]bool;")
	assert.Equal(t, 2, result.Stats.Fields)
}

func TestRun_DelegateDispatchAfterTraversal(t *testing.T) {
	handler := testutil.Delegate("Acme", "Handler", nil, testutil.Param("x", testutil.Int()))
	targets := testutil.Class("Acme", "Targets",
		testutil.Static(testutil.Method("A", nil, testutil.Param("x", testutil.Int()))),
		testutil.Static(testutil.Method("B", nil, testutil.Param("x", testutil.Int()))),
	)
	// The delegate is declared first; targets are registered later while
	// visiting Use, so synthesis must wait for the whole assembly.
	user := testutil.Class("Acme", "User", testutil.Method("Use", nil))
	stub := newStub(func(m *meta.MethodDefinition, sink *Sink) ([]*bpl.Block, error) {
		if m.Name == "Use" {
			for _, target := range []*meta.MethodDefinition{targets.Methods[0], targets.Methods[1], targets.Methods[0]} {
				if _, err := sink.RegisterDelegateTarget(handler, target); err != nil {
					return nil, err
				}
			}
		}
		return []*bpl.Block{returnBlock("entry")}, nil
	})

	result, err := NewTranslator(stub).Run(testutil.Assembly("Sample", handler, targets, user))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.Delegates)

	impl := result.Program.Implementation("Acme.Handler.Invoke$System.Int32")
	require.NotNil(t, impl)
	assert.Equal(t, []string{"start", "label_Acme.Targets.A$System.Int32", "label_Acme.Targets.B$System.Int32", "blocked"}, labels(impl.Blocks))

	consts := result.Program.Constants()
	require.Len(t, consts, 2)
	assert.True(t, consts[0].Unique)

	// The dispatch implementation is the last declaration.
	last := result.Program.Decls[len(result.Program.Decls)-1]
	assert.Same(t, impl, last)
}

func TestRun_NestedDelegateRecorded(t *testing.T) {
	outer := testutil.Class("Acme", "Outer", testutil.Delegate("", "Callback", testutil.Bool()))

	result, err := NewTranslator(nil).Run(testutil.Assembly("Sample", outer))
	require.NoError(t, err)

	impl := result.Program.Implementation("Acme.Outer.Callback.Invoke")
	require.NotNil(t, impl)
	assert.Equal(t, []string{"start", "blocked"}, labels(impl.Blocks))
	assert.Equal(t, []string{"$result"}, names(impl.Proc.OutParams))
}

func TestRun_CollidingLegalNames(t *testing.T) {
	c := testutil.Class("Acme", "C",
		testutil.Method("a b", nil),
		testutil.Method("a$b", nil),
	)

	result, err := NewTranslator(nil).Run(testutil.Assembly("Sample", c))
	require.NoError(t, err)

	procs := result.Program.Procedures()
	require.Len(t, procs, 2)
	assert.Equal(t, "Acme.C.a$b", procs[0].Name)
	assert.Equal(t, "Acme.C.a$b#1", procs[1].Name)
}

func TestRun_UniqueNamesAcrossRun(t *testing.T) {
	c := testutil.Class("Acme", "C",
		testutil.Method("F", nil),
		testutil.Method("F", nil, testutil.Param("x", testutil.Int())),
		testutil.Method("F", nil, testutil.RefParam("x", testutil.Int())),
		testutil.Class("", "F", testutil.Method("F", nil)),
	)

	result, err := NewTranslator(nil).Run(testutil.Assembly("Sample", c))
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, p := range result.Program.Procedures() {
		assert.False(t, seen[p.Name], "duplicate %s", p.Name)
		seen[p.Name] = true
	}
	assert.Len(t, seen, 4)
}

func TestRun_IndependentRuns(t *testing.T) {
	c := testutil.Class("Acme", "C", testutil.Method("M", nil))
	stub := newStub(func(m *meta.MethodDefinition, sink *Sink) ([]*bpl.Block, error) {
		sink.NewTemp(bpl.Int)
		return nil, nil
	})
	tr := NewTranslator(stub)

	first, err := tr.Run(testutil.Assembly("Sample", c))
	require.NoError(t, err)
	second, err := tr.Run(testutil.Assembly("Sample", c))
	require.NoError(t, err)

	assert.Equal(t, bpl.Print(first.Program), bpl.Print(second.Program))
	assert.Equal(t, "$tmp0", second.Program.Implementations()[0].Locals[0].Name)
}

func TestRun_EmptyBodyGetsEntryBlock(t *testing.T) {
	c := testutil.Class("Acme", "C", testutil.Method("M", nil))

	result, err := NewTranslator(nil).Run(testutil.Assembly("Sample", c))
	require.NoError(t, err)

	impl := result.Program.Implementation("Acme.C.M")
	require.Len(t, impl.Blocks, 1)
	assert.Equal(t, "entry", impl.Blocks[0].Label)
	assert.Empty(t, impl.Blocks[0].Cmds)
	assert.IsType(t, &bpl.Return{}, impl.Blocks[0].Transfer)
}

func TestRun_ProcedureCreatedByCallIsReused(t *testing.T) {
	callee := testutil.Method("Callee", nil)
	caller := testutil.Method("Caller", nil)
	c := testutil.Class("Acme", "C", caller, callee)
	var fromCall *bpl.Procedure
	stub := newStub(func(m *meta.MethodDefinition, sink *Sink) ([]*bpl.Block, error) {
		if m == caller {
			fromCall = sink.FindOrCreateProcedure(callee).Proc
		}
		return nil, nil
	})

	result, err := NewTranslator(stub).Run(testutil.Assembly("Sample", c))
	require.NoError(t, err)

	assert.Len(t, result.Program.Procedures(), 2)
	assert.Same(t, fromCall, result.Program.Implementation("Acme.C.Callee").Proc)
}
