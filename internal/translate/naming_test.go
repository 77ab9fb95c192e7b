package translate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/bct/internal/meta"
	"github.com/roach88/bct/internal/testutil"
)

func TestLegalizeIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already legal", "Acme.Counter.Add$System.Int32", "Acme.Counter.Add$System.Int32"},
		{"special characters kept", "a'~#$^_.?`b", "a'~#$^_.?`b"},
		{"parens and commas", "Foo.Bar(int,string", "Foo.Bar$int$string"},
		{"vector marker", "System.Int32[]", "System.Int32array"},
		{"2d marker", "System.Int32[0:,0:]", "System.Int322DArray"},
		{"3d marker", "T[0:,0:,0:]", "T3DArray"},
		{"4d marker", "T[0:,0:,0:,0:]", "T4DArray"},
		{"5d marker", "T[0:,0:,0:,0:,0:]", "T5DArray"},
		{"whitespace", "a b\tc", "a$b$c"},
		{"by-ref marker", "System.Int32@", "System.Int32$"},
		{"non-ascii letter", "h\u00e9llo", "h$llo"},
		{"astral rune", "a\U0001F600b", "a$b"},
		{"nul character", "x\x00", "x$"},
		{"invalid utf-8 byte", "a\xffb", "a$b"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LegalizeIdentifier(tt.input))
		})
	}
}

func TestLegalizeIdentifier_ArrayMarkersBeforeCharacterClass(t *testing.T) {
	got := LegalizeIdentifier("Foo.Bar(int,string[])")

	assert.Equal(t, "Foo.Bar$int$stringarray$", got)
	assert.NotContains(t, got, "[")
	assert.NotContains(t, got, "]")
}

func TestLegalizeIdentifier_SixDimensionsNotSpecialCased(t *testing.T) {
	got := LegalizeIdentifier("T[0:,0:,0:,0:,0:,0:]")

	assert.True(t, strings.HasPrefix(got, "T$0$"), got)
	assert.NotContains(t, got, "DArray")
	assert.NotContains(t, got, "[")
}

func TestLegalizeIdentifier_Idempotent(t *testing.T) {
	inputs := []string{
		"Foo.Bar(int,string[])",
		"M:Acme.List`1.Add(`0,System.Int32[0:,0:]@)",
		"h\u00e9llo w\u00f6rld",
		"a\U0001F600b",
		"plain",
		"$tmp0",
	}
	for _, in := range inputs {
		once := LegalizeIdentifier(in)
		assert.Equal(t, once, LegalizeIdentifier(once), "input %q", in)
	}
}

func TestDocumentationID(t *testing.T) {
	counter := testutil.Class("Acme", "Counter",
		testutil.Method("Add", testutil.Int(), testutil.Param("x", testutil.Int())),
		testutil.Method("Get", testutil.Int()),
		&meta.MethodDefinition{Name: ".ctor", IsConstructor: true, Parameters: []*meta.ParameterDefinition{testutil.Param("s", testutil.String())}},
		testutil.Method("Merge", nil, testutil.OutParam("other", nil)),
	)
	counter.Methods[3].Parameters[0].Type = meta.Named(counter)

	list := testutil.Generic(testutil.Class("Acme", "List",
		testutil.Method("Add", nil,
			testutil.Param("item", meta.GenericParam("T")),
			testutil.Param("xs", meta.ArrayOf(testutil.Int(), 1)),
			testutil.RefParam("grid", meta.ArrayOf(testutil.Int(), 2)),
		),
	), "T")

	inner := testutil.Generic(testutil.Class("", "Inner",
		testutil.Method("Put", nil,
			testutil.Param("v", meta.GenericParam("V")),
			testutil.Param("k", meta.GenericParam("K")),
		),
	), "V")
	testutil.Generic(testutil.Class("Acme", "Outer", inner), "K")

	tests := []struct {
		name   string
		method *meta.MethodDefinition
		docID  string
		unique string
	}{
		{"simple", counter.Methods[0], "M:Acme.Counter.Add(System.Int32)", "Acme.Counter.Add$System.Int32"},
		{"parameterless", counter.Methods[1], "M:Acme.Counter.Get", "Acme.Counter.Get"},
		{"constructor", counter.Methods[2], "M:Acme.Counter.#ctor(System.String)", "Acme.Counter.#ctor$System.String"},
		{"out of declared type", counter.Methods[3], "M:Acme.Counter.Merge(Acme.Counter@)", "Acme.Counter.Merge$Acme.Counter$"},
		{
			"generic with arrays",
			list.Methods[0],
			"M:Acme.List`1.Add(`0,System.Int32[],System.Int32[0:,0:]@)",
			"Acme.List`1.Add$`0$System.Int32array$System.Int322DArray$",
		},
		{"nested generic", inner.Methods[0], "M:Acme.Outer`1.Inner`1.Put(`1,`0)", "Acme.Outer`1.Inner`1.Put$`1$`0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.docID, DocumentationID(tt.method))
			assert.Equal(t, tt.unique, UniqueMethodName(tt.method))
		})
	}
}

func TestUniqueMethodName_DistinctOverloads(t *testing.T) {
	c := testutil.Class("Acme", "C",
		testutil.Method("F", nil),
		testutil.Method("F", nil, testutil.Param("x", testutil.Int())),
		testutil.Method("F", nil, testutil.Param("x", testutil.Bool())),
		testutil.Method("F", nil, testutil.RefParam("x", testutil.Int())),
		testutil.Method("F", nil, testutil.Param("x", meta.ArrayOf(testutil.Int(), 1))),
		testutil.Method("F", nil, testutil.Param("x", meta.ArrayOf(testutil.Int(), 2))),
	)

	seen := make(map[string]bool)
	for _, m := range c.Methods {
		name := UniqueMethodName(m)
		assert.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true
	}
}

func TestNamer_Counters(t *testing.T) {
	n := &Namer{}

	assert.Equal(t, "$tmp0", n.TempVarName())
	assert.Equal(t, "$tmp1", n.TempVarName())
	assert.Equal(t, "catch0", n.CatchClauseName())
	assert.Equal(t, "finally0", n.FinallyClauseName())
	assert.Equal(t, "catch1", n.CatchClauseName())
	assert.Equal(t, "$tmp2", n.TempVarName())
}

func TestNamer_IndependentPerInstance(t *testing.T) {
	a := &Namer{}
	b := &Namer{}

	a.TempVarName()
	a.TempVarName()

	assert.Equal(t, "$tmp0", b.TempVarName())
	assert.Equal(t, "$tmp2", a.TempVarName())
}

func TestConsolidatedGenericParameters(t *testing.T) {
	innermost := testutil.Generic(testutil.Class("", "C"), "E")
	middle := testutil.Class("", "B", innermost)
	testutil.Generic(testutil.Class("Acme", "A", middle), "K", "V")

	assert.Equal(t, []string{"K", "V", "E"}, ConsolidatedGenericParameters(innermost))
	assert.Equal(t, []string{"K", "V"}, ConsolidatedGenericParameters(middle))
	assert.Nil(t, ConsolidatedGenericParameters(testutil.Class("Acme", "Plain")))
}
