package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bct/internal/bpl"
	"github.com/roach88/bct/internal/meta"
	"github.com/roach88/bct/internal/testutil"
)

func TestBoogieType(t *testing.T) {
	enum := testutil.TypeOfKind("Acme", "Color", meta.KindEnum)
	point := testutil.TypeOfKind("Acme", "Point", meta.KindStruct)
	class := testutil.Class("Acme", "Counter")

	tests := []struct {
		name     string
		typ      *meta.TypeRef
		expected bpl.Type
	}{
		{"bool", meta.Primitive(meta.Boolean), bpl.Bool},
		{"int", meta.Primitive(meta.Int32), bpl.Int},
		{"char", meta.Primitive(meta.Char), bpl.Int},
		{"ulong", meta.Primitive(meta.UInt64), bpl.Int},
		{"enum", meta.Named(enum), bpl.Int},
		{"float", meta.Primitive(meta.Single), bpl.Real},
		{"double", meta.Primitive(meta.Double), bpl.Real},
		{"string", meta.Primitive(meta.String), bpl.Ref},
		{"array", meta.ArrayOf(meta.Primitive(meta.Int32), 1), bpl.Ref},
		{"struct", meta.Named(point), bpl.Ref},
		{"class", meta.Named(class), bpl.Ref},
		{"generic parameter", meta.GenericParam("T"), bpl.Ref},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BoogieType(tt.typ))
		})
	}
}

func TestNewMethodParameter_ByValue(t *testing.T) {
	mp := NewMethodParameter(testutil.Param("p", testutil.Int()), bpl.Int)

	assert.Equal(t, "p$in", mp.In.Name)
	assert.Equal(t, bpl.FormalIn, mp.In.Kind)
	assert.Equal(t, "p", mp.Out.Name)
	assert.Equal(t, bpl.Local, mp.Out.Kind)
	assert.False(t, mp.OutIsFormal())
	assert.Equal(t, "p := p$in;", mp.EntryCopy().String())
}

func TestNewMethodParameter_ByReferenceAndOut(t *testing.T) {
	for _, p := range []*meta.ParameterDefinition{
		testutil.RefParam("q", testutil.Int()),
		testutil.OutParam("q", testutil.Int()),
	} {
		t.Run(p.Mode.String(), func(t *testing.T) {
			mp := NewMethodParameter(p, bpl.Int)

			assert.Equal(t, "q$in", mp.In.Name)
			assert.Equal(t, "q$out", mp.Out.Name)
			assert.Equal(t, bpl.FormalOut, mp.Out.Kind)
			assert.True(t, mp.OutIsFormal())
			assert.Equal(t, "q$out := q$in;", mp.EntryCopy().String())
		})
	}
}

func TestNewMethodParameter_Names(t *testing.T) {
	unnamed := &meta.ParameterDefinition{Name: "", Index: 2, Type: testutil.Int()}
	assert.Equal(t, "P2$in", NewMethodParameter(unnamed, bpl.Int).In.Name)

	spaced := testutil.Param("my param", testutil.Int())
	assert.Equal(t, "my$param$in", NewMethodParameter(spaced, bpl.Int).In.Name)
}

func TestBuildSignature_MixedParameters(t *testing.T) {
	m := testutil.Method("M", testutil.Int(),
		testutil.Param("p", testutil.Int()),
		testutil.RefParam("q", testutil.Bool()),
	)

	params, result, ins, outs := buildSignature(m, bpl.Ref)

	require.Len(t, params, 2)
	require.NotNil(t, result)
	assert.Equal(t, []string{"this", "p$in", "q$in"}, names(ins))
	assert.Equal(t, []string{"q$out", "$result"}, names(outs))
	assert.Equal(t, bpl.Type(bpl.Ref), ins[0].Type)
	assert.Equal(t, bpl.Type(bpl.Bool), outs[0].Type)
	assert.Equal(t, bpl.Type(bpl.Int), result.Type)
}

func TestBuildSignature_FormalCounts(t *testing.T) {
	tests := []struct {
		name string
		ret  *meta.TypeRef
		mode []meta.PassingMode
	}{
		{"no parameters void", nil, nil},
		{"no parameters non-void", testutil.Int(), nil},
		{"values only", nil, []meta.PassingMode{meta.ByValue, meta.ByValue}},
		{"mixed", testutil.Bool(), []meta.PassingMode{meta.ByValue, meta.ByReference, meta.Out}},
		{"refs only non-void", testutil.Int(), []meta.PassingMode{meta.Out, meta.Out}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ps []*meta.ParameterDefinition
			byRef := 0
			for i, mode := range tt.mode {
				ps = append(ps, &meta.ParameterDefinition{Name: string(rune('a' + i)), Type: testutil.Int(), Mode: mode})
				if mode != meta.ByValue {
					byRef++
				}
			}
			m := testutil.Method("M", tt.ret, ps...)

			_, _, ins, outs := buildSignature(m, bpl.Ref)

			wantOuts := byRef
			if !m.IsVoid() {
				wantOuts++
			}
			assert.Len(t, ins, 1+len(ps))
			assert.Len(t, outs, wantOuts)
		})
	}
}

func names(vars []*bpl.Variable) []string {
	out := make([]string, len(vars))
	for i, v := range vars {
		out[i] = v.Name
	}
	return out
}
