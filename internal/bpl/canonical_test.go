package bpl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalValues(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"string", "hello", `"hello"`},
		{"empty string", "", `""`},
		{"int", int64(42), "42"},
		{"negative int", -7, "-7"},
		{"bool", true, "true"},
		{"empty array", []any{}, "[]"},
		{"empty object", map[string]any{}, "{}"},
		{"sorted keys", map[string]any{"zebra": 1, "alpha": 2}, `{"alpha":2,"zebra":1}`},
		{"no html escaping", "a<b>&c", `"a<b>&c"`},
		{"line separator literal", "a\u2028b", "\"a\u2028b\""},
		{"escaped backslash kept", `a\u2028`, `"a\\u2028"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := marshalCanonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalCanonicalRejects(t *testing.T) {
	_, err := marshalCanonical(nil)
	assert.ErrorContains(t, err, "null")

	_, err = marshalCanonical(1.5)
	assert.ErrorContains(t, err, "floats")
}

func TestMarshalCanonicalUTF16Ordering(t *testing.T) {
	// U+10000 encodes as the surrogate pair D800 DC00, which sorts before
	// U+E000 in UTF-16 even though its UTF-8 bytes sort after.
	obj := map[string]any{
		"\uE000":     1,
		"\U00010000": 2,
	}
	result, err := marshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, "{\"\U00010000\":2,\"\uE000\":1}", string(result))
}

func TestMarshalCanonicalNFC(t *testing.T) {
	result, err := marshalCanonical("e\u0301")
	require.NoError(t, err)
	assert.Equal(t, "\"\u00e9\"", string(result))
}

func TestMarshalCanonicalProgram(t *testing.T) {
	data, err := MarshalCanonical(sampleProgram())
	require.NoError(t, err)

	s := string(data)
	assert.True(t, strings.HasPrefix(s, `{"decls":[{"kind":"type","name":"Ref"}`), s)
	assert.Contains(t, s, `"cmds":["x := x$in;","$result := x;"]`)
	assert.Contains(t, s, `"transfer":{"kind":"return"}`)
	assert.Contains(t, s, `"ir_version":"1"`)
}

func TestProgramHashDeterministic(t *testing.T) {
	h1, err := ProgramHash(sampleProgram())
	require.NoError(t, err)
	h2, err := ProgramHash(sampleProgram())
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)

	other := sampleProgram()
	other.Add(&Constant{Name: "Extra", Type: Int, Unique: true})
	h3, err := ProgramHash(other)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestInputHashDomainSeparated(t *testing.T) {
	a := InputHash([]byte("assembly: name: \"A\""))
	b := InputHash([]byte("assembly: name: \"B\""))
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, InputHash([]byte("assembly: name: \"A\"")))
	assert.NotEqual(t, hashWithDomain(DomainProgram, []byte("x")), hashWithDomain(DomainInput, []byte("x")))
}
