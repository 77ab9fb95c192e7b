package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bct/internal/bpl"
	"github.com/roach88/bct/internal/testutil"
)

func constant(name string) *bpl.Constant {
	return &bpl.Constant{Name: name, Type: bpl.Int, Unique: true}
}

func TestDelegateRegistry_Order(t *testing.T) {
	r := NewDelegateRegistry()
	d1 := testutil.Delegate("Acme", "D1", nil)
	d2 := testutil.Delegate("Acme", "D2", nil)

	require.NoError(t, r.Register(d2, constant("B")))
	require.NoError(t, r.AddType(d1))
	require.NoError(t, r.Register(d2, constant("A")))
	require.NoError(t, r.Register(d2, constant("B")))
	require.NoError(t, r.AddType(d2))

	assert.Equal(t, 2, r.Len())
	entries := r.Drain()
	require.Len(t, entries, 2)
	assert.Same(t, d2, entries[0].Type)
	assert.Same(t, d1, entries[1].Type)
	assert.Equal(t, []string{"B", "A"}, constantNames(entries[0].Targets))
	assert.Empty(t, entries[1].Targets)
}

func TestDelegateRegistry_LateRegistration(t *testing.T) {
	r := NewDelegateRegistry()
	d := testutil.Delegate("Acme", "D", nil)
	require.NoError(t, r.AddType(d))
	r.Drain()

	err := r.Register(d, constant("A"))
	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeLateDelegateRegistration, code)

	err = r.AddType(testutil.Delegate("Acme", "E", nil))
	assert.True(t, IsUnsupported(err))
}

func constantNames(cs []*bpl.Constant) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}
