package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runScenario(t *testing.T, path string) *Result {
	t.Helper()
	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	result, err := Run(scenario)
	require.NoError(t, err)
	return result
}

func TestRun_Counter(t *testing.T) {
	result := runScenario(t, "testdata/scenarios/counter.yaml")

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, StatusOK, result.Status)
	assert.Empty(t, result.Code)
	assert.Contains(t, result.Program, `assume {:sourceloc "counter.yaml", 10} true;`)
	assert.Len(t, result.Hash, 64)
}

func TestRun_Events(t *testing.T) {
	result := runScenario(t, "testdata/scenarios/events.yaml")
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_ExpectedError(t *testing.T) {
	result := runScenario(t, "testdata/scenarios/abstract.yaml")

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, StatusError, result.Status)
	assert.Equal(t, "ABSTRACT_METHOD", result.Code)
	assert.Contains(t, result.Message, "Acme.Shape.Area")
	assert.Empty(t, result.Program)
}

func TestRun_UnexpectedSuccess(t *testing.T) {
	scenario := &Scenario{
		Name:        "wrong",
		Description: "expects an error from a valid assembly",
		Assembly:    "testdata/assemblies/counter.yaml",
		Expect:      Expectation{Status: StatusError, Code: "ABSTRACT_METHOD"},
	}
	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected error ABSTRACT_METHOD, translation succeeded")
}

func TestRun_UnexpectedFailure(t *testing.T) {
	scenario := &Scenario{
		Name:        "wrong",
		Description: "expects success from an abstract method",
		Assembly:    "testdata/assemblies/abstract.yaml",
		Expect:      Expectation{Status: StatusOK},
		Assertions:  []Assertion{{Type: AssertProcedureCount, Count: 1}},
	}
	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected status ok, got error ABSTRACT_METHOD")
}

func TestRun_WrongCodeAndMessage(t *testing.T) {
	scenario := &Scenario{
		Name:        "wrong",
		Description: "expects the wrong code",
		Assembly:    "testdata/assemblies/abstract.yaml",
		Expect:      Expectation{Status: StatusError, Code: "UNSUPPORTED_TYPE", Message: "structs"},
	}
	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "expected error code UNSUPPORTED_TYPE, got ABSTRACT_METHOD")
	assert.Contains(t, result.Errors[1], `expected error message containing "structs"`)
}

func TestRun_LoadFailure(t *testing.T) {
	scenario := &Scenario{
		Name:        "missing",
		Description: "assembly disappears",
		Assembly:    "testdata/assemblies/missing.yaml",
		Expect:      Expectation{Status: StatusError, Code: "E005"},
	}
	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "E005", result.Code)
}

func TestRun_NilScenario(t *testing.T) {
	_, err := Run(nil)
	require.Error(t, err)
}
