package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateValid(t *testing.T) {
	stdout, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), "testdata/counter.yaml")
	require.NoError(t, err)
	assert.Equal(t, "\u2713 testdata/counter.yaml is valid (1 types, 1 methods, 1 fields, 0 delegates)\n", stdout)
}

func TestValidateValidJSON(t *testing.T) {
	stdout, _, err := execute(NewValidateCommand(&RootOptions{Format: "json"}), "testdata/events.yaml")
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, 1, resp.Data.Types)
	assert.Equal(t, 2, resp.Data.Methods)
	assert.Equal(t, 1, resp.Data.Delegates)
	assert.Equal(t, 4, resp.Data.Procedures)
	assert.Equal(t, 3, resp.Data.Implementations)
}

func TestValidateDoesNotPrintProgram(t *testing.T) {
	stdout, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), "testdata/counter.yaml")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "procedure")
}

func TestValidateUnsupported(t *testing.T) {
	_, stderr, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), "testdata/abstract.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stderr, "error[ABSTRACT_METHOD]")
}

func TestValidateLoadError(t *testing.T) {
	stdout, _, err := execute(NewValidateCommand(&RootOptions{Format: "json"}), "testdata/badkind.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E007", resp.Error.Code)
	assert.NotNil(t, resp.Error.Details)
}

func TestValidateMissingArgs(t *testing.T) {
	_, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}
