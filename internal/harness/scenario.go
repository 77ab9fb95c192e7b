package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Assembly is the path of the assembly description to translate,
	// relative to the scenario file.
	Assembly string `yaml:"assembly"`

	// Expect is the expected translation outcome.
	Expect Expectation `yaml:"expect"`

	// Assertions validate the produced program. Only meaningful when the
	// translation is expected to succeed.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Expectation is the expected outcome of a translation.
type Expectation struct {
	// Status is "ok" or "error".
	Status string `yaml:"status"`

	// Code is the expected error code when Status is "error".
	Code string `yaml:"code,omitempty"`

	// Message is a substring the error description must contain.
	Message string `yaml:"message,omitempty"`
}

// Assertion validates the produced program.
type Assertion struct {
	// Type specifies the assertion type:
	// - "procedure_exists": Name is a declared procedure
	// - "implementation_exists": Name has an implementation
	// - "constant_exists": Name is a declared constant
	// - "procedure_count": exactly Count procedures are declared
	// - "program_contains": the printed program contains Text
	Type string `yaml:"type"`

	// Name is the procedure or constant name.
	Name string `yaml:"name,omitempty"`

	// Text is the expected program excerpt (used by program_contains).
	Text string `yaml:"text,omitempty"`

	// Count is the expected number of procedures (used by procedure_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertProcedureExists      = "procedure_exists"
	AssertImplementationExists = "implementation_exists"
	AssertConstantExists       = "constant_exists"
	AssertProcedureCount       = "procedure_count"
	AssertProgramContains      = "program_contains"
)

// Expected statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// LoadScenario reads and parses a scenario YAML file. The assembly path is
// resolved relative to the scenario file. Returns an error if the file
// doesn't exist, is malformed, contains unknown fields (typos), or is
// missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Assembly != "" && !filepath.IsAbs(scenario.Assembly) {
		scenario.Assembly = filepath.Join(filepath.Dir(path), scenario.Assembly)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Assembly == "" {
		return fmt.Errorf("assembly is required")
	}
	if _, err := os.Stat(s.Assembly); os.IsNotExist(err) {
		return fmt.Errorf("assembly file not found: %s", s.Assembly)
	}

	switch s.Expect.Status {
	case StatusOK:
		if s.Expect.Code != "" {
			return fmt.Errorf("expect.code requires status error")
		}
	case StatusError:
		if s.Expect.Code == "" {
			return fmt.Errorf("expect.code is required for status error")
		}
		if len(s.Assertions) > 0 {
			return fmt.Errorf("assertions require status ok")
		}
	case "":
		return fmt.Errorf("expect.status is required")
	default:
		return fmt.Errorf("expect.status must be ok or error, got %q", s.Expect.Status)
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertProcedureExists, AssertImplementationExists, AssertConstantExists:
		if a.Name == "" {
			return fmt.Errorf("assertions[%d]: name is required for %s", index, a.Type)
		}
	case AssertProcedureCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for procedure_count", index)
		}
	case AssertProgramContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for program_contains", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
