package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/bct/internal/bpl"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type       string // Assertion type for categorization
	Expected   string // Human-readable expected outcome
	Actual     string // Human-readable actual outcome
	Procedures string // Declared procedures for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	if e.Procedures != "" {
		fmt.Fprintf(&buf, "  Procedures: %s\n", e.Procedures)
	}

	return buf.String()
}

func assertProcedureExists(p *bpl.Program, a Assertion) error {
	if p.Procedure(a.Name) != nil {
		return nil
	}
	return &AssertionError{
		Type:       AssertProcedureExists,
		Expected:   fmt.Sprintf("procedure %s", a.Name),
		Actual:     "not declared",
		Procedures: programSummary(p),
	}
}

func assertImplementationExists(p *bpl.Program, a Assertion) error {
	if p.Implementation(a.Name) != nil {
		return nil
	}
	return &AssertionError{
		Type:       AssertImplementationExists,
		Expected:   fmt.Sprintf("implementation of %s", a.Name),
		Actual:     "not found",
		Procedures: programSummary(p),
	}
}

func assertConstantExists(p *bpl.Program, a Assertion) error {
	var names []string
	for _, c := range p.Constants() {
		if c.Name == a.Name {
			return nil
		}
		names = append(names, c.Name)
	}
	actual := "no constants"
	if len(names) > 0 {
		actual = "constants " + strings.Join(names, ", ")
	}
	return &AssertionError{
		Type:     AssertConstantExists,
		Expected: fmt.Sprintf("constant %s", a.Name),
		Actual:   actual,
	}
}

func assertProcedureCount(p *bpl.Program, a Assertion) error {
	if n := len(p.Procedures()); n != a.Count {
		return &AssertionError{
			Type:       AssertProcedureCount,
			Expected:   fmt.Sprintf("%d procedures", a.Count),
			Actual:     fmt.Sprintf("%d procedures", n),
			Procedures: programSummary(p),
		}
	}
	return nil
}

func assertProgramContains(text string, a Assertion) error {
	if strings.Contains(text, a.Text) {
		return nil
	}
	return &AssertionError{
		Type:     AssertProgramContains,
		Expected: fmt.Sprintf("program containing %q", a.Text),
		Actual:   "not found",
	}
}

// EvaluateAssertions evaluates all assertions against a translated program
// and its printed text. Returns a slice of error messages for failed
// assertions.
func EvaluateAssertions(p *bpl.Program, text string, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertProcedureExists:
			err = assertProcedureExists(p, assertion)
		case AssertImplementationExists:
			err = assertImplementationExists(p, assertion)
		case AssertConstantExists:
			err = assertConstantExists(p, assertion)
		case AssertProcedureCount:
			err = assertProcedureCount(p, assertion)
		case AssertProgramContains:
			err = assertProgramContains(text, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
