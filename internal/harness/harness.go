package harness

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/roach88/bct/internal/bpl"
	"github.com/roach88/bct/internal/pipeline"
)

var log = commonlog.GetLogger("bct.harness")

// Run translates the scenario's assembly and checks the outcome against
// the scenario's expectation and assertions.
//
// The returned error is reserved for scenarios the harness cannot evaluate;
// a translation that fails unexpectedly is a failed Result.
func Run(scenario *Scenario) (*Result, error) {
	if scenario == nil {
		return nil, fmt.Errorf("nil scenario")
	}
	result := NewResult()

	out, err := pipeline.TranslateFileAs(scenario.Assembly, filepath.Base(scenario.Assembly))
	if err != nil {
		result.Status = StatusError
		result.Code = pipeline.ErrorCode(err)
		result.Message = pipeline.Describe(err)
	} else {
		result.Status = StatusOK
		result.Program = out.Text
		result.Hash = out.Hash
	}
	log.Debugf("scenario %s: %s %s", scenario.Name, result.Status, result.Code)

	checkExpectation(scenario.Expect, result)
	if out != nil {
		for _, errMsg := range EvaluateAssertions(out.Program, out.Text, scenario.Assertions) {
			result.AddError(errMsg)
		}
	}
	return result, nil
}

func checkExpectation(expect Expectation, result *Result) {
	if result.Status != expect.Status {
		if result.Status == StatusError {
			result.AddError(fmt.Sprintf("expected status ok, got error %s: %s", result.Code, result.Message))
		} else {
			result.AddError(fmt.Sprintf("expected error %s, translation succeeded", expect.Code))
		}
		return
	}
	if expect.Status != StatusError {
		return
	}
	if result.Code != expect.Code {
		result.AddError(fmt.Sprintf("expected error code %s, got %s: %s", expect.Code, result.Code, result.Message))
	}
	if expect.Message != "" && !strings.Contains(result.Message, expect.Message) {
		result.AddError(fmt.Sprintf("expected error message containing %q, got %q", expect.Message, result.Message))
	}
}

// programSummary lists the declared procedure names, for failure context.
func programSummary(p *bpl.Program) string {
	procs := p.Procedures()
	names := make([]string, len(procs))
	for i, proc := range procs {
		names[i] = proc.Name
	}
	return strings.Join(names, ", ")
}
