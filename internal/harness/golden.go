package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenPath returns the golden file for the scenario at scenarioFile:
// golden/<file name without extension>.golden in the scenario's directory.
func GoldenPath(scenarioFile string) string {
	dir := filepath.Dir(scenarioFile)
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "golden", name+".golden")
}

// UpdateGolden writes the result's program as the golden file.
func UpdateGolden(scenarioFile string, result *Result) error {
	if result.Status != StatusOK {
		return fmt.Errorf("no program to record: translation failed with %s", result.Code)
	}
	path := GoldenPath(scenarioFile)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(result.Program), 0644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// CompareGolden reports whether the result's program matches the golden
// file. The boolean exists is false when there is no golden file.
func CompareGolden(scenarioFile string, result *Result) (match, exists bool, err error) {
	data, err := os.ReadFile(GoldenPath(scenarioFile))
	if os.IsNotExist(err) {
		return false, false, nil
	}
	if err != nil {
		return false, true, fmt.Errorf("failed to read golden file: %w", err)
	}
	return string(data) == result.Program, true, nil
}

// RunWithGolden loads and runs the scenario at scenarioFile and compares the
// printed program against golden/<name>.golden next to it.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenarioFile string) (*Result, error) {
	t.Helper()

	scenario, err := LoadScenario(scenarioFile)
	if err != nil {
		return nil, err
	}
	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir(filepath.Dir(GoldenPath(scenarioFile))),
		goldie.WithNameSuffix(".golden"),
	)
	name := strings.TrimSuffix(filepath.Base(scenarioFile), filepath.Ext(scenarioFile))
	g.Assert(t, name, []byte(result.Program))

	return result, nil
}
