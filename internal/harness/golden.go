package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/cypherfrag/internal/canonical"
)

// Snapshot is the canonical rendering stored in a golden file.
type Snapshot struct {
	ScenarioName string         `json:"scenario_name"`
	Query        string         `json:"query"`
	Params       map[string]any `json:"params"`
}

func (s *Snapshot) toCanonicalMap() map[string]any {
	params := s.Params
	if params == nil {
		params = map[string]any{}
	}
	return map[string]any{
		"scenario_name": s.ScenarioName,
		"query":         s.Query,
		"params":        params,
	}
}

// MarshalSnapshot returns the canonical JSON bytes of a scenario's
// rendering, as written to its golden file.
func MarshalSnapshot(scenarioName string, result *Result) ([]byte, error) {
	snapshot := Snapshot{
		ScenarioName: scenarioName,
		Query:        result.Query,
		Params:       result.Params,
	}
	return canonical.Marshal(snapshot.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares its canonical rendering
// against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}
