package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cypherfrag/internal/pattern"
)

func TestLoadScenario_ValidFile(t *testing.T) {
	dir := t.TempDir()
	scenarioPath := filepath.Join(dir, "test.yaml")

	content := `
name: test_scenario
description: "Test scenario for validation"
fragments:
  - args: [person, [Person], {name: Steve, active: true}]
    expanded: false
expect:
  query: "(person:Person $conditions)"
  params:
    conditions: {name: Steve, active: true}
`
	require.NoError(t, os.WriteFile(scenarioPath, []byte(content), 0644))

	scenario, err := LoadScenario(scenarioPath)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "Test scenario for validation", scenario.Description)
	require.Len(t, scenario.Fragments, 1)

	step := scenario.Fragments[0]
	require.NotNil(t, step.Expanded)
	assert.False(t, *step.Expanded)

	values := step.Values()
	require.Len(t, values, 3)
	assert.Equal(t, "person", values[0])
	assert.Equal(t, []any{"Person"}, values[1])

	conditions, ok := values[2].(pattern.Conditions)
	require.True(t, ok, "mapping should decode as Conditions, got %T", values[2])
	assert.Equal(t, []string{"name", "active"}, conditions.Keys())
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_KeepsMappingOrder(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: order
description: "keys stay in declared order"
fragments:
  - args:
      - zeta: 1
        alpha: 2
        mid: 3
expect:
  query: "({ zeta: $zeta, alpha: $alpha, mid: $mid })"
`))
	require.NoError(t, err)

	conditions := scenario.Fragments[0].Args[0].Value.(pattern.Conditions)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, conditions.Keys())
}

func TestParseScenario_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			content: "name: [unclosed",
			wantErr: "failed to parse YAML",
		},
		{
			name: "unknown field",
			content: `
name: x
description: d
fragment:
  - args: [a]
expect: {query: "(a)"}
`,
			wantErr: "failed to parse YAML",
		},
		{
			name: "missing name",
			content: `
description: d
fragments:
  - args: [a]
expect: {query: "(a)"}
`,
			wantErr: "Scenario.Name",
		},
		{
			name: "missing description",
			content: `
name: x
fragments:
  - args: [a]
expect: {query: "(a)"}
`,
			wantErr: "Scenario.Description",
		},
		{
			name: "no fragments",
			content: `
name: x
description: d
fragments: []
expect: {query: "(a)"}
`,
			wantErr: "Scenario.Fragments",
		},
		{
			name: "too many args",
			content: `
name: x
description: d
fragments:
  - args: [a, b, [C], {d: 1}]
expect: {query: "(a)"}
`,
			wantErr: "Args",
		},
		{
			name: "no query and no error",
			content: `
name: x
description: d
fragments:
  - args: [a]
expect: {}
`,
			wantErr: "Expect.Query",
		},
		{
			name: "query and error together",
			content: `
name: x
description: d
fragments:
  - args: [a]
expect: {query: "(a)", error: INVALID_ARGUMENT_SHAPE}
`,
			wantErr: "Expect.Error",
		},
		{
			name: "unknown clause",
			content: `
name: x
description: d
fragments:
  - args: [a]
clause: DELETE
expect: {query: "(a)"}
`,
			wantErr: "Scenario.Clause",
		},
		{
			name: "several fragments without clause",
			content: `
name: x
description: d
fragments:
  - args: [a]
  - args: [b]
expect: {query: "(a)"}
`,
			wantErr: "clause is required",
		},
		{
			name: "merge with several fragments",
			content: `
name: x
description: d
fragments:
  - args: [a]
  - args: [b]
clause: MERGE
expect: {query: "(a)"}
`,
			wantErr: "MERGE takes exactly one fragment",
		},
		{
			name: "return without clause",
			content: `
name: x
description: d
fragments:
  - args: [a]
return: [a]
expect: {query: "(a)"}
`,
			wantErr: "return requires a clause",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
