package lox

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// scenarioCheck is one expected global binding after running a scenario's
// source through the embedder API.
type scenarioCheck struct {
	Name  string `yaml:"name"`
	Kind  string `yaml:"kind"`
	Value any    `yaml:"value"`
}

// scenario is a single program/expectation pairing exercising the
// embedder API (CompileString + Lookup).
type scenario struct {
	Name   string          `yaml:"name"`
	Source string          `yaml:"source"`
	Checks []scenarioCheck `yaml:"checks"`
}

// loadScenarios reads testdata/scenarios.yaml, the data-driven table of
// end-to-end program/expectation pairs.
func loadScenarios(t *testing.T) []scenario {
	t.Helper()
	raw, err := os.ReadFile("testdata/scenarios.yaml")
	require.NoError(t, err)

	var scenarios []scenario
	require.NoError(t, yaml.Unmarshal(raw, &scenarios))
	return scenarios
}

func TestScenarios(t *testing.T) {
	for _, sc := range loadScenarios(t) {
		sc := sc
		t.Run(sc.Name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			in := NewInterpreter(&stdout, &stderr)
			prog := CompileString(sc.Name, sc.Source)
			require.False(t, prog.HadErrors(), "scan/parse errors: %v %v", prog.ScanErrors, prog.ParseErrors)
			prog.Run(in)

			for _, check := range sc.Checks {
				v, ok := in.Lookup(check.Name)
				require.True(t, ok, "expected global %q to be bound", check.Name)

				switch check.Kind {
				case "number":
					want, ok := check.Value.(int)
					if ok {
						assert.Equal(t, float64(want), v.Number(), "global %q", check.Name)
					} else {
						assert.Equal(t, check.Value.(float64), v.Number(), "global %q", check.Name)
					}
				case "string":
					assert.Equal(t, check.Value.(string), v.Str(), "global %q", check.Name)
				case "bool":
					assert.Equal(t, check.Value.(bool), v.Bool(), "global %q", check.Name)
				case "nil":
					assert.True(t, v.IsNil(), "global %q", check.Name)
				default:
					t.Fatalf("unknown check kind %q", check.Kind)
				}
			}
		})
	}
}

func TestCompileStringReportsHadErrors(t *testing.T) {
	prog := CompileString("bad", "var x = 1")
	assert.True(t, prog.HadErrors())

	prog = CompileString("good", "var x = 1;")
	assert.False(t, prog.HadErrors())
}
