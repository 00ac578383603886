package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: a sequence of moves played
// against a started game, plus expectations on the final state.
type Scenario struct {
	// Name uniquely identifies this scenario. Also the golden file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Moves contains the scripted moves in play order.
	Moves []MoveStep `yaml:"moves"`

	// Expect validates the final state once every move has been played.
	Expect *Expectation `yaml:"expect,omitempty"`
}

// MoveStep represents one scripted move: the advertised move name and the
// parameter values to assign.
type MoveStep struct {
	// Move is the advertised move template name (e.g., "place").
	Move string `yaml:"move"`

	// Params maps choice names to values. Decoded YAML values are
	// converted to prop values; floats are rejected.
	Params map[string]any `yaml:"params,omitempty"`
}

// Expectation specifies the expected final game state.
type Expectation struct {
	// State is the expected state name.
	State string `yaml:"state,omitempty"`

	// StateProps lists state entries that must be present with equal
	// values (subset match; extra entries are ignored).
	StateProps map[string]any `yaml:"state_props,omitempty"`

	// Choices, when non-nil, is the expected number of advertised moves.
	Choices *int `yaml:"choices,omitempty"`
}

// LoadScenario reads and parses one scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("load scenario %s: name is required", path)
	}

	return &sc, nil
}
