package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/roach88/cypherfrag/internal/pattern"
)

var validate = validator.New()

// Clause keywords a scenario may wrap its fragments in.
const (
	ClauseMatch  = "MATCH"
	ClauseCreate = "CREATE"
	ClauseMerge  = "MERGE"
)

// Scenario describes fragments to render and the expected rendering.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name" validate:"required"`

	Description string `yaml:"description" validate:"required"`

	// Fragments are built in order, each from its constructor arguments.
	Fragments []FragmentStep `yaml:"fragments" validate:"required,min=1,dive"`

	// Clause puts all fragments into one statement. Required when there is
	// more than one fragment.
	Clause string `yaml:"clause,omitempty" validate:"omitempty,oneof=MATCH CREATE MERGE"`

	// Return items are appended verbatim as a RETURN clause.
	Return []string `yaml:"return,omitempty" validate:"dive,required"`

	Expect ExpectClause `yaml:"expect"`
}

// FragmentStep builds one node pattern.
type FragmentStep struct {
	// Args follow the shapes accepted by pattern.FromArgs.
	Args []Arg `yaml:"args" validate:"max=3"`

	// Expanded selects the rendering mode. Defaults to true.
	Expanded *bool `yaml:"expanded,omitempty"`
}

// ExpectClause is the expected outcome of a scenario.
type ExpectClause struct {
	Query  string         `yaml:"query" validate:"required_without=Error"`
	Params map[string]any `yaml:"params,omitempty"`

	// Error is the expected error code. When set, Query and Params are
	// ignored.
	Error string `yaml:"error,omitempty" validate:"excluded_with=Query"`
}

// Arg is one loosely typed constructor argument. YAML strings stay
// strings, sequences become []any and mappings become ordered
// pattern.Conditions so the declared key order survives.
type Arg struct {
	Value any
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *Arg) UnmarshalYAML(node *yaml.Node) error {
	value, err := decodeArg(node)
	if err != nil {
		return err
	}
	a.Value = value
	return nil
}

func decodeArg(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return decodeArg(node.Alias)
	case yaml.MappingNode:
		var conditions pattern.Conditions
		if err := node.Decode(&conditions); err != nil {
			return nil, err
		}
		return conditions, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(node.Content))
		for _, elem := range node.Content {
			value, err := decodeArg(elem)
			if err != nil {
				return nil, err
			}
			list = append(list, value)
		}
		return list, nil
	default:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return value, nil
	}
}

// Values returns the raw argument values.
func (s FragmentStep) Values() []any {
	values := make([]any, len(s.Args))
	for i, arg := range s.Args {
		values[i] = arg.Value
	}
	return values
}

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so typos do not silently pass.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks struct tags and the rules tags cannot express.
func validateScenario(s *Scenario) error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s: failed %q validation", fe.Namespace(), fe.Tag())
		}
		return err
	}

	if len(s.Fragments) > 1 && s.Clause == "" {
		return fmt.Errorf("clause is required with %d fragments", len(s.Fragments))
	}
	if s.Clause == ClauseMerge && len(s.Fragments) != 1 {
		return fmt.Errorf("MERGE takes exactly one fragment, got %d", len(s.Fragments))
	}
	if len(s.Return) > 0 && s.Clause == "" {
		return fmt.Errorf("return requires a clause")
	}
	return nil
}
