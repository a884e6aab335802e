package pattern

import "fmt"

// argStage is how far FromArgs has progressed through (name, labels,
// conditions). Each stage may be skipped but never revisited.
type argStage int

const (
	stageName argStage = iota
	stageLabels
	stageConditions
	stageDone
)

// FromArgs builds a node pattern from up to three loosely typed arguments,
// inferring each argument's role from its shape:
//
//	("person")                            name
//	("person", "Person")                  name, single label
//	("person", []string{...})             name, labels
//	([]string{...})                       labels
//	(conds)                               conditions
//	("person", conds)                     name, conditions
//	([]string{...}, conds)                labels, conditions
//	("person", []string{...}, conds)      name, labels, conditions
//	("person", []string{}, conds)         name, no labels, conditions
//
// Labels may be []string or []any holding only strings. Conditions may be
// Conditions, *Conditions or map[string]any; a Go map has no order, so its
// keys render lexically. Anything else fails with an ArgumentError.
func FromArgs(args ...any) (*NodePattern, error) {
	if len(args) > 3 {
		return nil, &ArgumentError{
			Position: 3,
			Message:  fmt.Sprintf("at most 3 arguments are accepted, got %d", len(args)),
		}
	}

	var opts Options
	stage := stageName
	for i, arg := range args {
		if s, ok := arg.(string); ok {
			switch stage {
			case stageName:
				opts.Name = s
				stage = stageLabels
			case stageLabels:
				opts.Labels = []string{s}
				stage = stageConditions
			default:
				return nil, &ArgumentError{Position: i, Message: "string is only valid as a name or a single label"}
			}
			continue
		}

		if labels, ok, err := asLabels(arg); ok {
			if err != nil {
				return nil, &ArgumentError{Position: i, Message: err.Error()}
			}
			if stage > stageLabels {
				return nil, &ArgumentError{Position: i, Message: "labels must precede conditions"}
			}
			opts.Labels = labels
			stage = stageConditions
			continue
		}

		if conditions, ok := asConditions(arg); ok {
			if stage > stageConditions {
				return nil, &ArgumentError{Position: i, Message: "conditions may only be given once"}
			}
			opts.Conditions = conditions
			stage = stageDone
			continue
		}

		return nil, &ArgumentError{Position: i, Message: fmt.Sprintf("unsupported argument type %T", arg)}
	}

	return New(opts), nil
}

// asLabels reports whether arg is a sequence and, if so, converts it.
// A sequence holding a non-string is a shape error.
func asLabels(arg any) ([]string, bool, error) {
	switch val := arg.(type) {
	case []string:
		return val, true, nil
	case []any:
		labels := make([]string, 0, len(val))
		for j, elem := range val {
			s, ok := elem.(string)
			if !ok {
				return nil, true, fmt.Errorf("label %d is %T, want string", j, elem)
			}
			labels = append(labels, s)
		}
		return labels, true, nil
	default:
		return nil, false, nil
	}
}

func asConditions(arg any) (Conditions, bool) {
	switch val := arg.(type) {
	case Conditions:
		return val, true
	case *Conditions:
		if val == nil {
			return Conditions{}, false
		}
		return *val, true
	case map[string]any:
		return ConditionsFromMap(val), true
	default:
		return Conditions{}, false
	}
}
