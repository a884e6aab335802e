package compiler

import (
	"errors"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"github.com/go-playground/validator/v10"

	"github.com/roach88/cypherfrag/internal/pattern"
)

var validate = validator.New()

// PatternDef is a compiled pattern definition.
type PatternDef struct {
	// Name is the definition's label under "pattern".
	Name string `json:"name" validate:"required"`

	Variable   string             `json:"variable,omitempty"`
	Labels     []string           `json:"labels,omitempty" validate:"dive,required"`
	Conditions pattern.Conditions `json:"conditions"`
	Expanded   bool               `json:"expanded"`
}

// Build creates a fresh node pattern from the definition. Every call
// returns an independent fragment with its own bag.
func (d *PatternDef) Build() *pattern.NodePattern {
	n := pattern.New(pattern.Options{
		Name:       d.Variable,
		Labels:     d.Labels,
		Conditions: d.Conditions,
	})
	return n.SetExpandedConditions(d.Expanded)
}

// CompilePatterns compiles every definition under the "pattern" struct of
// v, in declaration order. All errors are collected; definitions that fail
// are skipped.
func CompilePatterns(v cue.Value) ([]PatternDef, []error) {
	if err := v.Err(); err != nil {
		return nil, []error{formatCUEError(err)}
	}

	patternsVal := v.LookupPath(cue.ParsePath("pattern"))
	if !patternsVal.Exists() {
		return nil, nil
	}

	iter, err := patternsVal.Fields()
	if err != nil {
		return nil, []error{formatCUEError(err)}
	}

	var defs []PatternDef
	var errs []error
	for iter.Next() {
		def, err := CompilePattern(iter.Value())
		if err != nil {
			errs = append(errs, fmt.Errorf("pattern.%s: %w", iter.Label(), err))
			continue
		}
		defs = append(defs, *def)
	}
	return defs, errs
}

// CompilePattern parses one definition. The CUE value should be the
// definition struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`pattern: person: { variable: "person" }`)
//	def, err := CompilePattern(v.LookupPath(cue.ParsePath("pattern.person")))
func CompilePattern(v cue.Value) (*PatternDef, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	if v.IncompleteKind() != cue.StructKind {
		return nil, &CompileError{
			Field:   "pattern",
			Message: "definition must be a struct",
			Pos:     v.Pos(),
		}
	}

	def := &PatternDef{Expanded: true}

	selectors := v.Path().Selectors()
	if len(selectors) > 0 {
		sel := selectors[len(selectors)-1]
		if sel.LabelType() == cue.StringLabel {
			def.Name = sel.Unquoted()
		} else {
			def.Name = sel.String()
		}
	}

	if varVal := v.LookupPath(cue.ParsePath("variable")); varVal.Exists() {
		s, err := varVal.String()
		if err != nil {
			return nil, &CompileError{Field: "variable", Message: "variable must be a string", Pos: varVal.Pos()}
		}
		def.Variable = s
	}

	labels, err := parseLabels(v)
	if err != nil {
		return nil, err
	}
	def.Labels = labels

	conditions, err := parseConditions(v)
	if err != nil {
		return nil, err
	}
	def.Conditions = conditions

	if expVal := v.LookupPath(cue.ParsePath("expanded")); expVal.Exists() {
		b, err := expVal.Bool()
		if err != nil {
			return nil, &CompileError{Field: "expanded", Message: "expanded must be a bool", Pos: expVal.Pos()}
		}
		def.Expanded = b
	}

	if err := validate.Struct(def); err != nil {
		return nil, validationError(err, v)
	}
	return def, nil
}

// parseLabels accepts a single string or a list of strings.
func parseLabels(v cue.Value) ([]string, error) {
	labelsVal := v.LookupPath(cue.ParsePath("labels"))
	if !labelsVal.Exists() {
		return nil, nil
	}

	if s, err := labelsVal.String(); err == nil {
		return []string{s}, nil
	}

	iter, err := labelsVal.List()
	if err != nil {
		return nil, &CompileError{Field: "labels", Message: "labels must be a string or a list of strings", Pos: labelsVal.Pos()}
	}

	labels := []string{}
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, &CompileError{Field: "labels", Message: "labels must be a string or a list of strings", Pos: iter.Value().Pos()}
		}
		labels = append(labels, s)
	}
	return labels, nil
}

// parseConditions reads the conditions struct in declaration order.
func parseConditions(v cue.Value) (pattern.Conditions, error) {
	var conditions pattern.Conditions

	condVal := v.LookupPath(cue.ParsePath("conditions"))
	if !condVal.Exists() {
		return conditions, nil
	}

	iter, err := condVal.Fields()
	if err != nil {
		return conditions, &CompileError{Field: "conditions", Message: "conditions must be a struct", Pos: condVal.Pos()}
	}
	for iter.Next() {
		value, err := toGo(iter.Value())
		if err != nil {
			return conditions, err
		}
		conditions.Set(iter.Label(), value)
	}
	return conditions, nil
}

// toGo converts a concrete CUE value into the Go value used as a parameter.
func toGo(v cue.Value) (any, error) {
	switch v.Kind() {
	case cue.NullKind:
		return nil, nil
	case cue.BoolKind:
		return v.Bool()
	case cue.IntKind:
		return v.Int64()
	case cue.FloatKind:
		return v.Float64()
	case cue.StringKind:
		return v.String()
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		list := []any{}
		for iter.Next() {
			elem, err := toGo(iter.Value())
			if err != nil {
				return nil, err
			}
			list = append(list, elem)
		}
		return list, nil
	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		obj := map[string]any{}
		for iter.Next() {
			elem, err := toGo(iter.Value())
			if err != nil {
				return nil, err
			}
			obj[iter.Label()] = elem
		}
		return obj, nil
	default:
		return nil, &CompileError{
			Field:   "conditions",
			Message: fmt.Sprintf("condition value must be concrete, got %s", v.IncompleteKind()),
			Pos:     v.Pos(),
		}
	}
}

// validationError reports the first failed struct tag as a CompileError.
func validationError(err error, v cue.Value) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if strings.HasPrefix(fe.StructField(), "Labels") {
			return &CompileError{Field: "labels", Message: "labels must not be empty strings", Pos: v.Pos()}
		}
		return &CompileError{
			Field:   "pattern",
			Message: fmt.Sprintf("%s failed %q validation", fe.Namespace(), fe.Tag()),
			Pos:     v.Pos(),
		}
	}
	return err
}
