package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/cypherfrag/internal/canonical"
	"github.com/roach88/cypherfrag/internal/params"
	"github.com/roach88/cypherfrag/internal/pattern"
	"github.com/roach88/cypherfrag/internal/statement"
)

// ErrCodeStatement marks statement composition failures.
const ErrCodeStatement = "STATEMENT_ERROR"

// Harness renders scenarios.
type Harness struct {
	logger *slog.Logger
}

// New creates a harness that logs to logger. A nil logger discards.
func New(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{logger: logger}
}

// Run executes a scenario with a discarding logger.
func Run(scenario *Scenario) (*Result, error) {
	return New(nil).Run(scenario)
}

// Run builds the scenario's fragments, renders them and compares the
// outcome with the expectation. Mismatches are reported in the result;
// the returned error is reserved for failures the scenario did not ask
// for and that are not coded (for example canonical encoding failures).
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	result := NewResult()

	obj, err := h.render(scenario)
	if err != nil {
		code := errorCode(err)
		if code == "" {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		result.ErrorCode = code
		h.logger.Debug("scenario failed to build", "scenario", scenario.Name, "code", code, "error", err)

		switch {
		case scenario.Expect.Error == "":
			result.AddError(fmt.Sprintf("unexpected error: %v", err))
		case scenario.Expect.Error != code:
			result.AddError(fmt.Sprintf("error code: expected %s, got %s", scenario.Expect.Error, code))
		}
		return result, nil
	}

	result.Query = obj.Query
	result.Params = obj.Params
	h.logger.Debug("scenario rendered", "scenario", scenario.Name, "query", obj.Query, "params", len(obj.Params))

	if scenario.Expect.Error != "" {
		result.AddError(fmt.Sprintf("expected error %s, got query %q", scenario.Expect.Error, obj.Query))
		return result, nil
	}

	if obj.Query != scenario.Expect.Query {
		result.AddError(fmt.Sprintf("query: expected %q, got %q", scenario.Expect.Query, obj.Query))
	}

	expected := scenario.Expect.Params
	if expected == nil {
		expected = map[string]any{}
	}
	equal, err := canonical.Equal(expected, obj.Params)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: compare params: %w", scenario.Name, err)
	}
	if !equal {
		want, _ := canonical.Marshal(expected)
		got, _ := canonical.Marshal(obj.Params)
		result.AddError(fmt.Sprintf("params: expected %s, got %s", want, got))
	}

	return result, nil
}

// render builds every fragment and, when a clause is set, composes them
// into one statement.
func (h *Harness) render(scenario *Scenario) (pattern.QueryObject, error) {
	nodes := make([]*pattern.NodePattern, 0, len(scenario.Fragments))
	for i, step := range scenario.Fragments {
		node, err := pattern.FromArgs(step.Values()...)
		if err != nil {
			return pattern.QueryObject{}, fmt.Errorf("fragments[%d]: %w", i, err)
		}
		if step.Expanded != nil {
			node.SetExpandedConditions(*step.Expanded)
		}
		nodes = append(nodes, node)
	}

	if scenario.Clause == "" {
		return nodes[0].BuildQueryObject(), nil
	}

	stmt := statement.New()
	switch scenario.Clause {
	case ClauseMatch:
		stmt.Match(nodes...)
	case ClauseCreate:
		stmt.Create(nodes...)
	case ClauseMerge:
		stmt.Merge(nodes[0])
	default:
		return pattern.QueryObject{}, fmt.Errorf("unknown clause %q", scenario.Clause)
	}
	if len(scenario.Return) > 0 {
		stmt.Return(scenario.Return...)
	}

	obj, err := stmt.Build()
	if err != nil {
		return pattern.QueryObject{}, &statementError{err: err}
	}
	return obj, nil
}

type statementError struct {
	err error
}

func (e *statementError) Error() string { return e.err.Error() }
func (e *statementError) Unwrap() error { return e.err }

// errorCode maps coded errors to the code a scenario can expect.
func errorCode(err error) string {
	var argErr *pattern.ArgumentError
	if errors.As(err, &argErr) {
		return pattern.ErrCodeInvalidArgumentShape
	}
	var paramErr *params.Error
	if errors.As(err, &paramErr) {
		return string(paramErr.Code)
	}
	var stmtErr *statementError
	if errors.As(err, &stmtErr) {
		return ErrCodeStatement
	}
	return ""
}
