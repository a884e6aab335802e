package harness

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when the rendering matched every expectation.
	Pass bool `json:"pass"`

	Query  string         `json:"query"`
	Params map[string]any `json:"params"`

	// ErrorCode is set when building failed with a coded error.
	ErrorCode string `json:"error_code,omitempty"`

	// Errors holds mismatch messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Params: map[string]any{},
		Errors: []string{},
	}
}

// AddError adds a mismatch and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
