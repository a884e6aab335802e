package pattern

// QueryObject is a rendered fragment: query text plus the parameter values
// it references, keyed by resolved name.
type QueryObject struct {
	Query  string         `json:"query"`
	Params map[string]any `json:"params"`
}
