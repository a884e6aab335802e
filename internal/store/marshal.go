package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/roach88/cypherfrag/internal/canonical"
)

// marshalParams converts parameters to canonical JSON TEXT for storage.
func marshalParams(params map[string]any) (string, error) {
	if params == nil {
		params = map[string]any{}
	}
	data, err := canonical.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("marshal params: %w", err)
	}
	return string(data), nil
}

// unmarshalParams parses stored JSON TEXT. Integers come back as int64 and
// other numbers as float64, so values above 2^53 survive.
func unmarshalParams(data string) (map[string]any, error) {
	if data == "" || data == "{}" {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.UseNumber()
	var params map[string]any
	if err := dec.Decode(&params); err != nil {
		return nil, fmt.Errorf("unmarshal params: %w", err)
	}
	for k, v := range params {
		params[k] = fromJSONNumber(v)
	}
	return params, nil
}

func fromJSONNumber(v any) any {
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case []any:
		for i, elem := range val {
			val[i] = fromJSONNumber(elem)
		}
		return val
	case map[string]any:
		for k, elem := range val {
			val[k] = fromJSONNumber(elem)
		}
		return val
	default:
		return v
	}
}
