package pattern

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/cypherfrag/internal/params"
)

// Property is one key/value pair of a condition map.
type Property struct {
	Key   string
	Value any
}

// P is a shorthand for Property.
// Example: NewConditions(P("name", "Steve"), P("active", true))
func P(key string, value any) Property {
	return Property{Key: key, Value: value}
}

// Conditions is a property map that remembers insertion order.
//
// Expanded rendering emits properties in this order, so it survives JSON and
// YAML decoding. The zero value is an empty, usable map.
type Conditions struct {
	keys   []string
	values map[string]any
}

// NewConditions creates Conditions from pairs. A repeated key keeps its
// first position and takes the last value.
func NewConditions(props ...Property) Conditions {
	var c Conditions
	for _, p := range props {
		c.Set(p.Key, p.Value)
	}
	return c
}

// ConditionsFromMap creates Conditions from a Go map. Go maps carry no
// order, so keys are taken in lexical order.
func ConditionsFromMap(m map[string]any) Conditions {
	var c Conditions
	for _, k := range slices.Sorted(maps.Keys(m)) {
		c.Set(k, m[k])
	}
	return c
}

// Set adds or replaces a property.
func (c *Conditions) Set(key string, value any) {
	if c.values == nil {
		c.values = make(map[string]any)
	}
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}

// Get returns the value stored under key.
func (c Conditions) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Keys returns property names in insertion order.
func (c Conditions) Keys() []string {
	return slices.Clone(c.keys)
}

// Len returns the number of properties.
func (c Conditions) Len() int {
	return len(c.keys)
}

// Map returns the properties as a fresh Go map.
func (c Conditions) Map() map[string]any {
	out := make(map[string]any, len(c.keys))
	for _, k := range c.keys {
		out[k] = c.values[k]
	}
	return out
}

// Clone returns a copy that shares no state with c. Map, slice and array
// values are copied too.
func (c Conditions) Clone() Conditions {
	out := Conditions{keys: slices.Clone(c.keys)}
	if c.values != nil {
		out.values = make(map[string]any, len(c.values))
		for k, v := range c.values {
			out.values[k] = params.CloneValue(v)
		}
	}
	return out
}

// MarshalJSON writes the properties as a JSON object in insertion order.
func (c Conditions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := json.Marshal(c.values[k])
		if err != nil {
			return nil, fmt.Errorf("marshal value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping its key order. Integral numbers
// decode to int64, others to float64.
func (c *Conditions) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("conditions must be a JSON object, got %v", tok)
	}

	*c = Conditions{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("conditions: unexpected key token %v", tok)
		}

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("conditions key %q: %w", key, err)
		}
		c.Set(key, normalizeNumbers(raw))
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// UnmarshalYAML reads a YAML mapping keeping its key order.
func (c *Conditions) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: conditions must be a mapping", node.Line)
	}

	*c = Conditions{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]

		var value any
		if err := valNode.Decode(&value); err != nil {
			return fmt.Errorf("line %d: conditions key %q: %w", valNode.Line, keyNode.Value, err)
		}
		c.Set(keyNode.Value, value)
	}
	return nil
}

// normalizeNumbers converts json.Number values produced by UseNumber.
func normalizeNumbers(v any) any {
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
			val[i] = normalizeNumbers(elem)
		}
		return val
	case map[string]any:
		for k, elem := range val {
			val[k] = normalizeNumbers(elem)
		}
		return val
	default:
		return v
	}
}
