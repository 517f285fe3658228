package valuecodec

import "encoding/json"

// JSON writes decoded record values as JSON objects, the default
// fixer --format. Integers read back from JSON are float64.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }

func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	if err := json.Unmarshal(b, &v); err != nil {
		return v, err
	}
	return v, nil
}
