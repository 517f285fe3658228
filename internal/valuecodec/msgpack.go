package valuecodec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack is the compact binary form of a record's values, selected with
// fixer --format msgpack. Unlike JSON it keeps integers as integers.
type Msgpack[V any] struct{}

func (Msgpack[V]) Encode(v V) ([]byte, error) { return msgpack.Marshal(v) }

func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	if err := msgpack.Unmarshal(b, &v); err != nil {
		return v, err
	}
	return v, nil
}
