// Package valuecodec serializes the decoded values of a record.
package valuecodec

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Values maps field names to decoded field values.
type Values = map[string]any

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

var codecs = map[string]func() (Codec[Values], error){
	"json":    func() (Codec[Values], error) { return JSON[Values]{}, nil },
	"yaml":    func() (Codec[Values], error) { return YAML[Values]{}, nil },
	"msgpack": func() (Codec[Values], error) { return Msgpack[Values]{}, nil },
	"cbor": func() (Codec[Values], error) {
		c, err := NewCBOR[Values](true)
		if err != nil {
			return nil, err
		}
		return c, nil
	},
}

// ByName returns the codec registered under name ("json", "yaml",
// "msgpack" or "cbor"). "yml" is accepted for "yaml".
func ByName(name string) (Codec[Values], error) {
	name = strings.ToLower(name)
	if name == "yml" {
		name = "yaml"
	}
	mk, ok := codecs[name]
	if !ok {
		return nil, errors.Errorf("valuecodec: unknown codec %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
	return mk()
}

// Names returns the registered codec names in sorted order.
func Names() []string {
	names := make([]string, 0, len(codecs))
	for n := range codecs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
