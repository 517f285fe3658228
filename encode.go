package fixedrecord

import (
	"encoding"
	"reflect"
	"strconv"
	"strings"
)

// Marshal returns the fixed-width record encoding of v.
//
// v must be a struct or a pointer to a struct. Each exported field
// with a valid fixed tag is written to the record with Set at the
// position defined by its tag (see LayoutOf). nil pointers are
// written as empty fields.
//
// In order for a field to be encodable, it must implement Marshaler
// or encoding.TextMarshaler or be based on one of the following
// builtin types: string, bool, any int or uint type, float64 or
// float32.
//
// Unlike Set, Marshal never fails because a value is too long for
// its field; the overflow is truncated as by SafeSet.
func Marshal(v interface{}) ([]byte, error) {
	if v == nil {
		return nil, nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, &MarshalInvalidTypeError{typeName: rv.Type().String()}
	}

	ss := cachedStructSpec(rv.Type())
	r, err := New(ss.layout)
	if err != nil {
		return nil, err
	}
	for i, f := range ss.layout.Fields {
		fv := rv.Field(ss.index[i]).Interface()
		if fv == nil {
			fv = ""
		}
		if err := r.SafeSet(f.Name, fv); err != nil {
			return nil, err
		}
	}
	return r.Bytes()
}

// MarshalInvalidTypeError describes an invalid type being marshaled.
type MarshalInvalidTypeError struct {
	typeName string
}

func (e *MarshalInvalidTypeError) Error() string {
	return "fixedrecord: cannot marshal unknown Type " + e.typeName
}

// ValueWriter is responsible for writing an encoded value to
// the destination. ValueWriter should handle padding and
// truncation.
//
// The destination param will always have the length and capacity
// of the field being written and is filled with the layout's
// padding byte.
type ValueWriter func(value, destination []byte) error

// PadRight is a ValueWriter that pads values on the right.
// If the the value is longer than the destination, the value
// will be truncated on the right.
func PadRight(value, destination []byte) error {
	for i := 0; i < len(value) && i < len(destination); i++ {
		destination[i] = value[i]
	}
	return nil
}

// PadLeft is a ValueWriter that pads values on the left.
// If the the value is longer than the destination, the value
// will be truncated on the left.
func PadLeft(value, destination []byte) error {
	for i := 0; i < len(value) && i < len(destination); i++ {
		destination[len(destination)-i-1] = value[len(value)-i-1]
	}
	return nil
}

type alignment string

const (
	left  alignment = "left"
	right alignment = "right"
)

func alignmentOf(o Options) alignment {
	if o.Justify && o.Setter == nil {
		return right
	}
	return left
}

func (a alignment) writer() ValueWriter {
	if a == right {
		return PadLeft
	}
	return PadRight
}

// valueEncoder turns a value into the text stored in a field of the
// given width. The result may be longer than width; the caller decides
// whether that is an error.
type valueEncoder func(v interface{}, width int) (string, error)

func newValueEncoder(o Options) valueEncoder {
	switch {
	case o.Setter != nil:
		return setterEncoder(o.Setter)
	case o.Justify:
		return justifyEncoder
	case len(o.Vals) > 0:
		return valsEncoder(o.Vals)
	}
	return textEncoder
}

func setterEncoder(fn SetterFunc) valueEncoder {
	return func(v interface{}, _ int) (string, error) {
		return fn(v)
	}
}

// justifyEncoder writes the value as given. Right-justified fields are
// expected to hold pre-formatted text so no folding or translation
// happens.
func justifyEncoder(v interface{}, width int) (string, error) {
	s, _, err := coerce(v, width)
	return s, err
}

func textEncoder(v interface{}, width int) (string, error) {
	s, raw, err := coerce(v, width)
	if err != nil {
		return "", err
	}
	if !raw {
		s = Fold(s)
	}
	return s, nil
}

func valsEncoder(vals map[string]string) valueEncoder {
	return func(v interface{}, width int) (string, error) {
		s, err := textEncoder(v, width)
		if err != nil {
			return "", err
		}
		if enc, ok := vals[strings.ToLower(s)]; ok {
			return enc, nil
		}
		return s, nil
	}
}

var (
	marshalerType     = reflect.TypeOf(new(Marshaler)).Elem()
	textMarshalerType = reflect.TypeOf(new(encoding.TextMarshaler)).Elem()
)

// coerce converts v to its field text. raw reports whether the text is
// already in its final form (numbers and Marshaler output) and must not
// be folded.
func coerce(v interface{}, width int) (s string, raw bool, err error) {
	if v == nil {
		return "", false, &InvalidValueError{}
	}
	return coerceValue(reflect.ValueOf(v), width)
}

func coerceValue(v reflect.Value, width int) (string, bool, error) {
	t := v.Type()

	switch t.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return "", false, nil
		}
	}

	if t.Implements(marshalerType) {
		b, err := v.Interface().(Marshaler).MarshalFixedWidth(width)
		return string(b), true, err
	}
	if t.Implements(textMarshalerType) {
		b, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		return string(b), false, err
	}

	switch t.Kind() {
	case reflect.Ptr, reflect.Interface:
		return coerceValue(v.Elem(), width)
	case reflect.String:
		return v.String(), false, nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), false, nil
	case reflect.Int, reflect.Int64, reflect.Int32, reflect.Int16, reflect.Int8:
		return strconv.FormatInt(v.Int(), 10), true, nil
	case reflect.Uint, reflect.Uint64, reflect.Uint32, reflect.Uint16, reflect.Uint8:
		return strconv.FormatUint(v.Uint(), 10), true, nil
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), true, nil
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32), true, nil
	}
	return "", false, &InvalidValueError{Type: t}
}
