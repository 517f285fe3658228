package fixedrecord

import (
	"bytes"
	"encoding"
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Unmarshal parses a fixed-width record and stores the result in
// the struct pointed to by v. If v is nil or not a pointer,
// Unmarshal returns an InvalidUnmarshalError.
//
// The record layout is taken from v's fixed tags (see LayoutOf).
// A single trailing line break is ignored. A record shorter than the
// layout is treated as if it were padded with spaces and bytes past
// the last tagged position are ignored.
func Unmarshal(data []byte, v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return &InvalidUnmarshalError{reflect.TypeOf(v)}
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return &MarshalInvalidTypeError{typeName: rv.Type().String()}
	}

	ss := cachedStructSpec(rv.Type())
	data = bytes.TrimSuffix(data, []byte("\n"))
	data = bytes.TrimSuffix(data, []byte("\r"))
	if n := ss.layout.Length - len(data); n > 0 {
		data = append(data[:len(data):len(data)], bytes.Repeat([]byte{defaultPadChar}, n)...)
	} else if n < 0 {
		data = data[:ss.layout.Length]
	}

	r, err := Parse(ss.layout, data)
	if err != nil {
		return err
	}

	t := rv.Type()
	for i, f := range ss.layout.Fields {
		raw, err := r.GetString(f.Name)
		if err != nil {
			return err
		}
		sf := t.Field(ss.index[i])
		if err := newValueSetter(sf.Type)(rv.Field(ss.index[i]), raw); err != nil {
			return &UnmarshalTypeError{raw, sf.Type, t.Name(), sf.Name, err}
		}
	}
	return nil
}

type valueSetter func(v reflect.Value, raw string) error

var (
	textUnmarshalerType = reflect.TypeOf(new(encoding.TextUnmarshaler)).Elem()
	unmarshalerType     = reflect.TypeOf(new(Unmarshaler)).Elem()
)

func newValueSetter(t reflect.Type) valueSetter {
	if reflect.PtrTo(t).Implements(unmarshalerType) {
		return unmarshalerSetter
	}
	if reflect.PtrTo(t).Implements(textUnmarshalerType) {
		return textUnmarshalerSetter
	}

	switch t.Kind() {
	case reflect.Ptr:
		return ptrSetter(t)
	case reflect.Interface:
		return interfaceSetter
	case reflect.String:
		return stringSetter
	case reflect.Bool:
		return boolSetter
	case reflect.Int, reflect.Int64, reflect.Int32, reflect.Int16, reflect.Int8:
		return intSetter
	case reflect.Uint, reflect.Uint64, reflect.Uint32, reflect.Uint16, reflect.Uint8:
		return uintSetter
	case reflect.Float32, reflect.Float64:
		return floatSetter
	}
	return unknownSetter
}

func unknownSetter(v reflect.Value, raw string) error {
	return errors.New("fixedrecord: unknown type")
}

func unmarshalerSetter(v reflect.Value, raw string) error {
	return v.Addr().Interface().(Unmarshaler).UnmarshalFixedWidth([]byte(raw))
}

func textUnmarshalerSetter(v reflect.Value, raw string) error {
	return v.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw))
}

func interfaceSetter(v reflect.Value, raw string) error {
	if v.IsNil() {
		if v.NumMethod() != 0 {
			return errors.New("fixedrecord: cannot unmarshal into nil non-empty interface")
		}
		v.Set(reflect.ValueOf(raw))
		return nil
	}
	return errors.New("fixedrecord: cannot unmarshal into non-nil interface")
}

func ptrSetter(t reflect.Type) valueSetter {
	return func(v reflect.Value, raw string) error {
		if len(raw) == 0 {
			v.Set(reflect.Zero(t))
			return nil
		}
		if v.IsNil() {
			v.Set(reflect.New(t.Elem()))
		}
		return newValueSetter(t.Elem())(v.Elem(), raw)
	}
}

func stringSetter(v reflect.Value, raw string) error {
	v.SetString(raw)
	return nil
}

func boolSetter(v reflect.Value, raw string) error {
	if len(raw) < 1 {
		v.SetBool(false)
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return err
	}
	v.SetBool(b)
	return nil
}

func intSetter(v reflect.Value, raw string) error {
	if len(raw) < 1 {
		v.SetInt(0)
		return nil
	}
	i, err := strconv.ParseInt(raw, 10, v.Type().Bits())
	if err != nil {
		return err
	}
	v.SetInt(i)
	return nil
}

func uintSetter(v reflect.Value, raw string) error {
	if len(raw) < 1 {
		v.SetUint(0)
		return nil
	}
	i, err := strconv.ParseUint(raw, 10, v.Type().Bits())
	if err != nil {
		return err
	}
	v.SetUint(i)
	return nil
}

func floatSetter(v reflect.Value, raw string) error {
	if len(raw) < 1 {
		v.SetFloat(0)
		return nil
	}
	f, err := strconv.ParseFloat(raw, v.Type().Bits())
	if err != nil {
		return err
	}
	v.SetFloat(f)
	return nil
}

// valueDecoder turns the trimmed text of a field into its value.
type valueDecoder func(s string) (interface{}, error)

func newValueDecoder(o Options) valueDecoder {
	var next valueDecoder = textDecoder
	if o.Type == Number {
		next = numberDecoder
	}

	switch {
	case o.Getter != nil:
		return getterDecoder(o.Getter)
	case len(o.Vals) > 0:
		return valsDecoder(reverseVals(o.Vals), next)
	}
	return next
}

func getterDecoder(fn GetterFunc) valueDecoder {
	return func(s string) (interface{}, error) {
		return fn(s)
	}
}

// valsDecoder maps encoded text back to its key. Text with no key is
// handed to next.
func valsDecoder(rev map[string]string, next valueDecoder) valueDecoder {
	return func(s string) (interface{}, error) {
		if k, ok := rev[s]; ok {
			return k, nil
		}
		return next(s)
	}
}

func textDecoder(s string) (interface{}, error) {
	return s, nil
}

func numberDecoder(s string) (interface{}, error) {
	return parseLeadingInt(s), nil
}

// parseLeadingInt parses an optional sign followed by the leading decimal
// digits of s. It returns 0 when s does not start with a number or the
// number overflows an int.
func parseLeadingInt(s string) int {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	i, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return i
}

const fieldSpace = " \t\r\n\x00"

// trimField strips whitespace from both ends of a field's raw content and
// the padding byte from the side the value was padded on: the right for
// left-aligned fields, the left for right-aligned ones.
func trimField(raw []byte, padChar byte, align alignment) string {
	padded := fieldSpace + string([]byte{padChar})
	if align == right {
		return strings.TrimRight(strings.TrimLeft(string(raw), padded), fieldSpace)
	}
	return strings.TrimLeft(strings.TrimRight(string(raw), padded), fieldSpace)
}
