package fixedrecord

import (
	"encoding/json"
	"fmt"
	"log"
	"reflect"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func ExampleRecord() {
	r, err := New(ssnLayout())
	if err != nil {
		log.Fatal(err)
	}
	_ = r.Set("first", 111)
	_ = r.Set("second", "22")
	_ = r.Set("third", "6789")

	out, err := r.Output()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out)
	// Output:
	// 111-22-6789!
}

func ExampleRecord_Print() {
	r, err := New(ssnLayout(), WithValues(map[string]interface{}{
		"first":  "123",
		"second": "45",
		"third":  "6789",
	}))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(r.Print())
	// Output:
	// first:     123
	// second:    45
	// third:     6789
}

// dashLayout is a seven byte record with two fields.
func dashLayout() *Layout {
	return &Layout{
		Length:  7,
		Padding: '-',
		Fields: []Field{
			{Name: "zero", Offset: 0, Width: 2},
			{Name: "four", Offset: 4, Width: 2},
		},
	}
}

func mustNew(t *testing.T, l *Layout, opts ...Option) *Record {
	t.Helper()
	r, err := New(l, opts...)
	if err != nil {
		t.Fatalf("New() unexpected error %v", err)
	}
	return r
}

func mustOutput(t *testing.T, r *Record) string {
	t.Helper()
	out, err := r.Output()
	if err != nil {
		t.Fatalf("Output() unexpected error %v", err)
	}
	return out
}

func TestRecord_Padding(t *testing.T) {
	r := mustNew(t, dashLayout())
	if have, want := mustOutput(t, r), "-------"; have != want {
		t.Errorf("Output() want %q, have %q", want, have)
	}
	if err := r.Set("four", "aa"); err != nil {
		t.Fatal(err)
	}
	if have, want := mustOutput(t, r), "----aa-"; have != want {
		t.Errorf("Output() want %q, have %q", want, have)
	}
}

func TestRecord_InitialValue(t *testing.T) {
	l := dashLayout()
	l.Length = 10
	l.Padding = 'a'
	l.InitialValue = "  -  -   "

	r := mustNew(t, l)
	if have, want := mustOutput(t, r), "  -  -   a"; have != want {
		t.Errorf("Output() want %q, have %q", want, have)
	}
	if err := r.Set("zero", "bb"); err != nil {
		t.Fatal(err)
	}
	if have, want := mustOutput(t, r), "bb-  -   a"; have != want {
		t.Errorf("Output() want %q, have %q", want, have)
	}
}

func TestRecord_DefaultValue(t *testing.T) {
	l := dashLayout()
	l.Length = 10
	l.InitialValue = "ignored"
	dv := "aaaaxxaaaa"

	for _, tt := range []struct {
		name  string
		field string
		value interface{}
		want  string
	}{
		{"untouched", "", nil, "aaaaxxaaaa"},
		{"replace a section", "four", "bb", "aaaabbaaaa"},
		{"numbers", "four", 99, "aaaa99aaaa"},
		{"shorter value is padded", "four", "b", "aaaab-aaaa"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			r := mustNew(t, l, WithDefaultValue(dv))
			if tt.field != "" {
				if err := r.Set(tt.field, tt.value); err != nil {
					t.Fatal(err)
				}
			}
			if have := mustOutput(t, r); have != tt.want {
				t.Errorf("Output() want %q, have %q", tt.want, have)
			}
		})
	}
}

func TestRecord_EmptyDefaultValueKeepsInitialValue(t *testing.T) {
	r := mustNew(t, ssnLayout(), WithDefaultValue(""))
	if have, want := r.String(), "   -  -    !"; have != want {
		t.Errorf("String() want %q, have %q", want, have)
	}
}

func TestRecord_DefaultValueIsClipped(t *testing.T) {
	r := mustNew(t, dashLayout(), WithDefaultValue("0123456789"))
	if have, want := mustOutput(t, r), "0123456"; have != want {
		t.Errorf("Output() want %q, have %q", want, have)
	}
}

func TestRecord_SetErrors(t *testing.T) {
	for _, tt := range []struct {
		name   string
		field  string
		value  interface{}
		target interface{}
	}{
		{"too long", "four", "a really long string that shouldn't work", &ValueTooLongError{}},
		{"too long number", "four", 12345, &ValueTooLongError{}},
		{"unknown field", "blah", "this shouldn't work", &InvalidFieldError{}},
		{"nil value", "four", nil, &InvalidValueError{}},
		{"unsupported type", "four", []string{"a"}, &InvalidValueError{}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			r := mustNew(t, dashLayout(), WithDefaultValue("aaaaxxa"))
			err := r.Set(tt.field, tt.value)
			if err == nil {
				t.Fatal("Set() expected error")
			}
			if reflect.TypeOf(err) != reflect.TypeOf(tt.target) {
				t.Errorf("Set() error want %T, have %T (%v)", tt.target, err, err)
			}
			// A failed Set leaves the record untouched.
			if have, want := r.String(), "aaaaxxa"; have != want {
				t.Errorf("String() after failed Set() want %q, have %q", want, have)
			}
		})
	}
}

func TestRecord_ValueTooLongErrorMessage(t *testing.T) {
	r := mustNew(t, dashLayout())
	err := r.Set("four", "abc")
	want := `fixedrecord: value "abc" for field "four" contains too many characters, limit is 2`
	if err == nil || err.Error() != want {
		t.Errorf("Set() error want %q, have %v", want, err)
	}
}

func TestRecord_RepadOnSet(t *testing.T) {
	r := mustNew(t, &Layout{Length: 6, Fields: []Field{{Name: "name", Offset: 0, Width: 6}}})
	_ = r.Set("name", "abcdef")
	_ = r.Set("name", "xy")
	if have, want := r.String(), "xy    "; have != want {
		t.Errorf("String() want %q, have %q", want, have)
	}
	v, _ := r.Get("name")
	if v != "xy" {
		t.Errorf("Get() want %q, have %q", "xy", v)
	}
}

func TestRecord_Justify(t *testing.T) {
	l := &Layout{
		Length: 7,
		Fields: []Field{
			{Name: "first", Offset: 1, Width: 5, Options: Options{Justify: true}},
		},
	}

	r := mustNew(t, l)
	if err := r.Set("first", "at"); err != nil {
		t.Fatal(err)
	}
	if have, want := mustOutput(t, r), "    at "; have != want {
		t.Errorf("Output() want %q, have %q", want, have)
	}

	if err := r.Set("first", 42); err != nil {
		t.Fatal(err)
	}
	if have, want := mustOutput(t, r), "    42 "; have != want {
		t.Errorf("Output() want %q, have %q", want, have)
	}

	if err := r.Set("first", "toolong"); err == nil {
		t.Errorf("Set() expected error for value wider than the field")
	}
}

func TestRecord_ZeroFilledNumber(t *testing.T) {
	l := &Layout{
		Length:  5,
		Padding: '0',
		Fields: []Field{
			{Name: "amt", Offset: 0, Width: 5, Options: Options{Justify: true, Type: Number}},
		},
	}

	for _, tt := range []struct {
		name    string
		value   interface{}
		encoded string
		want    int
	}{
		{"trailing zeros kept", 100, "00100", 100},
		{"no padding", 12340, "12340", 12340},
		{"zero", 0, "00000", 0},
		{"string", "7", "00007", 7},
	} {
		t.Run(tt.name, func(t *testing.T) {
			r := mustNew(t, l)
			if err := r.Set("amt", tt.value); err != nil {
				t.Fatal(err)
			}
			if have := mustOutput(t, r); have != tt.encoded {
				t.Errorf("Output() want %q, have %q", tt.encoded, have)
			}
			v, err := r.Get("amt")
			if err != nil {
				t.Fatal(err)
			}
			if v != tt.want {
				t.Errorf("Get() want %d, have %#v", tt.want, v)
			}
		})
	}
}

func TestRecord_PaddingTrimmedOnPadSideOnly(t *testing.T) {
	l := &Layout{
		Length:  8,
		Padding: '*',
		Fields: []Field{
			{Name: "left", Offset: 0, Width: 4},
			{Name: "right", Offset: 4, Width: 4, Options: Options{Justify: true}},
		},
	}
	r := mustNew(t, l)
	_ = r.Set("left", "*ab")
	_ = r.Set("right", "ab*")
	if have, want := r.String(), "*ab**ab*"; have != want {
		t.Fatalf("String() want %q, have %q", want, have)
	}
	if v, _ := r.Get("left"); v != "*ab" {
		t.Errorf("Get(left) want %q, have %#v", "*ab", v)
	}
	if v, _ := r.Get("right"); v != "ab*" {
		t.Errorf("Get(right) want %q, have %#v", "ab*", v)
	}
}

func TestRecord_JustifySkipsFolding(t *testing.T) {
	l := &Layout{Length: 4, Fields: []Field{{Name: "f", Offset: 0, Width: 4, Options: Options{Justify: true}}}}
	r := mustNew(t, l)
	// "é" is two bytes wide.
	if err := r.Set("f", "é"); err != nil {
		t.Fatal(err)
	}
	if have, want := r.String(), "  é"; have != want {
		t.Errorf("String() want %q, have %q", want, have)
	}
}

func TestRecord_Diacritics(t *testing.T) {
	r := mustNew(t, &Layout{Length: 5, Fields: []Field{{Name: "name", Offset: 0, Width: 5}}})
	// Folded to ASCII the value fits, unfolded it would be 8 bytes.
	if err := r.Set("name", "Àçêña"); err != nil {
		t.Fatal(err)
	}
	if have, want := r.String(), "Acena"; have != want {
		t.Errorf("String() want %q, have %q", want, have)
	}
}

func TestRecord_Vals(t *testing.T) {
	l := &Layout{
		Length: 5,
		Fields: []Field{
			{Name: "first", Offset: 0, Width: 3, Options: Options{Vals: map[string]string{"one": "AAA", "two": "BBB"}}},
		},
	}

	for _, tt := range []struct {
		name    string
		value   interface{}
		encoded string
		decoded interface{}
	}{
		{"mapped", "one", "AAA  ", "one"},
		{"mapped case insensitive", "TWO", "BBB  ", "two"},
		{"unmapped passes through", "xyz", "xyz  ", "xyz"},
		{"unmapped number", 7, "7    ", "7"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			r := mustNew(t, l)
			if err := r.Set("first", tt.value); err != nil {
				t.Fatal(err)
			}
			if have := r.String(); have != tt.encoded {
				t.Errorf("String() want %q, have %q", tt.encoded, have)
			}
			v, err := r.Get("first")
			if err != nil {
				t.Fatal(err)
			}
			if v != tt.decoded {
				t.Errorf("Get() want %#v, have %#v", tt.decoded, v)
			}
		})
	}
}

func TestRecord_ValsMissFallsThroughToNumber(t *testing.T) {
	l := &Layout{
		Length: 3,
		Fields: []Field{
			{Name: "code", Offset: 0, Width: 3, Options: Options{Type: Number, Vals: map[string]string{"none": "000"}}},
		},
	}
	r := mustNew(t, l)

	_ = r.Set("code", "none")
	if v, _ := r.Get("code"); v != "none" {
		t.Errorf("Get() want %q, have %#v", "none", v)
	}
	_ = r.Set("code", 12)
	if v, _ := r.Get("code"); v != 12 {
		t.Errorf("Get() want 12, have %#v", v)
	}
}

func TestRecord_NumberType(t *testing.T) {
	l := &Layout{
		Length: 6,
		Fields: []Field{
			{Name: "n", Offset: 0, Width: 6, Options: Options{Type: Number}},
		},
	}

	for _, tt := range []struct {
		name  string
		value interface{}
		want  int
	}{
		{"int", 42, 42},
		{"numeric string", "0042", 42},
		{"negative", -17, -17},
		{"leading digits", "12ab", 12},
		{"not a number", "abc", 0},
		{"empty", "", 0},
		{"float", 1.5, 1},
	} {
		t.Run(tt.name, func(t *testing.T) {
			r := mustNew(t, l)
			if err := r.Set("n", tt.value); err != nil {
				t.Fatal(err)
			}
			v, err := r.Get("n")
			if err != nil {
				t.Fatal(err)
			}
			if v != tt.want {
				t.Errorf("Get() want %d, have %#v", tt.want, v)
			}
		})
	}
}

func TestRecord_SetterGetter(t *testing.T) {
	l := &Layout{
		Length: 8,
		Fields: []Field{
			{Name: "flag", Offset: 0, Width: 1, Options: Options{
				Setter: func(v interface{}) (string, error) {
					b, ok := v.(bool)
					if !ok {
						return "", errors.Errorf("not a bool: %v", v)
					}
					if b {
						return "Y", nil
					}
					return "N", nil
				},
				Getter: func(s string) (interface{}, error) {
					return s == "Y", nil
				},
			}},
			{Name: "date", Offset: 1, Width: 7, Options: Options{
				Justify: true,
				Setter: func(v interface{}) (string, error) {
					return strings.ReplaceAll(fmt.Sprint(v), "-", ""), nil
				},
			}},
		},
	}

	r := mustNew(t, l)
	if err := r.Set("flag", true); err != nil {
		t.Fatal(err)
	}
	if v, _ := r.Get("flag"); v != true {
		t.Errorf("Get(flag) want true, have %#v", v)
	}
	// A Setter takes precedence over Justify.
	if err := r.Set("date", "20-01-2"); err != nil {
		t.Fatal(err)
	}
	if have, want := r.String(), "Y20012  "; have != want {
		t.Errorf("String() want %q, have %q", want, have)
	}

	err := r.Set("flag", "yes")
	if err == nil {
		t.Fatal("Set() expected setter error")
	}
	if !strings.Contains(err.Error(), "not a bool") {
		t.Errorf("Set() error should carry the setter error, have %v", err)
	}
	if have, want := r.String(), "Y20012  "; have != want {
		t.Errorf("String() after failed Set() want %q, have %q", want, have)
	}
}

func TestRecord_GetterError(t *testing.T) {
	boom := errors.New("boom")
	l := &Layout{
		Length: 2,
		Fields: []Field{
			{Name: "f", Offset: 0, Width: 2, Options: Options{
				Getter: func(string) (interface{}, error) { return nil, boom },
			}},
		},
	}
	r := mustNew(t, l, WithDefaultValue("ab"))
	if _, err := r.Get("f"); errors.Cause(err) != boom {
		t.Errorf("Get() error cause want %v, have %v", boom, err)
	}
	if have := r.ToMap()["f"]; have != "ab" {
		t.Errorf("ToMap() want raw text for failed getter, have %#v", have)
	}
}

func TestRecord_Required(t *testing.T) {
	r := mustNew(t, ssnLayout())

	_, err := r.Output()
	if e, ok := err.(*RequiredFieldError); !ok || e.Field != "first" {
		t.Fatalf("Output() want RequiredFieldError for first, have %v", err)
	}

	_ = r.Set("first", 111)
	_ = r.Set("third", "6789")
	_, err = r.Bytes()
	if e, ok := err.(*RequiredFieldError); !ok || e.Field != "second" {
		t.Fatalf("Bytes() want RequiredFieldError for second, have %v", err)
	}

	_ = r.Set("second", 22)
	out, err := r.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if have, want := string(out), "111-22-6789!"; have != want {
		t.Errorf("Bytes() want %q, have %q", want, have)
	}
}

func TestRecord_RequiredSatisfiedByDefault(t *testing.T) {
	l := &Layout{
		Length: 4,
		Fields: []Field{
			{Name: "kind", Offset: 0, Width: 2, Options: Options{Required: true, Default: "AB"}},
			{Name: "seq", Offset: 2, Width: 2, Options: Options{Required: true, Default: 7, Justify: true}},
		},
	}
	r := mustNew(t, l)
	if have, want := mustOutput(t, r), "AB 7"; have != want {
		t.Errorf("Output() want %q, have %q", want, have)
	}
}

func TestNew_InvalidDefault(t *testing.T) {
	l := &Layout{
		Length: 2,
		Fields: []Field{{Name: "f", Offset: 0, Width: 2, Options: Options{Default: "toolong"}}},
	}
	_, err := New(l)
	if _, ok := errors.Cause(err).(*ValueTooLongError); !ok {
		t.Errorf("New() want ValueTooLongError cause, have %v", err)
	}
}

func TestNew_Values(t *testing.T) {
	r := mustNew(t, ssnLayout(), WithValues(map[string]interface{}{
		"first":  111,
		"second": "22",
		"third":  6789,
	}))
	if have, want := mustOutput(t, r), "111-22-6789!"; have != want {
		t.Errorf("Output() want %q, have %q", want, have)
	}

	_, err := New(ssnLayout(), WithValues(map[string]interface{}{"first": 1, "zzz": 2, "aaa": 3}))
	if e, ok := err.(*InvalidFieldError); !ok || e.Field != "aaa" {
		t.Errorf("New() want InvalidFieldError for aaa, have %v", err)
	}
}

func TestRecord_SafeSet(t *testing.T) {
	l := &Layout{
		Length: 8,
		Fields: []Field{
			{Name: "left", Offset: 0, Width: 4},
			{Name: "right", Offset: 4, Width: 4, Options: Options{Justify: true}},
		},
	}

	logger := &recordingLogger{}
	r := mustNew(t, l, WithLogger(logger))
	if err := r.SafeSet("left", "abcdefg"); err != nil {
		t.Fatal(err)
	}
	if err := r.SafeSet("right", 1234567); err != nil {
		t.Fatal(err)
	}
	if have, want := mustOutput(t, r), "abcd4567"; have != want {
		t.Errorf("Output() want %q, have %q", want, have)
	}
	if len(logger.warnings) != 2 {
		t.Errorf("SafeSet() want 2 truncation warnings, have %d", len(logger.warnings))
	}

	if err := r.SafeSet("missing", "x"); err == nil {
		t.Errorf("SafeSet() expected error for unknown field")
	}
}

func TestRecord_GetUnknownField(t *testing.T) {
	r := mustNew(t, dashLayout())
	if _, err := r.Get("blah"); err == nil {
		t.Errorf("Get() expected error")
	} else if _, ok := err.(*InvalidFieldError); !ok {
		t.Errorf("Get() want InvalidFieldError, have %T", err)
	}
	if _, err := r.GetString("blah"); err == nil {
		t.Errorf("GetString() expected error")
	}
}

func TestRecord_Get(t *testing.T) {
	r := mustNew(t, dashLayout(), WithDefaultValue("aaaaxxa"))
	if v, _ := r.Get("four"); v != "xx" {
		t.Errorf("Get() want %q, have %#v", "xx", v)
	}
	_ = r.Set("four", "bb")
	if v, _ := r.Get("four"); v != "bb" {
		t.Errorf("Get() want %q, have %#v", "bb", v)
	}
	// The padding byte is trimmed from decoded values.
	_ = r.Set("zero", "c")
	if v, _ := r.Get("zero"); v != "c" {
		t.Errorf("Get() want %q, have %#v", "c", v)
	}
}

func TestRecord_ToMapAndJSON(t *testing.T) {
	l := ssnLayout()
	l.Fields[0].Type = Number
	r := mustNew(t, l, WithValues(map[string]interface{}{"first": 111, "second": "22"}))

	want := map[string]interface{}{"first": 111, "second": "22", "third": ""}
	if have := r.ToMap(); !reflect.DeepEqual(have, want) {
		t.Errorf("ToMap() want %v, have %v", want, have)
	}

	b, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	if have, want := string(b), `{"first":111,"second":"22","third":""}`; have != want {
		t.Errorf("json.Marshal() want %s, have %s", want, have)
	}
}

func TestRecord_Length(t *testing.T) {
	r := mustNew(t, ssnLayout())
	if r.Length() != 12 {
		t.Errorf("Length() want 12, have %d", r.Length())
	}
	if len(r.String()) != r.Length() {
		t.Errorf("String() length want %d, have %d", r.Length(), len(r.String()))
	}
}

func TestParse(t *testing.T) {
	r, err := Parse(ssnLayout(), []byte("111-22-6789!"))
	if err != nil {
		t.Fatal(err)
	}
	if have, want := mustOutput(t, r), "111-22-6789!"; have != want {
		t.Errorf("Output() want %q, have %q", want, have)
	}
	if v, _ := r.Get("third"); v != "6789" {
		t.Errorf("Get() want %q, have %#v", "6789", v)
	}

	_, err = Parse(ssnLayout(), []byte("111-22"))
	if e, ok := err.(*LengthError); !ok || e.Want != 12 || e.Have != 6 {
		t.Errorf("Parse() want LengthError, have %v", err)
	}

	if _, err := Parse(&Layout{}, nil); err == nil {
		t.Errorf("Parse() expected error for invalid layout")
	}
}

func TestRecord_Coercion(t *testing.T) {
	l := &Layout{Length: 10, Fields: []Field{{Name: "f", Offset: 0, Width: 10}}}

	for _, tt := range []struct {
		name  string
		value interface{}
		want  string
	}{
		{"string", "foo", "foo"},
		{"*string", stringp("foo"), "foo"},
		{"*string nil", nilString, ""},
		{"bool", true, "true"},
		{"int", int(123), "123"},
		{"*int", intp(123), "123"},
		{"*int nil", nilInt, ""},
		{"int64", int64p(-9), "-9"},
		{"uint8", uint8(255), "255"},
		{"float64", float64(12.25), "12.25"},
		{"*float64", float64p(0.5), "0.5"},
		{"*float64 nil", nilFloat64, ""},
		{"float32", float32(1.5), "1.5"},
		{"TextMarshaler", EncodableString{"fóo", nil}, "foo"},
		{"Marshaler", Float(2), "2.00000000"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			r := mustNew(t, l)
			if err := r.Set("f", tt.value); err != nil {
				t.Fatalf("Set() unexpected error %v", err)
			}
			if have, _ := r.GetString("f"); have != tt.want {
				t.Errorf("GetString() want %q, have %q", tt.want, have)
			}
		})
	}

	r := mustNew(t, l)
	err := r.Set("f", EncodableString{"foo", errors.New("TextMarshaler error")})
	if err == nil || !strings.Contains(err.Error(), "TextMarshaler error") {
		t.Errorf("Set() want wrapped TextMarshaler error, have %v", err)
	}
}

type recordingLogger struct {
	NopLogger
	warnings []string
}

func (l *recordingLogger) Warn(msg string, _ Fields) {
	l.warnings = append(l.warnings, msg)
}

func TestRecord_DefaultLogger(t *testing.T) {
	r := mustNew(t, ssnLayout())
	if _, ok := r.logger.(NopLogger); !ok {
		t.Fatalf("logger want NopLogger, have %T", r.logger)
	}
	if err := r.SafeSet("first", "12345"); err != nil {
		t.Fatal(err)
	}
	if have, want := r.String(), "123-  -    !"; have != want {
		t.Errorf("String() want %q, have %q", want, have)
	}
}
