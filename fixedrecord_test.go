package fixedrecord

var (
	nilFloat64 *float64
	nilInt     *int
	nilString  *string
)

func float64p(v float64) *float64 { return &v }
func intp(v int) *int             { return &v }
func int64p(v int64) *int64       { return &v }
func stringp(v string) *string    { return &v }

// EncodableString is a string that implements the encoding TextUnmarshaler and TextMarshaler interface.
// This is useful for testing.
type EncodableString struct {
	S   string
	Err error
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *EncodableString) UnmarshalText(text []byte) error {
	s.S = string(text)
	return s.Err
}

// MarshalText implements encoding.TextUnmarshaler.
func (s EncodableString) MarshalText() ([]byte, error) {
	return []byte(s.S), s.Err
}

// ssnLayout returns the layout of a social security number with dashes
// seeded through the initial value.
func ssnLayout() *Layout {
	return &Layout{
		Length:       12,
		Padding:      '!',
		InitialValue: "   -  -    ",
		Fields: []Field{
			{Name: "first", Offset: 0, Width: 3, Options: Options{Required: true}},
			{Name: "second", Offset: 4, Width: 2, Options: Options{Required: true}},
			{Name: "third", Offset: 7, Width: 4, Options: Options{Required: true}},
		},
	}
}
