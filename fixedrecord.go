// Package fixedrecord encodes and decodes fixed-width positional records.
//
// A record is a single buffer of known length. Named fields each own a fixed
// byte range of that buffer and are written and read through a Record built
// from a Layout:
//
//	l := &fixedrecord.Layout{
//		Length:       12,
//		Padding:      '!',
//		InitialValue: "   -  -    ",
//		Fields: []fixedrecord.Field{
//			{Name: "first", Offset: 0, Width: 3, Options: fixedrecord.Options{Required: true}},
//			{Name: "second", Offset: 4, Width: 2, Options: fixedrecord.Options{Required: true}},
//			{Name: "third", Offset: 7, Width: 4, Options: fixedrecord.Options{Required: true}},
//		},
//	}
//	r, _ := fixedrecord.New(l)
//	r.Set("first", 111)
//	r.Set("second", "22")
//	r.Set("third", "6789")
//	out, _ := r.Output() // "111-22-6789!"
package fixedrecord

// Marshaler is the interface implemented by an object that can
// marshal itself into a fixed-width form.
//
// MarshalFixedWidth is provided the width of the field it is being
// written to and should return the encoded value of the receiver.
// An encoded value longer than the width is rejected by Set and
// truncated by SafeSet.
type Marshaler interface {
	MarshalFixedWidth(width int) (data []byte, err error)
}

// Unmarshaler is the interface implemented by an object that can
// unmarshal a fixed-width representation of itself.
//
// The data passed to UnmarshalFixedWidth by Unmarshal is the trimmed
// content of the field.
type Unmarshaler interface {
	UnmarshalFixedWidth(data []byte) error
}
