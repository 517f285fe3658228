package fixedrecord

import (
	"sort"
	"strconv"
)

const defaultPadChar = ' '

// FieldType selects how a field's text is decoded by Get.
type FieldType int

const (
	// Text fields decode to their trimmed string content.
	Text FieldType = iota
	// Number fields decode to an int parsed from their trimmed content.
	// Empty or non-numeric content decodes to 0.
	Number
)

func (t FieldType) String() string {
	switch t {
	case Text:
		return "text"
	case Number:
		return "number"
	default:
		return "FieldType(" + strconv.Itoa(int(t)) + ")"
	}
}

// SetterFunc encodes a value into the text stored in a field. It replaces
// the default coercion, justification and Vals translation.
type SetterFunc func(v interface{}) (string, error)

// GetterFunc decodes the trimmed text of a field. It is usually paired
// with a SetterFunc.
type GetterFunc func(s string) (interface{}, error)

// Layout describes a fixed-width record: its total length, the padding
// byte for unset content, optional literal content seeded at offset 0 and
// the named fields.
//
// A Layout is not modified by New and may be shared by any number of
// Records.
type Layout struct {
	Length       int
	Padding      byte // defaults to ' '
	InitialValue string
	Fields       []Field
}

// Field is a named byte range [Offset, Offset+Width) of a record.
type Field struct {
	Name   string
	Offset int
	Width  int
	Options
}

// Options configure how a field is encoded and decoded.
type Options struct {
	// Required fields must be set before Output succeeds.
	Required bool

	// Default is set when the Record is constructed.
	Default interface{}

	// Justify right-aligns values within the field.
	Justify bool

	// Vals translates logical keys into their encoded text.
	Vals map[string]string

	Type   FieldType
	Setter SetterFunc
	Getter GetterFunc
}

// Field returns the field with the given name.
func (l *Layout) Field(name string) (Field, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (l *Layout) padChar() byte {
	if l.Padding == 0 {
		return defaultPadChar
	}
	return l.Padding
}

// Validate reports whether the Layout can be used to build a Record.
func (l *Layout) Validate() error {
	_, err := compileLayout(l)
	return err
}

// compiledLayout is the per-Record view of a Layout. The encode and decode
// strategy of every field is chosen once here.
type compiledLayout struct {
	length  int
	padChar byte
	initial string
	fields  []fieldState
	index   map[string]int

	// nameWidth is the length of the longest field name.
	nameWidth int
}

type fieldState struct {
	name          string
	offset, width int
	required      bool
	hasDefault    bool
	def           interface{}
	encode        valueEncoder
	align         alignment
	decode        valueDecoder
}

func compileLayout(l *Layout) (*compiledLayout, error) {
	if l == nil || l.Length <= 0 {
		return nil, &ConfigError{Reason: "length is a required field"}
	}

	cl := &compiledLayout{
		length:  l.Length,
		padChar: l.padChar(),
		initial: l.InitialValue,
		fields:  make([]fieldState, len(l.Fields)),
		index:   make(map[string]int, len(l.Fields)),
	}

	for i, f := range l.Fields {
		if f.Name == "" {
			return nil, &ConfigError{Reason: "field " + strconv.Itoa(i) + " has no name"}
		}
		if _, ok := cl.index[f.Name]; ok {
			return nil, &ConfigError{Field: f.Name, Reason: "duplicate field name"}
		}
		if f.Offset < 0 {
			return nil, &ConfigError{Field: f.Name, Reason: "offset must not be negative"}
		}
		if f.Width <= 0 {
			return nil, &ConfigError{Field: f.Name, Reason: "width must be positive"}
		}
		if f.Width > l.Length || f.Offset > l.Length-f.Width {
			return nil, &ConfigError{Field: f.Name, Reason: "length must be greater than the largest field specified"}
		}
		if len(f.Name) > cl.nameWidth {
			cl.nameWidth = len(f.Name)
		}

		cl.index[f.Name] = i
		cl.fields[i] = fieldState{
			name:       f.Name,
			offset:     f.Offset,
			width:      f.Width,
			required:   f.Required,
			hasDefault: f.Default != nil,
			def:        f.Default,
			encode:     newValueEncoder(f.Options),
			align:      alignmentOf(f.Options),
			decode:     newValueDecoder(f.Options),
		}
	}

	return cl, nil
}

func (cl *compiledLayout) lookup(name string) (*fieldState, error) {
	i, ok := cl.index[name]
	if !ok {
		return nil, &InvalidFieldError{Field: name}
	}
	return &cl.fields[i], nil
}

// reverseVals builds the encoded text to key lookup used by Get. When
// several keys share an encoded value the lexicographically smallest key
// wins.
func reverseVals(vals map[string]string) map[string]string {
	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rev := make(map[string]string, len(vals))
	for _, k := range keys {
		if _, ok := rev[vals[k]]; !ok {
			rev[vals[k]] = k
		}
	}
	return rev
}
