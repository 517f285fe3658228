package fixedrecord

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// A Record is one fixed-width record built from a Layout. It owns its
// buffer and is not safe for concurrent use.
type Record struct {
	layout *compiledLayout
	buf    *recordBuffer
	// pending[i] is true while the required field i has not been set.
	pending []bool
	logger  Logger
}

// Option configures a Record at construction.
type Option func(*recordOptions)

type recordOptions struct {
	defaultValue string
	values       map[string]interface{}
	logger       Logger
}

// WithDefaultValue seeds the record with s at offset 0 instead of the
// Layout's InitialValue. An empty s leaves the InitialValue in effect.
func WithDefaultValue(s string) Option {
	return func(o *recordOptions) { o.defaultValue = s }
}

// WithValues sets each value on the new record. Values are applied in
// Layout field order; names that are not in the Layout fail construction
// with an InvalidFieldError.
func WithValues(values map[string]interface{}) Option {
	return func(o *recordOptions) { o.values = values }
}

// WithLogger makes the record report truncations and similar events.
func WithLogger(l Logger) Option {
	return func(o *recordOptions) { o.logger = l }
}

// New returns a Record for l. Fields with a Default are set first, then
// the default value (or the Layout's InitialValue) is written at offset 0
// and finally any WithValues values are set.
func New(l *Layout, opts ...Option) (*Record, error) {
	var o recordOptions
	for _, opt := range opts {
		opt(&o)
	}

	cl, err := compileLayout(l)
	if err != nil {
		return nil, err
	}
	r := newRecord(cl, o.logger)

	for i := range cl.fields {
		f := &cl.fields[i]
		r.pending[i] = f.required
		if f.hasDefault {
			if err := r.Set(f.name, f.def); err != nil {
				return nil, errors.Wrapf(err, "fixedrecord: default for field %q", f.name)
			}
		}
	}

	if o.defaultValue != "" {
		r.buf.writeAt(0, o.defaultValue)
	} else if cl.initial != "" {
		r.buf.writeAt(0, cl.initial)
	}

	if err := r.setValues(o.values); err != nil {
		return nil, err
	}
	return r, nil
}

// Parse wraps existing record data. data must be exactly as long as the
// Layout. Every field of the returned Record counts as set. Of the
// options only WithLogger has an effect.
func Parse(l *Layout, data []byte, opts ...Option) (*Record, error) {
	var o recordOptions
	for _, opt := range opts {
		opt(&o)
	}

	cl, err := compileLayout(l)
	if err != nil {
		return nil, err
	}
	if len(data) != cl.length {
		return nil, &LengthError{Want: cl.length, Have: len(data)}
	}

	r := newRecord(cl, o.logger)
	copy(r.buf.data, data)
	return r, nil
}

func newRecord(cl *compiledLayout, logger Logger) *Record {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Record{
		layout:  cl,
		buf:     newRecordBuffer(cl.length, cl.padChar),
		pending: make([]bool, len(cl.fields)),
		logger:  logger,
	}
}

func (r *Record) setValues(values map[string]interface{}) error {
	if len(values) == 0 {
		return nil
	}

	var unknown []string
	for name := range values {
		if _, ok := r.layout.index[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return &InvalidFieldError{Field: unknown[0]}
	}

	for _, f := range r.layout.fields {
		v, ok := values[f.name]
		if !ok {
			continue
		}
		if err := r.Set(f.name, v); err != nil {
			return err
		}
	}
	return nil
}

// Length returns the total length of the record.
func (r *Record) Length() int {
	return r.layout.length
}

// Set encodes v into the named field.
//
// Numbers are written in decimal. Other values have their accented
// letters folded (see Fold) and are translated through the field's Vals.
// Right-justified fields and fields with a Setter skip that step. Set
// returns a ValueTooLongError and leaves the record untouched if the
// encoded value does not fit in the field.
func (r *Record) Set(name string, v interface{}) error {
	return r.set(name, v, false)
}

// SafeSet is like Set but truncates values that are too long instead of
// failing. Left-justified values lose their right end and right-justified
// values lose their left end.
func (r *Record) SafeSet(name string, v interface{}) error {
	return r.set(name, v, true)
}

func (r *Record) set(name string, v interface{}, truncate bool) error {
	f, err := r.layout.lookup(name)
	if err != nil {
		return err
	}

	s, err := f.encode(v, f.width)
	if err != nil {
		if e, ok := err.(*InvalidValueError); ok {
			e.Field = name
			return e
		}
		return errors.Wrapf(err, "fixedrecord: encode field %q", name)
	}

	if len(s) > f.width {
		if !truncate {
			return &ValueTooLongError{Field: name, Value: s, Width: f.width}
		}
		r.logger.Warn("fixedrecord: value truncated", Fields{
			"field": name,
			"value": s,
			"width": f.width,
		})
	}

	r.buf.fill(f.offset, f.offset+f.width)
	if err := f.align.writer()([]byte(s), r.buf.span(f.offset, f.width)); err != nil {
		return errors.Wrapf(err, "fixedrecord: write field %q", name)
	}
	r.pending[r.layout.index[name]] = false
	return nil
}

// Get decodes the named field.
//
// The field's content is trimmed of whitespace and padding and passed to
// its Getter if it has one. Otherwise content matching one of the field's
// Vals decodes to that key, Number fields decode to an int and anything
// else decodes to the trimmed string.
func (r *Record) Get(name string) (interface{}, error) {
	f, err := r.layout.lookup(name)
	if err != nil {
		return nil, err
	}

	v, err := f.decode(r.raw(f))
	if err != nil {
		return nil, errors.Wrapf(err, "fixedrecord: decode field %q", name)
	}
	return v, nil
}

// GetString returns the trimmed content of the named field without
// decoding it.
func (r *Record) GetString(name string) (string, error) {
	f, err := r.layout.lookup(name)
	if err != nil {
		return "", err
	}
	return r.raw(f), nil
}

func (r *Record) raw(f *fieldState) string {
	return trimField(r.buf.span(f.offset, f.width), r.layout.padChar, f.align)
}

// Output returns the record. It fails with a RequiredFieldError naming the
// first required field, in Layout order, that was never set.
func (r *Record) Output() (string, error) {
	if err := r.checkRequired(); err != nil {
		return "", err
	}
	return r.buf.String(), nil
}

// Bytes is like Output but returns a copy of the record as a byte slice.
func (r *Record) Bytes() ([]byte, error) {
	if err := r.checkRequired(); err != nil {
		return nil, err
	}
	return r.buf.Bytes(), nil
}

func (r *Record) checkRequired() error {
	for i, p := range r.pending {
		if p {
			return &RequiredFieldError{Field: r.layout.fields[i].name}
		}
	}
	return nil
}

// ToMap returns the decoded value of every field. Fields whose Getter
// fails are reported as their trimmed text.
func (r *Record) ToMap() map[string]interface{} {
	m := make(map[string]interface{}, len(r.layout.fields))
	for i := range r.layout.fields {
		f := &r.layout.fields[i]
		v, err := f.decode(r.raw(f))
		if err != nil {
			r.logger.Debug("fixedrecord: decode failed", Fields{"field": f.name, "error": err.Error()})
			v = r.raw(f)
		}
		m[f.name] = v
	}
	return m
}

// MarshalJSON implements json.Marshaler using the values from ToMap.
func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ToMap())
}

// Print returns one "name: value" line per field in Layout order with the
// values aligned in a column.
func (r *Record) Print() string {
	m := r.ToMap()
	pad := r.layout.nameWidth + 4

	var sb strings.Builder
	for _, f := range r.layout.fields {
		sb.WriteString(f.name)
		sb.WriteByte(':')
		sb.WriteString(strings.Repeat(" ", pad-len(f.name)))
		sb.WriteString(fmt.Sprint(m[f.name]))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// String returns the raw record content, whether or not all required
// fields are set.
func (r *Record) String() string {
	return r.buf.String()
}
