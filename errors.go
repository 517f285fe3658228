package fixedrecord

import (
	"reflect"
	"strconv"
)

// ConfigError describes a Layout that cannot be turned into a Record.
type ConfigError struct {
	Field  string // the offending field, if any
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return "fixedrecord: invalid layout: field " + strconv.Quote(e.Field) + ": " + e.Reason
	}
	return "fixedrecord: invalid layout: " + e.Reason
}

// InvalidFieldError describes a field name that is not part of the Layout.
type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	return "fixedrecord: invalid field " + strconv.Quote(e.Field)
}

// ValueTooLongError describes an encoded value that does not fit in its field.
type ValueTooLongError struct {
	Field string
	Value string // the encoded value
	Width int
}

func (e *ValueTooLongError) Error() string {
	return "fixedrecord: value " + strconv.Quote(e.Value) + " for field " + strconv.Quote(e.Field) +
		" contains too many characters, limit is " + strconv.Itoa(e.Width)
}

// RequiredFieldError is returned by Output when a required field was never set.
type RequiredFieldError struct {
	Field string
}

func (e *RequiredFieldError) Error() string {
	return "fixedrecord: field " + strconv.Quote(e.Field) + " is required"
}

// InvalidValueError describes a value of a type that cannot be written to a field.
type InvalidValueError struct {
	Field string
	Type  reflect.Type
}

func (e *InvalidValueError) Error() string {
	if e.Type == nil {
		return "fixedrecord: cannot set field " + strconv.Quote(e.Field) + " to nil"
	}
	return "fixedrecord: cannot set field " + strconv.Quote(e.Field) + " to value of type " + e.Type.String()
}

// LengthError describes raw record data whose length does not match the Layout.
type LengthError struct {
	Want, Have int
}

func (e *LengthError) Error() string {
	return "fixedrecord: record length " + strconv.Itoa(e.Have) + " does not match layout length " + strconv.Itoa(e.Want)
}

// An InvalidUnmarshalError describes an invalid argument passed to Unmarshal.
// (The argument to Unmarshal must be a non-nil pointer to a struct.)
type InvalidUnmarshalError struct {
	Type reflect.Type
}

func (e *InvalidUnmarshalError) Error() string {
	if e.Type == nil {
		return "fixedrecord: Unmarshal(nil)"
	}

	if e.Type.Kind() != reflect.Ptr {
		return "fixedrecord: Unmarshal(non-pointer " + e.Type.String() + ")"
	}
	return "fixedrecord: Unmarshal(nil " + e.Type.String() + ")"
}

// An UnmarshalTypeError describes a value that was
// not appropriate for a value of a specific Go type.
type UnmarshalTypeError struct {
	Value  string       // the raw value
	Type   reflect.Type // type of Go value it could not be assigned to
	Struct string       // name of the struct type containing the field
	Field  string       // name of the field holding the Go value
	Cause  error        // original error
}

func (e *UnmarshalTypeError) Error() string {
	s := "fixedrecord: cannot unmarshal " + e.Value + " into Go struct field " + e.Struct + "." + e.Field + " of type " + e.Type.String()
	if e.Cause != nil {
		return s + ": " + e.Cause.Error()
	}
	return s
}

func (e *UnmarshalTypeError) Unwrap() error { return e.Cause }
