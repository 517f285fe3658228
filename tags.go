package fixedrecord

import (
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// parseTag splits a struct field's fixed tag into its start and end
// positions and options. Positions start at 1 and the interval is
// inclusive. If the tag is not valid, ok will be false.
func parseTag(tag string) (startPos, endPos int, opts Options, ok bool) {
	parts := strings.Split(tag, ",")
	if len(parts) < 2 {
		return startPos, endPos, opts, false
	}

	var err error
	if startPos, err = strconv.Atoi(parts[0]); err != nil {
		return startPos, endPos, opts, false
	}
	if endPos, err = strconv.Atoi(parts[1]); err != nil {
		return startPos, endPos, opts, false
	}
	if startPos < 1 || startPos > endPos {
		return startPos, endPos, opts, false
	}

	for _, flag := range parts[2:] {
		switch flag {
		case "required":
			opts.Required = true
		case "justify":
			opts.Justify = true
		case "number":
			opts.Type = Number
		default:
			return startPos, endPos, opts, false
		}
	}

	return startPos, endPos, opts, true
}

type structSpec struct {
	layout *Layout
	// index[i] is the struct field index of layout.Fields[i].
	index []int
}

func buildStructSpec(t reflect.Type) structSpec {
	ss := structSpec{
		layout: &Layout{},
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		startPos, endPos, opts, ok := parseTag(f.Tag.Get("fixed"))
		if !ok {
			continue
		}
		if endPos > ss.layout.Length {
			ss.layout.Length = endPos
		}
		ss.layout.Fields = append(ss.layout.Fields, Field{
			Name:    f.Name,
			Offset:  startPos - 1,
			Width:   endPos - startPos + 1,
			Options: opts,
		})
		ss.index = append(ss.index, i)
	}
	return ss
}

var structSpecCache sync.Map // map[reflect.Type]structSpec

// cachedStructSpec is like buildStructSpec but cached to prevent duplicate work.
func cachedStructSpec(t reflect.Type) structSpec {
	if f, ok := structSpecCache.Load(t); ok {
		return f.(structSpec)
	}
	f, _ := structSpecCache.LoadOrStore(t, buildStructSpec(t))
	return f.(structSpec)
}

// LayoutOf returns the Layout described by the fixed tags of v's struct
// type. The tags should be formatted as
// `fixed:"{startPos},{endPos}[,required][,justify][,number]"`. Positions
// start at 1 and the interval is inclusive. The record length is the
// largest end position. Fields without a valid tag are ignored.
func LayoutOf(v interface{}) (*Layout, error) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, &MarshalInvalidTypeError{typeName: typeName(t)}
	}

	l := *cachedStructSpec(t).layout
	l.Fields = append([]Field(nil), l.Fields...)
	return &l, nil
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}
