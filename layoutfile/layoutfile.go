// Package layoutfile loads record layouts from YAML.
//
// A layout file names the record length, the padding character, an
// optional initial value and the fields in record order. A field is
// either a compact [offset, width] or [offset, width, required]
// sequence or a mapping of options:
//
//	length: 12
//	padding: "!"
//	initialValue: "   -  -    "
//	fields:
//	  first: [0, 3, true]
//	  second: {offset: 4, width: 2, required: true}
//	  third:
//	    offset: 7
//	    width: 4
//	    type: number
//	    justify: true
//
// The key "layout" is accepted in place of "fields".
package layoutfile

import (
	"os"

	"github.com/ianlopshire/go-fixedrecord"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type layoutFile struct {
	Length       int       `yaml:"length"`
	Padding      string    `yaml:"padding"`
	InitialValue string    `yaml:"initialValue"`
	Fields       yaml.Node `yaml:"fields"`
	Layout       yaml.Node `yaml:"layout"`
}

type fieldFile struct {
	Offset   int               `yaml:"offset"`
	Width    int               `yaml:"width"`
	Required bool              `yaml:"required"`
	Default  interface{}       `yaml:"default"`
	Justify  bool              `yaml:"justify"`
	Vals     map[string]string `yaml:"vals"`
	Type     string            `yaml:"type"`
}

// Load reads and parses the layout file at path.
func Load(path string) (*fixedrecord.Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "layoutfile: read")
	}
	l, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "layoutfile: %s", path)
	}
	return l, nil
}

// Parse parses a YAML layout. The returned layout is valid.
func Parse(data []byte) (*fixedrecord.Layout, error) {
	var lf layoutFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, errors.Wrap(err, "layoutfile: parse")
	}

	l := &fixedrecord.Layout{
		Length:       lf.Length,
		InitialValue: lf.InitialValue,
	}
	switch len(lf.Padding) {
	case 0:
	case 1:
		l.Padding = lf.Padding[0]
	default:
		return nil, errors.Errorf("layoutfile: padding %q must be a single byte", lf.Padding)
	}

	fields := &lf.Fields
	if fields.Kind == 0 {
		fields = &lf.Layout
	}
	var err error
	if l.Fields, err = parseFields(fields); err != nil {
		return nil, err
	}

	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func parseFields(n *yaml.Node) ([]fixedrecord.Field, error) {
	switch {
	case n.Kind == 0, n.Kind == yaml.ScalarNode && n.Tag == "!!null":
		return nil, nil
	case n.Kind == yaml.MappingNode:
	default:
		return nil, errors.Errorf("layoutfile: line %d: fields must be a mapping", n.Line)
	}

	fields := make([]fixedrecord.Field, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		name, value := n.Content[i].Value, n.Content[i+1]
		f, err := parseField(value)
		if err != nil {
			return nil, errors.Wrapf(err, "layoutfile: field %q", name)
		}
		f.Name = name
		fields = append(fields, f)
	}
	return fields, nil
}

func parseField(n *yaml.Node) (fixedrecord.Field, error) {
	var f fixedrecord.Field

	switch n.Kind {
	case yaml.SequenceNode:
		if len(n.Content) < 2 || len(n.Content) > 3 {
			return f, errors.Errorf("line %d: expected [offset, width] or [offset, width, required]", n.Line)
		}
		if err := n.Content[0].Decode(&f.Offset); err != nil {
			return f, errors.Wrap(err, "offset")
		}
		if err := n.Content[1].Decode(&f.Width); err != nil {
			return f, errors.Wrap(err, "width")
		}
		if len(n.Content) == 3 {
			if err := n.Content[2].Decode(&f.Required); err != nil {
				return f, errors.Wrap(err, "required")
			}
		}
		return f, nil

	case yaml.MappingNode:
		var ff fieldFile
		if err := n.Decode(&ff); err != nil {
			return f, err
		}
		f.Offset, f.Width = ff.Offset, ff.Width
		f.Required = ff.Required
		f.Default = ff.Default
		f.Justify = ff.Justify
		f.Vals = ff.Vals
		switch ff.Type {
		case "", "text":
			f.Type = fixedrecord.Text
		case "number":
			f.Type = fixedrecord.Number
		default:
			return f, errors.Errorf("line %d: unknown type %q", n.Line, ff.Type)
		}
		return f, nil
	}
	return f, errors.Errorf("line %d: expected a sequence or a mapping", n.Line)
}
