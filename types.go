package fixedrecord

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// Float is a float64 that uses all of the available field width for
// precision when it is written to a record.
type Float float64

// MarshalFixedWidth implements Marshaler.
func (f Float) MarshalFixedWidth(width int) (data []byte, err error) {
	var l, p int

	if f > 0 {
		l = int(math.Log10(float64(f))) + 2
	} else if f < 0 {
		l = int(math.Log10(math.Abs(float64(f)))) + 3
	} else {
		l = 2
	}

	if l-1 > width {
		return nil, errors.Errorf("fixedrecord: formatted float %v with 0 precision is longer than field width %d", float64(f), width)
	}

	p = width - l
	if p < 0 {
		p = 0
	}

	s := strconv.FormatFloat(float64(f), 'f', p, 64)
	return []byte(s), nil
}

// UnmarshalFixedWidth implements Unmarshaler.
func (f *Float) UnmarshalFixedWidth(data []byte) error {
	if len(data) == 0 {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return errors.Wrapf(err, "fixedrecord: parse float %q", data)
	}
	*f = Float(v)
	return nil
}
