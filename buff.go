package fixedrecord

// recordBuffer is the fixed-length byte buffer backing a Record. Every
// write is clipped to the buffer so nothing can grow it.
type recordBuffer struct {
	data    []byte
	padChar byte
}

// newRecordBuffer makes a new recordBuffer of length n filled with padChar.
func newRecordBuffer(n int, padChar byte) *recordBuffer {
	b := &recordBuffer{
		data:    make([]byte, n),
		padChar: padChar,
	}
	b.fill(0, n)
	return b
}

// fill resets the interval [start, end) to the pad character.
func (b *recordBuffer) fill(start, end int) {
	if start >= end {
		return
	}
	span := b.data[start:end]

	// Fill by doubling the already filled prefix.
	span[0] = b.padChar
	for filled := 1; filled < len(span); filled *= 2 {
		copy(span[filled:], span[:filled])
	}
}

// writeAt copies value into the buffer starting at start. Bytes past the
// end of the buffer are dropped.
func (b *recordBuffer) writeAt(start int, value string) {
	if start >= len(b.data) {
		return
	}
	copy(b.data[start:], value)
}

// span returns the interval [start, start+width) of the buffer.
func (b *recordBuffer) span(start, width int) []byte {
	return b.data[start : start+width : start+width]
}

func (b *recordBuffer) String() string {
	return string(b.data)
}

func (b *recordBuffer) Bytes() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}
