package io

// Rom is an input port over a fixed list of values.
type Rom struct {
	Data      []int64
	ReadIndex int
}

var _ Input = (*Rom)(nil)

// Rewind restarts reading from the first value.
func (rc *Rom) Rewind() {
	rc.ReadIndex = 0
}

// Next returns the next value, or ErrEndOfInput after the last.
func (rc *Rom) Next() (value int64, err error) {
	if rc.ReadIndex >= len(rc.Data) {
		err = ErrEndOfInput
		return
	}

	value = rc.Data[rc.ReadIndex]
	rc.ReadIndex++
	return
}

// Buffer is an output port collecting every emitted value.
type Buffer struct {
	Data []int64
}

var _ Output = (*Buffer)(nil)

// Emit appends value to the buffer.
func (bc *Buffer) Emit(value int64) error {
	bc.Data = append(bc.Data, value)
	return nil
}

// Reset discards all collected values.
func (bc *Buffer) Reset() {
	bc.Data = bc.Data[:0]
}
