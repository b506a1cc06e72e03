package io

// Temporary implements a circular buffer for values in flight between
// two machines run in lock step. It operates as a FIFO queue with a
// fixed capacity and separate read/write positions.
type Temporary struct {
	Capacity int // Capacity in values.

	ReadIndex  int
	WriteIndex int
	Size       int
	Data       []int64
}

// TEMPORARY_DEFAULT_CAPACITY is used when a zero Capacity is rewound.
const TEMPORARY_DEFAULT_CAPACITY = 256

var _ Channel = (*Temporary)(nil)

// Rewind resets the temporary storage to empty, resetting indices and
// reinitializing the data buffer.
func (temp *Temporary) Rewind() {
	if temp.Capacity == 0 {
		temp.Capacity = TEMPORARY_DEFAULT_CAPACITY
	}
	temp.ReadIndex = 0
	temp.WriteIndex = 0
	temp.Size = 0
	temp.Data = make([]int64, temp.Capacity)
}

// Next returns the oldest value in the buffer.
// Returns ErrEndOfInput if the buffer is empty.
func (temp *Temporary) Next() (value int64, err error) {
	if temp.Size == 0 {
		err = ErrEndOfInput
		return
	}

	value = temp.Data[temp.ReadIndex]
	temp.ReadIndex++
	if temp.ReadIndex == temp.Capacity {
		temp.ReadIndex = 0
	}
	temp.Size--

	return
}

// Emit writes a value to the buffer at the current write position.
// Returns ErrChannelFull if the buffer has reached capacity.
func (temp *Temporary) Emit(value int64) (err error) {
	if temp.Data == nil {
		temp.Rewind()
	}

	if temp.Size >= temp.Capacity {
		err = ErrChannelFull
		return
	}

	temp.Data[temp.WriteIndex] = value

	temp.WriteIndex++
	if temp.WriteIndex == temp.Capacity {
		temp.WriteIndex = 0
	}
	temp.Size++

	return
}
