package io

// Queue is a port backed by a Go channel, so the output of one machine
// can feed the input of another running in its own goroutine.
type Queue struct {
	C chan int64
}

var _ Channel = (*Queue)(nil)

// NewQueue creates a queue with the given channel buffer depth.
func NewQueue(depth int) *Queue {
	return &Queue{C: make(chan int64, depth)}
}

// Next blocks until a value is available. A closed channel is the end
// of input.
func (qc *Queue) Next() (value int64, err error) {
	value, ok := <-qc.C
	if !ok {
		err = ErrEndOfInput
	}
	return
}

// Emit blocks until the value is accepted by the channel.
func (qc *Queue) Emit(value int64) error {
	qc.C <- value
	return nil
}

// Close ends the input of the reader side.
func (qc *Queue) Close() {
	close(qc.C)
}
