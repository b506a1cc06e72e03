package cpu

import (
	"fmt"
	"strings"
)

// Memory is the Intcode tape.
type Memory struct {
	cells []int64
}

// NewMemory takes ownership of the tape; it is not copied.
func NewMemory(tape []int64) *Memory {
	return &Memory{cells: tape}
}

// Length returns the number of cells on the tape.
func (mem *Memory) Length() int {
	return len(mem.cells)
}

// Tape returns the live tape cells.
func (mem *Memory) Tape() []int64 {
	return mem.cells
}

func (mem *Memory) check(index int) (err error) {
	if index < 0 || index >= len(mem.cells) {
		err = ErrAddress(index)
	}
	return
}

// Read the cell at index. For MODE_IMMEDIATE the cell itself is the value,
// any other mode is treated as MODE_POSITION and dereferences it once.
func (mem *Memory) Read(index int, mode Mode) (value int64, err error) {
	err = mem.check(index)
	if err != nil {
		return
	}

	value = mem.cells[index]
	if mode == MODE_IMMEDIATE {
		return
	}

	addr, err := mem.address(value)
	if err != nil {
		value = 0
		return
	}

	value = mem.cells[addr]
	return
}

// Write value to the cell at index.
func (mem *Memory) Write(index int, value int64) (err error) {
	err = mem.check(index)
	if err != nil {
		return
	}

	mem.cells[index] = value
	return
}

// address converts a cell value to a checked tape index.
func (mem *Memory) address(value int64) (addr int, err error) {
	if value < 0 || value >= int64(len(mem.cells)) {
		err = ErrAddress(value)
		return
	}

	addr = int(value)
	return
}

// String returns the tape as comma separated values.
func (mem *Memory) String() string {
	words := make([]string, len(mem.cells))
	for n, cell := range mem.cells {
		words[n] = fmt.Sprint(cell)
	}
	return strings.Join(words, ",")
}
