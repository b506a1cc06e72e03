package cpu

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -linecomment -type=Operation

// Operation is an Intcode operation, selected by the two least significant
// decimal digits of an instruction.
type Operation int

const (
	OP_ADD           = Operation(1)  // add
	OP_MULTIPLY      = Operation(2)  // mul
	OP_INPUT         = Operation(3)  // in
	OP_OUTPUT        = Operation(4)  // out
	OP_JUMP_IF_TRUE  = Operation(5)  // jt
	OP_JUMP_IF_FALSE = Operation(6)  // jf
	OP_LESS_THAN     = Operation(7)  // lt
	OP_EQUALS        = Operation(8)  // eq
	OP_HALT          = Operation(99) // halt
)

// Parameter count of each operation.
var operations = map[Operation]int{
	OP_ADD:           3,
	OP_MULTIPLY:      3,
	OP_INPUT:         1,
	OP_OUTPUT:        1,
	OP_JUMP_IF_TRUE:  2,
	OP_JUMP_IF_FALSE: 2,
	OP_LESS_THAN:     3,
	OP_EQUALS:        3,
	OP_HALT:          0,
}

// Valid returns true if the operation is a known Intcode operation.
func (op Operation) Valid() (ok bool) {
	_, ok = operations[op]
	return
}

// Arity returns the number of parameters consumed by the operation.
func (op Operation) Arity() int {
	return operations[op]
}

//go:generate go tool stringer -linecomment -type=Mode

// Mode is a parameter addressing mode.
type Mode int

const (
	MODE_POSITION  = Mode(0) // p
	MODE_IMMEDIATE = Mode(1) // i
)

// Instruction is a decoded view of a single tape cell.
type Instruction struct {
	Raw   int64     // Undecoded cell value.
	Op    Operation // Operation selected by the low two digits.
	Modes []Mode    // Explicit modes, parameter 1 first.
}

// Decode splits a raw cell value into its operation and parameter modes.
//
// The low two decimal digits select the operation; every further digit,
// moving towards the most significant, is the mode for the next
// parameter. All mode digits present are validated, even those beyond
// the operation's arity.
func Decode(raw int64) (inst Instruction, err error) {
	if raw < 0 {
		err = ErrOpcode(raw)
		return
	}

	op := Operation(raw % 100)
	if !op.Valid() {
		err = ErrOpcode(raw)
		return
	}

	inst = Instruction{Raw: raw, Op: op}

	for digits := raw / 100; digits > 0; digits /= 10 {
		mode := Mode(digits % 10)
		switch mode {
		case MODE_POSITION, MODE_IMMEDIATE:
			inst.Modes = append(inst.Modes, mode)
		default:
			inst = Instruction{}
			err = ErrMode(raw)
			return
		}
	}

	return
}

// Mode returns the addressing mode of the 0-based parameter index,
// defaulting to MODE_POSITION when no digit was given.
func (inst Instruction) Mode(index int) Mode {
	if index < 0 || index >= len(inst.Modes) {
		return MODE_POSITION
	}
	return inst.Modes[index]
}

// String returns the mnemonic with one mode letter per parameter,
// for example "add.ii-" for 1101. Write targets are shown as '-'.
func (inst Instruction) String() string {
	arity := inst.Op.Arity()
	if arity == 0 {
		return inst.Op.String()
	}

	var modes strings.Builder
	for n := range arity {
		if inst.writes(n) {
			modes.WriteByte('-')
			continue
		}
		modes.WriteString(inst.Mode(n).String())
	}

	return fmt.Sprintf("%v.%v", inst.Op, modes.String())
}

// writes returns true if the 0-based parameter index is a write target.
func (inst Instruction) writes(index int) bool {
	switch inst.Op {
	case OP_ADD, OP_MULTIPLY, OP_LESS_THAN, OP_EQUALS:
		return index == 2
	case OP_INPUT:
		return index == 0
	}
	return false
}
