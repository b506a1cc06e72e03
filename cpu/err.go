package cpu

import (
	"errors"
	"strconv"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted      = errors.New(f("cpu halted"))
	ErrLimit       = errors.New(f("instruction limit exceeded"))
	ErrOutOfBounds = errors.New(f("address out of bounds"))

	// Instruction decode errors
	ErrInvalidOpcode = errors.New(f("invalid opcode"))
	ErrInvalidMode   = errors.New(f("invalid addressing mode"))

	// Program text errors
	ErrProgramEmpty = errors.New(f("program empty"))
)

// ErrAddress reports the tape address of an out of bounds access.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address %v out of bounds", strconv.Itoa(int(ea)))
}

func (ea ErrAddress) Unwrap() error {
	return ErrOutOfBounds
}

// ErrOpcode reports the raw value of an undecodable instruction.
type ErrOpcode int64

func (eo ErrOpcode) Error() string {
	return f("bad opcode %v", strconv.FormatInt(int64(eo), 10))
}

func (eo ErrOpcode) Unwrap() error {
	return ErrInvalidOpcode
}

// ErrMode reports the raw value of an instruction with a bad mode digit.
type ErrMode int64

func (em ErrMode) Error() string {
	return f("bad addressing mode in %v", strconv.FormatInt(int64(em), 10))
}

func (em ErrMode) Unwrap() error {
	return ErrInvalidMode
}

// ErrInstruction locates the instruction that failed.
// Numbers are shown as they are on the tape, without locale grouping.
type ErrInstruction struct {
	Ip  int
	Raw int64
}

func (ei ErrInstruction) Error() string {
	return f("ip %v instruction %v", strconv.Itoa(ei.Ip), strconv.FormatInt(ei.Raw, 10))
}

// ErrParseNumber is a program cell that is not a number.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}
