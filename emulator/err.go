package emulator

import (
	"errors"
	"strconv"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Emulator errors
	ErrNoSolution  = errors.New(f("no noun and verb produce the target"))
	ErrPatchSyntax = errors.New(f("patch syntax, expected ADDR=EXPR"))
)

// ErrRuntime indicates the instruction pointer of a runtime error.
type ErrRuntime struct {
	Ip  int
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("ip %v %v", strconv.Itoa(err.Ip), err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrParseExpression is a patch expression that did not evaluate to an
// integer.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrPatch locates a failed patch.
type ErrPatch struct {
	Patch string
	Err   error
}

func (err ErrPatch) Error() string {
	return f("patch '%v' %v", err.Patch, err.Err)
}

func (err ErrPatch) Unwrap() error {
	return err.Err
}
