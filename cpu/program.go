package cpu

import (
	"io"
	"slices"
	"strconv"
	"strings"
)

// Program is an initial Intcode tape.
type Program []int64

// ParseProgram reads a comma separated list of integers.
func ParseProgram(in io.Reader) (prog Program, err error) {
	text, err := io.ReadAll(in)
	if err != nil {
		return
	}

	return ParseProgramString(string(text))
}

// ParseProgramString parses a comma separated list of integers.
// Whitespace around each value is ignored; empty values are not.
func ParseProgramString(text string) (prog Program, err error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		err = ErrProgramEmpty
		return
	}

	for word := range strings.SplitSeq(text, ",") {
		word = strings.TrimSpace(word)
		var value int64
		value, err = strconv.ParseInt(word, 10, 64)
		if err != nil {
			prog = nil
			err = ErrParseNumber(word)
			return
		}
		prog = append(prog, value)
	}

	return
}

// Clone returns an independent copy of the tape, for a new Cpu.
func (prog Program) Clone() []int64 {
	return slices.Clone([]int64(prog))
}

// String returns the program in its comma separated form.
func (prog Program) String() string {
	return NewMemory(prog).String()
}
