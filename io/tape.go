package io

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Tape provides line oriented text I/O, one decimal integer per line.
// It wraps an io.Reader for input and io.Writer for output.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	// Prompt, if set, is written to Output before each value is read.
	Prompt string

	scanner *bufio.Scanner
}

var _ Channel = (*Tape)(nil)

// Next reads lines until a non-blank one is found and parses it.
// Returns ErrEndOfInput at the end of the input stream.
func (tc *Tape) Next() (value int64, err error) {
	if tc.Input == nil {
		err = ErrEndOfInput
		return
	}

	if tc.scanner == nil {
		tc.scanner = bufio.NewScanner(tc.Input)
	}

	if len(tc.Prompt) != 0 && tc.Output != nil {
		_, err = io.WriteString(tc.Output, tc.Prompt)
		if err != nil {
			return
		}
	}

	for tc.scanner.Scan() {
		line := strings.TrimSpace(tc.scanner.Text())
		if len(line) == 0 {
			continue
		}
		value, err = strconv.ParseInt(line, 10, 64)
		if err != nil {
			err = ErrParseNumber(line)
		}
		return
	}

	err = tc.scanner.Err()
	if err == nil {
		err = ErrEndOfInput
	}

	return
}

// Emit writes value as a decimal line to the output stream.
func (tc *Tape) Emit(value int64) (err error) {
	if tc.Output == nil {
		return
	}

	_, err = fmt.Fprintln(tc.Output, value)
	return
}
