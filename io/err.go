package io

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Port errors
	ErrEndOfInput  = errors.New(f("end of input"))
	ErrChannelFull = errors.New(f("channel full"))
)

// ErrParseNumber is an input line that is not a number.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}
