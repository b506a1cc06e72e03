// Package io provides the port implementations an Intcode machine reads
// from and writes to. It includes fixed input (Rom), collected output
// (Buffer), a bounded FIFO usable as both ends (Temporary), line oriented
// text streams (Tape), and Go channel backed ports for chaining (Queue).
package io

// Input is a sequential source of integers for the INPUT operation.
type Input interface {
	// Next returns the next value, or ErrEndOfInput when exhausted.
	Next() (value int64, err error)
}

// Output is a sequential sink of integers for the OUTPUT operation.
type Output interface {
	// Emit writes a single value.
	Emit(value int64) error
}

// Channel is a port that is both an Input and an Output.
type Channel interface {
	Input
	Output
}
