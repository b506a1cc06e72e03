// Package cpu implements the Intcode virtual machine.
//
// The machine has no registers: a single tape of signed integers holds both
// program and data, and an instruction pointer (IP) selects the next cell to
// execute. Each instruction's low two decimal digits pick the operation and
// the remaining digits give the addressing mode of each parameter, either
// position (dereference the cell) or immediate (use the cell).
//
// Input and output go through the ports of package io, supplied when the
// Cpu is created.
package cpu
