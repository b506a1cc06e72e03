package cpu

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ezrec/intcode/io"
)

//go:generate go tool stringer -linecomment -type=State

// State is the execution state of the Cpu.
type State int

const (
	STATE_READY   = State(0) // ready
	STATE_RUNNING = State(1) // running
	STATE_HALTED  = State(2) // halted
	STATE_FAILED  = State(3) // failed
)

// Cpu is the Intcode execution engine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.
	Limit   int  // If non-zero, the maximum number of instructions to execute.

	Ip     int       // Current instruction pointer.
	Memory *Memory   // Program tape.
	Input  io.Input  // Source for OP_INPUT.
	Output io.Output // Sink for OP_OUTPUT.

	Ticks int // Executed instruction counter.

	state State
	err   error
}

// NewCpu creates a new Cpu in STATE_READY over the tape.
// The tape is owned by the Cpu from now on and is not copied.
func NewCpu(tape []int64, input io.Input, output io.Output) (cpu *Cpu) {
	cpu = &Cpu{
		Memory: NewMemory(tape),
		Input:  input,
		Output: output,
	}

	return
}

// State returns the current execution state.
func (cpu *Cpu) State() State {
	return cpu.state
}

// Err returns the error that moved the Cpu to STATE_FAILED.
func (cpu *Cpu) Err() error {
	return cpu.err
}

// Done returns true once the Cpu is halted or failed.
func (cpu *Cpu) Done() bool {
	return cpu.state == STATE_HALTED || cpu.state == STATE_FAILED
}

// String returns the current Cpu state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 6s: %v\n", "state", cpu.state)
	text += fmt.Sprintf("% 6s: %d\n", "ip", cpu.Ip)
	text += fmt.Sprintf("% 6s: %d\n", "ticks", cpu.Ticks)
	text += fmt.Sprintf("% 6s: %v\n", "tape", cpu.Memory)
	if cpu.err != nil {
		text += fmt.Sprintf("% 6s: %v\n", "error", cpu.err)
	}

	return
}

func (cpu *Cpu) fail(err error) error {
	cpu.state = STATE_FAILED
	cpu.err = err
	if cpu.Verbose {
		log.Debugf("cpu: failed: %v", err)
	}
	return err
}

func (cpu *Cpu) halt() {
	cpu.state = STATE_HALTED
	if cpu.Verbose {
		log.Debugf("cpu: halted at %03x after %d ticks", cpu.Ip, cpu.Ticks)
	}
}

// Tick executes a single fetch-decode-execute cycle.
func (cpu *Cpu) Tick() (err error) {
	switch cpu.state {
	case STATE_HALTED:
		return ErrHalted
	case STATE_FAILED:
		return cpu.err
	case STATE_READY:
		cpu.state = STATE_RUNNING
	}

	if cpu.Ip >= cpu.Memory.Length() {
		cpu.halt()
		return
	}

	if cpu.Limit != 0 && cpu.Ticks >= cpu.Limit {
		return cpu.fail(ErrLimit)
	}

	raw, err := cpu.Memory.Read(cpu.Ip, MODE_IMMEDIATE)
	if err != nil {
		return cpu.fail(err)
	}

	inst, err := Decode(raw)
	if err != nil {
		return cpu.fail(errors.Join(ErrInstruction{Ip: cpu.Ip, Raw: raw}, err))
	}

	err = cpu.Execute(inst)
	if err != nil {
		return cpu.fail(err)
	}

	return
}

// Run ticks the Cpu until it halts, returning the final tape, or until
// an instruction fails, returning the error.
func (cpu *Cpu) Run() (tape []int64, err error) {
	for cpu.state != STATE_HALTED {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	tape = cpu.Memory.Tape()
	return
}

// Execute executes a single decoded instruction at the current Ip.
func (cpu *Cpu) Execute(inst Instruction) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrInstruction{Ip: cpu.Ip, Raw: inst.Raw}, err)
		}
	}()
	if cpu.state == STATE_READY {
		cpu.state = STATE_RUNNING
	}
	if cpu.Verbose {
		log.Debugf("%03x: %v", cpu.Ip, inst)
	}

	next, halt, err := cpu.execute(inst)
	if err != nil {
		return
	}

	cpu.Ticks += 1

	if halt {
		cpu.halt()
		return
	}

	cpu.Ip = next
	if cpu.Ip >= cpu.Memory.Length() {
		cpu.halt()
	}

	return
}

// execute performs the effect of inst, and returns the next instruction
// pointer, or halt if the Cpu is to stop.
func (cpu *Cpu) execute(inst Instruction) (next int, halt bool, err error) {
	next = cpu.Ip + 1 + inst.Op.Arity()

	switch inst.Op {
	case OP_ADD, OP_MULTIPLY, OP_LESS_THAN, OP_EQUALS:
		var a, b int64
		a, err = cpu.getValue(inst, 0)
		if err != nil {
			return
		}
		b, err = cpu.getValue(inst, 1)
		if err != nil {
			return
		}
		err = cpu.setValue(2, cpu.doAlu(inst.Op, a, b))
	case OP_INPUT:
		var addr int
		addr, err = cpu.getTarget(0)
		if err != nil {
			return
		}
		if cpu.Input == nil {
			err = io.ErrEndOfInput
			return
		}
		var value int64
		value, err = cpu.Input.Next()
		if err != nil {
			return
		}
		err = cpu.Memory.Write(addr, value)
	case OP_OUTPUT:
		var value int64
		value, err = cpu.getValue(inst, 0)
		if err != nil {
			return
		}
		if cpu.Output != nil {
			err = cpu.Output.Emit(value)
		}
	case OP_JUMP_IF_TRUE, OP_JUMP_IF_FALSE:
		var cond, target int64
		cond, err = cpu.getValue(inst, 0)
		if err != nil {
			return
		}
		target, err = cpu.getValue(inst, 1)
		if err != nil {
			return
		}
		if (cond != 0) != (inst.Op == OP_JUMP_IF_TRUE) {
			return
		}
		if target < 0 {
			err = ErrAddress(target)
			return
		}
		next = int(target)
	case OP_HALT:
		halt = true
	default:
		err = ErrOpcode(inst.Raw)
	}

	return
}

// getValue reads the 0-based parameter n of the instruction at Ip,
// honoring its addressing mode.
func (cpu *Cpu) getValue(inst Instruction, n int) (value int64, err error) {
	return cpu.Memory.Read(cpu.Ip+1+n, inst.Mode(n))
}

// getTarget reads the 0-based parameter n of the instruction at Ip
// as a tape address to write to.
func (cpu *Cpu) getTarget(n int) (addr int, err error) {
	raw, err := cpu.Memory.Read(cpu.Ip+1+n, MODE_IMMEDIATE)
	if err != nil {
		return
	}

	return cpu.Memory.address(raw)
}

// setValue stores value at the address named by parameter n.
func (cpu *Cpu) setValue(n int, value int64) (err error) {
	addr, err := cpu.getTarget(n)
	if err != nil {
		return
	}

	return cpu.Memory.Write(addr, value)
}

// doAlu performs the requested three parameter operation, and returns
// the value to store.
func (cpu *Cpu) doAlu(op Operation, a int64, b int64) (output int64) {
	switch op {
	case OP_ADD:
		output = a + b
	case OP_MULTIPLY:
		output = a * b
	case OP_LESS_THAN:
		if a < b {
			output = 1
		}
	case OP_EQUALS:
		if a == b {
			output = 1
		}
	}

	return
}
