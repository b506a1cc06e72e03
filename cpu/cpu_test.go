package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/intcode/io"
	"github.com/ezrec/intcode/translate"
)

func TestRun(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []int64
		final   []int64
	}){
		{"halt", []int64{99}, []int64{99}},
		{"add", []int64{1, 0, 0, 0, 99}, []int64{2, 0, 0, 0, 99}},
		{"mul", []int64{2, 3, 0, 3, 99}, []int64{2, 3, 0, 6, 99}},
		{"mul_square", []int64{2, 4, 4, 5, 99, 0}, []int64{2, 4, 4, 5, 99, 9801}},
		{"multiple", []int64{1, 0, 0, 0, 1, 0, 0, 0, 99}, []int64{4, 0, 0, 0, 1, 0, 0, 0, 99}},
		{"self_modify", []int64{1, 1, 1, 4, 99, 5, 6, 0, 99}, []int64{30, 1, 1, 4, 2, 5, 6, 0, 99}},
		{"immediate_mul", []int64{1002, 4, 3, 4, 33}, []int64{1002, 4, 3, 4, 99}},
		{"negative", []int64{1101, 100, -1, 4, 0}, []int64{1101, 100, -1, 4, 99}},
		{"immediate_target", []int64{11101, 1, 1, 0, 99}, []int64{2, 1, 1, 0, 99}},
		{"fallthrough", []int64{1101, 1, 1, 0}, []int64{2, 1, 1, 0}},
		{"empty", []int64{}, []int64{}},
	}

	for _, entry := range table {
		cpu := NewCpu(entry.program, nil, nil)
		final, err := cpu.Run()
		assert.NoError(err, entry.name)
		assert.Equal(entry.final, final, entry.name)
		assert.Equal(STATE_HALTED, cpu.State(), entry.name)
	}
}

func TestRunIdempotent(t *testing.T) {
	assert := assert.New(t)

	prog := Program{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}

	first, err := NewCpu(prog.Clone(), nil, nil).Run()
	assert.NoError(err)
	second, err := NewCpu(prog.Clone(), nil, nil).Run()
	assert.NoError(err)

	assert.Equal([]int64{3500, 9, 10, 70, 2, 3, 11, 0, 99, 30, 40, 50}, first)
	assert.Equal(first, second)
	assert.Equal(int64(1), prog[0])
}

func TestRunInputOutput(t *testing.T) {
	assert := assert.New(t)

	input := &io.Rom{Data: []int64{66}}
	output := &io.Buffer{}

	cpu := NewCpu([]int64{3, 0, 4, 0, 99}, input, output)
	final, err := cpu.Run()
	assert.NoError(err)
	assert.Equal([]int64{66, 0, 4, 0, 99}, final)
	assert.Equal([]int64{66}, output.Data)
}

func TestRunCompare(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program Program
		input   int64
		output  int64
	}){
		{"eq_pos_8", Program{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}, 8, 1},
		{"eq_pos_7", Program{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}, 7, 0},
		{"lt_pos_7", Program{3, 9, 7, 9, 10, 9, 4, 9, 99, -1, 8}, 7, 1},
		{"lt_pos_8", Program{3, 9, 7, 9, 10, 9, 4, 9, 99, -1, 8}, 8, 0},
		{"eq_imm_8", Program{3, 3, 1108, -1, 8, 3, 4, 3, 99}, 8, 1},
		{"eq_imm_9", Program{3, 3, 1108, -1, 8, 3, 4, 3, 99}, 9, 0},
		{"lt_imm_3", Program{3, 3, 1107, -1, 8, 3, 4, 3, 99}, 3, 1},
		{"lt_imm_8", Program{3, 3, 1107, -1, 8, 3, 4, 3, 99}, 8, 0},
		{"jf_pos_0", Program{3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9}, 0, 0},
		{"jf_pos_5", Program{3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9}, 5, 1},
		{"jf_pos_neg", Program{3, 12, 6, 12, 15, 1, 13, 14, 13, 4, 13, 99, -1, 0, 1, 9}, -3, 1},
		{"jt_imm_0", Program{3, 3, 1105, -1, 9, 1101, 0, 0, 12, 4, 12, 99, 1}, 0, 0},
		{"jt_imm_2", Program{3, 3, 1105, -1, 9, 1101, 0, 0, 12, 4, 12, 99, 1}, 2, 1},
	}

	for _, entry := range table {
		output := &io.Buffer{}
		cpu := NewCpu(entry.program.Clone(), &io.Rom{Data: []int64{entry.input}}, output)
		_, err := cpu.Run()
		assert.NoError(err, entry.name)
		assert.Equal([]int64{entry.output}, output.Data, entry.name)
	}
}

func TestRunLarger(t *testing.T) {
	assert := assert.New(t)

	prog := Program{
		3, 21, 1008, 21, 8, 20, 1005, 20, 22, 107, 8, 21, 20, 1006, 20, 31,
		1106, 0, 36, 98, 0, 0, 1002, 21, 125, 20, 4, 20, 1105, 1, 46, 104,
		999, 1105, 1, 46, 1101, 1000, 1, 20, 4, 20, 1105, 1, 46, 98, 99,
	}

	for input, expect := range map[int64]int64{1: 999, 7: 999, 8: 1000, 9: 1001, 100: 1001} {
		output := &io.Buffer{}
		_, err := NewCpu(prog.Clone(), &io.Rom{Data: []int64{input}}, output).Run()
		assert.NoError(err, input)
		assert.Equal([]int64{expect}, output.Data, input)
	}
}

func TestRunErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []int64
		input   []int64
		err     error
		ip      int
	}){
		{"opcode", []int64{1, 0, 0, 0, 42}, nil, ErrInvalidOpcode, 4},
		{"opcode_negative", []int64{-1}, nil, ErrInvalidOpcode, 0},
		{"mode", []int64{201, 0, 0, 0, 99}, nil, ErrInvalidMode, 0},
		{"operand_past_end", []int64{1, 0, 0}, nil, ErrOutOfBounds, 0},
		{"deref_past_end", []int64{1, 0, 7, 0, 99}, nil, ErrOutOfBounds, 0},
		{"deref_negative", []int64{1, -1, 0, 0, 99}, nil, ErrOutOfBounds, 0},
		{"write_negative", []int64{1101, 1, 1, -1, 99}, nil, ErrOutOfBounds, 0},
		{"write_past_end", []int64{1101, 1, 1, 5, 99}, nil, ErrOutOfBounds, 0},
		{"jump_negative", []int64{1105, 1, -4, 99}, nil, ErrOutOfBounds, 0},
		{"end_of_input", []int64{3, 0, 3, 0, 99}, []int64{7}, io.ErrEndOfInput, 2},
		{"input_past_end", []int64{3}, []int64{7}, ErrOutOfBounds, 0},
	}

	for _, entry := range table {
		cpu := NewCpu(entry.program, &io.Rom{Data: entry.input}, &io.Buffer{})
		final, err := cpu.Run()
		assert.ErrorIs(err, entry.err, entry.name)
		assert.Nil(final, entry.name)
		assert.Equal(STATE_FAILED, cpu.State(), entry.name)
		assert.Equal(entry.ip, cpu.Ip, entry.name)

		var loc ErrInstruction
		assert.True(errors.As(err, &loc), entry.name)
		assert.Equal(entry.ip, loc.Ip, entry.name)

		// Failures are sticky.
		assert.Equal(err, cpu.Tick(), entry.name)
		assert.Equal(err, cpu.Err(), entry.name)
	}
}

func TestRunErrorsFarIp(t *testing.T) {
	assert := assert.New(t)

	defer translate.SetLocales()
	translate.SetLocales("de-DE")

	tape := make([]int64, 1240)
	copy(tape, []int64{1105, 1, 1236})
	tape[1236] = 42

	cpu := NewCpu(tape, nil, nil)
	_, err := cpu.Run()
	assert.ErrorIs(err, ErrInvalidOpcode)
	assert.Equal(1236, cpu.Ip)
	assert.Equal("ip 1236 instruction 42\nbad opcode 42", err.Error())
}

func TestRunChained(t *testing.T) {
	assert := assert.New(t)

	// Doubles its input.
	double := Program{3, 9, 1002, 9, 2, 9, 4, 9, 99, 0}
	// Doubles its input, then waits for another.
	reader := Program{3, 11, 1002, 11, 2, 11, 4, 11, 3, 11, 99, 0}

	link := io.NewQueue(0)
	output := &io.Buffer{}

	first := NewCpu(double.Clone(), &io.Rom{Data: []int64{21}}, link)
	second := NewCpu(reader.Clone(), link, output)

	firstDone := make(chan error)
	secondDone := make(chan error)

	go func() {
		_, err := first.Run()
		link.Close()
		firstDone <- err
	}()
	go func() {
		_, err := second.Run()
		secondDone <- err
	}()

	assert.NoError(<-firstDone)
	err := <-secondDone
	assert.ErrorIs(err, io.ErrEndOfInput)

	assert.Equal(STATE_HALTED, first.State())
	assert.Equal(STATE_FAILED, second.State())
	assert.Equal(8, second.Ip)
	assert.Equal([]int64{84}, output.Data)

	// Each machine worked on its own tape.
	assert.Equal([]int64{3, 9, 1002, 9, 2, 9, 4, 9, 99, 42}, first.Memory.Tape())
	assert.Equal(int64(84), second.Memory.Tape()[11])
	assert.Equal(Program{3, 9, 1002, 9, 2, 9, 4, 9, 99, 0}, double)
	assert.Equal(Program{3, 11, 1002, 11, 2, 11, 4, 11, 3, 11, 99, 0}, reader)
}

func TestTick(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu([]int64{1, 0, 0, 0, 2, 0, 0, 0, 99}, nil, nil)
	assert.Equal(STATE_READY, cpu.State())
	assert.Equal(0, cpu.Ip)

	assert.NoError(cpu.Tick())
	assert.Equal(STATE_RUNNING, cpu.State())
	assert.Equal(4, cpu.Ip)
	assert.Equal(int64(2), cpu.Memory.Tape()[0])

	assert.NoError(cpu.Tick())
	assert.Equal(8, cpu.Ip)
	assert.Equal(int64(4), cpu.Memory.Tape()[0])
	assert.False(cpu.Done())

	assert.NoError(cpu.Tick())
	assert.Equal(STATE_HALTED, cpu.State())
	assert.True(cpu.Done())
	assert.Equal(3, cpu.Ticks)

	assert.ErrorIs(cpu.Tick(), ErrHalted)
}

func TestTickJumpPastEnd(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu([]int64{1105, 1, 100}, nil, nil)
	assert.NoError(cpu.Tick())
	assert.Equal(100, cpu.Ip)
	assert.Equal(STATE_HALTED, cpu.State())
}

func TestLimit(t *testing.T) {
	assert := assert.New(t)

	// Jump to self forever.
	cpu := NewCpu([]int64{1105, 1, 0}, nil, nil)
	cpu.Limit = 10
	_, err := cpu.Run()
	assert.ErrorIs(err, ErrLimit)
	assert.Equal(10, cpu.Ticks)
	assert.Equal(STATE_FAILED, cpu.State())
}

func TestString(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu([]int64{1, 0, 0, 0, 99}, nil, nil)
	_, err := cpu.Run()
	assert.NoError(err)

	text := cpu.String()
	assert.Contains(text, "halted")
	assert.Contains(text, "2,0,0,0,99")

	assert.Equal("ready", STATE_READY.String())
	assert.Equal("running", STATE_RUNNING.String())
	assert.Equal("failed", STATE_FAILED.String())
	assert.Equal("State(7)", State(7).String())
	assert.Equal("State(-1)", State(-1).String())
}
