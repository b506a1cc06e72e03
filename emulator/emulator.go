// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"strings"

	log "github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/internal"
	"github.com/ezrec/intcode/io"
)

const (
	NOUN_ADDRESS   = 1        // Cell patched with the noun during a search.
	VERB_ADDRESS   = 2        // Cell patched with the verb during a search.
	RESULT_ADDRESS = 0        // Cell holding the result of a search run.
	SEARCH_RANGE   = 100      // Nouns and verbs are searched in [0, SEARCH_RANGE).
	SEARCH_LIMIT   = 10000000 // Per-run instruction limit during a search.
)

// Emulator state. A pristine program, plus the Cpu of the last run.
type Emulator struct {
	Verbose bool        // If set, enables verbose logging.
	Limit   int         // If non-zero, limits the instructions of each run.
	Program cpu.Program // Program with all patches applied.
	Cpu     *cpu.Cpu    // Cpu of the most recent run, nil until the first.

	predefine map[string]int64
}

// NewEmulator creates a new emulator over a private copy of the program.
func NewEmulator(prog cpu.Program) (emu *Emulator) {
	emu = &Emulator{
		Program: prog.Clone(),
	}

	return
}

// Predefine defines a name usable in patch expressions.
func (emu *Emulator) Predefine(name string, value int64) {
	if emu.predefine == nil {
		emu.predefine = map[string]int64{name: value}
	} else {
		emu.predefine[name] = value
	}
}

// eval does patch time evaluation of a Starlark expression, with LENGTH
// and mem (the current cells) predefined.
func (emu *Emulator) eval(expr string) (value int64, err error) {
	expr = strings.TrimSpace(expr)
	if strings.HasPrefix(expr, "$(") && strings.HasSuffix(expr, ")") {
		expr = expr[2 : len(expr)-1]
	}

	cells := make(starlark.Tuple, len(emu.Program))
	for n, cell := range emu.Program {
		cells[n] = starlark.MakeInt64(cell)
	}

	thread := starlark.Thread{Name: "patch"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{
		"LENGTH": starlark.MakeInt(len(emu.Program)),
		"mem":    cells,
	}
	for key, value := range emu.predefine {
		pred[key] = starlark.MakeInt64(value)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "patch", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}

// Patch applies ADDR=EXPR assignments to the program, in order.
// Both sides are Starlark expressions.
func (emu *Emulator) Patch(patches ...string) (err error) {
	for _, patch := range patches {
		err = emu.patch(patch)
		if err != nil {
			err = ErrPatch{Patch: patch, Err: err}
			return
		}
	}

	return
}

func (emu *Emulator) patch(patch string) (err error) {
	lhs, rhs, ok := strings.Cut(patch, "=")
	if !ok || len(strings.TrimSpace(lhs)) == 0 || len(strings.TrimSpace(rhs)) == 0 {
		err = ErrPatchSyntax
		return
	}

	addr, err := emu.eval(lhs)
	if err != nil {
		return
	}

	value, err := emu.eval(rhs)
	if err != nil {
		return
	}

	if addr < 0 || addr >= int64(len(emu.Program)) {
		err = cpu.ErrAddress(addr)
		return
	}

	if emu.Verbose {
		log.Debugf("emulator: patch mem[%d] = %d (was %d)", addr, value, emu.Program[addr])
	}

	emu.Program[addr] = value

	return
}

// newCpu creates a Cpu over a fresh copy of the program.
func (emu *Emulator) newCpu(input io.Input, output io.Output) *cpu.Cpu {
	cp := cpu.NewCpu(emu.Program.Clone(), input, output)
	cp.Verbose = emu.Verbose
	cp.Limit = emu.Limit
	return cp
}

// Run the program on a fresh tape, returning the final tape.
func (emu *Emulator) Run(input io.Input, output io.Output) (tape []int64, err error) {
	emu.Cpu = emu.newCpu(input, output)

	tape, err = emu.Cpu.Run()
	if err != nil {
		err = &ErrRuntime{Ip: emu.Cpu.Ip, Err: err}
		return
	}

	if emu.Verbose {
		log.Debugf("emulator: halted after %d ticks", emu.Cpu.Ticks)
	}

	return
}

// Search finds the first noun and verb in [0, limit) that, written to
// cells 1 and 2, leave target in cell 0 once the program halts.
// Runs that fail are skipped.
func (emu *Emulator) Search(target int64, limit int64) (noun, verb int64, err error) {
	if limit <= 0 {
		limit = SEARCH_RANGE
	}

	for noun, verb = range internal.IterSeq2Grid(limit) {
		cp := emu.newCpu(&io.Rom{}, &io.Buffer{})
		if cp.Limit == 0 {
			cp.Limit = SEARCH_LIMIT
		}

		err = cp.Memory.Write(NOUN_ADDRESS, noun)
		if err != nil {
			return
		}
		err = cp.Memory.Write(VERB_ADDRESS, verb)
		if err != nil {
			return
		}

		var tape []int64
		tape, err = cp.Run()
		if err != nil {
			if emu.Verbose {
				log.Debugf("emulator: noun %d verb %d: %v", noun, verb, err)
			}
			continue
		}

		if tape[RESULT_ADDRESS] == target {
			emu.Cpu = cp
			return
		}
	}

	noun, verb = 0, 0
	err = ErrNoSolution
	return
}
