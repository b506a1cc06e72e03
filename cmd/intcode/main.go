// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"fmt"
	stdio "io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/emulator"
	"github.com/ezrec/intcode/io"
)

// INPUT_PROMPT is shown on stderr before each read from an interactive terminal.
const INPUT_PROMPT = "> "

var rootCmd = &cobra.Command{
	Use:   "intcode",
	Short: "An Intcode virtual machine.",
	Long:  "Runs Intcode programs, given as comma separated integers, against text streams.",
}

var runCmd = &cobra.Command{
	Use:   "run [flags] program.txt",
	Short: "run an Intcode program.",
	Long: `Run an Intcode program until it halts. Values for INPUT are read one per
	line, values from OUTPUT are written one per line.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := configure(cmd)

		emu := load(cfg, args[0])

		tape, err := runProgram(emu, getString(cmd, "input"), getString(cmd, "output"))
		if err != nil {
			log.Fatalf("%v: %v", args[0], err)
		}

		if getBool(cmd, "dump") {
			fmt.Fprintln(os.Stdout, cpu.Program(tape))
		}
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [flags] program.txt",
	Short: "search for the noun and verb producing a target.",
	Long: `Try every noun and verb, written to cells 1 and 2, until the program halts
	with the target in cell 0. Prints 100 * noun + verb.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := configure(cmd)

		if cmd.Flags().Changed("target") {
			cfg.Search.Target = getInt64(cmd, "target")
		}
		if cmd.Flags().Changed("range") {
			cfg.Search.Range = getInt64(cmd, "range")
		}

		emu := load(cfg, args[0])

		noun, verb, err := emu.Search(cfg.Search.Target, cfg.Search.Range)
		if err != nil {
			log.Fatalf("%v: %v", args[0], err)
		}

		log.Infof("noun %d verb %d", noun, verb)
		fmt.Fprintln(os.Stdout, 100*noun+verb)
	},
}

// configure loads the configuration file and applies the global flags.
func configure(cmd *cobra.Command) (cfg *Config) {
	path := getString(cmd, "config")
	explicit := cmd.Flags().Changed("config")

	cfg, err := LoadConfig(path, explicit)
	if err != nil {
		log.Fatal(err)
	}

	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = getBool(cmd, "verbose")
	}
	if cmd.Flags().Changed("limit") {
		cfg.Limit = getInt(cmd, "limit")
	}
	if cmd.Flags().Changed("set") {
		cfg.Patch.Set = append(cfg.Patch.Set, getStringArray(cmd, "set")...)
	}

	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	return
}

// load parses the program file into an emulator, with all patches applied.
func load(cfg *Config, path string) (emu *emulator.Emulator) {
	inf, err := os.Open(path)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}
	defer inf.Close()

	prog, err := cpu.ParseProgram(inf)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	log.Debugf("%v: %d cells", path, len(prog))

	emu = emulator.NewEmulator(prog)
	emu.Verbose = cfg.Verbose
	emu.Limit = cfg.Limit

	err = emu.Patch(cfg.Patch.Set...)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	return
}

// runProgram runs the emulator between the INPUT and OUTPUT ports.
// The ports are closed before returning, and a failure to close the
// OUTPUT file is reported with any run error.
func runProgram(emu *emulator.Emulator, input string, output string) (tape []int64, err error) {
	in, closeIn, err := openInput(input)
	if err != nil {
		return
	}
	defer closeIn()

	out, closeOut, err := openOutput(output)
	if err != nil {
		return
	}
	defer func() {
		err = errors.Join(err, closeOut())
	}()

	tape, err = emu.Run(in, out)
	return
}

// openInput opens the INPUT port. Interactive terminals are prompted on stderr.
func openInput(name string) (in *io.Tape, done func() error, err error) {
	done = func() error { return nil }

	if name == "-" {
		in = &io.Tape{Input: os.Stdin}
		if term.IsTerminal(int(os.Stdin.Fd())) {
			in.Output = os.Stderr
			in.Prompt = INPUT_PROMPT
		}
		return
	}

	inf, err := os.Open(name)
	if err != nil {
		return
	}

	in = &io.Tape{Input: inf}
	done = inf.Close
	return
}

// openOutput opens the OUTPUT port.
func openOutput(name string) (out *io.Tape, done func() error, err error) {
	done = func() error { return nil }

	if name == "-" {
		out = &io.Tape{Output: os.Stdout}
		return
	}

	ouf, err := os.Create(name)
	if err != nil {
		return
	}

	out = &io.Tape{Output: ouf}
	done = func() error { return closeOutput(name, ouf) }
	return
}

func closeOutput(name string, ouf stdio.Closer) (err error) {
	err = ouf.Close()
	if err != nil {
		err = fmt.Errorf("%v: %w", name, err)
	}
	return
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().String("config", DEFAULT_CONFIG, "configuration file")
	rootCmd.PersistentFlags().Int("limit", 0, "maximum instructions per run (0 is unlimited)")
	rootCmd.PersistentFlags().StringArray("set", nil, "patch a cell before running, as ADDR=EXPR")

	runCmd.Flags().StringP("input", "i", "-", "INPUT values, one per line")
	runCmd.Flags().StringP("output", "o", "-", "OUTPUT values, one per line")
	runCmd.Flags().Bool("dump", false, "print the final tape")

	searchCmd.Flags().Int64("target", DEFAULT_TARGET, "value to find in cell 0")
	searchCmd.Flags().Int64("range", emulator.SEARCH_RANGE, "nouns and verbs are tried below this value")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(searchCmd)
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
