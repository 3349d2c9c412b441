package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/Urethramancer/hack/assembler"
	"github.com/Urethramancer/hack/cpu"
	"github.com/Urethramancer/hack/disassembler"
)

var (
	maxCycles int
	ramWords  int
	rawBinary bool
)

// This program loads a Hack program, runs it on the emulator and prints
// the registers and the start of RAM.
var rootCmd = &cobra.Command{
	Use:   "hackrun programFile",
	Short: "Run a Hack program on the emulator",
	Long: `Hackrun loads a .hack file, a raw big-endian .bin file (--bin) or
an .asm source, which is assembled first. It runs until the program reaches
its "@END / 0;JMP" loop, leaves ROM, or the cycle limit is hit.`,

	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0])
	},
}

func init() {
	rootCmd.Flags().IntVarP(&maxCycles, "cycles", "c", 1000000, "maximum number of instructions to execute")
	rootCmd.Flags().IntVarP(&ramWords, "ram", "r", 16, "number of RAM words to print")
	rootCmd.Flags().BoolVar(&rawBinary, "bin", false, "input holds big-endian words instead of text")

	flag.Set("logtostderr", "true")
	rootCmd.Flags().AddGoFlagSet(flag.CommandLine)
}

func load(name string) ([]uint16, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	switch {
	case rawBinary:
		return cpu.BytesToWords(data)
	case strings.HasSuffix(name, ".asm"):
		prog, err := assembler.New().Assemble(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return prog.Words(), nil
	}
	words, err := disassembler.ParseHack(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return words, nil
}

func run(name string) error {
	code, err := load(name)
	if err != nil {
		return err
	}

	c := cpu.New()
	c.LoadROM(code)
	glog.V(1).Infof("loaded %d words from %s", len(code), name)

	n, err := c.Run(maxCycles)
	if err != nil {
		return err
	}

	state := "cycle limit reached"
	switch {
	case c.Halted():
		state = "halted"
	case int(c.PC) >= len(c.ROM):
		state = "ran off the end of ROM"
	}
	fmt.Printf("%d instructions, %s\n", n, state)
	fmt.Printf("A=%d D=%d PC=%d\n", c.A, c.D, c.PC)

	if ramWords > cpu.RAMSize {
		ramWords = cpu.RAMSize
	}
	for i := 0; i < ramWords; i++ {
		fmt.Printf("RAM[%5d] = %6d  %s\n", i, int16(c.RAM[i]), cpu.FormatWord(c.RAM[i]))
	}
	return nil
}

func main() {
	defer glog.Flush()
	if err := rootCmd.Execute(); err != nil {
		glog.Exitf("hackrun: %v", err)
	}
}
