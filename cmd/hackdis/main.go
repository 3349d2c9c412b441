package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/Urethramancer/hack/cpu"
	"github.com/Urethramancer/hack/disassembler"
)

var (
	outFile   string
	rawBinary bool
)

var rootCmd = &cobra.Command{
	Use:   "hackdis inputFile [outputFile]",
	Short: "Disassembler for Hack machine code",
	Long: `Hackdis reads a .hack file (or raw big-endian words with --bin)
and prints the equivalent assembly source, one instruction per line.`,

	Args:          cobra.RangeArgs(1, 2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 2 {
			outFile = args[1]
		}
		return disassemble(args[0])
	},
}

func init() {
	rootCmd.Flags().BoolVar(&rawBinary, "bin", false, "input holds big-endian words instead of text")

	flag.Set("logtostderr", "true")
	rootCmd.Flags().AddGoFlagSet(flag.CommandLine)
}

func disassemble(inputFile string) error {
	words, err := loadWords(inputFile, rawBinary)
	if err != nil {
		return err
	}

	text, err := disassembler.Disassemble(words)
	if err != nil {
		return fmt.Errorf("%s: %w", inputFile, err)
	}

	if outFile == "" {
		fmt.Print(text)
		return nil
	}

	if err := os.WriteFile(outFile, []byte(text), 0644); err != nil {
		return err
	}
	glog.V(1).Infof("disassembly of %d words written to %s", len(words), outFile)
	return nil
}

func loadWords(name string, raw bool) ([]uint16, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	if raw {
		return cpu.BytesToWords(data)
	}
	words, err := disassembler.ParseHack(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return words, nil
}

func main() {
	defer glog.Flush()
	if err := rootCmd.Execute(); err != nil {
		glog.Exitf("hackdis: %v", err)
	}
}
