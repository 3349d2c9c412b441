package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Urethramancer/hack/assembler"
	"github.com/Urethramancer/hack/cpu"
)

var (
	outFile     string
	compat      bool
	dumpSymbols bool
	rawBinary   bool

	symbolsOut io.Writer = os.Stderr
)

var rootCmd = &cobra.Command{
	Use:   "hackasm sourceFile",
	Short: "Assembler for the Hack computer",
	Long: `Hackasm translates Hack assembly (.asm) into machine code.

By default the result is written next to the source as <name>.hack, one
16-digit binary word per line. Use -o - to write to standard output; when
that is a terminal an annotated listing is printed instead.`,

	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return assemble(args[0])
	},
}

func init() {
	rootCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file, - for standard output")
	rootCmd.Flags().BoolVar(&compat, "compat", false, "keep the first of repeated labels instead of failing")
	rootCmd.Flags().BoolVarP(&dumpSymbols, "symbols", "s", false, "print the symbol table after assembling")
	rootCmd.Flags().BoolVar(&rawBinary, "bin", false, "write big-endian words instead of text")

	flag.Set("logtostderr", "true")
	rootCmd.Flags().AddGoFlagSet(flag.CommandLine)
}

func assemble(src string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	asm := assembler.New()
	asm.AllowDuplicateLabels = compat
	prog, err := asm.Assemble(string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	glog.V(1).Infof("%s: %d words", src, len(prog.Instructions))

	out := outFile
	if out == "" {
		ext := ".hack"
		if rawBinary {
			ext = ".bin"
		}
		out = strings.TrimSuffix(src, ".asm") + ext
	}

	var contents []byte
	if rawBinary {
		contents = cpu.WordsToBytes(prog.Words())
	} else {
		contents = []byte(prog.String())
	}

	if err := writeOutput(prog, out, contents); err != nil {
		return err
	}
	if dumpSymbols {
		return prog.WriteSymbols(symbolsOut, true)
	}
	return nil
}

func writeOutput(prog *assembler.Program, out string, contents []byte) error {
	if out == "-" {
		if !rawBinary && term.IsTerminal(int(os.Stdout.Fd())) {
			return prog.Listing(os.Stdout)
		}
		_, err := os.Stdout.Write(contents)
		return err
	}

	if err := os.WriteFile(out, contents, 0644); err != nil {
		return err
	}
	glog.V(1).Infof("wrote %s", out)
	return nil
}

func main() {
	defer glog.Flush()
	if err := rootCmd.Execute(); err != nil {
		glog.Exitf("hackasm: %v", err)
	}
}
