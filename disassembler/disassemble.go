package disassembler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Urethramancer/hack/cpu"
)

var (
	// ErrIllegal is returned for a word that is not a valid instruction.
	ErrIllegal = errors.New("illegal instruction")
)

// Instruction represents a single decoded instruction at a specific address.
type Instruction struct {
	Address uint16
	Op      uint16
	Text    string
}

// Decode turns one machine word back into assembly text.
func Decode(word uint16) (string, error) {
	if cpu.IsAddress(word) {
		return fmt.Sprintf("@%d", word), nil
	}
	if !cpu.IsCompute(word) {
		return "", fmt.Errorf("%016b: %w", word, ErrIllegal)
	}

	bits := cpu.FormatWord(word)
	comp, ok := cpu.CompMnemonic(bits[3:10])
	if !ok {
		return "", fmt.Errorf("%016b: comp %s: %w", word, bits[3:10], ErrIllegal)
	}
	dest, _ := cpu.DestMnemonic(bits[10:13])
	jump, _ := cpu.JumpMnemonic(bits[13:16])

	var sb strings.Builder
	if dest != "" {
		sb.WriteString(dest)
		sb.WriteByte('=')
	}
	sb.WriteString(comp)
	if jump != "" {
		sb.WriteByte(';')
		sb.WriteString(jump)
	}
	return sb.String(), nil
}

// Decoded decodes every word, keeping its ROM address.
func Decoded(words []uint16) ([]Instruction, error) {
	out := make([]Instruction, 0, len(words))
	for i, w := range words {
		text, err := Decode(w)
		if err != nil {
			return nil, fmt.Errorf("address %d: %w", i, err)
		}
		out = append(out, Instruction{Address: uint16(i), Op: w, Text: text})
	}
	return out, nil
}

// Disassemble returns the program as assembly source, one instruction
// per line.
func Disassemble(words []uint16) (string, error) {
	insts, err := Decoded(words)
	if err != nil {
		return "", err
	}
	var result strings.Builder
	for _, in := range insts {
		result.WriteString(in.Text)
		result.WriteByte('\n')
	}
	return result.String(), nil
}

// ParseHack reads .hack text: one 16-digit binary word per line. Blank
// lines are skipped.
func ParseHack(text string) ([]uint16, error) {
	var words []uint16
	for i, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		w, err := cpu.ParseWord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		words = append(words, w)
	}
	return words, nil
}
