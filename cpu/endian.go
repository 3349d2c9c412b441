package cpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrRange is returned when a value does not fit the requested width.
var ErrRange = errors.New("value out of range")

// TwosComplement renders value as exactly bits binary digits, most
// significant first. Negative values are stored as (1<<bits)+value.
// Anything outside -(1<<(bits-1)) .. (1<<bits)-1 is rejected.
func TwosComplement(bits int, value int) (string, error) {
	if bits <= 0 || bits > 62 {
		return "", fmt.Errorf("invalid width %d", bits)
	}
	if value < -(1<<(bits-1)) || value >= 1<<bits {
		return "", fmt.Errorf("%d in %d bits: %w", value, bits, ErrRange)
	}
	if value < 0 {
		value = (1 << bits) + value
	}
	s := strconv.FormatInt(int64(value), 2)
	return strings.Repeat("0", bits-len(s)) + s, nil
}

// FormatWord renders a word as 16 binary digits.
func FormatWord(w uint16) string {
	return fmt.Sprintf("%016b", w)
}

// ParseWord converts 16 binary digits into a word.
func ParseWord(s string) (uint16, error) {
	if len(s) != WordBits {
		return 0, fmt.Errorf("word %q has %d digits, want %d", s, len(s), WordBits)
	}
	v, err := strconv.ParseUint(s, 2, WordBits)
	if err != nil {
		return 0, fmt.Errorf("word %q: %w", s, err)
	}
	return uint16(v), nil
}

// ErrOddLength is returned for a binary image that does not hold whole words.
var ErrOddLength = errors.New("odd number of bytes")

// WordsToBytes packs a program into a .bin image, high byte first.
func WordsToBytes(words []uint16) []byte {
	out := make([]byte, 0, len(words)*2)
	for _, w := range words {
		out = binary.BigEndian.AppendUint16(out, w)
	}
	return out
}

// BytesToWords unpacks a .bin image written by WordsToBytes.
func BytesToWords(b []byte) ([]uint16, error) {
	if len(b)%2 != 0 {
		return nil, fmt.Errorf("%d bytes: %w", len(b), ErrOddLength)
	}
	words := make([]uint16, len(b)/2)
	for i := range words {
		words[i] = binary.BigEndian.Uint16(b[2*i:])
	}
	return words, nil
}
