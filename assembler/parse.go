package assembler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Urethramancer/hack/cpu"
)

var (
	reRegister = regexp.MustCompile(`^R(0|[1-9][0-9]*)$`)
	reNumber   = regexp.MustCompile(`^[0-9]+$`)
	reSymbol   = regexp.MustCompile(`^[A-Za-z_.$:][A-Za-z0-9_.$:]*$`)
)

// parseLine classifies a normalized line. Symbols are not resolved here.
func parseLine(l Line) (*Node, error) {
	text := l.Text
	switch text[0] {
	case '(':
		return parseLabel(l)
	case '@':
		return parseAddress(l)
	}
	return parseCompute(l)
}

// parseLabel handles (name).
func parseLabel(l Line) (*Node, error) {
	text := l.Text
	if len(text) < 3 || text[len(text)-1] != ')' {
		return nil, lineError(l, "label", fmt.Errorf("%w: labels are written (name)", ErrMalformed))
	}
	name := text[1 : len(text)-1]
	if !reSymbol.MatchString(name) {
		return nil, lineError(l, "label", fmt.Errorf("%w: invalid symbol %q", ErrMalformed, name))
	}
	return &Node{Type: NodeLabel, Line: l, Symbol: name}, nil
}

// parseAddress handles @register, @symbol and @number.
func parseAddress(l Line) (*Node, error) {
	target := strings.TrimSpace(l.Text[1:])
	if target == "" {
		return nil, lineError(l, "address", fmt.Errorf("%w: @ needs a symbol or number", ErrMalformed))
	}
	if !reNumber.MatchString(target) && !reSymbol.MatchString(target) {
		return nil, lineError(l, "address", fmt.Errorf("%w: invalid symbol %q", ErrMalformed, target))
	}
	return &Node{Type: NodeAddress, Line: l, Symbol: target}, nil
}

// parseCompute splits dest=comp;jump. Either dest or jump may be left off.
func parseCompute(l Line) (*Node, error) {
	dest, rest, hasDest := strings.Cut(l.Text, "=")
	if !hasDest {
		dest, rest = "", l.Text
	}
	comp, jump, hasJump := strings.Cut(rest, ";")

	n := &Node{
		Type: NodeCompute,
		Line: l,
		Dest: strings.TrimSpace(dest),
		Comp: strings.TrimSpace(comp),
		Jump: strings.TrimSpace(jump),
	}
	if hasDest && n.Dest == "" {
		return nil, lineError(l, "dest", fmt.Errorf("%w: empty destination before '='", ErrMalformed))
	}
	if n.Comp == "" {
		return nil, lineError(l, "comp", fmt.Errorf("%w: missing computation", ErrMalformed))
	}
	if hasJump && n.Jump == "" {
		return nil, lineError(l, "jump", fmt.Errorf("%w: empty jump after ';'", ErrMalformed))
	}
	return n, nil
}

// registerValue returns n for R0..R15.
func registerValue(s string) (int, bool) {
	m := reRegister.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil || v >= cpu.Registers {
		return 0, false
	}
	return v, true
}

// numberValue returns the value of an all-digit literal.
func numberValue(s string) (int, bool, error) {
	if !reNumber.MatchString(s) {
		return 0, false, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, true, err
	}
	return v, true, nil
}
