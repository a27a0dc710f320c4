package asm

import (
	"fmt"
	"strings"
	"unicode"
)

// TokenizedInstruction is a mnemonic and its operand strings.
//
// Operand 2 is kept as one string even when it carries a shift, so
// "add r0, r1, r2, lsl #2" has the operands "r0", "r1" and "r2,lsl #2".
type TokenizedInstruction struct {
	Mnemonic Mnemonic
	Operands []string
}

// Tokenize splits one statement into a TokenizedInstruction. The line must
// not contain a comment.
func Tokenize(line string) (*TokenizedInstruction, error) {
	line = strings.TrimSpace(line)
	name, rest := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		name, rest = line[:i], line[i:]
	}

	m, err := ParseMnemonic(name)
	if err != nil {
		return nil, err
	}

	ti := &TokenizedInstruction{Mnemonic: m}

	rest = strings.TrimSpace(rest)
	if rest == "" {
		return ti, nil
	}

	parts := strings.Split(rest, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
		if parts[i] == "" {
			return nil, fmt.Errorf("%w: empty operand in %q", ErrMalformedOperand, line)
		}
	}

	if idx := m.operand2Index(); idx >= 0 && len(parts) > idx+1 {
		parts = append(parts[:idx], strings.Join(parts[idx:], ","))
	}

	ti.Operands = parts

	return ti, nil
}

func (ti *TokenizedInstruction) String() string {
	return ti.Mnemonic.String() + " " + strings.Join(ti.Operands, ", ")
}
