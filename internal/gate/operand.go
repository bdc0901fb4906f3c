package gate

import (
	"strconv"
)

// Operand is a single input of a gate: a literal signal or a wire reference.
type Operand struct {
	// Wire is the referenced wire name. Empty for literals.
	Wire string
	// Value is the literal signal. Only meaningful when Wire is empty.
	Value uint16
	// Token is the operand as written in the netlist. Wires are bound by
	// this text, so "05" can name a wire even though it reads as 5.
	Token string
}

// Lit returns a literal operand.
func Lit(v uint16) Operand {
	return Operand{Value: v, Token: strconv.FormatUint(uint64(v), 10)}
}

// Ref returns an operand referencing the named wire.
func Ref(name string) Operand {
	return Operand{Wire: name, Token: name}
}

// ParseOperand classifies a token. Tokens that parse as a decimal uint16 are
// literals, everything else is a wire reference. The raw token is kept.
func ParseOperand(token string) Operand {
	if v, err := strconv.ParseUint(token, 10, 16); err == nil {
		return Operand{Value: uint16(v), Token: token}
	}
	return Ref(token)
}

// IsRef reports whether the operand names a wire.
func (o Operand) IsRef() bool {
	return o.Wire != ""
}

// String returns the operand as it appears in a netlist.
func (o Operand) String() string {
	if o.Token != "" {
		return o.Token
	}
	if o.IsRef() {
		return o.Wire
	}
	return strconv.FormatUint(uint64(o.Value), 10)
}
