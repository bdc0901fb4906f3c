package gate

import (
	"fmt"
)

// MaxShift is the largest shift amount a shift gate accepts.
const MaxShift = 15

// Kind distinguishes the operations a gate can perform.
type Kind int

const (
	// Literal passes its single operand through unmodified.
	Literal Kind = iota
	// Not is the 16-bit bitwise complement of its operand.
	Not
	// And is the bitwise AND of two operands.
	And
	// Or is the bitwise OR of two operands.
	Or
	// ShiftLeft shifts its operand left by a fixed amount.
	ShiftLeft
	// ShiftRight shifts its operand right by a fixed amount.
	ShiftRight
)

// keywords holds the netlist keyword of each kind. Literal has none.
var keywords = [...]string{
	Literal:    "",
	Not:        "NOT",
	And:        "AND",
	Or:         "OR",
	ShiftLeft:  "LSHIFT",
	ShiftRight: "RSHIFT",
}

// Keyword returns the netlist keyword for the kind, or "" for Literal.
func (k Kind) Keyword() string {
	if k < 0 || int(k) >= len(keywords) {
		return ""
	}
	return keywords[k]
}

func (k Kind) String() string {
	if k == Literal {
		return "LITERAL"
	}
	if kw := k.Keyword(); kw != "" {
		return kw
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Gate is the expression driving a wire. Right is only used by And and Or,
// Shift only by the shift kinds.
type Gate struct {
	Kind  Kind
	Left  Operand
	Right Operand
	Shift uint8
}

// Pass returns a gate that forwards its operand.
func Pass(o Operand) Gate {
	return Gate{Kind: Literal, Left: o}
}

// Complement returns a NOT gate.
func Complement(o Operand) Gate {
	return Gate{Kind: Not, Left: o}
}

// Conjunction returns an AND gate.
func Conjunction(left, right Operand) Gate {
	return Gate{Kind: And, Left: left, Right: right}
}

// Disjunction returns an OR gate.
func Disjunction(left, right Operand) Gate {
	return Gate{Kind: Or, Left: left, Right: right}
}

// Shifted returns a shift gate of the given kind. It fails if kind is not a
// shift or the amount is larger than MaxShift.
func Shifted(kind Kind, o Operand, amount uint) (Gate, error) {
	if kind != ShiftLeft && kind != ShiftRight {
		return Gate{}, fmt.Errorf("%s is not a shift gate", kind)
	}
	if amount > MaxShift {
		return Gate{}, fmt.Errorf("shift amount %d out of range [0,%d]", amount, MaxShift)
	}
	return Gate{Kind: kind, Left: o, Shift: uint8(amount)}, nil
}

// Arity returns how many operands the gate reads.
func (g Gate) Arity() int {
	switch g.Kind {
	case And, Or:
		return 2
	default:
		return 1
	}
}

// Operands returns the operands the gate reads, left first.
func (g Gate) Operands() []Operand {
	if g.Arity() == 2 {
		return []Operand{g.Left, g.Right}
	}
	return []Operand{g.Left}
}

// Apply computes the gate's output from resolved operand signals. right is
// ignored by single-operand gates.
func (g Gate) Apply(left, right uint16) uint16 {
	switch g.Kind {
	case Not:
		return ^left
	case And:
		return left & right
	case Or:
		return left | right
	case ShiftLeft:
		return left << g.Shift
	case ShiftRight:
		return left >> g.Shift
	default:
		return left
	}
}

// String renders the gate in canonical netlist form, e.g. "x AND y".
func (g Gate) String() string {
	switch g.Kind {
	case Not:
		return fmt.Sprintf("NOT %s", g.Left)
	case And, Or:
		return fmt.Sprintf("%s %s %s", g.Left, g.Kind.Keyword(), g.Right)
	case ShiftLeft, ShiftRight:
		return fmt.Sprintf("%s %s %d", g.Left, g.Kind.Keyword(), g.Shift)
	default:
		return g.Left.String()
	}
}
