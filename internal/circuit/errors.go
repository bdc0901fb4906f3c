package circuit

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownWire is returned when a request names a wire the circuit
	// does not define.
	ErrUnknownWire = errors.New("unknown wire")
	// ErrMalformedOperand is returned when an operand is neither a defined
	// wire nor a decimal signal.
	ErrMalformedOperand = errors.New("malformed operand")
	// ErrCyclicReference is returned when a wire depends on itself.
	ErrCyclicReference = errors.New("cyclic reference")
)

// UnknownWireError names the missing wire.
type UnknownWireError struct {
	Wire string
}

func (e *UnknownWireError) Error() string {
	return fmt.Sprintf("unknown wire %q", e.Wire)
}

func (e *UnknownWireError) Unwrap() error { return ErrUnknownWire }

// MalformedOperandError reports an operand token that could not be resolved
// while evaluating Wire.
type MalformedOperandError struct {
	Wire  string
	Token string
}

func (e *MalformedOperandError) Error() string {
	return fmt.Sprintf("wire %q: operand %q is neither a wire nor a signal", e.Wire, e.Token)
}

func (e *MalformedOperandError) Unwrap() error { return ErrMalformedOperand }

// CyclicReferenceError carries the chain of wires that closes the cycle,
// starting and ending with the same wire.
type CyclicReferenceError struct {
	Path []string
}

func (e *CyclicReferenceError) Error() string {
	return "cyclic reference: " + strings.Join(e.Path, " -> ")
}

func (e *CyclicReferenceError) Unwrap() error { return ErrCyclicReference }
