// Package gate defines the expression model of a logic circuit: the closed
// set of gate kinds a wire can be driven by, and the operands those gates read.
//
// # Operands
//
// An Operand is either a literal 16-bit signal or a reference to another wire
// by name. References are never looked up here. Binding a name to a wire is
// the job of the topology package, and producing a signal for it is the job
// of the circuit evaluator.
//
// # Arithmetic
//
// Every gate works at 16-bit unsigned width. NOT complements all sixteen bits,
// shifts are logical and drop bits pushed past bit 15. Shift amounts are
// limited to [0, MaxShift]; constructors reject anything larger.
package gate
