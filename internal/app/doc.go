// Package app wires the circuit evaluator to its inputs and outputs: it reads
// the netlist and scenario, runs the queries and prints their answers. It is
// decoupled from any specific entrypoint like a CLI.
package app
