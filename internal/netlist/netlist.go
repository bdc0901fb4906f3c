// Package netlist reads and writes the textual form of a circuit: one
// instruction per line, "<gate> -> <wire>".
package netlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/specialistvlad/wiregrid/internal/gate"
)

// Separator splits a gate from the wire it drives.
const Separator = "->"

// ErrMalformedLine is the sentinel wrapped by every MalformedLineError.
var ErrMalformedLine = errors.New("malformed line")

// MalformedLineError reports a line that does not follow the grammar.
type MalformedLineError struct {
	// Line is the 1-based line number, or 0 when parsing a single line.
	Line   int
	Text   string
	Reason string
}

func (e *MalformedLineError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed line %d %q: %s", e.Line, e.Text, e.Reason)
	}
	return fmt.Sprintf("malformed line %q: %s", e.Text, e.Reason)
}

func (e *MalformedLineError) Unwrap() error {
	return ErrMalformedLine
}

// Instruction is one parsed line: a gate driving a target wire.
type Instruction struct {
	Gate   gate.Gate
	Target string
}

// String renders the instruction in canonical form.
func (i Instruction) String() string {
	return i.Gate.String() + " " + Separator + " " + i.Target
}

// binaryKeywords lists two-operand keywords in the order they are tried.
var binaryKeywords = []gate.Kind{gate.And, gate.Or, gate.ShiftRight, gate.ShiftLeft}

// ParseLine parses a single instruction.
func ParseLine(line string) (Instruction, error) {
	malformed := func(reason string) (Instruction, error) {
		return Instruction{}, &MalformedLineError{Text: line, Reason: reason}
	}

	lhs, rhs, found := strings.Cut(line, Separator)
	if !found {
		return malformed("missing " + Separator)
	}

	target := strings.Fields(rhs)
	if len(target) != 1 {
		return malformed("expected exactly one target wire")
	}

	fields := strings.Fields(lhs)
	if len(fields) == 0 {
		return malformed("missing gate")
	}

	g, reason := parseGate(fields)
	if reason != "" {
		return malformed(reason)
	}
	return Instruction{Gate: g, Target: target[0]}, nil
}

// parseGate checks NOT first, then each binary keyword, then falls through to
// a bare literal.
func parseGate(fields []string) (gate.Gate, string) {
	if fields[0] == gate.Not.Keyword() {
		if len(fields) != 2 {
			return gate.Gate{}, "NOT takes exactly one operand"
		}
		return gate.Complement(gate.ParseOperand(fields[1])), ""
	}

	for _, kind := range binaryKeywords {
		if len(fields) != 3 || fields[1] != kind.Keyword() {
			continue
		}
		left := gate.ParseOperand(fields[0])
		switch kind {
		case gate.And:
			return gate.Conjunction(left, gate.ParseOperand(fields[2])), ""
		case gate.Or:
			return gate.Disjunction(left, gate.ParseOperand(fields[2])), ""
		default:
			amount, err := strconv.ParseUint(fields[2], 10, 8)
			if err != nil {
				return gate.Gate{}, fmt.Sprintf("invalid shift amount %q", fields[2])
			}
			g, err := gate.Shifted(kind, left, uint(amount))
			if err != nil {
				return gate.Gate{}, err.Error()
			}
			return g, ""
		}
	}

	if len(fields) != 1 {
		return gate.Gate{}, fmt.Sprintf("unrecognised gate %q", strings.Join(fields, " "))
	}
	for _, kind := range binaryKeywords {
		if fields[0] == kind.Keyword() {
			return gate.Gate{}, kind.Keyword() + " is missing its operands"
		}
	}
	return gate.Pass(gate.ParseOperand(fields[0])), ""
}

// Parse parses every line, stopping at the first malformed one. Blank lines
// are rejected like any other malformed line; use Read to skip them.
func Parse(lines []string) ([]Instruction, error) {
	instructions := make([]Instruction, 0, len(lines))
	for i, line := range lines {
		ins, err := ParseLine(line)
		if err != nil {
			var mle *MalformedLineError
			if errors.As(err, &mle) {
				mle.Line = i + 1
			}
			return nil, err
		}
		instructions = append(instructions, ins)
	}
	return instructions, nil
}

// ReadLines returns the non-blank lines of r with surrounding space trimmed.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read netlist: %w", err)
	}
	return lines, nil
}

// Read parses a whole netlist, skipping blank lines.
func Read(r io.Reader) ([]Instruction, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, err
	}
	return Parse(lines)
}

// Write emits instructions one per line in canonical form.
func Write(w io.Writer, instructions []Instruction) error {
	for _, ins := range instructions {
		if _, err := fmt.Fprintln(w, ins.String()); err != nil {
			return err
		}
	}
	return nil
}
