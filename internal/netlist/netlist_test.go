package netlist

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/wiregrid/internal/gate"
)

func TestParseLine(t *testing.T) {
	lshift, err := gate.Shifted(gate.ShiftLeft, gate.Ref("x"), 2)
	require.NoError(t, err)
	rshift, err := gate.Shifted(gate.ShiftRight, gate.Ref("y"), 15)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		line     string
		expected Instruction
	}{
		{name: "literal", line: "123 -> x", expected: Instruction{Gate: gate.Pass(gate.Lit(123)), Target: "x"}},
		{name: "bare wire", line: "lx -> a", expected: Instruction{Gate: gate.Pass(gate.Ref("lx")), Target: "a"}},
		{name: "not", line: "NOT x -> h", expected: Instruction{Gate: gate.Complement(gate.Ref("x")), Target: "h"}},
		{name: "and", line: "x AND y -> d", expected: Instruction{Gate: gate.Conjunction(gate.Ref("x"), gate.Ref("y")), Target: "d"}},
		{name: "and literal", line: "1 AND cx -> cy", expected: Instruction{Gate: gate.Conjunction(gate.Lit(1), gate.Ref("cx")), Target: "cy"}},
		{name: "or", line: "x OR y -> e", expected: Instruction{Gate: gate.Disjunction(gate.Ref("x"), gate.Ref("y")), Target: "e"}},
		{name: "lshift", line: "x LSHIFT 2 -> f", expected: Instruction{Gate: lshift, Target: "f"}},
		{name: "rshift max", line: "y RSHIFT 15 -> g", expected: Instruction{Gate: rshift, Target: "g"}},
		{name: "extra spaces", line: "  x   AND  y  ->   d ", expected: Instruction{Gate: gate.Conjunction(gate.Ref("x"), gate.Ref("y")), Target: "d"}},
		{name: "keyword-like names", line: "NOTE OR ANDY -> ORB", expected: Instruction{Gate: gate.Disjunction(gate.Ref("NOTE"), gate.Ref("ANDY")), Target: "ORB"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ins, err := ParseLine(tc.line)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.expected, ins); diff != "" {
				t.Errorf("ParseLine(%q) mismatch (-want +got):\n%s", tc.line, diff)
			}
		})
	}
}

func TestParseLine_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		line   string
		reason string
	}{
		{name: "missing separator", line: "x AND y", reason: "missing ->"},
		{name: "missing target", line: "x AND y ->", reason: "target"},
		{name: "two targets", line: "x -> a b", reason: "target"},
		{name: "missing gate", line: " -> a", reason: "missing gate"},
		{name: "shift too large", line: "1 LSHIFT 16 -> a", reason: "out of range"},
		{name: "shift not a number", line: "x RSHIFT y -> a", reason: "invalid shift amount"},
		{name: "negative shift", line: "x RSHIFT -1 -> a", reason: "invalid shift amount"},
		{name: "not with two operands", line: "NOT x y -> a", reason: "NOT takes exactly one operand"},
		{name: "unknown keyword", line: "x XOR y -> a", reason: "unrecognised gate"},
		{name: "blank", line: "", reason: "missing ->"},
		{name: "bare AND", line: "AND -> x", reason: "AND is missing its operands"},
		{name: "bare LSHIFT", line: "LSHIFT -> x", reason: "LSHIFT is missing its operands"},
		{name: "bare NOT", line: "NOT -> x", reason: "NOT takes exactly one operand"},
		{name: "and missing right", line: "x AND -> y", reason: "unrecognised gate"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseLine(tc.line)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedLine))
			assert.ErrorContains(t, err, tc.reason)
		})
	}
}

func TestParse_ReportsLineNumber(t *testing.T) {
	instructions, err := Parse([]string{"123 -> x", "456 -> y", "x AND y"})
	require.Error(t, err)
	assert.Nil(t, instructions)

	var mle *MalformedLineError
	require.True(t, errors.As(err, &mle))
	assert.Equal(t, 3, mle.Line)
	assert.Equal(t, "x AND y", mle.Text)
	assert.ErrorContains(t, err, "malformed line 3")
}

func TestRoundTrip(t *testing.T) {
	lines := []string{
		"123 -> x",
		"456 -> y",
		"x AND y -> d",
		"x OR y -> e",
		"x LSHIFT 2 -> f",
		"y RSHIFT 2 -> g",
		"NOT x -> h",
		"NOT y -> i",
		"05 AND 007 -> z",
	}

	instructions, err := Parse(lines)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, instructions))
	assert.Equal(t, strings.Join(lines, "\n")+"\n", buf.String())
}

func TestRead_SkipsBlankLines(t *testing.T) {
	input := "123 -> x\n\n   \nNOT x -> h\n"
	instructions, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, instructions, 2)
	assert.Equal(t, "h", instructions[1].Target)
}
