// Package topology holds the static structure of a circuit: which wires
// exist, which gate drives each of them, and which wires each gate reads.
//
// A Circuit is built once and never changes afterwards. It carries no signal
// values; those live in a signalstore owned by each evaluation context, so
// any number of contexts may share one Circuit concurrently.
//
// Wires are stored in an arena and addressed by integer id. Reference
// operands are bound to ids during Build, so evaluation never needs a name
// lookup for a wire that exists.
package topology

import (
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/wiregrid/internal/gate"
	"github.com/specialistvlad/wiregrid/internal/netlist"
)

// Unbound marks an input whose operand does not name a defined wire.
const Unbound = -1

// Input is a gate operand together with the wire id it is bound to.
type Input struct {
	Operand gate.Operand
	// Wire is the id of the referenced wire, or Unbound for literals and for
	// names no instruction defines. Binding uses the raw token, so a literal
	// written exactly as a wire name is bound to that wire.
	Wire int
}

// Circuit is the immutable wire graph.
type Circuit struct {
	names  []string
	gates  []gate.Gate
	inputs [][]Input
	index  map[string]int
}

// Build constructs a circuit from parsed instructions. When a wire is
// defined more than once the last definition wins.
func Build(instructions []netlist.Instruction) *Circuit {
	c := &Circuit{index: make(map[string]int, len(instructions))}

	for _, ins := range instructions {
		id, ok := c.index[ins.Target]
		if !ok {
			id = len(c.names)
			c.index[ins.Target] = id
			c.names = append(c.names, ins.Target)
			c.gates = append(c.gates, ins.Gate)
			continue
		}
		c.gates[id] = ins.Gate
	}

	c.inputs = make([][]Input, len(c.gates))
	for id, g := range c.gates {
		ops := g.Operands()
		in := make([]Input, len(ops))
		for i, op := range ops {
			in[i] = Input{Operand: op, Wire: Unbound}
			if ref, ok := c.index[op.String()]; ok {
				in[i].Wire = ref
			}
		}
		c.inputs[id] = in
	}
	return c
}

// BuildLines parses lines and builds a circuit from them. Nothing is built
// if any line is malformed.
func BuildLines(lines []string) (*Circuit, error) {
	instructions, err := netlist.Parse(lines)
	if err != nil {
		return nil, err
	}
	return Build(instructions), nil
}

// Len returns the number of wires.
func (c *Circuit) Len() int {
	return len(c.names)
}

// Lookup returns the id of the named wire.
func (c *Circuit) Lookup(name string) (int, bool) {
	id, ok := c.index[name]
	return id, ok
}

// Name returns the name of wire id.
func (c *Circuit) Name(id int) string {
	return c.names[id]
}

// Gate returns the gate driving wire id.
func (c *Circuit) Gate(id int) gate.Gate {
	return c.gates[id]
}

// Inputs returns the bound operands of wire id's gate. The slice must not be
// modified.
func (c *Circuit) Inputs(id int) []Input {
	return c.inputs[id]
}

// Names returns all wire names in sorted order.
func (c *Circuit) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	sort.Strings(names)
	return names
}

// Instructions returns the circuit as instructions sorted by target.
func (c *Circuit) Instructions() []netlist.Instruction {
	names := c.Names()
	out := make([]netlist.Instruction, 0, len(names))
	for _, name := range names {
		out = append(out, netlist.Instruction{Gate: c.gates[c.index[name]], Target: name})
	}
	return out
}

// String re-emits the circuit as a canonical netlist.
func (c *Circuit) String() string {
	var b strings.Builder
	for _, ins := range c.Instructions() {
		fmt.Fprintln(&b, ins.String())
	}
	return b.String()
}
