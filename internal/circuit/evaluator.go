// Package circuit resolves wire signals over a topology.Circuit.
//
// An Evaluator is one evaluation context: the shared, immutable circuit plus
// a private signal store. Resolution is lazy and memoized. The first request
// for a wire evaluates its gate and every wire it depends on, and caches each
// result so later requests, and other gates sharing the same input, reuse it.
//
// Resolution walks the graph depth-first with an explicit stack. A wire met
// again while it is still on the stack ends resolution with a
// CyclicReferenceError instead of recursing forever.
//
// Evaluators are not safe for concurrent use. Use Fresh to get an
// independent context over the same circuit for each goroutine.
package circuit

import (
	"context"
	"strconv"

	"github.com/specialistvlad/wiregrid/internal/ctxlog"
	"github.com/specialistvlad/wiregrid/internal/signalstore"
	"github.com/specialistvlad/wiregrid/internal/topology"
)

// Stats counts the work an evaluation context has done.
type Stats struct {
	// Evaluations is the number of gates computed.
	Evaluations int
	// Hits is the number of Resolve calls answered straight from the cache.
	Hits int
}

// Evaluator is a single evaluation context over a circuit.
type Evaluator struct {
	circuit *topology.Circuit
	store   signalstore.Store
	stats   Stats
}

// New creates an evaluation context with an empty cache.
func New(c *topology.Circuit) *Evaluator {
	return NewWithStore(c, signalstore.NewMemory(c.Len()))
}

// NewWithStore creates an evaluation context backed by the given store. The
// store must have one slot per wire and must not be shared.
func NewWithStore(c *topology.Circuit, store signalstore.Store) *Evaluator {
	return &Evaluator{circuit: c, store: store}
}

// Fresh returns a new context over the same circuit with every cache empty.
// The receiver is left untouched.
func (e *Evaluator) Fresh() *Evaluator {
	return New(e.circuit)
}

// Circuit returns the circuit this context evaluates.
func (e *Evaluator) Circuit() *topology.Circuit {
	return e.circuit
}

// Stats returns the work counters of this context.
func (e *Evaluator) Stats() Stats {
	return e.stats
}

// Reset clears every cached signal, including overrides.
func (e *Evaluator) Reset() {
	e.store.Reset()
	e.stats = Stats{}
}

// Resolve returns the signal on the named wire.
func (e *Evaluator) Resolve(ctx context.Context, name string) (uint16, error) {
	id, ok := e.circuit.Lookup(name)
	if !ok {
		return 0, &UnknownWireError{Wire: name}
	}

	logger := ctxlog.FromContext(ctx)
	if v, ok := e.store.Get(id); ok {
		e.stats.Hits++
		logger.Debug("Wire resolved from cache.", "wire", name, "signal", v)
		return v, nil
	}

	before := e.stats.Evaluations
	v, err := e.resolve(id)
	if err != nil {
		logger.Debug("Wire resolution failed.", "wire", name, "error", err)
		return 0, err
	}
	logger.Debug("Wire resolved.", "wire", name, "signal", v, "evaluations", e.stats.Evaluations-before)
	return v, nil
}

// ResolveAll resolves every wire and returns the signals by name.
func (e *Evaluator) ResolveAll(ctx context.Context) (map[string]uint16, error) {
	signals := make(map[string]uint16, e.circuit.Len())
	for _, name := range e.circuit.Names() {
		v, err := e.Resolve(ctx, name)
		if err != nil {
			return nil, err
		}
		signals[name] = v
	}
	return signals, nil
}

// Override forces the named wire's signal, bypassing its gate until the next
// Override or Reset. Every other cached signal is dropped first, so nothing
// computed under the previous inputs survives. A context holds at most one
// override.
func (e *Evaluator) Override(ctx context.Context, name string, v uint16) error {
	id, ok := e.circuit.Lookup(name)
	if !ok {
		return &UnknownWireError{Wire: name}
	}
	e.store.Reset()
	e.store.Set(id, v)
	ctxlog.FromContext(ctx).Debug("Wire overridden.", "wire", name, "signal", v)
	return nil
}

// OverrideAndResolve answers "what would target carry if overrideName held
// v" in a fresh context. The receiver's cache is neither read nor written.
func (e *Evaluator) OverrideAndResolve(ctx context.Context, overrideName string, v uint16, target string) (uint16, error) {
	return OverrideAndResolve(ctx, e.circuit, overrideName, v, target)
}

// OverrideAndResolve builds a fresh context over c, forces overrideName to v
// and resolves target.
func OverrideAndResolve(ctx context.Context, c *topology.Circuit, overrideName string, v uint16, target string) (uint16, error) {
	e := New(c)
	if err := e.Override(ctx, overrideName, v); err != nil {
		return 0, err
	}
	if _, ok := c.Lookup(target); !ok {
		return 0, &UnknownWireError{Wire: target}
	}
	return e.Resolve(ctx, target)
}

// resolve evaluates wire root and everything it depends on that is not yet
// cached. Each iteration looks at the wire on top of the stack: if an input
// is still unresolved it is pushed, otherwise the gate is applied, cached and
// popped.
func (e *Evaluator) resolve(root int) (uint16, error) {
	stack := []int{root}
	e.store.MarkResolving(root)

	for len(stack) > 0 {
		id := stack[len(stack)-1]

		var signals [2]uint16
		next := topology.Unbound
		for i, in := range e.circuit.Inputs(id) {
			if in.Wire == topology.Unbound {
				v, err := e.unbound(id, in)
				if err != nil {
					e.unwind(stack)
					return 0, err
				}
				signals[i] = v
				continue
			}
			if v, ok := e.store.Get(in.Wire); ok {
				signals[i] = v
				continue
			}
			if e.store.IsResolving(in.Wire) {
				err := e.cycle(stack, in.Wire)
				e.unwind(stack)
				return 0, err
			}
			next = in.Wire
			break
		}

		if next != topology.Unbound {
			e.store.MarkResolving(next)
			stack = append(stack, next)
			continue
		}

		e.store.Set(id, e.circuit.Gate(id).Apply(signals[0], signals[1]))
		e.stats.Evaluations++
		stack = stack[:len(stack)-1]
	}

	v, _ := e.store.Get(root)
	return v, nil
}

// unbound produces the signal of an operand that is not bound to a wire: a
// literal, or a name that must itself read as a decimal signal.
func (e *Evaluator) unbound(id int, in topology.Input) (uint16, error) {
	if !in.Operand.IsRef() {
		return in.Operand.Value, nil
	}
	v, err := strconv.ParseUint(in.Operand.Wire, 10, 16)
	if err != nil {
		return 0, &MalformedOperandError{Wire: e.circuit.Name(id), Token: in.Operand.Wire}
	}
	return uint16(v), nil
}

// cycle builds the error for a reference from the top of stack back to the
// in-progress wire closing.
func (e *Evaluator) cycle(stack []int, closing int) error {
	start := 0
	for i, id := range stack {
		if id == closing {
			start = i
			break
		}
	}
	path := make([]string, 0, len(stack)-start+1)
	for _, id := range stack[start:] {
		path = append(path, e.circuit.Name(id))
	}
	path = append(path, e.circuit.Name(closing))
	return &CyclicReferenceError{Path: path}
}

// unwind drops the in-progress marks of every wire still on the stack so a
// failed resolution leaves no trace in the cache.
func (e *Evaluator) unwind(stack []int) {
	for _, id := range stack {
		e.store.ClearResolving(id)
	}
}
