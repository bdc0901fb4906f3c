// Package signalstore defines the cache layer of a circuit evaluation: the
// resolved signal of each wire and whether resolution of that wire is
// currently in progress.
//
// # Why Signal Store Exists
//
// The signal store separates **mutable evaluation state** from the
// **immutable wire graph** held by topology.Circuit. Gates never change once
// a circuit is built; only the cached signals do. Keeping them apart means a
// what-if evaluation is a new, empty store over the same circuit rather than
// a deep copy of the graph.
//
// # Lifecycle
//
//  1. **Created** empty, sized to the circuit, for one evaluation context
//  2. **Filled** by the evaluator as wires resolve, or by an override
//  3. **Reset** or discarded when the context is no longer needed
//
// A store belongs to exactly one evaluation context and is not safe for
// concurrent use. Concurrent what-if queries each get their own store.
package signalstore

// Store is the per-context cache of wire signals, addressed by wire id.
type Store interface {
	// Get returns the cached signal of wire id, if one has been set.
	Get(id int) (uint16, bool)

	// Set caches the signal of wire id and clears any in-progress mark.
	Set(id int, v uint16)

	// MarkResolving records that resolution of wire id has started.
	MarkResolving(id int)

	// ClearResolving removes the in-progress mark without caching a value.
	// Used when resolution fails.
	ClearResolving(id int)

	// IsResolving reports whether wire id is marked in progress.
	IsResolving(id int) bool

	// Reset forgets every cached signal and mark.
	Reset()

	// Len returns the number of wire slots.
	Len() int
}
