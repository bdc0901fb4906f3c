package signalstore

// state is the cache state of a single wire slot.
type state uint8

const (
	unresolved state = iota
	resolving
	resolved
)

// Memory is a Store backed by two parallel slices indexed by wire id.
type Memory struct {
	values []uint16
	states []state
}

// NewMemory creates an empty store with one slot per wire.
func NewMemory(size int) *Memory {
	return &Memory{
		values: make([]uint16, size),
		states: make([]state, size),
	}
}

func (m *Memory) Get(id int) (uint16, bool) {
	if m.states[id] != resolved {
		return 0, false
	}
	return m.values[id], true
}

func (m *Memory) Set(id int, v uint16) {
	m.values[id] = v
	m.states[id] = resolved
}

func (m *Memory) MarkResolving(id int) {
	m.states[id] = resolving
}

func (m *Memory) ClearResolving(id int) {
	if m.states[id] == resolving {
		m.states[id] = unresolved
	}
}

func (m *Memory) IsResolving(id int) bool {
	return m.states[id] == resolving
}

func (m *Memory) Reset() {
	clear(m.values)
	clear(m.states)
}

func (m *Memory) Len() int {
	return len(m.states)
}

// Resolved returns how many wires currently hold a cached signal.
func (m *Memory) Resolved() int {
	n := 0
	for _, s := range m.states {
		if s == resolved {
			n++
		}
	}
	return n
}
