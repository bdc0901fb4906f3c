package signalstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGet(t *testing.T) {
	s := NewMemory(3)
	assert.Equal(t, 3, s.Len())

	// Nothing cached yet, not even the zero signal.
	_, ok := s.Get(1)
	assert.False(t, ok)

	s.Set(1, 0)
	v, ok := s.Get(1)
	assert.True(t, ok)
	assert.Equal(t, uint16(0), v)

	s.Set(2, 65535)
	v, ok = s.Get(2)
	assert.True(t, ok)
	assert.Equal(t, uint16(65535), v)
	assert.Equal(t, 2, s.Resolved())
}

func TestResolvingMarks(t *testing.T) {
	s := NewMemory(2)

	s.MarkResolving(0)
	assert.True(t, s.IsResolving(0))
	_, ok := s.Get(0)
	assert.False(t, ok, "an in-progress wire has no signal")

	s.ClearResolving(0)
	assert.False(t, s.IsResolving(0))

	s.MarkResolving(1)
	s.Set(1, 7)
	assert.False(t, s.IsResolving(1), "setting a signal ends resolution")

	// Clearing a resolved wire leaves its signal alone.
	s.ClearResolving(1)
	v, ok := s.Get(1)
	assert.True(t, ok)
	assert.Equal(t, uint16(7), v)
}

func TestReset(t *testing.T) {
	s := NewMemory(2)
	s.Set(0, 1)
	s.MarkResolving(1)

	s.Reset()

	_, ok := s.Get(0)
	assert.False(t, ok)
	assert.False(t, s.IsResolving(1))
	assert.Equal(t, 0, s.Resolved())
	assert.Equal(t, 2, s.Len())
}

func TestMemoryImplementsStore(t *testing.T) {
	var _ Store = NewMemory(0)
}
