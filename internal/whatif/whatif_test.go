package whatif

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/specialistvlad/wiregrid/internal/circuit"
	"github.com/specialistvlad/wiregrid/internal/topology"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func buildCircuit(t *testing.T) *topology.Circuit {
	t.Helper()
	c, err := topology.BuildLines([]string{
		"3 -> b",
		"b LSHIFT 1 -> c",
		"c OR 1 -> a",
	})
	require.NoError(t, err)
	return c
}

func TestRun_ResultsInQueryOrder(t *testing.T) {
	c := buildCircuit(t)

	var queries []Query
	for i := range 50 {
		queries = append(queries, Query{
			Name:     fmt.Sprintf("b=%d", i),
			Target:   "a",
			Override: &Assignment{Wire: "b", Value: uint16(i)},
		})
	}
	queries = append(queries, Query{Name: "plain", Target: "a"})

	results, err := Run(context.Background(), c, queries, 8)
	require.NoError(t, err)
	require.Len(t, results, len(queries))

	for i := range 50 {
		assert.Equal(t, queries[i], results[i].Query)
		assert.Equal(t, uint16(i<<1|1), results[i].Signal, "query %s", queries[i].Name)
	}
	assert.Equal(t, uint16(7), results[50].Signal, "overrides must not leak between queries")
}

func TestRun_FirstErrorWins(t *testing.T) {
	c := buildCircuit(t)
	queries := []Query{
		{Name: "ok", Target: "a"},
		{Name: "broken", Target: "missing"},
	}

	results, err := Run(context.Background(), c, queries, 1)
	require.Error(t, err)
	assert.Nil(t, results)
	assert.True(t, errors.Is(err, circuit.ErrUnknownWire))
	assert.ErrorContains(t, err, `query "broken"`)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, buildCircuit(t), []Query{{Name: "a", Target: "a"}}, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnswer(t *testing.T) {
	c := buildCircuit(t)
	ctx := context.Background()

	v, err := Answer(ctx, c, Query{Target: "c"})
	require.NoError(t, err)
	assert.Equal(t, uint16(6), v)

	v, err = Answer(ctx, c, Query{Target: "c", Override: &Assignment{Wire: "b", Value: 0x8001}})
	require.NoError(t, err)
	assert.Equal(t, uint16(2), v)
}
