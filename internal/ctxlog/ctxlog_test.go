package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))

	FromContext(With(ctx, "query", "part1")).Info("answered")
	assert.Contains(t, buf.String(), "query=part1")
	assert.Contains(t, buf.String(), "msg=answered")
}

func TestFromContext_NoLogger(t *testing.T) {
	logger := FromContext(context.Background())
	assert.NotNil(t, logger)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	root := WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	query := With(root, "query", "what-if")
	wire := With(query, "wire", "a")
	FromContext(wire).Info("resolved")
	FromContext(root).Info("plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "query=what-if wire=a")
	assert.NotContains(t, lines[1], "query=")

	// Without an installed logger the derived one stays silent.
	silent := FromContext(With(context.Background(), "wire", "a"))
	assert.False(t, silent.Enabled(context.Background(), slog.LevelError))
}
