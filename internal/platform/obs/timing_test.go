package obs

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func TestTimeLogsRunIDAndOp(t *testing.T) {
	buf := captureLogs(t)

	ctx, id := WithRunID(context.Background())
	require.NotEmpty(t, id)
	assert.Equal(t, id, RunID(ctx))

	var err error
	Time(ctx, "pool.build")(&err)

	assert.Contains(t, buf.String(), `"op":"pool.build"`)
	assert.Contains(t, buf.String(), `"run_id":"`+id+`"`)
	assert.Contains(t, buf.String(), `"level":"info"`)
}

func TestTimeLogsError(t *testing.T) {
	buf := captureLogs(t)

	err := errors.New("boom")
	Time(context.Background(), "simulation.run")(&err)

	assert.Contains(t, buf.String(), `"error":"boom"`)
	assert.Contains(t, buf.String(), `"level":"error"`)
}
