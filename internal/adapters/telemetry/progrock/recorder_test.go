package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quant/internal/adapters/telemetry/progrock"
	"go.trai.ch/quant/internal/core/domain"
	"go.trai.ch/quant/internal/core/ports"
)

func TestNew(t *testing.T) {
	recorder := progrock.New()
	assert.NotNil(t, recorder)
}

func TestRecorder_Record(t *testing.T) {
	recorder := progrock.New()

	ctx, vertex := recorder.Record(context.Background(), "desk/equity")
	got, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, got)

	_, err := vertex.Stdout().Write([]byte("npv 42.5\n"))
	require.NoError(t, err)
	vertex.Log(domain.LogLevelDebug, "inputs unchanged")
	vertex.Complete(nil)

	_, failed := recorder.Record(context.Background(), "desk/bond")
	failed.Log(domain.LogLevelError, "crossed market")
	failed.Complete(errors.New("crossed market"))

	_, cached := recorder.Record(context.Background(), "desk/future")
	cached.Cached()
	cached.Complete(nil)

	require.NoError(t, recorder.Close())
}
