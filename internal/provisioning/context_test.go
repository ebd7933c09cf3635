package provisioning

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/gkerunner/internal/config"
)

func TestNewContext(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	ctx := NewContext(context.Background(), cfg)

	assert.Same(t, cfg, ctx.Config)
	assert.NotNil(t, ctx.State)
	assert.NotNil(t, ctx.Observer)
	assert.NotNil(t, ctx.Timeouts)
	assert.NotNil(t, ctx.Metrics)
	_, err := uuid.Parse(ctx.RunID)
	require.NoError(t, err)
}

func TestContext_WithContextSharesState(t *testing.T) {
	t.Parallel()

	ctx := NewContext(context.Background(), config.Default())
	cctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	derived := ctx.WithContext(cctx)
	assert.Same(t, ctx.State, derived.State)
	assert.Same(t, ctx.Metrics, derived.Metrics)
	assert.Equal(t, ctx.RunID, derived.RunID)

	cancel()
	assert.Error(t, derived.Err())
	assert.NoError(t, ctx.Err())
}
