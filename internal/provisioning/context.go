package provisioning

import (
	"context"

	"github.com/google/uuid"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/imamik/gkerunner/internal/config"
)

// Context wraps all dependencies and state needed by a graph node.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Observer Observer
	Timeouts *config.Timeouts
	Metrics  *Metrics

	// RunID identifies one apply run in logs and metrics.
	RunID string
}

// NewContext creates a new provisioning context. The observer writes to the
// logr logger carried by ctx.
func NewContext(ctx context.Context, cfg *config.Config) *Context {
	runID := uuid.NewString()
	logger := log.FromContext(ctx).WithValues("run", runID)
	ctx = log.IntoContext(ctx, logger)

	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Observer: NewLogObserver(logger),
		Timeouts: config.LoadTimeouts(),
		Metrics:  NewMetrics(),
		RunID:    runID,
	}
}

// WithContext returns a shallow copy of c that uses ctx for cancellation.
// State, metrics and configuration are shared.
func (c *Context) WithContext(ctx context.Context) *Context {
	cp := *c
	cp.Context = ctx
	return &cp
}

// forNode returns a copy whose observer tags every event with the node name.
func (c *Context) forNode(name string) *Context {
	cp := *c
	cp.Observer = c.Observer.WithFields(map[string]string{"node": name})
	return &cp
}
