package testing

import (
	"context"
	"testing"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/gkerunner/internal/config"
	"github.com/imamik/gkerunner/internal/provisioning"
)

// TestContext returns a context with a reasonable timeout for tests.
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// FastTimeouts returns timeouts suitable for unit tests.
func FastTimeouts() *config.Timeouts {
	return &config.Timeouts{
		ClusterCreate:  5 * time.Second,
		NodePoolCreate: 5 * time.Second,
		OperationPoll:  time.Millisecond,
		LoadBalancerIP: 2 * time.Second,
		Apply:          10 * time.Second,
	}
}

// NewProvisioningContext returns a provisioning context with a silent
// observer and FastTimeouts. Background watchers may outlive the test, so
// the observer never writes to the test log.
func NewProvisioningContext(t *testing.T, cfg *config.Config) *provisioning.Context {
	t.Helper()
	ctx := provisioning.NewContext(TestContext(t), cfg)
	ctx.Observer = provisioning.NewLogObserver(logr.Discard())
	ctx.Timeouts = FastTimeouts()
	return ctx
}
