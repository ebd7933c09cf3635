package stack

import (
	"context"
	"fmt"

	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/imamik/gkerunner/internal/access"
	"github.com/imamik/gkerunner/internal/config"
	"github.com/imamik/gkerunner/internal/provisioning"
	"github.com/imamik/gkerunner/internal/provisioning/cluster"
	"github.com/imamik/gkerunner/internal/runner"
)

// Stack is the provisioning graph of one configuration.
type Stack struct {
	graph  *provisioning.Graph
	runner *runner.Component
}

// Build declares every node of the stack. The runner starts only after the
// namespace and the admin binding were applied.
func Build(cfg *config.Config, gke cluster.GKE, newKube cluster.KubeFactory) (*Stack, error) {
	g := provisioning.NewGraph()

	if err := cluster.NewProvisioner(gke, newKube).Register(g, cfg); err != nil {
		return nil, fmt.Errorf("failed to register cluster nodes: %w", err)
	}
	if err := access.Register(g); err != nil {
		return nil, fmt.Errorf("failed to register access nodes: %w", err)
	}

	rc := runner.NewComponent(runner.ParamsFromConfig(cfg))
	if err := rc.Register(g, access.NodeNamespace, access.NodeClusterAdminBinding); err != nil {
		return nil, fmt.Errorf("failed to register runner nodes: %w", err)
	}

	if _, err := g.Waves(); err != nil {
		return nil, err
	}
	return &Stack{graph: g, runner: rc}, nil
}

// Graph returns the provisioning graph.
func (s *Stack) Graph() *provisioning.Graph {
	return s.graph
}

// Runner returns the runner component.
func (s *Stack) Runner() *runner.Component {
	return s.runner
}

// Result summarizes a successful apply.
type Result struct {
	RunID      string
	Kubeconfig []byte
	ConfigHash string

	// SessionAddress is the advertised session server address, empty with
	// sessions disabled.
	SessionAddress string
}

// Options tune Apply.
type Options struct {
	// MetricsFile receives the run metrics in Prometheus text format.
	// Written after success and failure alike.
	MetricsFile string

	// Timeouts override the environment defaults.
	Timeouts *config.Timeouts
}

// Apply validates cfg and provisions the stack. Validation, including the
// runner token, happens before the first API call.
func Apply(ctx context.Context, cfg *config.Config, gke cluster.GKE, newKube cluster.KubeFactory, opts Options) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.RequireToken(); err != nil {
		return nil, err
	}

	s, err := Build(cfg, gke, newKube)
	if err != nil {
		return nil, err
	}

	pctx := provisioning.NewContext(ctx, cfg)
	if opts.Timeouts != nil {
		pctx.Timeouts = opts.Timeouts
	}
	logger := log.FromContext(pctx)
	logger.Info("applying runner stack",
		"project", cfg.Project,
		"cluster", cfg.Cluster.Name,
		"zone", cfg.Cluster.Zone,
		"sessions", cfg.Runner.InteractiveSessions,
	)

	runErr := s.graph.Run(pctx)

	if opts.MetricsFile != "" {
		if err := pctx.Metrics.WriteTextfile(opts.MetricsFile); err != nil {
			logger.Error(err, "failed to write metrics file", "path", opts.MetricsFile)
		}
	}
	if runErr != nil {
		return nil, runErr
	}

	res := &Result{RunID: pctx.RunID, Kubeconfig: pctx.State.Kubeconfig()}
	if r := s.runner.Rendered(); r != nil {
		res.ConfigHash = r.Hash
		if r.Config.SessionServer != nil {
			res.SessionAddress = r.Config.SessionServer.AdvertiseAddress
		}
	}
	return res, nil
}
