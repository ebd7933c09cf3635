// Package handlers implements the business logic for CLI commands.
//
// Handlers are framework-agnostic and can be tested independently of the
// CLI framework. External clients are created through package-level factory
// variables that tests replace.
package handlers

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/imamik/gkerunner/internal/config"
	"github.com/imamik/gkerunner/internal/k8sclient"
	"github.com/imamik/gkerunner/internal/platform/gke"
	"github.com/imamik/gkerunner/internal/provisioning/cluster"
	"github.com/imamik/gkerunner/internal/stack"
	"github.com/imamik/gkerunner/internal/util/prerequisites"
)

// GKEClient is the GKE client used by apply.
type GKEClient interface {
	cluster.GKE
	Close() error
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newGKEClient creates a GKE client for project.
	newGKEClient = func(ctx context.Context, project string, pollInterval time.Duration) (GKEClient, error) {
		return gke.NewRealClient(ctx, project, []gke.ClientOption{gke.WithPollInterval(pollInterval)})
	}

	// newKubeClient creates a Kubernetes client from kubeconfig bytes.
	newKubeClient cluster.KubeFactory = k8sclient.NewFromKubeconfig

	// loadConfigFile loads a config without validating it.
	loadConfigFile = config.LoadWithoutValidation

	// findConfigFile finds gkerunner.yaml in the working directory or a parent.
	findConfigFile = config.FindConfigFile

	// applyStack provisions the stack.
	applyStack = stack.Apply

	// getenv reads the environment.
	getenv = os.Getenv

	// checkPrereqs looks up the client tools the kubeconfig needs.
	checkPrereqs = prerequisites.CheckDefault
)

// ApplyOptions are the flags of the apply command.
type ApplyOptions struct {
	ConfigPath  string
	RunnerToken string
	Admins      []string
	MetricsFile string
}

// Apply provisions the cluster, the access objects and the runner.
//
// The configuration is validated and the runner token is required before
// any GKE client is created.
func Apply(ctx context.Context, opts ApplyOptions) error {
	cfg, err := loadConfig(opts.ConfigPath, opts.Admins)
	if err != nil {
		return err
	}

	cfg.RunnerToken = opts.RunnerToken
	if cfg.RunnerToken == "" {
		cfg.RunnerToken = getenv(config.EnvRunnerToken)
	}
	if err := cfg.RequireToken(); err != nil {
		return err
	}

	if err := checkPrerequisites(ctx); err != nil {
		return err
	}

	timeouts := config.LoadTimeouts()
	ctx, cancel := context.WithTimeout(ctx, timeouts.Apply)
	defer cancel()

	log.FromContext(ctx).Info("applying configuration", "cluster", cfg.Cluster.Name, "project", cfg.Project)

	client, err := newGKEClient(ctx, cfg.Project, timeouts.OperationPoll)
	if err != nil {
		return fmt.Errorf("failed to create GKE client: %w", err)
	}
	defer func() { _ = client.Close() }()

	res, err := applyStack(ctx, cfg, client, newKubeClient, stack.Options{
		MetricsFile: opts.MetricsFile,
		Timeouts:    timeouts,
	})
	if err != nil {
		return fmt.Errorf("apply failed: %w", err)
	}

	printOut(os.Stdout, renderApplySummary(cfg, res, cfg.KubeconfigPath))
	return nil
}

func checkPrerequisites(ctx context.Context) error {
	results := checkPrereqs()
	logger := log.FromContext(ctx)
	for _, r := range results.Results {
		if r.Found {
			logger.V(1).Info("found client tool", "tool", r.Tool.Name, "path", r.Path)
		} else if !r.Tool.Required {
			logger.Info("optional client tool not found", "tool", r.Tool.Name, "hint", r.Tool.InstallHint)
		}
	}
	if err := results.Error(); err != nil {
		return fmt.Errorf("prerequisites check failed: %w", err)
	}
	return nil
}

// loadConfig loads and validates the configuration. Admins given on the
// command line are added to the configured ones.
// If configPath is empty, it looks for gkerunner.yaml.
func loadConfig(configPath string, admins []string) (*config.Config, error) {
	if configPath == "" {
		path, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("no config file found: %w\nRun 'gkerunner init' to create one", err)
		}
		configPath = path
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	for _, admin := range admins {
		if !slices.Contains(cfg.Admins, admin) {
			cfg.Admins = append(cfg.Admins, admin)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}
	return cfg, nil
}
