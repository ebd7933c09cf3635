package testing

import (
	"maps"
	"slices"

	"github.com/imamik/gkerunner/internal/config"
)

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfigBuilder creates a new ConfigBuilder with a valid, defaulted
// configuration and a runner token.
func NewConfigBuilder() *ConfigBuilder {
	cfg := config.Default()
	cfg.Project = "test-project"
	cfg.Cluster.Name = "test-cluster"
	cfg.Admins = []string{"admin@example.com"}
	cfg.RunnerToken = "test-token"
	cfg.KubeconfigPath = ""
	return &ConfigBuilder{cfg: *cfg}
}

// WithProject sets the GCP project.
func (b *ConfigBuilder) WithProject(project string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Project = project
	return nb
}

// WithClusterName sets the cluster name.
func (b *ConfigBuilder) WithClusterName(name string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Cluster.Name = name
	return nb
}

// WithAdmins replaces the admin allow-list.
func (b *ConfigBuilder) WithAdmins(admins ...string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Admins = admins
	return nb
}

// WithToken sets the runner token.
func (b *ConfigBuilder) WithToken(token string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.RunnerToken = token
	return nb
}

// WithConcurrent sets the runner concurrency.
func (b *ConfigBuilder) WithConcurrent(n int) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Runner.Concurrent = n
	return nb
}

// WithEnv replaces the job environment.
func (b *ConfigBuilder) WithEnv(env map[string]string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Runner.Env = maps.Clone(env)
	return nb
}

// WithSessions toggles interactive sessions.
func (b *ConfigBuilder) WithSessions(enabled bool) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Runner.InteractiveSessions = enabled
	return nb
}

// WithNamespace sets the runner namespace.
func (b *ConfigBuilder) WithNamespace(ns string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Namespace = ns
	return nb
}

// WithKubeconfigPath sets where the kubeconfig is written.
func (b *ConfigBuilder) WithKubeconfigPath(path string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.KubeconfigPath = path
	return nb
}

// Build returns a copy of the configuration.
func (b *ConfigBuilder) Build() *config.Config {
	cfg := b.clone().cfg
	return &cfg
}

func (b *ConfigBuilder) clone() *ConfigBuilder {
	cfg := b.cfg
	cfg.Admins = slices.Clone(b.cfg.Admins)
	cfg.Runner.Env = maps.Clone(b.cfg.Runner.Env)
	cfg.Cluster.OAuthScopes = slices.Clone(b.cfg.Cluster.OAuthScopes)
	cfg.NodePools = make([]config.NodePoolConfig, len(b.cfg.NodePools))
	for i, p := range b.cfg.NodePools {
		if p.Autoscaling != nil {
			a := *p.Autoscaling
			p.Autoscaling = &a
		}
		cfg.NodePools[i] = p
	}
	return &ConfigBuilder{cfg: cfg}
}
