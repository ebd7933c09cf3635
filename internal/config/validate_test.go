package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := Default()
	cfg.Project = "my-project"
	cfg.Admins = []string{"admin@example.com"}
	return cfg
}

func TestValidate_Defaults(t *testing.T) {
	t.Parallel()
	require.NoError(t, validConfig().Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing project",
			mutate:  func(c *Config) { c.Project = "" },
			wantErr: "project is required",
		},
		{
			name:    "uppercase cluster name",
			mutate:  func(c *Config) { c.Cluster.Name = "Runner" },
			wantErr: "cluster.name",
		},
		{
			name:    "missing zone",
			mutate:  func(c *Config) { c.Cluster.Zone = "" },
			wantErr: "cluster.zone is required",
		},
		{
			name:    "no admins",
			mutate:  func(c *Config) { c.Admins = nil },
			wantErr: "admins must list at least one identity",
		},
		{
			name:    "blank admin",
			mutate:  func(c *Config) { c.Admins = []string{"a@example.com", " "} },
			wantErr: "admins[1] is empty",
		},
		{
			name:    "invalid namespace",
			mutate:  func(c *Config) { c.Namespace = "Gitlab_Runner" },
			wantErr: "namespace",
		},
		{
			name:    "no node pools",
			mutate:  func(c *Config) { c.NodePools = []NodePoolConfig{} },
			wantErr: "at least one node pool is required",
		},
		{
			name: "only preemptible pools",
			mutate: func(c *Config) {
				c.NodePools[0].Preemptible = true
			},
			wantErr: "non-preemptible",
		},
		{
			name: "reserved pool name",
			mutate: func(c *Config) {
				c.NodePools[0].Name = "default-pool"
			},
			wantErr: "reserved",
		},
		{
			name: "duplicate pool name",
			mutate: func(c *Config) {
				c.NodePools[1].Name = c.NodePools[0].Name
			},
			wantErr: "duplicate name",
		},
		{
			name: "node count and autoscaling",
			mutate: func(c *Config) {
				c.NodePools[1].NodeCount = 3
			},
			wantErr: "mutually exclusive",
		},
		{
			name: "inverted autoscaling bounds",
			mutate: func(c *Config) {
				c.NodePools[1].Autoscaling = &AutoscalingConfig{MinNodes: 5, MaxNodes: 2}
			},
			wantErr: "autoscaling bounds",
		},
		{
			name: "zero node count",
			mutate: func(c *Config) {
				c.NodePools[0].NodeCount = 0
			},
			wantErr: "node_count must be at least 1",
		},
		{
			name:    "negative concurrency",
			mutate:  func(c *Config) { c.Runner.Concurrent = -1 },
			wantErr: "runner.concurrent",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Runner.LogLevel = "verbose" },
			wantErr: "runner.log_level",
		},
		{
			name:    "relative URL",
			mutate:  func(c *Config) { c.Runner.URL = "gitlab.com" },
			wantErr: "runner.url",
		},
		{
			name:    "invalid image",
			mutate:  func(c *Config) { c.Runner.CoreImage = "Gitlab/Runner:latest" },
			wantErr: "runner.core_image",
		},
		{
			name:    "invalid env name",
			mutate:  func(c *Config) { c.Runner.Env = map[string]string{"1BAD": "x"} },
			wantErr: "runner.env",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_AggregatesErrors(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Project = ""
	cfg.Admins = nil
	cfg.Runner.Concurrent = -5

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project is required")
	assert.Contains(t, err.Error(), "admins must list at least one identity")
	assert.Contains(t, err.Error(), "runner.concurrent")
}

func TestRequireToken(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	assert.ErrorIs(t, cfg.RequireToken(), ErrMissingRunnerToken)

	cfg.RunnerToken = "   "
	assert.ErrorIs(t, cfg.RequireToken(), ErrMissingRunnerToken)

	cfg.RunnerToken = "abc"
	assert.NoError(t, cfg.RequireToken())
}
