package config

// Config is the complete desired state of one runner stack.
type Config struct {
	// Project is the GCP project that owns the cluster.
	Project string `yaml:"project"`

	Cluster   ClusterConfig    `yaml:"cluster"`
	NodePools []NodePoolConfig `yaml:"node_pools"`

	// Namespace holds the runner and the build pods it spawns.
	Namespace string `yaml:"namespace"`

	// Admins are the identities (Google account emails) granted
	// cluster-admin through the cluster-admin-binding.
	Admins []string `yaml:"admins"`

	Runner RunnerConfig `yaml:"runner"`

	// KubeconfigPath is where the kubeconfig is written after the cluster
	// is ready. Empty disables writing.
	KubeconfigPath string `yaml:"kubeconfig_path,omitempty"`

	// RunnerToken authenticates the runner against GitLab. It is obtained
	// out-of-band through the runner registration API.
	RunnerToken string `yaml:"-"`
}

// ClusterConfig identifies the GKE cluster.
type ClusterConfig struct {
	Name string `yaml:"name"`
	Zone string `yaml:"zone"`

	// MasterVersion and NodeVersion pin GKE versions. Empty selects the
	// default version of the release channel.
	MasterVersion string `yaml:"master_version,omitempty"`
	NodeVersion   string `yaml:"node_version,omitempty"`

	// OAuthScopes are granted to every node of every pool.
	OAuthScopes []string `yaml:"oauth_scopes,omitempty"`
}

// NodePoolConfig describes one explicitly managed node pool. Exactly one of
// NodeCount and Autoscaling must be set.
type NodePoolConfig struct {
	Name        string             `yaml:"name"`
	MachineType string             `yaml:"machine_type"`
	Preemptible bool               `yaml:"preemptible"`
	NodeCount   int32              `yaml:"node_count,omitempty"`
	Autoscaling *AutoscalingConfig `yaml:"autoscaling,omitempty"`
	DiskType    string             `yaml:"disk_type,omitempty"`
}

// AutoscalingConfig bounds the size of an autoscaling pool.
type AutoscalingConfig struct {
	MinNodes int32 `yaml:"min_nodes"`
	MaxNodes int32 `yaml:"max_nodes"`
}

// RunnerConfig parameterizes the GitLab runner deployment.
type RunnerConfig struct {
	// Name is used for every Kubernetes object of the runner.
	Name string `yaml:"name,omitempty"`

	// URL is the GitLab instance the runner polls.
	URL string `yaml:"url,omitempty"`

	// Concurrent limits the number of jobs run at once.
	Concurrent int `yaml:"concurrent"`

	// CheckInterval is the job poll interval in seconds.
	CheckInterval int    `yaml:"check_interval,omitempty"`
	LogLevel      string `yaml:"log_level,omitempty"`

	CoreImage   string `yaml:"core_image"`
	HelperImage string `yaml:"helper_image"`

	// BuildImage is the default image of jobs that do not name one.
	BuildImage string `yaml:"build_image,omitempty"`

	// Env is injected into every job.
	Env map[string]string `yaml:"env,omitempty"`

	// InteractiveSessions exposes the session server through a
	// LoadBalancer service for interactive web terminals.
	InteractiveSessions bool `yaml:"interactive_sessions"`
}

// HasNonPreemptiblePool reports whether at least one pool can host
// workloads that must not be evicted.
func (c *Config) HasNonPreemptiblePool() bool {
	for _, p := range c.NodePools {
		if !p.Preemptible {
			return true
		}
	}
	return false
}

// IsAutoscaling reports whether the pool size is managed by the autoscaler.
func (p NodePoolConfig) IsAutoscaling() bool {
	return p.Autoscaling != nil
}
