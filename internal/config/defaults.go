package config

// Default returns a configuration with every default applied. Project and
// Admins are left empty because they cannot be guessed.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills every zero-valued field with its default. Explicitly
// empty maps and lists (for example `env: {}`) are kept.
func (c *Config) ApplyDefaults() {
	if c.Cluster.Name == "" {
		c.Cluster.Name = DefaultClusterName
	}
	if c.Cluster.Zone == "" {
		c.Cluster.Zone = DefaultZone
	}
	if c.Cluster.OAuthScopes == nil {
		c.Cluster.OAuthScopes = append([]string(nil), DefaultOAuthScopes...)
	}

	if c.NodePools == nil {
		c.NodePools = DefaultNodePools()
	}
	for i := range c.NodePools {
		if c.NodePools[i].MachineType == "" {
			c.NodePools[i].MachineType = DefaultMachineType
		}
	}

	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	if c.KubeconfigPath == "" {
		c.KubeconfigPath = DefaultKubeconfig
	}

	r := &c.Runner
	if r.Name == "" {
		r.Name = DefaultRunnerName
	}
	if r.URL == "" {
		r.URL = DefaultGitLabURL
	}
	if r.Concurrent == 0 {
		r.Concurrent = DefaultConcurrent
	}
	if r.CheckInterval == 0 {
		r.CheckInterval = DefaultCheckInterval
	}
	if r.LogLevel == "" {
		r.LogLevel = DefaultLogLevel
	}
	if r.CoreImage == "" {
		r.CoreImage = DefaultCoreImage
	}
	if r.HelperImage == "" {
		r.HelperImage = DefaultHelperImage
	}
	if r.BuildImage == "" {
		r.BuildImage = DefaultBuildImage
	}
	if r.Env == nil {
		r.Env = DefaultEnv()
	}
}
