package config

// Environment variables read by gkerunner.
const (
	// EnvRunnerToken holds the GitLab runner authentication token.
	EnvRunnerToken = "GITLAB_RUNNER_TOKEN" // #nosec G101
)

// Defaults of the runner stack.
const (
	DefaultClusterName   = "gitlab-runner"
	DefaultZone          = "us-west1-b"
	DefaultNamespace     = "gitlab-runner"
	DefaultMachineType   = "n1-highcpu-8"
	DefaultRunnerName    = "gitlab-runner"
	DefaultGitLabURL     = "https://gitlab.com/"
	DefaultConcurrent    = 50
	DefaultCheckInterval = 3
	DefaultLogLevel      = "info"
	DefaultCoreImage     = "gitlab/gitlab-runner:alpine-v11.3.1"
	DefaultHelperImage   = "pulumi-packs/gitlab-runner-helper-umask-fix:v11.3.1"
	DefaultBuildImage    = "ubuntu:16.04"
	DefaultKubeconfig    = "kubeconfig"
)

// DefaultOAuthScopes are granted to the nodes of every pool.
var DefaultOAuthScopes = []string{
	"https://www.googleapis.com/auth/compute",
	"https://www.googleapis.com/auth/devstorage.read_write",
	"https://www.googleapis.com/auth/logging.write",
	"https://www.googleapis.com/auth/monitoring",
	"https://www.googleapis.com/auth/servicecontrol",
	"https://www.googleapis.com/auth/service.management.readonly",
	"https://www.googleapis.com/auth/trace.append",
}

// DefaultEnv is set for every job. Docker-in-docker builds need both.
func DefaultEnv() map[string]string {
	return map[string]string{
		"DOCKER_HOST":   "tcp://localhost:2375",
		"DOCKER_DRIVER": "overlay2",
	}
}

// DefaultNodePools returns a small non-preemptible pool for the runner
// itself and an autoscaling preemptible pool for build pods.
func DefaultNodePools() []NodePoolConfig {
	return []NodePoolConfig{
		{
			Name:        "runner-pool",
			MachineType: DefaultMachineType,
			Preemptible: false,
			NodeCount:   1,
		},
		{
			Name:        "scale-pool",
			MachineType: DefaultMachineType,
			Preemptible: true,
			Autoscaling: &AutoscalingConfig{MinNodes: 0, MaxNodes: 20},
			DiskType:    "pd-ssd",
		},
	}
}
