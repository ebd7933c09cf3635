package runner

import (
	"bytes"
	"fmt"
	"net"
	"sort"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/imamik/gkerunner/internal/config"
)

// Fixed values of the generated configuration.
const (
	Executor       = "kubernetes"
	SessionPort    = 8093
	SessionTimeout = 999
	BuildCPU       = "2000m"
	BuildMemory    = "1800Mi"
)

// Config is the logical config.toml document.
type Config struct {
	Concurrent    int            `toml:"concurrent"`
	CheckInterval int            `toml:"check_interval"`
	LogLevel      string         `toml:"log_level"`
	SessionServer *SessionServer `toml:"session_server,omitempty"`
	Runners       []Runner       `toml:"runners"`
}

// SessionServer enables interactive web terminals.
type SessionServer struct {
	SessionTimeout   int    `toml:"session_timeout"`
	AdvertiseAddress string `toml:"advertise_address"`
	ListenAddress    string `toml:"listen_address"`
}

// Runner is one [[runners]] entry.
type Runner struct {
	URL         string           `toml:"url"`
	Executor    string           `toml:"executor"`
	Token       string           `toml:"token"`
	Environment []string         `toml:"environment"`
	Kubernetes  KubernetesConfig `toml:"kubernetes"`
}

// KubernetesConfig configures the build pods of the Kubernetes executor.
type KubernetesConfig struct {
	Privileged    bool   `toml:"privileged"`
	Image         string `toml:"image,omitempty"`
	Namespace     string `toml:"namespace"`
	CPURequest    string `toml:"cpu_request"`
	MemoryRequest string `toml:"memory_request"`
	HelperImage   string `toml:"helper_image"`
}

// Params are the inputs of the runner component.
type Params struct {
	// Name of every Kubernetes object of the runner.
	Name      string
	Namespace string

	URL           string
	Token         string
	Concurrent    int
	CheckInterval int
	LogLevel      string

	CoreImage   string
	HelperImage string
	BuildImage  string

	Env map[string]string

	InteractiveSessions bool
}

// ParamsFromConfig extracts the runner parameters of cfg.
func ParamsFromConfig(cfg *config.Config) Params {
	r := cfg.Runner
	return Params{
		Name:                r.Name,
		Namespace:           cfg.Namespace,
		URL:                 r.URL,
		Token:               cfg.RunnerToken,
		Concurrent:          r.Concurrent,
		CheckInterval:       r.CheckInterval,
		LogLevel:            r.LogLevel,
		CoreImage:           r.CoreImage,
		HelperImage:         r.HelperImage,
		BuildImage:          r.BuildImage,
		Env:                 r.Env,
		InteractiveSessions: r.InteractiveSessions,
	}
}

// NewConfig builds the document without a session server. It is a pure
// function of p.
func NewConfig(p Params) *Config {
	return &Config{
		Concurrent:    p.Concurrent,
		CheckInterval: p.CheckInterval,
		LogLevel:      p.LogLevel,
		Runners: []Runner{{
			URL:         p.URL,
			Executor:    Executor,
			Token:       p.Token,
			Environment: Environment(p.Env),
			Kubernetes: KubernetesConfig{
				Privileged:    true,
				Image:         p.BuildImage,
				Namespace:     p.Namespace,
				CPURequest:    BuildCPU,
				MemoryRequest: BuildMemory,
				HelperImage:   p.HelperImage,
			},
		}},
	}
}

// WithSessionServer returns a copy of c whose session server advertises
// host on the session port.
func (c *Config) WithSessionServer(host string) *Config {
	port := strconv.Itoa(SessionPort)
	out := *c
	out.SessionServer = &SessionServer{
		SessionTimeout:   SessionTimeout,
		AdvertiseAddress: net.JoinHostPort(host, port),
		ListenAddress:    net.JoinHostPort("0.0.0.0", port),
	}
	return &out
}

// Render serializes c as TOML.
func (c *Config) Render() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode runner config: %w", err)
	}
	return buf.Bytes(), nil
}

// Environment renders env as KEY=VALUE entries sorted by key.
func Environment(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}
