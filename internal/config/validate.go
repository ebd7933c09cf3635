package config

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/distribution/reference"

	"github.com/imamik/gkerunner/internal/util/naming"
)

// ErrMissingRunnerToken is returned when no runner token was supplied.
var ErrMissingRunnerToken = errors.New("runner token is required: set " + EnvRunnerToken + " or pass --runner-token")

var (
	// GKE cluster and pool names: lowercase, start with a letter, max 40 chars.
	gkeNameRegex = regexp.MustCompile(`^[a-z]([-a-z0-9]{0,38}[a-z0-9])?$`)

	// Kubernetes namespace and object names (RFC 1123 label).
	dnsLabelRegex = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]{0,61}[a-z0-9])?$`)

	envNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// ValidLogLevels are the log levels understood by gitlab-runner.
var ValidLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"fatal": true,
	"panic": true,
}

// Validate checks the configuration and returns every problem found.
// It does not check the runner token; see RequireToken.
func (c *Config) Validate() error {
	var errs []error

	if c.Project == "" {
		errs = append(errs, errors.New("project is required"))
	}

	errs = append(errs, c.validateCluster()...)
	errs = append(errs, c.validateNodePools()...)

	if !dnsLabelRegex.MatchString(c.Namespace) {
		errs = append(errs, fmt.Errorf("namespace %q must be a DNS label", c.Namespace))
	}

	if len(c.Admins) == 0 {
		errs = append(errs, errors.New("admins must list at least one identity"))
	}
	for i, admin := range c.Admins {
		if strings.TrimSpace(admin) == "" {
			errs = append(errs, fmt.Errorf("admins[%d] is empty", i))
		}
	}

	errs = append(errs, c.validateRunner()...)

	return errors.Join(errs...)
}

// RequireToken fails when no runner token is set. Apply calls it before
// creating any cloud client.
func (c *Config) RequireToken() error {
	if strings.TrimSpace(c.RunnerToken) == "" {
		return ErrMissingRunnerToken
	}
	return nil
}

func (c *Config) validateCluster() []error {
	var errs []error

	if !gkeNameRegex.MatchString(c.Cluster.Name) {
		errs = append(errs, fmt.Errorf("cluster.name %q must be lowercase alphanumeric with hyphens, start with a letter and be at most 40 characters", c.Cluster.Name))
	}
	if c.Cluster.Zone == "" {
		errs = append(errs, errors.New("cluster.zone is required"))
	}

	return errs
}

func (c *Config) validateNodePools() []error {
	var errs []error

	if len(c.NodePools) == 0 {
		return []error{errors.New("at least one node pool is required")}
	}

	seen := make(map[string]bool, len(c.NodePools))
	for i, pool := range c.NodePools {
		prefix := fmt.Sprintf("node_pools[%d]", i)
		if pool.Name != "" {
			prefix = fmt.Sprintf("node pool %q", pool.Name)
		}

		switch {
		case !gkeNameRegex.MatchString(pool.Name):
			errs = append(errs, fmt.Errorf("%s: name must be lowercase alphanumeric with hyphens and start with a letter", prefix))
		case pool.Name == naming.DefaultNodePool:
			errs = append(errs, fmt.Errorf("%s: name is reserved, the GKE default pool is removed after cluster creation", prefix))
		case seen[pool.Name]:
			errs = append(errs, fmt.Errorf("%s: duplicate name", prefix))
		}
		seen[pool.Name] = true

		if pool.MachineType == "" {
			errs = append(errs, fmt.Errorf("%s: machine_type is required", prefix))
		}

		switch {
		case pool.Autoscaling != nil && pool.NodeCount != 0:
			errs = append(errs, fmt.Errorf("%s: node_count and autoscaling are mutually exclusive", prefix))
		case pool.Autoscaling != nil:
			a := pool.Autoscaling
			if a.MinNodes < 0 || a.MaxNodes < 1 || a.MinNodes > a.MaxNodes {
				errs = append(errs, fmt.Errorf("%s: autoscaling bounds must satisfy 0 <= min_nodes <= max_nodes and max_nodes >= 1", prefix))
			}
		case pool.NodeCount < 1:
			errs = append(errs, fmt.Errorf("%s: node_count must be at least 1", prefix))
		}
	}

	if !c.HasNonPreemptiblePool() {
		errs = append(errs, errors.New("at least one node pool must be non-preemptible to host the runner"))
	}

	return errs
}

func (c *Config) validateRunner() []error {
	var errs []error
	r := c.Runner

	if !dnsLabelRegex.MatchString(r.Name) {
		errs = append(errs, fmt.Errorf("runner.name %q must be a DNS label", r.Name))
	}

	if u, err := url.Parse(r.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("runner.url %q must be an absolute http(s) URL", r.URL))
	}

	if r.Concurrent < 1 {
		errs = append(errs, errors.New("runner.concurrent must be at least 1"))
	}
	if r.CheckInterval < 1 {
		errs = append(errs, errors.New("runner.check_interval must be at least 1 second"))
	}
	if !ValidLogLevels[r.LogLevel] {
		errs = append(errs, fmt.Errorf("runner.log_level %q is not a valid gitlab-runner log level", r.LogLevel))
	}

	images := []struct {
		field string
		ref   string
	}{
		{"runner.core_image", r.CoreImage},
		{"runner.helper_image", r.HelperImage},
		{"runner.build_image", r.BuildImage},
	}
	for _, img := range images {
		if _, err := reference.ParseNormalizedNamed(img.ref); err != nil {
			errs = append(errs, fmt.Errorf("%s %q is not a valid image reference: %w", img.field, img.ref, err))
		}
	}

	for name := range r.Env {
		if !envNameRegex.MatchString(name) {
			errs = append(errs, fmt.Errorf("runner.env: %q is not a valid environment variable name", name))
		}
	}

	return errs
}
