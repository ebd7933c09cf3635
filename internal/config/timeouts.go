package config

import (
	"os"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	ClusterCreate  time.Duration // Cluster creation including default pool removal
	NodePoolCreate time.Duration // Creation of one node pool
	OperationPoll  time.Duration // Interval between GKE operation status reads
	LoadBalancerIP time.Duration // Wait for the session service external IP
	Apply          time.Duration // Whole apply run
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - GKERUNNER_TIMEOUT_CLUSTER_CREATE (default: 30m)
//   - GKERUNNER_TIMEOUT_NODE_POOL_CREATE (default: 20m)
//   - GKERUNNER_OPERATION_POLL_INTERVAL (default: 10s)
//   - GKERUNNER_TIMEOUT_LB_IP (default: 10m)
//   - GKERUNNER_TIMEOUT_APPLY (default: 90m)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		ClusterCreate:  parseDuration("GKERUNNER_TIMEOUT_CLUSTER_CREATE", 30*time.Minute),
		NodePoolCreate: parseDuration("GKERUNNER_TIMEOUT_NODE_POOL_CREATE", 20*time.Minute),
		OperationPoll:  parseDuration("GKERUNNER_OPERATION_POLL_INTERVAL", 10*time.Second),
		LoadBalancerIP: parseDuration("GKERUNNER_TIMEOUT_LB_IP", 10*time.Minute),
		Apply:          parseDuration("GKERUNNER_TIMEOUT_APPLY", 90*time.Minute),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set, invalid or not positive, the default is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}

	return d
}
