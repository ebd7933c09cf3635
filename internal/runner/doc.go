// Package runner deploys a GitLab runner with the Kubernetes executor.
//
// The runner is configured through a generated config.toml stored in a
// Secret. The pod template carries a hash of the logical configuration, so
// a config change always rolls the pod, and a required node affinity keeps
// the pod off preemptible nodes. The runner cannot survive eviction: the
// jobs it was running leak their pods and secrets.
//
// With interactive sessions enabled, a LoadBalancer Service exposes the
// session server and the config is only rendered once the load balancer has
// an external address.
package runner
