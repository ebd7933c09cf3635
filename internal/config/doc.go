// Package config defines the gkerunner configuration model.
//
// A [Config] describes the GKE cluster, its node pools, the namespace and
// admin allow-list, and the GitLab runner deployment. It is read from a YAML
// file (gkerunner.yaml by default), completed with defaults and validated
// before any cloud API is touched. The runner registration token is never
// stored in the file; it comes from the GITLAB_RUNNER_TOKEN environment
// variable or a command line flag.
package config
