// Package provisioning provides the shared types and the dependency graph
// used to provision a runner stack.
//
// # Subpackages
//
//   - cluster/: GKE cluster, node pools and the Kubernetes client
//
// # Core Types
//
// Graph holds named nodes with declared dependencies and runs them in
// topological waves. Nodes of one wave run in parallel.
// Context carries configuration, state, observer, timeouts and metrics.
// State accumulates results shared between nodes (cluster, node pools,
// kubeconfig, Kubernetes client).
package provisioning
