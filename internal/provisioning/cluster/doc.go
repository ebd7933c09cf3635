// Package cluster provisions the GKE cluster, its node pools and the
// Kubernetes client used by everything deployed into it.
//
// The cluster node creates the cluster and removes the default pool GKE
// adds to it. One node per configured pool follows. The kube-client node
// runs after every pool, builds the kubeconfig and stores the client in the
// provisioning state.
package cluster
