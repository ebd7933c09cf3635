// Package stack composes the full runner stack into one provisioning graph:
// the GKE cluster and its pools, the namespace and admin binding, and the
// runner component.
package stack
