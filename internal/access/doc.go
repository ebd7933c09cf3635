// Package access declares the namespace of the runner stack and the
// cluster-wide admin grant.
//
// Both objects are applied with server-side apply as soon as the
// Kubernetes client is ready, and before any runner object.
package access
