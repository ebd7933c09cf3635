// Package k8sclient provides the Kubernetes client used to deploy the
// runner stack. It wraps k8s.io/client-go for Server-Side Apply of typed
// objects and for reading Service load balancer status, directly from
// kubeconfig bytes.
package k8sclient
