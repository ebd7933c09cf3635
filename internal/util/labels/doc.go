// Package labels provides consistent labeling for GCP resources and
// Kubernetes objects created by gkerunner.
//
// GCP resource labels only allow lowercase letters, digits, underscores and
// dashes in keys, so they use a gkerunner- prefix instead of a DNS domain.
// Kubernetes objects use the app label for selection plus the recommended
// app.kubernetes.io/managed-by label.
package labels
