// Package gke provides a wrapper around the Google Kubernetes Engine API.
//
// Every call is idempotent: resources that already exist are reused and
// long-running operations are polled until done. gRPC status codes classify
// missing and existing resources; a concurrent operation on the same
// cluster is retried.
package gke
