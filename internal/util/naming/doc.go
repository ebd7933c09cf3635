// Package naming provides the GKE resource paths and local names used by
// gkerunner.
//
// The GKE v1 API addresses every resource by a relative path such as
// projects/{project}/locations/{zone}/clusters/{cluster}. Building those
// paths in one place keeps request construction and test expectations in
// agreement.
package naming
