// Package testing provides test utilities, builders, and fixtures for unit tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - ConfigBuilder: Fluent builder for creating test configurations
//   - MockClusterManager: testify mock of the GKE API
//   - FakeKubeClient: records applied Kubernetes objects and scripts
//     load balancer addresses
//   - Fixtures: GKE responses for common scenarios
//
// Usage:
//
//	cfg := testing.NewConfigBuilder().
//	    WithProject("test-project").
//	    WithSessions(true).
//	    Build()
//
//	kube := testing.NewFakeKubeClient().WithLoadBalancerAddresses("", "34.1.2.3")
package testing
