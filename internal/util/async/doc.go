// Package async provides the concurrency primitives used by the provisioning
// graph.
//
// [RunParallel] executes the independent nodes of one graph wave
// concurrently and joins their errors. [Future] models a value that becomes
// known only after an upstream resource reports it, such as the external IP
// of a load balancer.
package async
