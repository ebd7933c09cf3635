// Package retry provides exponential backoff for operations that need to be
// polled or retried, such as long-running GKE operations and waiting for a
// load balancer address.
//
// [Do] retries until the operation succeeds, returns a [Permanent] error,
// runs out of attempts or the context ends.
package retry
