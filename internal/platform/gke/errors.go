package gke

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// IsNotFound checks if an error indicates a resource was not found.
func IsNotFound(err error) bool {
	return hasCode(err, codes.NotFound)
}

// IsAlreadyExists checks if an error indicates a resource already exists.
func IsAlreadyExists(err error) bool {
	return hasCode(err, codes.AlreadyExists)
}

// isClusterBusy reports whether GKE rejected a call because another
// operation is running on the cluster. Every other error is fatal.
func isClusterBusy(err error) bool {
	return hasCode(err, codes.FailedPrecondition, codes.Aborted)
}

func hasCode(err error, want ...codes.Code) bool {
	if err == nil {
		return false
	}
	got := status.Code(err)
	for _, c := range want {
		if got == c {
			return true
		}
	}
	return false
}
