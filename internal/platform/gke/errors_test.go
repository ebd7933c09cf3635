package gke

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	notFound := fmt.Errorf("wrapped: %w", status.Error(codes.NotFound, "gone"))
	exists := status.Error(codes.AlreadyExists, "exists")
	busy := status.Error(codes.FailedPrecondition, "busy")
	plain := errors.New("plain")

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(exists))
	assert.False(t, IsNotFound(nil))

	assert.True(t, IsAlreadyExists(exists))
	assert.False(t, IsAlreadyExists(plain))

	assert.True(t, isClusterBusy(busy))
	assert.True(t, isClusterBusy(status.Error(codes.Aborted, "aborted")))
	assert.False(t, isClusterBusy(status.Error(codes.ResourceExhausted, "quota")))
	assert.False(t, isClusterBusy(status.Error(codes.Unavailable, "unavailable")))
	assert.False(t, isClusterBusy(status.Error(codes.PermissionDenied, "denied")))
	assert.False(t, isClusterBusy(plain))
}
