package testing

import (
	"context"

	"cloud.google.com/go/container/apiv1/containerpb"
	"github.com/stretchr/testify/mock"
)

// MockClusterManager is a mock implementation of the GKE ClusterManager
// interface.
type MockClusterManager struct {
	mock.Mock
}

// NewMockClusterManager creates a new MockClusterManager.
func NewMockClusterManager() *MockClusterManager {
	return &MockClusterManager{}
}

// CreateCluster records the call and returns the scripted operation.
func (m *MockClusterManager) CreateCluster(ctx context.Context, req *containerpb.CreateClusterRequest) (*containerpb.Operation, error) {
	args := m.Called(ctx, req)
	return operation(args.Get(0)), args.Error(1)
}

// GetCluster records the call and returns the scripted cluster.
func (m *MockClusterManager) GetCluster(ctx context.Context, req *containerpb.GetClusterRequest) (*containerpb.Cluster, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*containerpb.Cluster), args.Error(1)
}

// CreateNodePool records the call and returns the scripted operation.
func (m *MockClusterManager) CreateNodePool(ctx context.Context, req *containerpb.CreateNodePoolRequest) (*containerpb.Operation, error) {
	args := m.Called(ctx, req)
	return operation(args.Get(0)), args.Error(1)
}

// GetNodePool records the call and returns the scripted node pool.
func (m *MockClusterManager) GetNodePool(ctx context.Context, req *containerpb.GetNodePoolRequest) (*containerpb.NodePool, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*containerpb.NodePool), args.Error(1)
}

// DeleteNodePool records the call and returns the scripted operation.
func (m *MockClusterManager) DeleteNodePool(ctx context.Context, req *containerpb.DeleteNodePoolRequest) (*containerpb.Operation, error) {
	args := m.Called(ctx, req)
	return operation(args.Get(0)), args.Error(1)
}

// GetOperation records the call and returns the scripted operation.
func (m *MockClusterManager) GetOperation(ctx context.Context, req *containerpb.GetOperationRequest) (*containerpb.Operation, error) {
	args := m.Called(ctx, req)
	return operation(args.Get(0)), args.Error(1)
}

// Close records the call.
func (m *MockClusterManager) Close() error {
	args := m.Called()
	return args.Error(0)
}

func operation(v any) *containerpb.Operation {
	if v == nil {
		return nil
	}
	return v.(*containerpb.Operation)
}
