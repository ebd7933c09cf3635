package testing

import (
	"encoding/base64"
	"strings"

	"cloud.google.com/go/container/apiv1/containerpb"
	"github.com/stretchr/testify/mock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// TestCACert is a placeholder CA certificate used in cluster fixtures.
var TestCACert = []byte("-----BEGIN CERTIFICATE-----\nMIIBtest\n-----END CERTIFICATE-----\n")

// NotFound returns a gRPC NotFound error.
func NotFound(what string) error {
	return status.Errorf(codes.NotFound, "%s not found", what)
}

// AlreadyExists returns a gRPC AlreadyExists error.
func AlreadyExists(what string) error {
	return status.Errorf(codes.AlreadyExists, "%s already exists", what)
}

// Busy returns the error GKE reports while another operation runs on the
// cluster.
func Busy() error {
	return status.Error(codes.FailedPrecondition, "cluster is running incompatible operation")
}

// DoneOperation returns a finished operation.
func DoneOperation(name string) *containerpb.Operation {
	return &containerpb.Operation{Name: name, Status: containerpb.Operation_DONE}
}

// RunningOperation returns an operation still in progress.
func RunningOperation(name string) *containerpb.Operation {
	return &containerpb.Operation{Name: name, Status: containerpb.Operation_RUNNING}
}

// RunningCluster returns a ready cluster with endpoint and CA.
func RunningCluster(name string) *containerpb.Cluster {
	return &containerpb.Cluster{
		Name:     name,
		Status:   containerpb.Cluster_RUNNING,
		Endpoint: "35.1.2.3",
		MasterAuth: &containerpb.MasterAuth{
			ClusterCaCertificate: base64.StdEncoding.EncodeToString(TestCACert),
		},
	}
}

// RunningNodePool returns a ready node pool.
func RunningNodePool(name string, preemptible bool) *containerpb.NodePool {
	return &containerpb.NodePool{
		Name:   name,
		Status: containerpb.NodePool_RUNNING,
		Config: &containerpb.NodeConfig{Preemptible: preemptible},
	}
}

// NameSuffix matches GKE requests whose resource name ends with suffix.
func NameSuffix(suffix string) any {
	return mock.MatchedBy(func(req interface{ GetName() string }) bool {
		return strings.HasSuffix(req.GetName(), suffix)
	})
}

// ExpectNewCluster scripts a cluster that does not exist yet and is
// created by one operation.
func (m *MockClusterManager) ExpectNewCluster(name string) *MockClusterManager {
	m.On("GetCluster", mock.Anything, NameSuffix("/clusters/"+name)).Return(nil, NotFound("cluster")).Once()
	m.On("CreateCluster", mock.Anything, mock.Anything).Return(DoneOperation("create-cluster"), nil).Once()
	m.On("GetCluster", mock.Anything, NameSuffix("/clusters/"+name)).Return(RunningCluster(name), nil)
	return m
}

// ExpectExistingCluster scripts a cluster that is already running.
func (m *MockClusterManager) ExpectExistingCluster(name string) *MockClusterManager {
	m.On("GetCluster", mock.Anything, NameSuffix("/clusters/"+name)).Return(RunningCluster(name), nil)
	return m
}

// ExpectDefaultPoolRemoval scripts the deletion of the default pool.
func (m *MockClusterManager) ExpectDefaultPoolRemoval() *MockClusterManager {
	m.On("GetNodePool", mock.Anything, NameSuffix("/nodePools/default-pool")).Return(RunningNodePool("default-pool", false), nil).Once()
	m.On("DeleteNodePool", mock.Anything, NameSuffix("/nodePools/default-pool")).Return(DoneOperation("delete-default-pool"), nil).Once()
	return m
}

// ExpectDefaultPoolGone scripts a cluster whose default pool was already
// removed.
func (m *MockClusterManager) ExpectDefaultPoolGone() *MockClusterManager {
	m.On("GetNodePool", mock.Anything, NameSuffix("/nodePools/default-pool")).Return(nil, NotFound("node pool"))
	return m
}

// ExpectNewNodePool scripts a node pool that does not exist yet.
func (m *MockClusterManager) ExpectNewNodePool(name string, preemptible bool) *MockClusterManager {
	m.On("GetNodePool", mock.Anything, NameSuffix("/nodePools/"+name)).Return(nil, NotFound("node pool")).Once()
	m.On("CreateNodePool", mock.Anything, mock.MatchedBy(func(req *containerpb.CreateNodePoolRequest) bool {
		return req.GetNodePool().GetName() == name
	})).Return(DoneOperation("create-"+name), nil).Once()
	m.On("GetNodePool", mock.Anything, NameSuffix("/nodePools/"+name)).Return(RunningNodePool(name, preemptible), nil)
	return m
}

// ExpectExistingNodePool scripts a node pool that is already running.
func (m *MockClusterManager) ExpectExistingNodePool(name string, preemptible bool) *MockClusterManager {
	m.On("GetNodePool", mock.Anything, NameSuffix("/nodePools/"+name)).Return(RunningNodePool(name, preemptible), nil)
	return m
}
