package provisioning

import (
	"errors"
	"sync"

	"cloud.google.com/go/container/apiv1/containerpb"

	"github.com/imamik/gkerunner/internal/k8sclient"
)

// ErrKubeClientNotReady is returned when a node needs the Kubernetes client
// before the node that builds it has run.
var ErrKubeClientNotReady = errors.New("kubernetes client is not ready")

// State holds the shared results of graph nodes.
// It is progressively populated as nodes complete and is read by the
// nodes that depend on them. Nodes of one wave write concurrently, so every
// access goes through the accessors.
type State struct {
	mu sync.RWMutex

	cluster    *containerpb.Cluster
	nodePools  map[string]*containerpb.NodePool
	kubeconfig []byte
	kube       k8sclient.Client
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{
		nodePools: make(map[string]*containerpb.NodePool),
	}
}

// SetCluster records the provisioned cluster.
func (s *State) SetCluster(c *containerpb.Cluster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cluster = c
}

// Cluster returns the provisioned cluster, or nil.
func (s *State) Cluster() *containerpb.Cluster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cluster
}

// SetNodePool records a provisioned node pool.
func (s *State) SetNodePool(p *containerpb.NodePool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodePools[p.GetName()] = p
}

// NodePool returns the provisioned node pool with the given name.
func (s *State) NodePool(name string) (*containerpb.NodePool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.nodePools[name]
	return p, ok
}

// SetKube records the kubeconfig and the client built from it.
func (s *State) SetKube(kubeconfig []byte, client k8sclient.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kubeconfig = kubeconfig
	s.kube = client
}

// Kubeconfig returns the kubeconfig of the cluster, or nil.
func (s *State) Kubeconfig() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kubeconfig
}

// Kube returns the Kubernetes client.
func (s *State) Kube() (k8sclient.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.kube == nil {
		return nil, ErrKubeClientNotReady
	}
	return s.kube, nil
}
