package provisioning

import (
	"testing"

	"cloud.google.com/go/container/apiv1/containerpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState(t *testing.T) {
	t.Parallel()

	s := NewState()
	assert.Nil(t, s.Cluster())

	_, err := s.Kube()
	require.ErrorIs(t, err, ErrKubeClientNotReady)

	s.SetCluster(&containerpb.Cluster{Name: "ci", Endpoint: "10.0.0.1"})
	assert.Equal(t, "10.0.0.1", s.Cluster().GetEndpoint())

	s.SetNodePool(&containerpb.NodePool{Name: "runner-pool"})
	pool, ok := s.NodePool("runner-pool")
	require.True(t, ok)
	assert.Equal(t, "runner-pool", pool.GetName())

	_, ok = s.NodePool("scale-pool")
	assert.False(t, ok)

	s.SetKube([]byte("kubeconfig"), nil)
	assert.Equal(t, []byte("kubeconfig"), s.Kubeconfig())
}
