package stack

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	testutil "github.com/imamik/gkerunner/internal/testing"
)

func TestPreview(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Preview(&buf, testutil.NewConfigBuilder().WithToken("glrt-secret").Build()))
	out := buf.String()

	assert.Contains(t, out, "# GKE cluster projects/test-project/locations/us-west1-b/clusters/test-cluster\n")
	assert.Contains(t, out, "# GKE node pool projects/test-project/locations/us-west1-b/clusters/test-cluster/nodePools/scale-pool\n")
	assert.Contains(t, out, "loggingService: logging.googleapis.com/kubernetes")
	assert.NotContains(t, out, "glrt-secret")
	assert.Contains(t, out, Redacted)
	assert.NotContains(t, out, "session_server")

	docs := strings.Split(out, "---\n")
	require.Len(t, docs, 10)

	var kinds []string
	for _, doc := range docs[3:] {
		var m map[string]any
		require.NoError(t, yaml.Unmarshal([]byte(doc), &m))
		kinds = append(kinds, m["kind"].(string))
		assert.NotContains(t, m, "status")
	}
	assert.Equal(t, []string{
		"Namespace", "ClusterRoleBinding",
		"ServiceAccount", "Role", "RoleBinding", "Secret", "Deployment",
	}, kinds)
}

func TestPreview_Sessions(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Preview(&buf, testutil.NewConfigBuilder().WithSessions(true).Build()))

	out := buf.String()
	assert.Contains(t, out, "kind: Service\n")
	assert.Contains(t, out, "type: LoadBalancer")
	assert.Contains(t, out, KnownAfterApply+":8093")
}
