package handlers

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testutil "github.com/imamik/gkerunner/internal/testing"
)

func TestPreview(t *testing.T) {
	saveAndRestoreFactories(t)

	path := writeConfig(t, testutil.NewConfigBuilder().WithAdmins())
	var buf bytes.Buffer
	require.NoError(t, Preview(context.Background(), &buf, path, []string{"ops@example.com"}))

	out := buf.String()
	assert.Contains(t, out, "kind: ClusterRoleBinding")
	assert.Contains(t, out, "name: ops@example.com")
	assert.Contains(t, out, "kind: Deployment")
}

func TestPreview_InvalidConfig(t *testing.T) {
	saveAndRestoreFactories(t)

	path := writeConfig(t, testutil.NewConfigBuilder().WithProject(""))
	var buf bytes.Buffer
	err := Preview(context.Background(), &buf, path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project")
	assert.Empty(t, buf.String())
}
