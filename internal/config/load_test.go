package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
project: my-project
cluster:
  name: ci
  zone: europe-west1-b
admins:
  - alice@example.com
  - bob@example.com
runner:
  concurrent: 10
  env:
    FOO: bar
  interactive_sessions: true
`

func TestLoadFromBytes(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromBytes([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "my-project", cfg.Project)
	assert.Equal(t, "ci", cfg.Cluster.Name)
	assert.Equal(t, "europe-west1-b", cfg.Cluster.Zone)
	assert.Equal(t, []string{"alice@example.com", "bob@example.com"}, cfg.Admins)
	assert.Equal(t, 10, cfg.Runner.Concurrent)
	assert.Equal(t, map[string]string{"FOO": "bar"}, cfg.Runner.Env)
	assert.True(t, cfg.Runner.InteractiveSessions)

	// Defaults fill the rest.
	assert.Equal(t, DefaultCoreImage, cfg.Runner.CoreImage)
	assert.Len(t, cfg.NodePools, 2)
}

func TestLoadFromBytes_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := LoadFromBytes([]byte("project: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFilename)
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ci", cfg.Cluster.Name)
}

func TestLoad_ValidationFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFilename)
	require.NoError(t, os.WriteFile(path, []byte("cluster:\n  name: ci\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project is required")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestSave_OmitsToken(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.RunnerToken = "super-secret"

	path := filepath.Join(t.TempDir(), DefaultConfigFilename)
	require.NoError(t, Save(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "super-secret")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, loaded.RunnerToken)
	assert.Equal(t, cfg.Project, loaded.Project)
	assert.Equal(t, cfg.NodePools, loaded.NodePools)
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, DefaultConfigFilename), []byte(sampleYAML), 0o600))

	t.Chdir(nested)

	path, err := FindConfigFile()
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(filepath.Join(root, DefaultConfigFilename))
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
