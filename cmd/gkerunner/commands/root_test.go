package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "gkerunner", cmd.Use)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("verbose"))
}

func TestRoot_HasSubcommands(t *testing.T) {
	cmd := Root()

	subcommands := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}

	for _, expected := range []string{"init", "apply", "preview", "version"} {
		assert.True(t, subcommands[expected], "Expected subcommand %s not found", expected)
	}
	assert.Len(t, cmd.Commands(), 4)
}

func TestApply_Flags(t *testing.T) {
	cmd := Apply()

	for _, name := range []string{"config", "runner-token", "admin", "metrics-file"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "c", cmd.Flags().Lookup("config").Shorthand)

	require.NoError(t, cmd.ParseFlags([]string{"--admin", "a@example.com", "--admin", "b@example.com"}))
	admins, err := cmd.Flags().GetStringArray("admin")
	require.NoError(t, err)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, admins)
}

func TestInit_Flags(t *testing.T) {
	cmd := Init()

	output := cmd.Flags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "gkerunner.yaml", output.DefValue)
	assert.NotNil(t, cmd.Flags().Lookup("defaults"))
}

func TestVersion(t *testing.T) {
	SetVersionInfo("v1.2.3", "abc123", "2026-01-01")
	t.Cleanup(func() { SetVersionInfo("dev", "none", "unknown") })

	var buf bytes.Buffer
	cmd := Version()
	cmd.SetOut(&buf)
	cmd.Run(cmd, nil)

	assert.Contains(t, buf.String(), "gkerunner v1.2.3")
	assert.Contains(t, buf.String(), "commit: abc123")
}
