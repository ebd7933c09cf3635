package handlers

import (
	"context"
	"io"

	"github.com/imamik/gkerunner/internal/stack"
)

// Preview prints the GKE definitions and Kubernetes manifests apply would
// send. The runner token is not needed.
func Preview(_ context.Context, w io.Writer, configPath string, admins []string) error {
	cfg, err := loadConfig(configPath, admins)
	if err != nil {
		return err
	}
	return stack.Preview(w, cfg)
}
