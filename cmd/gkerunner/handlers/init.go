package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/imamik/gkerunner/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive wizard.
	runWizard = config.RunWizard

	// saveConfig writes the config to a file.
	saveConfig = config.Save
)

// Init writes a configuration file, either from the interactive wizard or,
// with useDefaults, from the defaults.
func Init(ctx context.Context, outputPath string, useDefaults bool) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	var cfg *config.Config
	if useDefaults {
		cfg = config.Default()
	} else {
		printOut(os.Stdout, titleStyle.Render("\n  gkerunner - GitLab runners on GKE")+"\n\n")
		result, err := runWizard(ctx)
		if err != nil {
			return fmt.Errorf("wizard canceled: %w", err)
		}
		cfg = result.ToConfig()
	}

	if err := saveConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printOut(os.Stdout, renderInitSummary(cfg, outputPath))
	return nil
}
