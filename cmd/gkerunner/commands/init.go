package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/gkerunner/cmd/gkerunner/handlers"
	"github.com/imamik/gkerunner/internal/config"
)

// Init returns the command for creating a configuration file.
//
// Flags:
//
//	--output, -o: Path to output file (default "gkerunner.yaml")
//	--defaults: Skip the wizard and write the defaults
func Init() *cobra.Command {
	var (
		outputPath string
		defaults   bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file",
		Long: `Create a gkerunner configuration file.

The wizard asks for the GCP project, the cluster name and zone, the
cluster admins, the GitLab URL, the runner concurrency and whether
interactive web terminals should be enabled.

Use --defaults to write the default configuration without prompting.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, defaults)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFilename, "Output file path")
	cmd.Flags().BoolVar(&defaults, "defaults", false, "Write the default configuration without prompting")

	return cmd
}
