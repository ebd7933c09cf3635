// Package commands defines the CLI command structure and flag bindings.
//
// Command execution is delegated to handler functions in the handlers
// package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/gkerunner/cmd/gkerunner/handlers"
)

// Root returns the root command for the gkerunner CLI.
func Root() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "gkerunner",
		Short:         "Run GitLab CI jobs on an autoscaling GKE cluster",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SetContext(handlers.SetupLogging(cmd.Context(), verbose))
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(Init())
	cmd.AddCommand(Apply())
	cmd.AddCommand(Preview())
	cmd.AddCommand(Version())

	return cmd
}
