package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/gkerunner/cmd/gkerunner/handlers"
)

// Preview returns the command that prints what apply would create.
func Preview() *cobra.Command {
	var (
		configPath string
		admins     []string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the GKE requests and Kubernetes manifests",
		Long: `Print the GKE cluster and node pool definitions and every Kubernetes
manifest apply would send, as YAML. No API is called.

The runner token is redacted and the session address is shown as
"(known after apply)".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Preview(cmd.Context(), cmd.OutOrStdout(), configPath, admins)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: gkerunner.yaml)")
	cmd.Flags().StringArrayVar(&admins, "admin", nil, "Identity granted cluster-admin (repeatable)")

	return cmd
}
