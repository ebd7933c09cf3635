package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/gkerunner/cmd/gkerunner/handlers"
)

// Apply returns the command that provisions the cluster and the runner.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect gkerunner.yaml)
//	--runner-token: GitLab runner authentication token
//	--admin: Identity granted cluster-admin (repeatable)
//	--metrics-file: Write provisioning metrics in Prometheus text format
//
// Environment variables:
//
//	GITLAB_RUNNER_TOKEN: GitLab runner authentication token
//	GOOGLE_APPLICATION_CREDENTIALS: GCP credentials (or gcloud application-default login)
func Apply() *cobra.Command {
	var opts handlers.ApplyOptions

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create or update the cluster and the runner",
		Long: `Create or update the GKE cluster and the GitLab runner.

The cluster, its node pools and every Kubernetes object are created when
missing and reused otherwise, so apply can be re-run after any change to
the configuration. A changed runner configuration restarts the runner.

The runner token is never stored in the configuration file. Pass it with
--runner-token or the GITLAB_RUNNER_TOKEN environment variable.

Examples:
  # Apply gkerunner.yaml from the current directory
  GITLAB_RUNNER_TOKEN=glrt-... gkerunner apply

  # Grant cluster-admin to an additional identity
  gkerunner apply --admin ops@example.com --runner-token glrt-...`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: gkerunner.yaml)")
	cmd.Flags().StringVar(&opts.RunnerToken, "runner-token", "", "GitLab runner authentication token")
	cmd.Flags().StringArrayVar(&opts.Admins, "admin", nil, "Identity granted cluster-admin (repeatable)")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write provisioning metrics to this file")

	return cmd
}
