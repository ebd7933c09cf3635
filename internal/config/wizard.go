package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// WizardResult holds the answers of the init wizard.
type WizardResult struct {
	Project             string
	ClusterName         string
	Zone                string
	Admins              string
	GitLabURL           string
	Concurrent          int
	InteractiveSessions bool
}

// RunWizard asks for the values that have no sensible default.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		ClusterName: DefaultClusterName,
		Zone:        DefaultZone,
		GitLabURL:   DefaultGitLabURL,
		Concurrent:  DefaultConcurrent,
	}

	form := huh.NewForm(
		// Where the cluster lives
		huh.NewGroup(
			huh.NewInput().
				Title("GCP project").
				Description("Project ID that will own the cluster").
				Placeholder("my-project").
				Value(&result.Project).
				Validate(validateRequired("project")),
			huh.NewInput().
				Title("Cluster name").
				Description("Lowercase letters, numbers and hyphens").
				Value(&result.ClusterName).
				Validate(validateClusterName),
			huh.NewSelect[string]().
				Title("Zone").
				Options(
					huh.NewOption("us-west1-b (Oregon)", "us-west1-b"),
					huh.NewOption("us-central1-a (Iowa)", "us-central1-a"),
					huh.NewOption("us-east1-b (South Carolina)", "us-east1-b"),
					huh.NewOption("europe-west1-b (Belgium)", "europe-west1-b"),
					huh.NewOption("europe-west3-a (Frankfurt)", "europe-west3-a"),
					huh.NewOption("asia-east1-a (Taiwan)", "asia-east1-a"),
				).
				Value(&result.Zone),
		),

		// Who may administer it
		huh.NewGroup(
			huh.NewInput().
				Title("Cluster admins").
				Description("Comma separated Google account emails bound to cluster-admin").
				Placeholder("you@example.com").
				Value(&result.Admins).
				Validate(validateAdmins),
		),

		// Runner
		huh.NewGroup(
			huh.NewInput().
				Title("GitLab URL").
				Value(&result.GitLabURL).
				Validate(validateRequired("GitLab URL")),
			huh.NewSelect[int]().
				Title("Concurrent jobs").
				Options(
					huh.NewOption("10", 10),
					huh.NewOption("25", 25),
					huh.NewOption("50", 50),
					huh.NewOption("100", 100),
				).
				Value(&result.Concurrent),
			huh.NewConfirm().
				Title("Enable interactive web terminals?").
				Description("Exposes the session server through a LoadBalancer service").
				Value(&result.InteractiveSessions),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	return result, nil
}

// ToConfig converts the wizard answers to a defaulted Config.
func (r *WizardResult) ToConfig() *Config {
	cfg := &Config{
		Project: strings.TrimSpace(r.Project),
		Cluster: ClusterConfig{
			Name: strings.ToLower(strings.TrimSpace(r.ClusterName)),
			Zone: r.Zone,
		},
		Admins: splitAdmins(r.Admins),
		Runner: RunnerConfig{
			URL:                 strings.TrimSpace(r.GitLabURL),
			Concurrent:          r.Concurrent,
			InteractiveSessions: r.InteractiveSessions,
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

func splitAdmins(s string) []string {
	var admins []string
	for _, a := range strings.Split(s, ",") {
		if a = strings.TrimSpace(a); a != "" {
			admins = append(admins, a)
		}
	}
	return admins
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateClusterName(s string) error {
	if !gkeNameRegex.MatchString(strings.ToLower(s)) {
		return fmt.Errorf("cluster name must start with a letter, contain only lowercase letters, numbers and hyphens, and be at most 40 characters")
	}
	return nil
}

func validateAdmins(s string) error {
	if len(splitAdmins(s)) == 0 {
		return fmt.Errorf("at least one admin is required")
	}
	return nil
}
