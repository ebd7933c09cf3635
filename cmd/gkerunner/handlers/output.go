package handlers

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/gkerunner/internal/config"
	"github.com/imamik/gkerunner/internal/stack"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	okStyle = lipgloss.NewStyle().
		Foreground(colorGreen)
)

// renderApplySummary produces the summary printed after a successful apply.
func renderApplySummary(cfg *config.Config, res *stack.Result, kubeconfigPath string) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(okStyle.Render("  Runner stack applied"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 35)))
	b.WriteString("\n")

	row(&b, "Project", cfg.Project)
	row(&b, "Cluster", fmt.Sprintf("%s (%s)", cfg.Cluster.Name, cfg.Cluster.Zone))
	row(&b, "Namespace", cfg.Namespace)
	row(&b, "Runner", fmt.Sprintf("%s, %d concurrent jobs", cfg.Runner.Name, cfg.Runner.Concurrent))
	row(&b, "Config hash", res.ConfigHash)
	if res.SessionAddress != "" {
		row(&b, "Sessions", res.SessionAddress)
	}
	row(&b, "Run ID", res.RunID)

	if kubeconfigPath != "" {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("  Next steps"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "    export KUBECONFIG=%s\n", kubeconfigPath)
		fmt.Fprintf(&b, "    kubectl -n %s get pods\n", cfg.Namespace)
	}
	b.WriteString("\n")
	return b.String()
}

// renderInitSummary produces the summary printed after init.
func renderInitSummary(cfg *config.Config, path string) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  Configuration saved: " + path))
	b.WriteString("\n\n")
	row(&b, "Project", valueOr(cfg.Project, "(not set)"))
	row(&b, "Cluster", fmt.Sprintf("%s (%s)", cfg.Cluster.Name, cfg.Cluster.Zone))
	for _, p := range cfg.NodePools {
		kind := "fixed"
		if p.Preemptible {
			kind = "preemptible"
		}
		row(&b, "Pool "+p.Name, fmt.Sprintf("%s, %s", p.MachineType, kind))
	}
	row(&b, "Admins", valueOr(strings.Join(cfg.Admins, ", "), "(not set)"))
	row(&b, "Concurrency", fmt.Sprint(cfg.Runner.Concurrent))

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("  Next steps"))
	b.WriteString("\n")
	if cfg.Project == "" || len(cfg.Admins) == 0 {
		fmt.Fprintf(&b, "    Set project and admins in %s\n", path)
	}
	fmt.Fprintf(&b, "    %s=<token> gkerunner apply\n", config.EnvRunnerToken)
	b.WriteString("\n")
	return b.String()
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "    %s %s\n", dimStyle.Render(fmt.Sprintf("%-12s", label+":")), value)
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func printOut(w io.Writer, s string) {
	_, _ = io.WriteString(w, s)
}
