// Package prerequisites checks for client tools the provisioned cluster
// relies on at runtime.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool is a client binary looked up in PATH.
type Tool struct {
	Name        string
	Required    bool
	Description string
	InstallHint string
}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// DefaultTools returns the tools checked before apply.
//
// The written kubeconfig authenticates through gke-gcloud-auth-plugin, so
// the plugin is required for the Kubernetes half of the graph.
func DefaultTools() []Tool {
	return []Tool{
		{
			Name:        "gke-gcloud-auth-plugin",
			Required:    true,
			Description: "Mints access tokens for the generated kubeconfig",
			InstallHint: "gcloud components install gke-gcloud-auth-plugin",
		},
		{
			Name:        "kubectl",
			Required:    false,
			Description: "Inspects the runner after apply",
			InstallHint: "gcloud components install kubectl",
		},
	}
}

// CheckResult is the outcome for one tool.
type CheckResult struct {
	Tool  Tool
	Found bool
	Path  string
}

// CheckResults collects the outcome for a set of tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors reports whether a required tool is missing.
func (r *CheckResults) HasErrors() bool {
	return r.Error() != nil
}

// Error lists the missing required tools, or returns nil.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallHint))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check looks up every tool in PATH.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}
	for _, tool := range tools {
		result := CheckResult{Tool: tool}
		if path, err := lookPath(tool.Name); err == nil {
			result.Found = true
			result.Path = path
		} else {
			results.Missing = append(results.Missing, tool)
		}
		results.Results = append(results.Results, result)
	}
	return results
}

// CheckDefault checks DefaultTools.
func CheckDefault() *CheckResults {
	return Check(DefaultTools())
}
