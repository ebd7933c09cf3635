// Package main is the entry point for the gkerunner CLI.
//
// gkerunner provisions a GKE cluster with a non-preemptible and an
// autoscaling preemptible node pool, and deploys a GitLab runner with the
// Kubernetes executor onto it.
//
// Commands: init, apply, preview, version.
//
// For detailed usage information, run:
//
//	gkerunner --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/gkerunner/cmd/gkerunner/commands"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
