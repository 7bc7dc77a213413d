// Package cmd contains all the commands included in the binary file.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openbsp/openbsp/internal/build"
)

// NewRootCommand enables all children commands to read flags from CLI flags,
// environment variables prefixed with OPENBSP, or config.yaml (in that order).
func NewRootCommand() *cobra.Command {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("OPENBSP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	configPaths := []string{"/etc/openbsp", "$HOME/.openbsp", "."}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	_ = viper.ReadInConfig()

	return &cobra.Command{
		Use:   "openbsp",
		Short: "A vertex-centric, bulk-synchronous-parallel graph computation engine",
		Long: `A vertex-centric, bulk-synchronous-parallel graph computation engine.

OpenBSP runs node-local update rules (component labeling, propagation,
iterative optimization) over a graph with parallel scheduling, message
routing and termination detection handled by the engine.`,
	}
}

// NewVersionCommand prints the build version and commit.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of openbsp",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (commit %s)\n", build.ProjectName, build.Version, build.Commit)
		},
		Args: cobra.NoArgs,
	}
}
