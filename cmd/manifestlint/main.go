package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plugdev/manifestlint/pkg/cli"
	"github.com/plugdev/manifestlint/pkg/console"
	"github.com/plugdev/manifestlint/pkg/constants"
)

// Build-time variables set by the release pipeline
var (
	version = "dev"
)

// Global flags
var verbose bool

var rootCmd = &cobra.Command{
	Use:   constants.CLIName,
	Short: "Validate plugin project manifests against their schemas",
	Long: `manifestlint validates the YAML documents of a plugin project
(manifest.yaml, tools/*.yaml and provider/*.yaml) against their JSON
Schemas and reports diagnostics anchored to exact source locations.

A directory is treated as a plugin project only when all of its marker
files exist (by default: .projectignore, manifest.yaml, main.py).`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [path...]",
	Short: "Validate documents or project directories",
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.ValidateFiles(args, verbose); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch [dir...]",
	Short: "Watch project directories and revalidate on change",
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.WatchProjects(args, verbose); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve validation as an MCP tool over stdio",
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.ServeMCP(version); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s version %s\n", constants.CLIName, version)
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		os.Exit(1)
	}
}
