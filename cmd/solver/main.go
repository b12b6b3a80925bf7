package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configDir string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "solver",
	Short: "Solve problems with an AI model from the terminal",
	Long: `solver sends a problem description to the configured AI provider and
renders the structured answer. When the provider is unavailable it shows a
sample solution instead.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory holding .env and config.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print logs to stderr")
}
