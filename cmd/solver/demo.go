package main

import (
	"fmt"

	"github.com/spf13/cobra"

	solveUC "github.com/khoahotran/ai-problem-solver/internal/application/usecase/solve"
	"github.com/khoahotran/ai-problem-solver/internal/ui"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "List example problems to try",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderDemoExamples(solveUC.DemoExamples()))
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
