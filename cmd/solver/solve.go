package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/khoahotran/ai-problem-solver/adapters/event"
	"github.com/khoahotran/ai-problem-solver/adapters/llm"
	"github.com/khoahotran/ai-problem-solver/adapters/persistence"
	"github.com/khoahotran/ai-problem-solver/internal/application/service"
	sessionUC "github.com/khoahotran/ai-problem-solver/internal/application/usecase/session"
	solveUC "github.com/khoahotran/ai-problem-solver/internal/application/usecase/solve"
	statsUC "github.com/khoahotran/ai-problem-solver/internal/application/usecase/stats"
	"github.com/khoahotran/ai-problem-solver/internal/config"
	"github.com/khoahotran/ai-problem-solver/internal/domain/solution"
	"github.com/khoahotran/ai-problem-solver/internal/ui"
	"github.com/khoahotran/ai-problem-solver/pkg/auth"
	"github.com/khoahotran/ai-problem-solver/pkg/logger"
)

var (
	solveMode    string
	solveOffline bool
	solveJSON    bool
)

var solveCmd = &cobra.Command{
	Use:   "solve [problem]",
	Short: "Solve a problem and render the answer",
	Example: `  solver solve "How do I reduce churn in a SaaS product?"
  solver solve --mode code "Reverse a linked list"
  solver solve --mode explain "What is a hash map?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		problem := strings.Join(args, " ")
		if strings.TrimSpace(problem) == "" {
			return errors.New("problem must not be empty")
		}
		mode, err := solution.ParseMode(solveMode)
		if err != nil {
			return err
		}

		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		appLogger := logger.NewNopLogger()
		if verbose {
			appLogger = logger.NewZapLogger(cfg.App.Env)
		}
		defer appLogger.Sync()

		var llmService service.LLMService
		if solveOffline {
			llmService = llm.NewOfflineAdapter(errors.New("offline mode"))
		} else {
			llmService, err = llm.NewFromConfig(cfg, appLogger)
			if err != nil {
				return err
			}
		}

		statsUseCase := statsUC.NewStatsUseCase(persistence.NewMemoryStatsRepo(), appLogger)
		uc := sessionUC.NewSessionUseCase(
			persistence.NewMemorySessionRepo(cfg.Session.TTL),
			solveUC.NewDispatcher(llmService, appLogger),
			solveUC.NewFallbackSynthesizer(cfg.Fallback.Delay),
			event.NewLocalPublisher(statsUseCase),
			auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan),
			appLogger,
		)

		ctx := cmd.Context()
		created, err := uc.Create(ctx)
		if err != nil {
			return err
		}

		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = " " + ui.LoadingMessage(mode)
		s.Start()
		result, err := uc.Submit(ctx, sessionUC.SubmitInput{
			SessionID: created.Session.ID,
			Problem:   problem,
			Mode:      mode,
		})
		s.Stop()
		if err != nil {
			return err
		}

		if solveJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderSession(result))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVarP(&solveMode, "mode", "m", string(solution.ModeSolver), "Mode: solver, code or explain")
	solveCmd.Flags().BoolVar(&solveOffline, "offline", false, "Skip the AI provider and show the sample solution")
	solveCmd.Flags().BoolVar(&solveJSON, "json", false, "Print the session as JSON")
}
