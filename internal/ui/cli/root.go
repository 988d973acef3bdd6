// Package cli assembles the nbcoach command tree.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/nbcoach/nbcoach/internal/appstate"
	"github.com/nbcoach/nbcoach/internal/config"
	"github.com/nbcoach/nbcoach/internal/ui/cli/ask"
	"github.com/nbcoach/nbcoach/internal/ui/cli/cachecmd"
	configCmd "github.com/nbcoach/nbcoach/internal/ui/cli/configcmd"
	"github.com/nbcoach/nbcoach/internal/ui/cli/history"
	"github.com/nbcoach/nbcoach/internal/ui/cli/promptscmd"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	logFile  string
)

var rootCmd = &cobra.Command{
	Use:   "nbcoach",
	Short: "A code tutor for course exercises",
	Long: `nbcoach sends a code exercise to a language model wrapped in one of
four tutoring prompts: explain the question, give a hint, sketch a
partial solution, or fully explain a solution.`,
	DisableAutoGenTag: true,
}

// Execute runs the root command.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set logging level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (defaults to stderr)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		overrides := &config.RuntimeOverrides{}
		if logLevel != "" {
			overrides.LogLevel = &logLevel
		}
		if logFile != "" {
			overrides.LogFile = &logFile
		}
		ask.ApplyOverrides(cmd, overrides)
		return appstate.Initialize(overrides)
	}

	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return appstate.Cleanup()
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(ask.Commands()...)
	rootCmd.AddCommand(
		promptscmd.PromptsCmd,
		history.HistoryCmd,
		cachecmd.CacheCmd,
		configCmd.ConfigCmd,
	)
}
