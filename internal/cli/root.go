// Package cli provides the command-line interface for algohunter.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Amr-9/algohunter/internal/cli/commands"
	"github.com/Amr-9/algohunter/internal/config"
)

// Version information (set at build time).
var Version = "1.0.0"

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "algohunter",
		Short: "Algorand vanity address search",
		Long: `algohunter generates random Algorand accounts and reports those whose
address matches one of your search terms.

Terms can sit at the front or back of the address, anywhere inside it, or
at the front and back at the same time. Back terms may skip the final
address character, which can only be one of 4, A, E, I, M, Q, U or Y.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			loaded, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger := loaded.NewLogger(cmd.ErrOrStderr())
			if loaded.File != "" {
				logger.Debug("using config file", "path", loaded.File)
			}

			ctx := config.WithConfig(cmd.Context(), loaded)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./algohunter.yaml)")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "Log level (debug|info|warn|error)")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewSearchCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
