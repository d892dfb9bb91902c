package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Amr-9/algohunter/internal/config"
	"github.com/Amr-9/algohunter/internal/ui"
	"github.com/Amr-9/algohunter/pkg/loader"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check search terms files without searching",
		Long: `Load one or more search terms files and report every problem that would
stop a search: characters outside the address alphabet, lengths that
disagree with the declared digits, and back terms that no address can
end with.

Without arguments the file from --patterns (or the config) is checked.`,
		Example: `  algohunter validate searchAlgo.json
  algohunter validate -p terms.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args)
		},
	}

	cmd.Flags().StringP("patterns", "p", "", "Search terms file (JSON or YAML)")

	return cmd
}

func runValidate(cmd *cobra.Command, files []string) error {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	out := cmd.OutOrStdout()

	if len(files) == 0 {
		if cfg.Patterns == "" {
			return errors.New("no search terms file given")
		}
		files = []string{cfg.Patterns}
	}

	var errs []error
	for _, path := range files {
		set, err := loader.LoadFile(path)
		if err != nil {
			fmt.Fprintf(out, "    %s✗ %s: %v%s\n", ui.ColorRed, path, err, ui.ColorReset)
			errs = append(errs, err)
			continue
		}
		logger.Debug("search terms valid", "path", path, "entries", set.Len())

		fmt.Fprintf(out, "    %s✓ %s%s %s(1 match per ~%s addresses)%s\n",
			ui.ColorGreen, path, ui.ColorReset, ui.ColorDim, ui.FormatNumber(set.Difficulty()), ui.ColorReset)
		ui.PrintSearchTerms(out, set, cfg.Count)
		ui.PrintPatternVisual(out, set)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d files invalid: %w", len(errs), len(files), errors.Join(errs...))
	}
	return nil
}
