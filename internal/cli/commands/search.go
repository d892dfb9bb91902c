package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Amr-9/algohunter/internal/config"
	"github.com/Amr-9/algohunter/internal/ui"
	"github.com/Amr-9/algohunter/pkg/generator"
	"github.com/Amr-9/algohunter/pkg/generator/algorand"
	"github.com/Amr-9/algohunter/pkg/generator/cpu"
	"github.com/Amr-9/algohunter/pkg/loader"
	"github.com/Amr-9/algohunter/pkg/pattern"
	"github.com/Amr-9/algohunter/pkg/search"
)

// DefaultPatternsFile is offered first when search terms are entered interactively.
const DefaultPatternsFile = "searchAlgo.json"

// updateRate is how often the progress line is redrawn.
const updateRate = 33 * time.Millisecond

// SearchOptions holds options for the search command.
type SearchOptions struct {
	SavePatterns string // Write the pattern set used to this file

	newSource cpu.SourceFactory
	stdin     io.Reader
	signals   <-chan os.Signal
}

// ErrNoSearchTerms is returned when no pattern file is given and the input
// is not interactive.
var ErrNoSearchTerms = errors.New("no search terms: pass --patterns or run in a terminal")

// NewSearchCommand creates the search command.
func NewSearchCommand() *cobra.Command {
	return newSearchCommand(&SearchOptions{})
}

func newSearchCommand(opts *SearchOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search for vanity addresses",
		Long: `Generate random Algorand accounts and report every address that matches
one of the search terms.

Search terms come from a JSON or YAML file (--patterns). Without one, and
when running in a terminal, they are entered interactively. Each match is
printed with its 25-word passphrase and appended to the output file.`,
		Example: `  # Search using a pattern file
  algohunter search -p searchAlgo.json -n 5000000

  # Search until interrupted on 4 workers
  algohunter search -p terms.yaml -n 0 -w 4

  # Build terms interactively and keep them for later
  algohunter search --save-patterns terms.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSearch(cmd, opts)
		},
	}

	cmd.Flags().Uint64P("count", "n", config.DefaultCount, "Number of addresses to check (0 searches until interrupted)")
	cmd.Flags().IntP("workers", "w", 0, "Number of worker goroutines (0 uses every CPU)")
	cmd.Flags().StringP("patterns", "p", "", "Search terms file (JSON or YAML)")
	cmd.Flags().StringP("output", "o", config.DefaultOutput, "File matches are appended to (empty disables)")
	cmd.Flags().Bool("progress", true, "Show the progress line on terminals")
	cmd.Flags().StringVar(&opts.SavePatterns, "save-patterns", "", "Write the search terms used to this file")

	return cmd
}

func runSearch(cmd *cobra.Command, opts *SearchOptions) error {
	cfg := config.FromContext(cmd.Context())
	out := cmd.OutOrStdout()

	// Without a pattern file the terms are entered interactively, and the
	// user is offered another search after each run.
	var prompter *ui.Prompter
	if cfg.Patterns == "" {
		in := opts.stdin
		if in == nil {
			if !ui.IsTerminal(os.Stdin) {
				return ErrNoSearchTerms
			}
			in = os.Stdin
		}
		prompter = ui.NewPrompter(in, out)
		ui.PrintWelcomeBanner(out, cmd.Root().Version)
	}

	sigChan := opts.signals
	if sigChan == nil {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(c)
		sigChan = c
	}

	for {
		set, err := searchTerms(out, cfg.Config, prompter)
		if err != nil {
			return err
		}
		if err := searchOnce(cmd, set, opts, sigChan); err != nil {
			return err
		}
		if prompter == nil || !prompter.AskToContinue() {
			return nil
		}
	}
}

// searchOnce runs one search over set until the target is reached or an
// interrupt arrives, then prints the summary.
func searchOnce(cmd *cobra.Command, set *pattern.Set, opts *SearchOptions, sigChan <-chan os.Signal) error {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	out := cmd.OutOrStdout()

	if opts.SavePatterns != "" {
		if err := loader.WriteFile(opts.SavePatterns, set); err != nil {
			return err
		}
		logger.Info("search terms saved", slog.String("path", opts.SavePatterns))
	}

	newSource := opts.newSource
	if newSource == nil {
		newSource = func() (search.Source, error) { return algorand.NewSource(), nil }
	}
	gen := cpu.NewCPUGenerator(cfg.Workers, newSource, logger)

	ui.PrintPatternVisual(out, set)
	difficulty := set.Difficulty()
	ui.PrintSearchInfo(out, difficulty, len(generator.Shard(cfg.Count, workerCount(gen, cfg.Workers))))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	resultChan, err := gen.Start(ctx, &generator.Config{
		Patterns: set,
		Count:    cfg.Count,
		Workers:  cfg.Workers,
	})
	if err != nil {
		return fmt.Errorf("start search: %w", err)
	}

	var tick <-chan time.Time
	if cfg.Progress && ui.IsTerminal(out) {
		ticker := time.NewTicker(updateRate)
		defer ticker.Stop()
		tick = ticker.C
	}

	startTime := time.Now()
	frame := 0
	found := uint64(0)
	interrupted := false

	// The result channel is drained until the generator closes it, so
	// workers never block on a send after cancellation.
	for resultChan != nil {
		select {
		case m, ok := <-resultChan:
			if !ok {
				resultChan = nil
				continue
			}
			found++
			if tick != nil {
				ui.ClearLine(out)
			}
			reportMatch(out, logger, cfg.Output, found, m)

		case <-tick:
			ui.PrintProgress(out, gen.Stats(), cfg.Count, difficulty, frame)
			frame++

		case <-sigChan:
			if !interrupted {
				interrupted = true
				logger.Debug("interrupt received, stopping workers")
				cancel()
			}
		}
	}

	stats, runErr := gen.Wait()
	if tick != nil {
		ui.ClearLine(out)
	}
	ui.PrintSummary(out, stats, time.Since(startTime), interrupted)
	if runErr != nil {
		return fmt.Errorf("search aborted: %w", runErr)
	}
	return nil
}

func workerCount(gen *cpu.CPUGenerator, configured int) int {
	if configured > 0 {
		return configured
	}
	return gen.Workers()
}

// searchTerms loads the pattern file, or asks for terms when prompter is set.
func searchTerms(out io.Writer, cfg *config.Config, prompter *ui.Prompter) (*pattern.Set, error) {
	if prompter != nil {
		return prompter.ChooseSet(DefaultPatternsFile, cfg.Count)
	}
	set, err := loader.LoadFile(cfg.Patterns)
	if err != nil {
		return nil, err
	}
	ui.PrintSearchTerms(out, set, cfg.Count)
	return set, nil
}

// reportMatch prints a match and appends it to the output file. A failed
// save is logged and does not stop the search.
func reportMatch(out io.Writer, logger *slog.Logger, path string, n uint64, m search.Match) {
	phrase, err := algorand.Mnemonic(m.Secret)
	if err != nil {
		logger.Error("cannot derive passphrase", slog.String("address", m.Address), slog.Any("error", err))
		phrase = "(unavailable)"
	}
	ui.PrintMatch(out, n, m, phrase)

	if path == "" {
		return
	}
	if err := saveMatch(path, m, phrase); err != nil {
		fmt.Fprintf(out, "    %s⚠ Save failed: %v%s\n", ui.ColorYellow, err, ui.ColorReset)
		logger.Error("save failed", slog.String("path", path), slog.Any("error", err))
	}
}

// saveMatch appends one match to path, creating it owner-readable only.
func saveMatch(path string, m search.Match, phrase string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(f, `Algorand Vanity Address
=======================

Pattern:    %s
Address:    %s
Matched:    %s
Passphrase: %s

Generated: %s

⚠️ WARNING: Keep this passphrase secret and secure!

`, m.Outcome.Descriptor, m.Address, ui.Mask(m.Address, m.Outcome.Windows), phrase, time.Now().Format("2006-01-02 15:04:05"))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
