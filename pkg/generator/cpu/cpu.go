package cpu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Amr-9/algohunter/pkg/generator"
	"github.com/Amr-9/algohunter/pkg/search"
	"golang.org/x/sync/errgroup"
)

// SourceFactory creates a fresh candidate source for one worker.
type SourceFactory func() (search.Source, error)

// CPUGenerator implements the Generator interface using CPU-based goroutines.
// Each worker runs its own source and local statistics; counters are merged
// only when the workers finish.
type CPUGenerator struct {
	attempts  atomic.Uint64 // Live counter for total attempts
	matches   atomic.Uint64 // Live counter for total matches
	startTime time.Time     // When generation started
	workers   int           // Number of concurrent workers
	newSource SourceFactory
	logger    *slog.Logger

	started atomic.Bool
	done    chan struct{}
	summary *search.Statistics
	err     error
}

// NewCPUGenerator creates a new CPU-based generator.
// If workers is 0, it defaults to the number of CPU cores.
func NewCPUGenerator(workers int, newSource SourceFactory, logger *slog.Logger) *CPUGenerator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CPUGenerator{
		workers:   workers,
		newSource: newSource,
		logger:    logger,
		done:      make(chan struct{}),
	}
}

// Name returns the implementation name.
func (g *CPUGenerator) Name() string {
	return "CPU"
}

// Workers returns the default number of concurrent workers.
func (g *CPUGenerator) Workers() int {
	return g.workers
}

// Stats returns the current performance statistics.
func (g *CPUGenerator) Stats() generator.Stats {
	attempts := g.attempts.Load()
	var elapsed float64
	if g.started.Load() {
		elapsed = time.Since(g.startTime).Seconds()
	}

	var hashRate float64
	if elapsed > 0 {
		hashRate = float64(attempts) / elapsed
	}

	return generator.Stats{
		Attempts:    attempts,
		Matches:     g.matches.Load(),
		HashRate:    hashRate,
		ElapsedSecs: elapsed,
	}
}

// Start begins the search with the given configuration.
func (g *CPUGenerator) Start(ctx context.Context, config *generator.Config) (<-chan search.Match, error) {
	if config == nil || config.Patterns == nil || config.Patterns.Len() == 0 {
		return nil, search.ErrNoPatterns
	}
	if g.newSource == nil {
		return nil, errors.New("cpu: no source factory")
	}
	if !g.started.CompareAndSwap(false, true) {
		return nil, generator.ErrAlreadyStarted
	}

	workers := g.workers
	if config.Workers > 0 {
		workers = config.Workers
	}
	shards := generator.Shard(config.Count, workers)

	// Create every source up front so a broken factory fails Start rather
	// than a running search.
	sources := make([]search.Source, len(shards))
	for i := range shards {
		src, err := g.newSource()
		if err != nil {
			g.started.Store(false)
			return nil, fmt.Errorf("create source for worker %d: %w", i, err)
		}
		sources[i] = src
	}

	g.startTime = time.Now()
	resultChan := make(chan search.Match, len(shards))

	g.logger.Debug("search started",
		slog.Int("workers", len(shards)),
		slog.Uint64("count", config.Count),
		slog.Int("patterns", config.Patterns.Len()))

	go g.run(ctx, config, shards, sources, resultChan)
	return resultChan, nil
}

// run owns the worker group and the single aggregation point for results.
func (g *CPUGenerator) run(ctx context.Context, config *generator.Config, shards []uint64, sources []search.Source, resultChan chan<- search.Match) {
	eg, egctx := errgroup.WithContext(ctx)
	partial := make([]*search.Statistics, len(shards))
	var mu sync.Mutex

	for i := range shards {
		eg.Go(func() error {
			stats, err := search.Run(egctx, search.Options{
				Patterns: config.Patterns,
				Target:   shards[i],
				Source:   sources[i],
				OnMatch:  func(m search.Match) { resultChan <- m },
				Checked:  &g.attempts,
				Matched:  &g.matches,
			})
			mu.Lock()
			partial[i] = stats
			mu.Unlock()
			if err != nil {
				g.logger.Error("worker stopped", slog.Int("worker", i), slog.Any("error", err))
				return fmt.Errorf("worker %d: %w", i, err)
			}
			g.logger.Debug("worker finished", slog.Int("worker", i), slog.Uint64("checked", stats.Checked))
			return nil
		})
	}

	err := eg.Wait()

	summary := search.NewStatistics()
	for _, s := range partial {
		summary.Merge(s)
	}
	g.summary = summary
	g.err = err

	close(resultChan)
	close(g.done)
}

// Wait blocks until every worker has stopped and returns merged statistics.
func (g *CPUGenerator) Wait() (*search.Statistics, error) {
	if !g.started.Load() {
		return search.NewStatistics(), nil
	}
	<-g.done
	return g.summary, g.err
}
