// Package generator defines the interface for parallel vanity search
// backends. Backends shard a search across workers that each own a
// candidate source, and funnel match events through a single channel.
package generator

import (
	"context"
	"errors"

	"github.com/Amr-9/algohunter/pkg/pattern"
	"github.com/Amr-9/algohunter/pkg/search"
)

// ErrAlreadyStarted is returned when Start is called twice on one backend.
var ErrAlreadyStarted = errors.New("search already started")

// Config holds the configuration for one search run.
type Config struct {
	Patterns *pattern.Set // Immutable, shared read-only by all workers
	Count    uint64       // Total candidates to check; 0 searches until cancelled
	Workers  int          // Number of concurrent workers
}

// Stats holds real-time performance statistics.
type Stats struct {
	Attempts    uint64  // Total number of addresses checked
	Matches     uint64  // Total number of matches found
	HashRate    float64 // Addresses checked per second
	ElapsedSecs float64 // Time elapsed since start
}

// Generator defines the contract for search backends.
type Generator interface {
	// Start begins the search with the given configuration and returns the
	// channel of match events. The channel is closed once every worker has
	// stopped; callers must drain it. The search can be cancelled via ctx.
	Start(ctx context.Context, config *Config) (<-chan search.Match, error)

	// Wait blocks until the search ends and returns the merged statistics,
	// along with the first worker error, if any.
	Wait() (*search.Statistics, error)

	// Stats returns the current performance statistics.
	// This method is safe to call concurrently from any goroutine.
	Stats() Stats

	// Name returns the implementation name.
	Name() string
}

// Shard splits total across workers as evenly as possible. A total of 0
// means unbounded and gives every worker 0.
func Shard(total uint64, workers int) []uint64 {
	if workers <= 0 {
		workers = 1
	}
	if total > 0 && uint64(workers) > total {
		workers = int(total)
	}
	shards := make([]uint64, workers)
	if total == 0 {
		return shards
	}
	base := total / uint64(workers)
	rem := total % uint64(workers)
	for i := range shards {
		shards[i] = base
		if uint64(i) < rem {
			shards[i]++
		}
	}
	return shards
}
