// Package search drives candidate generation against a pattern set and
// accumulates match statistics.
package search

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/Amr-9/algohunter/pkg/pattern"
)

// ErrNoPatterns is returned when a run is started without a pattern set.
var ErrNoPatterns = errors.New("no patterns to search for")

// Candidate is one generated address with its opaque recovery secret.
type Candidate struct {
	Address string
	Secret  []byte
}

// Source produces independent random candidates.
// A Source is used by a single goroutine at a time.
type Source interface {
	Generate() (Candidate, error)
}

// Match is emitted once per matching candidate, in generation order.
type Match struct {
	Address string
	Secret  []byte
	Outcome pattern.Outcome
}

// Options configures a single sequential run.
type Options struct {
	Patterns *pattern.Set
	Target   uint64         // Candidates to check; 0 runs until ctx is cancelled
	Source   Source         // Candidate generator
	OnMatch  func(Match)    // Called synchronously for every match
	Checked  *atomic.Uint64 // Optional live counter shared with progress display
	Matched  *atomic.Uint64 // Optional live counter shared with progress display
}

// Run checks candidates one at a time until Target is reached or ctx is
// cancelled. Cancellation is observed before each candidate. The returned
// statistics are valid even when an error is returned; a Source failure
// aborts the run.
func Run(ctx context.Context, opts Options) (*Statistics, error) {
	stats := NewStatistics()
	if opts.Patterns == nil || opts.Patterns.Len() == 0 {
		return stats, ErrNoPatterns
	}
	if opts.Source == nil {
		return stats, errors.New("search: nil source")
	}

	matcher := pattern.NewMatcher(opts.Patterns)

	for opts.Target == 0 || stats.Checked < opts.Target {
		if ctx.Err() != nil {
			return stats, nil
		}

		cand, err := opts.Source.Generate()
		if err != nil {
			return stats, fmt.Errorf("generate candidate: %w", err)
		}

		stats.Checked++
		if opts.Checked != nil {
			opts.Checked.Add(1)
		}

		out, ok := matcher.Match(cand.Address)
		if !ok {
			continue
		}

		stats.Record(out)
		if opts.Matched != nil {
			opts.Matched.Add(1)
		}
		if opts.OnMatch != nil {
			opts.OnMatch(Match{Address: cand.Address, Secret: cand.Secret, Outcome: out})
		}
	}
	return stats, nil
}
