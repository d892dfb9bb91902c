package cpu

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Amr-9/algohunter/pkg/generator"
	"github.com/Amr-9/algohunter/pkg/pattern"
	"github.com/Amr-9/algohunter/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cycleSource emits a matching address every `every` candidates.
type cycleSource struct {
	n     uint64
	every uint64
	fail  uint64
}

func (s *cycleSource) Generate() (search.Candidate, error) {
	s.n++
	if s.fail > 0 && s.n == s.fail {
		return search.Candidate{}, errors.New("generator broke")
	}
	fill := strings.Repeat("B", pattern.AddressLength-3)
	if s.n%s.every == 0 {
		return search.Candidate{Address: "CAT" + fill, Secret: []byte("secret")}, nil
	}
	return search.Candidate{Address: "BBB" + fill}, nil
}

func catSet(t *testing.T) *pattern.Set {
	t.Helper()
	spec, err := pattern.NewSpec("CAT", 3, pattern.Front, false)
	require.NoError(t, err)
	set, err := pattern.NewSet(spec)
	require.NoError(t, err)
	return set
}

func drain(ch <-chan search.Match) []search.Match {
	var out []search.Match
	for m := range ch {
		out = append(out, m)
	}
	return out
}

func TestCPUGenerator_MergesWorkerStatistics(t *testing.T) {
	gen := NewCPUGenerator(4, func() (search.Source, error) {
		return &cycleSource{every: 5}, nil
	}, nil)
	assert.Equal(t, "CPU", gen.Name())

	results, err := gen.Start(context.Background(), &generator.Config{Patterns: catSet(t), Count: 1000})
	require.NoError(t, err)

	matches := drain(results)
	stats, err := gen.Wait()
	require.NoError(t, err)

	// 4 shards of 250, each matching every 5th candidate.
	assert.Equal(t, uint64(1000), stats.Checked)
	assert.Equal(t, uint64(200), stats.Matched)
	assert.Equal(t, stats.Matched, stats.Sum())
	assert.Equal(t, uint64(200), stats.PerPattern["CAT"])
	assert.Len(t, matches, 200)

	live := gen.Stats()
	assert.Equal(t, uint64(1000), live.Attempts)
	assert.Equal(t, uint64(200), live.Matches)
}

func TestCPUGenerator_ConfigWorkersOverride(t *testing.T) {
	var created atomic.Int32
	gen := NewCPUGenerator(8, func() (search.Source, error) {
		created.Add(1)
		return &cycleSource{every: 1}, nil
	}, nil)

	results, err := gen.Start(context.Background(), &generator.Config{Patterns: catSet(t), Count: 9, Workers: 3})
	require.NoError(t, err)
	assert.Len(t, drain(results), 9)

	_, err = gen.Wait()
	require.NoError(t, err)
	assert.Equal(t, int32(3), created.Load())
}

func TestCPUGenerator_Cancellation(t *testing.T) {
	gen := NewCPUGenerator(2, func() (search.Source, error) {
		return &cycleSource{every: 1000}, nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	results, err := gen.Start(ctx, &generator.Config{Patterns: catSet(t)})
	require.NoError(t, err)

	// Workers block on a full results channel, so consume while waiting.
	drained := make(chan []search.Match, 1)
	go func() { drained <- drain(results) }()

	require.Eventually(t, func() bool { return gen.Stats().Attempts > 5000 }, 5*time.Second, time.Millisecond)
	cancel()

	matches := <-drained
	stats, err := gen.Wait()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.Checked, uint64(5000))
	assert.Equal(t, uint64(len(matches)), stats.Matched)
}

func TestCPUGenerator_WorkerFailureAbortsRun(t *testing.T) {
	var n atomic.Int32
	gen := NewCPUGenerator(2, func() (search.Source, error) {
		if n.Add(1) == 1 {
			return &cycleSource{every: 2, fail: 10}, nil
		}
		return &cycleSource{every: 2}, nil
	}, nil)

	results, err := gen.Start(context.Background(), &generator.Config{Patterns: catSet(t)})
	require.NoError(t, err)
	matches := drain(results)

	stats, err := gen.Wait()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generator broke")
	assert.GreaterOrEqual(t, stats.Checked, uint64(9))
	assert.Equal(t, uint64(len(matches)), stats.Matched)
}

func TestCPUGenerator_StartErrors(t *testing.T) {
	gen := NewCPUGenerator(1, func() (search.Source, error) {
		return nil, errors.New("no entropy")
	}, nil)

	_, err := gen.Start(context.Background(), &generator.Config{})
	assert.ErrorIs(t, err, search.ErrNoPatterns)

	_, err = gen.Start(context.Background(), &generator.Config{Patterns: catSet(t), Count: 1})
	assert.ErrorContains(t, err, "no entropy")
	// A failed start leaves the generator startable.
	_, err = gen.Start(context.Background(), &generator.Config{Patterns: catSet(t), Count: 1})
	assert.ErrorContains(t, err, "no entropy")

	ok := NewCPUGenerator(1, func() (search.Source, error) { return &cycleSource{every: 1}, nil }, nil)
	results, err := ok.Start(context.Background(), &generator.Config{Patterns: catSet(t), Count: 1})
	require.NoError(t, err)
	_, err = ok.Start(context.Background(), &generator.Config{Patterns: catSet(t), Count: 1})
	assert.ErrorIs(t, err, generator.ErrAlreadyStarted)
	drain(results)
}

func TestCPUGenerator_WaitBeforeStart(t *testing.T) {
	gen := NewCPUGenerator(1, nil, nil)
	stats, err := gen.Wait()
	require.NoError(t, err)
	assert.Zero(t, stats.Checked)
	assert.Zero(t, gen.Stats().ElapsedSecs)
}

func TestNewCPUGenerator_DefaultWorkers(t *testing.T) {
	assert.Equal(t, runtime.NumCPU(), NewCPUGenerator(0, nil, nil).Workers())
	assert.Equal(t, 3, NewCPUGenerator(3, nil, nil).Workers())
	assert.Equal(t, "CPU", NewCPUGenerator(1, nil, nil).Name())
}

func TestCPUGenerator_ConcurrentStartRunsOnce(t *testing.T) {
	gen := NewCPUGenerator(1, func() (search.Source, error) { return &cycleSource{every: 1}, nil }, nil)

	set := catSet(t)
	const callers = 8
	var wg sync.WaitGroup
	var started atomic.Int32
	var results <-chan search.Match
	var mu sync.Mutex
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch, err := gen.Start(context.Background(), &generator.Config{Patterns: set, Count: 3})
			if err != nil {
				assert.ErrorIs(t, err, generator.ErrAlreadyStarted)
				return
			}
			started.Add(1)
			mu.Lock()
			results = ch
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), started.Load())
	assert.Len(t, drain(results), 3)
}
