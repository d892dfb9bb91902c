package search

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/Amr-9/algohunter/pkg/pattern"
)

// Frequency is the symbol distribution observed at one address position.
type Frequency struct {
	Position int
	Total    uint64
	Counts   map[rune]uint64
}

// AnalyzePosition generates n candidates and counts the symbol found at
// position (negative positions count from the end).
func AnalyzePosition(ctx context.Context, src Source, n uint64, position int) (*Frequency, error) {
	idx := position
	if idx < 0 {
		idx += pattern.AddressLength
	}
	if idx < 0 || idx >= pattern.AddressLength {
		return nil, fmt.Errorf("position %d outside address of length %d", position, pattern.AddressLength)
	}

	freq := &Frequency{Position: idx, Counts: make(map[rune]uint64)}
	for freq.Total < n {
		if ctx.Err() != nil {
			break
		}
		cand, err := src.Generate()
		if err != nil {
			return freq, fmt.Errorf("generate candidate: %w", err)
		}
		if len(cand.Address) != pattern.AddressLength {
			return freq, fmt.Errorf("malformed address %q", cand.Address)
		}
		freq.Counts[rune(cand.Address[idx])]++
		freq.Total++
	}
	return freq, nil
}

// Symbols returns the observed symbols, most frequent first.
func (f *Frequency) Symbols() []rune {
	out := make([]rune, 0, len(f.Counts))
	for c := range f.Counts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if f.Counts[out[i]] != f.Counts[out[j]] {
			return f.Counts[out[i]] > f.Counts[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

// Missing returns alphabet symbols never observed.
func (f *Frequency) Missing() []rune {
	var out []rune
	for _, c := range pattern.Alphabet {
		if f.Counts[c] == 0 {
			out = append(out, c)
		}
	}
	return out
}

// Expected is the per-symbol count of a uniform distribution over the alphabet.
func (f *Frequency) Expected() float64 {
	return float64(f.Total) / float64(len(pattern.Alphabet))
}

// MaxDeviation returns the largest absolute difference between an observed
// count and the uniform expectation.
func (f *Frequency) MaxDeviation() float64 {
	expected := f.Expected()
	var max float64
	for _, n := range f.Counts {
		if d := math.Abs(float64(n) - expected); d > max {
			max = d
		}
	}
	return max
}
