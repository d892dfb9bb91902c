package search

import (
	"sort"

	"github.com/Amr-9/algohunter/pkg/pattern"
)

// Statistics counts the candidates a run checked and matched.
// It is owned by a single run; merge per-worker copies at completion.
type Statistics struct {
	Checked    uint64            `json:"checked"`
	Matched    uint64            `json:"matched"`
	PerPattern map[string]uint64 `json:"per_pattern"`
}

// NewStatistics returns empty statistics.
func NewStatistics() *Statistics {
	return &Statistics{PerPattern: make(map[string]uint64)}
}

// Record counts one match under its descriptor.
func (s *Statistics) Record(out pattern.Outcome) {
	s.Matched++
	s.PerPattern[out.Descriptor]++
}

// Merge adds other's counters into s.
func (s *Statistics) Merge(other *Statistics) {
	if other == nil {
		return
	}
	s.Checked += other.Checked
	s.Matched += other.Matched
	for d, n := range other.PerPattern {
		s.PerPattern[d] += n
	}
}

// Sum returns the total of the per-pattern counters.
func (s *Statistics) Sum() uint64 {
	var total uint64
	for _, n := range s.PerPattern {
		total += n
	}
	return total
}

// Descriptors returns the matched descriptors ordered by count, then name.
func (s *Statistics) Descriptors() []string {
	out := make([]string, 0, len(s.PerPattern))
	for d := range s.PerPattern {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := s.PerPattern[out[i]], s.PerPattern[out[j]]
		if ci != cj {
			return ci > cj
		}
		return out[i] < out[j]
	})
	return out
}
