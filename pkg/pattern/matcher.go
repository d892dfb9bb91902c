package pattern

import "strings"

// Outcome describes which alternative of a Set an address satisfied.
type Outcome struct {
	Descriptor  string   // Entry descriptor, also the statistics key
	Index       int      // Entry index within the set
	ExcludeLast bool     // Back window skipped the final symbol
	Windows     []Window // Matched address positions, front first
}

// Matcher evaluates addresses against a Set. It holds no mutable state and
// is safe for concurrent use.
type Matcher struct {
	entries []Entry
}

// NewMatcher creates a matcher for set.
func NewMatcher(set *Set) *Matcher {
	return &Matcher{entries: set.entries}
}

// Match returns the first entry the address satisfies, in set order.
// A linked pair matches only if both halves do. Addresses that are not
// exactly AddressLength symbols never match.
func (m *Matcher) Match(address string) (Outcome, bool) {
	if len(address) != AddressLength {
		return Outcome{}, false
	}

	for i, e := range m.entries {
		var windows []Window
		var ok bool
		if e.Partner != nil {
			windows, ok = matchPair(address, e.Spec, *e.Partner)
		} else {
			windows, ok = matchSpec(address, e.Spec)
		}
		if ok {
			return Outcome{
				Descriptor:  e.Descriptor(),
				Index:       i,
				ExcludeLast: e.ExcludeLast(),
				Windows:     windows,
			}, true
		}
	}
	return Outcome{}, false
}

// Matches checks if the address satisfies any entry of the set.
func (m *Matcher) Matches(address string) bool {
	_, ok := m.Match(address)
	return ok
}

// Match is a convenience wrapper for one-off checks.
func Match(address string, set *Set) (Outcome, bool) {
	return NewMatcher(set).Match(address)
}

func matchPair(address string, front, back Spec) ([]Window, bool) {
	fw, ok := matchSpec(address, front)
	if !ok {
		return nil, false
	}
	bw, ok := matchSpec(address, back)
	if !ok {
		return nil, false
	}
	return append(fw, bw...), true
}

func matchSpec(address string, s Spec) ([]Window, bool) {
	if s.Position == Anywhere {
		idx := strings.Index(address, s.Term)
		if idx < 0 {
			return nil, false
		}
		return []Window{{Start: idx, End: idx + len(s.Term)}}, true
	}

	w, ok := s.Window()
	if !ok || w.Start < 0 || w.End > len(address) {
		return nil, false
	}
	if address[w.Start:w.End] != s.Term {
		return nil, false
	}
	return []Window{w}, true
}
