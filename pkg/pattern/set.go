package pattern

import "fmt"

// Entry is one alternative of a Set: a standalone spec, or a linked
// front+back pair where Spec is the front half and Partner the back half.
type Entry struct {
	Spec    Spec
	Partner *Spec
}

// Linked reports whether the entry is a front+back pair.
func (e Entry) Linked() bool {
	return e.Partner != nil
}

// ExcludeLast reports whether the entry's back window skips the last symbol.
func (e Entry) ExcludeLast() bool {
	if e.Partner != nil {
		return e.Partner.ExcludeLast
	}
	return e.Spec.Position == Back && e.Spec.ExcludeLast
}

// Descriptor names the entry in reports and statistics.
func (e Entry) Descriptor() string {
	if e.Partner == nil {
		return e.Spec.Descriptor()
	}
	d := e.Spec.Term + " & " + e.Partner.Term
	if e.Partner.ExcludeLast {
		d += excludedSuffix
	}
	return d
}

// Windows returns the fixed windows of an anchored entry, front first.
// Anywhere entries return nil.
func (e Entry) Windows() []Window {
	var out []Window
	if w, ok := e.Spec.Window(); ok {
		out = append(out, w)
	}
	if e.Partner != nil {
		if w, ok := e.Partner.Window(); ok {
			out = append(out, w)
		}
	}
	return out
}

// Set is an ordered, immutable collection of alternatives. An address
// satisfies the set if any standalone spec matches or both halves of any
// linked pair match.
type Set struct {
	specs   []Spec
	entries []Entry
}

// NewSet validates specs and groups linked halves into pairs. Each LinkID
// must be shared by exactly two specs, one Front and one Back. A pair takes
// the position of whichever half appears first.
func NewSet(specs ...Spec) (*Set, error) {
	if len(specs) == 0 {
		return nil, ErrEmptySet
	}

	set := &Set{specs: append([]Spec(nil), specs...)}
	pairIndex := make(map[string]int)
	halves := make(map[string]int)

	for i, s := range specs {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("term %d: %w", i+1, err)
		}
		if !s.Linked() {
			set.entries = append(set.entries, Entry{Spec: s})
			continue
		}
		if s.Position == Anywhere {
			return nil, fmt.Errorf("%w: term %q: anywhere terms cannot be linked", ErrInvalidLink, s.Term)
		}

		halves[s.LinkID]++
		idx, seen := pairIndex[s.LinkID]
		if !seen {
			pairIndex[s.LinkID] = len(set.entries)
			half := s
			if s.Position == Front {
				set.entries = append(set.entries, Entry{Spec: s})
			} else {
				set.entries = append(set.entries, Entry{Partner: &half})
			}
			continue
		}

		if halves[s.LinkID] > 2 {
			return nil, fmt.Errorf("%w: link %s used by more than two terms", ErrInvalidLink, s.LinkID)
		}
		entry := &set.entries[idx]
		if s.Position == Front {
			if entry.Partner == nil {
				return nil, fmt.Errorf("%w: link %s has two front terms", ErrInvalidLink, s.LinkID)
			}
			entry.Spec = s
		} else {
			if entry.Partner != nil {
				return nil, fmt.Errorf("%w: link %s has two back terms", ErrInvalidLink, s.LinkID)
			}
			half := s
			entry.Partner = &half
		}
	}

	for link, n := range halves {
		if n != 2 {
			return nil, fmt.Errorf("%w: link %s has only one term", ErrInvalidLink, link)
		}
	}
	return set, nil
}

// Len returns the number of alternatives (a linked pair counts once).
func (s *Set) Len() int {
	return len(s.entries)
}

// Entries returns the alternatives in evaluation order.
func (s *Set) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e
		if e.Partner != nil {
			back := *e.Partner
			out[i].Partner = &back
		}
	}
	return out
}

// Specs returns the specs in the order they were given.
func (s *Set) Specs() []Spec {
	return append([]Spec(nil), s.specs...)
}

// HasTerminalConstraint reports whether any back term must end the address,
// which is when users benefit from the list of legal terminal symbols.
func (s *Set) HasTerminalConstraint() bool {
	for _, sp := range s.specs {
		if sp.Position == Back && !sp.ExcludeLast {
			return true
		}
	}
	return false
}
