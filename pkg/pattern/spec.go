package pattern

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Position is where a term must appear in an address.
type Position int

const (
	Front    Position = iota // Prefix of the address
	Back                     // Suffix of the address (optionally before the last symbol)
	Anywhere                 // Any contiguous run of symbols
)

// String returns the position name.
func (p Position) String() string {
	switch p {
	case Front:
		return "Front"
	case Back:
		return "Back"
	case Anywhere:
		return "Anywhere"
	default:
		return "Unknown"
	}
}

// Code returns the single-letter code used in pattern files.
func (p Position) Code() string {
	switch p {
	case Front:
		return "F"
	case Back:
		return "B"
	case Anywhere:
		return "A"
	default:
		return "?"
	}
}

// ParsePosition parses a single-position code (F, B or A), case-insensitive.
// The combined FB code is not a Position; see NewLinkedPair.
func ParsePosition(s string) (Position, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "F":
		return Front, nil
	case "B":
		return Back, nil
	case "A":
		return Anywhere, nil
	default:
		return 0, fmt.Errorf("%w: %q (expected F, B or A)", ErrInvalidPosition, s)
	}
}

// Window is a half-open range [Start, End) of address positions.
type Window struct {
	Start int
	End   int
}

// Len returns the number of positions covered.
func (w Window) Len() int {
	return w.End - w.Start
}

// Spec is a single validated positional pattern. Two specs sharing a
// non-empty LinkID form a front+back pair that must match together.
type Spec struct {
	Term        string
	Position    Position
	ExcludeLast bool   // Back only: align the term one symbol before the end
	LinkID      string // Non-empty for halves of a linked pair
}

// NewSpec builds a standalone pattern from a complete description.
// digits is the separately declared term length and must agree with term.
// ExcludeLast is dropped for positions other than Back.
func NewSpec(term string, digits int, pos Position, excludeLast bool) (Spec, error) {
	if pos != Back {
		excludeLast = false
	}
	s := Spec{Term: term, Position: pos, ExcludeLast: excludeLast}
	if err := ValidateTerm(term); err != nil {
		return Spec{}, err
	}
	if err := ValidateLength(term, digits); err != nil {
		return Spec{}, err
	}
	if err := s.Validate(); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// NewLinkedPair builds the two halves of a front+back pattern. The front half
// never needs a legal terminal symbol; the back half does unless
// backExcludeLast is set. Both halves share a fresh LinkID.
func NewLinkedPair(frontTerm string, frontLen int, backTerm string, backLen int, backExcludeLast bool) (Spec, Spec, error) {
	front, err := NewSpec(frontTerm, frontLen, Front, false)
	if err != nil {
		return Spec{}, Spec{}, fmt.Errorf("front term: %w", err)
	}
	back, err := NewSpec(backTerm, backLen, Back, backExcludeLast)
	if err != nil {
		return Spec{}, Spec{}, fmt.Errorf("back term: %w", err)
	}
	link := uuid.New().String()
	front.LinkID = link
	back.LinkID = link
	return front, back, nil
}

// Validate re-checks the invariants of an already built spec.
func (s Spec) Validate() error {
	if s.Position < Front || s.Position > Anywhere {
		return fmt.Errorf("%w: %d", ErrInvalidPosition, int(s.Position))
	}
	if err := ValidateTerm(s.Term); err != nil {
		return err
	}
	if err := ValidateTerminal(s.Term, s.Position, s.ExcludeLast); err != nil {
		return err
	}
	return validateFits(s)
}

// Linked reports whether the spec is half of a front+back pair.
func (s Spec) Linked() bool {
	return s.LinkID != ""
}

// Window returns the fixed address window an anchored spec compares against.
// Anywhere specs have no fixed window and return false.
func (s Spec) Window() (Window, bool) {
	n := len(s.Term)
	switch s.Position {
	case Front:
		return Window{Start: 0, End: n}, true
	case Back:
		end := AddressLength
		if s.ExcludeLast {
			end--
		}
		return Window{Start: end - n, End: end}, true
	default:
		return Window{}, false
	}
}

// Descriptor names the spec in reports and statistics.
func (s Spec) Descriptor() string {
	if s.Position == Back && s.ExcludeLast {
		return s.Term + excludedSuffix
	}
	return s.Term
}

const excludedSuffix = " (excl. last)"
