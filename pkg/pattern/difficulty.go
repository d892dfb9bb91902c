package pattern

import "math"

// Probability estimates the chance that a uniformly random address
// satisfies the entry. The final address symbol only carries three bits, so
// a back term that ends the address is eight times likelier than its length
// alone suggests.
func (e Entry) Probability() float64 {
	p := specProbability(e.Spec)
	if e.Partner != nil {
		p *= specProbability(*e.Partner)
	}
	return p
}

func specProbability(s Spec) float64 {
	n := len(s.Term)
	switch {
	case s.Position == Anywhere:
		return math.Min(1, float64(AddressLength-n+1)*math.Pow(alphabetSize, -float64(n)))
	case s.Position == Back && !s.ExcludeLast:
		return math.Pow(alphabetSize, -float64(n-1)) / float64(len(TerminalSet))
	default:
		return math.Pow(alphabetSize, -float64(n))
	}
}

const alphabetSize = float64(len(Alphabet))

// Difficulty returns the expected number of addresses to check per match,
// using the union bound over the set's entries.
func (s *Set) Difficulty() uint64 {
	var p float64
	for _, e := range s.entries {
		p += e.Probability()
	}
	if p >= 1 {
		return 1
	}
	if p <= 0 {
		return math.MaxUint64
	}
	d := math.Ceil(1 / p)
	if d >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(d)
}
