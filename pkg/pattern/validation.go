package pattern

import "unicode/utf8"

// ValidateTerm checks that term is non-empty and uses only alphabet symbols.
func ValidateTerm(term string) error {
	if term == "" {
		return ErrEmptyTerm
	}
	if invalid := InvalidChars(term); len(invalid) > 0 {
		return &InvalidCharacterError{Term: term, Char: invalid[0]}
	}
	return nil
}

// ValidateLength checks that term has exactly the declared number of symbols.
func ValidateLength(term string, declared int) error {
	if len(term) != declared {
		return &LengthMismatchError{Term: term, Declared: declared}
	}
	return nil
}

// ValidateTerminal checks that a back-anchored term that keeps the last
// symbol ends with a legal terminal symbol. Other positions always pass.
func ValidateTerminal(term string, pos Position, excludeLast bool) error {
	if pos != Back || excludeLast || term == "" {
		return nil
	}
	last, _ := utf8.DecodeLastRuneInString(term)
	if !IsValidTerminal(last) {
		return &InvalidTerminalError{Term: term, Char: last, Valid: TerminalSymbols()}
	}
	return nil
}

// validateFits rejects terms whose window cannot lie inside an address.
func validateFits(s Spec) error {
	limit := AddressLength
	if s.Position == Back && s.ExcludeLast {
		limit--
	}
	if len(s.Term) > limit {
		return &TermTooLongError{Term: s.Term, Max: limit}
	}
	return nil
}
