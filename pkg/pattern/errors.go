package pattern

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for pattern validation. Typed errors below wrap them so
// callers can use errors.Is and still read the offending input.
var (
	ErrEmptyTerm        = errors.New("empty search term")
	ErrInvalidCharacter = errors.New("invalid character")
	ErrLengthMismatch   = errors.New("length mismatch")
	ErrInvalidTerminal  = errors.New("invalid terminal character")
	ErrTermTooLong      = errors.New("term does not fit in address")
	ErrInvalidPosition  = errors.New("invalid position")
	ErrInvalidLink      = errors.New("invalid linked pair")
	ErrEmptySet         = errors.New("no search terms")
)

// InvalidCharacterError reports a term symbol outside the alphabet.
type InvalidCharacterError struct {
	Term string
	Char rune
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("invalid character %q in term %q (allowed: %s)", e.Char, e.Term, Alphabet)
}

func (e *InvalidCharacterError) Unwrap() error { return ErrInvalidCharacter }

// LengthMismatchError reports a declared digit count that disagrees with the term.
type LengthMismatchError struct {
	Term     string
	Declared int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("term %q length %d doesn't match specified digits %d", e.Term, len(e.Term), e.Declared)
}

func (e *LengthMismatchError) Unwrap() error { return ErrLengthMismatch }

// InvalidTerminalError reports a back-anchored term that can never end an
// address. Valid lists the legal terminal symbols.
type InvalidTerminalError struct {
	Term  string
	Char  rune
	Valid []string
}

func (e *InvalidTerminalError) Error() string {
	return fmt.Sprintf("term %q ends with %q: address can only end with these characters: %s",
		e.Term, e.Char, strings.Join(e.Valid, ", "))
}

func (e *InvalidTerminalError) Unwrap() error { return ErrInvalidTerminal }

// TermTooLongError reports a term whose window would not fit in an address.
type TermTooLongError struct {
	Term string
	Max  int
}

func (e *TermTooLongError) Error() string {
	return fmt.Sprintf("term %q is %d characters, at most %d fit", e.Term, len(e.Term), e.Max)
}

func (e *TermTooLongError) Unwrap() error { return ErrTermTooLong }
