// Package pattern implements positional vanity patterns for Algorand
// addresses: construction, validation and matching.
package pattern

import (
	"sort"
	"strings"
)

// Algorand address format constants.
const (
	// Alphabet is the RFC 4648 base32 charset used by Algorand addresses.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

	// AddressLength is the number of symbols in every Algorand address.
	AddressLength = 58

	// TerminalSet holds the only symbols that can end an address. The last
	// symbol encodes 2 data bits padded with zeros.
	TerminalSet = "AEIMQUY4"
)

// IsValidChar checks if a character belongs to the address alphabet.
// Matching is case-sensitive; addresses are always upper-case.
func IsValidChar(c rune) bool {
	return strings.ContainsRune(Alphabet, c)
}

// IsValidTerminal checks if a character can occupy the last address position.
func IsValidTerminal(c rune) bool {
	return strings.ContainsRune(TerminalSet, c)
}

// InvalidChars returns any characters of s outside the address alphabet.
func InvalidChars(s string) []rune {
	var invalid []rune
	for _, c := range s {
		if !IsValidChar(c) {
			invalid = append(invalid, c)
		}
	}
	return invalid
}

// IsValidAddress reports whether s has the exact shape of an address.
func IsValidAddress(s string) bool {
	return len(s) == AddressLength && len(InvalidChars(s)) == 0
}

// TerminalSymbols returns the legal terminal symbols in sorted order.
func TerminalSymbols() []string {
	out := make([]string, 0, len(TerminalSet))
	for _, c := range TerminalSet {
		out = append(out, string(c))
	}
	sort.Strings(out)
	return out
}
