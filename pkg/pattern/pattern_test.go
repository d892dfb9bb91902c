package pattern

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addr builds a full-length address from a prefix and suffix, filling the
// middle with fill.
func addr(prefix, fill, suffix string) string {
	return prefix + strings.Repeat(fill, AddressLength-len(prefix)-len(suffix)) + suffix
}

func mustSpec(t *testing.T, term string, pos Position, excludeLast bool) Spec {
	t.Helper()
	s, err := NewSpec(term, len(term), pos, excludeLast)
	require.NoError(t, err)
	return s
}

func mustSet(t *testing.T, specs ...Spec) *Set {
	t.Helper()
	set, err := NewSet(specs...)
	require.NoError(t, err)
	return set
}

func TestAlphabet(t *testing.T) {
	assert.Len(t, Alphabet, 32)
	assert.Len(t, TerminalSet, 8)
	for _, c := range TerminalSet {
		assert.True(t, IsValidChar(c), "terminal %q must be in alphabet", c)
	}
	assert.Equal(t, []string{"4", "A", "E", "I", "M", "Q", "U", "Y"}, TerminalSymbols())
	assert.Equal(t, []rune{'0', 'b'}, InvalidChars("A0Bb"))
	assert.True(t, IsValidAddress(addr("", "A", "")))
	assert.False(t, IsValidAddress(addr("", "A", "")+"A"))
	assert.False(t, IsValidAddress(addr("1", "A", "")))
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in      string
		want    Position
		wantErr bool
	}{
		{in: "F", want: Front},
		{in: "b", want: Back},
		{in: " A ", want: Anywhere},
		{in: "FB", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePosition(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPosition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewSpec(t *testing.T) {
	tests := []struct {
		name        string
		term        string
		digits      int
		pos         Position
		excludeLast bool
		wantErr     error
	}{
		{name: "front", term: "VANITY", digits: 6, pos: Front},
		{name: "back legal terminal", term: "ABCDE", digits: 5, pos: Back},
		{name: "back illegal terminal", term: "ABCDZ", digits: 5, pos: Back, wantErr: ErrInvalidTerminal},
		{name: "back illegal terminal excluded", term: "ABCDZ", digits: 5, pos: Back, excludeLast: true},
		{name: "front ignores terminal", term: "ABCDZ", digits: 5, pos: Front},
		{name: "anywhere ignores terminal", term: "ZZ", digits: 2, pos: Anywhere},
		{name: "lowercase rejected", term: "abc", digits: 3, pos: Front, wantErr: ErrInvalidCharacter},
		{name: "digit outside base32", term: "A1", digits: 2, pos: Anywhere, wantErr: ErrInvalidCharacter},
		{name: "length mismatch", term: "ABC", digits: 4, pos: Front, wantErr: ErrLengthMismatch},
		{name: "empty", term: "", digits: 0, pos: Front, wantErr: ErrEmptyTerm},
		{name: "too long", term: strings.Repeat("A", AddressLength+1), digits: AddressLength + 1, pos: Front, wantErr: ErrTermTooLong},
		{name: "excluded back full length", term: strings.Repeat("A", AddressLength), digits: AddressLength, pos: Back, excludeLast: true, wantErr: ErrTermTooLong},
		{name: "bad position", term: "A", digits: 1, pos: Position(7), wantErr: ErrInvalidPosition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSpec(tt.term, tt.digits, tt.pos, tt.excludeLast)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.term, s.Term)
			assert.Equal(t, tt.pos, s.Position)
			assert.Empty(t, s.LinkID)
		})
	}
}

func TestNewSpec_ExcludeLastOnlyForBack(t *testing.T) {
	s := mustSpec(t, "ABC", Front, true)
	assert.False(t, s.ExcludeLast)
}

func TestValidationErrorsCarryContext(t *testing.T) {
	err := ValidateTerm("AB!C")
	var charErr *InvalidCharacterError
	require.ErrorAs(t, err, &charErr)
	assert.Equal(t, '!', charErr.Char)
	assert.Equal(t, "AB!C", charErr.Term)

	err = ValidateLength("ABC", 5)
	var lenErr *LengthMismatchError
	require.ErrorAs(t, err, &lenErr)
	assert.Equal(t, 5, lenErr.Declared)
	assert.Contains(t, err.Error(), "digits 5")

	err = ValidateTerminal("ABCDZ", Back, false)
	var termErr *InvalidTerminalError
	require.ErrorAs(t, err, &termErr)
	assert.Equal(t, 'Z', termErr.Char)
	assert.Equal(t, TerminalSymbols(), termErr.Valid)
	assert.Contains(t, err.Error(), "4, A, E, I, M, Q, U, Y")

	assert.NoError(t, ValidateTerminal("ABCDZ", Back, true))
	assert.NoError(t, ValidateTerminal("ABCDZ", Front, false))
}

func TestNewLinkedPair(t *testing.T) {
	front, back, err := NewLinkedPair("AB", 2, "YZ", 2, true)
	require.NoError(t, err)
	assert.Equal(t, Front, front.Position)
	assert.Equal(t, Back, back.Position)
	assert.True(t, back.ExcludeLast)
	assert.NotEmpty(t, front.LinkID)
	assert.Equal(t, front.LinkID, back.LinkID)

	front2, _, err := NewLinkedPair("AB", 2, "YA", 2, false)
	require.NoError(t, err)
	assert.NotEqual(t, front.LinkID, front2.LinkID, "each pair gets a fresh link")

	// Front side never requires a terminal symbol; back side does.
	_, _, err = NewLinkedPair("ABZ", 3, "YZ", 2, false)
	assert.ErrorIs(t, err, ErrInvalidTerminal)
	assert.Contains(t, err.Error(), "back term")

	_, _, err = NewLinkedPair("AB", 3, "YA", 2, false)
	assert.ErrorIs(t, err, ErrLengthMismatch)
	assert.Contains(t, err.Error(), "front term")
}

func TestNewSet_Links(t *testing.T) {
	front, back, err := NewLinkedPair("AB", 2, "YA", 2, false)
	require.NoError(t, err)
	single := mustSpec(t, "CAT", Anywhere, false)

	set := mustSet(t, single, back, front)
	require.Equal(t, 2, set.Len())
	entries := set.Entries()
	assert.False(t, entries[0].Linked())
	require.True(t, entries[1].Linked())
	assert.Equal(t, "AB", entries[1].Spec.Term)
	assert.Equal(t, "YA", entries[1].Partner.Term)
	assert.Equal(t, "AB & YA", entries[1].Descriptor())
	assert.Len(t, set.Specs(), 3)

	_, err = NewSet(front)
	assert.ErrorIs(t, err, ErrInvalidLink)

	_, err = NewSet(front, back, back)
	assert.ErrorIs(t, err, ErrInvalidLink)

	twin := front
	_, err = NewSet(front, twin)
	assert.ErrorIs(t, err, ErrInvalidLink)

	_, err = NewSet()
	assert.ErrorIs(t, err, ErrEmptySet)

	_, err = NewSet(Spec{Term: "ABCDZ", Position: Back})
	assert.ErrorIs(t, err, ErrInvalidTerminal)
}

func TestSet_HasTerminalConstraint(t *testing.T) {
	assert.False(t, mustSet(t, mustSpec(t, "AB", Front, false)).HasTerminalConstraint())
	assert.False(t, mustSet(t, mustSpec(t, "AZ", Back, true)).HasTerminalConstraint())
	assert.True(t, mustSet(t, mustSpec(t, "AE", Back, false)).HasTerminalConstraint())
}

func TestSet_EntriesAreCopies(t *testing.T) {
	front, back, err := NewLinkedPair("AB", 2, "YA", 2, false)
	require.NoError(t, err)
	set := mustSet(t, front, back)

	entries := set.Entries()
	entries[0].Partner.Term = "QQ"
	assert.Equal(t, "YA", set.Entries()[0].Partner.Term)
}

func TestSpecWindow(t *testing.T) {
	w, ok := mustSpec(t, "ABC", Front, false).Window()
	require.True(t, ok)
	assert.Equal(t, Window{Start: 0, End: 3}, w)

	w, ok = mustSpec(t, "ABE", Back, false).Window()
	require.True(t, ok)
	assert.Equal(t, Window{Start: 55, End: 58}, w)

	w, ok = mustSpec(t, "ABC", Back, true).Window()
	require.True(t, ok)
	assert.Equal(t, Window{Start: 54, End: 57}, w)
	assert.Equal(t, 3, w.Len())

	_, ok = mustSpec(t, "ABC", Anywhere, false).Window()
	assert.False(t, ok)
}
