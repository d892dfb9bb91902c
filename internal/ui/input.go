package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Amr-9/algohunter/pkg/loader"
	"github.com/Amr-9/algohunter/pkg/pattern"
)

// ErrInputClosed is returned when the input ends before a prompt is answered.
var ErrInputClosed = errors.New("input closed")

// Prompter asks the user for search settings on an interactive terminal.
// Invalid answers are reported and asked again; only closed input aborts.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter reading answers from in.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) ask(prompt string) (string, error) {
	fmt.Fprintf(p.out, "    %s%s%s\n    %s→%s ", ColorCyan, prompt, ColorReset, ColorGreen, ColorReset)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", ErrInputClosed
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *Prompter) warn(format string, args ...any) {
	fmt.Fprintf(p.out, "    %s⚠ %s%s\n", ColorRed, fmt.Sprintf(format, args...), ColorReset)
}

// AskNumber asks until a positive whole number is entered.
func (p *Prompter) AskNumber(prompt string) (uint64, error) {
	for {
		answer, err := p.ask(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseUint(strings.ReplaceAll(answer, ",", ""), 10, 64)
		if err != nil || n == 0 {
			p.warn("Please enter a positive number.")
			continue
		}
		return n, nil
	}
}

// AskYesNo asks until Y or N is entered.
func (p *Prompter) AskYesNo(prompt string) (bool, error) {
	for {
		answer, err := p.ask(prompt + " (Y/N)")
		if err != nil {
			return false, err
		}
		switch strings.ToUpper(answer) {
		case "Y", "YES":
			return true, nil
		case "N", "NO":
			return false, nil
		}
		p.warn("Please enter Y or N.")
	}
}

// AskToContinue asks whether to keep searching after a bounded run.
func (p *Prompter) AskToContinue() bool {
	fmt.Fprintf(p.out, "\n    %s[Enter]%s Search again  │  %s[Q]%s Exit\n", ColorGreen, ColorReset, ColorRed, ColorReset)
	fmt.Fprintf(p.out, "    %s→%s ", ColorCyan, ColorReset)
	input, err := p.in.ReadString('\n')
	if err != nil && input == "" {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input != "q" && input != "quit" && input != "exit"
}

// ChooseSet offers the default pattern file, a custom file or manual entry.
// A file that fails to load falls back to manual entry.
func (p *Prompter) ChooseSet(defaultFile string, target uint64) (*pattern.Set, error) {
	fmt.Fprintf(p.out, "\n    %s🎯 SEARCH TERMS%s\n", ColorPurple+ColorBold, ColorReset)
	fmt.Fprintf(p.out, "    %s[1]%s Load default search terms %s(%s)%s\n", ColorCyan, ColorReset, ColorDim, defaultFile, ColorReset)
	fmt.Fprintf(p.out, "    %s[2]%s Load search terms from a custom file\n", ColorCyan, ColorReset)
	fmt.Fprintf(p.out, "    %s[3]%s Enter search terms manually\n", ColorCyan, ColorReset)

	var choice string
	for {
		answer, err := p.ask("Enter your choice (1, 2 or 3):")
		if err != nil {
			return nil, err
		}
		if answer == "1" || answer == "2" || answer == "3" {
			choice = answer
			break
		}
		p.warn("Please enter 1, 2, or 3.")
	}

	path := defaultFile
	if choice == "2" {
		answer, err := p.ask("Path to your search terms file (Enter to skip):")
		if err != nil {
			return nil, err
		}
		path = answer
	}
	if choice != "3" && path != "" {
		set, err := loader.LoadFile(path)
		if err == nil {
			PrintSearchTerms(p.out, set, target)
			return set, nil
		}
		p.warn("%v", err)
	}
	if choice != "3" {
		fmt.Fprintf(p.out, "    %sFalling back to manual entry...%s\n", ColorYellow, ColorReset)
	}
	return p.PromptPatterns(target)
}

// PromptPatterns builds a pattern set one entry at a time.
func (p *Prompter) PromptPatterns(target uint64) (*pattern.Set, error) {
	var specs []pattern.Spec
	for {
		entry, err := p.askEntry()
		if err != nil {
			return nil, err
		}
		specs = append(specs, entry...)

		set, err := pattern.NewSet(specs...)
		if err != nil {
			return nil, err
		}
		PrintSearchTerms(p.out, set, target)

		more, err := p.AskYesNo("Do you want to add another search term?")
		if err != nil {
			return nil, err
		}
		if !more {
			return set, nil
		}
	}
}

func (p *Prompter) askPosition() (string, error) {
	fmt.Fprintf(p.out, "\n    %sSearch locations:%s\n", ColorBold, ColorReset)
	fmt.Fprintf(p.out, "    %sF%s  Front of address\n", ColorCyan, ColorReset)
	fmt.Fprintf(p.out, "    %sB%s  Back of address\n", ColorCyan, ColorReset)
	fmt.Fprintf(p.out, "    %sA%s  Anywhere in address\n", ColorCyan, ColorReset)
	fmt.Fprintf(p.out, "    %sFB%s Front & Back combination\n", ColorCyan, ColorReset)
	for {
		answer, err := p.ask("Select search location (F/B/A/FB):")
		if err != nil {
			return "", err
		}
		pos := strings.ToUpper(answer)
		switch pos {
		case "F", "B", "A", "FB":
			return pos, nil
		}
		p.warn("Invalid selection. Please choose F, B, A, or FB.")
	}
}

// askEntry returns one standalone spec, or both halves of a linked pair.
func (p *Prompter) askEntry() ([]pattern.Spec, error) {
	pos, err := p.askPosition()
	if err != nil {
		return nil, err
	}

	excludeLast := false
	if pos == "B" || pos == "FB" {
		if excludeLast, err = p.AskYesNo("Exclude last character?"); err != nil {
			return nil, err
		}
	}

	if pos == "FB" {
		front, err := p.askSpec("at the front", pattern.Front, false)
		if err != nil {
			return nil, err
		}
		back, err := p.askSpec("at the back", pattern.Back, excludeLast)
		if err != nil {
			return nil, err
		}
		f, b, err := pattern.NewLinkedPair(front.Term, len(front.Term), back.Term, len(back.Term), excludeLast)
		if err != nil {
			return nil, err
		}
		return []pattern.Spec{f, b}, nil
	}

	position, err := pattern.ParsePosition(pos)
	if err != nil {
		return nil, err
	}
	where := map[pattern.Position]string{
		pattern.Front:    "at the front",
		pattern.Back:     "at the back",
		pattern.Anywhere: "for",
	}[position]
	spec, err := p.askSpec(where, position, excludeLast)
	if err != nil {
		return nil, err
	}
	return []pattern.Spec{spec}, nil
}

// askSpec asks for a length and a term until they form a valid spec.
func (p *Prompter) askSpec(where string, pos pattern.Position, excludeLast bool) (pattern.Spec, error) {
	limit := uint64(pattern.AddressLength)
	if pos == pattern.Back && excludeLast {
		limit--
	}
	var n uint64
	for {
		var err error
		if n, err = p.AskNumber(fmt.Sprintf("Enter number of characters to search %s:", where)); err != nil {
			return pattern.Spec{}, err
		}
		if n <= limit {
			break
		}
		p.warn("An address only has %d characters there.", limit)
	}
	for {
		answer, err := p.ask(fmt.Sprintf("Enter %d character(s):", n))
		if err != nil {
			return pattern.Spec{}, err
		}
		spec, err := pattern.NewSpec(strings.ToUpper(answer), int(n), pos, excludeLast)
		if err == nil {
			return spec, nil
		}
		var charErr *pattern.InvalidCharacterError
		if errors.As(err, &charErr) {
			p.warn("Invalid characters detected. Only use: %s", pattern.Alphabet)
			continue
		}
		var termErr *pattern.InvalidTerminalError
		if errors.As(err, &termErr) {
			p.warn("Address can only end with these characters: %s", strings.Join(termErr.Valid, ", "))
			continue
		}
		p.warn("%v", err)
	}
}
