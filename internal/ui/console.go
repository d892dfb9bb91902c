package ui

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"

	"github.com/Amr-9/algohunter/pkg/generator"
	"github.com/Amr-9/algohunter/pkg/pattern"
	"github.com/Amr-9/algohunter/pkg/search"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
	ColorPurple = "\033[35m"
	ColorBold   = "\033[1m"
	ColorDim    = "\033[2m"
)

const ruleWidth = 70

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// PrintWelcomeBanner shows the welcome screen
func PrintWelcomeBanner(w io.Writer, version string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s%s", ColorCyan, ColorBold)
	fmt.Fprintln(w, "  ╔══════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(w, "  ║     _    _       _   _             _                         ║")
	fmt.Fprintln(w, "  ║    / \\  | | __ _| | | |_   _ _ __ | |_ ___ _ __              ║")
	fmt.Fprintln(w, "  ║   / _ \\ | |/ _` | |_| | | | | '_ \\| __/ _ \\ '__|             ║")
	fmt.Fprintln(w, "  ║  / ___ \\| | (_| |  _  | |_| | | | | ||  __/ |                ║")
	fmt.Fprintln(w, "  ║ /_/   \\_\\_|\\__, |_| |_|\\__,_|_| |_|\\__\\___|_|                ║")
	fmt.Fprintln(w, "  ║            |___/                                             ║")
	fmt.Fprintln(w, "  ╠══════════════════════════════════════════════════════════════╣")
	fmt.Fprintf(w, "  ║%s   Algorand Vanity Address Search %s• v%-10s%s               ║\n", ColorYellow, ColorDim, version, ColorCyan+ColorBold)
	fmt.Fprintln(w, "  ╚══════════════════════════════════════════════════════════════╝")
	fmt.Fprint(w, ColorReset)
	fmt.Fprintln(w)
}

// Location describes where an entry is searched for.
func Location(e pattern.Entry) string {
	loc := e.Spec.Position.String()
	if e.Linked() {
		loc = "Front & Back"
	}
	if e.ExcludeLast() {
		loc += " (excl. last)"
	}
	return loc
}

func termLengths(e pattern.Entry) string {
	if e.Partner != nil {
		return fmt.Sprintf("%d,%d", len(e.Spec.Term), len(e.Partner.Term))
	}
	return fmt.Sprintf("%d", len(e.Spec.Term))
}

// PrintSearchTerms renders the pattern set as a table, followed by the legal
// terminal symbols when a back term has to end the address.
func PrintSearchTerms(w io.Writer, set *pattern.Set, target uint64) {
	total := "until interrupted"
	if target > 0 {
		total = FormatNumber(target)
	}
	fmt.Fprintf(w, "\n    %sCURRENT SEARCH TERMS%s  %s(addresses to check: %s)%s\n", ColorPurple+ColorBold, ColorReset, ColorDim, total, ColorReset)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "String", "Length", "Location"})
	for i, e := range set.Entries() {
		t.AppendRow(table.Row{i + 1, termString(e), termLengths(e), Location(e)})
	}
	t.Render()

	if set.HasTerminalConstraint() {
		PrintTerminalReminder(w)
	}
}

// PrintTerminalReminder lists the symbols an address can end with.
func PrintTerminalReminder(w io.Writer) {
	fmt.Fprintf(w, "    %sReminder: valid end characters are %s%s\n",
		ColorYellow, strings.Join(pattern.TerminalSymbols(), ", "), ColorReset)
}

func termString(e pattern.Entry) string {
	if e.Partner != nil {
		return e.Spec.Term + " & " + e.Partner.Term
	}
	return e.Spec.Term
}

// Mask renders an address-length template with the symbols inside windows
// taken from src and every other position shown as '#'.
func Mask(src string, windows []pattern.Window) string {
	out := []byte(strings.Repeat("#", pattern.AddressLength))
	for _, win := range windows {
		for i := win.Start; i < win.End && i < len(src) && i < len(out); i++ {
			if i >= 0 {
				out[i] = src[i]
			}
		}
	}
	return string(out)
}

// EntryMask renders the template an anchored entry expects. Anywhere
// entries have no fixed template and return false.
func EntryMask(e pattern.Entry) (string, bool) {
	windows := e.Windows()
	if len(windows) == 0 {
		return "", false
	}

	src := []byte(strings.Repeat("#", pattern.AddressLength))
	place := func(s pattern.Spec) {
		if win, ok := s.Window(); ok {
			copy(src[win.Start:win.End], s.Term)
		}
	}
	place(e.Spec)
	if e.Partner != nil {
		place(*e.Partner)
	}
	return Mask(string(src), windows), true
}

// PrintPatternVisual shows each entry laid over an address template.
func PrintPatternVisual(w io.Writer, set *pattern.Set) {
	fmt.Fprintf(w, "\n    %sSearching for addresses with these patterns:%s\n", ColorBold, ColorReset)
	fmt.Fprintf(w, "    %s%s%s\n", ColorDim, strings.Repeat("─", ruleWidth), ColorReset)
	for _, e := range set.Entries() {
		label := fmt.Sprintf("%-24s", Location(e)+":")
		if mask, ok := EntryMask(e); ok {
			fmt.Fprintf(w, "    %s%s%s %s\n", ColorCyan, label, ColorReset, mask)
			continue
		}
		fmt.Fprintf(w, "    %s%s%s %s %s(can appear anywhere in address)%s\n", ColorCyan, label, ColorReset, e.Spec.Term, ColorDim, ColorReset)
	}
	fmt.Fprintf(w, "    %s%s%s\n", ColorDim, strings.Repeat("─", ruleWidth), ColorReset)
}

// PrintMatch shows a found address with its recovery phrase.
func PrintMatch(w io.Writer, n uint64, m search.Match, passphrase string) {
	rule := strings.Repeat("═", ruleWidth)
	fmt.Fprintf(w, "\n    %s%s%s%s\n", ColorGreen, ColorBold, rule, ColorReset)
	fmt.Fprintf(w, "    %s%s%s%s\n", ColorGreen, ColorBold, center(fmt.Sprintf("✨ MATCH #%d ✨", n), ruleWidth), ColorReset)
	fmt.Fprintf(w, "    %s%s%s%s\n", ColorGreen, ColorBold, rule, ColorReset)
	fmt.Fprintf(w, "    %sPattern:%s    %s\n", ColorCyan+ColorBold, ColorReset, m.Outcome.Descriptor)
	fmt.Fprintf(w, "    %sAddress:%s    %s%s%s\n", ColorCyan+ColorBold, ColorReset, ColorGreen+ColorBold, m.Address, ColorReset)
	fmt.Fprintf(w, "    %sMatched:%s    %s\n", ColorCyan+ColorBold, ColorReset, Mask(m.Address, m.Outcome.Windows))
	fmt.Fprintf(w, "    %sPassphrase:%s %s%s%s\n", ColorPurple+ColorBold, ColorReset, ColorYellow, passphrase, ColorReset)
	fmt.Fprintf(w, "    %s%s%s%s\n", ColorGreen, ColorBold, rule, ColorReset)
	fmt.Fprintf(w, "    %s%s⚠  KEEP YOUR PASSPHRASE SECRET!%s\n", ColorRed, ColorBold, ColorReset)
}

// PrintSummary shows the final statistics of a run.
func PrintSummary(w io.Writer, stats *search.Statistics, elapsed time.Duration, interrupted bool) {
	title := "Search Complete!"
	if interrupted {
		title = "Search Stopped"
	}
	rule := strings.Repeat("═", ruleWidth)
	fmt.Fprintf(w, "\n    %s%s%s\n", ColorCyan+ColorBold, rule, ColorReset)
	fmt.Fprintf(w, "    %s%s%s\n", ColorCyan+ColorBold, center(title, ruleWidth), ColorReset)
	fmt.Fprintf(w, "    %s%s%s\n", ColorCyan+ColorBold, rule, ColorReset)
	fmt.Fprintf(w, "    Total Addresses Checked: %s%s%s\n", ColorBold, FormatNumber(stats.Checked), ColorReset)
	fmt.Fprintf(w, "    Total Matches Found:     %s%s%s\n", ColorBold, FormatNumber(stats.Matched), ColorReset)
	fmt.Fprintf(w, "    Elapsed:                 %s\n", FormatDuration(elapsed))

	if len(stats.PerPattern) == 0 {
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Pattern", "Matches"})
	for _, d := range stats.Descriptors() {
		t.AppendRow(table.Row{d, FormatNumber(stats.PerPattern[d])})
	}
	t.Render()
}

func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s
}

// PrintSearchInfo displays the difficulty and worker count before a search.
func PrintSearchInfo(w io.Writer, difficulty uint64, workers int) {
	fmt.Fprintf(w, "\n    %s🚀 SEARCHING%s %s(1/%s, %d workers) Press Ctrl+C to stop%s\n\n",
		ColorGreen+ColorBold, ColorReset, ColorDim, FormatNumber(difficulty), workers, ColorReset)
}

// PrintProgress shows animated progress bar. With a bounded target the bar
// tracks completion; otherwise it tracks the chance of having found a match.
func PrintProgress(w io.Writer, stats generator.Stats, target, difficulty uint64, frame int) {
	spinners := []string{"◐", "◓", "◑", "◒"}
	spinner := spinners[frame%len(spinners)]

	attempts := float64(stats.Attempts)
	var progress float64
	if target > 0 {
		progress = attempts / float64(target)
	} else {
		diff := float64(difficulty)
		if diff == 0 {
			diff = 1
		}
		progress = 1.0 - math.Pow(0.5, 2.0*attempts/diff)
	}

	barWidth := 40
	filled := int(progress * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("▓", filled) + strings.Repeat("░", barWidth-filled)

	fmt.Fprintf(w, "\r    %s%s%s %s%s%s %s%s%s │ %s%s%s │ %s%d found%s │ %s",
		ColorCyan, spinner, ColorReset,
		ColorDim, bar, ColorReset,
		ColorGreen+ColorBold, FormatHashRate(stats.HashRate), ColorReset,
		ColorYellow, FormatNumber(stats.Attempts), ColorReset,
		ColorPurple, stats.Matches, ColorReset,
		FormatDuration(time.Duration(stats.ElapsedSecs*float64(time.Second))))
}

// FormatHashRate formats hash rate nicely
func FormatHashRate(rate float64) string {
	if rate >= 1000000 {
		return fmt.Sprintf("%.1fM/s", rate/1000000)
	}
	if rate >= 1000 {
		return fmt.Sprintf("%.1fK/s", rate/1000)
	}
	return fmt.Sprintf("%.0f/s", rate)
}

// ClearLine clears the current line
func ClearLine(w io.Writer) {
	fmt.Fprint(w, "\r"+strings.Repeat(" ", 110)+"\r")
}

// FormatNumber adds commas to large numbers
func FormatNumber(n uint64) string {
	s := fmt.Sprintf("%d", n)
	if n < 1000 {
		return s
	}
	result := make([]byte, 0, len(s)+(len(s)-1)/3)
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

// FormatDuration formats duration in a human-readable way
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}
