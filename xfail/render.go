package xfail

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Theme holds the styles used for terminal summaries.
type Theme struct {
	Header lipgloss.Style
	Good   lipgloss.Style
	Bad    lipgloss.Style
	Muted  lipgloss.Style
}

// DefaultTheme returns the styled theme for TTY output.
func DefaultTheme() Theme {
	return Theme{
		Header: lipgloss.NewStyle().Bold(true),
		Good:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Bad:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// MonoTheme returns an unstyled theme for piped output or NO_COLOR.
func MonoTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{Header: plain, Good: plain, Bad: plain, Muted: plain}
}

// ThemeFor picks a theme for the writer, honoring NO_COLOR and the
// configured no-color setting. Non-TTY writers always get the mono theme.
func ThemeFor(w io.Writer, noColor bool) Theme {
	if noColor || os.Getenv("NO_COLOR") != "" || !isTTYWriter(w) {
		return MonoTheme()
	}
	return DefaultTheme()
}

// TermWidth returns the terminal width for w, defaulting to 80.
func TermWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	return 80
}

func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// RenderSummary writes a human-readable summary of one fix run.
func RenderSummary(w io.Writer, sum *Summary, theme Theme, width int) {
	if width <= 0 {
		width = 80
	}

	verdict := sum.Overall
	style := theme.Bad
	switch verdict {
	case "":
		verdict = "unknown"
		style = theme.Muted
	case "SUCCESS":
		style = theme.Good
	}

	fmt.Fprintln(w, theme.Header.Render("xfail summary"))
	fmt.Fprintf(w, "  result: %s\n", style.Render(verdict))
	fmt.Fprintf(w, "  tests: %d  patched: %d  unmatched: %d\n",
		sum.Total, len(sum.Patched), len(sum.Unmatched))

	for _, name := range sum.Patched {
		fmt.Fprintf(w, "  %s %s\n", theme.Good.Render("+"), truncateName(name, width-4))
	}
	for _, name := range sum.Unmatched {
		fmt.Fprintf(w, "  %s %s\n", theme.Muted.Render("?"), truncateName(name, width-4))
	}
	if sum.Skipped > 0 {
		fmt.Fprintln(w, theme.Muted.Render(
			fmt.Sprintf("  %d malformed report line(s) skipped", sum.Skipped)))
	}
}

// truncateName shortens a test name to the given display width.
func truncateName(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
