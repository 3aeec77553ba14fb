package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/reschool/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Date formats a portal instant the way the portal shows dates.
func Date(m domain.Millis) string {
	if m.IsZero() {
		return "—"
	}
	return m.Time().Format("02.01.2006")
}

// DateTime formats a portal instant with minutes.
func DateTime(m domain.Millis) string {
	if m.IsZero() {
		return "—"
	}
	return m.Time().Format("02.01.2006 15:04")
}

// RelativeDays describes a deadline relative to now.
func RelativeDays(t, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 0:
		return fmt.Sprintf("in %dd", days)
	}
	return fmt.Sprintf("%dd ago", -days)
}

// Average formats a period average, or a dash when there is none.
func Average(avg *float64) string {
	if avg == nil {
		return "—"
	}
	return fmt.Sprintf("%.2f", *avg)
}

// Truncate shortens s to width visible runes, marking the cut with "…".
func Truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

// Indent prefixes every line of s.
func Indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}

// Empty renders the placeholder shown for an empty result.
func Empty(what string) string {
	return Dim("No " + what + " found.")
}
