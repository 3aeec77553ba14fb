package formatter

import (
	"strings"

	"github.com/alexanderramin/reschool/internal/domain"
)

// FormatHomework renders assignments grouped by lesson date. Entries must be
// sorted by date.
func FormatHomework(period string, entries []domain.HomeworkEntry) string {
	var b strings.Builder
	b.WriteString(Header("Homework · "+period) + "\n")
	if len(entries) == 0 {
		b.WriteString("\n" + Empty("homework") + "\n")
		return b.String()
	}

	var lastDay string
	for _, e := range entries {
		if day := Date(e.Date); day != lastDay {
			b.WriteString("\n" + StyleYellow.Render(day) + "\n")
			lastDay = day
		}
		b.WriteString("  " + Bold(e.Subject) + "\n")
		if e.Text != "" {
			b.WriteString(Indent(e.Text, "    ") + "\n")
		}
		for _, f := range e.Files {
			b.WriteString("    " + Dim("📎 "+f) + "\n")
		}
	}
	return b.String()
}
