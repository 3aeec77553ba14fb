package formatter

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/reschool/internal/domain"
)

var gradeHeaders = []string{"#", "Subject", "Average", "Marks", "Total"}

// FormatGrades renders the per-subject grades table for a period.
func FormatGrades(period string, rows []domain.SubjectGrades) string {
	var b strings.Builder
	b.WriteString(Header("Grades · "+period) + "\n\n")
	if len(rows) == 0 {
		b.WriteString(Empty("grades") + "\n")
		return b.String()
	}

	table := make([][]string, len(rows))
	for i, r := range rows {
		avg := Dim("—")
		if r.Average != nil {
			avg = RenderScore(*r.Average, 10)
		}
		marks := make([]string, len(r.Marks))
		for j, m := range r.Marks {
			marks[j] = MarkStyle(m).Render(m)
		}
		total := Dim("—")
		if r.Total != "" {
			total = MarkStyle(r.Total).Bold(true).Render(r.Total)
		}
		table[i] = []string{strconv.Itoa(i + 1), r.Subject, avg, strings.Join(marks, " "), total}
	}
	b.WriteString(RenderTable(gradeHeaders, table))
	return b.String()
}

// GradesCSV returns the grades as plain rows for WriteCSV.
func GradesCSV(rows []domain.SubjectGrades) ([]string, [][]string) {
	out := make([][]string, len(rows))
	for i, r := range rows {
		avg := ""
		if r.Average != nil {
			avg = strconv.FormatFloat(*r.Average, 'f', 2, 64)
		}
		out[i] = []string{r.Subject, avg, strings.Join(r.Marks, " "), r.Total}
	}
	return []string{"subject", "average", "marks", "total"}, out
}
