package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/reschool/internal/periods"
	"github.com/charmbracelet/lipgloss"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeSpace  = "   "
)

// PeriodRow is one rendered line of the period picker.
type PeriodRow struct {
	Index  int
	Prefix string // tree connectors
	Label  string
	Range  string
	IsRoot bool
}

// PeriodRows lays out a flattened period menu as a tree. Group roots sit at
// the margin; nested periods hang off them with box-drawing connectors.
func PeriodRows(menu []periods.MenuOption) []PeriodRow {
	rows := make([]PeriodRow, len(menu))
	// open[d] is true while a later sibling at depth d is still to come.
	var open []bool
	for i, opt := range menu {
		d := opt.Depth
		last := isLastAtDepth(menu, i)

		var prefix strings.Builder
		for lvl := 1; lvl < d; lvl++ {
			if lvl < len(open) && open[lvl] {
				prefix.WriteString(treePipe)
			} else {
				prefix.WriteString(treeSpace)
			}
		}
		if d > 0 {
			if last {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}
		for len(open) <= d {
			open = append(open, false)
		}
		open[d] = !last

		label := opt.Name
		if opt.IsRoot && opt.Group.Name != "" {
			label = opt.Group.Name + " · " + opt.Name
		}
		rows[i] = PeriodRow{
			Index:  opt.Index,
			Prefix: prefix.String(),
			Label:  label,
			Range:  opt.StartDateStr + " – " + opt.EndDateStr,
			IsRoot: opt.IsRoot,
		}
	}
	return rows
}

func isLastAtDepth(menu []periods.MenuOption, i int) bool {
	d := menu[i].Depth
	for _, next := range menu[i+1:] {
		if next.Depth < d {
			return true
		}
		if next.Depth == d {
			return false
		}
	}
	return true
}

// RenderPeriodMenu renders the picker with right-aligned date ranges.
// current is highlighted.
func RenderPeriodMenu(menu []periods.MenuOption, current int) string {
	rows := PeriodRows(menu)
	lines := make([]string, len(rows))
	width := 0
	for i, r := range rows {
		label := r.Label
		if r.IsRoot {
			label = Bold(label)
		}
		lines[i] = fmt.Sprintf("%3d. %s%s", r.Index, Dim(r.Prefix), label)
		width = max(width, lipgloss.Width(lines[i]))
	}

	var b strings.Builder
	for i, r := range rows {
		pad := width - lipgloss.Width(lines[i])
		rng := Dim(r.Range)
		if r.Index == current {
			rng = StyleGreen.Render(r.Range + "  ◂ now")
		}
		b.WriteString(lines[i] + strings.Repeat(" ", pad) + "  " + rng + "\n")
	}
	return b.String()
}
