package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/reschool/internal/directory"
)

func kindBadge(k directory.Kind) string {
	switch k {
	case directory.KindOrganization:
		return StylePurple.Render("org  ")
	case directory.KindCategory:
		return StyleYellow.Render("type ")
	case directory.KindGroup:
		return StyleBlue.Render("group")
	}
	return StyleGreen.Render("user ")
}

// DirectoryRow renders one numbered entry of a directory level.
func DirectoryRow(e directory.Entry) string {
	label := e.Node.Label()
	if e.Node.Kind == directory.KindUser {
		label = UserLine(e.Node.Fio, e.Node.Positions)
	}
	return fmt.Sprintf("%3d. %s %s", e.Index, kindBadge(e.Node.Kind), label)
}

// FormatDirectoryLevel renders the current level of a directory walk.
func FormatDirectoryLevel(title string, entries []directory.Entry, skipped int) string {
	var b strings.Builder
	b.WriteString(Header(domainOr(title, "School directory")) + "\n")
	if len(entries) == 0 {
		b.WriteString(Empty("entries") + "\n")
	}
	for _, e := range entries {
		b.WriteString(DirectoryRow(e) + "\n")
	}
	if skipped > 0 {
		b.WriteString(Dim(fmt.Sprintf("(%d unreadable entries skipped)", skipped)) + "\n")
	}
	return b.String()
}
