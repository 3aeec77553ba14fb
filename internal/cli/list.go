package cli

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/reschool/internal/cli/formatter"
)

// cursorList is the selection state shared by the list views: a cursor,
// a scroll offset and a typed number buffer for direct selection.
type cursorList struct {
	cursor int
	offset int
	digits string
}

// move handles navigation keys and reports whether the key was one.
func (l *cursorList) move(k string, n int) bool {
	switch k {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
	case "down", "j":
		if l.cursor < n-1 {
			l.cursor++
		}
	case "home", "g":
		l.cursor = 0
	case "end", "G":
		l.cursor = max(n-1, 0)
	default:
		return false
	}
	l.digits = ""
	return true
}

// typeDigit appends to the number buffer. allowZero is false where a lone
// 0 has its own meaning.
func (l *cursorList) typeDigit(k string, allowZero bool) bool {
	if len(k) != 1 || k[0] < '0' || k[0] > '9' {
		return false
	}
	if k == "0" && l.digits == "" && !allowZero {
		return false
	}
	l.digits += k
	return true
}

func (l *cursorList) backspace() bool {
	if l.digits == "" {
		return false
	}
	l.digits = l.digits[:len(l.digits)-1]
	return true
}

// choice returns what enter selects: the typed number if any, else the
// cursor row, both 1-based.
func (l *cursorList) choice() string {
	if l.digits != "" {
		c := l.digits
		l.digits = ""
		return c
	}
	return strconv.Itoa(l.cursor + 1)
}

func (l *cursorList) reset() {
	*l = cursorList{}
}

// render draws rows with a cursor marker, scrolled to keep the cursor in a
// window of height lines.
func (l *cursorList) render(rows []string, height int) string {
	height = max(height, 1)
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+height {
		l.offset = l.cursor - height + 1
	}
	end := min(l.offset+height, len(rows))

	var b strings.Builder
	for i := l.offset; i < end; i++ {
		if i == l.cursor {
			b.WriteString(formatter.StyleGreen.Render("▸ ") + formatter.Bold(rows[i]) + "\n")
		} else {
			b.WriteString("  " + rows[i] + "\n")
		}
	}
	if l.digits != "" {
		b.WriteString("\n  " + formatter.StyleYellow.Render("# "+l.digits) + "█\n")
	}
	return b.String()
}
