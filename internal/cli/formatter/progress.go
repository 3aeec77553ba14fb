package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderScore renders an average on the five-point scale as a bar, like
// [███████░░░] 3.50.
func RenderScore(avg float64, width int) string {
	width = max(width, 2)
	pct := min(max(avg/5, 0), 1)
	filled := min(int(pct*float64(width)+0.5), width)

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %.2f", AverageStyle(avg).Render(bar), avg)
}
