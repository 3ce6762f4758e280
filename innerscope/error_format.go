package innerscope

import (
	"fmt"
	"strconv"
	"strings"
)

// formatCodeFrame renders the source line at pos with a caret under the
// column. The previous line is shown too when there is one.
func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	current := lines[pos.Line-1]
	column := min(max(pos.Column, 1), len([]rune(current))+1)

	label := strconv.Itoa(pos.Line)
	width := len(label)
	gutter := strings.Repeat(" ", width)

	var b strings.Builder
	fmt.Fprintf(&b, "  --> line %d, column %d\n", pos.Line, column)
	if pos.Line > 1 {
		if prev := lines[pos.Line-2]; strings.TrimSpace(prev) != "" {
			fmt.Fprintf(&b, " %*d | %s\n", width, pos.Line-1, prev)
		}
	}
	fmt.Fprintf(&b, " %s | %s\n", label, current)
	fmt.Fprintf(&b, " %s | %s^", gutter, strings.Repeat(" ", column-1))
	return b.String()
}
