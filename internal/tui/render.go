package tui

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Box drawing characters (Unicode)
const (
	BoxTopLeft     = "┌"
	BoxTopRight    = "┐"
	BoxBottomLeft  = "└"
	BoxBottomRight = "┘"
	BoxHorizontal  = "─"
	BoxVertical    = "│"
	BoxTeeLeft     = "├"
	BoxTeeRight    = "┤"
)

// Rule is a content line that BoxWithContent draws as a horizontal divider.
const Rule = "\x00rule"

var ansiPattern = regexp.MustCompile("\033\\[[0-9;?]*[A-Za-z]")

// StripANSI removes ANSI escape sequences from s.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// VisualWidth returns the number of runes shown on screen, ignoring
// escape sequences.
func VisualWidth(s string) int {
	return utf8.RuneCountInString(StripANSI(s))
}

// BoxWithContent draws a box of the given outer width around content.
// Each line is padded or truncated to fit; Rule lines become dividers.
func BoxWithContent(width int, content []string) []string {
	if width < 4 {
		return nil
	}

	inner := width - 4
	lines := make([]string, 0, len(content)+2)

	lines = append(lines, BoxTopLeft+strings.Repeat(BoxHorizontal, width-2)+BoxTopRight)
	for _, line := range content {
		if line == Rule {
			lines = append(lines, BoxTeeLeft+strings.Repeat(BoxHorizontal, width-2)+BoxTeeRight)
			continue
		}
		lines = append(lines, BoxVertical+" "+PadOrTruncate(line, inner)+" "+BoxVertical)
	}
	lines = append(lines, BoxBottomLeft+strings.Repeat(BoxHorizontal, width-2)+BoxBottomRight)

	return lines
}

// PadOrTruncate pads or truncates s to exactly width visible characters.
// Escape sequences are kept and do not count towards the width.
func PadOrTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	visible := VisualWidth(s)
	if visible == width {
		return s
	}
	if visible < width {
		return s + strings.Repeat(" ", width-visible)
	}

	if width < 3 {
		return truncateVisible(s, width)
	}
	return truncateVisible(s, width-3) + "..."
}

// truncateVisible keeps the first n visible runes of s along with any
// escape sequences before them, closing styling with Reset if needed.
func truncateVisible(s string, n int) string {
	var sb strings.Builder
	styled := false
	count := 0

	for i := 0; i < len(s) && count < n; {
		if loc := ansiPattern.FindStringIndex(s[i:]); loc != nil && loc[0] == 0 {
			sb.WriteString(s[i : i+loc[1]])
			styled = true
			i += loc[1]
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		sb.WriteRune(r)
		count++
		i += size
	}

	if styled && !strings.HasSuffix(sb.String(), Reset) {
		sb.WriteString(Reset)
	}
	return sb.String()
}

// Truncate shortens plain text to width runes, adding an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= width {
		return s
	}

	if width >= 3 {
		return string(runes[:width-3]) + "..."
	}
	return string(runes[:width])
}

// CenterText centers text within the given width.
func CenterText(s string, width int) string {
	visible := VisualWidth(s)
	if visible >= width {
		return PadOrTruncate(s, width)
	}

	left := (width - visible) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-visible-left)
}

// Style applies ANSI style codes to text.
func Style(s string, codes ...string) string {
	if len(codes) == 0 {
		return s
	}
	return strings.Join(codes, "") + s + Reset
}

// Checkbox renders a task's toggle control.
func Checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}
