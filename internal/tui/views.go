package tui

import (
	"fmt"
	"strings"

	"github.com/thruflo/tasklist/internal/view"
)

// DeleteControl is drawn at the end of every task row.
const DeleteControl = "✕"

// ListOptions controls how a ListView draws a frame.
type ListOptions struct {
	Width int
	Color bool
	// Selected is the index of the highlighted row, or -1 for none.
	Selected int
	// ShowIDs prefixes each row with the task id, for the CLI.
	ShowIDs bool
	// Help adds the keyboard shortcut line.
	Help bool
}

// ListView renders the task list frame.
type ListView struct{}

// Render draws frame inside a box and returns one string per line.
func (v *ListView) Render(frame view.Frame, opts ListOptions) []string {
	width := opts.Width
	if width < 20 {
		width = 20
	}
	inner := width - 4
	style := func(s string, codes ...string) string {
		if !opts.Color {
			return s
		}
		return Style(s, codes...)
	}

	var content []string

	content = append(content, style(CenterText("Tasks", inner), Bold))
	if frame.Date != "" {
		content = append(content, style(frame.Date, Dim))
	}
	content = append(content, v.renderTabs(frame.Tabs, opts.Color))
	content = append(content, Rule)

	if frame.EmptyVisible {
		content = append(content, style(frame.EmptyMessage, Dim))
	}
	for i, item := range frame.Items {
		content = append(content, v.renderItem(item, i == opts.Selected, inner, opts))
	}

	content = append(content, Rule)
	content = append(content, frame.Summary)

	if frame.Notice != "" {
		for _, line := range WrapText(frame.Notice, inner) {
			content = append(content, style(line, FgYellow))
		}
	}
	if opts.Help {
		content = append(content, "")
		for _, line := range WrapText("[a]dd [space]toggle [x]delete [1-3/tab]filter [c]lear completed [q]uit", inner) {
			content = append(content, style(line, Dim))
		}
	}

	return BoxWithContent(width, content)
}

func (v *ListView) renderTabs(tabs []view.FilterTab, color bool) string {
	parts := make([]string, len(tabs))
	for i, tab := range tabs {
		label := fmt.Sprintf("%d %s", i+1, tab.Label)
		switch {
		case tab.Active && color:
			parts[i] = Style(" "+label+" ", Reverse, Bold)
		case tab.Active:
			parts[i] = "[" + label + "]"
		default:
			parts[i] = " " + label + " "
		}
	}
	return strings.Join(parts, " ")
}

func (v *ListView) renderItem(item view.Item, selected bool, inner int, opts ListOptions) string {
	marker := "  "
	if selected {
		marker = "> "
	}

	box := Checkbox(item.Completed)
	if opts.Color && item.Completed {
		box = Style(box, FgGreen)
	}
	prefix := marker + box + " "
	if opts.ShowIDs {
		prefix += fmt.Sprintf("%d ", item.ID)
	}
	suffix := " " + DeleteControl

	textWidth := inner - VisualWidth(prefix) - VisualWidth(suffix)
	text := PadOrTruncate(item.Text, textWidth)
	if opts.Color && item.Completed {
		text = Style(text, Dim, Strikethrough)
	}

	line := prefix + text + suffix
	if opts.Color && selected {
		return Style(line, Bold, FgCyan)
	}
	return line
}

// InputView renders the prompt for a new task.
type InputView struct {
	editor *LineEditor
}

// NewInputView creates an InputView with an empty editor.
func NewInputView() *InputView {
	return &InputView{editor: NewLineEditor()}
}

// Editor returns the line editor for handling key events.
func (v *InputView) Editor() *LineEditor {
	return v.editor
}

// Reset clears the input buffer.
func (v *InputView) Reset() {
	v.editor.Clear()
}

// Render renders the prompt and input field.
func (v *InputView) Render(width int, color bool) []string {
	if width < 20 {
		width = 20
	}
	inner := width - 4
	style := func(s string, codes ...string) string {
		if !color {
			return s
		}
		return Style(s, codes...)
	}

	prompt := "> "
	maxInput := inner - len(prompt)
	runes := []rune(v.editor.Text())
	cursor := v.editor.Cursor()

	// Scroll horizontally to keep the cursor visible.
	start := 0
	if cursor > maxInput-1 {
		start = cursor - maxInput + 1
	}
	end := start + maxInput
	if end > len(runes) {
		end = len(runes)
	}

	content := []string{
		style("New task", Bold),
		"",
		prompt + string(runes[start:end]),
		style(strings.Repeat(" ", len(prompt)+cursor-start)+"^", FgCyan),
		"",
		style("Enter to add, Esc to cancel", Dim),
	}
	return BoxWithContent(width, content)
}

// WrapText wraps text to fit within the given width.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	words := strings.Fields(text)
	if len(words) == 0 {
		return lines
	}

	current := words[0]
	for _, word := range words[1:] {
		if VisualWidth(current)+1+VisualWidth(word) <= width {
			current += " " + word
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	return append(lines, current)
}
