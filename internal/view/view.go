// Package view derives what the user sees from the task list and the
// current filter. It produces a Frame, a plain data description of the
// screen, which the terminal UI and the list command then draw.
package view

import (
	"fmt"
	"time"

	"github.com/thruflo/tasklist/internal/task"
)

// DateLayout renders dates as "Sunday, October 18, 2026".
const DateLayout = "Monday, January 2, 2006"

// Item is one visible task row.
type Item struct {
	ID        int64
	Text      string
	Completed bool
}

// FilterTab is one filter selector. Exactly one tab in a Frame is active.
type FilterTab struct {
	Mode   task.FilterMode
	Label  string
	Active bool
}

// Frame is the full derived view, rebuilt from scratch on every change.
type Frame struct {
	Date         string
	Filter       task.FilterMode
	Tabs         []FilterTab
	Items        []Item
	Summary      string
	ActiveCount  int
	EmptyMessage string
	EmptyVisible bool
	// Notice is a one-off message, e.g. that stored data was unreadable.
	Notice string
}

// Render builds the Frame for tasks under mode.
func Render(tasks []task.Task, mode task.FilterMode) Frame {
	visible := task.Filter(tasks, mode)

	items := make([]Item, len(visible))
	for i, t := range visible {
		items[i] = Item{ID: t.ID, Text: t.Text, Completed: t.Completed}
	}

	message, empty := EmptyState(tasks, mode)
	return Frame{
		Filter:       mode,
		Tabs:         FilterIndicators(mode),
		Items:        items,
		Summary:      Summary(tasks),
		ActiveCount:  task.CountActive(tasks),
		EmptyMessage: message,
		EmptyVisible: empty,
	}
}

// Summary returns "N active item(s) left".
func Summary(tasks []task.Task) string {
	n := task.CountActive(tasks)
	noun := "items"
	if n == 1 {
		noun = "item"
	}
	return fmt.Sprintf("%d active %s left", n, noun)
}

// EmptyState returns the empty-list message for mode and whether it
// should be shown, i.e. whether nothing is visible under mode.
func EmptyState(tasks []task.Task, mode task.FilterMode) (message string, visible bool) {
	if mode == task.FilterActive || mode == task.FilterCompleted {
		message = fmt.Sprintf("There are currently no %s tasks.", mode)
	} else {
		message = "There are currently no tasks."
	}

	for _, t := range tasks {
		if mode.Matches(t) {
			return message, false
		}
	}
	return message, true
}

// FilterIndicators returns the filter tabs in display order with only
// the tab for mode marked active. Unknown modes mark "all".
func FilterIndicators(mode task.FilterMode) []FilterTab {
	switch mode {
	case task.FilterAll, task.FilterActive, task.FilterCompleted:
	default:
		mode = task.FilterAll
	}

	modes := task.AllFilterModes()
	tabs := make([]FilterTab, len(modes))
	for i, m := range modes {
		tabs[i] = FilterTab{Mode: m, Label: label(m), Active: m == mode}
	}
	return tabs
}

// DateLine formats t for the header.
func DateLine(t time.Time) string {
	return t.Format(DateLayout)
}

func label(m task.FilterMode) string {
	switch m {
	case task.FilterActive:
		return "Active"
	case task.FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}
