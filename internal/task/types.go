// Package task holds the in-memory task list and its filter queries.
package task

import (
	"fmt"
	"strings"
)

// Task is a single to-do entry.
type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// FilterMode selects which tasks are visible.
type FilterMode int

const (
	FilterAll FilterMode = iota
	FilterActive
	FilterCompleted
)

// String returns the name used on the command line and in messages.
func (m FilterMode) String() string {
	switch m {
	case FilterActive:
		return "active"
	case FilterCompleted:
		return "completed"
	default:
		return "all"
	}
}

// Matches reports whether t is visible under the mode.
// Unknown modes match everything.
func (m FilterMode) Matches(t Task) bool {
	switch m {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// AllFilterModes returns the filter modes in display order.
func AllFilterModes() []FilterMode {
	return []FilterMode{FilterAll, FilterActive, FilterCompleted}
}

// ParseFilterMode converts a case-insensitive name into a FilterMode.
func ParseFilterMode(s string) (FilterMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "active":
		return FilterActive, nil
	case "completed", "done":
		return FilterCompleted, nil
	default:
		return FilterAll, fmt.Errorf("unknown filter %q (want all, active or completed)", s)
	}
}
