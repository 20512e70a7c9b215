package task

import (
	"strings"
	"time"
)

// Clock returns the current time. Tests replace it to make ids predictable.
type Clock func() time.Time

// IDGenerator issues strictly increasing ids based on wall-clock milliseconds.
// Two calls within the same millisecond still get distinct ids.
type IDGenerator struct {
	now  Clock
	last int64
}

// NewIDGenerator creates an IDGenerator. A nil clock means time.Now.
func NewIDGenerator(now Clock) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Next returns a fresh id greater than every id issued or observed so far.
func (g *IDGenerator) Next() int64 {
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Observe raises the floor so ids loaded from storage are never reissued.
func (g *IDGenerator) Observe(id int64) {
	if id > g.last {
		g.last = id
	}
}

// List is the ordered, in-memory task collection.
// Insertion order is display order. List is not safe for concurrent use.
type List struct {
	tasks []Task
	ids   *IDGenerator
}

// NewList creates an empty List using the given id generator.
// A nil generator uses wall-clock ids.
func NewList(ids *IDGenerator) *List {
	if ids == nil {
		ids = NewIDGenerator(nil)
	}
	return &List{ids: ids}
}

// Replace swaps the whole collection, e.g. after loading from storage.
func (l *List) Replace(tasks []Task) {
	l.tasks = make([]Task, len(tasks))
	copy(l.tasks, tasks)
	for _, t := range tasks {
		l.ids.Observe(t.ID)
	}
}

// Add appends a task with the trimmed text. Blank text is rejected
// and reported with ok=false.
func (l *List) Add(text string) (t Task, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, false
	}

	t = Task{ID: l.ids.Next(), Text: text}
	l.tasks = append(l.tasks, t)
	return t, true
}

// Toggle flips the completion flag of the task with the given id.
// Returns false if no such task exists.
func (l *List) Toggle(id int64) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.tasks[i].Completed = !l.tasks[i].Completed
	return true
}

// Delete removes the task with the given id.
// Returns false if no such task exists.
func (l *List) Delete(id int64) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	return true
}

// ClearCompleted removes every completed task and returns how many went.
func (l *List) ClearCompleted() int {
	kept := l.tasks[:0]
	for _, t := range l.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(l.tasks) - len(kept)
	// Zero the tail so removed tasks are not retained by the backing array.
	for i := len(kept); i < len(l.tasks); i++ {
		l.tasks[i] = Task{}
	}
	l.tasks = kept
	return removed
}

// Filter returns the tasks visible under mode, in order.
// The result is a copy; mutating it does not affect the list.
func (l *List) Filter(mode FilterMode) []Task {
	return Filter(l.tasks, mode)
}

// Get returns the task with the given id.
func (l *List) Get(id int64) (Task, bool) {
	i := l.index(id)
	if i < 0 {
		return Task{}, false
	}
	return l.tasks[i], true
}

// Tasks returns a copy of all tasks.
func (l *List) Tasks() []Task {
	return Filter(l.tasks, FilterAll)
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// ActiveCount returns the number of tasks not yet completed.
func (l *List) ActiveCount() int {
	return CountActive(l.tasks)
}

// CompletedCount returns the number of completed tasks.
func (l *List) CompletedCount() int {
	return len(l.tasks) - CountActive(l.tasks)
}

func (l *List) index(id int64) int {
	for i, t := range l.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Filter returns the subsequence of tasks visible under mode.
func Filter(tasks []Task, mode FilterMode) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if mode.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// CountActive returns the number of tasks that are not completed.
func CountActive(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}
