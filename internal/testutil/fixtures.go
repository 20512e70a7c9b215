package testutil

import (
	"time"

	"github.com/thruflo/tasklist/internal/task"
)

// FixedTime is the instant returned by FixedClock.
var FixedTime = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

// FixedClock always returns FixedTime.
func FixedClock() time.Time {
	return FixedTime
}

// SampleStoredJSON is a persisted value in the format the browser version
// wrote, with millisecond timestamp ids.
const SampleStoredJSON = `[{"id":1760779800000,"text":"buy milk","completed":false},` +
	`{"id":1760779800001,"text":"walk the dog","completed":true},` +
	`{"id":1760779800002,"text":"write report","completed":false}]`

// CorruptStoredJSON is a persisted value that cannot be decoded.
const CorruptStoredJSON = `[{"id":1,"text":"half a record"`

// SampleTasks returns three active tasks.
// Returns a new slice each time to prevent test interference.
func SampleTasks() []task.Task {
	return []task.Task{
		{ID: 1, Text: "buy milk"},
		{ID: 2, Text: "walk the dog"},
		{ID: 3, Text: "write report"},
	}
}

// SampleTasksMixed returns tasks with completed ones interleaved,
// matching SampleStoredJSON.
func SampleTasksMixed() []task.Task {
	return []task.Task{
		{ID: 1760779800000, Text: "buy milk"},
		{ID: 1760779800001, Text: "walk the dog", Completed: true},
		{ID: 1760779800002, Text: "write report"},
	}
}
