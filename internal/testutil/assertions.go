package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thruflo/tasklist/internal/task"
)

// AssertTasksEqual asserts that two task slices are equal by id, text
// and completion, in order.
func AssertTasksEqual(t *testing.T, expected, actual []task.Task) {
	t.Helper()

	require.Len(t, actual, len(expected), "task count mismatch")

	for i := range expected {
		assert.Equal(t, expected[i].ID, actual[i].ID, "task[%d].ID mismatch", i)
		assert.Equal(t, expected[i].Text, actual[i].Text, "task[%d].Text mismatch", i)
		assert.Equal(t, expected[i].Completed, actual[i].Completed, "task[%d].Completed mismatch", i)
	}
}

// AssertTaskTexts asserts the texts of tasks, in order.
func AssertTaskTexts(t *testing.T, tasks []task.Task, texts ...string) {
	t.Helper()

	got := make([]string, len(tasks))
	for i, tk := range tasks {
		got[i] = tk.Text
	}
	if texts == nil {
		texts = []string{}
	}
	assert.Equal(t, texts, got)
}

// AssertUniqueIDs asserts that no two tasks share an id.
func AssertUniqueIDs(t *testing.T, tasks []task.Task) {
	t.Helper()

	seen := make(map[int64]int, len(tasks))
	for i, tk := range tasks {
		if prev, ok := seen[tk.ID]; ok {
			t.Errorf("task[%d] and task[%d] share id %d", prev, i, tk.ID)
		}
		seen[tk.ID] = i
	}
}
