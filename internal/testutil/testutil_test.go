package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thruflo/tasklist/internal/task"
)

func TestSampleTasks(t *testing.T) {
	t.Parallel()

	tasks := SampleTasks()
	require.Len(t, tasks, 3)

	tasks[0].Completed = true
	assert.False(t, SampleTasks()[0].Completed, "SampleTasks should return fresh slice")
}

func TestSampleStoredJSONMatchesMixed(t *testing.T) {
	t.Parallel()

	var decoded []task.Task
	require.NoError(t, json.Unmarshal([]byte(SampleStoredJSON), &decoded))
	AssertTasksEqual(t, SampleTasksMixed(), decoded)
	AssertUniqueIDs(t, decoded)
}

func TestCorruptStoredJSONIsInvalid(t *testing.T) {
	t.Parallel()
	assert.False(t, json.Valid([]byte(CorruptStoredJSON)))
}

func TestSetupTestDir(t *testing.T) {
	t.Parallel()

	dir := SetupTestDir(t)
	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: file")
}

func TestWriteStoreFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := WriteStoreFile(t, dir, SampleStoredJSON)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &entries))
	assert.JSONEq(t, SampleStoredJSON, string(entries["todos"]))
}

func TestAssertTaskTexts(t *testing.T) {
	t.Parallel()

	AssertTaskTexts(t, SampleTasks(), "buy milk", "walk the dog", "write report")
	AssertTaskTexts(t, nil)
}

func TestMustMarshalJSON(t *testing.T) {
	t.Parallel()

	data := MustMarshalJSON(t, task.Task{ID: 7, Text: "x"})
	assert.JSONEq(t, `{"id":7,"text":"x","completed":false}`, string(data))
}
