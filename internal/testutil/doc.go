// Package testutil provides shared test utilities for tasklist.
//
// # Fixtures
//
// The fixtures.go file provides sample data for testing:
//
//   - FixedTime, FixedClock - a deterministic clock for id generation
//   - SampleTasks() - three active tasks
//   - SampleTasksMixed() - active and completed tasks interleaved
//   - SampleStoredJSON, CorruptStoredJSON - raw persisted values
//
// # Environment Helpers
//
// The env.go file provides test environment setup:
//
//   - SetupTestDir(t) - creates a temp data directory with config.yaml
//   - WriteStoreFile(t, dir, value) - writes a file store holding value under "todos"
//   - MustMarshalJSON(t, v) - marshals to JSON or fails test
//   - WriteTestFile(t, base, path, content) - writes a file in test dir
//
// # Assertions
//
// The assertions.go file provides custom test assertions:
//
//   - AssertTasksEqual(t, expected, actual) - compares id, text and completion
//   - AssertTaskTexts(t, tasks, texts...) - compares visible texts in order
//   - AssertUniqueIDs(t, tasks) - checks that no id repeats
//
// # Timeouts
//
// The timeout.go file provides deadline-aware contexts and polling:
//
//   - ContextWithTestDeadline(t, fallback) - context bounded by the test deadline
//   - ShortOperationContext(t) - 30 second variant for quick I/O
//   - WaitFor(t, timeout, cond) - polls cond until true or fails the test
//
// # Usage
//
//	func TestSomething(t *testing.T) {
//	    dir := testutil.SetupTestDir(t)
//	    tasks := testutil.SampleTasksMixed()
//	    // ... run test ...
//	    testutil.AssertUniqueIDs(t, tasks)
//	}
package testutil
