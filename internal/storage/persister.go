package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/thruflo/tasklist/internal/logging"
	"github.com/thruflo/tasklist/internal/task"
)

// StorageKey is the single key the task list is stored under.
const StorageKey = "todos"

// LoadResult is the outcome of Persister.Load.
type LoadResult struct {
	Tasks []task.Task
	// Found is false on first run, when nothing was ever saved.
	Found bool
	// Degraded is true when stored data existed but could not be decoded
	// and an empty list was substituted. Err holds the decode error.
	Degraded bool
	Err      error
}

// Persister saves and restores the task list through a KV.
type Persister struct {
	kv  KV
	log *logging.Logger
}

// NewPersister creates a Persister over kv.
func NewPersister(kv KV) *Persister {
	return &Persister{
		kv:  kv,
		log: logging.With("component", "storage"),
	}
}

// Save encodes the full ordered list and overwrites the stored value.
func (p *Persister) Save(ctx context.Context, tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	if err := p.kv.Set(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	p.log.Debug("saved tasks", "count", len(tasks))
	return nil
}

// Load restores the stored list. A missing key yields an empty list.
// Undecodable data yields an empty list with Degraded set; only a failure
// of the underlying store is returned as an error.
func (p *Persister) Load(ctx context.Context) (LoadResult, error) {
	data, ok, err := p.kv.Get(ctx, StorageKey)
	if errors.Is(err, ErrCorrupt) {
		return p.degrade(err), nil
	}
	if err != nil {
		return LoadResult{}, fmt.Errorf("failed to load tasks: %w", err)
	}
	if !ok {
		return LoadResult{Tasks: []task.Task{}}, nil
	}

	tasks, err := decodeTasks(data)
	if err != nil {
		return p.degrade(err), nil
	}

	p.log.Debug("loaded tasks", "count", len(tasks))
	return LoadResult{Tasks: tasks, Found: true}, nil
}

// Close closes the underlying store.
func (p *Persister) Close() error {
	return p.kv.Close()
}

func (p *Persister) degrade(err error) LoadResult {
	p.log.Warn("stored tasks are unreadable, starting with an empty list", "key", StorageKey, "error", err)
	return LoadResult{Tasks: []task.Task{}, Found: true, Degraded: true, Err: err}
}

// storedTask mirrors task.Task with pointer fields so missing fields can
// be told apart from zero values.
type storedTask struct {
	ID        *int64  `json:"id"`
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

func decodeTasks(data []byte) ([]task.Task, error) {
	// localStorage can hold the literal "null".
	if strings.TrimSpace(string(data)) == "null" {
		return []task.Task{}, nil
	}

	var raw []storedTask
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	tasks := make([]task.Task, 0, len(raw))
	seen := make(map[int64]bool, len(raw))
	for i, r := range raw {
		if r.ID == nil || r.Text == nil {
			return nil, fmt.Errorf("task %d: missing id or text", i)
		}
		if strings.TrimSpace(*r.Text) == "" {
			return nil, fmt.Errorf("task %d: empty text", i)
		}
		if seen[*r.ID] {
			return nil, fmt.Errorf("task %d: duplicate id %d", i, *r.ID)
		}
		seen[*r.ID] = true

		t := task.Task{ID: *r.ID, Text: *r.Text}
		if r.Completed != nil {
			t.Completed = *r.Completed
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
