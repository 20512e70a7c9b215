// Package app composes the task list, its persistence and its view.
//
// App is the single owner of session state. Every mutation runs the same
// sequence: change the list, save it, then hand a freshly rendered Frame
// to the Renderer. Nothing is deferred or batched.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/thruflo/tasklist/internal/logging"
	"github.com/thruflo/tasklist/internal/storage"
	"github.com/thruflo/tasklist/internal/task"
	"github.com/thruflo/tasklist/internal/view"
)

// Renderer draws frames. It is called after every state change, with the
// App locked, so it must not call back into the App.
type Renderer interface {
	Render(frame view.Frame)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(view.Frame)

// Render calls f(frame).
func (f RendererFunc) Render(frame view.Frame) { f(frame) }

// Persister is the load/save boundary App depends on.
type Persister interface {
	Load(ctx context.Context) (storage.LoadResult, error)
	Save(ctx context.Context, tasks []task.Task) error
}

// Options configures an App.
type Options struct {
	// Clock drives id generation and the date line. Defaults to time.Now.
	Clock task.Clock
	// ShowDate adds the date line to every frame.
	ShowDate bool
}

// App holds the task list, the current filter and the collaborators that
// persist and display them.
type App struct {
	mu       sync.Mutex
	list     *task.List
	store    Persister
	renderer Renderer
	filter   task.FilterMode
	date     string
	notice   string
	log      *logging.Logger
}

// New creates an App. Call Open before using it.
func New(store Persister, renderer Renderer, opts Options) *App {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	if renderer == nil {
		renderer = RendererFunc(func(view.Frame) {})
	}

	a := &App{
		list:     task.NewList(task.NewIDGenerator(clock)),
		store:    store,
		renderer: renderer,
		filter:   task.FilterAll,
		log:      logging.With("component", "app"),
	}
	if opts.ShowDate {
		a.date = view.DateLine(clock())
	}
	return a
}

// Open loads persisted tasks and draws the first frame. Unreadable data
// is replaced by an empty list and reported once through Frame.Notice.
func (a *App) Open(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.load(ctx); err != nil {
		return err
	}
	a.render()
	a.notice = ""
	return nil
}

// Reload re-reads persisted tasks, e.g. after another process saved.
func (a *App) Reload(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.load(ctx); err != nil {
		return err
	}
	a.render()
	a.notice = ""
	return nil
}

// Add appends a task. Blank text is ignored without saving or rendering.
func (a *App) Add(ctx context.Context, text string) (task.Task, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	t, ok := a.list.Add(text)
	if !ok {
		a.log.Debug("ignored blank task")
		return task.Task{}, false, nil
	}
	return t, true, a.commit(ctx)
}

// Toggle flips a task's completion. Unknown ids change nothing but the
// list is still saved and redrawn.
func (a *App) Toggle(ctx context.Context, id int64) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	found := a.list.Toggle(id)
	if !found {
		a.log.Debug("toggle of unknown task", "id", id)
	}
	return found, a.commit(ctx)
}

// Delete removes a task. Unknown ids change nothing.
func (a *App) Delete(ctx context.Context, id int64) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	found := a.list.Delete(id)
	if !found {
		a.log.Debug("delete of unknown task", "id", id)
	}
	return found, a.commit(ctx)
}

// ClearCompleted removes every completed task and returns how many.
func (a *App) ClearCompleted(ctx context.Context) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := a.list.ClearCompleted()
	return n, a.commit(ctx)
}

// SetFilter changes the visible filter and redraws. Nothing is saved.
func (a *App) SetFilter(mode task.FilterMode) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.filter = mode
	a.render()
}

// Filter returns the current filter mode.
func (a *App) Filter() task.FilterMode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.filter
}

// Tasks returns a copy of all tasks.
func (a *App) Tasks() []task.Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.list.Tasks()
}

// Visible returns the tasks under mode without changing the current filter.
func (a *App) Visible(mode task.FilterMode) []task.Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.list.Filter(mode)
}

// Frame returns the frame for the current state.
func (a *App) Frame() view.Frame {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frame()
}

func (a *App) load(ctx context.Context) error {
	res, err := a.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to open task list: %w", err)
	}
	if res.Degraded {
		a.notice = "Stored tasks could not be read; starting with an empty list."
		a.log.Warn("starting with empty list", "error", res.Err)
	}
	a.list.Replace(res.Tasks)
	a.log.Debug("opened task list", "count", a.list.Len())
	return nil
}

// commit saves then renders. The frame is drawn even if the save failed
// so the screen matches memory; the error is returned to the caller.
func (a *App) commit(ctx context.Context) error {
	err := a.store.Save(ctx, a.list.Tasks())
	if err != nil {
		a.log.Error("failed to save tasks", "error", err)
	}
	a.render()
	return err
}

func (a *App) render() {
	a.renderer.Render(a.frame())
}

func (a *App) frame() view.Frame {
	f := view.Render(a.list.Tasks(), a.filter)
	f.Date = a.date
	f.Notice = a.notice
	return f
}
