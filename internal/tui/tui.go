// Package tui is the interactive terminal front end for the task list.
//
// A TUI is an app.Renderer: the app hands it a Frame after every change
// and the TUI redraws. Key presses flow the other way, through a
// Controller, so the TUI never owns task state.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/thruflo/tasklist/internal/logging"
	"github.com/thruflo/tasklist/internal/task"
	"github.com/thruflo/tasklist/internal/view"
)

// View represents the current TUI view.
type View int

const (
	ViewList View = iota
	ViewInput
)

// String returns the string representation of the view.
func (v View) String() string {
	switch v {
	case ViewList:
		return "list"
	case ViewInput:
		return "input"
	default:
		return "unknown"
	}
}

// Controller is the set of task list operations the TUI drives.
// *app.App satisfies it.
type Controller interface {
	Add(ctx context.Context, text string) (task.Task, bool, error)
	Toggle(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ClearCompleted(ctx context.Context) (int, error)
	SetFilter(mode task.FilterMode)
	Filter() task.FilterMode
	Reload(ctx context.Context) error
}

// Options configures a TUI.
type Options struct {
	// Width caps the box width. Zero uses the terminal width.
	Width int
	Color bool
}

// TUI manages the terminal user interface.
type TUI struct {
	terminal  *Terminal
	keyReader *KeyReader
	mu        sync.Mutex
	frame     view.Frame
	view      View
	selected  int
	status    string
	listView  *ListView
	inputView *InputView
	opts      Options
	width     int
	height    int
	running   bool
	log       *logging.Logger
}

// NewTUI creates a new TUI instance writing to out.
func NewTUI(out io.Writer, opts Options) *TUI {
	width := opts.Width
	if width <= 0 {
		width = 80
	}
	return &TUI{
		terminal:  NewTerminal(out),
		view:      ViewList,
		listView:  &ListView{},
		inputView: NewInputView(),
		opts:      opts,
		width:     width,
		height:    24,
		log:       logging.With("component", "tui"),
	}
}

// Render stores frame and redraws. It implements app.Renderer.
func (t *TUI) Render(frame view.Frame) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.frame = frame
	t.clampSelection()
	t.draw()
}

// Frame returns the last frame received.
func (t *TUI) Frame() view.Frame {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frame
}

// GetView returns the current view.
func (t *TUI) GetView() View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view
}

// Selected returns the highlighted row index, or -1 if the list is empty.
func (t *TUI) Selected() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selected
}

// IsRunning returns whether the TUI is currently running.
func (t *TUI) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Run puts the terminal in raw mode and processes key presses until the
// user quits or ctx is cancelled. Each value on reloads makes the TUI
// re-read the stored list; reloads may be nil.
func (t *TUI) Run(ctx context.Context, ctrl Controller, reloads <-chan struct{}) error {
	if err := t.terminal.EnterRaw(); err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer t.terminal.ExitRaw()
	defer t.terminal.ShowCursor()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	t.keyReader = NewKeyReader(t.terminal)

	keyCh := make(chan KeyEvent, 10)
	keyErr := make(chan error, 1)

	go func() {
		defer close(keyCh)
		for {
			ev, err := t.keyReader.ReadKey()
			if err != nil {
				keyErr <- err
				return
			}
			select {
			case keyCh <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	err := t.Loop(ctx, ctrl, keyCh, reloads)
	if errors.Is(err, io.EOF) {
		// The reader stopped; EOF on stdin is a normal exit.
		if kerr := <-keyErr; !errors.Is(kerr, io.EOF) {
			return kerr
		}
		return nil
	}
	t.terminal.Clear()
	return err
}

// Loop is the event loop behind Run. It returns nil when the user quits,
// io.EOF when keys is closed and ctx.Err() on cancellation.
func (t *TUI) Loop(ctx context.Context, ctrl Controller, keys <-chan KeyEvent, reloads <-chan struct{}) error {
	t.mu.Lock()
	t.running = true
	t.updateSize()
	t.draw()
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.running = false
		t.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case _, ok := <-reloads:
			if !ok {
				reloads = nil
				continue
			}
			if err := ctrl.Reload(ctx); err != nil {
				t.fail("reload", err)
			}

		case ev, ok := <-keys:
			if !ok {
				return io.EOF
			}
			if t.HandleKey(ctx, ctrl, ev) {
				return nil
			}
		}
	}
}

// HandleKey applies one key press and reports whether the user quit.
// The TUI lock is never held while calling ctrl, since ctrl calls back
// into Render.
func (t *TUI) HandleKey(ctx context.Context, ctrl Controller, ev KeyEvent) bool {
	t.mu.Lock()
	current := t.view
	t.status = ""
	t.mu.Unlock()

	if current == ViewInput {
		return t.handleInputKey(ctx, ctrl, ev)
	}

	switch ParseShortcut(ev) {
	case ShortcutUp:
		t.moveSelection(-1)

	case ShortcutDown:
		t.moveSelection(1)

	case ShortcutToggle:
		if id, ok := t.selectedID(); ok {
			if _, err := ctrl.Toggle(ctx, id); err != nil {
				t.fail("toggle", err)
			}
		}

	case ShortcutDelete:
		if id, ok := t.selectedID(); ok {
			if _, err := ctrl.Delete(ctx, id); err != nil {
				t.fail("delete", err)
			}
		}

	case ShortcutAdd:
		t.mu.Lock()
		t.view = ViewInput
		t.inputView.Reset()
		t.draw()
		t.mu.Unlock()

	case ShortcutFilterAll:
		ctrl.SetFilter(task.FilterAll)

	case ShortcutFilterActive:
		ctrl.SetFilter(task.FilterActive)

	case ShortcutFilterCompleted:
		ctrl.SetFilter(task.FilterCompleted)

	case ShortcutNextFilter:
		ctrl.SetFilter(nextFilter(ctrl.Filter()))

	case ShortcutClearCompleted:
		if _, err := ctrl.ClearCompleted(ctx); err != nil {
			t.fail("clear completed", err)
		}

	case ShortcutQuit:
		return true
	}

	return false
}

// handleInputKey processes a key event in input view.
func (t *TUI) handleInputKey(ctx context.Context, ctrl Controller, ev KeyEvent) bool {
	switch ev.Key {
	case KeyCtrlC:
		return true
	case KeyEscape:
		t.mu.Lock()
		t.view = ViewList
		t.inputView.Reset()
		t.draw()
		t.mu.Unlock()
		return false
	}

	t.mu.Lock()
	submitted := t.inputView.Editor().HandleKey(ev)
	text := t.inputView.Editor().Text()
	if submitted {
		t.view = ViewList
		t.inputView.Reset()
	}
	t.draw()
	t.mu.Unlock()

	if !submitted {
		return false
	}

	added, ok, err := ctrl.Add(ctx, text)
	if err != nil {
		t.fail("add", err)
	}
	if ok {
		t.selectID(added.ID)
	}
	return false
}

func (t *TUI) moveSelection(delta int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.selected += delta
	t.clampSelection()
	t.draw()
}

func (t *TUI) selectedID() (int64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.selected < 0 || t.selected >= len(t.frame.Items) {
		return 0, false
	}
	return t.frame.Items[t.selected].ID, true
}

func (t *TUI) selectID(id int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, item := range t.frame.Items {
		if item.ID == id {
			t.selected = i
			t.draw()
			return
		}
	}
}

// fail logs err and shows it below the list until the next key press.
func (t *TUI) fail(op string, err error) {
	t.log.Error("operation failed", "op", op, "error", err)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.status = fmt.Sprintf("Could not %s: %v", op, err)
	t.terminal.RingBell()
	t.draw()
}

func (t *TUI) clampSelection() {
	n := len(t.frame.Items)
	switch {
	case n == 0:
		t.selected = -1
	case t.selected < 0:
		t.selected = 0
	case t.selected >= n:
		t.selected = n - 1
	}
}

func (t *TUI) updateSize() {
	width, height, err := t.terminal.Size()
	if err != nil {
		return
	}
	t.height = height
	if t.opts.Width <= 0 || width < t.opts.Width {
		t.width = width
	}
}

// lines returns the current screen content. Callers hold t.mu.
func (t *TUI) lines() []string {
	list := t.listView.Render(t.frame, ListOptions{
		Width:    t.width,
		Color:    t.opts.Color,
		Selected: t.selected,
		Help:     t.view == ViewList,
	})

	var out []string
	if t.view == ViewInput {
		out = append(out, t.inputView.Render(t.width, t.opts.Color)...)
	}
	out = append(out, list...)
	if t.status != "" {
		status := Truncate(t.status, t.width)
		if t.opts.Color {
			status = Style(status, FgRed)
		}
		out = append(out, status)
	}
	return out
}

// draw repaints the screen. Callers hold t.mu.
func (t *TUI) draw() {
	if !t.running {
		return
	}

	t.terminal.Clear()
	t.terminal.HideCursor()
	for _, line := range t.lines() {
		t.terminal.WriteLine(line)
	}
	if t.view == ViewInput {
		t.terminal.ShowCursor()
	}
}

func nextFilter(current task.FilterMode) task.FilterMode {
	modes := task.AllFilterModes()
	for i, m := range modes {
		if m == current {
			return modes[(i+1)%len(modes)]
		}
	}
	return task.FilterAll
}
