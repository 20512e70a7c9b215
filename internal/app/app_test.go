package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thruflo/tasklist/internal/storage"
	"github.com/thruflo/tasklist/internal/task"
	"github.com/thruflo/tasklist/internal/testutil"
	"github.com/thruflo/tasklist/internal/view"
)

// recorder captures every frame handed to the renderer.
type recorder struct {
	frames []view.Frame
}

func (r *recorder) Render(f view.Frame) { r.frames = append(r.frames, f) }

func (r *recorder) last(t *testing.T) view.Frame {
	t.Helper()
	require.NotEmpty(t, r.frames, "no frame rendered")
	return r.frames[len(r.frames)-1]
}

type fixture struct {
	app *App
	kv  *storage.MemoryKV
	rec *recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	kv := storage.NewMemoryKV()
	rec := &recorder{}
	a := New(storage.NewPersister(kv), rec, Options{Clock: testutil.FixedClock})
	require.NoError(t, a.Open(context.Background()))
	return &fixture{app: a, kv: kv, rec: rec}
}

func TestApp_OpenEmpty(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.Len(t, f.rec.frames, 1)

	frame := f.rec.last(t)
	assert.True(t, frame.EmptyVisible)
	assert.Equal(t, "0 active items left", frame.Summary)
	assert.Empty(t, frame.Notice)
	assert.Equal(t, 0, f.kv.Writes(), "opening does not save")
}

func TestApp_AddBlankDoesNothing(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	for _, input := range []string{"", "   "} {
		_, ok, err := f.app.Add(context.Background(), input)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	assert.Empty(t, f.app.Tasks())
	assert.Equal(t, 0, f.kv.Writes(), "blank input is not persisted")
	assert.Len(t, f.rec.frames, 1, "blank input is not re-rendered")
}

func TestApp_AddPersistsAndRenders(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	got, ok, err := f.app.Add(ctx, "buy milk")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testutil.FixedTime.UnixMilli(), got.ID)
	assert.False(t, got.Completed)

	assert.Equal(t, 1, f.kv.Writes())
	frame := f.rec.last(t)
	assert.Equal(t, []view.Item{{ID: got.ID, Text: "buy milk"}}, frame.Items)
	assert.Equal(t, "1 active item left", frame.Summary)

	res, err := storage.NewPersister(f.kv).Load(ctx)
	require.NoError(t, err)
	testutil.AssertTasksEqual(t, []task.Task{got}, res.Tasks)
}

func TestApp_IDsStayUniqueWithinOneTick(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	for i := 0; i < 5; i++ {
		_, _, err := f.app.Add(context.Background(), "same millisecond")
		require.NoError(t, err)
	}
	testutil.AssertUniqueIDs(t, f.app.Tasks())
}

func TestApp_ToggleAndDeleteUnknownAreNoops(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	_, _, err := f.app.Add(ctx, "A")
	require.NoError(t, err)
	before := f.app.Tasks()

	found, err := f.app.Toggle(ctx, 999)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = f.app.Delete(ctx, 999)
	require.NoError(t, err)
	assert.False(t, found)

	assert.Equal(t, before, f.app.Tasks())
}

func TestApp_EndToEnd(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	a, _, err := f.app.Add(ctx, "A")
	require.NoError(t, err)
	b, _, err := f.app.Add(ctx, "B")
	require.NoError(t, err)

	found, err := f.app.Toggle(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, found)

	testutil.AssertTaskTexts(t, f.app.Visible(task.FilterActive), "B")
	testutil.AssertTaskTexts(t, f.app.Visible(task.FilterCompleted), "A")

	n, err := f.app.ClearCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	testutil.AssertTasksEqual(t, []task.Task{b}, f.app.Tasks())
	assert.Equal(t, 4, f.kv.Writes(), "every mutation saves once")
}

func TestApp_SetFilterRendersWithoutSaving(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	_, _, err := f.app.Add(ctx, "A")
	require.NoError(t, err)
	writes := f.kv.Writes()

	f.app.SetFilter(task.FilterCompleted)

	assert.Equal(t, task.FilterCompleted, f.app.Filter())
	assert.Equal(t, writes, f.kv.Writes())

	frame := f.rec.last(t)
	assert.Empty(t, frame.Items)
	assert.True(t, frame.EmptyVisible)
	assert.Equal(t, "There are currently no completed tasks.", frame.EmptyMessage)
	assert.True(t, frame.Tabs[2].Active)
}

func TestApp_RestoresAcrossSessions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	first := New(storage.NewPersister(storage.NewFileKV(path)), nil, Options{Clock: testutil.FixedClock})
	require.NoError(t, first.Open(ctx))
	_, _, err := first.Add(ctx, "persisted")
	require.NoError(t, err)

	second := New(storage.NewPersister(storage.NewFileKV(path)), nil, Options{Clock: testutil.FixedClock})
	require.NoError(t, second.Open(ctx))
	testutil.AssertTasksEqual(t, first.Tasks(), second.Tasks())

	// The restored id is not reissued even though the clock has not moved.
	added, _, err := second.Add(ctx, "new")
	require.NoError(t, err)
	assert.Greater(t, added.ID, first.Tasks()[0].ID)
}

func TestApp_DegradedLoadShowsNoticeOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, storage.StorageKey, []byte(testutil.CorruptStoredJSON)))

	rec := &recorder{}
	a := New(storage.NewPersister(kv), rec, Options{Clock: testutil.FixedClock})
	require.NoError(t, a.Open(ctx))

	assert.NotEmpty(t, rec.last(t).Notice)
	assert.Empty(t, a.Tasks())

	a.SetFilter(task.FilterAll)
	assert.Empty(t, rec.last(t).Notice)
}

func TestApp_ReloadPicksUpExternalChanges(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	other := New(storage.NewPersister(f.kv), nil, Options{Clock: testutil.FixedClock})
	require.NoError(t, other.Open(ctx))
	_, _, err := other.Add(ctx, "from elsewhere")
	require.NoError(t, err)

	require.NoError(t, f.app.Reload(ctx))
	testutil.AssertTaskTexts(t, f.app.Tasks(), "from elsewhere")
	assert.Equal(t, "1 active item left", f.rec.last(t).Summary)
}

type brokenStore struct {
	loadErr error
	saveErr error
}

func (b brokenStore) Load(context.Context) (storage.LoadResult, error) {
	return storage.LoadResult{}, b.loadErr
}

func (b brokenStore) Save(context.Context, []task.Task) error { return b.saveErr }

func TestApp_OpenFailsOnIOError(t *testing.T) {
	t.Parallel()

	ioErr := errors.New("permission denied")
	a := New(brokenStore{loadErr: ioErr}, nil, Options{})
	assert.ErrorIs(t, a.Open(context.Background()), ioErr)
}

func TestApp_SaveErrorStillRenders(t *testing.T) {
	t.Parallel()

	ioErr := errors.New("disk full")
	rec := &recorder{}
	a := New(brokenStore{saveErr: ioErr}, rec, Options{Clock: testutil.FixedClock})
	require.NoError(t, a.Open(context.Background()))

	_, ok, err := a.Add(context.Background(), "A")
	assert.True(t, ok)
	assert.ErrorIs(t, err, ioErr)
	items := rec.last(t).Items
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].Text)
}

func TestApp_ShowDate(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	a := New(storage.NewPersister(storage.NewMemoryKV()), rec, Options{Clock: testutil.FixedClock, ShowDate: true})
	require.NoError(t, a.Open(context.Background()))

	assert.Equal(t, "Sunday, October 18, 2026", rec.last(t).Date)
	assert.Equal(t, rec.last(t), a.Frame())
}
