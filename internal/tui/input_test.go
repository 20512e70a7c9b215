package tui

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyReader_ReadKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
		want  KeyEvent
	}{
		{"letter", []byte{'a'}, KeyEvent{Key: KeyRune, Rune: 'a'}},
		{"space", []byte{' '}, KeyEvent{Key: KeyRune, Rune: ' '}},
		{"digit", []byte{'2'}, KeyEvent{Key: KeyRune, Rune: '2'}},
		{"ctrl+c", []byte{0x03}, KeyEvent{Key: KeyCtrlC}},
		{"ctrl+d", []byte{0x04}, KeyEvent{Key: KeyCtrlD}},
		{"ctrl+u", []byte{0x15}, KeyEvent{Key: KeyCtrlU}},
		{"tab", []byte{0x09}, KeyEvent{Key: KeyTab}},
		{"enter", []byte{0x0D}, KeyEvent{Key: KeyEnter}},
		{"backspace DEL", []byte{0x7F}, KeyEvent{Key: KeyBackspace}},
		{"backspace BS", []byte{0x08}, KeyEvent{Key: KeyBackspace}},
		{"up arrow", []byte{0x1B, '[', 'A'}, KeyEvent{Key: KeyUp}},
		{"down arrow", []byte{0x1B, '[', 'B'}, KeyEvent{Key: KeyDown}},
		{"right arrow", []byte{0x1B, '[', 'C'}, KeyEvent{Key: KeyRight}},
		{"left arrow", []byte{0x1B, '[', 'D'}, KeyEvent{Key: KeyLeft}},
		{"SS3 up arrow", []byte{0x1B, 'O', 'A'}, KeyEvent{Key: KeyUp}},
		{"lone escape", []byte{0x1B}, KeyEvent{Key: KeyEscape}},
		{"unknown sequence", []byte{0x1B, '[', '3', '~'}, KeyEvent{Key: KeyUnknown}},
		{"two-byte utf8", []byte("é"), KeyEvent{Key: KeyRune, Rune: 'é'}},
		{"three-byte utf8", []byte("中"), KeyEvent{Key: KeyRune, Rune: '中'}},
		{"four-byte utf8", []byte("😀"), KeyEvent{Key: KeyRune, Rune: '😀'}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reader := NewKeyReader(bytes.NewReader(tt.input))
			got, err := reader.ReadKey()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyReader_Sequence(t *testing.T) {
	t.Parallel()

	reader := NewKeyReader(bytes.NewReader([]byte("j\x1b[Ax")))

	var got []KeyEvent
	for {
		ev, err := reader.ReadKey()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, ev)
	}

	assert.Equal(t, []KeyEvent{
		{Key: KeyRune, Rune: 'j'},
		{Key: KeyUp},
		{Key: KeyRune, Rune: 'x'},
	}, got)
}

func TestParseShortcut(t *testing.T) {
	t.Parallel()

	rune_ := func(r rune) KeyEvent { return KeyEvent{Key: KeyRune, Rune: r} }

	tests := []struct {
		name  string
		event KeyEvent
		want  Shortcut
	}{
		{"up arrow", KeyEvent{Key: KeyUp}, ShortcutUp},
		{"k", rune_('k'), ShortcutUp},
		{"down arrow", KeyEvent{Key: KeyDown}, ShortcutDown},
		{"j", rune_('j'), ShortcutDown},
		{"space", rune_(' '), ShortcutToggle},
		{"enter", KeyEvent{Key: KeyEnter}, ShortcutToggle},
		{"x", rune_('x'), ShortcutDelete},
		{"d", rune_('d'), ShortcutDelete},
		{"a", rune_('a'), ShortcutAdd},
		{"n", rune_('n'), ShortcutAdd},
		{"1", rune_('1'), ShortcutFilterAll},
		{"2", rune_('2'), ShortcutFilterActive},
		{"3", rune_('3'), ShortcutFilterCompleted},
		{"tab", KeyEvent{Key: KeyTab}, ShortcutNextFilter},
		{"c", rune_('c'), ShortcutClearCompleted},
		{"q", rune_('q'), ShortcutQuit},
		{"escape", KeyEvent{Key: KeyEscape}, ShortcutQuit},
		{"ctrl+c", KeyEvent{Key: KeyCtrlC}, ShortcutQuit},
		{"unbound rune", rune_('z'), ShortcutNone},
		{"backspace", KeyEvent{Key: KeyBackspace}, ShortcutNone},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseShortcut(tt.event))
		})
	}
}

func typeKeys(e *LineEditor, keys ...KeyEvent) bool {
	done := false
	for _, k := range keys {
		done = e.HandleKey(k)
	}
	return done
}

func runes(s string) []KeyEvent {
	var out []KeyEvent
	for _, r := range s {
		out = append(out, KeyEvent{Key: KeyRune, Rune: r})
	}
	return out
}

func TestLineEditor_HandleKey(t *testing.T) {
	t.Parallel()

	left := KeyEvent{Key: KeyLeft}
	right := KeyEvent{Key: KeyRight}
	backspace := KeyEvent{Key: KeyBackspace}

	tests := []struct {
		name       string
		keys       []KeyEvent
		wantText   string
		wantCursor int
		wantDone   bool
	}{
		{
			name:       "typing",
			keys:       runes("buy milk"),
			wantText:   "buy milk",
			wantCursor: 8,
		},
		{
			name:       "backspace",
			keys:       append(runes("hello"), backspace, backspace),
			wantText:   "hel",
			wantCursor: 3,
		},
		{
			name:       "backspace on empty buffer",
			keys:       []KeyEvent{backspace},
			wantText:   "",
			wantCursor: 0,
		},
		{
			name:       "insert in the middle",
			keys:       append(runes("hlo"), left, left, KeyEvent{Key: KeyRune, Rune: 'e'}, KeyEvent{Key: KeyRune, Rune: 'l'}),
			wantText:   "hello",
			wantCursor: 3,
		},
		{
			name:       "cursor stops at the ends",
			keys:       append(runes("ab"), right, right, left, left, left),
			wantText:   "ab",
			wantCursor: 0,
		},
		{
			name:       "ctrl+u clears before the cursor",
			keys:       append(runes("one two"), left, left, left, KeyEvent{Key: KeyCtrlU}),
			wantText:   "two",
			wantCursor: 0,
		},
		{
			name:       "enter completes the line",
			keys:       append(runes("done"), KeyEvent{Key: KeyEnter}),
			wantText:   "done",
			wantCursor: 4,
			wantDone:   true,
		},
		{
			name:       "multibyte runes",
			keys:       append(runes("café"), backspace),
			wantText:   "caf",
			wantCursor: 3,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := NewLineEditor()
			done := typeKeys(e, tt.keys...)

			assert.Equal(t, tt.wantDone, done)
			assert.Equal(t, tt.wantText, e.Text())
			assert.Equal(t, tt.wantCursor, e.Cursor())
			assert.Equal(t, len([]rune(tt.wantText)), e.Len())
		})
	}
}

func TestLineEditor_Clear(t *testing.T) {
	t.Parallel()

	e := NewLineEditor()
	typeKeys(e, runes("hello")...)
	e.Clear()

	assert.Equal(t, "", e.Text())
	assert.Equal(t, 0, e.Cursor())
	assert.Equal(t, 0, e.Len())
}
