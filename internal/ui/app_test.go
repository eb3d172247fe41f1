package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yash-srivastava19/recall/internal/config"
	"github.com/yash-srivastava19/recall/internal/kv"
	"github.com/yash-srivastava19/recall/internal/notes"
	"github.com/yash-srivastava19/recall/internal/pins"
)

// newTestApp builds an 80x24 app over n notes titled "note 1".."note n",
// with pins mirrored to an in-memory kv store.
func newTestApp(t *testing.T, n int) (*App, *notes.Store, *kv.Memory) {
	t.Helper()
	var ds []notes.Note
	for i := 1; i <= n; i++ {
		ds = append(ds, notes.Note{
			ID:        i,
			Title:     fmt.Sprintf("note %d", i),
			Tags:      []string{[]string{"alpha", "beta", "gamma"}[i%3]},
			Author:    "ann",
			CreatedAt: "2025-01-14T09:12:00Z",
		})
	}
	store, err := notes.NewStore(ds, nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	mem := kv.NewMemory()
	if err := pins.New(mem, "", nil).Bind(store); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	app := New(config.Default(), store, nil)
	app.copyText = func(string) error { return nil }
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return app, store, mem
}

func press(a *App, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "ctrl+f":
			msg = tea.KeyMsg{Type: tea.KeyCtrlF}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		a.Update(msg)
	}
}

func click(a *App, x, y int) {
	a.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func selected(t *testing.T, a *App) int {
	t.Helper()
	id, ok := a.sel.Selected()
	if !ok {
		return -1
	}
	return id
}

func TestApp_navigateAndPin(t *testing.T) {
	app, store, mem := newTestApp(t, 3)

	if got := selected(t, app); got != -1 {
		t.Fatalf("expected no selection at start, got %d", got)
	}
	press(app, "j", "j")
	if got := selected(t, app); got != 2 {
		t.Fatalf("after j j: got %d, want 2", got)
	}
	press(app, "p")
	if n, _ := store.Get(2); !n.Pinned {
		t.Fatal("note 2 should be pinned")
	}
	if v, _, _ := mem.Get(pins.DefaultKey); v != "[2]" {
		t.Errorf("persisted: got %q, want [2]", v)
	}

	press(app, "k", "k", "k")
	if got := selected(t, app); got != 1 {
		t.Errorf("up clamps at the first note, got %d", got)
	}
	press(app, "p")
	if v, _, _ := mem.Get(pins.DefaultKey); v != "[1,2]" {
		t.Errorf("persisted: got %q, want [1,2]", v)
	}
	if len(app.pinned) != 2 {
		t.Errorf("memory panel: got %d pinned", len(app.pinned))
	}
}

func TestApp_pinWithoutSelectionIsNoop(t *testing.T) {
	app, store, mem := newTestApp(t, 3)
	before := mem.Writes()

	press(app, "p")
	if len(store.PinnedIDs()) != 0 {
		t.Error("nothing should be pinned")
	}
	if mem.Writes() != before {
		t.Error("no write expected")
	}
}

func TestApp_searchNarrowsAndRevalidates(t *testing.T) {
	app, _, _ := newTestApp(t, 12)

	press(app, "j", "j") // note 2
	press(app, "/", "1")
	if app.state != stateSearch {
		t.Fatalf("expected search state, got %v", app.state)
	}
	// "1" matches note 1, 10, 11, 12; note 2 is filtered out.
	if len(app.filtered) != 4 {
		t.Fatalf("filtered: got %d, want 4", len(app.filtered))
	}
	if got := selected(t, app); got != -1 {
		t.Errorf("selection should clear when filtered out, got %d", got)
	}

	press(app, "down")
	if got := selected(t, app); got != 1 {
		t.Errorf("down from no selection: got %d, want 1", got)
	}
	press(app, "down")
	if got := selected(t, app); got != 10 {
		t.Errorf("down: got %d, want 10", got)
	}

	press(app, "enter")
	if app.state != stateList || app.query != "1" {
		t.Errorf("enter keeps the filter: state=%v query=%q", app.state, app.query)
	}

	press(app, "esc")
	if app.query != "" || len(app.filtered) != 12 {
		t.Errorf("esc should clear the filter: query=%q filtered=%d", app.query, len(app.filtered))
	}
	if got := selected(t, app); got != 10 {
		t.Errorf("clearing the filter keeps a visible selection, got %d", got)
	}
}

func TestApp_searchNoResults(t *testing.T) {
	app, _, _ := newTestApp(t, 3)
	press(app, "/", "z", "z", "z")
	if len(app.filtered) != 0 {
		t.Fatalf("filtered: got %d", len(app.filtered))
	}
	if !strings.Contains(app.View(), "No results found") {
		t.Error("expected empty state in view")
	}
	press(app, "down")
	if got := selected(t, app); got != -1 {
		t.Errorf("navigation over an empty list is a no-op, got %d", got)
	}
}

func TestApp_fuzzyToggle(t *testing.T) {
	app, _, _ := newTestApp(t, 3)
	press(app, "ctrl+f")
	if app.searchMode != notes.SearchFuzzy {
		t.Fatalf("mode: got %q", app.searchMode)
	}
	press(app, "/", "n", "t", "3")
	if len(app.filtered) != 1 || app.filtered[0].ID != 3 {
		t.Errorf("fuzzy nt3: got %+v", app.filtered)
	}
}

func TestApp_memoryRemoveAndClear(t *testing.T) {
	app, store, mem := newTestApp(t, 4)
	store.TogglePin(1)
	store.TogglePin(3)
	store.TogglePin(4)

	press(app, "m")
	if app.state != stateMemory {
		t.Fatalf("state: got %v", app.state)
	}
	press(app, "j", "x")
	if v, _, _ := mem.Get(pins.DefaultKey); v != "[1,4]" {
		t.Errorf("after remove: got %q, want [1,4]", v)
	}
	if app.memoryCursor != 1 {
		t.Errorf("cursor: got %d", app.memoryCursor)
	}

	press(app, "C")
	if app.state != stateConfirmClear {
		t.Fatalf("state: got %v", app.state)
	}
	press(app, "n")
	if app.state != stateMemory || len(store.PinnedIDs()) != 2 {
		t.Fatal("cancel should keep pins")
	}

	press(app, "C", "y")
	if app.state != stateMemory {
		t.Errorf("state after clear: got %v", app.state)
	}
	if v, _, _ := mem.Get(pins.DefaultKey); v != "[]" {
		t.Errorf("after clear: got %q, want []", v)
	}
	if !strings.Contains(app.View(), "Nothing pinned yet") {
		t.Error("expected empty memory state")
	}
}

func TestApp_clearWithNothingPinned(t *testing.T) {
	app, _, _ := newTestApp(t, 2)
	press(app, "C")
	if app.state != stateList {
		t.Errorf("no confirm when nothing is pinned, got %v", app.state)
	}
}

func TestApp_scrollNearest(t *testing.T) {
	app, _, _ := newTestApp(t, 12)
	page := app.pageSize()
	if page != 8 {
		t.Fatalf("page size: got %d", page)
	}

	for i := 0; i < 10; i++ {
		press(app, "j")
	}
	if app.listOffset != 2 {
		t.Errorf("offset after moving to index 9: got %d, want 2", app.listOffset)
	}
	press(app, "k", "k", "k", "k", "k", "k", "k")
	if app.listOffset != 2 {
		t.Errorf("index 2 is already visible, offset should stay 2, got %d", app.listOffset)
	}
	press(app, "k")
	if app.listOffset != 1 {
		t.Errorf("offset: got %d, want 1", app.listOffset)
	}
}

func TestApp_mouse(t *testing.T) {
	app, store, _ := newTestApp(t, 3)

	// second card, title column
	click(app, 10, listTop+cardHeight)
	if got := selected(t, app); got != 2 {
		t.Fatalf("click row: got %d, want 2", got)
	}

	// first card, pin marker
	click(app, 3, listTop)
	if n, _ := store.Get(1); !n.Pinned {
		t.Error("pin click should pin note 1")
	}
	if got := selected(t, app); got != 2 {
		t.Errorf("pin click must not move the selection, got %d", got)
	}

	// below the last card
	click(app, 10, listTop+10)
	if got := selected(t, app); got != 2 {
		t.Errorf("click on empty space changed selection to %d", got)
	}
}

func TestApp_viewerPinAndBack(t *testing.T) {
	app, store, _ := newTestApp(t, 3)
	press(app, "j", "enter")
	if app.state != stateViewer || app.current == nil || app.current.ID != 1 {
		t.Fatalf("viewer not open: state=%v", app.state)
	}
	press(app, "p")
	if !app.current.Pinned {
		t.Error("viewer should reflect the toggled pin")
	}
	if n, _ := store.Get(1); !n.Pinned {
		t.Error("store should hold the pin")
	}
	press(app, "q")
	if app.state != stateList || app.current != nil {
		t.Errorf("q should return to list, got %v", app.state)
	}
}

func TestApp_copy(t *testing.T) {
	app, _, _ := newTestApp(t, 2)
	var got string
	app.copyText = func(s string) error { got = s; return nil }

	press(app, "j", "y")
	if got != "note 1" {
		t.Errorf("copied %q", got)
	}

	app.copyText = func(string) error { return errors.New("no clipboard") }
	press(app, "y")
	if !app.statusIsError || !strings.Contains(app.statusMsg, "no clipboard") {
		t.Errorf("status: %q", app.statusMsg)
	}
}

func TestApp_reportError(t *testing.T) {
	app, _, _ := newTestApp(t, 1)
	app.ReportError(errors.New("disk full"))
	if !strings.Contains(app.View(), "save failed: disk full") {
		t.Error("error should show on the status line")
	}
}

func TestApp_wideLayoutShowsMemory(t *testing.T) {
	app, store, _ := newTestApp(t, 2)
	store.TogglePin(2)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 24})

	v := app.View()
	if !strings.Contains(v, "Memory (1)") {
		t.Error("wide layout should show the memory panel beside the list")
	}
	if !strings.Contains(v, "note 1") {
		t.Error("wide layout should still show the list")
	}
}

func TestApp_escClearsSelectionWhenUnfiltered(t *testing.T) {
	app, _, _ := newTestApp(t, 3)
	press(app, "j", "esc")
	if got := selected(t, app); got != -1 {
		t.Errorf("esc with no query should clear the selection, got %d", got)
	}
}
