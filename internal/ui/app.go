package ui

import (
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yash-srivastava19/recall/internal/config"
	"github.com/yash-srivastava19/recall/internal/keymap"
	"github.com/yash-srivastava19/recall/internal/notes"
	"github.com/yash-srivastava19/recall/internal/selection"
)

type appState int

const (
	stateList appState = iota
	stateSearch
	stateMemory // memory panel has focus (and, in a narrow terminal, is shown)
	stateViewer
	stateConfirmClear
	stateHelp
)

// Rows taken by everything except the list body: header, divider, bordered
// search bar (3), divider, footer.
const (
	chromeHeight = 7
	listTop      = 5
	cardHeight   = 2
)

// ── App struct ────────────────────────────────────────────────────────────────

// App is the main Bubble Tea model.
type App struct {
	cfg   *config.Config
	store *notes.Store
	sel   *selection.Controller
	log   *slog.Logger

	keys keymap.KeyMap
	help help.Model

	searchMode string
	filter     func([]notes.Note, string) []notes.Note

	state     appState
	prevState appState
	width     int
	height    int

	// Derived from the store on every notify.
	filtered []notes.Note
	pinned   []notes.Note

	listOffset int

	// Search
	searchInput textinput.Model
	query       string

	// Memory panel
	memoryCursor int

	// Viewer
	current      *notes.Note
	viewerReturn appState
	viewport     viewport.Model

	// Status
	statusMsg     string
	statusIsError bool

	copyText func(string) error
}

func New(cfg *config.Config, store *notes.Store, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}

	si := textinput.New()
	si.Placeholder = "search notes, tags, authors..."
	si.Prompt = "/ "
	si.CharLimit = 200

	a := &App{
		cfg:         cfg,
		store:       store,
		sel:         selection.New(store),
		log:         logger,
		keys:        keymap.Default(),
		help:        help.New(),
		searchInput: si,
		viewport:    viewport.New(80, 20),
		copyText:    clipboard.WriteAll,
	}
	a.setSearchMode(cfg.SearchMode)
	a.sel.OnChange(func(int, bool) { a.scrollToSelection() })
	store.Subscribe(func(*notes.Store) { a.refresh() })
	a.refresh()
	return a
}

func (a *App) Init() tea.Cmd {
	return nil
}

// ReportError shows a background failure (e.g. a pin set write) on the
// status line.
func (a *App) ReportError(err error) {
	a.setStatus("save failed: "+err.Error(), true)
}

// refresh recomputes the views derived from the store and the query.
func (a *App) refresh() {
	a.filtered = a.filter(a.store.All(), a.query)
	a.pinned = a.store.Pinned()
	a.sel.Revalidate(a.filtered)

	if a.memoryCursor >= len(a.pinned) {
		a.memoryCursor = max(0, len(a.pinned)-1)
	}
	if a.listOffset > max(0, len(a.filtered)-1) {
		a.listOffset = max(0, len(a.filtered)-1)
	}
	if a.current != nil {
		if n, ok := a.store.Get(a.current.ID); ok {
			a.current = &n
		}
	}
}

func (a *App) setQuery(q string) {
	a.query = q
	a.listOffset = 0
	a.refresh()
	a.scrollToSelection()
}

func (a *App) setSearchMode(mode string) {
	if mode != notes.SearchFuzzy {
		mode = notes.SearchSubstring
	}
	a.searchMode = mode
	a.filter = notes.FilterFunc(mode)
}

// ── Update ────────────────────────────────────────────────────────────────────

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.viewport.Width = a.width - 2
		a.viewport.Height = max(1, a.height-6)
		if a.current != nil {
			a.reRender()
		}
		a.scrollToSelection()

	case tea.MouseMsg:
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		a.statusMsg = ""

		switch a.state {
		case stateList:
			return a.updateList(msg)
		case stateSearch:
			return a.updateSearch(msg)
		case stateMemory:
			return a.updateMemory(msg)
		case stateViewer:
			return a.updateViewer(msg)
		case stateConfirmClear:
			return a.updateConfirmClear(msg)
		case stateHelp:
			return a.updateHelp(msg)
		}
	}

	return a, nil
}

// ── List ──────────────────────────────────────────────────────────────────────

func (a *App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		a.sel.Advance(a.filtered, selection.Next)

	case key.Matches(msg, a.keys.Up):
		a.sel.Advance(a.filtered, selection.Prev)

	case key.Matches(msg, a.keys.Pin):
		a.sel.ToggleSelectedPin()

	case key.Matches(msg, a.keys.Search):
		a.state = stateSearch
		a.searchInput.CursorEnd()
		return a, a.searchInput.Focus()

	case key.Matches(msg, a.keys.Open):
		if n, ok := a.selectedNote(); ok {
			a.openNote(n, stateList)
		}

	case key.Matches(msg, a.keys.Memory):
		a.state = stateMemory

	case key.Matches(msg, a.keys.ClearAll):
		a.confirmClear()

	case key.Matches(msg, a.keys.Copy):
		if n, ok := a.selectedNote(); ok {
			a.copyNote(n)
		}

	case key.Matches(msg, a.keys.Mode):
		a.toggleSearchMode()

	case key.Matches(msg, a.keys.Back):
		if a.query != "" {
			a.searchInput.SetValue("")
			a.setQuery("")
		} else {
			a.sel.Clear()
		}

	case key.Matches(msg, a.keys.Help):
		a.prevState = stateList
		a.state = stateHelp
	}

	return a, nil
}

// ── Search ────────────────────────────────────────────────────────────────────

func (a *App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.SearchExit):
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		a.setQuery("")
		a.state = stateList
		return a, nil

	case key.Matches(msg, a.keys.SearchDone):
		a.searchInput.Blur()
		a.state = stateList
		return a, nil

	case key.Matches(msg, a.keys.SearchDown):
		a.sel.Advance(a.filtered, selection.Next)
		return a, nil

	case key.Matches(msg, a.keys.SearchUp):
		a.sel.Advance(a.filtered, selection.Prev)
		return a, nil

	case key.Matches(msg, a.keys.Mode):
		a.toggleSearchMode()
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	if q := a.searchInput.Value(); q != a.query {
		a.setQuery(q)
	}
	return a, cmd
}

func (a *App) toggleSearchMode() {
	if a.searchMode == notes.SearchFuzzy {
		a.setSearchMode(notes.SearchSubstring)
	} else {
		a.setSearchMode(notes.SearchFuzzy)
	}
	a.refresh()
	a.scrollToSelection()
	a.setStatus("search mode: "+a.searchMode, false)
}

// ── Memory panel ──────────────────────────────────────────────────────────────

func (a *App) updateMemory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Memory), key.Matches(msg, a.keys.Back), key.Matches(msg, a.keys.Quit):
		a.state = stateList

	case key.Matches(msg, a.keys.Down):
		if a.memoryCursor < len(a.pinned)-1 {
			a.memoryCursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.memoryCursor > 0 {
			a.memoryCursor--
		}

	case key.Matches(msg, a.keys.Remove), key.Matches(msg, a.keys.Pin):
		if n, ok := a.memoryNote(); ok {
			a.store.TogglePin(n.ID)
			a.setStatus("removed "+truncate(n.Title, 40), false)
		}

	case key.Matches(msg, a.keys.ClearAll):
		a.confirmClear()

	case key.Matches(msg, a.keys.Open):
		if n, ok := a.memoryNote(); ok {
			a.openNote(n, stateMemory)
		}

	case key.Matches(msg, a.keys.Copy):
		if n, ok := a.memoryNote(); ok {
			a.copyNote(n)
		}

	case key.Matches(msg, a.keys.Help):
		a.prevState = stateMemory
		a.state = stateHelp
	}
	return a, nil
}

// ── Viewer ────────────────────────────────────────────────────────────────────

func (a *App) updateViewer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "h", "esc":
		a.state = a.viewerReturn
		a.current = nil

	case "j", "down":
		a.viewport.LineDown(1)

	case "k", "up":
		a.viewport.LineUp(1)

	case "d", "ctrl+d":
		a.viewport.LineDown(a.viewport.Height / 2)

	case "u", "ctrl+u":
		a.viewport.LineUp(a.viewport.Height / 2)

	case "g":
		a.viewport.GotoTop()

	case "G":
		a.viewport.GotoBottom()

	case "p", "P":
		if a.current != nil {
			a.store.TogglePin(a.current.ID)
		}

	case "y":
		if a.current != nil {
			a.copyNote(*a.current)
		}

	case "?":
		a.prevState = stateViewer
		a.state = stateHelp
	}
	return a, nil
}

// ── Confirm clear ─────────────────────────────────────────────────────────────

func (a *App) confirmClear() {
	if len(a.pinned) == 0 {
		a.setStatus("nothing pinned", false)
		return
	}
	a.prevState = a.state
	a.state = stateConfirmClear
}

func (a *App) updateConfirmClear(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		n := len(a.pinned)
		a.store.ClearAllPins()
		a.state = a.prevState
		if a.statusMsg == "" {
			a.setStatus(fmt.Sprintf("cleared %d pinned notes", n), false)
		}

	case "n", "N", "esc", "q":
		a.state = a.prevState
	}
	return a, nil
}

// ── Help ──────────────────────────────────────────────────────────────────────

func (a *App) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "?":
		a.state = a.prevState
	}
	return a, nil
}

// ── Mouse ─────────────────────────────────────────────────────────────────────

func (a *App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.state != stateList && a.state != stateSearch {
		return a, nil
	}
	if msg.Action != tea.MouseActionPress {
		return a, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelDown:
		a.sel.Advance(a.filtered, selection.Next)
	case tea.MouseButtonWheelUp:
		a.sel.Advance(a.filtered, selection.Prev)
	case tea.MouseButtonLeft:
		idx, onPin, ok := a.hitTest(msg.X, msg.Y)
		if !ok {
			return a, nil
		}
		id := a.filtered[idx].ID
		if onPin {
			a.store.TogglePin(id)
		} else {
			a.sel.SelectExplicit(id)
		}
	}
	return a, nil
}

// hitTest maps a screen cell to a row of the filtered list. onPin is true
// when the cell is on the row's pin marker.
func (a *App) hitTest(x, y int) (idx int, onPin bool, ok bool) {
	row := y - listTop
	if row < 0 || row >= a.bodyHeight() || x >= a.listWidth() {
		return 0, false, false
	}
	idx = a.listOffset + row/cardHeight
	if idx >= len(a.filtered) {
		return 0, false, false
	}
	onPin = row%cardHeight == 0 && x >= 2 && x < 5
	return idx, onPin, true
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (a *App) selectedNote() (notes.Note, bool) {
	id, ok := a.sel.Selected()
	if !ok {
		return notes.Note{}, false
	}
	return a.store.Get(id)
}

func (a *App) memoryNote() (notes.Note, bool) {
	if a.memoryCursor < 0 || a.memoryCursor >= len(a.pinned) {
		return notes.Note{}, false
	}
	return a.pinned[a.memoryCursor], true
}

func (a *App) openNote(n notes.Note, from appState) {
	a.current = &n
	a.viewerReturn = from
	a.state = stateViewer
	a.reRender()
}

func (a *App) copyNote(n notes.Note) {
	text := n.Title
	if n.Description != "" {
		text += "\n\n" + n.Description
	}
	if err := a.copyText(text); err != nil {
		a.log.Warn("clipboard write failed", "err", err)
		a.setStatus("copy failed: "+err.Error(), true)
		return
	}
	a.setStatus("copied "+truncate(n.Title, 40), false)
}

func (a *App) wide() bool {
	return a.width >= a.cfg.WideWidth
}

func (a *App) listWidth() int {
	if a.wide() {
		return a.width * 2 / 3
	}
	return a.width
}

func (a *App) bodyHeight() int {
	return max(cardHeight, a.height-chromeHeight)
}

func (a *App) pageSize() int {
	return max(1, a.bodyHeight()/cardHeight)
}

// scrollToSelection brings the selected row into view with nearest
// alignment: the list only moves if the row is currently off screen.
func (a *App) scrollToSelection() {
	idx := a.sel.Index(a.filtered)
	if idx < 0 {
		return
	}
	page := a.pageSize()
	if idx < a.listOffset {
		a.listOffset = idx
	}
	if idx >= a.listOffset+page {
		a.listOffset = idx - page + 1
	}
}

func (a *App) setStatus(msg string, isErr bool) {
	a.statusMsg = msg
	a.statusIsError = isErr
}
