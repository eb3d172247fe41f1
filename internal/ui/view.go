package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/yash-srivastava19/recall/internal/notes"
)

func (a *App) View() string {
	if a.width == 0 {
		return "loading..."
	}
	switch a.state {
	case stateViewer:
		return a.viewViewer()
	case stateConfirmClear:
		return a.viewConfirmClear()
	case stateHelp:
		return a.viewHelp()
	}
	return a.viewMain()
}

// viewMain draws the header, search bar, list and memory panel. In a narrow
// terminal the memory panel replaces the list while it has focus.
func (a *App) viewMain() string {
	var b strings.Builder
	w := a.width

	count := fmt.Sprintf("%d notes · %d shown · %d pinned", a.store.Len(), len(a.filtered), len(a.pinned))
	if a.searchMode == notes.SearchFuzzy {
		count += " · fuzzy"
	}
	b.WriteString(styleTitle.Render("recall") + styleDivider.Render("  —  ") + styleSubtitle.Render(count) + "\n")
	b.WriteString(styleDivider.Render(strings.Repeat("─", w)) + "\n")

	inputSty := styleInputBorder
	if a.state == stateSearch {
		inputSty = styleInputActive
	}
	b.WriteString(inputSty.Width(w-4).Render(a.searchInput.View()) + "\n")

	bodyH := a.bodyHeight()
	var body string
	switch {
	case a.wide():
		listW := a.listWidth()
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			a.viewListPane(listW, bodyH),
			a.viewMemoryPane(w-listW, bodyH),
		)
	case a.state == stateMemory:
		body = a.viewMemoryPane(w, bodyH)
	default:
		body = a.viewListPane(w, bodyH)
	}
	b.WriteString(body + "\n")

	b.WriteString(styleDivider.Render(strings.Repeat("─", w)) + "\n")
	b.WriteString(a.viewFooter())
	return b.String()
}

func (a *App) viewFooter() string {
	if a.statusMsg != "" {
		sty := styleSuccess
		if a.statusIsError {
			sty = styleError
		}
		return sty.Render("  " + a.statusMsg)
	}
	switch a.state {
	case stateSearch:
		return styleHint.Render("  type to filter  ↓/↑ navigate  ctrl+f fuzzy  Enter keep  Esc clear")
	case stateMemory:
		return styleHint.Render("  j/k navigate  x remove  C clear all  Enter open  m/Esc back")
	}
	return "  " + a.help.View(a.keys)
}

func (a *App) viewListPane(w, h int) string {
	box := lipgloss.NewStyle().Width(w).Height(h).MaxHeight(h)

	if len(a.filtered) == 0 {
		msg := styleNormalItem.Render("  No results found") + "\n" +
			styleSubtitle.Render("  Try adjusting your search, or press Esc to show all notes")
		if a.store.Len() == 0 {
			msg = styleSubtitle.Render("  the dataset has no notes")
		}
		return box.Render("\n" + msg)
	}

	selIdx := a.sel.Index(a.filtered)
	end := min(a.listOffset+a.pageSize(), len(a.filtered))
	var lines []string
	for i := a.listOffset; i < end; i++ {
		lines = append(lines, renderCard(a.filtered[i], i == selIdx, w)...)
	}
	return box.Render(strings.Join(lines, "\n"))
}

// renderCard draws one note as two lines: marker, pin and title, then the
// author, date and tags. The pin marker sits in columns 2-4.
func renderCard(n notes.Note, selected bool, w int) []string {
	pin := styleDimItem.Render("[ ]")
	if n.Pinned {
		pin = stylePin.Render("[*]")
	}
	title := truncate(n.Title, max(10, w-8))

	var first string
	if selected {
		first = styleSelectedItem.Render("▸ ") + pin + " " + styleSelectedItem.Render(title)
	} else {
		first = "  " + pin + " " + styleNormalItem.Render(title)
	}

	meta := n.Author
	if d := formatDate(n.CreatedAt); d != "" {
		if meta != "" {
			meta += " · "
		}
		meta += d
	}
	second := "      " + styleDimItem.Render(truncate(meta, max(10, w-8)))
	if len(n.Tags) > 0 {
		second += "  " + styleTag.Render(truncate(hashTags(n.Tags), max(4, w-lipgloss.Width(second)-3)))
	}
	return []string{first, second}
}

func (a *App) viewMemoryPane(w, h int) string {
	active := a.state == stateMemory
	sty := styleMemoryPanel
	if active {
		sty = styleMemoryPanelActive
	}
	innerW := max(10, w-4)

	var lines []string
	lines = append(lines, styleMemoryLabel.Render(fmt.Sprintf("Memory (%d)", len(a.pinned))))
	lines = append(lines, "")

	if len(a.pinned) == 0 {
		lines = append(lines,
			styleNormalItem.Render("Nothing pinned yet"),
			styleSubtitle.Render(truncate("Pin notes to keep them handy: press p", innerW)),
		)
	} else {
		for i, n := range a.pinned {
			title := truncate(n.Title, innerW-2)
			if active && i == a.memoryCursor {
				lines = append(lines, styleSelectedItem.Render("▸ "+title))
			} else {
				lines = append(lines, "  "+styleNormalItem.Render(title))
			}
			if tags := memoryTags(n.Tags); tags != "" {
				lines = append(lines, "  "+styleTag.Render(truncate(tags, innerW-2)))
			}
		}
	}

	// Keep the cursor in view when the panel overflows.
	maxLines := max(1, h-2)
	if len(lines) > maxLines {
		start := 0
		if active {
			start = min(len(lines)-maxLines, max(0, a.memoryCursorLine()-maxLines+2))
		}
		lines = lines[start : start+maxLines]
	}

	return sty.Width(w - 2).Height(h - 2).MaxHeight(h).Render(strings.Join(lines, "\n"))
}

// memoryCursorLine is the panel line of the highlighted pinned note.
func (a *App) memoryCursorLine() int {
	line := 2
	for i, n := range a.pinned {
		if i == a.memoryCursor {
			return line
		}
		line++
		if len(n.Tags) > 0 {
			line++
		}
	}
	return line
}

func (a *App) viewViewer() string {
	if a.current == nil {
		return "no note"
	}
	var b strings.Builder
	w := a.width

	pin := ""
	if a.current.Pinned {
		pin = stylePin.Render("  [pinned]")
	}
	hint := styleDimItem.Render("  [p]pin  [y]copy  [q]back")
	b.WriteString("  " + styleTitle.Render(truncate(a.current.Title, w-40)) + pin + hint + "\n")
	b.WriteString(styleDivider.Render(strings.Repeat("─", w)) + "\n")
	b.WriteString(a.viewport.View() + "\n")
	b.WriteString(styleDivider.Render(strings.Repeat("─", w)) + "\n")

	if a.statusMsg != "" {
		sty := styleSuccess
		if a.statusIsError {
			sty = styleError
		}
		b.WriteString(sty.Render("  " + a.statusMsg))
	} else {
		pct := int(a.viewport.ScrollPercent() * 100)
		b.WriteString(styleHint.Render(fmt.Sprintf("  j/k  g/G  d/u  p pin  y copy  q back  %d words  %d%%", wordCount(a.current.Description), pct)))
	}
	return b.String()
}

func (a *App) viewConfirmClear() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("recall") + "\n")
	b.WriteString(styleDivider.Render(strings.Repeat("─", a.width)) + "\n\n")
	b.WriteString(styleConfirm.Render(fmt.Sprintf("  Unpin all %d notes?", len(a.pinned))) + "\n\n")
	b.WriteString(styleNormalItem.Render("  y") + styleHint.Render(" yes   ") + styleNormalItem.Render("n / Esc") + styleHint.Render(" cancel") + "\n")
	return b.String()
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("recall") + styleDivider.Render("  —  ") + styleSubtitle.Render("help") + "\n")
	b.WriteString(styleDivider.Render(strings.Repeat("─", a.width)) + "\n\n")
	b.WriteString(a.help.FullHelpView(a.keys.FullHelp()) + "\n\n")
	b.WriteString(styleDivider.Render("  MOUSE") + "\n")
	b.WriteString("    click row      select\n")
	b.WriteString("    click [ ]      pin / unpin\n")
	b.WriteString("    wheel          next / prev\n\n")
	b.WriteString(styleDivider.Render(strings.Repeat("─", a.width)) + "\n")
	b.WriteString(styleHint.Render("  q / Esc / ? to close"))
	return b.String()
}

// reRender refreshes the viewer content for a.current.
func (a *App) reRender() {
	if a.current == nil {
		return
	}
	n := a.current

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(20, a.viewport.Width-2)),
	)
	rendered := n.Description
	if err == nil {
		if out, err2 := r.Render(n.Description); err2 == nil {
			rendered = out
		}
	}

	// Metadata goes above the glamour output so its ANSI codes stay clean.
	var meta []string
	if n.Author != "" {
		meta = append(meta, styleNormalItem.Render(n.Author))
	}
	if d := formatDate(n.CreatedAt); d != "" {
		if t, ok := n.Created(); ok {
			d += " (" + humanTime(t) + ")"
		}
		meta = append(meta, styleDimItem.Render(d))
	}
	header := strings.Join(meta, styleDivider.Render(" · "))
	if len(n.Tags) > 0 {
		header += "\n" + styleTag.Render(hashTags(n.Tags))
	}

	a.viewport.SetContent(header + "\n\n" + rendered)
	a.viewport.GotoTop()
}

// ── Formatting ────────────────────────────────────────────────────────────────

func formatDate(iso string) string {
	t, ok := notes.Note{CreatedAt: iso}.Created()
	if !ok {
		return iso
	}
	return t.Local().Format("Jan 02, 2006 15:04")
}

func hashTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return "#" + strings.Join(tags, " #")
}

// memoryTags shows at most two tags, then a +N count of the rest.
func memoryTags(tags []string) string {
	if len(tags) <= 2 {
		return hashTags(tags)
	}
	return hashTags(tags[:2]) + fmt.Sprintf(" +%d", len(tags)-2)
}

func humanTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dw", int(d.Hours()/(24*7)))
	default:
		return t.Format("Jan 2")
	}
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 {
		maxLen = 4
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
