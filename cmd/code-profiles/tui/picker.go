package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ruminaider/code-profiles/internal/extensions"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"
)

// StatusGlyph is the one-character cell shown for a profile status.
func StatusGlyph(s extensions.Status) string {
	switch s {
	case extensions.Enabled:
		return "●"
	case extensions.Disabled:
		return "○"
	case extensions.Common:
		return "C"
	default:
		return "·"
	}
}

// StatusCell renders StatusGlyph in the status colour.
func StatusCell(s extensions.Status) string {
	g := StatusGlyph(s)
	switch s {
	case extensions.Enabled:
		return enabledStyle.Render(g)
	case extensions.Disabled:
		return disabledStyle.Render(g)
	case extensions.Common:
		return commonStyle.Render(g)
	default:
		return DimStyle.Render(g)
	}
}

// rowSource adapts rows for fuzzy matching on id and explanation.
type rowSource []extensions.Row

func (s rowSource) String(i int) string {
	return strings.ToLower(s[i].ID + " " + s[i].Explanation)
}

func (s rowSource) Len() int { return len(s) }

// ExtensionPicker is a multi-select over the optional extension rows. Each
// row shows the per-profile status columns; the highlighted row's
// explanation is previewed below the list.
type ExtensionPicker struct {
	rows     []extensions.Row
	profiles []string
	selected map[string]bool

	visible   []int // indexes into rows after filtering
	cursor    int   // index into visible
	offset    int
	height    int
	query     string
	searching bool

	cancelled bool
}

// NewExtensionPicker builds a picker over m's optional rows. Nothing is
// pre-selected.
func NewExtensionPicker(m *extensions.Matrix) ExtensionPicker {
	p := ExtensionPicker{
		rows:     m.Optional(),
		profiles: m.Profiles,
		selected: make(map[string]bool),
		height:   15,
	}
	p.refilter()
	return p
}

func (p ExtensionPicker) Init() tea.Cmd { return nil }

func (p ExtensionPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// title, header, blank, preview (2), help
		p.height = max(msg.Height-7, 3)
		p.clampScroll()
	case tea.KeyMsg:
		if p.searching {
			return p.updateSearch(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			p.cancelled = true
			return p, tea.Quit
		case "enter":
			return p, tea.Quit
		case "up", "k":
			p.moveCursor(-1)
		case "down", "j":
			p.moveCursor(+1)
		case " ":
			p.toggleCurrent()
		case "a":
			p.setVisible(true)
		case "n":
			p.setVisible(false)
		case "/":
			p.searching = true
		}
	}
	return p, nil
}

func (p ExtensionPicker) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		p.cancelled = true
		return p, tea.Quit
	case tea.KeyEsc:
		p.searching = false
		p.query = ""
		p.refilter()
	case tea.KeyEnter:
		p.searching = false
	case tea.KeyBackspace:
		if r := []rune(p.query); len(r) > 0 {
			p.query = string(r[:len(r)-1])
			p.refilter()
		}
	case tea.KeyUp:
		p.moveCursor(-1)
	case tea.KeyDown:
		p.moveCursor(+1)
	case tea.KeySpace:
		p.query += " "
		p.refilter()
	case tea.KeyRunes:
		p.query += string(msg.Runes)
		p.refilter()
	}
	return p, nil
}

// View renders the title, column header, visible rows, preview and help.
func (p ExtensionPicker) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("Select extensions (%d/%d)", p.SelectedCount(), len(p.rows))))
	b.WriteString("\n")
	if p.searching || p.query != "" {
		b.WriteString(SearchStyle.Render("/" + p.query))
		if p.searching {
			b.WriteString(SearchStyle.Render("▏"))
		}
		b.WriteString("\n")
	}

	width := p.idWidth()
	b.WriteString(HeaderStyle.Render("      " + pad("extension", width) + " " + strings.Join(p.profiles, " ")))
	b.WriteString("\n")

	if len(p.visible) == 0 {
		b.WriteString(DimStyle.Render("  (no matching extensions)") + "\n")
	}
	end := min(p.offset+p.height, len(p.visible))
	if p.offset > 0 {
		b.WriteString(DimStyle.Render("  ↑ more") + "\n")
	}
	for i := p.offset; i < end; i++ {
		b.WriteString(p.renderRow(i, width) + "\n")
	}
	if end < len(p.visible) {
		b.WriteString(DimStyle.Render("  ↓ more") + "\n")
	}

	b.WriteString(PreviewStyle.Render(p.preview()))
	b.WriteString("\n")
	b.WriteString(p.help())
	return b.String()
}

func (p ExtensionPicker) renderRow(i, width int) string {
	r := p.rows[p.visible[i]]

	cursor := "  "
	if i == p.cursor {
		cursor = CursorStyle.Render("> ")
	}
	check := UnselectedStyle.Render("[ ]")
	if p.selected[r.ID] {
		check = SelectedStyle.Render("[x]")
	}
	id := pad(r.ID, width)
	if i == p.cursor {
		id = CursorStyle.Render(id)
	}

	cells := make([]string, len(p.profiles))
	for j, name := range p.profiles {
		// centre the glyph under the profile name
		w := lipgloss.Width(name)
		left := (w - 1) / 2
		cells[j] = strings.Repeat(" ", left) + StatusCell(r.Status(name)) + strings.Repeat(" ", w-1-left)
	}
	return cursor + check + " " + id + " " + strings.Join(cells, " ")
}

func (p ExtensionPicker) preview() string {
	if len(p.visible) == 0 {
		return ""
	}
	r := p.rows[p.visible[p.cursor]]
	if r.Explanation == "" {
		return DimStyle.Render(r.ID + ": no explanation")
	}
	return r.ID + ": " + r.Explanation
}

func (p ExtensionPicker) help() string {
	key := StatusBarKeyStyle.Render
	if p.searching {
		return StatusBarStyle.Render(key("enter") + " keep filter  " + key("esc") + " clear")
	}
	return StatusBarStyle.Render(key("space") + " toggle  " + key("a/n") + " all/none  " +
		key("/") + " search  " + key("enter") + " confirm  " + key("esc") + " skip extensions")
}

// Selected returns the checked ids in row order.
func (p ExtensionPicker) Selected() []string {
	ids := []string{}
	for _, r := range p.rows {
		if p.selected[r.ID] {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// SelectedCount returns the number of checked rows.
func (p ExtensionPicker) SelectedCount() int {
	return len(p.Selected())
}

// Cancelled reports whether the user backed out.
func (p ExtensionPicker) Cancelled() bool { return p.cancelled }

func (p *ExtensionPicker) refilter() {
	p.visible = nil
	if p.query == "" {
		for i := range p.rows {
			p.visible = append(p.visible, i)
		}
	} else {
		for _, m := range fuzzy.FindFrom(strings.ToLower(p.query), rowSource(p.rows)) {
			p.visible = append(p.visible, m.Index)
		}
	}
	p.cursor = 0
	p.offset = 0
}

func (p *ExtensionPicker) moveCursor(dir int) {
	next := p.cursor + dir
	if next < 0 || next >= len(p.visible) {
		return
	}
	p.cursor = next
	p.clampScroll()
}

func (p *ExtensionPicker) toggleCurrent() {
	if len(p.visible) == 0 {
		return
	}
	id := p.rows[p.visible[p.cursor]].ID
	p.selected[id] = !p.selected[id]
}

// setVisible checks or clears every row matching the current filter.
func (p *ExtensionPicker) setVisible(on bool) {
	for _, i := range p.visible {
		p.selected[p.rows[i].ID] = on
	}
}

func (p *ExtensionPicker) clampScroll() {
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+p.height {
		p.offset = p.cursor - p.height + 1
	}
}

func (p ExtensionPicker) idWidth() int {
	w := len("extension")
	for _, r := range p.rows {
		w = max(w, lipgloss.Width(r.ID))
	}
	return w
}

func pad(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
