// Package tui is the interactive terminal editor for the resume document.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Up       key.Binding
	Down     key.Binding
	Edit     key.Binding
	Add      key.Binding
	Remove   key.Binding
	Template key.Binding
	Preview  key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Edit, k.Add, k.Remove, k.Template, k.Preview, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev, k.Up, k.Down}, {k.Edit, k.Add, k.Remove}, {k.Template, k.Preview, k.Quit}}
}

var keys = keyMap{
	Next:     key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", "next section")),
	Prev:     key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab", "prev section")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Edit:     key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add entry")),
	Remove:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove entry")),
	Template: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "template")),
	Preview:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// row is one editable field on screen. index is -1 for personal info.
type row struct {
	index int
	field string
	value string
}

// Model is the Bubble Tea model for the editor.
type Model struct {
	ctx    context.Context
	editor *editor.Editor

	tab    int // index into types.Sections
	cursor int

	// inline edit; multi-line fields use ta, the rest ti
	editing bool
	target  row
	loaded  string // widget value right after opening
	ti      textinput.Model
	ta      textarea.Model

	previewing bool
	status     string
	err        error

	help   help.Model
	width  int
	height int
}

// New creates a model over ed. Edits are persisted through ed as they are made.
func New(ctx context.Context, ed *editor.Editor) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 0

	ta := textarea.New()
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(6)

	return Model{
		ctx:    ctx,
		editor: ed,
		ti:     ti,
		ta:     ta,
		help:   help.New(),
		width:  80,
		height: 24,
	}
}

// Run starts the terminal editor and blocks until the user quits.
func Run(ctx context.Context, ed *editor.Editor) error {
	p := tea.NewProgram(New(ctx, ed), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) section() types.Section {
	return types.Sections[m.tab]
}

// rows lists the editable fields of the current section in display order.
func (m Model) rows() []row {
	doc := m.editor.Snapshot().Document
	section := m.section()

	var out []row
	switch section {
	case types.SectionPersonalInfo:
		p := doc.PersonalInfo
		out = []row{
			{-1, types.FieldName, p.Name},
			{-1, types.FieldEmail, p.Email},
			{-1, types.FieldPhone, p.Phone},
		}
	case types.SectionEducation:
		for i, e := range doc.Education {
			out = append(out,
				row{i, types.FieldInstitution, e.Institution},
				row{i, types.FieldDegree, e.Degree},
				row{i, types.FieldYear, e.Year},
			)
		}
	case types.SectionWorkExperience:
		for i, w := range doc.WorkExperience {
			out = append(out,
				row{i, types.FieldCompany, w.Company},
				row{i, types.FieldPosition, w.Position},
				row{i, types.FieldDuration, w.Duration},
				row{i, types.FieldDescription, w.Description},
			)
		}
	case types.SectionSkills:
		for i, s := range doc.Skills {
			out = append(out, row{i, types.FieldName, s.Name})
		}
	}
	return out
}

func (m Model) selected() (row, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return row{}, false
	}
	return rows[m.cursor], true
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		m.help.Width = size.Width
		m.ta.SetWidth(max(20, size.Width-8))
		return m, nil
	}

	if m.editing {
		return m.updateEditing(msg)
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.previewing {
		switch {
		case key.Matches(k, keys.Quit):
			return m, tea.Quit
		case key.Matches(k, keys.Template):
			m.toggleTemplate()
		default:
			m.previewing = false
		}
		return m, nil
	}

	m.err = nil
	switch {
	case key.Matches(k, keys.Quit):
		return m, tea.Quit
	case key.Matches(k, keys.Next):
		m.tab = (m.tab + 1) % len(types.Sections)
		m.cursor = 0
	case key.Matches(k, keys.Prev):
		m.tab = (m.tab + len(types.Sections) - 1) % len(types.Sections)
		m.cursor = 0
	case key.Matches(k, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(k, keys.Down):
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}
	case key.Matches(k, keys.Edit):
		r, ok := m.selected()
		if !ok {
			return m, nil
		}
		cmd := m.openEditor(r)
		if m.loaded != r.value {
			m.status = "warning: " + r.field + " has characters this input cannot show; saving will replace them"
		}
		return m, cmd
	case key.Matches(k, keys.Add):
		if !m.section().IsList() {
			return m, nil
		}
		snap, err := m.editor.AddEntry(m.ctx, m.section())
		if err != nil {
			m.err = err
			return m, nil
		}
		// jump to the first field of the new entry
		m.cursor = len(m.rows()) - len(m.section().Fields())
		m.status = fmt.Sprintf("added %s entry (score %d)", m.section().Title(), snap.Score)
	case key.Matches(k, keys.Remove):
		r, ok := m.selected()
		if !ok || r.index < 0 {
			return m, nil
		}
		snap, err := m.editor.RemoveEntry(m.ctx, m.section(), r.index)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.cursor = max(0, min(m.cursor, len(m.rows())-1))
		m.status = fmt.Sprintf("removed %s entry %d (score %d)", m.section().Title(), r.index, snap.Score)
	case key.Matches(k, keys.Template):
		m.toggleTemplate()
	case key.Matches(k, keys.Preview):
		m.previewing = true
	}
	return m, nil
}

func (m *Model) toggleTemplate() {
	next := types.TemplateClassic
	if m.editor.Template() == types.TemplateClassic {
		next = types.TemplateModern
	}
	t, _ := m.editor.SetTemplate(string(next))
	m.status = "template: " + string(t)
}

// multiline reports whether field is edited in the textarea.
func multiline(field string) bool {
	return field == types.FieldDescription
}

// openEditor focuses the input for r and records what the input holds.
func (m *Model) openEditor(r row) tea.Cmd {
	m.editing = true
	m.target = r
	if multiline(r.field) {
		m.ta.SetValue(r.value)
		m.ta.Placeholder = r.field
		m.loaded = m.ta.Value()
		return m.ta.Focus()
	}
	m.ti.SetValue(r.value)
	m.ti.CursorEnd()
	m.ti.Placeholder = r.field
	m.loaded = m.ti.Value()
	return m.ti.Focus()
}

func (m *Model) closeEditor() {
	m.editing = false
	m.ti.Blur()
	m.ta.Blur()
	m.ti.SetValue("")
	m.ta.Reset()
}

// commit saves the edited value. An untouched input is never written back,
// so values the input cannot represent survive opening and closing it.
func (m *Model) commit(value string) {
	defer m.closeEditor()

	if value == m.loaded {
		m.status = m.target.field + " unchanged"
		return
	}

	var err error
	if m.target.index < 0 {
		_, err = m.editor.SetField(m.ctx, m.section(), m.target.field, value)
	} else {
		_, err = m.editor.SetEntryField(m.ctx, m.section(), m.target.index, m.target.field, value)
	}
	m.err = err
	if err == nil {
		m.status = "saved " + m.target.field
	}
}

func (m Model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	area := multiline(m.target.field)

	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "ctrl+s":
			if area {
				m.commit(m.ta.Value())
			} else {
				m.commit(m.ti.Value())
			}
			return m, nil
		case "enter":
			// enter starts a new line in the textarea
			if !area {
				m.commit(m.ti.Value())
				return m, nil
			}
		case "esc":
			m.closeEditor()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if area {
		m.ta, cmd = m.ta.Update(msg)
	} else {
		m.ti, cmd = m.ti.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	snap := m.editor.Snapshot()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s   %s %s   %s\n",
		titleStyle.Render("Resume Builder"),
		accentStyle.Render("template:"), snap.Template,
		scoreBar(snap.Score, 20),
	))

	if m.previewing {
		view := rendering.Render(snap.Document, snap.Template)
		b.WriteString("\n" + rendering.Text(view))
		b.WriteString(helpStyle.Render("\nt template • any key back • q quit"))
		return panelStyle.Render(b.String())
	}

	tabs := make([]string, 0, len(types.Sections))
	for i, s := range types.Sections {
		style := inactiveTab
		if i == m.tab {
			style = activeTab
		}
		label := s.Title()
		if s.IsList() {
			label = fmt.Sprintf("%s (%d)", label, snap.Document.Len(s))
		}
		tabs = append(tabs, style.Render(label))
	}
	b.WriteString(strings.Join(tabs, "  ") + "\n\n")

	rows := m.rows()
	if len(rows) == 0 {
		b.WriteString(mutedStyle.Render("  no entries, press a to add one") + "\n")
	}
	last := -1
	for i, r := range rows {
		if r.index >= 0 && r.index != last {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  #%d", r.index)) + "\n")
			last = r.index
		}
		value := r.value
		if value == "" {
			value = mutedStyle.Render("(empty)")
		}
		line := fmt.Sprintf("%-12s %s", r.field, value)
		prefix := "  "
		if i == m.cursor {
			prefix = selectedStyle.Render("> ")
		}
		b.WriteString(prefix + line + "\n")
	}

	if m.editing {
		input, hint := m.ti.View(), "enter save • esc cancel"
		if multiline(m.target.field) {
			input, hint = m.ta.View(), "ctrl+s save • enter new line • esc cancel"
		}
		bar := panelStyle.Render(fmt.Sprintf("Edit %s\n%s\n%s", m.target.field, input, helpStyle.Render(hint)))
		b.WriteString("\n" + bar + "\n")
	}

	switch {
	case m.err != nil:
		b.WriteString("\n" + errorStyle.Render("✖ "+m.err.Error()) + "\n")
	case m.status != "":
		b.WriteString("\n" + successStyle.Render("✔ "+m.status) + "\n")
	}

	b.WriteString("\n" + m.help.View(keys))
	return panelStyle.Render(b.String())
}
