package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/document"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
)

func newTestModel(t *testing.T) (Model, *editor.Editor, *document.Store) {
	t.Helper()
	ctx := context.Background()
	store := document.NewStore(storage.NewMemoryKV())
	ed := editor.New(ctx, store)
	return New(ctx, ed), ed, store
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds keys through Update and returns the resulting model.
func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestModel_EditPersonalInfo(t *testing.T) {
	m, ed, store := newTestModel(t)

	m = press(t, m,
		tea.KeyMsg{Type: tea.KeyEnter}, // edit name
		runes("Jane"),
		tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter}, // edit email
		runes("jane@example.com"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	doc := ed.Snapshot().Document
	assert.Equal(t, "Jane", doc.PersonalInfo.Name)
	assert.Equal(t, "jane@example.com", doc.PersonalInfo.Email)
	assert.Equal(t, 20, ed.Score())
	assert.Equal(t, doc, store.Load(context.Background()))
	assert.Contains(t, m.View(), "20/100")
}

// workDocument has one work entry whose description is long and multi-line.
func workDocument() types.ResumeDocument {
	doc := types.NewDocument()
	paragraph := strings.Repeat("Led the migration of billing services to Go. ", 7)
	doc.WorkExperience = []types.WorkEntry{{
		Company:     "Acme",
		Position:    "Engineer",
		Duration:    "2019-2024",
		Description: paragraph + "\n" + paragraph + "\n- on call rotation",
	}}
	return doc
}

// openDescription moves to the work tab and opens the first description.
func openDescription(t *testing.T, m Model) Model {
	t.Helper()
	m = press(t, m,
		tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	require.True(t, m.editing)
	require.Equal(t, types.FieldDescription, m.target.field)
	return m
}

func TestModel_LongMultilineDescriptionSurvivesOpenAndSave(t *testing.T) {
	m, ed, store := newTestModel(t)
	ctx := context.Background()
	_, err := ed.Replace(ctx, workDocument())
	require.NoError(t, err)
	want := workDocument()
	require.Greater(t, len(want.WorkExperience[0].Description), 500)

	m = openDescription(t, m)
	assert.Equal(t, want.WorkExperience[0].Description, m.ta.Value(), "textarea holds the value unchanged")

	// enter adds a line inside the textarea instead of saving
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.editing)
	assert.Equal(t, want, ed.Snapshot().Document)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc}, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.False(t, m.editing)
	assert.Equal(t, want, ed.Snapshot().Document)
	assert.Equal(t, want, store.Load(ctx))
}

func TestModel_EditMultilineDescription(t *testing.T) {
	m, ed, _ := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab}, runes("a"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, types.FieldDescription, m.target.field)

	m = press(t, m, runes("Built the API"), tea.KeyMsg{Type: tea.KeyEnter}, runes("Ran the team"), tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.False(t, m.editing)
	assert.Equal(t, "Built the API\nRan the team", ed.Snapshot().Document.WorkExperience[0].Description)
}

func TestModel_LongSingleLineFieldIsNotTruncated(t *testing.T) {
	m, ed, _ := newTestModel(t)
	long := strings.Repeat("x", 800)
	_, err := ed.SetField(context.Background(), types.SectionPersonalInfo, types.FieldName, long)
	require.NoError(t, err)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("!"), tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.editing)
	assert.Equal(t, long+"!", ed.Snapshot().Document.PersonalInfo.Name)
}

func TestModel_UnrepresentableValueIsNotRewritten(t *testing.T) {
	m, ed, _ := newTestModel(t)
	ctx := context.Background()
	_, err := ed.SetField(ctx, types.SectionPersonalInfo, types.FieldName, "Ada\nLovelace")
	require.NoError(t, err)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.status, "warning")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.editing)
	assert.Equal(t, "Ada\nLovelace", ed.Snapshot().Document.PersonalInfo.Name)
	assert.Contains(t, m.status, "unchanged")
}

func TestModel_EscCancelsEdit(t *testing.T) {
	m, ed, _ := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("Jane"), tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.editing)
	assert.Empty(t, ed.Snapshot().Document.PersonalInfo.Name)
}

func TestModel_AddEditRemoveSkill(t *testing.T) {
	m, ed, _ := newTestModel(t)

	// personal info -> education -> work -> skills
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, types.SectionSkills, m.section())

	m = press(t, m, runes("a"), tea.KeyMsg{Type: tea.KeyEnter}, runes("Go"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []types.SkillEntry{{Name: "Go"}}, ed.Snapshot().Document.Skills)
	assert.Equal(t, 10, ed.Score())

	m = press(t, m, runes("a"))
	assert.Equal(t, 1, m.cursor, "cursor moves to the new entry")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp}, runes("d"))
	assert.Equal(t, []types.SkillEntry{{Name: ""}}, ed.Snapshot().Document.Skills)
	assert.Equal(t, 0, m.cursor)
}

func TestModel_AddWorkEntryJumpsToFirstField(t *testing.T) {
	m, ed, _ := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab}, runes("a"), runes("a"))
	assert.Equal(t, 2, ed.Snapshot().Document.Len(types.SectionWorkExperience))
	assert.Equal(t, 4, m.cursor)

	r, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, 1, r.index)
	assert.Equal(t, types.FieldCompany, r.field)
}

func TestModel_AddAndRemoveIgnoredOnPersonalInfo(t *testing.T) {
	m, ed, _ := newTestModel(t)

	press(t, m, runes("a"), runes("d"))
	assert.Equal(t, types.NewDocument(), ed.Snapshot().Document)
}

func TestModel_PrevWrapsAround(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, types.SectionSkills, m.section())
}

func TestModel_ToggleTemplate(t *testing.T) {
	m, ed, _ := newTestModel(t)

	m = press(t, m, runes("t"))
	assert.Equal(t, types.TemplateClassic, ed.Template())
	assert.Contains(t, m.View(), "classic")

	press(t, m, runes("t"))
	assert.Equal(t, types.TemplateModern, ed.Template())
}

func TestModel_Preview(t *testing.T) {
	m, ed, _ := newTestModel(t)
	_, err := ed.SetField(context.Background(), types.SectionPersonalInfo, types.FieldName, "Jane")
	require.NoError(t, err)

	m = press(t, m, runes("p"))
	require.True(t, m.previewing)
	view := m.View()
	assert.Contains(t, view, "Jane")
	assert.Contains(t, view, "Work Experience")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.previewing)
}

func TestModel_Quit(t *testing.T) {
	m, _, _ := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_WindowSize(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestScoreBar(t *testing.T) {
	assert.Contains(t, scoreBar(0, 10), "░░░░░░░░░░] 0/100")
	assert.Contains(t, scoreBar(50, 10), "█████░░░░░] 50/100")
	assert.Contains(t, scoreBar(100, 10), "██████████] 100/100")
}
