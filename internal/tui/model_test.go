package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/polylead"
)

func typeText(m Model, s string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model)
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

func TestModel_StartsIdle(t *testing.T) {
	m := New(nil)
	assert.Equal(t, polylead.StateIdle, m.Session().State())
	assert.Contains(t, m.View(), "waiting for input")
}

func TestModel_ValidatesWhileTyping(t *testing.T) {
	m := typeText(New(nil), "x^")
	assert.Equal(t, polylead.StateInvalid, m.Session().State())
	assert.Contains(t, m.View(), "DANGLING_EXPONENT")

	m = typeText(m, "2")
	assert.Equal(t, polylead.StateValid, m.Session().State())
	assert.Equal(t, "x^2", m.Session().Expression())
}

func TestModel_EnterAnalyzes(t *testing.T) {
	m := typeText(New(nil), "x^2 + 3x^3y")
	m, cmd := press(m, tea.KeyEnter)
	assert.Nil(t, cmd)

	require.Equal(t, polylead.StateAnalyzed, m.Session().State())
	assert.Equal(t, 4, m.Session().Result().Degree())
	assert.Equal(t, []string{"x^2 + 3x^3y"}, m.History())
	assert.Contains(t, m.View(), "Leading term")
}

func TestModel_EnterIgnoredWhenInvalid(t *testing.T) {
	m := typeText(New(nil), "x**2")
	m, _ = press(m, tea.KeyEnter)
	assert.Equal(t, polylead.StateInvalid, m.Session().State())
	assert.Empty(t, m.History())
}

func TestModel_EditAfterAnalysisRevalidates(t *testing.T) {
	m := typeText(New(nil), "x")
	m, _ = press(m, tea.KeyEnter)
	require.Equal(t, polylead.StateAnalyzed, m.Session().State())

	m = typeText(m, "y")
	assert.Equal(t, polylead.StateValid, m.Session().State())
	assert.Nil(t, m.Session().Result())
}

func TestModel_CtrlLClears(t *testing.T) {
	m := typeText(New(nil), "x + y")
	m, _ = press(m, tea.KeyCtrlL)
	assert.Equal(t, polylead.StateIdle, m.Session().State())
	assert.Equal(t, "", m.Session().Expression())
}

func TestModel_Quit(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC, tea.KeyCtrlD} {
		m, cmd := press(New(nil), k)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.True(t, m.Quitting())
		assert.Equal(t, "", m.View())
	}
}

func TestModel_CharLimitFollowsAnalyzer(t *testing.T) {
	m := New(polylead.New(polylead.WithMaxLength(5)))
	m = typeText(m, "x + y + z")
	assert.True(t, strings.HasPrefix("x + y + z", m.Session().Expression()))
	assert.LessOrEqual(t, len(m.Session().Expression()), 5)
}
