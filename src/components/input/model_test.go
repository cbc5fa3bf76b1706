package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func newFocused() *Model {
	m := New()
	m.SetWidth(60)
	m.Focus()
	return m
}

func TestSubmitEmitsIntentAndClears(t *testing.T) {
	m := newFocused()
	typeText(m, "hello")
	require.Equal(t, "hello", m.Value())

	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, SubmitIntent{Text: "hello"}, cmd())
	assert.Empty(t, m.Value())
}

func TestSubmitKeepsSurroundingWhitespace(t *testing.T) {
	m := newFocused()
	m.SetValue("  hi  ")

	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, SubmitIntent{Text: "  hi  "}, cmd())
}

func TestBlankSubmitIgnored(t *testing.T) {
	m := newFocused()
	m.SetValue("   ")

	assert.Nil(t, m.Update(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, "   ", m.Value())
}

func TestDisabledIgnoresKeys(t *testing.T) {
	m := newFocused()
	m.SetValue("draft")
	m.SetDisabled(true)

	typeText(m, "x")
	assert.Nil(t, m.Update(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, "draft", m.Value())
	assert.Contains(t, m.View(), "Sending...")

	m.SetDisabled(false)
	typeText(m, "x")
	assert.Equal(t, "draftx", m.Value())
}

func TestBlurredIgnoresKeys(t *testing.T) {
	m := New()
	typeText(m, "abc")
	assert.Empty(t, m.Value())
	assert.False(t, m.Focused())
}

func TestViewShowsPlaceholderAndButton(t *testing.T) {
	m := newFocused()
	out := m.View()
	assert.Contains(t, out, "Send")
	assert.Equal(t, 3, m.Height())
}
