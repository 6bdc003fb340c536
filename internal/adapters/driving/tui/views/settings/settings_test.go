package settings

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietpath/ripple/internal/adapters/driven/storage/memory"
	"github.com/quietpath/ripple/internal/adapters/driving/tui/messages"
	"github.com/quietpath/ripple/internal/core/ports/driven"
	"github.com/quietpath/ripple/internal/core/services"
)

type fakeGenerator struct {
	credential string
}

func (f *fakeGenerator) Generate(context.Context, string) (string, error) { return "", nil }
func (f *fakeGenerator) Available() bool                                  { return f.credential != "" }
func (f *fakeGenerator) SetCredential(c string)                           { f.credential = c }

func newTestView() (*View, driven.SlotStore) {
	store := memory.New()
	journal := services.NewJournalService(store)
	insightSvc := services.NewInsightService(&fakeGenerator{}, store)

	v := NewView(nil, insightSvc, journal)
	v.SetDimensions(80, 24)
	v.Reset()
	return v, store
}

func typeText(v *View, text string) *View {
	for _, r := range text {
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return v
}

func TestSettings_SaveCredential(t *testing.T) {
	v, store := newTestView()

	v = typeText(v, "my-secret-key")
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Contains(t, v.View(), "Credential saved")
	assert.Contains(t, v.View(), "configured")

	stored, ok := store.Get(driven.SlotCredential)
	require.True(t, ok)
	assert.Equal(t, "my-secret-key", stored)
}

func TestSettings_BlankCredentialRejected(t *testing.T) {
	v, store := newTestView()

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Contains(t, v.View(), "cannot be blank")
	_, ok := store.Get(driven.SlotCredential)
	assert.False(t, ok)
}

func TestSettings_EscReturnsToMenu(t *testing.T) {
	v, _ := newTestView()

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, msg.View)
}

func TestSettings_ViewShowsStatus(t *testing.T) {
	v, _ := newTestView()

	out := v.View()
	assert.Contains(t, out, "Settings")
	assert.Contains(t, out, "not configured")
	assert.Contains(t, out, "Journey completion: 0%")
}
