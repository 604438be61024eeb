package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluemancz/roonpipe-launcher/internal/config"
	"github.com/bluemancz/roonpipe-launcher/internal/icons"
	"github.com/bluemancz/roonpipe-launcher/internal/launcher"
	"github.com/bluemancz/roonpipe-launcher/internal/model"
)

type stubDaemon struct {
	tracks       []model.Track
	playRequests []model.PlayRequest
}

func (s *stubDaemon) Available() bool { return true }

func (s *stubDaemon) Search(context.Context, string) ([]model.Track, error) {
	return s.tracks, nil
}

func (s *stubDaemon) Play(_ context.Context, req model.PlayRequest) error {
	s.playRequests = append(s.playRequests, req)
	return nil
}

func newTestModel(daemon *stubDaemon) Model {
	settings := config.DefaultSettings()
	resolver := icons.NewResolver("", "/tmp/cache", 128, false)
	return NewModel(launcher.New(daemon, resolver, settings, nil))
}

func typeRune(t *testing.T, m Model, r rune) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return next.(Model), cmd
}

func TestModel_TypingSchedulesDebouncedSearch(t *testing.T) {
	m := newTestModel(&stubDaemon{})

	m, cmd := typeRune(t, m, 'm')
	require.NotNil(t, cmd, "a keystroke must schedule a debounce tick")
	assert.Equal(t, 1, m.gen)

	// A second keystroke invalidates the first tick's generation
	m, _ = typeRune(t, m, 'i')
	assert.Equal(t, 2, m.gen)

	next, cmd := m.Update(debounceMsg{gen: 1})
	m = next.(Model)
	assert.Nil(t, cmd, "stale debounce tick must be dropped")
	assert.False(t, m.searching)

	next, cmd = m.Update(debounceMsg{gen: 2})
	m = next.(Model)
	require.NotNil(t, cmd, "current debounce tick must start a search")
	assert.True(t, m.searching)
}

func TestModel_ResultsPopulateList(t *testing.T) {
	daemon := &stubDaemon{
		tracks: []model.Track{
			{ItemKey: "t1", Title: "So What", Subtitle: "Miles Davis", ActionTitles: []string{"Play Now"}},
			{ItemKey: "t2", Title: "All Blues", Subtitle: "Miles Davis", ActionTitles: []string{"Play Now"}},
		},
	}
	m := newTestModel(daemon)
	m, _ = typeRune(t, m, 'm')

	items := m.adapter.Query(context.Background(), "m")
	next, _ := m.Update(resultsMsg{gen: m.gen, items: items})
	m = next.(Model)

	assert.False(t, m.searching)
	require.Len(t, m.items, 2)
	assert.Equal(t, 0, m.selected)

	// Stale results never clobber the list
	next, _ = m.Update(resultsMsg{gen: m.gen - 1, items: nil})
	m = next.(Model)
	assert.Len(t, m.items, 2)
}

func TestModel_EnterPlaysSelection(t *testing.T) {
	daemon := &stubDaemon{
		tracks: []model.Track{
			{ItemKey: "t1", Title: "So What", ActionTitles: []string{"Queue", "Play Now"}},
		},
	}
	m := newTestModel(daemon)
	m, _ = typeRune(t, m, 's')

	items := m.adapter.Query(context.Background(), "s")
	next, _ := m.Update(resultsMsg{gen: m.gen, items: items})
	m = next.(Model)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	played, ok := msg.(playedMsg)
	require.True(t, ok, "enter must dispatch the play command")
	require.NoError(t, played.err)

	require.Len(t, daemon.playRequests, 1)
	assert.Equal(t, "t1", daemon.playRequests[0].ItemKey)
	// "Play Now" preferred over list order
	assert.Equal(t, "Play Now", daemon.playRequests[0].ActionTitle)
}

func TestModel_EnterOnInfoItemDoesNothing(t *testing.T) {
	daemon := &stubDaemon{} // no results -> informational item
	m := newTestModel(daemon)
	m, _ = typeRune(t, m, 'z')

	items := m.adapter.Query(context.Background(), "z")
	next, _ := m.Update(resultsMsg{gen: m.gen, items: items})
	m = next.(Model)
	require.Len(t, m.items, 1)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, daemon.playRequests)
}

func TestModel_ClearingInputClearsResults(t *testing.T) {
	daemon := &stubDaemon{
		tracks: []model.Track{{ItemKey: "t1", Title: "So What", ActionTitles: []string{"Play Now"}}},
	}
	m := newTestModel(daemon)
	m, _ = typeRune(t, m, 'a')

	items := m.adapter.Query(context.Background(), "a")
	next, _ := m.Update(resultsMsg{gen: m.gen, items: items})
	m = next.(Model)
	require.NotEmpty(t, m.items)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m = next.(Model)
	assert.Empty(t, m.items)
	assert.False(t, m.searching)
}

func TestModel_SelectionStaysInBounds(t *testing.T) {
	m := newTestModel(&stubDaemon{})
	m.items = []model.Item{
		model.NewInfoItem("a", "A", "", ""),
		model.NewInfoItem("b", "B", "", ""),
	}

	m.moveSelection(-1)
	assert.Equal(t, 0, m.selected)

	m.moveSelection(1)
	m.moveSelection(1)
	m.moveSelection(1)
	assert.Equal(t, 1, m.selected)
}
