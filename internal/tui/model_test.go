package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-licenses/internal/domain"
	"github.com/naka-gawa/github-licenses/internal/gateway"
	"github.com/naka-gawa/github-licenses/internal/usecase"
)

// fakeLoader records requests and answers from a fixed table.
type fakeLoader struct {
	mu       sync.Mutex
	requests []usecase.Request
	repos    map[string][]domain.Repository
}

func (f *fakeLoader) Load(_ context.Context, req usecase.Request) usecase.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	repos, ok := f.repos[req.Account]
	if !ok {
		return usecase.Result{Request: req, Err: &gateway.FetchError{Account: req.Account, Err: errors.New("404")}}
	}
	return usecase.Result{Request: req, Repositories: repos}
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{repos: map[string][]domain.Repository{
		"octocat": {
			{ID: 1, Name: "a", Language: "Go", UpdatedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 2, Name: "b", Language: "Go", License: &domain.License{Name: "MIT"}, UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
		"empty": {},
	}}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// fetchFrom runs cmd and returns the fetch result it carries, if any.
func fetchFrom(t *testing.T, cmd tea.Cmd) (fetchedMsg, bool) {
	t.Helper()
	if cmd == nil {
		return fetchedMsg{}, false
	}
	switch msg := cmd().(type) {
	case fetchedMsg:
		return msg, true
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if fm, ok := c().(fetchedMsg); ok {
				return fm, true
			}
		}
	}
	return fetchedMsg{}, false
}

func submit(t *testing.T, m Model, account string) (Model, fetchedMsg) {
	t.Helper()
	m.input.SetValue(account)
	next, cmd := m.Update(key("enter"))
	m = next.(Model)
	require.Equal(t, usecase.PhaseLoading, m.State().Phase)
	assert.Contains(t, m.View(), "Loading repositories...")
	fm, ok := fetchFrom(t, cmd)
	require.True(t, ok, "submission must start a fetch")
	return m, fm
}

func TestModel_SubmitAndReady(t *testing.T) {
	loader := newFakeLoader()
	m := NewModel(context.Background(), loader)
	assert.Equal(t, usecase.PhaseIdle, m.State().Phase)

	m, fm := submit(t, m, "octocat")
	next, _ := m.Update(fm)
	m = next.(Model)

	require.Len(t, loader.requests, 1)
	assert.Equal(t, "octocat", loader.requests[0].Account)
	assert.Equal(t, usecase.PhaseReady, m.State().Phase)

	view := m.View()
	assert.Contains(t, view, "Repositories for octocat")
	assert.Contains(t, view, "Total Repositories: 2")
	assert.Contains(t, view, "No License: 1 repositories (50.0%)")
	assert.Contains(t, view, "MIT: 1 repositories (50.0%)")
	assert.Contains(t, view, "No license specified")
}

func TestModel_FiltersInResults(t *testing.T) {
	m := NewModel(context.Background(), newFakeLoader())
	m, fm := submit(t, m, "octocat")
	next, _ := m.Update(fm)
	m = next.(Model)

	next, _ = m.Update(key("tab"))
	m = next.(Model)
	require.Equal(t, focusResults, m.focus)

	next, _ = m.Update(key("right"))
	m = next.(Model)
	assert.Equal(t, "Go", m.State().Filter.Language)

	next, _ = m.Update(key("s"))
	m = next.(Model)
	assert.True(t, m.State().Filter.SortByRecent)
	assert.Equal(t, usecase.PhaseReady, m.State().Phase)

	visible := m.State().Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, int64(2), visible[0].ID)

	next, cmd := m.Update(key("/"))
	m = next.(Model)
	assert.Equal(t, focusInput, m.focus)
	_ = cmd

	// A new search resets the filters.
	m, fm = submit(t, m, "empty")
	assert.Equal(t, domain.DefaultFilter(), m.State().Filter)
	next, _ = m.Update(fm)
	m = next.(Model)
	assert.Contains(t, m.View(), "No repositories found matching the selected filters.")
}

func TestModel_Error(t *testing.T) {
	m := NewModel(context.Background(), newFakeLoader())
	m, fm := submit(t, m, "ghost")
	next, _ := m.Update(fm)
	m = next.(Model)

	assert.Equal(t, usecase.PhaseError, m.State().Phase)
	assert.False(t, m.State().Loading())
	assert.Empty(t, m.State().Repositories)
	assert.Contains(t, m.View(), "Error: Failed to fetch repositories")
	assert.NotContains(t, m.View(), "Repositories for")
}

func TestModel_EmptyInputDoesNothing(t *testing.T) {
	loader := newFakeLoader()
	m := NewModel(context.Background(), loader)
	next, cmd := m.Update(key("enter"))
	m = next.(Model)

	assert.Nil(t, cmd)
	assert.Equal(t, usecase.PhaseIdle, m.State().Phase)
	assert.Empty(t, loader.requests)
}

func TestModel_StaleResultDropped(t *testing.T) {
	m := NewModel(context.Background(), newFakeLoader())
	m, first := submit(t, m, "ghost")
	m, second := submit(t, m, "octocat")

	next, _ := m.Update(second)
	m = next.(Model)
	next, _ = m.Update(first)
	m = next.(Model)

	assert.Equal(t, usecase.PhaseReady, m.State().Phase)
	assert.Equal(t, "octocat", m.State().Query)
}

func TestModel_Quit(t *testing.T) {
	m := NewModel(context.Background(), newFakeLoader())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	// "q" is plain text while typing.
	next, _ := m.Update(key("q"))
	assert.Equal(t, "q", next.(Model).input.Value())
}
