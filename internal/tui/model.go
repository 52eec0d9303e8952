// Package tui renders the interactive license browser.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/naka-gawa/github-licenses/internal/usecase"
)

// Loader performs a fetch request. *usecase.Browser implements it.
type Loader interface {
	Load(ctx context.Context, req usecase.Request) usecase.Result
}

type focusArea int

const (
	focusInput focusArea = iota
	focusResults
)

type fetchedMsg struct {
	result usecase.Result
}

// Model is the bubbletea model of the browser view.
type Model struct {
	ctx     context.Context
	loader  Loader
	state   usecase.State
	input   textinput.Model
	spinner spinner.Model
	focus   focusArea
}

// NewModel returns an idle model. ctx bounds every fetch it starts.
func NewModel(ctx context.Context, loader Loader) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter GitHub username"
	ti.Prompt = "> "
	ti.CharLimit = 100
	ti.Focus()

	return Model{
		ctx:     ctx,
		loader:  loader,
		state:   usecase.NewState(),
		input:   ti,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		focus:   focusInput,
	}
}

// State returns the current view state.
func (m Model) State() usecase.State { return m.state }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateResults(msg)

	case fetchedMsg:
		m.state = m.state.Resolve(msg.result)
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		next, req, ok := m.state.Submit(m.input.Value())
		m.state = next
		if !ok {
			return m, nil
		}
		return m, tea.Batch(m.fetch(req), m.spinner.Tick)
	case "tab":
		if m.state.Phase == usecase.PhaseReady {
			m.focus = focusResults
			m.input.Blur()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "tab", "/":
		m.focus = focusInput
		cmd := m.input.Focus()
		return m, cmd
	case "left", "h":
		m.state = m.state.CycleLanguage(-1)
	case "right", "l":
		m.state = m.state.CycleLanguage(1)
	case "s":
		m.state = m.state.ToggleSortByRecent()
	}
	return m, nil
}

func (m Model) fetch(req usecase.Request) tea.Cmd {
	ctx, loader := m.ctx, m.loader
	return func() tea.Msg {
		return fetchedMsg{result: loader.Load(ctx, req)}
	}
}
