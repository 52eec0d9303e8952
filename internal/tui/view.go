package tui

import (
	"fmt"
	"strings"

	"github.com/naka-gawa/github-licenses/internal/domain"
	"github.com/naka-gawa/github-licenses/internal/gateway"
	"github.com/naka-gawa/github-licenses/internal/usecase"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("GitHub licenses"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	s := m.state
	switch s.Phase {
	case usecase.PhaseIdle:
		b.WriteString(emptyStyle.Render("Type an account name and press enter."))
		b.WriteString("\n")
	case usecase.PhaseLoading:
		b.WriteString(m.spinner.View() + " Loading repositories...")
		b.WriteString("\n")
	case usecase.PhaseError:
		b.WriteString(errorStyle.Render("Error: " + gateway.UserMessage(s.Err)))
		b.WriteString("\n")
	case usecase.PhaseReady:
		b.WriteString(renderReady(s, m.focus == focusResults))
	}

	b.WriteString(footerStyle.Render(m.help()))
	return b.String()
}

func (m Model) help() string {
	if m.focus == focusResults {
		return "←/→ language │ s sort by recent │ / search │ q quit"
	}
	if m.state.Phase == usecase.PhaseReady {
		return "enter search │ tab results │ ctrl+c quit"
	}
	return "enter search │ ctrl+c quit"
}

func renderReady(s usecase.State, focused bool) string {
	var b strings.Builder
	visible := s.Visible()

	b.WriteString(sectionStyle.Render("Repositories for " + s.Query))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Repository Statistics"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total Repositories: %d\n", len(visible))
	b.WriteString("License Breakdown:\n")
	b.WriteString(renderBreakdown(s.Breakdown()))

	b.WriteString(sectionStyle.Render("Language"))
	b.WriteString("\n")
	b.WriteString(renderLanguages(s.Languages(), s.Filter, focused))
	b.WriteString("\n")

	if len(visible) == 0 {
		b.WriteString(emptyStyle.Render("No repositories found matching the selected filters."))
		b.WriteString("\n")
		return b.String()
	}
	for _, r := range visible {
		b.WriteString(repoNameStyle.Render(r.Name) + ": " + domain.LicenseLabel(r))
		b.WriteString("\n")
		b.WriteString(detailStyle.Render("Language: " + domain.LanguageLabel(r)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderBreakdown(bd domain.LicenseBreakdown) string {
	var b strings.Builder
	for _, g := range bd.Groups {
		fmt.Fprintf(&b, "  %s: %d repositories (%.1f%%)\n", g.Name, g.Count, g.Percent)
	}
	return b.String()
}

func renderLanguages(langs []string, filter domain.Filter, focused bool) string {
	opts := make([]string, 0, len(langs))
	for _, l := range langs {
		label := l
		if l == domain.AllLanguages {
			label = "All Languages"
		}
		if l == filter.Language {
			if focused {
				opts = append(opts, selectedStyle.Render("["+label+"]"))
			} else {
				opts = append(opts, "["+label+"]")
			}
			continue
		}
		opts = append(opts, optionStyle.Render(label))
	}
	line := strings.Join(opts, " ")
	if filter.SortByRecent {
		line += "  (sorted by recent)"
	}
	return line
}
