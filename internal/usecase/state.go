package usecase

import (
	"github.com/naka-gawa/github-licenses/internal/domain"
)

// Phase is the presentation state of the view.
type Phase int

const (
	// PhaseIdle means no query has been committed yet.
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseError
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Request asks for the repositories of Account. Seq identifies the submission
// that issued it.
type Request struct {
	Account string
	Seq     uint64
}

// Result is the outcome of a Request.
type Result struct {
	Request
	Repositories []domain.Repository
	Err          error
}

// State is the whole state of the view. Methods never modify the receiver;
// they return the next State.
type State struct {
	Query        string
	Filter       domain.Filter
	Repositories []domain.Repository
	Phase        Phase
	Err          error

	seq uint64
}

// NewState returns the idle state.
func NewState() State {
	return State{Filter: domain.DefaultFilter()}
}

// Submit commits pending as the query and resets the filter. The returned
// Request must be loaded when ok is true. Resubmitting the committed query
// after it has been requested only resets the filter.
func (s State) Submit(pending string) (next State, req Request, ok bool) {
	if pending == "" {
		return s, Request{}, false
	}
	next = s
	next.Filter = domain.DefaultFilter()
	if pending == s.Query && s.Phase != PhaseIdle {
		return next, Request{}, false
	}
	next.Query = pending
	next.Phase = PhaseLoading
	next.seq++
	return next, Request{Account: pending, Seq: next.seq}, true
}

// Resolve applies res. Results of superseded requests are dropped.
func (s State) Resolve(res Result) State {
	if res.Seq != s.seq || s.Phase != PhaseLoading {
		return s
	}
	next := s
	if res.Err != nil {
		next.Repositories = nil
		next.Err = res.Err
		next.Phase = PhaseError
		return next
	}
	next.Repositories = res.Repositories
	next.Err = nil
	next.Phase = PhaseReady
	return next
}

// SelectLanguage selects lang if it is AllLanguages or present in the list.
func (s State) SelectLanguage(lang string) State {
	if !domain.HasLanguage(s.Repositories, lang) {
		return s
	}
	s.Filter.Language = lang
	return s
}

// CycleLanguage moves the language selection by step, wrapping around.
func (s State) CycleLanguage(step int) State {
	langs := s.Languages()
	cur := 0
	for i, l := range langs {
		if l == s.Filter.Language {
			cur = i
			break
		}
	}
	n := len(langs)
	return s.SelectLanguage(langs[((cur+step)%n+n)%n])
}

// ToggleSortByRecent flips the recency sort.
func (s State) ToggleSortByRecent() State {
	s.Filter.SortByRecent = !s.Filter.SortByRecent
	return s
}

// Loading reports whether a fetch is in flight.
func (s State) Loading() bool { return s.Phase == PhaseLoading }

// Languages returns the selectable languages.
func (s State) Languages() []string { return domain.Languages(s.Repositories) }

// Visible returns the filtered and sorted list.
func (s State) Visible() []domain.Repository {
	return domain.FilterRepositories(s.Repositories, s.Filter)
}

// Breakdown returns the license statistics of the unfiltered list.
func (s State) Breakdown() domain.LicenseBreakdown {
	return domain.BreakdownLicenses(s.Repositories)
}
