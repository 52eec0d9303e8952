package domain

import (
	"slices"

	"github.com/montanaflynn/stats"
)

// Languages returns AllLanguages followed by every distinct non-empty
// language in first-seen order.
func Languages(repos []Repository) []string {
	langs := []string{AllLanguages}
	seen := make(map[string]struct{}, len(repos))
	for _, r := range repos {
		if r.Language == "" {
			continue
		}
		if _, ok := seen[r.Language]; ok {
			continue
		}
		seen[r.Language] = struct{}{}
		langs = append(langs, r.Language)
	}
	return langs
}

// HasLanguage reports whether lang may be selected for repos.
func HasLanguage(repos []Repository, lang string) bool {
	if lang == AllLanguages {
		return true
	}
	if lang == "" {
		return false
	}
	return slices.ContainsFunc(repos, func(r Repository) bool { return r.Language == lang })
}

// FilterRepositories applies filter to repos. The input slice is never modified.
func FilterRepositories(repos []Repository, filter Filter) []Repository {
	kept := make([]Repository, 0, len(repos))
	for _, r := range repos {
		if filter.Language == AllLanguages || r.Language == filter.Language {
			kept = append(kept, r)
		}
	}
	if filter.SortByRecent {
		slices.SortStableFunc(kept, func(a, b Repository) int {
			return b.UpdatedAt.Compare(a.UpdatedAt)
		})
	}
	return kept
}

// BreakdownLicenses groups the unfiltered list by license name in first-seen order.
func BreakdownLicenses(repos []Repository) LicenseBreakdown {
	breakdown := LicenseBreakdown{Total: len(repos), Groups: []LicenseGroup{}}
	if breakdown.Total == 0 {
		return breakdown
	}

	index := make(map[string]int)
	for _, r := range repos {
		name := NoLicense
		if r.License != nil {
			name = r.License.Name
		}
		i, ok := index[name]
		if !ok {
			i = len(breakdown.Groups)
			index[name] = i
			breakdown.Groups = append(breakdown.Groups, LicenseGroup{Name: name})
		}
		breakdown.Groups[i].Count++
	}

	for i := range breakdown.Groups {
		g := &breakdown.Groups[i]
		pct := float64(g.Count) / float64(breakdown.Total) * 100
		// Round only fails on NaN/Inf, which a non-zero total rules out.
		if rounded, err := stats.Round(pct, 1); err == nil {
			pct = rounded
		}
		g.Percent = pct
	}
	return breakdown
}
