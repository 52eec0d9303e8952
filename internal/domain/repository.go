// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

const (
	// AllLanguages is the language filter value that disables filtering.
	AllLanguages = "all"
	// NoLicense is the breakdown group for repositories without a license.
	NoLicense = "No License"
)

// Repository holds the metadata of a single repository as returned by the API.
// It is the core domain entity of this application.
type Repository struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Language  string    `json:"language,omitempty"`
	License   *License  `json:"license,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// License is the license attached to a repository.
type License struct {
	Key  string `json:"key,omitempty"`
	Name string `json:"name"`
}

// Filter holds the language selection and the recency toggle.
type Filter struct {
	Language     string `json:"language"`
	SortByRecent bool   `json:"sort_by_recent"`
}

// DefaultFilter returns the filter applied after every new search.
func DefaultFilter() Filter {
	return Filter{Language: AllLanguages}
}

// LicenseGroup is one entry of a LicenseBreakdown.
type LicenseGroup struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// LicenseBreakdown counts repositories per license.
type LicenseBreakdown struct {
	Total  int            `json:"total"`
	Groups []LicenseGroup `json:"groups"`
}

// Report is the derived view of one account, as printed by the licenses command.
type Report struct {
	Account          string           `json:"account"`
	Total            int              `json:"total"`
	Languages        []string         `json:"languages"`
	Filter           Filter           `json:"filter"`
	Repositories     []Repository     `json:"repositories"`
	LicenseBreakdown LicenseBreakdown `json:"license_breakdown"`
}

// NewReport derives a Report from the raw repository list.
func NewReport(account string, repos []Repository, filter Filter) *Report {
	visible := FilterRepositories(repos, filter)
	return &Report{
		Account:          account,
		Total:            len(visible),
		Languages:        Languages(repos),
		Filter:           filter,
		Repositories:     visible,
		LicenseBreakdown: BreakdownLicenses(repos),
	}
}

// LicenseLabel returns the license name shown next to a repository.
func LicenseLabel(r Repository) string {
	if r.License == nil {
		return "No license specified"
	}
	return r.License.Name
}

// LanguageLabel returns the language shown next to a repository.
func LanguageLabel(r Repository) string {
	if r.Language == "" {
		return "Not specified"
	}
	return r.Language
}
