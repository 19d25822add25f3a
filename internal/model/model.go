package model

import (
	"fmt"
	"time"
)

const (
	// NoLanguage is the resolved language of a repository with neither
	// byte statistics nor a reported language.
	NoLanguage = "None"

	// UnknownParent is the resolved upstream of a fork whose parent could
	// not be determined.
	UnknownParent = "unknown"
)

// Repository is one repository as reported by the listing API
type Repository struct {
	// Name is the repository name, unique within the owner's namespace
	Name string `json:"name"`

	// Owner is the login of the owning account
	Owner string `json:"owner"`

	// URL is the canonical web link to the repository
	URL string `json:"url"`

	// DetailURL is the API endpoint describing this repository
	DetailURL string `json:"detail_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Fork reports whether the repository was forked from another one
	Fork bool `json:"fork"`

	// ReportedLanguage is the single language label reported by the API
	ReportedLanguage string `json:"language,omitempty"`

	// LanguageStats holds byte counts per language, nil when unavailable
	LanguageStats LanguageStats `json:"language_stats,omitempty"`

	// Parent is the owner/name of the fork upstream when embedded in the record
	Parent string `json:"parent,omitempty"`
}

// FullName returns owner/name.
func (r Repository) FullName() string {
	if r.Owner == "" {
		return r.Name
	}

	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

// Entry is a repository with its display attributes resolved.
type Entry struct {
	Repository

	// Language is the resolved primary language, NoLanguage when absent
	Language string `json:"resolved_language"`

	// ForkParent is the resolved upstream for forks, empty otherwise
	ForkParent string `json:"resolved_parent,omitempty"`
}

// Page is one fixed-size slice of the sorted entry sequence.
type Page struct {
	// Index is the 0-based position of the page
	Index int

	// Total is the number of pages in the document
	Total int

	Entries []Entry
}

// Number returns the 1-based page number shown to readers.
func (p Page) Number() int {
	return p.Index + 1
}

// Anchor returns the in-document anchor name of the page.
func (p Page) Anchor() string {
	return PageAnchor(p.Number())
}

// PageAnchor returns the anchor name for a 1-based page number.
func PageAnchor(number int) string {
	return fmt.Sprintf("page-%d", number)
}
