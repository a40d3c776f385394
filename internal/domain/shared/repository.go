package shared

import "strings"

// Filter represents query filter options.
// Search is matched case-insensitively as a substring by every repository
// that supports it; an empty Search means "everything".
type Filter struct {
	Search     string
	ActiveOnly bool
}

// NewSearchFilter builds a filter for a free-text search term
func NewSearchFilter(search string) Filter {
	return Filter{Search: strings.TrimSpace(search)}
}

// HasSearch reports whether the filter carries a non-blank search term
func (f Filter) HasSearch() bool {
	return strings.TrimSpace(f.Search) != ""
}

// SearchPattern returns the lower-cased LIKE pattern for the search term
func (f Filter) SearchPattern() string {
	return "%" + strings.ToLower(strings.TrimSpace(f.Search)) + "%"
}
