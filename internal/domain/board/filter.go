package board

import (
	"errors"
	"strings"
)

// AllAreas is the sentinel facet that stands for "no area of law filter".
const AllAreas = "All Areas"

type Job struct {
	ID                  string
	JobTitle            string
	FirmName            string
	JobDescription      string
	Location            string
	AreaOfLaw           string
	ApplicationDeadline string
	Source              string
	URL                 string
}

type ViewMode string

const (
	ViewAll       ViewMode = "all"
	ViewFavorites ViewMode = "favorites"
)

var ErrInvalidViewMode = errors.New("invalid view mode")

func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ViewAll):
		return ViewAll, nil
	case string(ViewFavorites):
		return ViewFavorites, nil
	default:
		return "", ErrInvalidViewMode
	}
}

type FilterState struct {
	SearchQuery     string `json:"search_query"`
	StateFilter     string `json:"state_filter"`
	AreaOfLawFilter string `json:"area_of_law_filter"`
	CurrentPage     int    `json:"current_page"`
}

func DefaultFilterState() FilterState {
	return FilterState{CurrentPage: 1}
}

func (f *FilterState) Reset() {
	*f = DefaultFilterState()
}

func (f FilterState) WithSearch(q string) FilterState {
	f.SearchQuery = q
	f.CurrentPage = 1
	return f
}

func (f FilterState) WithState(state string) FilterState {
	f.StateFilter = state
	f.CurrentPage = 1
	return f
}

func (f FilterState) WithArea(area string) FilterState {
	f.AreaOfLawFilter = area
	f.CurrentPage = 1
	return f
}

// WithPage moves to page. Page navigation always asks the view to scroll to
// top, even when the page is unchanged.
func (f FilterState) WithPage(page int) (FilterState, bool) {
	if page < 1 {
		page = 1
	}
	f.CurrentPage = page
	return f, true
}

func MatchesSearch(job Job, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(job.JobTitle), q) ||
		strings.Contains(strings.ToLower(job.FirmName), q) ||
		strings.Contains(strings.ToLower(job.JobDescription), q)
}

func MatchesState(job Job, state string) bool {
	if state == "" {
		return true
	}
	return ExtractState(job.Location) == state
}

func MatchesArea(job Job, area string) bool {
	if area == "" || area == AllAreas {
		return true
	}
	return strings.Contains(job.AreaOfLaw, area)
}

// Filter keeps the jobs that satisfy the search, state and area predicates.
// The input slice is never modified.
func Filter(jobs []Job, f FilterState) []Job {
	out := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if !MatchesSearch(j, f.SearchQuery) {
			continue
		}
		if !MatchesState(j, f.StateFilter) {
			continue
		}
		if !MatchesArea(j, f.AreaOfLawFilter) {
			continue
		}
		out = append(out, j)
	}
	return out
}
