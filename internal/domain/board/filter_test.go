package board

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleJobs() []Job {
	return []Job{
		{ID: "1", JobTitle: "1L Summer Associate", FirmName: "King & Spalding", Location: "Atlanta, GA", AreaOfLaw: "Litigation, Corporate"},
		{ID: "2", JobTitle: "Diversity Fellow", FirmName: "Alston & Bird", Location: "Atlanta", AreaOfLaw: "Intellectual Property/Litigation"},
		{ID: "3", JobTitle: "Summer Law Clerk", FirmName: "Cravath", Location: "New York, NY", AreaOfLaw: "Corporate"},
		{ID: "4", JobTitle: "Public Interest Intern", FirmName: "Legal Aid", Location: "Washington, D.C.", AreaOfLaw: "Public Interest"},
		{ID: "5", JobTitle: "Remote Research Assistant", FirmName: "Lex Co", Location: "Remote", JobDescription: "Assist with litigation research"},
	}
}

func ids(jobs []Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestMatchesSearch(t *testing.T) {
	j := Job{JobTitle: "Summer Associate", FirmName: "Cravath", JobDescription: "Corporate practice"}

	assert.True(t, MatchesSearch(j, ""))
	assert.True(t, MatchesSearch(j, "summer"))
	assert.True(t, MatchesSearch(j, "CRAVATH"))
	assert.True(t, MatchesSearch(j, "corporate"))
	assert.False(t, MatchesSearch(j, "litigation"))
	assert.False(t, MatchesSearch(Job{}, "anything"))
}

func TestMatchesArea(t *testing.T) {
	j := Job{AreaOfLaw: "Intellectual Property/Litigation"}

	assert.True(t, MatchesArea(j, ""))
	assert.True(t, MatchesArea(j, AllAreas))
	assert.True(t, MatchesArea(j, "Litigation"))
	assert.False(t, MatchesArea(j, "litigation"), "area match is case sensitive")
	assert.False(t, MatchesArea(Job{}, "Litigation"))
}

func TestFilter_Conjunctive(t *testing.T) {
	jobs := sampleJobs()

	tests := []struct {
		name string
		f    FilterState
		want []string
	}{
		{name: "no filters", f: DefaultFilterState(), want: []string{"1", "2", "3", "4", "5"}},
		{name: "state only", f: FilterState{StateFilter: "Georgia"}, want: []string{"1", "2"}},
		{name: "area only", f: FilterState{AreaOfLawFilter: "Litigation"}, want: []string{"1", "2"}},
		{name: "search only", f: FilterState{SearchQuery: "litigation"}, want: []string{"5"}},
		{name: "state and area", f: FilterState{StateFilter: "Georgia", AreaOfLawFilter: "Corporate"}, want: []string{"1"}},
		{name: "all three", f: FilterState{SearchQuery: "fellow", StateFilter: "Georgia", AreaOfLawFilter: "Litigation"}, want: []string{"2"}},
		{name: "dc", f: FilterState{StateFilter: "District of Columbia"}, want: []string{"4"}},
		{name: "nothing matches", f: FilterState{StateFilter: "Texas"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(jobs, tt.f)))
		})
	}
}

func TestFilter_UnknownStateOnlyVisibleWithoutStateFilter(t *testing.T) {
	jobs := []Job{{ID: "remote", Location: "Remote"}}

	assert.Len(t, Filter(jobs, FilterState{}), 1)
	assert.Empty(t, Filter(jobs, FilterState{StateFilter: "Georgia"}))
	assert.Empty(t, Filter(jobs, FilterState{StateFilter: "New York"}))
}

func TestFilter_Idempotent(t *testing.T) {
	jobs := sampleJobs()
	filters := []FilterState{
		{},
		{StateFilter: "Georgia"},
		{SearchQuery: "summer", AreaOfLawFilter: "Corporate"},
		{SearchQuery: "intern", StateFilter: "District of Columbia", AreaOfLawFilter: "Public Interest"},
	}
	for _, f := range filters {
		once := Filter(jobs, f)
		twice := Filter(once, f)
		assert.Equal(t, once, twice, "filters=%+v", f)
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	jobs := sampleJobs()
	before := append([]Job(nil), jobs...)
	_ = Filter(jobs, FilterState{StateFilter: "Georgia"})
	assert.Equal(t, before, jobs)
}

func TestFilterState_ChangesResetPage(t *testing.T) {
	f := FilterState{CurrentPage: 4}

	assert.Equal(t, 1, f.WithSearch("x").CurrentPage)
	assert.Equal(t, 1, f.WithState("Georgia").CurrentPage)
	assert.Equal(t, 1, f.WithArea("Tax").CurrentPage)
	assert.Equal(t, 4, f.CurrentPage, "value receiver leaves original untouched")

	next, scroll := f.WithPage(5)
	assert.Equal(t, 5, next.CurrentPage)
	assert.True(t, scroll)

	same, scroll := f.WithPage(4)
	assert.Equal(t, 4, same.CurrentPage)
	assert.True(t, scroll, "navigating to the current page still scrolls")
}

func TestFilterState_Reset(t *testing.T) {
	states := []FilterState{
		{},
		{SearchQuery: "tax", StateFilter: "Georgia", AreaOfLawFilter: "Tax", CurrentPage: 7},
		{CurrentPage: -3},
	}
	for i, s := range states {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			s.Reset()
			assert.Equal(t, FilterState{CurrentPage: 1}, s)
		})
	}
}

func TestParseViewMode(t *testing.T) {
	v, err := ParseViewMode("")
	require.NoError(t, err)
	assert.Equal(t, ViewAll, v)

	v, err = ParseViewMode("Favorites")
	require.NoError(t, err)
	assert.Equal(t, ViewFavorites, v)

	_, err = ParseViewMode("favoritejobs")
	assert.ErrorIs(t, err, ErrInvalidViewMode)
}
