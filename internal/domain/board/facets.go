package board

import (
	"sort"
	"strings"
)

type Facets struct {
	States     []string
	AreasOfLaw []string
}

type Result struct {
	Page          Page
	Facets        Facets
	Filters       FilterState
	FilteredCount int
}

func StatesList(jobs []Job) []string {
	seen := make(map[string]struct{}, len(jobs))
	out := make([]string, 0)
	for _, j := range jobs {
		s := ExtractState(j.Location)
		if s == NoState {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// SplitAreas breaks a comma or slash joined area-of-law string into trimmed tags.
func SplitAreas(areaOfLaw string) []string {
	if areaOfLaw == "" {
		return nil
	}
	fields := strings.FieldsFunc(areaOfLaw, func(r rune) bool {
		return r == ',' || r == '/'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		out = append(out, f)
	}
	return out
}

// AreasOfLaw returns AllAreas followed by the sorted distinct area tags.
func AreasOfLaw(jobs []Job) []string {
	seen := map[string]struct{}{}
	areas := make([]string, 0)
	for _, j := range jobs {
		for _, a := range SplitAreas(j.AreaOfLaw) {
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			areas = append(areas, a)
		}
	}
	sort.Strings(areas)
	return append([]string{AllAreas}, areas...)
}

func BuildFacets(jobs []Job) Facets {
	return Facets{States: StatesList(jobs), AreasOfLaw: AreasOfLaw(jobs)}
}

// Board filters the full list of the current view, paginates the result and
// derives the facets from the unfiltered list.
func Board(jobs []Job, f FilterState) Result {
	if f.CurrentPage < 1 {
		f.CurrentPage = 1
	}
	filtered := Filter(jobs, f)
	return Result{
		Page:          Paginate(filtered, f.CurrentPage),
		Facets:        BuildFacets(jobs),
		Filters:       f,
		FilteredCount: len(filtered),
	}
}
