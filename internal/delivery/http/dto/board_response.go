package dto

import (
	"lawjobs/internal/domain/board"
	"lawjobs/internal/usecase"
)

type JobCardResponse struct {
	ID                  string   `json:"id"`
	JobTitle            string   `json:"job_title"`
	FirmName            string   `json:"firm_name"`
	JobDescription      string   `json:"job_description"`
	Location            string   `json:"location"`
	LocationBadges      []string `json:"location_badges"`
	State               string   `json:"state"`
	AreaOfLaw           string   `json:"area_of_law"`
	ApplicationDeadline string   `json:"application_deadline"`
	URL                 string   `json:"url,omitempty"`
	Source              string   `json:"source"`
	IsFavorite          bool     `json:"is_favorite"`
}

type PaginationResponse struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int   `json:"total_items"`
	PageSize    int   `json:"page_size"`
	HasPrevious bool  `json:"has_previous"`
	HasNext     bool  `json:"has_next"`
	Window      []int `json:"window"`
}

type FacetsResponse struct {
	States     []string `json:"states"`
	AreasOfLaw []string `json:"areas_of_law"`
}

type FiltersResponse struct {
	SearchQuery     string `json:"search_query"`
	StateFilter     string `json:"state_filter"`
	AreaOfLawFilter string `json:"area_of_law_filter"`
	CurrentPage     int    `json:"current_page"`
}

type BoardResponse struct {
	View             string             `json:"view"`
	Jobs             []JobCardResponse  `json:"jobs"`
	Facets           FacetsResponse     `json:"facets"`
	Pagination       PaginationResponse `json:"pagination"`
	Filters          FiltersResponse    `json:"filters"`
	ResultsCount     int                `json:"results_count"`
	AutoStateApplied bool               `json:"auto_state_applied"`
}

func NewJobCard(j board.Job, favorite bool) JobCardResponse {
	badges := board.ParseLocations(j.Location)
	if badges == nil {
		badges = []string{}
	}
	return JobCardResponse{
		ID:                  j.ID,
		JobTitle:            j.JobTitle,
		FirmName:            j.FirmName,
		JobDescription:      j.JobDescription,
		Location:            j.Location,
		LocationBadges:      badges,
		State:               board.ExtractState(j.Location),
		AreaOfLaw:           j.AreaOfLaw,
		ApplicationDeadline: j.ApplicationDeadline,
		URL:                 j.URL,
		Source:              j.Source,
		IsFavorite:          favorite,
	}
}

func NewFilters(f board.FilterState) FiltersResponse {
	return FiltersResponse{
		SearchQuery:     f.SearchQuery,
		StateFilter:     f.StateFilter,
		AreaOfLawFilter: f.AreaOfLawFilter,
		CurrentPage:     f.CurrentPage,
	}
}

func NewBoardResponse(res usecase.BoardResult) BoardResponse {
	cards := make([]JobCardResponse, 0, len(res.Page.Items))
	for _, j := range res.Page.Items {
		cards = append(cards, NewJobCard(j, res.FavoriteIDs[j.ID]))
	}

	window := res.Page.Window
	if window == nil {
		window = []int{}
	}

	return BoardResponse{
		View: string(res.View),
		Jobs: cards,
		Facets: FacetsResponse{
			States:     nonNil(res.Facets.States),
			AreasOfLaw: nonNil(res.Facets.AreasOfLaw),
		},
		Pagination: PaginationResponse{
			CurrentPage: res.Page.CurrentPage,
			TotalPages:  res.Page.TotalPages,
			TotalItems:  res.Page.TotalItems,
			PageSize:    board.PageSize,
			HasPrevious: res.Page.HasPrevious,
			HasNext:     res.Page.HasNext,
			Window:      window,
		},
		Filters:          NewFilters(res.Filters),
		ResultsCount:     res.FilteredCount,
		AutoStateApplied: res.AutoStateApplied,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
