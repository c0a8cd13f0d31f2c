package board

const (
	PageSize      = 9
	maxPageWindow = 5
)

type Page struct {
	Items       []Job
	CurrentPage int
	TotalPages  int
	TotalItems  int
	HasPrevious bool
	HasNext     bool
	Window      []int
}

func TotalPages(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + PageSize - 1) / PageSize
}

func Paginate(jobs []Job, currentPage int) Page {
	if currentPage < 1 {
		currentPage = 1
	}
	total := TotalPages(len(jobs))

	start := (currentPage - 1) * PageSize
	end := start + PageSize
	if start > len(jobs) {
		start = len(jobs)
	}
	if end > len(jobs) {
		end = len(jobs)
	}

	return Page{
		Items:       jobs[start:end],
		CurrentPage: currentPage,
		TotalPages:  total,
		TotalItems:  len(jobs),
		HasPrevious: currentPage > 1,
		HasNext:     currentPage < total,
		Window:      PageWindow(currentPage, total),
	}
}

// PageWindow returns up to five page numbers centred on current, clamped to [1, total].
func PageWindow(current, total int) []int {
	start := max(1, current-maxPageWindow/2)
	end := min(total, start+maxPageWindow-1)
	if end-start+1 < maxPageWindow {
		start = max(1, end-maxPageWindow+1)
	}
	if end < start {
		return []int{}
	}

	out := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		out = append(out, p)
	}
	return out
}
