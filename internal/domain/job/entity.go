package job

import (
	"time"

	"lawjobs/internal/domain/board"

	"github.com/google/uuid"
)

// Job is a stored posting. Source and ExternalID identify it within its feed.
type Job struct {
	ID                  uuid.UUID
	Source              string
	ExternalID          string
	Title               string
	FirmName            string
	Description         string
	Location            string
	AreaOfLaw           string
	ApplicationDeadline string
	URL                 string
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (j Job) Board() board.Job {
	return board.Job{
		ID:                  j.ID.String(),
		JobTitle:            j.Title,
		FirmName:            j.FirmName,
		JobDescription:      j.Description,
		Location:            j.Location,
		AreaOfLaw:           j.AreaOfLaw,
		ApplicationDeadline: j.ApplicationDeadline,
		Source:              j.Source,
		URL:                 j.URL,
	}
}

func ToBoard(jobs []Job) []board.Job {
	out := make([]board.Job, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.Board())
	}
	return out
}

// Record is one normalized posting produced by a feed before it is stored.
type Record struct {
	ExternalID          string
	Title               string
	FirmName            string
	Description         string
	Location            string
	AreaOfLaw           string
	ApplicationDeadline string
	URL                 string
}

type ImportRun struct {
	Source      string
	Fetched     int
	Upserted    int
	Deactivated int
	StartedAt   time.Time
	FinishedAt  time.Time
	Err         error
}

func (r ImportRun) Changed() bool {
	return r.Upserted > 0 || r.Deactivated > 0
}
