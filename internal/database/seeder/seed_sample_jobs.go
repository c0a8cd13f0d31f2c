package seeder

import (
	"context"
	"fmt"

	"lawjobs/internal/database"

	"github.com/google/uuid"
)

const sampleSource = "seed"

type SampleJobsSeeder struct{}

func (SampleJobsSeeder) Name() string { return "sample_jobs" }

func (SampleJobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := RequireColumns(ctx, db, "jobs", "id", "source", "external_id", "job_title", "firm_name", "location", "area_of_law", "is_active"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, it := range sampleJobs {
			_, err := tx.Exec(ctx,
				`INSERT INTO jobs (id, source, external_id, job_title, firm_name, job_description, location, area_of_law, application_deadline)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				 ON CONFLICT (source, external_id) DO NOTHING`,
				uuid.NewString(), sampleSource, it.ExternalID, it.Title, it.Firm, it.Description, it.Location, it.Area, it.Deadline,
			)
			if err != nil {
				return fmt.Errorf("insert %s: %w", it.ExternalID, err)
			}
		}
		return nil
	})
}

var sampleJobs = []struct {
	ExternalID  string
	Title       string
	Firm        string
	Description string
	Location    string
	Area        string
	Deadline    string
}{
	{"seed-1", "1L Summer Associate", "King & Spalding", "Ten-week summer program with rotations across practice groups.", "Atlanta, GA", "Litigation, Corporate", "2027-01-15"},
	{"seed-2", "1L Diversity Fellow", "Alston & Bird", "Paid fellowship and summer associate position.", "Atlanta, GA, Charlotte, NC", "Intellectual Property/Litigation", "2027-01-10"},
	{"seed-3", "Summer Law Clerk", "Troutman Pepper", "Work alongside partners on regulatory matters.", "Atlanta", "Regulatory, Energy", "2027-02-01"},
	{"seed-4", "1L Summer Associate", "Cravath, Swaine & Moore", "Corporate and litigation assignments.", "New York, NY", "Corporate", "2027-01-05"},
	{"seed-5", "Public Interest Intern", "Legal Aid Society", "Direct client services in housing court.", "Washington, D.C.", "Public Interest", ""},
	{"seed-6", "Judicial Intern", "U.S. District Court", "Research and draft bench memos.", "Miami, FL", "Judicial", "2027-03-01"},
	{"seed-7", "1L Scholar", "Kirkland & Ellis", "Scholarship plus summer associate position.", "Chicago, IL", "Corporate, Restructuring", "2026-12-20"},
	{"seed-8", "Summer Associate", "Baker Botts", "Energy transactions and disputes.", "Houston, TX", "Energy/Litigation", "2027-01-31"},
	{"seed-9", "Remote Research Assistant", "Lex Research Co", "Assist with litigation research from anywhere.", "Remote", "", ""},
	{"seed-10", "Patent Law Clerk", "Fish & Richardson", "Technical patent prosecution support.", "Boston, MA", "Intellectual Property", "2027-02-15"},
}
