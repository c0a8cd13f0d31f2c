package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"lawjobs/internal/domain/job"
)

const maxFeedBytes = 16 << 20

type Fetcher interface {
	Fetch(ctx context.Context, src Source) ([]job.Record, error)
}

type jsonRecord struct {
	ID                  json.RawMessage `json:"id"`
	JobTitle            string          `json:"jobTitle"`
	FirmName            string          `json:"firmName"`
	JobDescription      string          `json:"jobDescription"`
	Location            string          `json:"location"`
	AreaOfLaw           string          `json:"areaOfLaw"`
	ApplicationDeadline string          `json:"applicationDeadline"`
	URL                 string          `json:"url"`
}

type JSONClient struct {
	client *http.Client
	logger *log.Logger
}

func NewJSONClient(client *http.Client, logger *log.Logger) *JSONClient {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &JSONClient{client: client, logger: logger}
}

// Fetch reads an array of job records, either bare or wrapped as {"jobs": [...]}.
func (c *JSONClient) Fetch(ctx context.Context, src Source) ([]job.Record, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("nil json feed client")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		if c.logger != nil {
			c.logger.Printf("[Import] feed error source=%s status=%d body=%q", src.Name, resp.StatusCode, bodyStr)
		}
		return nil, fmt.Errorf("feed %s: status=%d", src.Name, resp.StatusCode)
	}

	b, err := readAllLimit(resp.Body, maxFeedBytes)
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", src.Name, err)
	}

	raw, err := decodeRecords(b)
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", src.Name, err)
	}

	out := make([]job.Record, 0, len(raw))
	for _, r := range raw {
		firm := r.FirmName
		if strings.TrimSpace(firm) == "" {
			firm = src.Firm
		}
		out = append(out, job.Record{
			ExternalID:          rawID(r.ID),
			Title:               r.JobTitle,
			FirmName:            firm,
			Description:         r.JobDescription,
			Location:            r.Location,
			AreaOfLaw:           r.AreaOfLaw,
			ApplicationDeadline: r.ApplicationDeadline,
			URL:                 r.URL,
		})
	}
	return out, nil
}

func decodeRecords(b []byte) ([]jsonRecord, error) {
	trimmed := strings.TrimSpace(string(b))
	if strings.HasPrefix(trimmed, "[") {
		var out []jsonRecord
		if err := json.Unmarshal(b, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	var wrapped struct {
		Jobs []jsonRecord `json:"jobs"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Jobs, nil
}

// rawID accepts numeric and string ids.
func rawID(m json.RawMessage) string {
	if len(m) == 0 || string(m) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(m, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(m))
}

func readAllLimit(r io.Reader, max int64) ([]byte, error) {
	lr := &io.LimitedReader{R: r, N: max + 1}
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("response too large")
	}
	return b, nil
}
