package feed

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"

	"lawjobs/internal/domain/job"

	"golang.org/x/text/unicode/norm"
)

// cleanText composes unicode to NFC and collapses runs of whitespace.
func cleanText(s string) string {
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// cleanMultiline is cleanText for descriptions, keeping paragraph breaks.
func cleanMultiline(s string) string {
	s = norm.NFC.String(s)
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, l := range lines {
		l = strings.Join(strings.Fields(l), " ")
		if l == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, l)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// Normalize cleans a record and fills ExternalID when the feed did not
// supply one. Records without a title are dropped (ok=false).
func Normalize(r job.Record) (job.Record, bool) {
	r.Title = cleanText(r.Title)
	r.FirmName = cleanText(r.FirmName)
	r.Location = cleanText(r.Location)
	r.AreaOfLaw = cleanText(r.AreaOfLaw)
	r.ApplicationDeadline = cleanText(r.ApplicationDeadline)
	r.Description = cleanMultiline(r.Description)
	r.URL = strings.TrimSpace(r.URL)
	r.ExternalID = strings.TrimSpace(r.ExternalID)

	if r.Title == "" {
		return job.Record{}, false
	}
	if r.ExternalID == "" {
		r.ExternalID = stableID(r)
	}
	return r, true
}

func stableID(r job.Record) string {
	key := r.URL
	if key == "" {
		key = strings.ToLower(r.Title + "|" + r.FirmName + "|" + r.Location)
	}
	h := sha1.Sum([]byte(key))
	return "sha1-" + hex.EncodeToString(h[:])
}

// NormalizeAll normalizes records and drops invalid ones and repeated ids.
func NormalizeAll(in []job.Record) []job.Record {
	out := make([]job.Record, 0, len(in))
	seen := map[string]struct{}{}
	for _, r := range in {
		n, ok := Normalize(r)
		if !ok {
			continue
		}
		if _, dup := seen[n.ExternalID]; dup {
			continue
		}
		seen[n.ExternalID] = struct{}{}
		out = append(out, n)
	}
	return out
}
