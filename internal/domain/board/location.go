package board

import (
	"regexp"
	"strings"
)

var usStateAbbr = map[string]struct{}{
	"AL": {}, "AK": {}, "AZ": {}, "AR": {}, "CA": {}, "CO": {}, "CT": {}, "DE": {}, "FL": {}, "GA": {},
	"HI": {}, "ID": {}, "IL": {}, "IN": {}, "IA": {}, "KS": {}, "KY": {}, "LA": {}, "ME": {}, "MD": {},
	"MA": {}, "MI": {}, "MN": {}, "MS": {}, "MO": {}, "MT": {}, "NE": {}, "NV": {}, "NH": {}, "NJ": {},
	"NM": {}, "NY": {}, "NC": {}, "ND": {}, "OH": {}, "OK": {}, "OR": {}, "PA": {}, "RI": {}, "SC": {},
	"SD": {}, "TN": {}, "TX": {}, "UT": {}, "VT": {}, "VA": {}, "WV": {}, "WI": {}, "WY": {}, "DC": {},
}

var usStateFull = map[string]struct{}{
	"Alabama": {}, "Alaska": {}, "Arizona": {}, "Arkansas": {}, "California": {}, "Colorado": {},
	"Connecticut": {}, "Delaware": {}, "Florida": {}, "Georgia": {}, "Hawaii": {}, "Idaho": {},
	"Illinois": {}, "Indiana": {}, "Iowa": {}, "Kansas": {}, "Kentucky": {}, "Louisiana": {},
	"Maine": {}, "Maryland": {}, "Massachusetts": {}, "Michigan": {}, "Minnesota": {},
	"Mississippi": {}, "Missouri": {}, "Montana": {}, "Nebraska": {}, "Nevada": {},
	"New Hampshire": {}, "New Jersey": {}, "New Mexico": {}, "North Carolina": {}, "North Dakota": {},
	"Ohio": {}, "Oklahoma": {}, "Oregon": {}, "Pennsylvania": {}, "Rhode Island": {},
	"South Carolina": {}, "South Dakota": {}, "Tennessee": {}, "Texas": {}, "Utah": {}, "Vermont": {},
	"Virginia": {}, "West Virginia": {}, "Wisconsin": {}, "Wyoming": {},
	"District of Columbia": {},
}

var dcSuffixRe = regexp.MustCompile(`(?i)^(d\.?c\.?)$`)

const washingtonDC = "Washington, D.C."

// IsState reports whether value is exactly a US state abbreviation or full name.
func IsState(value string) bool {
	if _, ok := usStateAbbr[value]; ok {
		return true
	}
	_, ok := usStateFull[value]
	return ok
}

// ParseLocations splits a comma-joined multi-city location into display badges,
// pairing each city with a following state token when there is one.
func ParseLocations(location string) []string {
	if location == "" {
		return nil
	}

	parts := strings.Split(location, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	out := make([]string, 0, len(parts))
	i := 0
	for i < len(parts) {
		current := parts[i]
		next := ""
		if i+1 < len(parts) {
			next = parts[i+1]
		}

		if current == "Washington" && next != "" && dcSuffixRe.MatchString(stripSpaces(next)) {
			out = append(out, washingtonDC)
			i += 2
			continue
		}

		if next != "" && IsState(next) {
			out = append(out, current+", "+next)
			i += 2
			continue
		}

		out = append(out, current)
		i++
	}
	return out
}

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}
