package board

import (
	"regexp"
	"strings"
)

// NoState is what ExtractState yields for a location it cannot place.
const NoState = ""

type keyword struct {
	key   string
	state string
}

// Tables are scanned in order; the first hit wins, so order is behaviour.
var cityToState = []keyword{
	{"atlanta", "Georgia"},
	{"miami", "Florida"},
	{"boston", "Massachusetts"},
	{"chicago", "Illinois"},
	{"new york", "New York"},
	{"los angeles", "California"},
	{"san francisco", "California"},
	{"silicon valley", "California"},
	{"charlotte", "North Carolina"},
	{"raleigh", "North Carolina"},
	{"washington", "District of Columbia"},
	{"philadelphia", "Pennsylvania"},
	{"houston", "Texas"},
	{"dallas", "Texas"},
	{"ann arbor", "Michigan"},
	{"grand rapids", "Michigan"},
	{"columbus", "Ohio"},
	{"minneapolis", "Minnesota"},
	{"denver", "Colorado"},
	{"hartford", "Connecticut"},
	{"st. louis", "Missouri"},
	{"des moines", "Iowa"},
}

var internationalNames = []keyword{
	{"kalifornien", "California"},
	{"georgia", "Georgia"},
	{"massachusetts", "Massachusetts"},
	{"illinois", "Illinois"},
	{"florida", "Florida"},
	{"texas", "Texas"},
	{"virginia", "Virginia"},
	{"minnesota", "Minnesota"},
	{"ohio", "Ohio"},
	{"indiana", "Indiana"},
	{"pennsylvanien", "Pennsylvania"},
	{"pennsylvania", "Pennsylvania"},
	{"new york", "New York"},
	{"north carolina", "North Carolina"},
	{"south carolina", "South Carolina"},
	{"kalifornia", "California"},
}

var abbrToState = map[string]string{
	"AL": "Alabama",
	"AK": "Alaska",
	"AZ": "Arizona",
	"AR": "Arkansas",
	"CA": "California",
	"CO": "Colorado",
	"CT": "Connecticut",
	"DE": "Delaware",
	"FL": "Florida",
	"GA": "Georgia",
	"HI": "Hawaii",
	"ID": "Idaho",
	"IL": "Illinois",
	"IN": "Indiana",
	"IA": "Iowa",
	"KS": "Kansas",
	"KY": "Kentucky",
	"LA": "Louisiana",
	"ME": "Maine",
	"MD": "Maryland",
	"MA": "Massachusetts",
	"MI": "Michigan",
	"MN": "Minnesota",
	"MS": "Mississippi",
	"MO": "Missouri",
	"MT": "Montana",
	"NE": "Nebraska",
	"NV": "Nevada",
	"NH": "New Hampshire",
	"NJ": "New Jersey",
	"NM": "New Mexico",
	"NY": "New York",
	"NC": "North Carolina",
	"ND": "North Dakota",
	"OH": "Ohio",
	"OK": "Oklahoma",
	"OR": "Oregon",
	"PA": "Pennsylvania",
	"RI": "Rhode Island",
	"SC": "South Carolina",
	"SD": "South Dakota",
	"TN": "Tennessee",
	"TX": "Texas",
	"UT": "Utah",
	"VT": "Vermont",
	"VA": "Virginia",
	"WA": "Washington",
	"WV": "West Virginia",
	"WI": "Wisconsin",
	"WY": "Wyoming",
	"DC": "District of Columbia",
}

var trailingAbbrRe = regexp.MustCompile(`,\s*([A-Z]{2})$`)

// ExtractState resolves a free-text location to a full US state name.
//
// Resolution order: city table, trailing ", XX" abbreviation, then the
// international name table. City matching is plain substring containment,
// so a location such as "Washington Heights, NY" resolves to the District of
// Columbia. Unresolvable input yields NoState.
func ExtractState(location string) string {
	if location == "" {
		return NoState
	}
	loc := strings.ToLower(location)

	for _, c := range cityToState {
		if strings.Contains(loc, c.key) {
			return c.state
		}
	}

	if m := trailingAbbrRe.FindStringSubmatch(location); m != nil {
		// a recognised pattern with an unknown code stops here
		return abbrToState[m[1]]
	}

	for _, n := range internationalNames {
		if strings.Contains(loc, n.key) {
			return n.state
		}
	}

	return NoState
}
