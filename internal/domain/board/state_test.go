package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractState(t *testing.T) {
	tests := []struct {
		name     string
		location string
		want     string
	}{
		{name: "city with abbreviation", location: "Atlanta, GA", want: "Georgia"},
		{name: "bare city", location: "Atlanta", want: "Georgia"},
		{name: "city case insensitive", location: "ATLANTA", want: "Georgia"},
		{name: "dc abbreviation", location: "Washington, DC", want: "District of Columbia"},
		{name: "dc dotted", location: "Washington, D.C.", want: "District of Columbia"},
		{name: "trailing abbreviation", location: "Savannah, GA", want: "Georgia"},
		{name: "trailing abbreviation with spaces", location: "Albany,   NY", want: "New York"},
		{name: "washington state abbreviation", location: "Seattle, WA", want: "Washington"},
		{name: "unknown abbreviation stops resolution", location: "Somewhere, Texas, ZZ", want: NoState},
		{name: "lowercase abbreviation is not an abbreviation", location: "Austin, tx", want: NoState},
		{name: "international name", location: "San Diego, Kalifornien, Vereinigte Staaten", want: "California"},
		{name: "transliterated pennsylvania", location: "Pittsburgh, Pennsylvanien", want: "Pennsylvania"},
		{name: "full state name", location: "Columbia, South Carolina", want: "South Carolina"},
		{name: "city beats abbreviation", location: "New York, NJ", want: "New York"},
		{name: "multi city takes first table hit", location: "Boston, MA, Chicago, IL", want: "Massachusetts"},
		{name: "remote is unknown", location: "Remote", want: NoState},
		{name: "empty", location: "", want: NoState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractState(tt.location))
		})
	}
}

func TestExtractState_SubstringCityMatchIsKept(t *testing.T) {
	// "washington" inside an unrelated place name still wins over the NY suffix.
	assert.Equal(t, "District of Columbia", ExtractState("Washington Heights, NY"))
	// "virginia" is a substring of "west virginia".
	assert.Equal(t, "Virginia", ExtractState("Charleston, West Virginia"))
}

func TestExtractState_CityTableOrder(t *testing.T) {
	// both "new york" and "washington" appear; the city table lists new york first.
	assert.Equal(t, "New York", ExtractState("Washington Square, New York"))
}
