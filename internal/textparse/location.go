package textparse

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// cases.Caser is stateful, so a fresh one is built per call instead of
// sharing one across goroutines.
func titleCase(s string) string {
	return cases.Title(language.AmericanEnglish).String(s)
}

// Direct aliases checked before any structural parsing.
var locationAliases = map[string]string{
	"sf":             "San Francisco",
	"la":             "Los Angeles",
	"nyc":            "New York",
	"ny":             "New York",
	"dc":             "Washington DC",
	"chi":            "Chicago",
	"philly":         "Philadelphia",
	"remote":         "Remote",
	"work from home": "Remote",
	"wfh":            "Remote",
	"telecommute":    "Remote",
}

var stateNames = map[string]string{
	"al": "Alabama", "ak": "Alaska", "az": "Arizona", "ar": "Arkansas",
	"ca": "California", "co": "Colorado", "ct": "Connecticut", "de": "Delaware",
	"fl": "Florida", "ga": "Georgia", "hi": "Hawaii", "id": "Idaho",
	"il": "Illinois", "in": "Indiana", "ia": "Iowa", "ks": "Kansas",
	"ky": "Kentucky", "la": "Louisiana", "me": "Maine", "md": "Maryland",
	"ma": "Massachusetts", "mi": "Michigan", "mn": "Minnesota", "ms": "Mississippi",
	"mo": "Missouri", "mt": "Montana", "ne": "Nebraska", "nv": "Nevada",
	"nh": "New Hampshire", "nj": "New Jersey", "nm": "New Mexico", "ny": "New York",
	"nc": "North Carolina", "nd": "North Dakota", "oh": "Ohio", "ok": "Oklahoma",
	"or": "Oregon", "pa": "Pennsylvania", "ri": "Rhode Island", "sc": "South Carolina",
	"sd": "South Dakota", "tn": "Tennessee", "tx": "Texas", "ut": "Utah",
	"vt": "Vermont", "va": "Virginia", "wa": "Washington", "wv": "West Virginia",
	"wi": "Wisconsin", "wy": "Wyoming", "dc": "Washington DC",
}

var remoteIndicators = []string{
	"remote", "work from home", "wfh", "telecommute",
	"anywhere", "distributed", "virtual",
}

var (
	spacesRe       = regexp.MustCompile(`\s+`)
	locationJunkRe = regexp.MustCompile(`[^\w\s,.-]`)
)

// NormalizeLocation maps a raw location string to a standard "City, State"
// form. Known shorthands ("sf", "wfh") resolve through the alias table
// first; otherwise the string splits on comma and a two-letter state code
// expands to the full state name. Returns "" for empty input.
func NormalizeLocation(location string) string {
	location = strings.ToLower(strings.TrimSpace(location))
	if location == "" {
		return ""
	}
	location = spacesRe.ReplaceAllString(location, " ")
	location = locationJunkRe.ReplaceAllString(location, "")

	if mapped, ok := locationAliases[location]; ok {
		return mapped
	}

	parts := strings.Split(location, ",")
	if len(parts) >= 2 {
		city := titleCase(strings.TrimSpace(parts[0]))
		state := strings.TrimSpace(parts[1])
		// "austin, tx 78701" -> keep only the state token
		if fields := strings.Fields(state); len(fields) > 0 {
			if full, ok := stateNames[fields[0]]; ok {
				return city + ", " + full
			}
		}
		return city + ", " + titleCase(state)
	}

	if full, ok := stateNames[location]; ok {
		return full
	}
	return titleCase(location)
}

// IsRemoteLocation reports whether the text carries any remote-work marker.
func IsRemoteLocation(text string) bool {
	text = strings.ToLower(text)
	for _, indicator := range remoteIndicators {
		if strings.Contains(text, indicator) {
			return true
		}
	}
	return false
}
