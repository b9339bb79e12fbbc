package geocoding

import "strings"

var stateNames = map[string]string{
	"AL": "Alabama",
	"AK": "Alaska",
	"AZ": "Arizona",
	"AR": "Arkansas",
	"CA": "California",
	"CO": "Colorado",
	"CT": "Connecticut",
	"DE": "Delaware",
	"DC": "District of Columbia",
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
	"PR": "Puerto Rico",
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
}

// fullNames maps an upper-cased full name back to its canonical spelling
var fullNames = func() map[string]string {
	m := make(map[string]string, len(stateNames))
	for _, name := range stateNames {
		m[strings.ToUpper(name)] = name
	}
	return m
}()

// NormalizeState converts a state abbreviation or full name, in any case, to
// the full state name.
func NormalizeState(s string) (string, bool) {
	key := strings.ToUpper(strings.Join(strings.Fields(s), " "))
	if name, ok := stateNames[key]; ok {
		return name, true
	}
	if name, ok := fullNames[key]; ok {
		return name, true
	}
	return "", false
}

var abbreviations = func() map[string]string {
	m := make(map[string]string, len(stateNames))
	for abbr, name := range stateNames {
		m[name] = abbr
	}
	return m
}()

// Abbreviation returns the two-letter postal code for a state abbreviation or
// full name.
func Abbreviation(s string) (string, bool) {
	name, ok := NormalizeState(s)
	if !ok {
		return "", false
	}
	return abbreviations[name], true
}
