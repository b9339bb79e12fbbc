package geocoding

import (
	"errors"
	"strings"
)

// ErrUnrecognizedLocation is returned when a location string has no state
var ErrUnrecognizedLocation = errors.New("could not parse location; use 'City, State' or 'City ST'")

// ParseLocation splits free text into a city and a full state name.
//
// Accepted forms: "Chatham, MA", "Chatham, Massachusetts", "Chatham MA",
// "Ocean City New Jersey". Without a comma, the longest trailing run of words
// that names a state is taken as the state.
func ParseLocation(input string) (city, state string, err error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", "", ErrUnrecognizedLocation
	}

	if idx := strings.LastIndex(input, ","); idx >= 0 {
		city = strings.TrimSpace(input[:idx])
		st, ok := NormalizeState(input[idx+1:])
		if city == "" || !ok {
			return "", "", ErrUnrecognizedLocation
		}
		return city, st, nil
	}

	words := strings.Fields(input)
	for i := 1; i < len(words); i++ {
		if st, ok := NormalizeState(strings.Join(words[i:], " ")); ok {
			return strings.Join(words[:i], " "), st, nil
		}
	}
	return "", "", ErrUnrecognizedLocation
}
