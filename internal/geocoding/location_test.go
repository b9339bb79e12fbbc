package geocoding

import (
	"errors"
	"testing"
)

func TestNormalizeState(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"MA", "Massachusetts", true},
		{"ma", "Massachusetts", true},
		{"Massachusetts", "Massachusetts", true},
		{"new   jersey", "New Jersey", true},
		{" NY ", "New York", true},
		{"XX", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := NormalizeState(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("NormalizeState(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		input     string
		wantCity  string
		wantState string
		wantErr   bool
	}{
		{"Boston, MA", "Boston", "Massachusetts", false},
		{"Chatham, Massachusetts", "Chatham", "Massachusetts", false},
		{"Boston MA", "Boston", "Massachusetts", false},
		{"San Diego CA", "San Diego", "California", false},
		{"Ocean City New Jersey", "Ocean City", "New Jersey", false},
		{"New York NY", "New York", "New York", false},
		{"Key West, fl", "Key West", "Florida", false},
		{"Boston", "", "", true},
		{"Boston, Nowhere", "", "", true},
		{", MA", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			city, state, err := ParseLocation(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnrecognizedLocation) {
					t.Errorf("ParseLocation(%q) error = %v, want ErrUnrecognizedLocation", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLocation(%q) error = %v", tt.input, err)
			}
			if city != tt.wantCity || state != tt.wantState {
				t.Errorf("ParseLocation(%q) = %q, %q; want %q, %q", tt.input, city, state, tt.wantCity, tt.wantState)
			}
		})
	}
}

func TestAbbreviation(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"Massachusetts", "MA", true},
		{"ma", "MA", true},
		{"district of columbia", "DC", true},
		{"Atlantis", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Abbreviation(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Abbreviation(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
