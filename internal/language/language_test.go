package language

import "testing"

func TestToISO3(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ja", "jpn"},
		{"en", "eng"},
		{"JA", "jpn"},
		{"fr", "fra"},
		{"fre", "fra"}, // alternate normalizes to primary
		{"zh", "zho"},
		{"jpn", "jpn"},
		{"Japanese", "jpn"},
		{"english", "eng"},
		{"xyz", "xyz"}, // unknown 3-letter passes through
		{"xy", "und"},  // unknown 2-letter becomes undefined
		{"", "und"},
		{"  ", "und"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ToISO3(tt.input); got != tt.expected {
				t.Errorf("ToISO3(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ja", "Japanese"},
		{"jpn", "Japanese"},
		{"en", "English"},
		{"dut", "Dutch"},
		{"xy", "XY"},
		{"", "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := DisplayName(tt.input); got != tt.expected {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		language string
		code     string
		want     bool
	}{
		{"matching pair", "Japanese", "ja", true},
		{"matching via iso3", "English", "eng", true},
		{"case insensitive", "JAPANESE", "JA", true},
		{"mismatch", "Japanese", "en", false},
		{"unknown name passes", "Klingon", "ja", true},
		{"unknown code passes", "Japanese", "zz", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.language, tt.code); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.language, tt.code, got, tt.want)
			}
		})
	}
}
