package textutil

import (
	"math"
	"testing"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"both empty", "", "", 100},
		{"identical", "nichirin", "nichirin", 100},
		{"disjoint", "abc", "xyz", 0},
		{"one empty", "word", "", 0},
		{"single substitution", "kitten", "sitten", 250.0 / 3.0},
		{"trailing vowel", "Tanjiro", "Tanjirou", 1400.0 / 15.0},
		{"accented rune", "café", "cafe", 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ratio(tt.a, tt.b)
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRatioSymmetric(t *testing.T) {
	ab := Ratio("breathing", "breathless")
	ba := Ratio("breathless", "breathing")
	if ab != ba {
		t.Errorf("Ratio not symmetric: (%v, %v)", ab, ba)
	}
}

func TestRatioNearMissAboveThreshold(t *testing.T) {
	// The terminology checker flags near misses at ratio >= 80.
	got := Ratio("hashira", "hashirra")
	if got < 80 || got >= 100 {
		t.Errorf("Ratio(near miss) = %v, want in [80, 100)", got)
	}
}
