package domain

import (
	"math"
	"testing"
)

func TestClassify_Brackets(t *testing.T) {
	tests := []struct {
		name  string
		tempo float64
		want  StyleLabel
	}{
		{name: "slow ambient", tempo: 60, want: StyleAmbient},
		{name: "just below pop boundary", tempo: 89.999, want: StyleAmbient},
		{name: "pop boundary belongs to upper bracket", tempo: 90, want: StylePop},
		{name: "mid pop", tempo: 100, want: StylePop},
		{name: "house boundary", tempo: 115, want: StyleHouse},
		{name: "classic house", tempo: 124, want: StyleHouse},
		{name: "just below techno boundary", tempo: 127.999, want: StyleHouse},
		{name: "techno boundary", tempo: 128, want: StyleTechno},
		{name: "dnb boundary", tempo: 140, want: StyleDnB},
		{name: "fast jungle", tempo: 159.9, want: StyleDnB},
		{name: "hardcore boundary", tempo: 160, want: StyleHardcore},
		{name: "absurdly fast still hardcore", tempo: 1000, want: StyleHardcore},
		{name: "barely positive", tempo: 0.1, want: StyleAmbient},
		{name: "zero tempo", tempo: 0, want: StyleUnknown},
		{name: "negative tempo", tempo: -10, want: StyleUnknown},
		{name: "NaN", tempo: math.NaN(), want: StyleUnknown},
		{name: "positive infinity", tempo: math.Inf(1), want: StyleUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.tempo); got != tc.want {
				t.Errorf("Classify(%v) = %q, want %q", tc.tempo, got, tc.want)
			}
		})
	}
}

// TestClassify_Deterministic verifies repeated calls agree for a sweep of
// tempos across the whole bracket table.
func TestClassify_Deterministic(t *testing.T) {
	for tempo := -20.0; tempo < 260; tempo += 0.25 {
		first := Classify(tempo)
		for i := 0; i < 3; i++ {
			if got := Classify(tempo); got != first {
				t.Fatalf("Classify(%v) unstable: %q then %q", tempo, first, got)
			}
		}
	}
}

// TestDefaultBrackets_NoGapsNoOverlaps checks the table tiles [0, +inf)
// exactly: each bracket starts where the previous one ends.
func TestDefaultBrackets_NoGapsNoOverlaps(t *testing.T) {
	if DefaultBrackets[0].Lo != 0 {
		t.Fatalf("first bracket starts at %v, want 0", DefaultBrackets[0].Lo)
	}
	for i := 1; i < len(DefaultBrackets); i++ {
		prev, cur := DefaultBrackets[i-1], DefaultBrackets[i]
		if prev.Hi != cur.Lo {
			t.Errorf("gap or overlap between brackets %d and %d: [%v,%v) then [%v,%v)",
				i-1, i, prev.Lo, prev.Hi, cur.Lo, cur.Hi)
		}
		if prev.Hi <= prev.Lo {
			t.Errorf("bracket %d is empty: [%v,%v)", i-1, prev.Lo, prev.Hi)
		}
	}
	last := DefaultBrackets[len(DefaultBrackets)-1]
	if !math.IsInf(last.Hi, 1) {
		t.Errorf("last bracket must be unbounded, got Hi=%v", last.Hi)
	}
}

func TestSearchTerms_EveryStyleCovered(t *testing.T) {
	for _, style := range AllStyles {
		if len(style.SearchTerms()) == 0 {
			t.Errorf("style %q has no search terms", style)
		}
	}
	if len(StyleLabel("Nonexistent").SearchTerms()) == 0 {
		t.Error("unmapped style should fall back to generic search terms")
	}
}

func TestFeatureSet_Valid(t *testing.T) {
	tests := []struct {
		name string
		fs   FeatureSet
		want bool
	}{
		{"all good", FeatureSet{Tempo: 128, SpectralCentroid: 2000, SpectralBandwidth: 1500}, true},
		{"zero tempo", FeatureSet{Tempo: 0, SpectralCentroid: 2000, SpectralBandwidth: 1500}, false},
		{"NaN centroid", FeatureSet{Tempo: 128, SpectralCentroid: math.NaN(), SpectralBandwidth: 1500}, false},
		{"infinite bandwidth", FeatureSet{Tempo: 128, SpectralCentroid: 2000, SpectralBandwidth: math.Inf(1)}, false},
		{"negative centroid", FeatureSet{Tempo: 128, SpectralCentroid: -1, SpectralBandwidth: 0}, false},
		{"zero spectral values allowed", FeatureSet{Tempo: 120, SpectralCentroid: 0, SpectralBandwidth: 0}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fs.Valid(); got != tc.want {
				t.Errorf("Valid() = %v, want %v", got, tc.want)
			}
		})
	}
}
