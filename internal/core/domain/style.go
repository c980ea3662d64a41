package domain

import "math"

// StyleLabel is a coarse genre-like category assigned from tempo alone.
// The set is closed; new labels require a new bracket table.
type StyleLabel string

const (
	StyleAmbient  StyleLabel = "Ambient / Downtempo"
	StylePop      StyleLabel = "Pop / R&B"
	StyleHouse    StyleLabel = "House"
	StyleTechno   StyleLabel = "Techno"
	StyleDnB      StyleLabel = "Drum & Bass / Jungle"
	StyleHardcore StyleLabel = "Fast Electronic / Hardcore"
	StyleUnknown  StyleLabel = "Unknown"
)

// AllStyles lists every label a classification can produce.
var AllStyles = []StyleLabel{
	StyleAmbient,
	StylePop,
	StyleHouse,
	StyleTechno,
	StyleDnB,
	StyleHardcore,
	StyleUnknown,
}

// TempoBracket assigns a style to the half-open BPM interval [Lo, Hi).
type TempoBracket struct {
	Lo    float64
	Hi    float64
	Style StyleLabel
}

// DefaultBrackets is the ordered bracket table evaluated top to bottom.
// Intervals are half-open, so a boundary tempo belongs to the upper bracket
// (exactly 128 BPM is Techno, not House). The cut points are a curatorial
// choice, not derived from any music-theoretic standard; callers with a
// different opinion can classify against their own table via ClassifyWith.
var DefaultBrackets = []TempoBracket{
	{Lo: 0, Hi: 90, Style: StyleAmbient},
	{Lo: 90, Hi: 115, Style: StylePop},
	{Lo: 115, Hi: 128, Style: StyleHouse},
	{Lo: 128, Hi: 140, Style: StyleTechno},
	{Lo: 140, Hi: 160, Style: StyleDnB},
	{Lo: 160, Hi: math.Inf(1), Style: StyleHardcore},
}

// Classify maps a tempo onto a style label using DefaultBrackets.
// It is total: every float64, including NaN and infinities, gets a label.
func Classify(tempo float64) StyleLabel {
	return ClassifyWith(DefaultBrackets, tempo)
}

// ClassifyWith evaluates an ordered bracket table; the first interval
// containing the tempo wins. Non-finite or non-positive tempos, and tempos
// covered by no interval, classify as StyleUnknown.
func ClassifyWith(brackets []TempoBracket, tempo float64) StyleLabel {
	if math.IsNaN(tempo) || math.IsInf(tempo, 0) || tempo <= 0 {
		return StyleUnknown
	}
	for _, b := range brackets {
		if tempo >= b.Lo && tempo < b.Hi {
			return b.Style
		}
	}
	return StyleUnknown
}

var styleSearchTerms = map[StyleLabel][]string{
	StyleAmbient:  {"ambient", "downtempo", "chillout", "lofi"},
	StylePop:      {"pop", "rnb", "indie", "alternative"},
	StyleHouse:    {"house", "deep house", "tech house"},
	StyleTechno:   {"techno", "minimal techno", "progressive"},
	StyleDnB:      {"drum and bass", "dnb", "jungle"},
	StyleHardcore: {"hardcore", "hardstyle", "gabber"},
	StyleUnknown:  {"electronic"},
}

// SearchTerms returns the catalog search keywords for the style, most
// representative first.
func (s StyleLabel) SearchTerms() []string {
	if terms, ok := styleSearchTerms[s]; ok {
		return terms
	}
	return styleSearchTerms[StyleUnknown]
}
