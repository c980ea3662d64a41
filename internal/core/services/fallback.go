package services

import "github.com/Verisomusic/BeatMatch/internal/core/domain"

// fallbackLabels is the curated per-style label table used whenever the live
// catalog is unconfigured, unreachable, or returns nothing.
var fallbackLabels = map[domain.StyleLabel][]domain.LabelRecommendation{
	domain.StyleAmbient: {
		{Name: "Ninja Tune", URL: "https://ninjatune.net"},
		{Name: "Ghostly International", URL: "https://ghostly.com"},
		{Name: "Warp Records", URL: "https://warp.net"},
	},
	domain.StylePop: {
		{Name: "XL Recordings", URL: "https://www.xlrecordings.com"},
		{Name: "Interscope Records", URL: "https://www.interscope.com"},
		{Name: "Republic Records", URL: "https://www.republicrecords.com"},
	},
	domain.StyleHouse: {
		{Name: "Defected Records", URL: "https://defected.com"},
		{Name: "Toolroom Records", URL: "https://toolroomrecords.com"},
		{Name: "Spinnin' Records", URL: "https://www.spinninrecords.com"},
	},
	domain.StyleTechno: {
		{Name: "Drumcode", URL: "https://drumcode.se"},
		{Name: "Afterlife", URL: "https://afterlifeofc.com"},
		{Name: "KNTXT", URL: "https://kntxt.com"},
	},
	domain.StyleDnB: {
		{Name: "Hospital Records", URL: "https://www.hospitalrecords.com"},
		{Name: "RAM Records", URL: "https://ramrecords.com"},
		{Name: "Critical Music", URL: "https://criticalmusic.com"},
	},
	domain.StyleHardcore: {
		{Name: "PRSPCT Recordings", URL: "https://prspct.nl"},
		{Name: "Masters of Hardcore", URL: "https://www.mastersofhardcore.com"},
		{Name: "Dirty Workz", URL: "https://www.dirtyworkz.com"},
	},
	domain.StyleUnknown: {
		{Name: "Warp Records", URL: "https://warp.net"},
		{Name: "XL Recordings", URL: "https://www.xlrecordings.com"},
		{Name: "Ninja Tune", URL: "https://ninjatune.net"},
	},
}

// FallbackLabels returns a copy of the curated list for the style. Unmapped
// styles get the generic list, so the result is never empty.
func FallbackLabels(style domain.StyleLabel) []domain.LabelRecommendation {
	list, ok := fallbackLabels[style]
	if !ok {
		list = fallbackLabels[domain.StyleUnknown]
	}
	out := make([]domain.LabelRecommendation, len(list))
	copy(out, list)
	return out
}
