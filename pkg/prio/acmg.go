package prio

import "strings"

// Classification tiers, lower is more clinically actionable.
const (
	TierPathogenic       = 1
	TierLikelyPathogenic = 2
	TierVUSHigh          = 3
	TierVUSMedium        = 4
	TierVUSCold          = 5
	TierVUS              = 6
	TierLikelyBenign     = 7
	TierBenign           = 8
	TierUnknown          = 9
)

// acmgTiers is the fixed classification vocabulary. Upstream callers are not
// consistent about case or separators, hence the spelling variants.
var acmgTiers = map[string]int{
	"Pathogenic":             TierPathogenic,
	"Likely pathogenic":      TierLikelyPathogenic,
	"Vus H":                  TierVUSHigh,
	"VUS H":                  TierVUSHigh,
	"VUS h":                  TierVUSHigh,
	"VUS_H":                  TierVUSHigh,
	"Vus M":                  TierVUSMedium,
	"VUS M":                  TierVUSMedium,
	"VUS m":                  TierVUSMedium,
	"VUS_M":                  TierVUSMedium,
	"Vus C":                  TierVUSCold,
	"VUS C":                  TierVUSCold,
	"VUS c":                  TierVUSCold,
	"VUS_C":                  TierVUSCold,
	"VUS":                    TierVUS,
	"Vus":                    TierVUS,
	"Uncertain significance": TierVUS,
	"Likely benign":          TierLikelyBenign,
	"Benign":                 TierBenign,
	"UNK":                    TierUnknown,
	"":                       TierUnknown,
	missingMarker:            TierUnknown,
}

// acmgTiersFold is the same vocabulary keyed by lowercased label.
var acmgTiersFold = func() map[string]int {
	m := make(map[string]int, len(acmgTiers))
	for k, t := range acmgTiers {
		m[strings.ToLower(k)] = t
	}
	return m
}()

// ClassificationTier maps a clinical significance label to its tier.
// Every input maps to a tier: exact vocabulary match first, then
// case-insensitive match, then a best-effort VUS sub-tier inference,
// and finally TierUnknown.
func ClassificationTier(label string) int {
	v := strings.TrimSpace(label)

	if t, ok := acmgTiers[v]; ok {
		return t
	}

	lower := strings.ToLower(v)
	if t, ok := acmgTiersFold[lower]; ok {
		return t
	}

	// Sub-tier inference for VUS spellings not in the vocabulary. The
	// single-letter qualifier scan is fragile on free-form labels, so it
	// only runs when "vus" itself is present. Best effort, not a
	// guaranteed-correct classifier.
	if strings.Contains(lower, "vus") {
		switch {
		case strings.Contains(lower, "h"), strings.Contains(lower, "high"):
			return TierVUSHigh
		case strings.Contains(lower, "m"), strings.Contains(lower, "medium"):
			return TierVUSMedium
		case strings.Contains(lower, "c"), strings.Contains(lower, "cold"):
			return TierVUSCold
		default:
			return TierVUS
		}
	}

	return TierUnknown
}
