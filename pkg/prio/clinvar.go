package prio

import "strings"

const (
	// consensusTierUnknown is the tier used when no part of the consensus
	// field is recognized, or the field is missing entirely.
	consensusTierUnknown = 6

	// consensusPrefix is emitted by the annotation join step ahead of the
	// actual ClinVar value.
	consensusPrefix = "clinvar: "
)

// consensusTiers maps ClinVar aggregate labels, as they appear on the wire,
// to tiers. VCF-escaped commas (\x2c) are part of the raw values.
var consensusTiers = map[string]int{
	// Pathogenic
	"Pathogenic":                              1,
	"Pathogenic/Likely_pathogenic":            1,
	"Pathogenic/Likely_pathogenic/Likely_risk_allele":            1,
	`Pathogenic/Likely_pathogenic/Pathogenic\x2c_low_penetrance`: 1,
	"Pathogenic/Likely_risk_allele":            1,
	`Pathogenic/Pathogenic\x2c_low_penetrance`: 1,

	// Likely pathogenic
	"Likely_pathogenic":                    2,
	"Likely_pathogenic/Likely_risk_allele": 2,
	`Likely_pathogenic\x2c_low_penetrance`: 2,
	"Likely_risk_allele":                   2,

	// Conflicting
	"Conflicting_classifications_of_pathogenicity": 3,

	// Uncertain
	"Uncertain_significance":                        4,
	"Uncertain_significance/Uncertain_risk_allele":  4,
	"Uncertain_risk_allele":                         4,

	// Functional annotations
	"Affects":             5,
	"association":         5,
	"drug_response":       5,
	"confers_sensitivity": 5,
	"risk_factor":         5,
	"protective":          5,

	// Unknown/missing
	"not_provided": consensusTierUnknown,
	"no_classification_for_the_single_variant":  consensusTierUnknown,
	"no_classifications_from_unflagged_records": consensusTierUnknown,
	"other":        consensusTierUnknown,
	"UNK":          consensusTierUnknown,
	"":             consensusTierUnknown,
	missingMarker:  consensusTierUnknown,

	// Likely benign
	"Likely_benign":        7,
	"Benign/Likely_benign": 7,

	// Benign
	"Benign": 8,
}

// ConsensusTier resolves a ClinVar consensus field to a tier. Pipe-separated
// fields resolve to the best (minimum) tier among the recognized parts;
// unrecognized or missing input resolves to consensusTierUnknown.
func ConsensusTier(field string) int {
	v := strings.TrimSpace(strings.ReplaceAll(field, consensusPrefix, ""))

	best := 0
	found := false
	for _, part := range strings.Split(v, "|") {
		t, ok := consensusTiers[strings.TrimSpace(part)]
		if !ok {
			continue
		}
		if !found || t < best {
			best = t
			found = true
		}
	}

	if !found {
		return consensusTierUnknown
	}
	return best
}
