package prio

import (
	"regexp"
	"strconv"
	"strings"
)

// confPairRe extracts one "Label(count)" pair.
var confPairRe = regexp.MustCompile(`([^(]+)\((\d+)\)`)

// confWeights are the signed per-label weights: negative pulls toward
// pathogenic, positive toward benign, unrecognized labels weigh 0.
var confWeights = map[string]int{
	"Pathogenic":                    -10,
	"Likely_pathogenic":             -8,
	`Pathogenic\x2c_low_penetrance`: -7,
	"Likely_risk_allele":            -6,
	"Uncertain_significance":        0,
	"Uncertain_risk_allele":         0,
	"Likely_benign":                 5,
	"Benign":                        8,
}

// ConfidenceScore scores the submission disagreement encoded as
// "Label1(n1)|Label2(n2)|...", where each count is the number of database
// submissions asserting that label. Returns the count-weighted mean of the
// label weights. Repeated labels accumulate. Missing, empty, or unparseable
// input scores 0.
func ConfidenceScore(field string) float64 {
	v := strings.TrimSpace(field)
	if v == "" {
		return 0
	}

	var sum, total int
	for _, part := range strings.Split(v, "|") {
		m := confPairRe.FindStringSubmatch(part)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		sum += confWeights[strings.TrimSpace(m[1])] * n
		total += n
	}

	if total == 0 {
		return 0
	}
	return float64(sum) / float64(total)
}
