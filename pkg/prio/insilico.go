package prio

import (
	"strconv"
	"strings"
)

// Per-predictor cutoffs from the pipeline's reference ranges.
const (
	caddHighCutoff        = 25.0
	caddModerateCutoff    = 20.0
	siftDamagingCutoff    = 0.05 // below means damaging
	gerpConservedCutoff   = 4.4  // above means conserved site
	phylopConservedCutoff = 2.0

	metaSVMDamaging  = "D"
	metaSVMTolerated = "T"
)

// Predictors holds the raw per-variant in silico annotation values. Any of
// them may be empty or the "." missing marker.
type Predictors struct {
	CADD    string
	SIFT    string
	GERP    string
	PhyloP  string
	MetaSVM string
}

// InSilicoScore aggregates the predictors into a single deleteriousness
// score, normalized by how many were actually present and parseable. More
// negative means more accumulated evidence of damage. A predictor that does
// not parse contributes to neither the numerator nor the denominator; if
// none parse the score is 0.
func InSilicoScore(p Predictors) float64 {
	var sum float64
	var count int

	if v, ok := parseNumber(p.CADD); ok {
		switch {
		case v >= caddHighCutoff:
			sum -= 2
		case v >= caddModerateCutoff:
			sum--
		}
		count++
	}

	if v, ok := parseNumber(p.SIFT); ok {
		if v < siftDamagingCutoff {
			sum--
		}
		count++
	}

	if v, ok := parseNumber(p.GERP); ok {
		if v > gerpConservedCutoff {
			sum--
		}
		count++
	}

	if v, ok := parseNumber(p.PhyloP); ok {
		if v > phylopConservedCutoff {
			sum--
		}
		count++
	}

	// MetaSVM is categorical: a damaging or tolerated code embedded
	// anywhere in the value, not a numeric parse.
	if v := strings.TrimSpace(p.MetaSVM); v != "" && v != missingMarker {
		switch {
		case strings.Contains(v, metaSVMDamaging):
			sum--
		case strings.Contains(v, metaSVMTolerated):
			sum++
		}
		count++
	}

	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// parseNumber parses a predictor value, treating empty and "." as absent.
func parseNumber(s string) (float64, bool) {
	v := strings.TrimSpace(s)
	if v == "" || v == missingMarker {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
