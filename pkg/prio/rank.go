package prio

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// missingMarker is the pipeline's "not available" value.
const missingMarker = "."

// key is the composite priority for one record. Ordering is strictly
// lexicographic, so no lower field can move a record across a higher
// field's boundary.
type key struct {
	classTier     int
	consensusTier int
	confidence    float64
	insilico      float64
}

func (k key) less(o key) bool {
	if k.classTier != o.classTier {
		return k.classTier < o.classTier
	}
	if k.consensusTier != o.consensusTier {
		return k.consensusTier < o.consensusTier
	}
	if k.confidence != o.confidence {
		return k.confidence < o.confidence
	}
	return k.insilico < o.insilico
}

// Summary describes one ranking pass.
type Summary struct {
	Total            int            `json:"total" yaml:"total"`
	ByClassification map[string]int `json:"by_classification" yaml:"byClassification"`
	ByTier           map[int]int    `json:"by_tier" yaml:"byTier"`
}

// Ranker scores and orders variant rows.
type Ranker struct {
	Columns Columns

	// Workers caps the scoring fan-out. Zero means one worker per CPU.
	Workers int
}

// New creates a Ranker for tables with the given column names.
func New(cols Columns) *Ranker {
	return &Ranker{Columns: cols}
}

// colIndex holds the resolved header positions, -1 for absent columns.
type colIndex struct {
	class      int
	consensus  int
	confidence int
	cadd       int
	sift       int
	gerp       int
	phylop     int
	metasvm    int
}

// Rank orders rows by composite priority, best first, and reports the
// classification distribution. The returned slice is a new ordering of the
// same row slices; input rows are never modified and records with equal
// keys keep their input order. The only error is a header without the
// classification column.
func (r *Ranker) Rank(ctx context.Context, header []string, rows [][]string) ([][]string, *Summary, error) {
	idx, err := r.resolveIndex(header)
	if err != nil {
		return nil, nil, err
	}

	// Records are scored independently, so fan the batch out in chunks.
	keys := make([]key, len(rows))
	workers := r.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	chunk := (len(rows) + workers - 1) / workers
	if chunk < 1 {
		chunk = 1
	}

	g, _ := errgroup.WithContext(ctx)
	for lo := 0; lo < len(rows); lo += chunk {
		lo, hi := lo, lo+chunk
		if hi > len(rows) {
			hi = len(rows)
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				keys[i] = r.score(rows[i], idx)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return keys[order[a]].less(keys[order[b]])
	})

	ranked := make([][]string, len(rows))
	for i, j := range order {
		ranked[i] = rows[j]
	}

	s := &Summary{
		Total:            len(rows),
		ByClassification: make(map[string]int),
		ByTier:           make(map[int]int),
	}
	for _, row := range rows {
		label := strings.TrimSpace(field(row, idx.class))
		if label == "" {
			label = missingMarker
		}
		s.ByClassification[label]++
	}
	for _, k := range keys {
		s.ByTier[k.classTier]++
	}

	return ranked, s, nil
}

func (r *Ranker) resolveIndex(header []string) (colIndex, error) {
	cols := r.Columns
	idx := colIndex{
		class:      indexOf(header, cols.Classification),
		consensus:  indexOf(header, cols.Consensus),
		confidence: indexOf(header, cols.Confidence),
		cadd:       indexOf(header, cols.CADD),
		sift:       indexOf(header, cols.SIFT),
		gerp:       indexOf(header, cols.GERP),
		phylop:     indexOf(header, cols.PhyloP),
		metasvm:    indexOf(header, cols.MetaSVM),
	}
	if idx.class < 0 {
		return idx, fmt.Errorf("required classification column %q not found in header", cols.Classification)
	}
	return idx, nil
}

// score computes the composite key for one row. Never fails: every signal
// has a defined default for missing or malformed input.
func (r *Ranker) score(row []string, idx colIndex) key {
	k := key{
		classTier:     ClassificationTier(field(row, idx.class)),
		consensusTier: ConsensusTier(field(row, idx.consensus)),
		confidence:    ConfidenceScore(field(row, idx.confidence)),
		insilico: InSilicoScore(Predictors{
			CADD:    field(row, idx.cadd),
			SIFT:    field(row, idx.sift),
			GERP:    field(row, idx.gerp),
			PhyloP:  field(row, idx.phylop),
			MetaSVM: field(row, idx.metasvm),
		}),
	}

	// A pathogenic or likely pathogenic call outranks whatever the
	// consensus database says; zero the consensus tier so a weak or
	// missing consensus cannot demote the call.
	if k.classTier <= TierLikelyPathogenic {
		k.consensusTier = 0
	}

	return k
}

func indexOf(header []string, name string) int {
	if name == "" {
		return -1
	}
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

// field tolerates ragged rows and absent columns.
func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
