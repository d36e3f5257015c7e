package data

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/pkg/errors"
)

const (
	// RunListLimitDefault caps run list queries when no limit is given.
	RunListLimitDefault = 50

	insertRunSQL = `INSERT INTO run (run_date, input_file, output_file, total, duration_ms)
		VALUES (?, ?, ?, ?, ?)
	`

	insertRunClassSQL = `INSERT INTO run_class (run_id, classification, count)
		VALUES (?, ?, ?)
	`

	insertRunVariantSQL = `INSERT INTO run_variant
		(run_id, position, chrom, pos, ref, alt, gene, classification, consensus)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectRunsSQL = `SELECT id, run_date, input_file, output_file, total, duration_ms
		FROM run
		ORDER BY id DESC
		LIMIT ?
	`

	selectRunSQL = `SELECT id, run_date, input_file, output_file, total, duration_ms
		FROM run
		WHERE id = ?
	`

	selectRunClassesSQL = `SELECT classification, count
		FROM run_class
		WHERE run_id = ?
		ORDER BY count DESC, classification
	`

	selectRunVariantsSQL = `SELECT position, chrom, pos, ref, alt, gene, classification, consensus
		FROM run_variant
		WHERE run_id = ?
		ORDER BY position
	`
)

// Run is one recorded prioritization pass.
type Run struct {
	ID         int64  `json:"id" yaml:"id"`
	Date       string `json:"date" yaml:"date"`
	InputFile  string `json:"input_file" yaml:"inputFile"`
	OutputFile string `json:"output_file" yaml:"outputFile"`
	Total      int    `json:"total" yaml:"total"`
	DurationMS int64  `json:"duration_ms" yaml:"durationMs"`

	Classes  []*RunClass   `json:"classes,omitempty" yaml:"classes,omitempty"`
	Variants []*RunVariant `json:"variants,omitempty" yaml:"variants,omitempty"`
}

// RunClass is the per-classification record count for one run.
type RunClass struct {
	Classification string `json:"classification" yaml:"classification"`
	Count          int    `json:"count" yaml:"count"`
}

// RunVariant is one of the top ranked variants kept with a run for quick
// triage without re-reading the source table.
type RunVariant struct {
	Position       int    `json:"position" yaml:"position"`
	Chrom          string `json:"chrom" yaml:"chrom"`
	Pos            string `json:"pos" yaml:"pos"`
	Ref            string `json:"ref" yaml:"ref"`
	Alt            string `json:"alt" yaml:"alt"`
	Gene           string `json:"gene" yaml:"gene"`
	Classification string `json:"classification" yaml:"classification"`
	Consensus      string `json:"consensus" yaml:"consensus"`
}

// SaveRun records a completed prioritization run with its class distribution
// and top variants. Returns the new run ID.
func SaveRun(db *sql.DB, r *Run) (int64, error) {
	if db == nil {
		return 0, errDBNotInitialized
	}
	if r == nil {
		return 0, errors.New("run required")
	}

	if r.Date == "" {
		r.Date = time.Now().UTC().Format(time.RFC3339)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, errors.Wrap(err, "failed to begin transaction")
	}

	res, err := tx.Exec(insertRunSQL, r.Date, r.InputFile, r.OutputFile, r.Total, r.DurationMS)
	if err != nil {
		rollbackTransaction(tx)
		return 0, errors.Wrap(err, "failed to insert run")
	}

	id, err := res.LastInsertId()
	if err != nil {
		rollbackTransaction(tx)
		return 0, errors.Wrap(err, "failed to get run id")
	}

	cStmt, err := tx.Prepare(insertRunClassSQL)
	if err != nil {
		rollbackTransaction(tx)
		return 0, errors.Wrap(err, "failed to prepare class statement")
	}
	for _, c := range r.Classes {
		if _, err := cStmt.Exec(id, c.Classification, c.Count); err != nil {
			rollbackTransaction(tx)
			return 0, errors.Wrapf(err, "failed to insert class: %s", c.Classification)
		}
	}

	vStmt, err := tx.Prepare(insertRunVariantSQL)
	if err != nil {
		rollbackTransaction(tx)
		return 0, errors.Wrap(err, "failed to prepare variant statement")
	}
	for _, v := range r.Variants {
		if _, err := vStmt.Exec(id, v.Position, v.Chrom, v.Pos, v.Ref, v.Alt, v.Gene,
			v.Classification, v.Consensus); err != nil {
			rollbackTransaction(tx)
			return 0, errors.Wrapf(err, "failed to insert variant at position: %d", v.Position)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "failed to commit transaction")
	}

	r.ID = id
	return id, nil
}

// GetRuns lists the most recent runs, newest first, without their detail
// rows.
func GetRuns(db *sql.DB, limit int) ([]*Run, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}
	if limit < 1 {
		limit = RunListLimitDefault
	}

	rows, err := db.Query(selectRunsSQL, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query runs")
	}
	defer rows.Close()

	list := make([]*Run, 0)
	for rows.Next() {
		r := &Run{}
		if err := rows.Scan(&r.ID, &r.Date, &r.InputFile, &r.OutputFile, &r.Total, &r.DurationMS); err != nil {
			return nil, errors.Wrap(err, "failed to scan run row")
		}
		list = append(list, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read run rows")
	}

	return list, nil
}

// GetRun returns one run with its class distribution and top variants, or
// nil when the ID is not found.
func GetRun(db *sql.DB, id int64) (*Run, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	r := &Run{}
	err := db.QueryRow(selectRunSQL, id).
		Scan(&r.ID, &r.Date, &r.InputFile, &r.OutputFile, &r.Total, &r.DurationMS)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Debug("run not found", "id", id)
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to query run: %d", id)
	}

	if r.Classes, err = getRunClasses(db, id); err != nil {
		return nil, err
	}
	if r.Variants, err = getRunVariants(db, id); err != nil {
		return nil, err
	}

	return r, nil
}

func getRunClasses(db *sql.DB, id int64) ([]*RunClass, error) {
	rows, err := db.Query(selectRunClassesSQL, id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query run classes: %d", id)
	}
	defer rows.Close()

	list := make([]*RunClass, 0)
	for rows.Next() {
		c := &RunClass{}
		if err := rows.Scan(&c.Classification, &c.Count); err != nil {
			return nil, errors.Wrap(err, "failed to scan class row")
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read class rows")
	}

	return list, nil
}

func getRunVariants(db *sql.DB, id int64) ([]*RunVariant, error) {
	rows, err := db.Query(selectRunVariantsSQL, id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query run variants: %d", id)
	}
	defer rows.Close()

	list := make([]*RunVariant, 0)
	for rows.Next() {
		v := &RunVariant{}
		if err := rows.Scan(&v.Position, &v.Chrom, &v.Pos, &v.Ref, &v.Alt, &v.Gene,
			&v.Classification, &v.Consensus); err != nil {
			return nil, errors.Wrap(err, "failed to scan variant row")
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read variant rows")
	}

	return list, nil
}

func rollbackTransaction(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		slog.Error("failed to rollback transaction", "error", err)
	}
}
