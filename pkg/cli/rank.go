package cli

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/lcgenomics/vprio/pkg/data"
	"github.com/lcgenomics/vprio/pkg/prio"
	"github.com/lcgenomics/vprio/pkg/tsv"
	"github.com/urfave/cli/v2"
)

var (
	inputFileFlag = &cli.StringFlag{
		Name:     "input",
		Aliases:  []string{"i"},
		Usage:    "Path to the annotated variant TSV to prioritize",
		Required: true,
	}

	outputFileFlag = &cli.StringFlag{
		Name:     "output",
		Aliases:  []string{"o"},
		Usage:    "Path for the prioritized TSV",
		Required: true,
	}

	topFlag = &cli.IntFlag{
		Name:  "top",
		Usage: "Number of top ranked variants to keep in run history (default from config)",
	}

	noHistoryFlag = &cli.BoolFlag{
		Name:  "no-history",
		Usage: "Skip recording this run in the history database",
	}

	rankCmd = &cli.Command{
		Name:    "rank",
		Aliases: []string{"r"},
		Usage:   "Score and rank an annotated variant table",
		UsageText: `vprio rank --input annotated.tsv --output prioritized.tsv
   vprio rank -i annotated.tsv -o prioritized.tsv --top 25      # keep more context in history
   vprio rank -i annotated.tsv -o prioritized.tsv --no-history  # one-off run`,
		HideHelpCommand: true,
		Action:          cmdRank,
		Flags: []cli.Flag{
			inputFileFlag,
			outputFileFlag,
			topFlag,
			noHistoryFlag,
		},
	}
)

// Triage columns kept with run history, used only when present in the input.
const (
	chromColumn = "#Chr"
	posColumn   = "Start"
	refColumn   = "Ref"
	altColumn   = "Alt"
	geneColumn  = "Ref.Gene"
)

// RankResult is the rank command output envelope.
type RankResult struct {
	Input    string             `json:"input" yaml:"input"`
	Output   string             `json:"output" yaml:"output"`
	Duration string             `json:"duration" yaml:"duration"`
	RunID    int64              `json:"run_id,omitempty" yaml:"runId,omitempty"`
	Summary  *prio.Summary      `json:"summary" yaml:"summary"`
	Top      []*data.RunVariant `json:"top,omitempty" yaml:"top,omitempty"`
}

func cmdRank(c *cli.Context) error {
	start := time.Now()
	in := c.String(inputFileFlag.Name)
	out := c.String(outputFileFlag.Name)

	cfg := getConfig(c)

	top := c.Int(topFlag.Name)
	if top < 1 {
		top = cfg.Conf.TopVariants
	}

	slog.Info("reading variants", "path", in)
	table, err := tsv.Read(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	slog.Info("loaded variants", "count", len(table.Rows))

	ranker := prio.New(cfg.Conf.Columns)
	ranked, summary, err := ranker.Rank(context.Background(), table.Header, table.Rows)
	if err != nil {
		return fmt.Errorf("failed to rank variants: %w", err)
	}

	slog.Info("writing prioritized variants", "path", out)
	if err := tsv.Write(out, &tsv.Table{Header: table.Header, Rows: ranked}); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	res := &RankResult{
		Input:   in,
		Output:  out,
		Summary: summary,
		Top:     topVariants(cfg.Conf.Columns, table.Header, ranked, top),
	}

	if !c.Bool(noHistoryFlag.Name) {
		run := &data.Run{
			InputFile:  in,
			OutputFile: out,
			Total:      summary.Total,
			DurationMS: time.Since(start).Milliseconds(),
			Classes:    runClasses(summary),
			Variants:   res.Top,
		}
		id, saveErr := data.SaveRun(cfg.DB, run)
		if saveErr != nil {
			slog.Error("failed to record run history", "error", saveErr)
		} else {
			res.RunID = id
		}
	}

	res.Duration = time.Since(start).String()

	if err := encode(res); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}

	return nil
}

// topVariants projects the first n ranked rows onto the triage columns.
func topVariants(cols prio.Columns, header []string, rows [][]string, n int) []*data.RunVariant {
	if n > len(rows) {
		n = len(rows)
	}

	chrom := headerIndex(header, chromColumn)
	pos := headerIndex(header, posColumn)
	ref := headerIndex(header, refColumn)
	alt := headerIndex(header, altColumn)
	gene := headerIndex(header, geneColumn)
	class := headerIndex(header, cols.Classification)
	consensus := headerIndex(header, cols.Consensus)

	list := make([]*data.RunVariant, 0, n)
	for i := 0; i < n; i++ {
		row := rows[i]
		list = append(list, &data.RunVariant{
			Position:       i + 1,
			Chrom:          fieldAt(row, chrom),
			Pos:            fieldAt(row, pos),
			Ref:            fieldAt(row, ref),
			Alt:            fieldAt(row, alt),
			Gene:           fieldAt(row, gene),
			Classification: fieldAt(row, class),
			Consensus:      fieldAt(row, consensus),
		})
	}
	return list
}

// runClasses flattens the summary distribution into stable, count-ordered
// rows for persistence.
func runClasses(s *prio.Summary) []*data.RunClass {
	list := make([]*data.RunClass, 0, len(s.ByClassification))
	for k, v := range s.ByClassification {
		list = append(list, &data.RunClass{Classification: k, Count: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Count != list[j].Count {
			return list[i].Count > list[j].Count
		}
		return list[i].Classification < list[j].Classification
	})
	return list
}

func headerIndex(header []string, name string) int {
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

func fieldAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
