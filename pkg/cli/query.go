package cli

import (
	"fmt"

	"github.com/lcgenomics/vprio/pkg/data"
	"github.com/urfave/cli/v2"
)

var (
	queryLimitFlag = &cli.IntFlag{
		Name:     "limit",
		Usage:    "Limits number of runs returned",
		Value:    data.RunListLimitDefault,
		Required: false,
	}

	runIDFlag = &cli.Int64Flag{
		Name:     "id",
		Usage:    "Run ID",
		Required: true,
	}

	queryCmd = &cli.Command{
		Name:    "query",
		Aliases: []string{"q"},
		Usage:   "List run history query operations",
		Subcommands: []*cli.Command{
			{
				Name:    "runs",
				Usage:   "List recorded prioritization runs, newest first",
				Aliases: []string{"r"},
				Action:  cmdQueryRuns,
				Flags: []cli.Flag{
					queryLimitFlag,
				},
			},
			{
				Name:    "run",
				Usage:   "Get one run with its class distribution and top variants",
				Action:  cmdQueryRun,
				Flags: []cli.Flag{
					runIDFlag,
				},
			},
		},
	}
)

func cmdQueryRuns(c *cli.Context) error {
	cfg := getConfig(c)

	runs, err := data.GetRuns(cfg.DB, c.Int(queryLimitFlag.Name))
	if err != nil {
		return fmt.Errorf("failed to query runs: %w", err)
	}

	if err := encode(runs); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}

	return nil
}

func cmdQueryRun(c *cli.Context) error {
	cfg := getConfig(c)
	id := c.Int64(runIDFlag.Name)

	run, err := data.GetRun(cfg.DB, id)
	if err != nil {
		return fmt.Errorf("failed to query run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("run %d not found", id)
	}

	if err := encode(run); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}

	return nil
}
