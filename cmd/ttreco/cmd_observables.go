package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/ttreco/observables"
	"github.com/katalvlaran/ttreco/store"
)

func newObservablesCmd(g *globalFlags) *cobra.Command {
	var (
		dbPath, runID string
		cosinesOnly   bool
	)
	cmd := &cobra.Command{
		Use:   "observables",
		Short: "Compute spin-correlation observables of a stored run as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			if dbPath == "" {
				dbPath = cfg.Output
			}
			db, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			var info store.RunInfo
			if runID == "" {
				info, err = db.LatestRun(ctx)
			} else {
				var id uuid.UUID
				if id, err = uuid.Parse(runID); err != nil {
					return fmt.Errorf("run id: %w", err)
				}
				info, err = db.Run(ctx, id)
			}
			if err != nil {
				return err
			}
			results, err := db.Results(ctx, info.ID)
			if err != nil {
				return err
			}
			newLogger(cmd.ErrOrStderr(), cfg).Info("observables",
				"run", info.ID.String(), "results", len(results))
			if len(results) == 0 {
				return writeObservables(cmd.OutOrStdout(), nil, nil, cosinesOnly)
			}
			m, err := observables.Batch(results, cosinesOnly)
			if err != nil {
				return err
			}
			events := make([]int64, len(results))
			for i, r := range results {
				events[i] = r.Event
			}
			rows := make([][]float64, m.Rows())
			for i := range rows {
				if rows[i], err = m.RowView(i); err != nil {
					return err
				}
			}

			return writeObservables(cmd.OutOrStdout(), events, rows, cosinesOnly)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&dbPath, "db", "", "SQLite result database (default: config output)")
	fl.StringVar(&runID, "run", "", "run id (default: latest run)")
	fl.BoolVar(&cosinesOnly, "cosines-only", false, "only the six single-lepton cosines")

	return cmd
}

func writeObservables(w io.Writer, events []int64, rows [][]float64, cosinesOnly bool) error {
	cols := observables.Columns[:]
	if cosinesOnly {
		cols = cols[:observables.CosineColumns]
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"event"}, cols...)); err != nil {
		return err
	}
	rec := make([]string, len(cols)+1)
	for i, row := range rows {
		rec[0] = strconv.FormatInt(events[i], 10)
		for j, v := range row {
			rec[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}
