package main

import (
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ttreco/event"
	"github.com/katalvlaran/ttreco/grid"
	"github.com/katalvlaran/ttreco/store"
	"github.com/katalvlaran/ttreco/synth"
)

func newGenerateCmd(g *globalFlags) *cobra.Command {
	var (
		n    int
		seed int64
		out  string
		mt   float64
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write synthetic truth events as JSON Lines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			engine, err := grid.New(cfg.Grid)
			if err != nil {
				return err
			}
			evs, err := synth.Generate(rand.New(rand.NewSource(seed)), n, engine.Etas(), mt, event.MassW)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				return store.WriteEvents(cmd.OutOrStdout(), evs)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err = store.WriteEvents(f, evs); err != nil {
				f.Close()
				return err
			}
			newLogger(cmd.ErrOrStderr(), cfg).Info("generated", "events", len(evs), "out", out)

			return f.Close()
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&n, "n", 100, "number of events")
	fl.Int64Var(&seed, "seed", 1, "generator seed")
	fl.StringVar(&out, "out", "-", "output file, - for stdout")
	fl.Float64Var(&mt, "mt", event.MassTop, "true top mass in GeV")

	return cmd
}
