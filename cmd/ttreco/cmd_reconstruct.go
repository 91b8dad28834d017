package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/ttreco/batch"
	"github.com/katalvlaran/ttreco/config"
	"github.com/katalvlaran/ttreco/event"
	"github.com/katalvlaran/ttreco/reco"
	"github.com/katalvlaran/ttreco/store"
)

func newReconstructCmd(g *globalFlags) *cobra.Command {
	var (
		input, output, yoda, metricsAddr string
		workers                          int
		seed                             int64
	)
	cmd := &cobra.Command{
		Use:   "reconstruct",
		Short: "Reconstruct a JSON Lines event file into a SQLite result store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			fl := cmd.Flags()
			if fl.Changed("input") {
				cfg.Input = input
			}
			if fl.Changed("output") {
				cfg.Output = output
			}
			if fl.Changed("yoda") {
				cfg.YODA = yoda
			}
			if fl.Changed("metrics-addr") {
				cfg.MetricsAddr = metricsAddr
			}
			if fl.Changed("workers") {
				cfg.Workers = workers
			}
			if fl.Changed("seed") {
				cfg.Seed = seed
			}
			if err = cfg.Validate(); err != nil {
				return err
			}
			if cfg.Input == "" {
				return fmt.Errorf("%w: no input file", config.ErrInvalid)
			}

			return runReconstruct(cmd.Context(), cfg, cmd.OutOrStdout(), newLogger(cmd.ErrOrStderr(), cfg))
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&input, "input", "", "JSON Lines event file, - for stdin")
	fl.StringVar(&output, "output", "", "SQLite result database")
	fl.StringVar(&yoda, "yoda", "", "write summary histograms to this YODA file")
	fl.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus /metrics on this address")
	fl.IntVar(&workers, "workers", 0, "concurrent events")
	fl.Int64Var(&seed, "seed", reco.DefaultSeed, "base RNG seed")

	return cmd
}

func readInput(path string) ([]event.Event, error) {
	if path == "-" {
		return store.ReadEvents(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return store.ReadEvents(f)
}

func runReconstruct(ctx context.Context, cfg config.Config, stdout io.Writer, logger *slog.Logger) error {
	evs, err := readInput(cfg.Input)
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.Output)
	if err != nil {
		return err
	}
	defer db.Close()

	snapshot, err := cfg.JSON()
	if err != nil {
		return err
	}
	run, err := db.BeginRun(ctx, snapshot)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics := batch.NewMetrics(reg)
	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, reg, logger)
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	r, err := reco.New(cfg.RecoOptions(logger)...)
	if err != nil {
		return err
	}
	masses := r.Engine().Masses()
	logger.Info("reconstruction started",
		slog.String("run", run.String()),
		slog.Int("events", len(evs)),
		slog.Int("eta_points", len(r.Engine().Etas())),
		slog.Int("mass_points", len(masses)),
		slog.Float64("mass_min", masses[0]),
		slog.Float64("mass_max", masses[len(masses)-1]),
		slog.Int("workers", cfg.Workers),
	)
	runner := &batch.Runner{
		Reconstructor: r,
		Workers:       cfg.Workers,
		Seed:          cfg.Seed,
		Metrics:       metrics,
		Logger:        logger.With(slog.String("run", run.String())),
	}
	sink := store.NewSink(db, run, cfg.BatchSize)
	summary, err := runner.Run(ctx, evs, sink)
	if err != nil {
		return err
	}
	if err = sink.Flush(ctx); err != nil {
		return err
	}

	if cfg.YODA != "" {
		if err = writeYODA(cfg.YODA, summary); err != nil {
			return err
		}
	}

	return printSummary(stdout, run.String(), summary)
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", slog.String("addr", addr), slog.Any("error", err))
		}
	}()

	return srv
}

func writeYODA(path string, s *batch.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = s.WriteYODA(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func printSummary(w io.Writer, run string, s *batch.Summary) error {
	if _, err := fmt.Fprintf(w, "run %s: processed=%d accepted=%d rejected=%d\n",
		run, s.Processed, s.Accepted, s.RejectedTotal()); err != nil {
		return err
	}
	reasons := make([]reco.Reason, 0, len(s.Rejected))
	for r := range s.Rejected {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	for _, r := range reasons {
		if _, err := fmt.Fprintf(w, "  %-20s %d\n", r, s.Rejected[r]); err != nil {
			return err
		}
	}

	return nil
}
