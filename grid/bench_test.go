package grid_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/ttreco/grid"
)

func benchmarkEvaluate(b *testing.B, workers int) {
	pair, a := fixture(b, 2)
	cfg := grid.DefaultConfig()
	cfg.Workers = workers
	e, err := grid.New(cfg)
	if err != nil {
		b.Fatalf("New: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = e.Evaluate(context.Background(), pair, a); err != nil {
			b.Fatalf("Evaluate: %v", err)
		}
	}
}

// BenchmarkEvaluate_Sequential covers the default 182 070-hypothesis grid.
func BenchmarkEvaluate_Sequential(b *testing.B) { benchmarkEvaluate(b, 1) }

// BenchmarkEvaluate_Parallel4 splits the same grid over four goroutines.
func BenchmarkEvaluate_Parallel4(b *testing.B) { benchmarkEvaluate(b, 4) }
