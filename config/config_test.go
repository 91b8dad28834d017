package config_test

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ttreco/config"
	"github.com/katalvlaran/ttreco/grid"
	"github.com/katalvlaran/ttreco/reco"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, int64(940202), cfg.Seed)
	assert.Equal(t, 5, cfg.SmearDraws)
	assert.Equal(t, 0.14, cfg.Resolution)
	assert.Equal(t, 0.4, cfg.Threshold)
	assert.Equal(t, 10.0, cfg.Sigma)
	assert.Equal(t, grid.DefaultConfig().EtaPoints, cfg.Grid.EtaPoints)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := config.Parse([]byte(`
seed: 7
workers: 3
threshold: 0.5
grid:
  eta_points: 11
  mass_points: 1
  mass_min: 172.5
  mass_max: 172.5
log_level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 0.5, cfg.Threshold)
	assert.Equal(t, 11, cfg.Grid.EtaPoints)
	assert.Equal(t, 1, cfg.Grid.MassPoints)
	// untouched keys keep defaults
	assert.Equal(t, -5.0, cfg.Grid.EtaMin)
	assert.Equal(t, 5, cfg.SmearDraws)

	l, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown key":    "sed: 1\n",
		"unknown nested": "grid:\n  eta_step: 0.1\n",
		"workers":        "workers: 0\n",
		"threshold":      "threshold: 1.5\n",
		"sigma":          "sigma: 0\n",
		"draws":          "smear_draws: 0\n",
		"grid":           "grid:\n  eta_points: 0\n",
		"log level":      "log_level: chatty\n",
		"syntax":         "seed: [\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(in))
			assert.Error(t, err)
		})
	}

	_, err := config.Parse([]byte("threshold: -1\n"))
	assert.ErrorIs(t, err, config.ErrInvalid)
	_, err = config.Parse([]byte("grid:\n  eta_min: 3\n  eta_max: 1\n"))
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.ErrorIs(t, err, grid.ErrBadGrid)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ttreco.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 11\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(11), cfg.Seed)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRecoOptionsAndJSON(t *testing.T) {
	cfg := config.Default()
	r, err := reco.New(cfg.RecoOptions(nil)...)
	require.NoError(t, err)
	assert.Equal(t, cfg.Grid, r.Engine().Config())

	raw, err := cfg.JSON()
	require.NoError(t, err)
	var back map[string]any
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, float64(940202), back["seed"])
}
