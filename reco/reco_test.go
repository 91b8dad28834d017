package reco_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ttreco/event"
	"github.com/katalvlaran/ttreco/grid"
	"github.com/katalvlaran/ttreco/kinematics"
	"github.com/katalvlaran/ttreco/reco"
	"github.com/katalvlaran/ttreco/synth"
)

// truthEvent places both neutrino pseudorapidities exactly on the default
// η axis and uses m_t = 172.5, itself a default mass point.
func truthEvent(t testing.TB) event.Event {
	t.Helper()
	e, err := grid.New(grid.DefaultConfig())
	require.NoError(t, err)
	etas := e.Etas()

	ev, err := synth.Build(7, synth.Truth{
		Top: synth.Branch{
			NuPt: 50, Nu: synth.Direction{Phi: 0.3, Eta: etas[27]},
			Lepton: synth.Direction{Phi: 2.0, Eta: -0.5},
			Jet:    synth.Direction{Phi: -1.8, Eta: 0.9}, JetMass: 4.8,
		},
		AntiTop: synth.Branch{
			NuPt: 40, Nu: synth.Direction{Phi: -2.78, Eta: etas[20]},
			Lepton: synth.Direction{Phi: -1.28, Eta: 0.7},
			Jet:    synth.Direction{Phi: 1.2, Eta: -0.3}, JetMass: 4.8,
		},
		MassTop: 172.5,
		MassW:   event.MassW,
	})
	require.NoError(t, err)

	return ev
}

func newReco(t testing.TB, opts ...reco.Option) *reco.Reconstructor {
	t.Helper()
	r, err := reco.New(opts...)
	require.NoError(t, err)
	return r
}

func TestReconstruct_TruthEvent(t *testing.T) {
	ev := truthEvent(t)
	r := newReco(t, reco.WithResolution(0), reco.WithSmearDraws(1))

	out := r.Reconstruct(context.Background(), ev, reco.Stream(reco.DefaultSeed, ev.Index))
	require.Equal(t, reco.Accepted, out.Status, "err=%v", out.Err)
	assert.Equal(t, reco.ReasonNone, out.Reason)
	assert.Equal(t, reco.StageFiltered, out.Stage)
	assert.NoError(t, out.Err)

	res := out.Result
	require.NotNil(t, res)
	assert.Equal(t, int64(7), res.Event)
	assert.GreaterOrEqual(t, res.Weight, 0.99)
	assert.LessOrEqual(t, res.Weight, 1.0)
	assert.GreaterOrEqual(t, res.MassTop, 171.0)
	assert.LessOrEqual(t, res.MassTop, 174.0)

	// every real root satisfies both mass constraints of its hypothesis
	assert.InDelta(t, res.MassTop, kinematics.Mass(res.Top), 1e-3)
	assert.InDelta(t, res.MassTop, kinematics.Mass(res.AntiTop), 1e-3)
	assert.InDelta(t, event.MassW, kinematics.Mass(kinematics.Sum(res.LeptonTop, res.NuTop)), 1e-3)
	assert.InDelta(t, event.MassW, kinematics.Mass(kinematics.Sum(res.LeptonAntiTop, res.NuAntiTop)), 1e-3)

	// the μ⁺ feeds the top branch
	mu := kinematics.FourMomentum(ev.Muons[0].Pt, ev.Muons[0].Phi, ev.Muons[0].Eta, event.MassMuon)
	assert.InDelta(t, mu.E(), res.LeptonTop.E(), 1e-12)

	rec := res.Record()
	assert.Equal(t, "idx", reco.Names[8])
	assert.Equal(t, float64(ev.Index), rec[32])
	assert.Equal(t, res.Weight, rec[33])
	assert.Equal(t, res.Top.E(), rec[3])
	assert.Equal(t, res.NuAntiTop.Px(), rec[28])
	assert.Len(t, reco.Names, 10)

	back := reco.FromRecord(rec)
	assert.Equal(t, res.Momenta(), back.Momenta())
	assert.Equal(t, ev.Index, back.Event)
	assert.Equal(t, res.Weight, back.Weight)
	assert.Zero(t, back.Index)
}

func TestReconstruct_ElectronMuon(t *testing.T) {
	ev := truthEvent(t)
	// μ⁺ becomes e⁺: the top branch now carries the electron mass
	ev.Electrons = []event.Lepton{ev.Muons[0]}
	ev.Muons = ev.Muons[1:]
	r := newReco(t, reco.WithResolution(0), reco.WithSmearDraws(1))

	out := r.Reconstruct(context.Background(), ev, nil)
	require.Equal(t, reco.Accepted, out.Status, "err=%v", out.Err)
	res := out.Result
	assert.Greater(t, res.Weight, 0.4)
	assert.GreaterOrEqual(t, res.MassTop, 171.0)
	assert.LessOrEqual(t, res.MassTop, 174.0)

	e := ev.Electrons[0]
	want := kinematics.FourMomentum(e.Pt, e.Phi, e.Eta, event.MassElectron)
	assert.InDelta(t, want.E(), res.LeptonTop.E(), 1e-12)
	assert.InDelta(t, event.MassElectron, kinematics.Mass(res.LeptonTop), 1e-6)
	assert.InDelta(t, event.MassMuon, kinematics.Mass(res.LeptonAntiTop), 1e-6)
	assert.InDelta(t, res.MassTop, kinematics.Mass(res.Top), 1e-2)
	assert.InDelta(t, res.MassTop, kinematics.Mass(res.AntiTop), 1e-3)
}

func TestReconstruct_Rejections(t *testing.T) {
	ev := truthEvent(t)
	r := newReco(t, reco.WithSmearDraws(1))
	ctx := context.Background()

	sameSign := ev
	sameSign.Muons = []event.Lepton{ev.Muons[0], ev.Muons[0]}

	oneLepton := ev
	oneLepton.Muons = ev.Muons[:1]

	threeMuons := ev
	threeMuons.Electrons = []event.Lepton{{Pt: 20, Charge: 1}}
	threeMuons.Muons = []event.Lepton{ev.Muons[0], ev.Muons[1], ev.Muons[0]}

	oneJet := ev
	oneJet.BJets = ev.BJets[:1]

	badCharge := ev
	badCharge.Muons = []event.Lepton{{Pt: 30, Charge: 2}, ev.Muons[1]}

	cases := []struct {
		name   string
		ev     event.Event
		reason reco.Reason
		stage  reco.Stage
	}{
		{"same sign", sameSign, reco.ReasonSameSignLeptons, reco.StageStart},
		{"one lepton", oneLepton, reco.ReasonTooFewLeptons, reco.StageStart},
		{"multiplicity", threeMuons, reco.ReasonLeptonMultiplicity, reco.StageStart},
		{"one b-jet", oneJet, reco.ReasonTooFewBJets, reco.StageLeptonsValidated},
		{"bad charge", badCharge, reco.ReasonInvalidEvent, reco.StageStart},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rng := reco.Stream(1, 1)
			out := r.Reconstruct(ctx, tc.ev, rng)
			assert.Equal(t, reco.Rejected, out.Status)
			assert.Equal(t, tc.reason, out.Reason)
			assert.Equal(t, tc.stage, out.Stage)
			assert.Nil(t, out.Result)
			assert.Error(t, out.Err)

			// no draws consumed before jet enumeration
			assert.Equal(t, reco.Stream(1, 1).Int63(), rng.Int63())
		})
	}
}

func TestReconstruct_Cancelled(t *testing.T) {
	ev := truthEvent(t)
	r := newReco(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := r.Reconstruct(ctx, ev, nil)
	assert.Equal(t, reco.Rejected, out.Status)
	assert.Equal(t, reco.ReasonCancelled, out.Reason)
	assert.Equal(t, reco.StageJetsEnumerated, out.Stage)
	assert.ErrorIs(t, out.Err, context.Canceled)
}

func TestReconstruct_Idempotent(t *testing.T) {
	ev := truthEvent(t)
	r := newReco(t)
	ctx := context.Background()

	a := r.Reconstruct(ctx, ev, reco.Stream(reco.DefaultSeed, ev.Index))
	b := r.Reconstruct(ctx, ev, reco.Stream(reco.DefaultSeed, ev.Index))
	assert.Equal(t, a.Status, b.Status)
	assert.Equal(t, a.Reason, b.Reason)
	assert.Equal(t, a.Result, b.Result)

	// nil rng falls back to the default stream of the event
	c := r.Reconstruct(ctx, ev, nil)
	assert.Equal(t, a.Result, c.Result)
}

func TestReconstruct_Threshold(t *testing.T) {
	ev := truthEvent(t)
	r := newReco(t,
		reco.WithResolution(0), reco.WithSmearDraws(1),
		reco.WithThreshold(1), reco.WithSigma(1e-6, 1e-6),
	)
	out := r.Reconstruct(context.Background(), ev, nil)
	if out.Status == reco.Accepted {
		assert.Equal(t, 1.0, out.Result.Weight)
		return
	}
	assert.Equal(t, reco.ReasonBelowThreshold, out.Reason)
	assert.Equal(t, reco.StageFiltered, out.Stage)
}

func TestReconstruct_DebugLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ev := truthEvent(t)
	r := newReco(t, reco.WithResolution(0), reco.WithSmearDraws(1), reco.WithLogger(logger))

	out := r.Reconstruct(context.Background(), ev, nil)
	require.Equal(t, reco.Accepted, out.Status)
	assert.Contains(t, buf.String(), "event reconstructed")
	assert.Contains(t, buf.String(), "event=7")
	assert.Contains(t, buf.String(), "m_t=")
	assert.Contains(t, buf.String(), "hypotheses=36414")
	assert.Contains(t, buf.String(), "draw=0")
	assert.Contains(t, buf.String(), "jet_top=0")
	assert.Contains(t, buf.String(), "jet_antitop=1")
}

func TestNew_BadGrid(t *testing.T) {
	cfg := grid.DefaultConfig()
	cfg.EtaPoints = 0
	_, err := reco.New(reco.WithGrid(cfg))
	assert.ErrorIs(t, err, grid.ErrBadGrid)

	assert.Panics(t, func() { reco.WithSmearDraws(0) })
	assert.Panics(t, func() { reco.WithLogger(nil) })
}

func TestStream(t *testing.T) {
	assert.Equal(t, reco.Stream(5, 9).Int63(), reco.Stream(5, 9).Int63())
	assert.NotEqual(t, reco.Stream(5, 9).Int63(), reco.Stream(5, 10).Int63())
	assert.NotEqual(t, reco.Stream(5, 9).Int63(), reco.Stream(6, 9).Int63())
}

func TestReasonStrings(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range reco.Reasons() {
		s := r.String()
		assert.NotEqual(t, "unknown", s)
		assert.False(t, seen[s], "duplicate %q", s)
		seen[s] = true
	}
	assert.Equal(t, "below_threshold", reco.ReasonBelowThreshold.String())
	assert.Equal(t, "accepted", reco.Accepted.String())
	assert.Equal(t, "grid_evaluated", reco.StageGridEvaluated.String())
}
