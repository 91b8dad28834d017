// SPDX-License-Identifier: MIT
// Package: reco
//
// reco.go - per-event reconstruction state machine.
//
// Purpose:
//   - Validate, pick leptons, enumerate jets, evaluate the grid, filter and assemble.
//   - Report every stop as an Outcome with its Reason and the last Stage reached.
//
// Determinism:
//   - Lepton and jet-count rejections consume no random draws.
//   - A nil rng falls back to Stream(DefaultSeed, ev.Index).

package reco

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"go-hep.org/x/hep/fmom"

	"github.com/katalvlaran/ttreco/bjets"
	"github.com/katalvlaran/ttreco/event"
	"github.com/katalvlaran/ttreco/grid"
	"github.com/katalvlaran/ttreco/kinematics"
	"github.com/katalvlaran/ttreco/leptons"
	"github.com/katalvlaran/ttreco/matrix"
	"github.com/katalvlaran/ttreco/selection"
)

// Reconstructor holds the grid engine and filter settings.
type Reconstructor struct {
	engine  *grid.Engine
	jets    []bjets.Option
	filters []selection.Option
	logger  *slog.Logger
}

// New builds a Reconstructor. The only error is an invalid grid
// (grid.ErrBadGrid); other options panic on meaningless values.
func New(opts ...Option) (*Reconstructor, error) {
	cfg := newConfig(opts...)
	engine, err := grid.New(cfg.grid)
	if err != nil {
		return nil, fmt.Errorf("reco: %w", err)
	}

	return &Reconstructor{
		engine:  engine,
		jets:    cfg.jets,
		filters: cfg.filters,
		logger:  cfg.logger,
	}, nil
}

// Engine returns the hypothesis grid engine.
func (r *Reconstructor) Engine() *grid.Engine { return r.engine }

// Reconstruct runs the full chain on ev. rng feeds the jet resolution
// draws; nil means Stream(DefaultSeed, ev.Index).
func (r *Reconstructor) Reconstruct(ctx context.Context, ev event.Event, rng *rand.Rand) Outcome {
	out := Outcome{Index: ev.Index, Stage: StageStart}
	reject := func(reason Reason, err error) Outcome {
		out.Status, out.Reason, out.Err = Rejected, reason, err
		return out
	}

	if err := ev.Validate(); err != nil {
		return reject(ReasonInvalidEvent, err)
	}
	pair, err := leptons.Select(ev.Electrons, ev.Muons)
	if err != nil {
		return reject(leptonReason(err), err)
	}
	out.Stage = StageLeptonsValidated

	if len(ev.BJets) < 2 {
		return reject(ReasonTooFewBJets, bjets.ErrTooFewJets)
	}
	if rng == nil {
		rng = Stream(DefaultSeed, ev.Index)
	}
	jopts := make([]bjets.Option, 0, len(r.jets)+1)
	jopts = append(jopts, r.jets...)
	jets, err := bjets.Enumerate(ev.BJets, append(jopts, bjets.WithRand(rng))...)
	if err != nil {
		return reject(ReasonTooFewBJets, err)
	}
	out.Stage = StageJetsEnumerated

	cands, err := r.engine.Evaluate(ctx, pair, jets)
	if err != nil {
		if ctx.Err() != nil {
			return reject(ReasonCancelled, err)
		}
		return reject(ReasonInvalidEvent, err)
	}
	out.Stage = StageGridEvaluated

	metX, metY := ev.METVector()
	choice, err := selection.Select(cands, metX, metY, r.filters...)
	out.Stage = StageFiltered
	switch {
	case errors.Is(err, selection.ErrNoRealSolution):
		return reject(ReasonNoRealSolution, err)
	case errors.Is(err, selection.ErrBelowThreshold):
		return reject(ReasonBelowThreshold, err)
	}

	res, err := build(ev.Index, pair, jets, cands, choice)
	if err != nil {
		return reject(ReasonNoRealSolution, err)
	}
	draw, p := jets.Decode(cands.Hypothesis(choice.Index).Row)
	r.logger.DebugContext(ctx, "event reconstructed",
		slog.Int64("event", ev.Index),
		slog.Int("candidate", choice.Index),
		slog.Int("hypotheses", cands.Hypotheses()),
		slog.Int("survivors", choice.Survivors),
		slog.Int("draw", draw),
		slog.Int("jet_top", jets.Pairs[p][0]),
		slog.Int("jet_antitop", jets.Pairs[p][1]),
		slog.Float64("weight", choice.Weight),
		slog.Float64("eta_t", res.EtaTop),
		slog.Float64("eta_tbar", res.EtaAntiTop),
		slog.Float64("m_t", res.MassTop),
		slog.Float64("met_x", metX),
		slog.Float64("met_y", metY),
		slog.Float64("sum_nu_x", res.NuTop.Px()+res.NuAntiTop.Px()),
		slog.Float64("sum_nu_y", res.NuTop.Py()+res.NuAntiTop.Py()),
	)
	out.Status, out.Result = Accepted, res

	return out
}

func leptonReason(err error) Reason {
	switch {
	case errors.Is(err, leptons.ErrTooFewLeptons):
		return ReasonTooFewLeptons
	case errors.Is(err, leptons.ErrSameSign):
		return ReasonSameSignLeptons
	default:
		return ReasonLeptonMultiplicity
	}
}

// build assembles the Result of the chosen candidate.
func build(idx int64, pair leptons.Pair, a *bjets.Assignments, c *grid.Candidates, ch selection.Choice) (*Result, error) {
	h := c.Hypothesis(ch.Index)

	jt, err := jetAt(a.Top, h.Row)
	if err != nil {
		return nil, err
	}
	ja, err := jetAt(a.AntiTop, h.Row)
	if err != nil {
		return nil, err
	}
	px, py := c.NuTop(ch.Index)
	nt := kinematics.NeutrinoFourMomentum(real(px), real(py), h.EtaTop)
	px, py = c.NuAntiTop(ch.Index)
	na := kinematics.NeutrinoFourMomentum(real(px), real(py), h.EtaAntiTop)

	return &Result{
		Event:         idx,
		Index:         ch.Index,
		Weight:        ch.Weight,
		Top:           kinematics.Sum(jt, pair.Top.P4, nt),
		LeptonTop:     pair.Top.P4,
		JetTop:        jt,
		NuTop:         nt,
		AntiTop:       kinematics.Sum(ja, pair.AntiTop.P4, na),
		LeptonAntiTop: pair.AntiTop.P4,
		JetAntiTop:    ja,
		NuAntiTop:     na,
		EtaTop:        h.EtaTop,
		EtaAntiTop:    h.EtaAntiTop,
		MassTop:       h.MassTop,
	}, nil
}

func jetAt(m *matrix.Dense, row int) (fmom.PxPyPzE, error) {
	v, err := m.RowView(row)
	if err != nil {
		return fmom.PxPyPzE{}, err
	}
	var a [4]float64
	copy(a[:], v)

	return kinematics.FromArray(a), nil
}
