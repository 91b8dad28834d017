package synth

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/ttreco/event"
	"github.com/katalvlaran/ttreco/kinematics"
)

// ErrUnreachable: no pt in the search range reaches the target mass.
var ErrUnreachable = errors.New("synth: target mass unreachable")

// maxPt bounds the bisection range in GeV.
const maxPt = 1e4

// Direction is an (φ, η) pair.
type Direction struct {
	Phi, Eta float64
}

// Branch fixes one decay chain up to the two solved transverse momenta.
type Branch struct {
	NuPt    float64
	Nu      Direction
	Lepton  Direction
	Jet     Direction
	JetMass float64
}

// Truth describes a full event.
type Truth struct {
	Top, AntiTop Branch
	MassTop      float64
	MassW        float64
}

// Build constructs the event; leptons are muons, μ⁺ on the top branch.
func Build(index int64, t Truth) (event.Event, error) {
	lt, jt, nt, err := branch(t.Top, t.MassTop, t.MassW)
	if err != nil {
		return event.Event{}, fmt.Errorf("top branch: %w", err)
	}
	la, ja, na, err := branch(t.AntiTop, t.MassTop, t.MassW)
	if err != nil {
		return event.Event{}, fmt.Errorf("antitop branch: %w", err)
	}
	lt.Charge, la.Charge = 1, -1

	mx, my := nt[kinematics.PX]+na[kinematics.PX], nt[kinematics.PY]+na[kinematics.PY]

	return event.Event{
		Index:  index,
		Muons:  []event.Lepton{lt, la},
		BJets:  []event.Jet{jt, ja},
		MET:    math.Hypot(mx, my),
		METPhi: math.Atan2(my, mx),
	}, nil
}

func branch(b Branch, mt, mw float64) (event.Lepton, event.Jet, [4]float64, error) {
	nu := kinematics.Array(kinematics.FourMomentum(b.NuPt, b.Nu.Phi, b.Nu.Eta, 0))
	lep := func(pt float64) [4]float64 {
		return kinematics.Array(kinematics.FourMomentum(pt, b.Lepton.Phi, b.Lepton.Eta, event.MassMuon))
	}
	lpt, err := bisect(func(pt float64) float64 { return invariantMass(lep(pt), nu) }, mw)
	if err != nil {
		return event.Lepton{}, event.Jet{}, nu, fmt.Errorf("W mass: %w", err)
	}
	w := add(lep(lpt), nu)
	jpt, err := bisect(func(pt float64) float64 {
		j := kinematics.Array(kinematics.FourMomentum(pt, b.Jet.Phi, b.Jet.Eta, b.JetMass))
		return invariantMass(j, w)
	}, mt)
	if err != nil {
		return event.Lepton{}, event.Jet{}, nu, fmt.Errorf("top mass: %w", err)
	}

	return event.Lepton{Pt: lpt, Phi: b.Lepton.Phi, Eta: b.Lepton.Eta},
		event.Jet{Mass: b.JetMass, Pt: jpt, Phi: b.Jet.Phi, Eta: b.Jet.Eta},
		nu, nil
}

func add(a, b [4]float64) [4]float64 {
	return [4]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func invariantMass(a, b [4]float64) float64 {
	s := add(a, b)
	return math.Sqrt(math.Max(kinematics.Dot(s, s), 0))
}

// bisect finds pt in (0, maxPt] with f(pt) = target, assuming f(0) < target.
func bisect(f func(float64) float64, target float64) (float64, error) {
	lo, hi := 0.0, maxPt
	if f(lo) >= target || f(hi) < target {
		return 0, ErrUnreachable
	}
	for i := 0; i < 200 && hi-lo > 1e-12*hi; i++ {
		mid := (lo + hi) / 2
		if f(mid) < target {
			lo = mid
		} else {
			hi = mid
		}
	}

	return (lo + hi) / 2, nil
}

// Random draws a Truth whose neutrino pseudorapidities lie on etas and
// whose neutrino pt is uniform in [20, 80) GeV. Lepton and jet η are
// uniform in [−2.4, 2.4); jet mass is 4.8 GeV.
func Random(rng *rand.Rand, etas []float64, mt, mw float64) Truth {
	dir := func() Direction {
		return Direction{Phi: (rng.Float64()*2 - 1) * math.Pi, Eta: (rng.Float64()*2 - 1) * 2.4}
	}
	br := func() Branch {
		return Branch{
			NuPt:    20 + 60*rng.Float64(),
			Nu:      Direction{Phi: (rng.Float64()*2 - 1) * math.Pi, Eta: etas[rng.Intn(len(etas))]},
			Lepton:  dir(),
			Jet:     dir(),
			JetMass: 4.8,
		}
	}

	return Truth{Top: br(), AntiTop: br(), MassTop: mt, MassW: mw}
}

// Generate produces n events, retrying draws whose kinematics cannot
// reach the target masses. Indices run from 0.
func Generate(rng *rand.Rand, n int, etas []float64, mt, mw float64) ([]event.Event, error) {
	out := make([]event.Event, 0, n)
	for i := 0; len(out) < n; i++ {
		if i > 100*n+100 {
			return out, fmt.Errorf("generate: %d of %d events: %w", len(out), n, ErrUnreachable)
		}
		ev, err := Build(int64(len(out)), Random(rng, etas, mt, mw))
		if errors.Is(err, ErrUnreachable) {
			continue
		}
		if err != nil {
			return out, err
		}
		out = append(out, ev)
	}

	return out, nil
}
