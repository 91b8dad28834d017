package leptons

import (
	"errors"

	"go-hep.org/x/hep/fmom"

	"github.com/katalvlaran/ttreco/event"
	"github.com/katalvlaran/ttreco/kinematics"
)

var (
	// ErrTooFewLeptons: fewer than two leptons in the event.
	ErrTooFewLeptons = errors.New("leptons: fewer than two leptons")

	// ErrSameSign: the candidate pair does not sum to zero charge.
	ErrSameSign = errors.New("leptons: same-sign pair")

	// ErrMultiplicity: any electron/muon count combination other than
	// ee, μμ or eμ.
	ErrMultiplicity = errors.New("leptons: unsupported lepton multiplicity")
)

// Flavour of a selected lepton.
type Flavour uint8

const (
	Electron Flavour = iota
	Muon
)

// String implements fmt.Stringer.
func (f Flavour) String() string {
	if f == Muon {
		return "muon"
	}
	return "electron"
}

// Leg is one selected lepton with its four-momentum and assumed mass.
type Leg struct {
	P4      fmom.PxPyPzE
	Mass    float64
	Flavour Flavour
}

// Pair is the charge-ordered dilepton system.
type Pair struct {
	Top     Leg // positive charge
	AntiTop Leg // negative charge
}

// candidate bundles a lepton with its flavour before branch assignment.
type candidate struct {
	l event.Lepton
	f Flavour
}

// Select applies the multiplicity and charge rules and builds the pair.
// Complexity: O(1).
func Select(electrons, muons []event.Lepton) (Pair, error) {
	ne, nm := len(electrons), len(muons)
	if ne+nm < 2 {
		return Pair{}, ErrTooFewLeptons
	}

	var a, b candidate
	switch {
	case ne == 2:
		a, b = candidate{electrons[0], Electron}, candidate{electrons[1], Electron}
	case nm == 2:
		a, b = candidate{muons[0], Muon}, candidate{muons[1], Muon}
	case ne == 1 && nm == 1:
		a, b = candidate{electrons[0], Electron}, candidate{muons[0], Muon}
	default:
		return Pair{}, ErrMultiplicity
	}
	if a.l.Charge+b.l.Charge != 0 {
		return Pair{}, ErrSameSign
	}
	// first lepton feeds the top branch only when it carries +1
	if a.l.Charge != 1 {
		a, b = b, a
	}

	return Pair{Top: leg(a), AntiTop: leg(b)}, nil
}

func leg(c candidate) Leg {
	m := event.MassElectron
	if c.f == Muon {
		m = event.MassMuon
	}

	return Leg{
		P4:      kinematics.FourMomentum(c.l.Pt, c.l.Phi, c.l.Eta, m),
		Mass:    m,
		Flavour: c.f,
	}
}
