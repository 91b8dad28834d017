package event

import (
	"errors"
	"fmt"
	"math"
)

// Physical constants in GeV.
const (
	MassTop      = 172.5
	MassW        = 80.4
	MassElectron = 0.000510998902
	MassMuon     = 0.105658389
)

// ErrInvalidEvent marks a structurally broken event record.
var ErrInvalidEvent = errors.New("event: invalid record")

// Lepton is a reconstructed electron or muon candidate.
type Lepton struct {
	Pt     float64 `json:"pt"`
	Phi    float64 `json:"phi"`
	Eta    float64 `json:"eta"`
	Charge int     `json:"charge"`
}

// Jet is a b-tagged jet candidate.
type Jet struct {
	Mass float64 `json:"mass"`
	Pt   float64 `json:"pt"`
	Phi  float64 `json:"phi"`
	Eta  float64 `json:"eta"`
}

// Event holds the observed quantities of one collision.
type Event struct {
	Index     int64    `json:"index"`
	Electrons []Lepton `json:"electrons"`
	Muons     []Lepton `json:"muons"`
	BJets     []Jet    `json:"bjets"`
	MET       float64  `json:"met"`
	METPhi    float64  `json:"met_phi"`
}

// METVector returns the Cartesian components of the missing transverse momentum.
func (e Event) METVector() (x, y float64) {
	return e.MET * math.Cos(e.METPhi), e.MET * math.Sin(e.METPhi)
}

// Validate reports structural problems: a negative index or a lepton charge
// outside {-1, +1}. Numeric content (NaN, odd kinematics) is not checked;
// reconstruction absorbs it in its filters.
func (e Event) Validate() error {
	if e.Index < 0 {
		return fmt.Errorf("index %d: %w", e.Index, ErrInvalidEvent)
	}
	for i, l := range e.Electrons {
		if l.Charge != 1 && l.Charge != -1 {
			return fmt.Errorf("electron %d charge %d: %w", i, l.Charge, ErrInvalidEvent)
		}
	}
	for i, l := range e.Muons {
		if l.Charge != 1 && l.Charge != -1 {
			return fmt.Errorf("muon %d charge %d: %w", i, l.Charge, ErrInvalidEvent)
		}
	}

	return nil
}
