package reco

import (
	"go-hep.org/x/hep/fmom"

	"github.com/katalvlaran/ttreco/kinematics"
)

// RecordWidth is the length of Result.Record.
const RecordWidth = 8*4 + 2

// Names lists the quantities of a Record in order. The eight momenta take
// four slots each (px, py, pz, E); idx (the event index) and weight take
// one.
var Names = [...]string{
	"p_top", "p_l_t", "p_b_t", "p_nu_t",
	"p_tbar", "p_l_tbar", "p_b_tbar", "p_nu_tbar",
	"idx", "weight",
}

// Result is an accepted reconstruction.
type Result struct {
	Event  int64   // event index
	Index  int     // winning candidate index
	Weight float64 // winning weight, in [threshold, 1]

	Top, LeptonTop, JetTop, NuTop                 fmom.PxPyPzE
	AntiTop, LeptonAntiTop, JetAntiTop, NuAntiTop fmom.PxPyPzE

	EtaTop     float64 // hypothesised neutrino η, top branch
	EtaAntiTop float64 // hypothesised neutrino η, antitop branch
	MassTop    float64 // hypothesised parent mass
}

// Momenta returns the eight four-momenta in Record order.
func (r *Result) Momenta() [8]fmom.PxPyPzE {
	return [8]fmom.PxPyPzE{
		r.Top, r.LeptonTop, r.JetTop, r.NuTop,
		r.AntiTop, r.LeptonAntiTop, r.JetAntiTop, r.NuAntiTop,
	}
}

// Record flattens r into the fixed-width numeric form.
func (r *Result) Record() [RecordWidth]float64 {
	var out [RecordWidth]float64
	for i, p := range r.Momenta() {
		v := kinematics.Array(p)
		copy(out[4*i:], v[:])
	}
	out[32] = float64(r.Event)
	out[33] = r.Weight

	return out
}

// FromRecord rebuilds the momenta, event index and weight of a Result from
// rec. The candidate index and the hypothesis fields (EtaTop, EtaAntiTop,
// MassTop) are not part of a record and stay zero.
func FromRecord(rec [RecordWidth]float64) *Result {
	var p [8]fmom.PxPyPzE
	for i := range p {
		var v [4]float64
		copy(v[:], rec[4*i:4*i+4])
		p[i] = kinematics.FromArray(v)
	}

	return &Result{
		Event:  int64(rec[32]),
		Weight: rec[33],
		Top:    p[0], LeptonTop: p[1], JetTop: p[2], NuTop: p[3],
		AntiTop: p[4], LeptonAntiTop: p[5], JetAntiTop: p[6], NuAntiTop: p[7],
	}
}
