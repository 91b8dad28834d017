// Package synth builds dilepton top-pair events with known truth.
//
// For each branch the caller fixes the neutrino (pt, φ, η), the lepton
// direction and the b-jet direction and mass. Build then scales the lepton
// pt until m(ℓν) equals the W mass and the jet pt until m(bℓν) equals the
// top mass, both by bisection. MET is the vector sum of the two neutrinos.
//
// Random draws directions uniformly and snaps the neutrino η onto a
// supplied axis, which makes the truth hypothesis an exact grid point.
package synth
