// Package observables computes top-pair spin-correlation observables from
// reconstructed momenta.
//
// Frames and basis:
//   - The helicity basis is built from the top direction in the tt̄ rest
//     frame: k̂ along the top, r̂ in the (k̂, ẑ) plane, n̂ normal to it,
//     with ẑ the beam axis. r̂ and n̂ flip sign when cos θ(k̂, ẑ) < 0.
//   - Each lepton is boosted from the laboratory into the rest frame of its
//     parent and projected onto (k̂, r̂, n̂).
//
// Compute returns fifteen columns per event, in this order:
//
//	ck1 ck2 cr1 cr2 cn1 cn2
//	ck1·ck2  cr1·cr2  cn1·cn2
//	cr1·ck2 ± ck1·cr2   cn1·cr2 ± cr1·cn2   cn1·ck2 ± ck1·cn2
//
// Index 1 refers to the top-branch lepton and 2 to the antitop branch.
// With onlyCosines set, just the first six are returned.
package observables
