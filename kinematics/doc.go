// Package kinematics converts detector measurements into four-momenta.
//
// A measurement (pt, φ, η, m) becomes the Cartesian vector
//
//	px = pt·cos φ, py = pt·sin φ, pz = pt·sinh η, E = √(px²+py²+pz²+m²)
//
// so that E² − |p⃗|² = m² holds by construction. Neutrinos are built
// directly from (px, py, η) and treated as massless.
//
// Single vectors use go-hep's fmom.PxPyPzE; batches are N×4 matrix.Dense
// values with columns (px, py, pz, E). Inputs are not validated: NaN in,
// NaN out.
package kinematics
