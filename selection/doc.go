// Package selection filters grid candidates and picks the best one.
//
// A candidate survives when the summed neutrino px and py are both real
// (|Im| ≤ tolerance). Survivors are weighted by how well the summed
// neutrino momentum reproduces the measured missing transverse momentum:
//
//	w = exp(−(MET_x − Σpx)² / 2σx²) · exp(−(MET_y − Σpy)² / 2σy²)
//
// The largest weight wins; ties go to the lowest candidate index. An event
// whose best weight falls below the threshold (0.4 by default, the
// threshold itself accepted) is rejected.
//
// Complexity: O(N) time and O(N) space over N candidates.
package selection
