// Package ttreco reconstructs dileptonic top-quark pair events.
//
// Each event carries two charged leptons, at least two b-tagged jets and the
// missing transverse momentum. The two neutrinos escape detection, so their
// momenta are recovered by scanning a grid of hypotheses and keeping the one
// whose neutrino sum best reproduces the measured MET.
//
// Pipeline:
//
//	event JSONL ─► leptons ─► bjets ─► grid ─► selection ─► reco.Result
//	                  (charge order) (draws×pairs) (η_t×η_t̄×m_t) (MET weight)
//
// Under the hood, everything is organized in flat subpackages:
//
//	kinematics/    (pt, φ, η, m) → (px, py, pz, E), Minkowski helpers
//	event/         input records and physical constants
//	leptons/       dilepton selection and top/antitop branch assignment
//	bjets/         ordered b-jet pairs × Gaussian pt resolution draws
//	nusolve/       closed-form neutrino (px, py) from the mass constraints
//	grid/          hypothesis axes and concurrent batched evaluation
//	selection/     reality filter, MET weight, argmax and threshold
//	reco/          per-event state machine, Outcome, RNG streams
//	observables/   helicity basis and spin-correlation columns
//	batch/         worker pool, ordered sink, histograms, metrics
//	store/         JSON Lines ingestion and SQLite result store
//	config/        YAML configuration
//	synth/         truth-level event builder for tests and demos
//	matrix/        row-major Dense, Gather, MatVec, Inverse
//
// The ttreco command (cmd/ttreco) wires these together.
//
//	go install github.com/katalvlaran/ttreco/cmd/ttreco@latest
package ttreco
