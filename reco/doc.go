// Package reco reconstructs one dileptonic top-pair event.
//
// Reconstruct drives a fixed sequence of stages:
//
//	Start → LeptonsValidated → JetsEnumerated → GridEvaluated → Filtered
//
// Any stage may reject the event; the Outcome records the furthest stage
// reached, a Reason, and for accepted events the Result: the eight
// reconstructed four-momenta (top, antitop and their lepton, b-jet and
// neutrino), the winning candidate index and its weight.
//
// Determinism:
//   - The b-jet resolution draws are the only randomness. Stream(seed,
//     index) derives an independent *rand.Rand per event, so results do not
//     depend on the order or concurrency of event processing.
//   - Events rejected before jet enumeration consume no random draws.
//
// A Reconstructor is immutable after New and may be shared across
// goroutines; a *rand.Rand may not.
package reco
