// Package leptons picks the dilepton pair of an event and assigns each
// lepton to a decay branch.
//
// Accepted multiplicities (checked in this order):
//
//	total < 2            → ErrTooFewLeptons
//	exactly 2 electrons  → opposite sign required, electron mass for both
//	exactly 2 muons      → opposite sign required, muon mass for both
//	1 electron + 1 muon  → opposite sign required, per-flavour masses
//	anything else        → ErrMultiplicity
//
// The first matching rule wins, so three leptons are not rejected outright:
// two electrons plus a muon reconstruct the ee pair and ignore the muon, one
// electron plus two muons reconstruct the μμ pair. Only counts that match no
// rule are ErrMultiplicity.
//
// A same-sign pair yields ErrSameSign. The positively charged lepton feeds
// the particle (top) branch, the negative one the antiparticle branch.
package leptons
