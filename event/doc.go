// Package event defines the read-only per-event input records of the
// reconstruction: selected electrons and muons, b-tagged jets and the
// measured missing transverse momentum, together with the physical
// constants shared by every stage.
//
// Records arrive already filtered by analysis-level selection cuts; the
// reconstruction never mutates them.
package event
