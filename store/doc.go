// Package store handles event ingestion and result persistence.
//
// Events are read from JSON Lines, one event.Event object per line. Blank
// lines are skipped; unknown fields are rejected.
//
// Results live in SQLite (modernc.org/sqlite, pure Go). Every
// reconstruction run gets a UUID and keeps its configuration. Accepted
// events are stored as their fixed-width record plus the winning
// hypothesis; rejected events keep their reason and stage.
//
// Record layout:
//
//	34 little-endian float64 values: eight four-momenta (px, py, pz, E) in
//	reco.Names order, then the event index, then the weight. The winning
//	candidate index has its own column; Results checks that the event index
//	inside the blob matches its row (ErrCorruptRecord otherwise).
//
// Concurrency:
//
//	SQLite is opened with a single connection and WAL journaling. Sink is
//	not safe for concurrent use; batch.Runner serialises its calls.
package store
