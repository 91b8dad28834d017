package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/katalvlaran/ttreco/reco"
)

// Sink buffers outcomes of one run and writes them to a SQLite store in
// batches. It is not safe for concurrent use; batch.Runner serialises
// writes.
type Sink struct {
	db       *SQLite
	run      uuid.UUID
	size     int
	accepted []*reco.Result
	rejected []reco.Outcome
}

// NewSink returns a Sink flushing every size outcomes (size < 1 means 1).
func NewSink(db *SQLite, run uuid.UUID, size int) *Sink {
	return &Sink{db: db, run: run, size: max(size, 1)}
}

// Write buffers out and flushes when the batch is full.
func (s *Sink) Write(ctx context.Context, out reco.Outcome) error {
	if out.Status == reco.Accepted {
		s.accepted = append(s.accepted, out.Result)
	} else {
		s.rejected = append(s.rejected, out)
	}
	if len(s.accepted)+len(s.rejected) >= s.size {
		return s.Flush(ctx)
	}

	return nil
}

// Flush writes any buffered outcomes.
func (s *Sink) Flush(ctx context.Context) error {
	if len(s.accepted) > 0 {
		if err := s.db.Save(ctx, s.run, s.accepted); err != nil {
			return err
		}
		s.accepted = s.accepted[:0]
	}
	if len(s.rejected) > 0 {
		if err := s.db.SaveRejections(ctx, s.run, s.rejected); err != nil {
			return err
		}
		s.rejected = s.rejected[:0]
	}

	return nil
}
