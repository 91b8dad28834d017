package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/ttreco/event"
)

// ErrBadEvent: a line is not a valid event.
var ErrBadEvent = errors.New("store: bad event")

// maxLine bounds a single JSON line.
const maxLine = 1 << 20

// ReadEvents decodes JSON Lines from r.
//
// Errors: ErrBadEvent with the 1-based line number for malformed JSON,
// unknown fields or failed event validation; read errors as is.
func ReadEvents(r io.Reader) ([]event.Event, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var out []event.Event
	for line := 1; sc.Scan(); line++ {
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		var ev event.Event
		if err := dec.Decode(&ev); err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", line, ErrBadEvent, err)
		}
		if err := ev.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", line, ErrBadEvent, err)
		}
		out = append(out, ev)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("store: read events: %w", err)
	}

	return out, nil
}

// WriteEvents encodes evs to w as JSON Lines.
func WriteEvents(w io.Writer, evs []event.Event) error {
	enc := json.NewEncoder(w)
	for i := range evs {
		if err := enc.Encode(&evs[i]); err != nil {
			return fmt.Errorf("store: write event %d: %w", evs[i].Index, err)
		}
	}

	return nil
}
