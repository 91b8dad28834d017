package store

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/ttreco/reco"
)

// ErrUnknownRun: no run with the given id.
var ErrUnknownRun = errors.New("store: unknown run")

// ErrCorruptRecord: a stored record blob disagrees with its row.
var ErrCorruptRecord = errors.New("store: corrupt record")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	config_json TEXT NOT NULL,
	created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS results (
	run_id     TEXT NOT NULL,
	event      INTEGER NOT NULL,
	candidate  INTEGER NOT NULL,
	weight     REAL NOT NULL,
	eta_t      REAL NOT NULL,
	eta_tbar   REAL NOT NULL,
	m_t        REAL NOT NULL,
	record     BLOB NOT NULL,
	PRIMARY KEY (run_id, event),
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);

CREATE TABLE IF NOT EXISTS rejections (
	run_id  TEXT NOT NULL,
	event   INTEGER NOT NULL,
	reason  TEXT NOT NULL,
	stage   TEXT NOT NULL,
	PRIMARY KEY (run_id, event),
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);
`

// SQLite persists runs and their results.
type SQLite struct {
	db *sql.DB
}

// Open opens (or creates) the database at dsn and applies the schema.
// ":memory:" gives a private in-memory database.
func Open(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// one connection: SQLite has a single writer and :memory: is per connection
	db.SetMaxOpenConns(1)
	for _, stmt := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON", schema} {
		if _, err = db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error { return s.db.Close() }

// BeginRun registers a new run with its configuration snapshot.
func (s *SQLite) BeginRun(ctx context.Context, configJSON []byte) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, config_json, created_at) VALUES (?, ?, ?)`,
		id.String(), string(configJSON), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert run: %w", err)
	}

	return id, nil
}

// RunInfo describes a stored run.
type RunInfo struct {
	ID        uuid.UUID
	Config    string
	CreatedAt time.Time
}

// LatestRun returns the most recently created run.
func (s *SQLite) LatestRun(ctx context.Context) (RunInfo, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT run_id, config_json, created_at FROM runs ORDER BY rowid DESC LIMIT 1`)

	return scanRun(row)
}

// Run returns the run with the given id.
func (s *SQLite) Run(ctx context.Context, id uuid.UUID) (RunInfo, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT run_id, config_json, created_at FROM runs WHERE run_id = ?`, id.String())

	return scanRun(row)
}

func scanRun(row *sql.Row) (RunInfo, error) {
	var id, cfg, created string
	if err := row.Scan(&id, &cfg, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunInfo{}, ErrUnknownRun
		}
		return RunInfo{}, fmt.Errorf("scan run: %w", err)
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return RunInfo{}, fmt.Errorf("parse run id: %w", err)
	}
	at, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return RunInfo{}, fmt.Errorf("parse created_at: %w", err)
	}

	return RunInfo{ID: uid, Config: cfg, CreatedAt: at}, nil
}

// Save stores accepted results of run in one transaction.
func (s *SQLite) Save(ctx context.Context, run uuid.UUID, results []*reco.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO results (run_id, event, candidate, weight, eta_t, eta_tbar, m_t, record)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		_, err = stmt.ExecContext(ctx,
			run.String(), r.Event, r.Index, r.Weight, r.EtaTop, r.EtaAntiTop, r.MassTop, encodeRecord(r.Record()))
		if err != nil {
			return fmt.Errorf("insert result %d: %w", r.Event, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

// SaveRejections stores rejected outcomes of run in one transaction.
func (s *SQLite) SaveRejections(ctx context.Context, run uuid.UUID, outs []reco.Outcome) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, o := range outs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO rejections (run_id, event, reason, stage) VALUES (?, ?, ?, ?)`,
			run.String(), o.Index, o.Reason.String(), o.Stage.String())
		if err != nil {
			return fmt.Errorf("insert rejection %d: %w", o.Index, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

// Results returns the accepted results of run ordered by event index.
func (s *SQLite) Results(ctx context.Context, run uuid.UUID) ([]*reco.Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT event, candidate, eta_t, eta_tbar, m_t, record FROM results WHERE run_id = ? ORDER BY event`,
		run.String())
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []*reco.Result
	for rows.Next() {
		var (
			idx         int64
			cand        int
			et, etb, mt float64
			blob        []byte
		)
		if err = rows.Scan(&idx, &cand, &et, &etb, &mt, &blob); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		rec, err := decodeRecord(blob)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", idx, err)
		}
		r := reco.FromRecord(rec)
		if r.Event != idx {
			return nil, fmt.Errorf("event %d: record carries %d: %w", idx, r.Event, ErrCorruptRecord)
		}
		r.Index = cand
		r.EtaTop, r.EtaAntiTop, r.MassTop = et, etb, mt
		out = append(out, r)
	}

	return out, rows.Err()
}

// Rejections returns the rejection count per reason for run.
func (s *SQLite) Rejections(ctx context.Context, run uuid.UUID) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT reason, COUNT(*) FROM rejections WHERE run_id = ? GROUP BY reason`, run.String())
	if err != nil {
		return nil, fmt.Errorf("query rejections: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			reason string
			n      int
		)
		if err = rows.Scan(&reason, &n); err != nil {
			return nil, fmt.Errorf("scan rejection: %w", err)
		}
		out[reason] = n
	}

	return out, rows.Err()
}

func encodeRecord(rec [reco.RecordWidth]float64) []byte {
	buf := make([]byte, 8*len(rec))
	for i, v := range rec {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

func decodeRecord(buf []byte) ([reco.RecordWidth]float64, error) {
	var rec [reco.RecordWidth]float64
	if len(buf) != 8*len(rec) {
		return rec, fmt.Errorf("record blob of %d bytes: %w", len(buf), ErrCorruptRecord)
	}
	for i := range rec {
		rec[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[i*8:]))
	}
	return rec, nil
}
