// Package sqldb is the SQL implementation of storage.TruthStore. It supports
// SQLite through modernc.org/sqlite and PostgreSQL through pgx.
package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nugen/evgb/internal/simb"
	"github.com/nugen/evgb/internal/storage"
	"github.com/nugen/evgb/internal/storage/dialect"
)

// Store persists translated events in a single events table, with the truth
// records held as JSON documents.
type Store struct {
	db      *sqlx.DB
	dialect *dialect.Dialect
	cache   *lru.Cache[string, eventRow]
}

var _ storage.TruthStore = (*Store)(nil)

// Config holds database connection configuration
type Config struct {
	Driver string // sqlite or postgres
	DSN    string // data source name / connection string
	// CacheSize is the number of events kept in the read cache; zero disables it
	CacheSize int
}

// New creates a new SQL store with the specified configuration.
func New(cfg Config) (*Store, error) {
	d, err := dialect.ForDriver(cfg.Driver)
	if err != nil {
		return nil, fmt.Errorf("unsupported database driver: %w", err)
	}

	db, err := sqlx.Open(d.DriverName(), strings.TrimSpace(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(d.MaxOpenConns())

	for _, stmt := range d.Init() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute pragma: %w", err)
		}
	}

	store := &Store{db: db, dialect: d}
	if cfg.CacheSize > 0 {
		cache, err := lru.New[string, eventRow](cfg.CacheSize)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create cache: %w", err)
		}
		store.cache = cache
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// NewSQLite creates a SQLite store without read cache.
func NewSQLite(dsn string) (*Store, error) {
	return New(Config{Driver: "sqlite", DSN: dsn})
}

// Dialect returns the dialect being used
func (s *Store) Dialect() *dialect.Dialect {
	return s.dialect
}

func (s *Store) initSchema() error {
	for _, stmt := range s.dialect.Schema() {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}

type eventRow struct {
	ID              string         `db:"id"`
	Run             int            `db:"run"`
	Event           int            `db:"event"`
	CCNC            int            `db:"ccnc"`
	Mode            int            `db:"mode"`
	InteractionType int            `db:"interaction_type"`
	NParticles      int            `db:"n_particles"`
	MCTruth         string         `db:"mctruth"`
	GTruth          string         `db:"gtruth"`
	MCFlux          sql.NullString `db:"mcflux"`
	CreatedAt       time.Time      `db:"created_at"`
}

func encode(e *storage.EventTruth) (eventRow, error) {
	sum := e.Summary()
	row := eventRow{
		ID:              e.ID,
		Run:             e.Run,
		Event:           e.Event,
		CCNC:            int(sum.CCNC),
		Mode:            int(sum.Mode),
		InteractionType: sum.InteractionType,
		NParticles:      sum.NParticles,
		CreatedAt:       e.CreatedAt,
	}

	mct, err := json.Marshal(e.MCTruth)
	if err != nil {
		return eventRow{}, fmt.Errorf("failed to marshal mctruth: %w", err)
	}
	row.MCTruth = string(mct)

	gt, err := json.Marshal(e.GTruth)
	if err != nil {
		return eventRow{}, fmt.Errorf("failed to marshal gtruth: %w", err)
	}
	row.GTruth = string(gt)

	if e.MCFlux != nil {
		flux, err := json.Marshal(e.MCFlux)
		if err != nil {
			return eventRow{}, fmt.Errorf("failed to marshal mcflux: %w", err)
		}
		row.MCFlux = sql.NullString{String: string(flux), Valid: true}
	}
	return row, nil
}

func (r *eventRow) decode() (*storage.EventTruth, error) {
	e := &storage.EventTruth{
		ID:        r.ID,
		Run:       r.Run,
		Event:     r.Event,
		MCTruth:   &simb.MCTruth{},
		GTruth:    &simb.GTruth{},
		CreatedAt: r.CreatedAt,
	}
	if err := json.Unmarshal([]byte(r.MCTruth), e.MCTruth); err != nil {
		return nil, fmt.Errorf("failed to unmarshal mctruth: %w", err)
	}
	if err := json.Unmarshal([]byte(r.GTruth), e.GTruth); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gtruth: %w", err)
	}
	if r.MCFlux.Valid {
		e.MCFlux = &simb.MCFlux{}
		if err := json.Unmarshal([]byte(r.MCFlux.String), e.MCFlux); err != nil {
			return nil, fmt.Errorf("failed to unmarshal mcflux: %w", err)
		}
	}
	return e, nil
}

// SaveEvent inserts e, replacing any event with the same id. The creation
// time of a replaced event is kept and written back to e.CreatedAt.
func (s *Store) SaveEvent(ctx context.Context, e *storage.EventTruth) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	row, err := encode(e)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, s.dialect.UpsertEvent(),
		row.ID, row.Run, row.Event, row.CCNC, row.Mode, row.InteractionType, row.NParticles,
		row.MCTruth, row.GTruth, row.MCFlux, row.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}

	var created time.Time
	if err := tx.GetContext(ctx, &created, s.dialect.Rebind(`SELECT created_at FROM events WHERE id = ?`), row.ID); err != nil {
		return fmt.Errorf("failed to read creation time: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit save: %w", err)
	}
	e.CreatedAt = created

	if s.cache != nil {
		s.cache.Remove(e.ID)
	}
	return nil
}

// GetEvent returns the event with the given id.
func (s *Store) GetEvent(ctx context.Context, id string) (*storage.EventTruth, error) {
	if s.cache != nil {
		if row, ok := s.cache.Get(id); ok {
			return row.decode()
		}
	}

	query := s.dialect.Rebind(`SELECT id, run, event, ccnc, mode, interaction_type, n_particles, mctruth, gtruth, mcflux, created_at
	          FROM events WHERE id = ?`)

	var row eventRow
	err := s.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	if s.cache != nil {
		s.cache.Add(id, row)
	}
	return row.decode()
}

// ListEvents returns event summaries, newest first.
func (s *Store) ListEvents(ctx context.Context, opts storage.ListOptions) ([]*storage.EventSummary, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = storage.DefaultListLimit
	}

	var (
		where string
		args  []any
	)
	if opts.Run != nil {
		where = "WHERE run = ?"
		args = append(args, *opts.Run)
	}
	args = append(args, limit, opts.Offset)

	query := s.dialect.Rebind(`SELECT id, run, event, ccnc, mode, interaction_type, n_particles, created_at
	          FROM events ` + where + `
	          ORDER BY created_at DESC, id DESC
	          LIMIT ? OFFSET ?`)

	summaries := []*storage.EventSummary{}
	if err := s.db.SelectContext(ctx, &summaries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return summaries, nil
}

// DeleteEvent removes the event with the given id.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	query := s.dialect.Rebind(`DELETE FROM events WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if s.cache != nil {
		s.cache.Remove(id)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
