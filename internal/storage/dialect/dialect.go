// Package dialect holds the SQL that differs between the databases backing
// the event store.
package dialect

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// EventColumns are the columns of the events table in insert order. id is the
// primary key and created_at is only written on first insert.
var EventColumns = []string{
	"id", "run", "event", "ccnc", "mode", "interaction_type", "n_particles",
	"mctruth", "gtruth", "mcflux", "created_at",
}

// Dialect describes one database flavour.
type Dialect struct {
	name      string
	driver    string
	timestamp string
	pragmas   []string
	maxConns  int
}

var (
	// SQLite is served by modernc.org/sqlite.
	SQLite = &Dialect{
		name:      "sqlite",
		driver:    "sqlite",
		timestamp: "TIMESTAMP",
		pragmas: []string{
			"PRAGMA journal_mode=WAL",
			"PRAGMA synchronous=NORMAL",
		},
		// one writer at a time
		maxConns: 1,
	}
	// Postgres is served by the pgx stdlib driver.
	Postgres = &Dialect{
		name:      "postgres",
		driver:    "pgx",
		timestamp: "TIMESTAMP WITH TIME ZONE",
	}
)

// ForDriver returns the dialect of a storage driver name.
func ForDriver(name string) (*Dialect, error) {
	switch strings.ToLower(name) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	}
	return nil, fmt.Errorf("unsupported driver: %s", name)
}

// Name is the storage driver name.
func (d *Dialect) Name() string { return d.name }

// DriverName is the database/sql driver to open.
func (d *Dialect) DriverName() string { return d.driver }

// Init returns the statements run once per connection pool.
func (d *Dialect) Init() []string { return d.pragmas }

// MaxOpenConns bounds the connection pool, zero for no bound.
func (d *Dialect) MaxOpenConns() int { return d.maxConns }

// Rebind rewrites ? placeholders into the bind style of the driver.
func (d *Dialect) Rebind(query string) string {
	return sqlx.Rebind(sqlx.BindType(d.driver), query)
}

// Schema returns the statements creating the events table and its indexes.
func (d *Dialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS events (
id TEXT PRIMARY KEY,
run INTEGER NOT NULL,
event INTEGER NOT NULL,
ccnc INTEGER NOT NULL,
mode INTEGER NOT NULL,
interaction_type INTEGER NOT NULL,
n_particles INTEGER NOT NULL,
mctruth TEXT NOT NULL,
gtruth TEXT NOT NULL,
mcflux TEXT,
created_at ` + d.timestamp + ` NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_events_run ON events(run, event)`,
		`CREATE INDEX IF NOT EXISTS idx_events_created ON events(created_at)`,
	}
}

// UpsertEvent returns the insert of one event row, replacing every column
// but created_at when the id exists. Arguments follow EventColumns.
func (d *Dialect) UpsertEvent() string {
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(EventColumns)), ", ")
	var set []string
	for _, col := range EventColumns {
		if col == "id" || col == "created_at" {
			continue
		}
		set = append(set, col+" = excluded."+col)
	}
	return d.Rebind("INSERT INTO events (" + strings.Join(EventColumns, ", ") + ") VALUES (" + marks + ")" +
		" ON CONFLICT (id) DO UPDATE SET " + strings.Join(set, ", "))
}
