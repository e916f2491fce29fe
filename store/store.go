// Package store keeps a registry of issued UUIDs in a SQL database. SQLite
// (modernc.org/sqlite) and MySQL (github.com/go-sql-driver/mysql) are
// supported; both speak the same schema and placeholder syntax.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Lzww0608/xuuid"
)

var (
	// ErrNotFound indicates that the UUID is not registered
	ErrNotFound = errors.New("store: uuid not found")

	// ErrDuplicate indicates that the UUID is already registered
	ErrDuplicate = errors.New("store: uuid already registered")

	// ErrUnsupportedDriver indicates an unknown driver name in Config
	ErrUnsupportedDriver = errors.New("store: unsupported driver")
)

// Driver names a supported database.
type Driver string

const (
	DriverSQLite Driver = "sqlite"
	DriverMySQL  Driver = "mysql"
)

const mysqlDuplicateEntry = 1062

const schema = `CREATE TABLE IF NOT EXISTS uuid_registry (
	id CHAR(36) NOT NULL PRIMARY KEY,
	version INTEGER NOT NULL,
	variant INTEGER NOT NULL,
	unix_ms BIGINT NULL,
	summary TEXT NOT NULL,
	created_at BIGINT NOT NULL
)`

// Config selects and addresses the database. For MySQL an empty DSN is
// assembled from Addr, User, Password and Database.
type Config struct {
	Driver   Driver `env:"DRIVER" envDefault:"sqlite"`
	DSN      string `env:"DSN" envDefault:"file:xuuid.db"`
	Addr     string `env:"ADDR" envDefault:"127.0.0.1:3306"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	Database string `env:"DATABASE" envDefault:"xuuid"`
}

// DataSource returns the driver name and connection string for cfg.
func (c Config) DataSource() (string, string, error) {
	switch c.Driver {
	case DriverSQLite:
		if c.DSN == "" {
			return "", "", fmt.Errorf("sqlite: dsn is required")
		}
		return string(DriverSQLite), c.DSN, nil
	case DriverMySQL:
		var cfg *mysql.Config
		if c.DSN != "" {
			parsed, err := mysql.ParseDSN(c.DSN)
			if err != nil {
				return "", "", fmt.Errorf("mysql: parse dsn: %w", err)
			}
			cfg = parsed
		} else {
			cfg = mysql.NewConfig()
			cfg.Net = "tcp"
			cfg.Addr = c.Addr
			cfg.User = c.User
			cfg.Passwd = c.Password
			cfg.DBName = c.Database
		}
		return string(DriverMySQL), cfg.FormatDSN(), nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.Driver)
	}
}

// Entry is one registered UUID.
type Entry struct {
	ID        xuuid.UUID
	Version   xuuid.Version
	Variant   xuuid.Variant
	UnixMs    sql.NullInt64
	Summary   string
	CreatedAt time.Time
}

// Filter narrows List. A zero Version matches every version; a
// non-positive Limit means no limit.
type Filter struct {
	Version xuuid.Version
	Limit   int
}

// Store is a UUID registry backed by database/sql.
type Store struct {
	db     *sql.DB
	driver Driver
	logger zerolog.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for registry events.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock replaces time.Now for created_at values.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open connects to the database described by cfg and creates the schema.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	driverName, dsn, err := cfg.DataSource()
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driverName, err)
	}
	switch cfg.Driver {
	case DriverSQLite:
		// Each connection to an in-memory database sees its own copy.
		db.SetMaxOpenConns(1)
	case DriverMySQL:
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(time.Hour)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driverName, err)
	}

	s := New(db, cfg.Driver, opts...)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database handle.
func New(db *sql.DB, driver Driver, opts ...Option) *Store {
	s := &Store{
		db:     db,
		driver: driver,
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Migrate creates the registry table when it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Record registers id together with its decoded metadata.
func (s *Store) Record(ctx context.Context, id xuuid.UUID) error {
	var unixMs sql.NullInt64
	switch id.Version() {
	case xuuid.VersionTimeBased, xuuid.VersionDCESecurity, xuuid.VersionReordered, xuuid.VersionTimeSorted:
		unixMs = sql.NullInt64{Int64: id.Timestamp(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO uuid_registry (id, version, variant, unix_ms, summary, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, int(id.Version()), int(id.Variant()), unixMs, id.Summary(), s.now().UnixMilli())
	if err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("%w: %s", ErrDuplicate, id)
		}
		return fmt.Errorf("record %s: %w", id, err)
	}
	s.logger.Debug().Str("id", id.String()).Int("version", int(id.Version())).Msg("uuid recorded")
	return nil
}

// Get returns the entry registered for id.
func (s *Store) Get(ctx context.Context, id xuuid.UUID) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, version, variant, unix_ms, summary, created_at FROM uuid_registry WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get %s: %w", id, err)
	}
	return e, nil
}

// List returns registered entries ordered by id.
func (s *Store) List(ctx context.Context, f Filter) ([]Entry, error) {
	var (
		sb   strings.Builder
		args []interface{}
	)
	sb.WriteString(`SELECT id, version, variant, unix_ms, summary, created_at FROM uuid_registry`)
	if f.Version != xuuid.VersionUnknown {
		sb.WriteString(` WHERE version = ?`)
		args = append(args, int(f.Version))
	}
	sb.WriteString(` ORDER BY id`)
	if f.Limit > 0 {
		sb.WriteString(` LIMIT ?`)
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("list: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return entries, nil
}

// CountByVersion returns how many UUIDs of each version are registered.
func (s *Store) CountByVersion(ctx context.Context) (map[xuuid.Version]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT version, COUNT(*) FROM uuid_registry GROUP BY version`)
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	defer rows.Close()

	counts := make(map[xuuid.Version]int)
	for rows.Next() {
		var version, n int
		if err := rows.Scan(&version, &n); err != nil {
			return nil, fmt.Errorf("count: %w", err)
		}
		counts[xuuid.Version(version)] = n
	}
	return counts, rows.Err()
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (Entry, error) {
	var (
		e                Entry
		version, variant int
		createdAt        int64
	)
	if err := row.Scan(&e.ID, &version, &variant, &e.UnixMs, &e.Summary, &createdAt); err != nil {
		return Entry{}, err
	}
	e.Version = xuuid.Version(version)
	e.Variant = xuuid.Variant(variant)
	e.CreatedAt = time.UnixMilli(createdAt).UTC()
	return e, nil
}

func isDuplicate(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
