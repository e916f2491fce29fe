package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lzww0608/xuuid"
	"github.com/Lzww0608/xuuid/node"
)

var fixedNow = time.UnixMilli(1700000000000).UTC()

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), Config{Driver: DriverSQLite, DSN: ":memory:"},
		WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newGenerator(t *testing.T, seed uint64) *xuuid.Generator {
	t.Helper()
	mac, err := node.Parse("02:42:ac:11:00:02")
	require.NoError(t, err)
	gen, err := xuuid.NewGenerator(
		xuuid.WithSeed(seed),
		xuuid.WithNodeProvider(node.Static(mac)),
		xuuid.WithClock(func() time.Time { return fixedNow }),
	)
	require.NoError(t, err)
	return gen
}

func TestStore_RecordAndGet(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)
	gen := newGenerator(t, 42)

	id, err := gen.NewV7()
	require.NoError(t, err)
	require.NoError(t, s.Record(ctx, id))

	e, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, e.ID)
	assert.Equal(t, xuuid.VersionTimeSorted, e.Version)
	assert.Equal(t, xuuid.VariantRFC4122, e.Variant)
	assert.True(t, e.UnixMs.Valid)
	assert.Equal(t, int64(1700000000000), e.UnixMs.Int64)
	assert.Equal(t, id.Summary(), e.Summary)
	assert.True(t, fixedNow.Equal(e.CreatedAt))
}

func TestStore_RecordNameBasedHasNoTimestamp(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	id := xuuid.NewV5(xuuid.NamespaceDNS, "example.com")
	require.NoError(t, s.Record(ctx, id))

	e, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, e.UnixMs.Valid)
	assert.Equal(t, xuuid.VersionNameBasedSHA1, e.Version)
}

func TestStore_Duplicate(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	id := newGenerator(t, 1).NewV4()
	require.NoError(t, s.Record(ctx, id))

	err := s.Record(ctx, id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicate), "got %v", err)
}

func TestStore_GetNotFound(t *testing.T) {
	s := openMemory(t)

	_, err := s.Get(context.Background(), xuuid.NewV3(xuuid.NamespaceURL, "missing"))
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestStore_ListAndCount(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)
	gen := newGenerator(t, 7)

	var v4s []xuuid.UUID
	for i := 0; i < 3; i++ {
		id := gen.NewV4()
		v4s = append(v4s, id)
		require.NoError(t, s.Record(ctx, id))
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, s.Record(ctx, xuuid.NewV5(xuuid.NamespaceDNS, fmt.Sprintf("host-%d", i))))
	}

	all, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.True(t, strings.Compare(all[i-1].ID.String(), all[i].ID.String()) < 0, "list not ordered by id")
	}

	onlyV4, err := s.List(ctx, Filter{Version: xuuid.VersionRandom})
	require.NoError(t, err)
	require.Len(t, onlyV4, 3)
	got := make(map[xuuid.UUID]bool)
	for _, e := range onlyV4 {
		got[e.ID] = true
	}
	for _, id := range v4s {
		assert.True(t, got[id], "missing %s", id)
	}

	limited, err := s.List(ctx, Filter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
	assert.Equal(t, all[0].ID, limited[0].ID)

	counts, err := s.CountByVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[xuuid.Version]int{
		xuuid.VersionRandom:        3,
		xuuid.VersionNameBasedSHA1: 2,
	}, counts)
}

func TestStore_ListEmpty(t *testing.T) {
	entries, err := openMemory(t).List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_MigrateIdempotent(t *testing.T) {
	s := openMemory(t)
	require.NoError(t, s.Migrate(context.Background()))
	require.NoError(t, s.Migrate(context.Background()))
}

func TestConfig_DataSource(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		name, dsn, err := Config{Driver: DriverSQLite, DSN: "file:test.db"}.DataSource()
		require.NoError(t, err)
		assert.Equal(t, "sqlite", name)
		assert.Equal(t, "file:test.db", dsn)
	})

	t.Run("sqlite without dsn", func(t *testing.T) {
		_, _, err := Config{Driver: DriverSQLite}.DataSource()
		assert.Error(t, err)
	})

	t.Run("mysql from parts", func(t *testing.T) {
		name, dsn, err := Config{
			Driver:   DriverMySQL,
			Addr:     "db.internal:3306",
			User:     "ids",
			Password: "secret",
			Database: "registry",
		}.DataSource()
		require.NoError(t, err)
		assert.Equal(t, "mysql", name)

		parsed, err := mysql.ParseDSN(dsn)
		require.NoError(t, err)
		assert.Equal(t, "tcp", parsed.Net)
		assert.Equal(t, "db.internal:3306", parsed.Addr)
		assert.Equal(t, "ids", parsed.User)
		assert.Equal(t, "secret", parsed.Passwd)
		assert.Equal(t, "registry", parsed.DBName)
	})

	t.Run("mysql dsn", func(t *testing.T) {
		_, dsn, err := Config{Driver: DriverMySQL, DSN: "lzww:123456@tcp(127.0.0.1:3306)/test_db"}.DataSource()
		require.NoError(t, err)
		parsed, err := mysql.ParseDSN(dsn)
		require.NoError(t, err)
		assert.Equal(t, "test_db", parsed.DBName)
		assert.Equal(t, "lzww", parsed.User)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, _, err := Config{Driver: "postgres"}.DataSource()
		assert.True(t, errors.Is(err, ErrUnsupportedDriver))
	})
}

func TestIsDuplicate_MySQL(t *testing.T) {
	err := fmt.Errorf("exec: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	assert.True(t, isDuplicate(err))
	assert.False(t, isDuplicate(&mysql.MySQLError{Number: 1045}))
	assert.False(t, isDuplicate(errors.New("boom")))
}
