package database

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	dbdriver "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	src "github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct{ upErr, downErr error }

func (f fakeMigrator) Up() error   { return f.upErr }
func (f fakeMigrator) Down() error { return f.downErr }

func restore() {
	pgxpoolNew = pgxpool.New
	sqlOpenDB = sql.Open
	postgresWithInstanceFn = postgres.WithInstance
	iofsNewFn = iofs.New
	migrateNewWithInstance = func(sourceName string, sourceDriver src.Driver, databaseName string, databaseDriver dbdriver.Driver) (migrateInstance, error) {
		m, err := migrate.NewWithInstance(sourceName, sourceDriver, databaseName, databaseDriver)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}

// stubMigrationChain 讓整條建立流程成功並回傳指定的 migrator
func stubMigrationChain(m migrateInstance) {
	sqlOpenDB = func(string, string) (*sql.DB, error) { return sql.Open("pgx", "") }
	postgresWithInstanceFn = func(*sql.DB, *postgres.Config) (dbdriver.Driver, error) { return nil, nil }
	iofsNewFn = func(fs.FS, string) (src.Driver, error) { return nil, nil }
	migrateNewWithInstance = func(string, src.Driver, string, dbdriver.Driver) (migrateInstance, error) { return m, nil }
}

func TestNewPgxPool(t *testing.T) {
	t.Cleanup(restore)
	pgxpoolNew = func(ctx context.Context, url string) (*pgxpool.Pool, error) { return nil, errors.New("bad") }
	_, err := NewPgxPool(context.Background(), "url")
	require.Error(t, err)

	pgxpoolNew = func(ctx context.Context, url string) (*pgxpool.Pool, error) { return &pgxpool.Pool{}, nil }
	db, err := NewPgxPool(context.Background(), "url")
	require.NoError(t, err)
	require.NotNil(t, db)
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.Contains(t, names, "000001_create_users.up.sql")
	require.Contains(t, names, "000002_create_blogs.up.sql")
	require.Contains(t, names, "000002_create_blogs.down.sql")

	// 同一時間建立的文章以 seq 決定順序
	up, err := fs.ReadFile(migrationsFS, "migrations/000002_create_blogs.up.sql")
	require.NoError(t, err)
	require.Contains(t, string(up), "seq        BIGSERIAL NOT NULL")
	require.Contains(t, string(up), "(created_at DESC, seq DESC)")
}

func TestNewMigratorErrors(t *testing.T) {
	for _, run := range []func(string) error{RunMigrations, RollbackAll} {
		restore()
		sqlOpenDB = func(string, string) (*sql.DB, error) { return nil, errors.New("open") }
		require.Error(t, run("url"))

		stubMigrationChain(fakeMigrator{})
		postgresWithInstanceFn = func(*sql.DB, *postgres.Config) (dbdriver.Driver, error) { return nil, errors.New("drv") }
		require.Error(t, run("url"))

		stubMigrationChain(fakeMigrator{})
		iofsNewFn = func(fs.FS, string) (src.Driver, error) { return nil, errors.New("src") }
		require.Error(t, run("url"))

		stubMigrationChain(fakeMigrator{})
		migrateNewWithInstance = func(string, src.Driver, string, dbdriver.Driver) (migrateInstance, error) {
			return nil, errors.New("mig")
		}
		require.Error(t, run("url"))
	}
	restore()
}

func TestRunMigrations(t *testing.T) {
	t.Cleanup(restore)

	stubMigrationChain(fakeMigrator{upErr: errors.New("u")})
	require.Error(t, RunMigrations("url"))

	stubMigrationChain(fakeMigrator{upErr: migrate.ErrNoChange})
	require.NoError(t, RunMigrations("url"))

	stubMigrationChain(fakeMigrator{})
	require.NoError(t, RunMigrations("url"))
}

func TestRollbackAll(t *testing.T) {
	t.Cleanup(restore)

	stubMigrationChain(fakeMigrator{downErr: errors.New("d")})
	require.Error(t, RollbackAll("url"))

	stubMigrationChain(fakeMigrator{downErr: migrate.ErrNoChange})
	require.NoError(t, RollbackAll("url"))

	stubMigrationChain(fakeMigrator{})
	require.NoError(t, RollbackAll("url"))
}
