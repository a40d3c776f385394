// Package integration runs the partner service against real PostgreSQL and
// Redis instances started with testcontainers.
package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/abstratium/partner/internal/infrastructure/config"
	"github.com/abstratium/partner/internal/infrastructure/migration"
	"github.com/abstratium/partner/internal/infrastructure/persistence"
	"github.com/abstratium/partner/migrations"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	gormlogger "gorm.io/gorm/logger"
)

var (
	// Shared container for all tests in the package
	sharedContainer   testcontainers.Container
	sharedContainerMu sync.Mutex
	sharedConfig      config.DatabaseConfig
)

// TestDB is a migrated PostgreSQL database
type TestDB struct {
	*persistence.Database
	Config    config.DatabaseConfig
	Container testcontainers.Container
	t         *testing.T
}

// NewTestDB starts a fresh PostgreSQL container, applies the embedded
// migrations and connects through persistence.NewDatabase.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	skipIfShort(t)

	container, cfg := startPostgres(t, "partner_test")
	migrateUp(t, cfg)

	tdb := &TestDB{
		Database:  connect(t, cfg),
		Config:    cfg,
		Container: container,
		t:         t,
	}
	t.Cleanup(tdb.Close)
	return tdb
}

// NewSharedTestDB returns a connection to a container shared by the package.
// Tests using it must call CleanTables first.
func NewSharedTestDB(t *testing.T) *TestDB {
	t.Helper()
	skipIfShort(t)

	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	if sharedContainer == nil {
		sharedContainer, sharedConfig = startPostgres(t, "partner_shared_test")
		migrateUp(t, sharedConfig)
	}

	tdb := &TestDB{
		Database:  connect(t, sharedConfig),
		Config:    sharedConfig,
		Container: sharedContainer,
		t:         t,
	}
	t.Cleanup(func() {
		_ = tdb.Database.Close()
	})
	return tdb
}

// Close closes the connection and terminates a non-shared container
func (tdb *TestDB) Close() {
	if err := tdb.Database.Close(); err != nil {
		tdb.t.Logf("Warning: Failed to close database: %v", err)
	}
	if tdb.Container != nil && tdb.Container != sharedContainer {
		if err := tdb.Container.Terminate(context.Background()); err != nil {
			tdb.t.Logf("Warning: Failed to terminate container: %v", err)
		}
	}
}

// CleanTables truncates every partner table and resets the number sequence
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()

	var tables []string
	err := tdb.DB.Raw(`
		SELECT tablename FROM pg_tables
		WHERE schemaname = 'public'
		AND tablename NOT IN ('partner_schema_migrations', 'partner_sequences')
	`).Scan(&tables).Error
	require.NoError(tdb.t, err, "Failed to get table names")

	for _, table := range tables {
		require.NoError(tdb.t, tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error)
	}
	require.NoError(tdb.t, tdb.DB.Exec("UPDATE partner_sequences SET last_value = 0").Error)
}

// CleanupSharedContainer terminates the shared container; call it from TestMain
func CleanupSharedContainer() {
	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	if sharedContainer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = sharedContainer.Terminate(ctx)
		sharedContainer = nil
		sharedConfig = config.DatabaseConfig{}
	}
}

// OpenSQL opens a plain database/sql handle on the test database
func (tdb *TestDB) OpenSQL() *sql.DB {
	tdb.t.Helper()
	sqlDB, err := sql.Open("postgres", tdb.Config.DSN())
	require.NoError(tdb.t, err)
	return sqlDB
}

func skipIfShort(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test needs docker")
	}
}

func startPostgres(t *testing.T, dbName string) (testcontainers.Container, config.DatabaseConfig) {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase(dbName),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("partner123"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return container, config.DatabaseConfig{
		Driver:          config.DriverPostgres,
		Host:            host,
		Port:            port.Int(),
		User:            "postgres",
		Password:        "partner123",
		DBName:          dbName,
		SSLMode:         "disable",
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5,
		ConnMaxIdleTime: 1,
	}
}

// migrateUp applies the embedded migrations over a dedicated connection
func migrateUp(t *testing.T, cfg config.DatabaseConfig) {
	t.Helper()

	sqlDB, err := sql.Open("postgres", cfg.DSN())
	require.NoError(t, err)

	m, err := migration.New(sqlDB, migrations.FS, zaptest.NewLogger(t, zaptest.Level(zap.WarnLevel)))
	require.NoError(t, err, "Failed to create migrator")
	defer func() { _ = m.Close() }()

	require.NoError(t, m.Up(), "Failed to run migrations")
}

func connect(t *testing.T, cfg config.DatabaseConfig) *persistence.Database {
	t.Helper()

	level := gormlogger.Silent
	if os.Getenv("TEST_DB_DEBUG") != "" {
		level = gormlogger.Info
	}
	db, err := persistence.NewDatabase(&cfg, persistence.WithLogger(gormlogger.Default.LogMode(level)))
	require.NoError(t, err, "Failed to connect to database")
	return db
}
