package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/feral-file/ff-ledger/internal/domain"
	"github.com/feral-file/ff-ledger/internal/store/schema"
)

// ledgerDB is shared by the postgres suite; nil when no database could be reached
var ledgerDB *gorm.DB

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// externalDSN returns a DSN built from TEST_DB_* when TEST_DB_HOST is set
func externalDSN() (string, bool) {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		return "", false
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host,
		envOr("TEST_DB_PORT", "5432"),
		envOr("TEST_DB_USER", "postgres"),
		envOr("TEST_DB_PASSWORD", "postgres"),
		envOr("TEST_DB_NAME", "ledger_test"),
	), true
}

// startLedgerContainer runs a throwaway postgres and returns its DSN
func startLedgerContainer(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("ledger_test"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, "", err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, "", err
	}
	return container, dsn, nil
}

// openLedgerDB connects and loads db/init_pg_db.sql
func openLedgerDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	ddl, err := os.ReadFile(filepath.Join("..", "..", "db", "init_pg_db.sql")) //nolint:gosec,G304
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	if err := db.Exec(string(ddl)).Error; err != nil {
		return nil, fmt.Errorf("failed to execute schema: %w", err)
	}

	return db, nil
}

func TestMain(m *testing.M) {
	ctx := context.Background()

	var container *postgres.PostgresContainer
	dsn, ok := externalDSN()
	if !ok {
		var err error
		container, dsn, err = startLedgerContainer(ctx)
		if err != nil {
			// The memory store suite still runs; TestPostgreSQLStore skips
			fmt.Printf("PostgreSQL container unavailable: %v\n", err)
			os.Exit(m.Run())
		}
	}

	db, err := openLedgerDB(dsn)
	if err != nil {
		fmt.Printf("Failed to prepare ledger database: %v\n", err)
		if container != nil {
			_ = container.Terminate(ctx)
		}
		os.Exit(1)
	}
	ledgerDB = db

	code := m.Run()

	if container != nil {
		if err := container.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
		}
	}
	os.Exit(code)
}

// newPGTestStore wraps each test in a transaction that is rolled back afterwards
func newPGTestStore(t *testing.T) Store {
	tx := ledgerDB.Begin()
	require.NoError(t, tx.Error)
	t.Cleanup(func() {
		tx.Rollback()
	})

	return NewPGStore(tx)
}

func TestPostgreSQLStore(t *testing.T) {
	if ledgerDB == nil {
		t.Skip("PostgreSQL not available")
	}

	RunStoreTests(t, newPGTestStore, func(*testing.T) {})
}

func TestStoreError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{name: "invalid byte sequence", err: &pgconn.PgError{Code: "22021"}, expected: domain.ErrStoreRejected},
		{name: "numeric out of range", err: &pgconn.PgError{Code: "22003"}, expected: domain.ErrStoreRejected},
		{name: "not null violation", err: &pgconn.PgError{Code: "23502"}, expected: domain.ErrStoreRejected},
		{name: "connection failure", err: &pgconn.PgError{Code: "08006"}, expected: domain.ErrStoreUnavailable},
		{name: "serialization failure", err: &pgconn.PgError{Code: "40001"}, expected: domain.ErrStoreUnavailable},
		{name: "driver error", err: errors.New("connection refused"), expected: domain.ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := storeError("upsert contract", fmt.Errorf("wrapped: %w", tt.err))
			assert.ErrorIs(t, err, tt.expected)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestPostgreSQLStore_InvalidUTF8Rejected(t *testing.T) {
	if ledgerDB == nil {
		t.Skip("PostgreSQL not available")
	}
	s := newPGTestStore(t)

	err := s.ApplyChangeSet(context.Background(), ChangeSet{
		Contracts: []*schema.Contract{{
			ID:          "0x9ca8887d13bc4591ae36972702fdf9de2c97957f",
			Standard:    domain.StandardERC1155,
			Name:        "Bad\xffName",
			TotalSupply: decimal.Zero,
		}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreRejected)
	assert.NotErrorIs(t, err, domain.ErrStoreUnavailable)
}
