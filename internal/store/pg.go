package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-ledger/internal/domain"
	"github.com/feral-file/ff-ledger/internal/logger"
	"github.com/feral-file/ff-ledger/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the pool of the underlying *sql.DB.
// Zero values fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings.
//
// Defaults (when zero):
//   - MaxOpenConns: 10
//   - MaxIdleConns: 2
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// The ledger worker is a single writer, so the pool stays small.
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns <= 0 {
		maxOpenConns = 10
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 2
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// storeError wraps a driver error so callers can tell infrastructure failures from bad input.
// Data exceptions (class 22) and integrity violations (class 23) will fail again on retry.
func storeError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (strings.HasPrefix(pgErr.Code, "22") || strings.HasPrefix(pgErr.Code, "23")) {
		return fmt.Errorf("failed to %s: %w: %w", op, domain.ErrStoreRejected, err)
	}
	return fmt.Errorf("failed to %s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

// pageLimit maps a non-positive limit to gorm's "no limit"
func pageLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

// getByID loads one row by primary key, returning nil when absent
func getByID[T any](ctx context.Context, db *gorm.DB, id string, op string) (*T, error) {
	var row T
	err := db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeError(op, err)
	}
	return &row, nil
}

// GetAccount retrieves an account by its lowercased address
func (s *pgStore) GetAccount(ctx context.Context, id string) (*schema.Account, error) {
	return getByID[schema.Account](ctx, s.db, id, "get account")
}

// GetContract retrieves a contract by its lowercased address
func (s *pgStore) GetContract(ctx context.Context, id string) (*schema.Contract, error) {
	return getByID[schema.Contract](ctx, s.db, id, "get contract")
}

// GetToken retrieves a token by its token key
func (s *pgStore) GetToken(ctx context.Context, id string) (*schema.Token, error) {
	return getByID[schema.Token](ctx, s.db, id, "get token")
}

// GetBalance retrieves a balance by its balance key
func (s *pgStore) GetBalance(ctx context.Context, id string) (*schema.Balance, error) {
	return getByID[schema.Balance](ctx, s.db, id, "get balance")
}

// GetTransfer retrieves a transfer record by its key
func (s *pgStore) GetTransfer(ctx context.Context, id string) (*schema.Transfer, error) {
	return getByID[schema.Transfer](ctx, s.db, id, "get transfer")
}

// ApplyChangeSet upserts every entity and appends every transfer in one transaction
func (s *pgStore) ApplyChangeSet(ctx context.Context, changes ChangeSet) error {
	if changes.Empty() {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Append transfers first so a re-delivered event rolls back before touching aggregates
		for _, t := range changes.Transfers {
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoNothing: true,
			}).Create(t)
			if res.Error != nil {
				return storeError("append transfer", res.Error)
			}
			if res.RowsAffected == 0 {
				logger.WarnCtx(ctx, "Duplicate transfer detected", zap.String("transfer_id", t.ID))
				return fmt.Errorf("%w: %s", domain.ErrDuplicateTransfer, t.ID)
			}
		}

		// 2. Upsert contracts. Enrichment columns are only written on first insert.
		for _, c := range changes.Contracts {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"total_supply", "updated_at"}),
			}).Create(c).Error; err != nil {
				return storeError("upsert contract", err)
			}
		}

		// 3. Upsert tokens
		for _, t := range changes.Tokens {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"uri", "creator", "mint_timestamp", "total_supply", "updated_at"}),
			}).Create(t).Error; err != nil {
				return storeError("upsert token", err)
			}
		}

		// 4. Upsert accounts
		for _, a := range changes.Accounts {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"total_tokens_owned", "total_erc721_owned", "total_erc1155_owned", "updated_at"}),
			}).Create(a).Error; err != nil {
				return storeError("upsert account", err)
			}
		}

		// 5. Upsert balances
		for _, b := range changes.Balances {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
			}).Create(b).Error; err != nil {
				return storeError("upsert balance", err)
			}
		}

		return nil
	})
}

// GetTokensByContract lists the tokens of a collection ordered by token id
func (s *pgStore) GetTokensByContract(ctx context.Context, contract string, limit int, offset uint64) ([]schema.Token, uint64, error) {
	q := s.db.WithContext(ctx).Model(&schema.Token{}).Where("contract_id = ?", contract)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, storeError("count tokens", err)
	}

	var tokens []schema.Token
	if err := q.Order("token_id ASC").Limit(pageLimit(limit)).Offset(int(offset)).Find(&tokens).Error; err != nil { //nolint:gosec,G115
		return nil, 0, storeError("list tokens", err)
	}

	return tokens, uint64(total), nil //nolint:gosec,G115
}

// GetBalancesByAccount lists the non-zero balances held by an account
func (s *pgStore) GetBalancesByAccount(ctx context.Context, account string, limit int, offset uint64) ([]schema.Balance, uint64, error) {
	return s.listBalances(ctx, "account_id = ?", account, limit, offset)
}

// GetBalancesByToken lists the non-zero holders of a token
func (s *pgStore) GetBalancesByToken(ctx context.Context, tokenID string, limit int, offset uint64) ([]schema.Balance, uint64, error) {
	return s.listBalances(ctx, "token_id = ?", tokenID, limit, offset)
}

func (s *pgStore) listBalances(ctx context.Context, cond string, arg string, limit int, offset uint64) ([]schema.Balance, uint64, error) {
	q := s.db.WithContext(ctx).Model(&schema.Balance{}).Where(cond, arg).Where("amount > 0")

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, storeError("count balances", err)
	}

	var balances []schema.Balance
	if err := q.Order("id ASC").Limit(pageLimit(limit)).Offset(int(offset)).Find(&balances).Error; err != nil { //nolint:gosec,G115
		return nil, 0, storeError("list balances", err)
	}

	return balances, uint64(total), nil //nolint:gosec,G115
}

// GetTransfers lists transfer records in chain order
func (s *pgStore) GetTransfers(ctx context.Context, filter TransferQueryFilter) ([]schema.Transfer, uint64, error) {
	q := s.db.WithContext(ctx).Model(&schema.Transfer{})
	if filter.TokenID != "" {
		q = q.Where("token_id = ?", filter.TokenID)
	}
	if filter.Contract != "" {
		q = q.Where("contract_id = ?", filter.Contract)
	}
	if filter.Account != "" {
		q = q.Where("from_address = ? OR to_address = ?", filter.Account, filter.Account)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, storeError("count transfers", err)
	}

	var transfers []schema.Transfer
	if err := q.Order("block_number ASC, log_index ASC, batch_index ASC").
		Limit(pageLimit(filter.Limit)).
		Offset(int(filter.Offset)). //nolint:gosec,G115
		Find(&transfers).Error; err != nil {
		return nil, 0, storeError("list transfers", err)
	}

	return transfers, uint64(total), nil //nolint:gosec,G115
}
