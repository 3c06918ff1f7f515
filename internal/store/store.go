package store

import (
	"context"

	"github.com/feral-file/ff-ledger/internal/store/schema"
)

// ChangeSet is every row touched while folding one source event.
// It is committed atomically: either all of it lands or none of it does.
type ChangeSet struct {
	Contracts []*schema.Contract
	Tokens    []*schema.Token
	Accounts  []*schema.Account
	Balances  []*schema.Balance
	// Transfers are append-only; a key that already exists fails the whole change set with domain.ErrDuplicateTransfer
	Transfers []*schema.Transfer
}

// Empty reports whether the change set carries no rows
func (c ChangeSet) Empty() bool {
	return len(c.Contracts) == 0 &&
		len(c.Tokens) == 0 &&
		len(c.Accounts) == 0 &&
		len(c.Balances) == 0 &&
		len(c.Transfers) == 0
}

// TransferQueryFilter filters the transfer log
type TransferQueryFilter struct {
	TokenID  string
	Contract string
	// Account matches either side of the transfer
	Account string
	Limit   int
	Offset  uint64
}

// Store defines the interface for ledger persistence.
// Get* methods return nil, nil when the row does not exist.
// Infrastructure failures wrap domain.ErrStoreUnavailable.
type Store interface {
	CursorStore

	// GetAccount retrieves an account by its lowercased address
	GetAccount(ctx context.Context, id string) (*schema.Account, error)
	// GetContract retrieves a contract by its lowercased address
	GetContract(ctx context.Context, id string) (*schema.Contract, error)
	// GetToken retrieves a token by its token key
	GetToken(ctx context.Context, id string) (*schema.Token, error)
	// GetBalance retrieves a balance by its balance key
	GetBalance(ctx context.Context, id string) (*schema.Balance, error)
	// GetTransfer retrieves a transfer record by its key
	GetTransfer(ctx context.Context, id string) (*schema.Transfer, error)

	// ApplyChangeSet upserts every entity and appends every transfer in one transaction
	ApplyChangeSet(ctx context.Context, changes ChangeSet) error

	// GetTokensByContract lists the tokens of a collection
	GetTokensByContract(ctx context.Context, contract string, limit int, offset uint64) ([]schema.Token, uint64, error)
	// GetBalancesByAccount lists the balances held by an account
	GetBalancesByAccount(ctx context.Context, account string, limit int, offset uint64) ([]schema.Balance, uint64, error)
	// GetBalancesByToken lists the holders of a token
	GetBalancesByToken(ctx context.Context, tokenID string, limit int, offset uint64) ([]schema.Balance, uint64, error)
	// GetTransfers lists transfer records in chain order
	GetTransfers(ctx context.Context, filter TransferQueryFilter) ([]schema.Transfer, uint64, error)
}
