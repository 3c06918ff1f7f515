package ledger

import (
	"context"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/feral-file/ff-ledger/internal/domain"
	"github.com/feral-file/ff-ledger/internal/store"
	"github.com/feral-file/ff-ledger/internal/store/schema"
)

// unitOfWork resolves the rows touched by one source event.
// Every key is loaded from the store at most once; repeated resolution returns the same instance.
// Nothing is written until changeSet is committed by the caller.
type unitOfWork struct {
	store store.Store

	accounts  map[string]*schema.Account
	contracts map[string]*schema.Contract
	tokens    map[string]*schema.Token
	balances  map[string]*schema.Balance

	// keys in first-resolution order so the change set is deterministic
	accountKeys  []string
	contractKeys []string
	tokenKeys    []string
	balanceKeys  []string

	transfers []*schema.Transfer
}

func newUnitOfWork(s store.Store) *unitOfWork {
	return &unitOfWork{
		store:     s,
		accounts:  make(map[string]*schema.Account),
		contracts: make(map[string]*schema.Contract),
		tokens:    make(map[string]*schema.Token),
		balances:  make(map[string]*schema.Balance),
	}
}

// resolveAccount loads or creates a zero-valued account
func (u *unitOfWork) resolveAccount(ctx context.Context, address string) (*schema.Account, error) {
	id := domain.NormalizeAddress(address)
	if a, ok := u.accounts[id]; ok {
		return a, nil
	}

	a, err := u.store.GetAccount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account %s: %w", id, err)
	}
	if a == nil {
		a = &schema.Account{
			ID:                id,
			TotalTokensOwned:  decimal.Zero,
			TotalERC721Owned:  decimal.Zero,
			TotalERC1155Owned: decimal.Zero,
		}
	}

	u.accounts[id] = a
	u.accountKeys = append(u.accountKeys, id)
	return a, nil
}

// resolveContract loads or creates a contract. created is true only for the
// call that constructed the row, so enrichment can be gated on it.
func (u *unitOfWork) resolveContract(ctx context.Context, address string, standard domain.Standard) (c *schema.Contract, created bool, err error) {
	id := domain.NormalizeAddress(address)
	if c, ok := u.contracts[id]; ok {
		return c, false, nil
	}

	c, err = u.store.GetContract(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("failed to resolve contract %s: %w", id, err)
	}
	if c == nil {
		created = true
		c = &schema.Contract{
			ID:          id,
			Standard:    standard,
			TotalSupply: decimal.Zero,
		}
	}

	u.contracts[id] = c
	u.contractKeys = append(u.contractKeys, id)
	return c, created, nil
}

// resolveToken loads or creates a token. A new ERC721 token is seeded with supply 1, an ERC1155 token with 0.
func (u *unitOfWork) resolveToken(ctx context.Context, contract *schema.Contract, tokenID *big.Int, standard domain.Standard) (*schema.Token, error) {
	id := domain.TokenKey(contract.ID, tokenID)
	if t, ok := u.tokens[id]; ok {
		return t, nil
	}

	t, err := u.store.GetToken(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token %s: %w", id, err)
	}
	if t == nil {
		supply := decimal.Zero
		if standard == domain.StandardERC721 {
			supply = one
		}
		t = &schema.Token{
			ID:          id,
			ContractID:  contract.ID,
			TokenID:     decimal.NewFromBigInt(tokenID, 0),
			Standard:    standard,
			TotalSupply: supply,
		}
	}

	u.tokens[id] = t
	u.tokenKeys = append(u.tokenKeys, id)
	return t, nil
}

// resolveBalance loads or creates a zero balance of token held by account
func (u *unitOfWork) resolveBalance(ctx context.Context, token *schema.Token, account *schema.Account) (*schema.Balance, error) {
	id := domain.BalanceKey(token.ID, account.ID)
	if b, ok := u.balances[id]; ok {
		return b, nil
	}

	b, err := u.store.GetBalance(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve balance %s: %w", id, err)
	}
	if b == nil {
		b = &schema.Balance{
			ID:        id,
			TokenID:   token.ID,
			AccountID: account.ID,
			Amount:    decimal.Zero,
		}
	}

	u.balances[id] = b
	u.balanceKeys = append(u.balanceKeys, id)
	return b, nil
}

// appendTransfer stages an append-only transfer record
func (u *unitOfWork) appendTransfer(t *schema.Transfer) {
	u.transfers = append(u.transfers, t)
}

// changeSet returns every resolved row plus the staged transfer records
func (u *unitOfWork) changeSet() store.ChangeSet {
	cs := store.ChangeSet{
		Contracts: make([]*schema.Contract, 0, len(u.contractKeys)),
		Tokens:    make([]*schema.Token, 0, len(u.tokenKeys)),
		Accounts:  make([]*schema.Account, 0, len(u.accountKeys)),
		Balances:  make([]*schema.Balance, 0, len(u.balanceKeys)),
		Transfers: u.transfers,
	}
	for _, k := range u.contractKeys {
		cs.Contracts = append(cs.Contracts, u.contracts[k])
	}
	for _, k := range u.tokenKeys {
		cs.Tokens = append(cs.Tokens, u.tokens[k])
	}
	for _, k := range u.accountKeys {
		cs.Accounts = append(cs.Accounts, u.accounts[k])
	}
	for _, k := range u.balanceKeys {
		cs.Balances = append(cs.Balances, u.balances[k])
	}
	return cs
}
