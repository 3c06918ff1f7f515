package store

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/feral-file/ff-ledger/internal/domain"
	"github.com/feral-file/ff-ledger/internal/store/schema"
)

type memoryStore struct {
	mu        sync.RWMutex
	accounts  map[string]schema.Account
	contracts map[string]schema.Contract
	tokens    map[string]schema.Token
	balances  map[string]schema.Balance
	transfers map[string]schema.Transfer
	kv        map[string]string
	now       func() time.Time
}

// NewMemoryStore creates a store that keeps every row in process memory.
// Rows are copied on the way in and out so callers never share state with the store.
func NewMemoryStore() Store {
	return &memoryStore{
		accounts:  make(map[string]schema.Account),
		contracts: make(map[string]schema.Contract),
		tokens:    make(map[string]schema.Token),
		balances:  make(map[string]schema.Balance),
		transfers: make(map[string]schema.Transfer),
		kv:        make(map[string]string),
		now:       time.Now,
	}
}

func copyToken(t schema.Token) schema.Token {
	if t.Creator != nil {
		creator := *t.Creator
		t.Creator = &creator
	}
	if t.MintTimestamp != nil {
		ts := *t.MintTimestamp
		t.MintTimestamp = &ts
	}
	return t
}

func copyTransfer(t schema.Transfer) schema.Transfer {
	if t.FromBalanceID != nil {
		id := *t.FromBalanceID
		t.FromBalanceID = &id
	}
	if t.ToBalanceID != nil {
		id := *t.ToBalanceID
		t.ToBalanceID = &id
	}
	if t.Raw != nil {
		t.Raw = append(t.Raw[:0:0], t.Raw...)
	}
	return t
}

func (s *memoryStore) GetAccount(_ context.Context, id string) (*schema.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *memoryStore) GetContract(_ context.Context, id string) (*schema.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.contracts[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *memoryStore) GetToken(_ context.Context, id string) (*schema.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tokens[id]
	if !ok {
		return nil, nil
	}
	t = copyToken(t)
	return &t, nil
}

func (s *memoryStore) GetBalance(_ context.Context, id string) (*schema.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.balances[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (s *memoryStore) GetTransfer(_ context.Context, id string) (*schema.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.transfers[id]
	if !ok {
		return nil, nil
	}
	t = copyTransfer(t)
	return &t, nil
}

func (s *memoryStore) ApplyChangeSet(_ context.Context, changes ChangeSet) error {
	if changes.Empty() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Reject the whole change set before mutating anything
	seen := make(map[string]struct{}, len(changes.Transfers))
	for _, t := range changes.Transfers {
		if _, ok := s.transfers[t.ID]; ok {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateTransfer, t.ID)
		}
		if _, ok := seen[t.ID]; ok {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateTransfer, t.ID)
		}
		seen[t.ID] = struct{}{}
	}

	now := s.now()
	for _, t := range changes.Transfers {
		t.CreatedAt = now
		s.transfers[t.ID] = copyTransfer(*t)
	}

	for _, c := range changes.Contracts {
		row := *c
		if existing, ok := s.contracts[c.ID]; ok {
			// enrichment is written once
			row.Name, row.Symbol, row.URIPrefix, row.Standard = existing.Name, existing.Symbol, existing.URIPrefix, existing.Standard
			row.CreatedAt = existing.CreatedAt
		} else {
			row.CreatedAt = now
		}
		row.UpdatedAt = now
		s.contracts[c.ID] = row
	}

	for _, t := range changes.Tokens {
		row := copyToken(*t)
		if existing, ok := s.tokens[t.ID]; ok {
			row.CreatedAt = existing.CreatedAt
		} else {
			row.CreatedAt = now
		}
		row.UpdatedAt = now
		s.tokens[t.ID] = row
	}

	for _, a := range changes.Accounts {
		row := *a
		if existing, ok := s.accounts[a.ID]; ok {
			row.CreatedAt = existing.CreatedAt
		} else {
			row.CreatedAt = now
		}
		row.UpdatedAt = now
		s.accounts[a.ID] = row
	}

	for _, b := range changes.Balances {
		row := *b
		if existing, ok := s.balances[b.ID]; ok {
			row.CreatedAt = existing.CreatedAt
		} else {
			row.CreatedAt = now
		}
		row.UpdatedAt = now
		s.balances[b.ID] = row
	}

	return nil
}

// paginate returns the window [offset, offset+limit) of n items
func paginate(n int, limit int, offset uint64) (int, int) {
	start := n
	if offset < uint64(n) { //nolint:gosec,G115
		start = int(offset) //nolint:gosec,G115
	}
	end := n
	if limit > 0 && start+limit < n {
		end = start + limit
	}
	return start, end
}

func (s *memoryStore) GetTokensByContract(_ context.Context, contract string, limit int, offset uint64) ([]schema.Token, uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tokens []schema.Token
	for _, t := range s.tokens {
		if t.ContractID == contract {
			tokens = append(tokens, copyToken(t))
		}
	}
	sort.Slice(tokens, func(i, j int) bool {
		return tokens[i].TokenID.LessThan(tokens[j].TokenID)
	})

	start, end := paginate(len(tokens), limit, offset)
	return tokens[start:end], uint64(len(tokens)), nil
}

func (s *memoryStore) GetBalancesByAccount(_ context.Context, account string, limit int, offset uint64) ([]schema.Balance, uint64, error) {
	return s.listBalances(func(b schema.Balance) bool { return b.AccountID == account }, limit, offset)
}

func (s *memoryStore) GetBalancesByToken(_ context.Context, tokenID string, limit int, offset uint64) ([]schema.Balance, uint64, error) {
	return s.listBalances(func(b schema.Balance) bool { return b.TokenID == tokenID }, limit, offset)
}

func (s *memoryStore) listBalances(match func(schema.Balance) bool, limit int, offset uint64) ([]schema.Balance, uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var balances []schema.Balance
	for _, b := range s.balances {
		if match(b) && b.Amount.IsPositive() {
			balances = append(balances, b)
		}
	}
	sort.Slice(balances, func(i, j int) bool {
		return balances[i].ID < balances[j].ID
	})

	start, end := paginate(len(balances), limit, offset)
	return balances[start:end], uint64(len(balances)), nil
}

func (s *memoryStore) GetTransfers(_ context.Context, filter TransferQueryFilter) ([]schema.Transfer, uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var transfers []schema.Transfer
	for _, t := range s.transfers {
		if filter.TokenID != "" && t.TokenID != filter.TokenID {
			continue
		}
		if filter.Contract != "" && t.ContractID != filter.Contract {
			continue
		}
		if filter.Account != "" && t.FromAddress != filter.Account && t.ToAddress != filter.Account {
			continue
		}
		transfers = append(transfers, copyTransfer(t))
	}
	sort.Slice(transfers, func(i, j int) bool {
		a, b := transfers[i], transfers[j]
		if a.BlockNumber != b.BlockNumber {
			return a.BlockNumber < b.BlockNumber
		}
		if a.LogIndex != b.LogIndex {
			return a.LogIndex < b.LogIndex
		}
		return a.BatchIndex < b.BatchIndex
	})

	start, end := paginate(len(transfers), filter.Limit, filter.Offset)
	return transfers[start:end], uint64(len(transfers)), nil
}

func (s *memoryStore) GetBlockCursor(_ context.Context, chain string) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.kv[cursorKey(chain)]
	if !ok {
		return 0, nil
	}
	blockNumber, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse block cursor: %w", err)
	}
	return blockNumber, nil
}

func (s *memoryStore) SetBlockCursor(_ context.Context, chain string, blockNumber uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.kv[cursorKey(chain)] = strconv.FormatUint(blockNumber, 10)
	return nil
}
