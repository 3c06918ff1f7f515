package store

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-ledger/internal/domain"
	"github.com/feral-file/ff-ledger/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

const (
	testContract = "0x1111111111111111111111111111111111111111"
	testOwnerA   = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	testOwnerB   = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func buildTestContract(address string, standard domain.Standard) *schema.Contract {
	return &schema.Contract{
		ID:          address,
		Standard:    standard,
		Name:        "Test Collection",
		Symbol:      "TEST",
		URIPrefix:   "ipfs://prefix/",
		TotalSupply: decimal.Zero,
	}
}

func buildTestToken(contract string, id int64, standard domain.Standard, supply int64) *schema.Token {
	return &schema.Token{
		ID:          domain.TokenKey(contract, big.NewInt(id)),
		ContractID:  contract,
		TokenID:     decimal.NewFromInt(id),
		Standard:    standard,
		TotalSupply: decimal.NewFromInt(supply),
	}
}

func buildTestAccount(address string, owned int64) *schema.Account {
	return &schema.Account{
		ID:                address,
		TotalTokensOwned:  decimal.NewFromInt(owned),
		TotalERC721Owned:  decimal.Zero,
		TotalERC1155Owned: decimal.NewFromInt(owned),
	}
}

func buildTestBalance(token *schema.Token, account string, amount int64) *schema.Balance {
	return &schema.Balance{
		ID:        domain.BalanceKey(token.ID, account),
		TokenID:   token.ID,
		AccountID: account,
		Amount:    decimal.NewFromInt(amount),
	}
}

func buildTestTransfer(token *schema.Token, block, logIndex, batchIndex uint64, suffix, from, to string, value int64) *schema.Transfer {
	raw, _ := json.Marshal(map[string]interface{}{"block_number": block, "log_index": logIndex})
	meta := domain.EventMeta{BlockNumber: block, LogIndex: logIndex}
	t := &schema.Transfer{
		ID:          domain.TransferKey(meta, suffix),
		TxHash:      fmt.Sprintf("0xtx%d", block),
		BlockNumber: block,
		LogIndex:    logIndex,
		BatchIndex:  batchIndex,
		Timestamp:   time.Unix(1700000000, 0).UTC(),
		ContractID:  token.ContractID,
		TokenID:     token.ID,
		Operator:    from,
		FromAddress: from,
		ToAddress:   to,
		Value:       decimal.NewFromInt(value),
		Raw:         datatypes.JSON(raw),
	}
	if from != domain.ETHEREUM_ZERO_ADDRESS {
		id := domain.BalanceKey(token.ID, from)
		t.FromBalanceID = &id
	}
	if to != domain.ETHEREUM_ZERO_ADDRESS {
		id := domain.BalanceKey(token.ID, to)
		t.ToBalanceID = &id
	}
	return t
}

// buildMintChangeSet mints `amount` of an ERC1155 token to owner
func buildMintChangeSet(token *schema.Token, owner string, block uint64, amount int64) ChangeSet {
	contract := buildTestContract(token.ContractID, token.Standard)
	contract.TotalSupply = decimal.NewFromInt(1)
	return ChangeSet{
		Contracts: []*schema.Contract{contract},
		Tokens:    []*schema.Token{token},
		Accounts:  []*schema.Account{buildTestAccount(domain.ETHEREUM_ZERO_ADDRESS, 0), buildTestAccount(owner, 0)},
		Balances:  []*schema.Balance{buildTestBalance(token, owner, amount)},
		Transfers: []*schema.Transfer{buildTestTransfer(token, block, 0, 0, "", domain.ETHEREUM_ZERO_ADDRESS, owner, amount)},
	}
}

// =============================================================================
// Test: ApplyChangeSet
// =============================================================================

func testApplyChangeSet(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("empty change set is a no-op", func(t *testing.T) {
		require.NoError(t, store.ApplyChangeSet(ctx, ChangeSet{}))
	})

	t.Run("inserts every entity", func(t *testing.T) {
		token := buildTestToken(testContract, 1, domain.StandardERC1155, 5)
		require.NoError(t, store.ApplyChangeSet(ctx, buildMintChangeSet(token, testOwnerA, 100, 5)))

		contract, err := store.GetContract(ctx, testContract)
		require.NoError(t, err)
		require.NotNil(t, contract)
		assert.Equal(t, "Test Collection", contract.Name)
		assert.Equal(t, domain.StandardERC1155, contract.Standard)
		assert.True(t, contract.TotalSupply.Equal(decimal.NewFromInt(1)))

		gotToken, err := store.GetToken(ctx, token.ID)
		require.NoError(t, err)
		require.NotNil(t, gotToken)
		assert.True(t, gotToken.TotalSupply.Equal(decimal.NewFromInt(5)))
		assert.True(t, gotToken.TokenID.Equal(decimal.NewFromInt(1)))

		account, err := store.GetAccount(ctx, testOwnerA)
		require.NoError(t, err)
		require.NotNil(t, account)

		zero, err := store.GetAccount(ctx, domain.ETHEREUM_ZERO_ADDRESS)
		require.NoError(t, err)
		require.NotNil(t, zero)
		assert.True(t, zero.TotalTokensOwned.IsZero())

		balance, err := store.GetBalance(ctx, domain.BalanceKey(token.ID, testOwnerA))
		require.NoError(t, err)
		require.NotNil(t, balance)
		assert.True(t, balance.Amount.Equal(decimal.NewFromInt(5)))

		transfer, err := store.GetTransfer(ctx, "100-0")
		require.NoError(t, err)
		require.NotNil(t, transfer)
		assert.Equal(t, domain.ETHEREUM_ZERO_ADDRESS, transfer.FromAddress)
		assert.Nil(t, transfer.FromBalanceID)
		require.NotNil(t, transfer.ToBalanceID)
		assert.Equal(t, balance.ID, *transfer.ToBalanceID)
		assert.True(t, transfer.Value.Equal(decimal.NewFromInt(5)))
	})

	t.Run("upsert updates aggregates but keeps enrichment", func(t *testing.T) {
		token := buildTestToken(testContract, 2, domain.StandardERC1155, 1)
		require.NoError(t, store.ApplyChangeSet(ctx, buildMintChangeSet(token, testOwnerA, 200, 1)))

		contract := buildTestContract(testContract, domain.StandardERC1155)
		contract.Name = "Renamed"
		contract.TotalSupply = decimal.NewFromInt(9)
		token.TotalSupply = decimal.NewFromInt(3)
		token.URI = "ipfs://token/2"
		balance := buildTestBalance(token, testOwnerA, 3)
		account := buildTestAccount(testOwnerA, 7)

		require.NoError(t, store.ApplyChangeSet(ctx, ChangeSet{
			Contracts: []*schema.Contract{contract},
			Tokens:    []*schema.Token{token},
			Accounts:  []*schema.Account{account},
			Balances:  []*schema.Balance{balance},
		}))

		gotContract, err := store.GetContract(ctx, testContract)
		require.NoError(t, err)
		assert.Equal(t, "Test Collection", gotContract.Name)
		assert.True(t, gotContract.TotalSupply.Equal(decimal.NewFromInt(9)))

		gotToken, err := store.GetToken(ctx, token.ID)
		require.NoError(t, err)
		assert.Equal(t, "ipfs://token/2", gotToken.URI)
		assert.True(t, gotToken.TotalSupply.Equal(decimal.NewFromInt(3)))

		gotAccount, err := store.GetAccount(ctx, testOwnerA)
		require.NoError(t, err)
		assert.True(t, gotAccount.TotalTokensOwned.Equal(decimal.NewFromInt(7)))

		gotBalance, err := store.GetBalance(ctx, balance.ID)
		require.NoError(t, err)
		assert.True(t, gotBalance.Amount.Equal(decimal.NewFromInt(3)))
	})

	t.Run("duplicate transfer rolls back the whole change set", func(t *testing.T) {
		token := buildTestToken(testContract, 3, domain.StandardERC1155, 2)
		require.NoError(t, store.ApplyChangeSet(ctx, buildMintChangeSet(token, testOwnerA, 300, 2)))

		// same transfer key, different aggregates
		replay := buildMintChangeSet(token, testOwnerA, 300, 2)
		replay.Tokens[0].TotalSupply = decimal.NewFromInt(99)
		replay.Balances[0].Amount = decimal.NewFromInt(99)

		err := store.ApplyChangeSet(ctx, replay)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDuplicateTransfer)

		gotToken, err := store.GetToken(ctx, token.ID)
		require.NoError(t, err)
		assert.True(t, gotToken.TotalSupply.Equal(decimal.NewFromInt(2)))

		gotBalance, err := store.GetBalance(ctx, domain.BalanceKey(token.ID, testOwnerA))
		require.NoError(t, err)
		assert.True(t, gotBalance.Amount.Equal(decimal.NewFromInt(2)))
	})
}

// =============================================================================
// Test: Get* on missing rows
// =============================================================================

func testGetMissing(t *testing.T, store Store) {
	ctx := context.Background()

	account, err := store.GetAccount(ctx, testOwnerB)
	require.NoError(t, err)
	assert.Nil(t, account)

	contract, err := store.GetContract(ctx, testOwnerB)
	require.NoError(t, err)
	assert.Nil(t, contract)

	token, err := store.GetToken(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, token)

	balance, err := store.GetBalance(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, balance)

	transfer, err := store.GetTransfer(ctx, "1-1")
	require.NoError(t, err)
	assert.Nil(t, transfer)
}

// =============================================================================
// Test: returned rows are detached from the store
// =============================================================================

func testRowsAreDetached(t *testing.T, store Store) {
	ctx := context.Background()
	token := buildTestToken(testContract, 4, domain.StandardERC721, 1)
	creator := testOwnerA
	token.Creator = &creator
	require.NoError(t, store.ApplyChangeSet(ctx, buildMintChangeSet(token, testOwnerA, 400, 1)))

	got, err := store.GetToken(ctx, token.ID)
	require.NoError(t, err)
	got.TotalSupply = decimal.NewFromInt(42)
	*got.Creator = testOwnerB

	again, err := store.GetToken(ctx, token.ID)
	require.NoError(t, err)
	assert.True(t, again.TotalSupply.Equal(decimal.NewFromInt(1)))
	require.NotNil(t, again.Creator)
	assert.Equal(t, testOwnerA, *again.Creator)
}

// =============================================================================
// Test: list queries
// =============================================================================

func testListQueries(t *testing.T, store Store) {
	ctx := context.Background()

	tokenA := buildTestToken(testContract, 10, domain.StandardERC1155, 5)
	require.NoError(t, store.ApplyChangeSet(ctx, buildMintChangeSet(tokenA, testOwnerA, 500, 5)))

	tokenB := buildTestToken(testContract, 11, domain.StandardERC1155, 3)
	require.NoError(t, store.ApplyChangeSet(ctx, buildMintChangeSet(tokenB, testOwnerA, 501, 3)))

	// A sends 2 of tokenA and 1 of tokenA to B in one batch
	require.NoError(t, store.ApplyChangeSet(ctx, ChangeSet{
		Accounts: []*schema.Account{buildTestAccount(testOwnerB, 0)},
		Balances: []*schema.Balance{
			buildTestBalance(tokenA, testOwnerA, 2),
			buildTestBalance(tokenA, testOwnerB, 3),
		},
		Transfers: []*schema.Transfer{
			buildTestTransfer(tokenA, 502, 1, 0, domain.BatchSuffix(0), testOwnerA, testOwnerB, 2),
			buildTestTransfer(tokenA, 502, 1, 1, domain.BatchSuffix(1), testOwnerA, testOwnerB, 1),
		},
	}))

	// an emptied balance is not listed
	require.NoError(t, store.ApplyChangeSet(ctx, ChangeSet{
		Balances: []*schema.Balance{buildTestBalance(tokenB, testOwnerA, 0)},
	}))

	t.Run("tokens by contract", func(t *testing.T) {
		tokens, total, err := store.GetTokensByContract(ctx, testContract, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		require.Len(t, tokens, 2)
		assert.Equal(t, tokenA.ID, tokens[0].ID)
		assert.Equal(t, tokenB.ID, tokens[1].ID)

		tokens, total, err = store.GetTokensByContract(ctx, testContract, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		require.Len(t, tokens, 1)
		assert.Equal(t, tokenB.ID, tokens[0].ID)
	})

	t.Run("balances by account skip empty balances", func(t *testing.T) {
		balances, total, err := store.GetBalancesByAccount(ctx, testOwnerA, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		require.Len(t, balances, 1)
		assert.Equal(t, tokenA.ID, balances[0].TokenID)
		assert.True(t, balances[0].Amount.Equal(decimal.NewFromInt(2)))
	})

	t.Run("balances by token", func(t *testing.T) {
		balances, total, err := store.GetBalancesByToken(ctx, tokenA.ID, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		require.Len(t, balances, 2)

		sum := decimal.Zero
		for _, b := range balances {
			sum = sum.Add(b.Amount)
		}
		assert.True(t, sum.Equal(decimal.NewFromInt(5)))
	})

	t.Run("transfers in chain order", func(t *testing.T) {
		transfers, total, err := store.GetTransfers(ctx, TransferQueryFilter{TokenID: tokenA.ID, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, uint64(3), total)
		require.Len(t, transfers, 3)
		assert.Equal(t, "500-0", transfers[0].ID)
		assert.Equal(t, "502-1-0", transfers[1].ID)
		assert.Equal(t, "502-1-1", transfers[2].ID)
	})

	t.Run("transfers by account match either side", func(t *testing.T) {
		transfers, total, err := store.GetTransfers(ctx, TransferQueryFilter{Account: testOwnerB})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		assert.Len(t, transfers, 2)

		transfers, total, err = store.GetTransfers(ctx, TransferQueryFilter{Contract: testContract, Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, uint64(4), total)
		assert.Len(t, transfers, 2)
	})
}

// =============================================================================
// Test: BlockCursor
// =============================================================================

func testBlockCursor(t *testing.T, store Store) {
	ctx := context.Background()
	chain := string(domain.ChainEthereumMainnet)

	cursor, err := store.GetBlockCursor(ctx, chain)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), cursor)

	require.NoError(t, store.SetBlockCursor(ctx, chain, 12345))
	cursor, err = store.GetBlockCursor(ctx, chain)
	require.NoError(t, err)
	assert.Equal(t, uint64(12345), cursor)

	require.NoError(t, store.SetBlockCursor(ctx, chain, 12346))
	cursor, err = store.GetBlockCursor(ctx, chain)
	require.NoError(t, err)
	assert.Equal(t, uint64(12346), cursor)

	other, err := store.GetBlockCursor(ctx, string(domain.ChainEthereumSepolia))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), other)
}

// RunStoreTests runs the shared suite against one Store implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"ApplyChangeSet", testApplyChangeSet},
		{"GetMissing", testGetMissing},
		{"RowsAreDetached", testRowsAreDetached},
		{"ListQueries", testListQueries},
		{"BlockCursor", testBlockCursor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
