package server_test

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ledger/internal/api/server"
	"github.com/feral-file/ff-ledger/internal/api/shared/dto"
	"github.com/feral-file/ff-ledger/internal/domain"
	"github.com/feral-file/ff-ledger/internal/store"
	"github.com/feral-file/ff-ledger/internal/store/schema"
)

const (
	testContract = "0x9ca8887d13bc4591ae36972702fdf9de2c97957f"
	testAlice    = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	testBob      = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func strPtr(s string) *string { return &s }

// seedLedger stores one ERC1155 token minted to alice and partly sent to bob
func seedLedger(t *testing.T, s store.Store) string {
	t.Helper()

	tokenKey := domain.TokenKey(testContract, big.NewInt(42))
	aliceBalance := domain.BalanceKey(tokenKey, testAlice)
	bobBalance := domain.BalanceKey(tokenKey, testBob)
	blockTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	err := s.ApplyChangeSet(context.Background(), store.ChangeSet{
		Contracts: []*schema.Contract{{
			ID: testContract, Standard: domain.StandardERC1155, Name: "Editions", Symbol: "ED",
			TotalSupply: decimal.NewFromInt(10),
		}},
		Tokens: []*schema.Token{{
			ID: tokenKey, ContractID: testContract, TokenID: decimal.NewFromInt(42),
			Standard: domain.StandardERC1155, URI: "ipfs://42", TotalSupply: decimal.NewFromInt(10),
		}},
		Accounts: []*schema.Account{
			{ID: testAlice, TotalTokensOwned: decimal.NewFromInt(7), TotalERC1155Owned: decimal.NewFromInt(7)},
			{ID: testBob, TotalTokensOwned: decimal.NewFromInt(3), TotalERC1155Owned: decimal.NewFromInt(3)},
		},
		Balances: []*schema.Balance{
			{ID: aliceBalance, TokenID: tokenKey, AccountID: testAlice, Amount: decimal.NewFromInt(7)},
			{ID: bobBalance, TokenID: tokenKey, AccountID: testBob, Amount: decimal.NewFromInt(3)},
		},
		Transfers: []*schema.Transfer{
			{
				ID: "100-1", TxHash: "0x01", BlockNumber: 100, LogIndex: 1, Timestamp: blockTime,
				ContractID: testContract, TokenID: tokenKey, Operator: testAlice,
				FromAddress: domain.ETHEREUM_ZERO_ADDRESS, ToAddress: testAlice,
				Value: decimal.NewFromInt(10), ToBalanceID: strPtr(aliceBalance),
			},
			{
				ID: "101-4", TxHash: "0x02", BlockNumber: 101, LogIndex: 4, Timestamp: blockTime,
				ContractID: testContract, TokenID: tokenKey, Operator: testAlice,
				FromAddress: testAlice, ToAddress: testBob,
				Value: decimal.NewFromInt(3), FromBalanceID: strPtr(aliceBalance), ToBalanceID: strPtr(bobBalance),
			},
		},
	})
	require.NoError(t, err)

	return tokenKey
}

func setupRouter(t *testing.T) (http.Handler, string) {
	t.Helper()
	s := store.NewMemoryStore()
	tokenKey := seedLedger(t, s)
	srv := server.New(server.Config{Host: "127.0.0.1", Port: 0}, s)
	return srv.Router(), tokenKey
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	h, _ := setupRouter(t)

	w := get(t, h, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[dto.HealthResponse](t, w)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ff-ledger-api", resp.Service)
}

func TestGetAccount(t *testing.T) {
	h, tokenKey := setupRouter(t)

	// checksummed input resolves to the lowercased key
	w := get(t, h, "/api/v1/accounts/0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[dto.AccountResponse](t, w)
	assert.Equal(t, testAlice, resp.Address)
	assert.Equal(t, "7", resp.TotalTokensOwned)
	assert.Equal(t, "7", resp.TotalERC1155Owned)
	require.NotNil(t, resp.Balances)
	require.Len(t, resp.Balances.Balances, 1)
	assert.Equal(t, tokenKey, resp.Balances.Balances[0].Token)
	assert.Equal(t, "7", resp.Balances.Balances[0].Amount)
	assert.Equal(t, uint64(1), resp.Balances.Total)
	assert.Nil(t, resp.Balances.Offset)
}

func TestGetAccountErrors(t *testing.T) {
	h, _ := setupRouter(t)

	w := get(t, h, "/api/v1/accounts/not-an-address")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(t, h, "/api/v1/accounts/0xcccccccccccccccccccccccccccccccccccccccc")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(t, h, "/api/v1/accounts/"+testAlice+"?limit=0")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(t, h, "/api/v1/accounts/"+testAlice+"?offset=-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetContract(t *testing.T) {
	h, tokenKey := setupRouter(t)

	w := get(t, h, "/api/v1/contracts/"+testContract)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[dto.ContractResponse](t, w)
	assert.Equal(t, domain.StandardERC1155, resp.Standard)
	assert.Equal(t, "Editions", resp.Name)
	assert.Equal(t, "10", resp.TotalSupply)
	require.NotNil(t, resp.Tokens)
	require.Len(t, resp.Tokens.Tokens, 1)
	assert.Equal(t, tokenKey, resp.Tokens.Tokens[0].ID)
	assert.Equal(t, "42", resp.Tokens.Tokens[0].TokenID)
}

func TestGetToken(t *testing.T) {
	h, tokenKey := setupRouter(t)

	for _, id := range []string{"42", "0x2a"} {
		t.Run(id, func(t *testing.T) {
			w := get(t, h, "/api/v1/tokens/"+testContract+"/"+id+"?limit=1")
			require.Equal(t, http.StatusOK, w.Code)

			resp := decode[dto.TokenResponse](t, w)
			assert.Equal(t, tokenKey, resp.ID)
			assert.Equal(t, "ipfs://42", resp.URI)
			require.NotNil(t, resp.Holders)
			assert.Equal(t, uint64(2), resp.Holders.Total)
			require.Len(t, resp.Holders.Balances, 1)
			require.NotNil(t, resp.Holders.Offset)
			assert.Equal(t, uint64(1), *resp.Holders.Offset)
		})
	}

	w := get(t, h, "/api/v1/tokens/"+testContract+"/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(t, h, "/api/v1/tokens/"+testContract+"/7")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetTransfer(t *testing.T) {
	h, tokenKey := setupRouter(t)

	w := get(t, h, "/api/v1/transfers/101-4")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[dto.TransferResponse](t, w)
	assert.Equal(t, tokenKey, resp.Token)
	assert.Equal(t, testAlice, resp.From)
	assert.Equal(t, testBob, resp.To)
	assert.Equal(t, "3", resp.Value)
	assert.Equal(t, uint64(101), resp.BlockNumber)

	w = get(t, h, "/api/v1/transfers/999-0")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListTransfers(t *testing.T) {
	h, tokenKey := setupRouter(t)

	tests := []struct {
		name  string
		query string
		ids   []string
	}{
		{"all", "", []string{"100-1", "101-4"}},
		{"by account", "?account=" + testBob, []string{"101-4"}},
		{"by contract", "?contract=" + testContract, []string{"100-1", "101-4"}},
		{"by token key", "?token=" + tokenKey, []string{"100-1", "101-4"}},
		{"by decimal token key", "?token=" + testContract + "-42", []string{"100-1", "101-4"}},
		{"paged", "?limit=1&offset=1", []string{"101-4"}},
		{"unknown account", "?account=0xcccccccccccccccccccccccccccccccccccccccc", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, h, "/api/v1/transfers"+tt.query)
			require.Equal(t, http.StatusOK, w.Code)

			resp := decode[dto.TransferListResponse](t, w)
			ids := make([]string, 0, len(resp.Transfers))
			for _, tr := range resp.Transfers {
				ids = append(ids, tr.ID)
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestListTransfersValidation(t *testing.T) {
	h, _ := setupRouter(t)

	for _, q := range []string{"?account=bad", "?contract=bad", "?token=bad", "?token=" + testContract + "-x", "?limit=0"} {
		w := get(t, h, "/api/v1/transfers"+q)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestCORSPreflight(t *testing.T) {
	h, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/transfers", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestShutdownBeforeStart(t *testing.T) {
	srv := server.New(server.Config{}, store.NewMemoryStore())
	assert.NoError(t, srv.Shutdown(context.Background()))
}
