package executor_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/feral-file/ff-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-ledger/internal/api/shared/executor"
	"github.com/feral-file/ff-ledger/internal/domain"
	"github.com/feral-file/ff-ledger/internal/mocks"
	"github.com/feral-file/ff-ledger/internal/store"
	"github.com/feral-file/ff-ledger/internal/store/schema"
)

const (
	alice    = "0x00000000000000000000000000000000000000a1"
	contract = "0x9ca8887d13bc4591ae36972702fdf9de2c97957f"
)

func TestGetAccount_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	mockStore.EXPECT().GetAccount(gomock.Any(), alice).Return(nil, nil)

	resp, err := executor.NewExecutor(mockStore).GetAccount(context.Background(), "0x00000000000000000000000000000000000000A1", nil, nil)
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestGetAccount_DefaultPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	mockStore.EXPECT().GetAccount(gomock.Any(), alice).Return(&schema.Account{
		ID:                alice,
		TotalTokensOwned:  decimal.NewFromInt(2),
		TotalERC1155Owned: decimal.NewFromInt(2),
	}, nil)
	mockStore.EXPECT().GetBalancesByAccount(gomock.Any(), alice, 20, uint64(0)).Return([]schema.Balance{
		{ID: "b1", TokenID: "t1", AccountID: alice, Amount: decimal.NewFromInt(7)},
	}, uint64(3), nil)

	resp, err := executor.NewExecutor(mockStore).GetAccount(context.Background(), alice, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "2", resp.TotalTokensOwned)
	assert.Equal(t, "0", resp.TotalERC721Owned)
	require.NotNil(t, resp.Balances)
	assert.Len(t, resp.Balances.Balances, 1)
	assert.Equal(t, "7", resp.Balances.Balances[0].Amount)
	assert.Equal(t, uint64(3), resp.Balances.Total)
	require.NotNil(t, resp.Balances.Offset)
	assert.Equal(t, uint64(1), *resp.Balances.Offset)
}

func TestGetToken_CapsHolderPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokenKey := domain.TokenKey(contract, big.NewInt(42))
	mockStore := mocks.NewMockStore(ctrl)
	mockStore.EXPECT().GetToken(gomock.Any(), tokenKey).Return(&schema.Token{ID: tokenKey, ContractID: contract}, nil)
	mockStore.EXPECT().GetBalancesByToken(gomock.Any(), tokenKey, 100, uint64(5)).Return(nil, uint64(5), nil)

	limit := 1000
	offset := uint64(5)
	resp, err := executor.NewExecutor(mockStore).GetToken(context.Background(), contract, big.NewInt(42), &limit, &offset)
	require.NoError(t, err)
	require.NotNil(t, resp)
	require.NotNil(t, resp.Holders)
	assert.Nil(t, resp.Holders.Offset)
}

func TestGetTransfers_Filters(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	mockStore.EXPECT().GetTransfers(gomock.Any(), store.TransferQueryFilter{
		Account: alice,
		Limit:   20,
	}).Return([]schema.Transfer{{ID: "100-1", FromAddress: domain.ETHEREUM_ZERO_ADDRESS, ToAddress: alice}}, uint64(1), nil)

	resp, err := executor.NewExecutor(mockStore).GetTransfers(context.Background(), "", "", "0x00000000000000000000000000000000000000A1", nil, nil)
	require.NoError(t, err)
	require.Len(t, resp.Transfers, 1)
	assert.Equal(t, "100-1", resp.Transfers[0].ID)
	assert.Nil(t, resp.Offset)
}

func TestStoreErrorsBecomeDatabaseErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	mockStore.EXPECT().GetTransfer(gomock.Any(), "100-1").Return(nil, domain.ErrStoreUnavailable)

	_, err := executor.NewExecutor(mockStore).GetTransfer(context.Background(), "100-1")
	require.Error(t, err)

	var apiErr *apierrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierrors.ErrCodeDatabaseError, apiErr.Code)
}
