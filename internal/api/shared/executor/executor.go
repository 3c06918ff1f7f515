package executor

import (
	"context"
	"fmt"
	"math/big"

	"github.com/feral-file/ff-ledger/internal/api/shared/constants"
	"github.com/feral-file/ff-ledger/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-ledger/internal/domain"
	"github.com/feral-file/ff-ledger/internal/store"
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/mock_api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// GetAccount retrieves an account with a page of its non-zero balances
	GetAccount(ctx context.Context, address string, balancesLimit *int, balancesOffset *uint64) (*dto.AccountResponse, error)

	// GetContract retrieves a collection with a page of its tokens
	GetContract(ctx context.Context, address string, tokensLimit *int, tokensOffset *uint64) (*dto.ContractResponse, error)

	// GetToken retrieves a token with a page of its holders
	GetToken(ctx context.Context, contract string, tokenID *big.Int, holdersLimit *int, holdersOffset *uint64) (*dto.TokenResponse, error)

	// GetTransfer retrieves a single transfer record by its key
	GetTransfer(ctx context.Context, id string) (*dto.TransferResponse, error)

	// GetTransfers retrieves transfer records in chain order with optional filters
	GetTransfers(ctx context.Context, tokenKey string, contract string, account string, limit *int, offset *uint64) (*dto.TransferListResponse, error)
}

type executor struct {
	store store.Store
}

func NewExecutor(store store.Store) Executor {
	return &executor{store: store}
}

func (e *executor) GetAccount(ctx context.Context, address string, balancesLimit *int, balancesOffset *uint64) (*dto.AccountResponse, error) {
	account, err := e.store.GetAccount(ctx, domain.NormalizeAddress(address))
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get account: %v", err))
	}
	if account == nil {
		return nil, nil
	}

	accountDTO := dto.MapAccountToDTO(account)

	limit, offset := page(balancesLimit, balancesOffset, constants.DEFAULT_BALANCES_LIMIT)
	balances, total, err := e.store.GetBalancesByAccount(ctx, account.ID, limit, offset)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get balances: %v", err))
	}
	accountDTO.Balances = dto.MapBalancesToDTO(balances, offset, total)

	return accountDTO, nil
}

func (e *executor) GetContract(ctx context.Context, address string, tokensLimit *int, tokensOffset *uint64) (*dto.ContractResponse, error) {
	contract, err := e.store.GetContract(ctx, domain.NormalizeAddress(address))
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get contract: %v", err))
	}
	if contract == nil {
		return nil, nil
	}

	contractDTO := dto.MapContractToDTO(contract)

	limit, offset := page(tokensLimit, tokensOffset, constants.DEFAULT_TOKENS_LIMIT)
	tokens, total, err := e.store.GetTokensByContract(ctx, contract.ID, limit, offset)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get tokens: %v", err))
	}
	contractDTO.Tokens = dto.MapTokensToDTO(tokens, offset, total)

	return contractDTO, nil
}

func (e *executor) GetToken(ctx context.Context, contract string, tokenID *big.Int, holdersLimit *int, holdersOffset *uint64) (*dto.TokenResponse, error) {
	tokenKey := domain.TokenKey(domain.NormalizeAddress(contract), tokenID)
	token, err := e.store.GetToken(ctx, tokenKey)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get token: %v", err))
	}
	if token == nil {
		return nil, nil
	}

	tokenDTO := dto.MapTokenToDTO(token)

	limit, offset := page(holdersLimit, holdersOffset, constants.DEFAULT_HOLDERS_LIMIT)
	holders, total, err := e.store.GetBalancesByToken(ctx, token.ID, limit, offset)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get holders: %v", err))
	}
	tokenDTO.Holders = dto.MapBalancesToDTO(holders, offset, total)

	return tokenDTO, nil
}

func (e *executor) GetTransfer(ctx context.Context, id string) (*dto.TransferResponse, error) {
	transfer, err := e.store.GetTransfer(ctx, id)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get transfer: %v", err))
	}
	if transfer == nil {
		return nil, nil
	}

	return dto.MapTransferToDTO(transfer), nil
}

func (e *executor) GetTransfers(ctx context.Context, tokenKey string, contract string, account string, limit *int, offset *uint64) (*dto.TransferListResponse, error) {
	l, o := page(limit, offset, constants.DEFAULT_TRANSFERS_LIMIT)
	transfers, total, err := e.store.GetTransfers(ctx, store.TransferQueryFilter{
		TokenID:  tokenKey,
		Contract: normalizeOptional(contract),
		Account:  normalizeOptional(account),
		Limit:    l,
		Offset:   o,
	})
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get transfers: %v", err))
	}

	return dto.MapTransfersToDTO(transfers, o, total), nil
}

// page applies defaults and caps the page size
func page(limit *int, offset *uint64, defaultLimit int) (int, uint64) {
	l := defaultLimit
	if limit != nil && *limit > 0 {
		l = *limit
	}
	if l > constants.MAX_PAGE_SIZE {
		l = constants.MAX_PAGE_SIZE
	}

	o := constants.DEFAULT_OFFSET
	if offset != nil {
		o = *offset
	}

	return l, o
}

// normalizeOptional leaves an absent filter empty instead of mapping it to the zero address
func normalizeOptional(address string) string {
	if address == "" {
		return ""
	}
	return domain.NormalizeAddress(address)
}
