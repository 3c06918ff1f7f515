package dto

import (
	"time"

	"github.com/feral-file/ff-ledger/internal/store/schema"
)

// AccountResponse represents an account with its non-zero balances
type AccountResponse struct {
	Address           string             `json:"address"`
	TotalTokensOwned  string             `json:"total_tokens_owned"`
	TotalERC721Owned  string             `json:"total_erc721_owned"`
	TotalERC1155Owned string             `json:"total_erc1155_owned"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	Balances          *PaginatedBalances `json:"balances,omitempty"`
}

// BalanceResponse represents the quantity of a token held by an account
type BalanceResponse struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Account   string    `json:"account"`
	Amount    string    `json:"amount"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MapAccountToDTO maps a schema.Account to AccountResponse
func MapAccountToDTO(account *schema.Account) *AccountResponse {
	return &AccountResponse{
		Address:           account.ID,
		TotalTokensOwned:  account.TotalTokensOwned.String(),
		TotalERC721Owned:  account.TotalERC721Owned.String(),
		TotalERC1155Owned: account.TotalERC1155Owned.String(),
		CreatedAt:         account.CreatedAt,
		UpdatedAt:         account.UpdatedAt,
	}
}

// MapBalancesToDTO maps a page of schema.Balance rows
func MapBalancesToDTO(balances []schema.Balance, offset uint64, total uint64) *PaginatedBalances {
	items := make([]BalanceResponse, 0, len(balances))
	for i := range balances {
		b := &balances[i]
		items = append(items, BalanceResponse{
			ID:        b.ID,
			Token:     b.TokenID,
			Account:   b.AccountID,
			Amount:    b.Amount.String(),
			UpdatedAt: b.UpdatedAt,
		})
	}
	return &PaginatedBalances{
		Balances: items,
		Offset:   NextOffset(offset, len(items), total),
		Total:    total,
	}
}
