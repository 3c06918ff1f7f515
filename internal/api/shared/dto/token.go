package dto

import (
	"time"

	"github.com/feral-file/ff-ledger/internal/domain"
	"github.com/feral-file/ff-ledger/internal/store/schema"
)

// ContractResponse represents a collection with its tokens
type ContractResponse struct {
	Address     string           `json:"address"`
	Standard    domain.Standard  `json:"standard"`
	Name        string           `json:"name"`
	Symbol      string           `json:"symbol"`
	URIPrefix   string           `json:"uri_prefix"`
	TotalSupply string           `json:"total_supply"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Tokens      *PaginatedTokens `json:"tokens,omitempty"`
}

// TokenResponse represents a token with its holders
type TokenResponse struct {
	ID            string             `json:"id"`
	Contract      string             `json:"contract"`
	TokenID       string             `json:"token_id"`
	Standard      domain.Standard    `json:"standard"`
	URI           string             `json:"uri"`
	Creator       *string            `json:"creator"`
	MintTimestamp *time.Time         `json:"mint_timestamp"`
	TotalSupply   string             `json:"total_supply"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Holders       *PaginatedBalances `json:"holders,omitempty"`
}

// MapContractToDTO maps a schema.Contract to ContractResponse
func MapContractToDTO(contract *schema.Contract) *ContractResponse {
	return &ContractResponse{
		Address:     contract.ID,
		Standard:    contract.Standard,
		Name:        contract.Name,
		Symbol:      contract.Symbol,
		URIPrefix:   contract.URIPrefix,
		TotalSupply: contract.TotalSupply.String(),
		CreatedAt:   contract.CreatedAt,
		UpdatedAt:   contract.UpdatedAt,
	}
}

// MapTokenToDTO maps a schema.Token to TokenResponse
func MapTokenToDTO(token *schema.Token) *TokenResponse {
	return &TokenResponse{
		ID:            token.ID,
		Contract:      token.ContractID,
		TokenID:       token.TokenID.String(),
		Standard:      token.Standard,
		URI:           token.URI,
		Creator:       token.Creator,
		MintTimestamp: token.MintTimestamp,
		TotalSupply:   token.TotalSupply.String(),
		CreatedAt:     token.CreatedAt,
		UpdatedAt:     token.UpdatedAt,
	}
}

// MapTokensToDTO maps a page of schema.Token rows
func MapTokensToDTO(tokens []schema.Token, offset uint64, total uint64) *PaginatedTokens {
	items := make([]TokenResponse, 0, len(tokens))
	for i := range tokens {
		items = append(items, *MapTokenToDTO(&tokens[i]))
	}
	return &PaginatedTokens{
		Tokens: items,
		Offset: NextOffset(offset, len(items), total),
		Total:  total,
	}
}
