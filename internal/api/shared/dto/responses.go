package dto

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// PaginatedBalances represents paginated balances
type PaginatedBalances struct {
	Balances []BalanceResponse `json:"items"`
	Offset   *uint64           `json:"offset,omitempty"`
	Total    uint64            `json:"total"`
}

// PaginatedTokens represents paginated tokens
type PaginatedTokens struct {
	Tokens []TokenResponse `json:"items"`
	Offset *uint64         `json:"offset,omitempty"`
	Total  uint64          `json:"total"`
}

// TransferListResponse represents a paginated list of transfers
type TransferListResponse struct {
	Transfers []TransferResponse `json:"items"`
	Offset    *uint64            `json:"offset,omitempty"`
	Total     uint64             `json:"total"`
}

// NextOffset returns the offset of the next page, nil when the page is the last one
func NextOffset(offset uint64, count int, total uint64) *uint64 {
	next := offset + uint64(count) //nolint:gosec,G115
	if count == 0 || next >= total {
		return nil
	}
	return &next
}
