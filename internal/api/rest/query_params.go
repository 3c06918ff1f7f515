package rest

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-ledger/internal/api/shared/constants"
	"github.com/feral-file/ff-ledger/internal/domain"
)

// PaginationQueryParams holds the page of a nested list (balances, tokens, holders)
type PaginationQueryParams struct {
	Limit  int    `form:"limit,default=20"`
	Offset uint64 `form:"offset,default=0"`
}

// ListTransfersQueryParams holds query parameters for GET /transfers
type ListTransfersQueryParams struct {
	// Filters
	Token    string `form:"token"`
	Contract string `form:"contract"`
	Account  string `form:"account"`

	// Pagination
	Limit  int    `form:"limit,default=20"`
	Offset uint64 `form:"offset,default=0"`
}

// ParsePaginationQuery parses the limit and offset query parameters
func ParsePaginationQuery(c *gin.Context) (*PaginationQueryParams, error) {
	var params PaginationQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limit
	if params.Limit > constants.MAX_PAGE_SIZE {
		params.Limit = constants.MAX_PAGE_SIZE
	}

	return &params, nil
}

// Validate validates the pagination parameters
func (p *PaginationQueryParams) Validate() error {
	if p.Limit < 1 {
		return fmt.Errorf("limit must be between 1 and %d", constants.MAX_PAGE_SIZE)
	}
	return nil
}

// ParseListTransfersQuery parses query parameters for GET /transfers
func ParseListTransfersQuery(c *gin.Context) (*ListTransfersQueryParams, error) {
	var params ListTransfersQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limit
	if params.Limit > constants.MAX_PAGE_SIZE {
		params.Limit = constants.MAX_PAGE_SIZE
	}

	return &params, nil
}

// Validate validates the transfer filters and normalizes them to store keys
func (p *ListTransfersQueryParams) Validate() error {
	if p.Limit < 1 {
		return fmt.Errorf("limit must be between 1 and %d", constants.MAX_PAGE_SIZE)
	}

	if p.Contract != "" {
		if !isAddress(p.Contract) {
			return fmt.Errorf("invalid contract address: %s", p.Contract)
		}
		p.Contract = domain.NormalizeAddress(p.Contract)
	}

	if p.Account != "" {
		if !isAddress(p.Account) {
			return fmt.Errorf("invalid account address: %s", p.Account)
		}
		p.Account = domain.NormalizeAddress(p.Account)
	}

	if p.Token != "" {
		tokenKey, err := parseTokenKey(p.Token)
		if err != nil {
			return err
		}
		p.Token = tokenKey
	}

	return nil
}
