package rest

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ledger/internal/api/shared/dto"
	"github.com/feral-file/ff-ledger/internal/api/shared/executor"
	"github.com/feral-file/ff-ledger/internal/domain"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// GetAccount retrieves an account with its non-zero balances
	// GET /api/v1/accounts/:address?limit=<limit>&offset=<offset>
	GetAccount(c *gin.Context)

	// GetContract retrieves a collection with its tokens
	// GET /api/v1/contracts/:address?limit=<limit>&offset=<offset>
	GetContract(c *gin.Context)

	// GetToken retrieves a token with its holders. The token id is decimal or 0x-prefixed hex.
	// GET /api/v1/tokens/:contract/:token_id?limit=<limit>&offset=<offset>
	GetToken(c *gin.Context)

	// GetTransfer retrieves a single transfer record
	// GET /api/v1/transfers/:id
	GetTransfer(c *gin.Context)

	// ListTransfers retrieves transfer records in chain order
	// GET /api/v1/transfers?token=<token key>&contract=<address>&account=<address>&limit=<limit>&offset=<offset>
	ListTransfers(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{
		executor: exec,
	}
}

// GetAccount retrieves an account by its address
func (h *handler) GetAccount(c *gin.Context) {
	address := c.Param("address")
	if !isAddress(address) {
		respondBadRequest(c, "Invalid account address", address)
		return
	}

	queryParams, err := ParsePaginationQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if err := queryParams.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	accountDTO, err := h.executor.GetAccount(c.Request.Context(), address, &queryParams.Limit, &queryParams.Offset)
	if err != nil {
		respondInternalError(c, err, "Failed to get account", zap.String("address", address))
		return
	}

	if accountDTO == nil {
		respondNotFound(c, "Account not found")
		return
	}

	c.JSON(http.StatusOK, accountDTO)
}

// GetContract retrieves a collection by its address
func (h *handler) GetContract(c *gin.Context) {
	address := c.Param("address")
	if !isAddress(address) {
		respondBadRequest(c, "Invalid contract address", address)
		return
	}

	queryParams, err := ParsePaginationQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if err := queryParams.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	contractDTO, err := h.executor.GetContract(c.Request.Context(), address, &queryParams.Limit, &queryParams.Offset)
	if err != nil {
		respondInternalError(c, err, "Failed to get contract", zap.String("address", address))
		return
	}

	if contractDTO == nil {
		respondNotFound(c, "Contract not found")
		return
	}

	c.JSON(http.StatusOK, contractDTO)
}

// GetToken retrieves a token by contract address and token id
func (h *handler) GetToken(c *gin.Context) {
	contract := c.Param("contract")
	if !isAddress(contract) {
		respondBadRequest(c, "Invalid contract address", contract)
		return
	}

	tokenID, err := domain.ParseUint256(c.Param("token_id"))
	if err != nil {
		respondBadRequest(c, "Invalid token id", err.Error())
		return
	}

	queryParams, err := ParsePaginationQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if err := queryParams.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	tokenDTO, err := h.executor.GetToken(c.Request.Context(), contract, tokenID, &queryParams.Limit, &queryParams.Offset)
	if err != nil {
		respondInternalError(c, err, "Failed to get token", zap.String("contract", contract), zap.String("token_id", tokenID.String()))
		return
	}

	if tokenDTO == nil {
		respondNotFound(c, "Token not found")
		return
	}

	c.JSON(http.StatusOK, tokenDTO)
}

// GetTransfer retrieves a transfer record by its key
func (h *handler) GetTransfer(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondBadRequest(c, "Transfer id is required")
		return
	}

	transferDTO, err := h.executor.GetTransfer(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "Failed to get transfer", zap.String("id", id))
		return
	}

	if transferDTO == nil {
		respondNotFound(c, "Transfer not found")
		return
	}

	c.JSON(http.StatusOK, transferDTO)
}

// ListTransfers retrieves transfer records with optional filters
func (h *handler) ListTransfers(c *gin.Context) {
	queryParams, err := ParseListTransfersQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := queryParams.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.GetTransfers(
		c.Request.Context(),
		queryParams.Token,
		queryParams.Contract,
		queryParams.Account,
		&queryParams.Limit,
		&queryParams.Offset,
	)
	if err != nil {
		respondInternalError(c, err, "Failed to list transfers")
		return
	}

	c.JSON(http.StatusOK, response)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Service: "ff-ledger-api",
	})
}

func isAddress(address string) bool {
	return common.IsHexAddress(address)
}

// parseTokenKey validates a "<contract>-<token id>" filter and returns the canonical token key
func parseTokenKey(key string) (string, error) {
	contract, rawID, found := strings.Cut(key, "-")
	if !found || !isAddress(contract) {
		return "", fmt.Errorf("invalid token key: %s", key)
	}

	tokenID, err := domain.ParseUint256(rawID)
	if err != nil {
		return "", fmt.Errorf("invalid token key: %s: %w", key, err)
	}

	return domain.TokenKey(domain.NormalizeAddress(contract), tokenID), nil
}
