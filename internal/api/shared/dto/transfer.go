package dto

import (
	"time"

	"github.com/feral-file/ff-ledger/internal/store/schema"
)

// TransferResponse represents one transfer log record
type TransferResponse struct {
	ID          string    `json:"id"`
	TxHash      string    `json:"tx_hash"`
	BlockNumber uint64    `json:"block_number"`
	LogIndex    uint64    `json:"log_index"`
	BatchIndex  uint64    `json:"batch_index"`
	Timestamp   time.Time `json:"timestamp"`
	Contract    string    `json:"contract"`
	Token       string    `json:"token"`
	Operator    string    `json:"operator"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Value       string    `json:"value"`
	FromBalance *string   `json:"from_balance"`
	ToBalance   *string   `json:"to_balance"`
}

// MapTransferToDTO maps a schema.Transfer to TransferResponse
func MapTransferToDTO(transfer *schema.Transfer) *TransferResponse {
	return &TransferResponse{
		ID:          transfer.ID,
		TxHash:      transfer.TxHash,
		BlockNumber: transfer.BlockNumber,
		LogIndex:    transfer.LogIndex,
		BatchIndex:  transfer.BatchIndex,
		Timestamp:   transfer.Timestamp,
		Contract:    transfer.ContractID,
		Token:       transfer.TokenID,
		Operator:    transfer.Operator,
		From:        transfer.FromAddress,
		To:          transfer.ToAddress,
		Value:       transfer.Value.String(),
		FromBalance: transfer.FromBalanceID,
		ToBalance:   transfer.ToBalanceID,
	}
}

// MapTransfersToDTO maps a page of schema.Transfer rows
func MapTransfersToDTO(transfers []schema.Transfer, offset uint64, total uint64) *TransferListResponse {
	items := make([]TransferResponse, 0, len(transfers))
	for i := range transfers {
		items = append(items, *MapTransferToDTO(&transfers[i]))
	}
	return &TransferListResponse{
		Transfers: items,
		Offset:    NextOffset(offset, len(items), total),
		Total:     total,
	}
}
