package ledger

import (
	"context"

	"github.com/feral-file/ff-ledger/internal/domain"
	"github.com/feral-file/ff-ledger/internal/store/schema"
)

// Ledger folds decoded token events into accounts, tokens, balances, supplies and the transfer log.
// Each call is one unit of work committed in a single store transaction.
//
//go:generate mockgen -source=ledger.go -destination=../mocks/ledger.go -package=mocks -mock_names=Ledger=MockLedger
type Ledger interface {
	// OnMetadataURISet records the metadata URI of an ERC1155 token
	OnMetadataURISet(ctx context.Context, event domain.MetadataURISet) error
	// OnSingleTransfer folds an ERC1155 TransferSingle
	OnSingleTransfer(ctx context.Context, event domain.SingleTransfer) ([]*schema.Transfer, error)
	// OnBatchTransfer folds an ERC1155 TransferBatch element by element
	OnBatchTransfer(ctx context.Context, event domain.BatchTransfer) ([]*schema.Transfer, error)
	// OnLegacyTransfer folds an ERC721 Transfer
	OnLegacyTransfer(ctx context.Context, event domain.LegacyTransfer) ([]*schema.Transfer, error)
	// Handle validates a wire envelope and dispatches it to the matching handler
	Handle(ctx context.Context, event *domain.LedgerEvent) error
	// Close releases the read pool
	Close()
}
