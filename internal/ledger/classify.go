package ledger

import (
	"fmt"
	"math/big"

	"github.com/feral-file/ff-ledger/internal/domain"
)

// ClassifySingle translates an ERC1155 TransferSingle into one canonical transfer
func ClassifySingle(e domain.SingleTransfer) []domain.CanonicalTransfer {
	return []domain.CanonicalTransfer{{
		Collection: domain.NormalizeAddress(e.Contract),
		Operator:   domain.NormalizeAddress(e.Operator),
		From:       domain.NormalizeAddress(e.From),
		To:         domain.NormalizeAddress(e.To),
		TokenID:    e.TokenID,
		Amount:     e.Amount,
		Standard:   domain.StandardERC1155,
		Suffix:     "",
	}}
}

// ClassifyBatch translates an ERC1155 TransferBatch into one canonical transfer per element, in array order
func ClassifyBatch(e domain.BatchTransfer) ([]domain.CanonicalTransfer, error) {
	if len(e.TokenIDs) != len(e.Amounts) {
		return nil, fmt.Errorf("%w: batch has %d token ids and %d amounts",
			domain.ErrMalformedEvent, len(e.TokenIDs), len(e.Amounts))
	}

	collection := domain.NormalizeAddress(e.Contract)
	operator := domain.NormalizeAddress(e.Operator)
	from := domain.NormalizeAddress(e.From)
	to := domain.NormalizeAddress(e.To)

	transfers := make([]domain.CanonicalTransfer, 0, len(e.TokenIDs))
	for i := range e.TokenIDs {
		transfers = append(transfers, domain.CanonicalTransfer{
			Collection: collection,
			Operator:   operator,
			From:       from,
			To:         to,
			TokenID:    e.TokenIDs[i],
			Amount:     e.Amounts[i],
			Standard:   domain.StandardERC1155,
			Suffix:     domain.BatchSuffix(i),
		})
	}

	return transfers, nil
}

// ClassifyLegacy translates an ERC721 Transfer into one canonical transfer of amount 1 operated by the sender
func ClassifyLegacy(e domain.LegacyTransfer) []domain.CanonicalTransfer {
	from := domain.NormalizeAddress(e.From)
	return []domain.CanonicalTransfer{{
		Collection: domain.NormalizeAddress(e.Contract),
		Operator:   from,
		From:       from,
		To:         domain.NormalizeAddress(e.To),
		TokenID:    e.TokenID,
		Amount:     big.NewInt(1),
		Standard:   domain.StandardERC721,
		Suffix:     "",
	}}
}
