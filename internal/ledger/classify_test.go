package ledger_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ledger/internal/domain"
	"github.com/feral-file/ff-ledger/internal/ledger"
)

func TestClassifyBatch_PreservesOrder(t *testing.T) {
	event := domain.BatchTransfer{
		EventMeta: domain.EventMeta{Contract: testContract, BlockNumber: 100, LogIndex: 7},
		Operator:  testAlice,
		From:      testAlice,
		To:        testBob,
		TokenIDs:  []*big.Int{big.NewInt(5), big.NewInt(5)},
		Amounts:   []*big.Int{big.NewInt(3), big.NewInt(2)},
	}

	transfers, err := ledger.ClassifyBatch(event)
	require.NoError(t, err)
	require.Len(t, transfers, 2)

	assert.Equal(t, "-0", transfers[0].Suffix)
	assert.Equal(t, int64(3), transfers[0].Amount.Int64())
	assert.Equal(t, "-1", transfers[1].Suffix)
	assert.Equal(t, int64(2), transfers[1].Amount.Int64())
	for _, tr := range transfers {
		assert.Equal(t, domain.StandardERC1155, tr.Standard)
		assert.Equal(t, int64(5), tr.TokenID.Int64())
	}
}

func TestClassifyBatch_LengthMismatch(t *testing.T) {
	_, err := ledger.ClassifyBatch(domain.BatchTransfer{
		EventMeta: domain.EventMeta{Contract: testContract},
		TokenIDs:  []*big.Int{big.NewInt(1), big.NewInt(2)},
		Amounts:   []*big.Int{big.NewInt(1)},
	})
	assert.ErrorIs(t, err, domain.ErrMalformedEvent)
}

func TestClassifySingle(t *testing.T) {
	transfers := ledger.ClassifySingle(domain.SingleTransfer{
		EventMeta: domain.EventMeta{Contract: "0x1111111111111111111111111111111111111111"},
		Operator:  "0xCcCCccccCCCCcCCCCCCcCcCccCcCCCcCcccccccC",
		From:      domain.ETHEREUM_ZERO_ADDRESS,
		To:        testBob,
		TokenID:   big.NewInt(1),
		Amount:    big.NewInt(10),
	})

	require.Len(t, transfers, 1)
	assert.Equal(t, "", transfers[0].Suffix)
	assert.Equal(t, "0xcccccccccccccccccccccccccccccccccccccccc", transfers[0].Operator)
	assert.True(t, transfers[0].IsMint())
	assert.False(t, transfers[0].IsBurn())
}

func TestClassifyLegacy(t *testing.T) {
	transfers := ledger.ClassifyLegacy(domain.LegacyTransfer{
		EventMeta: domain.EventMeta{Contract: testContract},
		From:      testAlice,
		To:        domain.ETHEREUM_ZERO_ADDRESS,
		TokenID:   big.NewInt(42),
	})

	require.Len(t, transfers, 1)
	tr := transfers[0]
	assert.Equal(t, testAlice, tr.Operator)
	assert.Equal(t, testAlice, tr.From)
	assert.Equal(t, int64(1), tr.Amount.Int64())
	assert.Equal(t, domain.StandardERC721, tr.Standard)
	assert.True(t, tr.IsBurn())
}
