package replay_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ledger/internal/adapter"
	"github.com/feral-file/ff-ledger/internal/domain"
	"github.com/feral-file/ff-ledger/internal/ledger"
	"github.com/feral-file/ff-ledger/internal/mocks"
	"github.com/feral-file/ff-ledger/internal/replay"
	"github.com/feral-file/ff-ledger/internal/store"
)

const (
	testContract = "0x9ca8887d13bc4591ae36972702fdf9de2c97957f"
	testAlice    = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	testBob      = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

	mintLine = `{"kind":"transfer_single","chain":"eip155:1","contract_address":"` + testContract + `","operator":"` + testAlice + `","from":"0x0000000000000000000000000000000000000000","to":"` + testAlice + `","token_id":"1","amount":"5","tx_hash":"0x01","block_number":100,"log_index":0,"timestamp":"2024-01-01T00:00:00Z"}`
	sendLine = `{"kind":"transfer_single","chain":"eip155:1","contract_address":"` + testContract + `","operator":"` + testAlice + `","from":"` + testAlice + `","to":"` + testBob + `","token_id":"1","amount":"2","tx_hash":"0x02","block_number":101,"log_index":3,"timestamp":"2024-01-01T00:00:12Z"}`
)

func fileWith(fs *mocks.MockFileSystem, content string) {
	fs.EXPECT().Open("events.ndjson").Return(io.NopCloser(strings.NewReader(content)), nil)
}

func TestReplayIntoLedger(t *testing.T) {
	ctrl := gomock.NewController(t)
	fs := mocks.NewMockFileSystem(ctrl)
	reader := mocks.NewMockContractReader(ctrl)

	reader.EXPECT().Name(gomock.Any(), testContract).Return("Editions", nil).Times(1)
	reader.EXPECT().Symbol(gomock.Any(), testContract).Return("ED", nil).Times(1)
	reader.EXPECT().URIPrefix(gomock.Any(), testContract, domain.StandardERC1155).Return("ipfs://", nil).Times(1)

	s := store.NewMemoryStore()
	engine := ledger.NewEngine(s, reader, adapter.NewJSON(), ledger.Options{Mode: ledger.AccountingModeExact})
	t.Cleanup(engine.Close)

	// the mint is delivered twice and one line is garbage
	fileWith(fs, strings.Join([]string{mintLine, "", "{not json", mintLine, sendLine}, "\n"))

	summary, err := replay.NewReplayer(fs, adapter.NewJSON(), replay.LedgerTarget(engine)).Run(context.Background(), "events.ndjson")
	require.NoError(t, err)
	assert.Equal(t, replay.Summary{Lines: 4, Applied: 2, Duplicates: 1, Skipped: 1}, summary)

	tokenKey := testContract + "-0x1"
	alice, err := s.GetBalance(context.Background(), tokenKey+"-"+testAlice)
	require.NoError(t, err)
	require.NotNil(t, alice)
	assert.Equal(t, "3", alice.Amount.String())

	bob, err := s.GetBalance(context.Background(), tokenKey+"-"+testBob)
	require.NoError(t, err)
	require.NotNil(t, bob)
	assert.Equal(t, "2", bob.Amount.String())
}

func TestReplayStopsOnStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	fs := mocks.NewMockFileSystem(ctrl)
	l := mocks.NewMockLedger(ctrl)

	fileWith(fs, mintLine+"\n"+sendLine+"\n")

	gomock.InOrder(
		l.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(nil),
		l.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(domain.ErrStoreUnavailable),
	)

	summary, err := replay.NewReplayer(fs, adapter.NewJSON(), replay.LedgerTarget(l)).Run(context.Background(), "events.ndjson")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
	assert.Equal(t, 2, summary.Lines)
	assert.Equal(t, 1, summary.Applied)
}

func TestReplayMalformedEventIsSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	fs := mocks.NewMockFileSystem(ctrl)
	l := mocks.NewMockLedger(ctrl)

	fileWith(fs, mintLine)
	l.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(domain.ErrMalformedEvent)

	summary, err := replay.NewReplayer(fs, adapter.NewJSON(), replay.LedgerTarget(l)).Run(context.Background(), "events.ndjson")
	require.NoError(t, err)
	assert.Equal(t, replay.Summary{Lines: 1, Skipped: 1}, summary)
}

func TestReplayOpenError(t *testing.T) {
	ctrl := gomock.NewController(t)
	fs := mocks.NewMockFileSystem(ctrl)
	l := mocks.NewMockLedger(ctrl)

	fs.EXPECT().Open("missing.ndjson").Return(nil, errors.New("no such file"))

	_, err := replay.NewReplayer(fs, adapter.NewJSON(), replay.LedgerTarget(l)).Run(context.Background(), "missing.ndjson")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open missing.ndjson")
}

func TestReplayCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	fs := mocks.NewMockFileSystem(ctrl)
	l := mocks.NewMockLedger(ctrl)

	fileWith(fs, mintLine)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := replay.NewReplayer(fs, adapter.NewJSON(), replay.LedgerTarget(l)).Run(ctx, "events.ndjson")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReplayToPublisher(t *testing.T) {
	ctrl := gomock.NewController(t)
	fs := mocks.NewMockFileSystem(ctrl)
	pub := mocks.NewMockPublisher(ctrl)

	badKind := `{"kind":"approval","contract_address":"` + testContract + `","tx_hash":"0x03","block_number":102}`
	fileWith(fs, mintLine+"\n"+badKind+"\n"+sendLine)

	var published []uint64
	pub.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *domain.LedgerEvent) error {
			published = append(published, e.BlockNumber)
			return nil
		}).
		Times(2)

	summary, err := replay.NewReplayer(fs, adapter.NewJSON(), replay.PublisherTarget(pub)).Run(context.Background(), "events.ndjson")
	require.NoError(t, err)
	assert.Equal(t, replay.Summary{Lines: 3, Applied: 2, Skipped: 1}, summary)
	assert.Equal(t, []uint64{100, 101}, published)
}
