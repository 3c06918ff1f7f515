package jetstream_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ledger/internal/adapter"
	"github.com/feral-file/ff-ledger/internal/domain"
	"github.com/feral-file/ff-ledger/internal/logger"
	"github.com/feral-file/ff-ledger/internal/messaging"
	"github.com/feral-file/ff-ledger/internal/mocks"
	"github.com/feral-file/ff-ledger/internal/providers/jetstream"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testPublisherMocks struct {
	ctrl      *gomock.Controller
	natsJS    *mocks.MockNatsJetStream
	conn      *mocks.MockNatsConn
	js        *mocks.MockJetStream
	json      *mocks.MockJSON
	publisher messaging.Publisher
}

func setupTestPublisher(t *testing.T, jsonAdapter adapter.JSON) *testPublisherMocks {
	ctrl := gomock.NewController(t)
	tm := &testPublisherMocks{
		ctrl:   ctrl,
		natsJS: mocks.NewMockNatsJetStream(ctrl),
		conn:   mocks.NewMockNatsConn(ctrl),
		js:     mocks.NewMockJetStream(ctrl),
		json:   mocks.NewMockJSON(ctrl),
	}
	if jsonAdapter == nil {
		jsonAdapter = tm.json
	}

	tm.natsJS.EXPECT().Connect("nats://localhost:4222", gomock.Any()).Return(tm.conn, tm.js, nil)

	p, err := jetstream.NewPublisher(jetstream.Config{
		URL:            "nats://localhost:4222",
		StreamName:     "LEDGER_EVENTS",
		SubjectPrefix:  "ledger.events",
		MaxReconnects:  3,
		ReconnectWait:  time.Second,
		ConnectionName: "ledger-replay",
	}, tm.natsJS, jsonAdapter)
	require.NoError(t, err)
	tm.publisher = p

	return tm
}

func testEvent() *domain.LedgerEvent {
	return &domain.LedgerEvent{
		Kind:            domain.EventKindTransfer,
		Chain:           domain.ChainEthereumMainnet,
		ContractAddress: "0x9ca8887d13bc4591ae36972702fdf9de2c97957f",
		From:            "0x0000000000000000000000000000000000000000",
		To:              "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		TokenID:         "1",
		TxHash:          "0x01",
		BlockNumber:     100,
		LogIndex:        3,
		Timestamp:       time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewPublisher_ConnectError(t *testing.T) {
	ctrl := gomock.NewController(t)
	natsJS := mocks.NewMockNatsJetStream(ctrl)
	natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(nil, nil, errors.New("no servers available"))

	_, err := jetstream.NewPublisher(jetstream.Config{URL: "nats://nowhere:4222"}, natsJS, adapter.NewJSON())
	assert.Error(t, err)
}

func TestPublisher_EnsureStream(t *testing.T) {
	tm := setupTestPublisher(t, adapter.NewJSON())
	tm.js.EXPECT().CreateOrUpdateStream(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, cfg natsjs.StreamConfig) error {
		assert.Equal(t, "LEDGER_EVENTS", cfg.Name)
		assert.Equal(t, []string{"ledger.events.>"}, cfg.Subjects)
		return nil
	})

	require.NoError(t, tm.publisher.EnsureStream(context.Background()))
}

func TestPublisher_PublishEvent(t *testing.T) {
	tm := setupTestPublisher(t, adapter.NewJSON())
	tm.js.EXPECT().
		Publish(gomock.Any(), "ledger.events.eip155_1.transfer", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, opts ...natsjs.PublishOpt) (*natsjs.PubAck, error) {
			assert.Contains(t, string(data), `"kind":"transfer"`)
			assert.Contains(t, string(data), `"block_number":100`)
			assert.Len(t, opts, 1)
			return &natsjs.PubAck{Stream: "LEDGER_EVENTS", Sequence: 1}, nil
		})

	require.NoError(t, tm.publisher.PublishEvent(context.Background(), testEvent()))
}

func TestPublisher_PublishEventErrors(t *testing.T) {
	t.Run("marshal", func(t *testing.T) {
		tm := setupTestPublisher(t, nil)
		tm.json.EXPECT().Marshal(gomock.Any()).Return(nil, errors.New("boom"))

		err := tm.publisher.PublishEvent(context.Background(), testEvent())
		assert.ErrorContains(t, err, "failed to marshal event")
	})

	t.Run("publish", func(t *testing.T) {
		tm := setupTestPublisher(t, nil)
		tm.json.EXPECT().Marshal(gomock.Any()).Return([]byte(`{}`), nil)
		tm.js.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("no responders"))

		err := tm.publisher.PublishEvent(context.Background(), testEvent())
		assert.ErrorContains(t, err, "failed to publish event")
	})
}

func TestPublisher_Close(t *testing.T) {
	tm := setupTestPublisher(t, adapter.NewJSON())
	tm.conn.EXPECT().Close()
	tm.publisher.Close()
}
