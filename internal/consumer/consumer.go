package consumer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ledger/internal/adapter"
	"github.com/feral-file/ff-ledger/internal/domain"
	"github.com/feral-file/ff-ledger/internal/ledger"
	"github.com/feral-file/ff-ledger/internal/logger"
	"github.com/feral-file/ff-ledger/internal/registry"
	"github.com/feral-file/ff-ledger/internal/store"
)

// Config holds the configuration for the ledger consumer
type Config struct {
	URL            string
	StreamName     string
	SubjectPrefix  string
	ConsumerName   string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	AckWaitTimeout time.Duration
	MaxDeliver     int

	// Retry bounds the backoff applied while the store is unavailable
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMaxElapsedTime  time.Duration

	// CursorSaveEvents and CursorSaveInterval checkpoint the last folded block,
	// whichever threshold is reached first
	CursorSaveEvents   int
	CursorSaveInterval time.Duration
}

// Consumer defines the interface for the ledger consumer
type Consumer interface {
	// Run consumes events until the context is canceled
	Run(ctx context.Context) error
	// Close closes the NATS connection
	Close()
}

// outcome is how a message is settled after folding
type outcome int

const (
	outcomeAck outcome = iota
	outcomeDuplicate
	outcomeTerm
	outcomeNak
)

type consumer struct {
	nc        adapter.NatsConn
	js        adapter.JetStream
	ledger    ledger.Ledger
	blacklist registry.BlacklistRegistry
	cursor    store.CursorStore
	json      adapter.JSON
	clock     adapter.Clock
	config    Config

	// checkpoint state, touched only by the Run goroutine
	pending      map[domain.Chain]uint64
	sinceSave    int
	lastSaveTime time.Time
}

// NewConsumer connects to NATS and creates a ledger consumer
func NewConsumer(
	cfg Config,
	natsJS adapter.NatsJetStream,
	l ledger.Ledger,
	blacklist registry.BlacklistRegistry,
	cursor store.CursorStore,
	jsonAdapter adapter.JSON,
	clock adapter.Clock,
) (Consumer, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return &consumer{
		nc:        nc,
		js:        js,
		ledger:    l,
		blacklist: blacklist,
		cursor:    cursor,
		json:      jsonAdapter,
		clock:     clock,
		config:    cfg,
		pending:   make(map[domain.Chain]uint64),
	}, nil
}

// Run consumes events one at a time, in stream order, until the context is canceled
func (c *consumer) Run(ctx context.Context) error {
	logger.InfoCtx(ctx, "Starting ledger consumer",
		zap.String("stream", c.config.StreamName),
		zap.String("consumer", c.config.ConsumerName))

	if err := c.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     c.config.StreamName,
		Subjects: []string{c.config.SubjectPrefix + ".>"},
	}); err != nil {
		return fmt.Errorf("failed to create/update stream: %w", err)
	}

	// A single outstanding message keeps delivery strictly ordered
	consumerConfig := jetstream.ConsumerConfig{
		Durable:       c.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       c.config.AckWaitTimeout,
		MaxDeliver:    c.config.MaxDeliver,
		MaxAckPending: 1,
		DeliverPolicy: jetstream.DeliverAllPolicy,
		FilterSubject: c.config.SubjectPrefix + ".>",
	}

	cons, err := c.js.CreateOrUpdateConsumer(ctx, c.config.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	info, err := cons.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.InfoCtx(ctx, "Consumer created/retrieved",
		zap.String("consumer", info.Name),
		zap.Uint64("pending", info.NumPending))

	msgChan := make(chan adapter.Message)
	sub, err := cons.Consume(func(msg adapter.Message) {
		select {
		case msgChan <- msg:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	c.lastSaveTime = c.clock.Now()
	logger.InfoCtx(ctx, "Started consuming ledger events")

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Shutting down ledger consumer")
			// the run context is gone, flush with a fresh one
			c.flushCursor(context.WithoutCancel(ctx))
			return ctx.Err()
		case msg := <-msgChan:
			c.handleMessage(ctx, msg)
		}
	}
}

// handleMessage folds one message and settles it
func (c *consumer) handleMessage(ctx context.Context, msg adapter.Message) {
	var deliveries uint64
	if metadata, err := msg.Metadata(); err == nil {
		deliveries = metadata.NumDelivered
	}

	var event domain.LedgerEvent
	if err := c.json.Unmarshal(msg.Data(), &event); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to unmarshal ledger event"), zap.String("subject", msg.Subject()))
		c.settle(ctx, msg, outcomeTerm, fmt.Errorf("%w: %w", domain.ErrMalformedEvent, err))
		return
	}

	logger.DebugCtx(ctx, "Received ledger event",
		zap.String("kind", string(event.Kind)),
		zap.String("contract", event.ContractAddress),
		zap.Uint64("block", event.BlockNumber),
		zap.Uint64("log_index", event.LogIndex),
		zap.Uint64("delivery_count", deliveries))

	if c.blacklist != nil && c.blacklist.IsBlacklisted(event.Chain, event.ContractAddress) {
		logger.InfoCtx(ctx, "Skipping event of blacklisted contract", zap.String("contract", event.ContractAddress))
		c.settle(ctx, msg, outcomeAck, nil)
		c.advanceCursor(ctx, &event)
		return
	}

	out, err := c.process(ctx, msg, &event)
	c.settle(ctx, msg, out, err)

	if out == outcomeAck || out == outcomeDuplicate {
		c.advanceCursor(ctx, &event)
	}
}

// process hands the event to the ledger, retrying while the store is unavailable
func (c *consumer) process(ctx context.Context, msg adapter.Message, event *domain.LedgerEvent) (outcome, error) {
	b := backoff.NewExponentialBackOff()
	if c.config.RetryInitialInterval > 0 {
		b.InitialInterval = c.config.RetryInitialInterval
	}
	if c.config.RetryMaxInterval > 0 {
		b.MaxInterval = c.config.RetryMaxInterval
	}
	b.MaxElapsedTime = c.config.RetryMaxElapsedTime

	operation := func() error {
		err := c.ledger.Handle(ctx, event)
		if err == nil || ledger.IsRetryable(err) {
			return err
		}
		return backoff.Permanent(err)
	}

	var attemptCount int
	notifyOnError := func(err error, next time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Store unavailable, retrying ledger event",
			zap.Error(err),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", next))
		// keep the message from being redelivered while we retry
		if err := msg.InProgress(); err != nil {
			logger.WarnCtx(ctx, "Failed to extend ack deadline", zap.Error(err))
		}
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notifyOnError)
	switch {
	case err == nil:
		return outcomeAck, nil
	case errors.Is(err, domain.ErrDuplicateTransfer):
		return outcomeDuplicate, err
	case ledger.IsRetryable(err), errors.Is(err, context.Canceled):
		return outcomeNak, fmt.Errorf("failed after %d attempts: %w", attemptCount+1, err)
	default:
		return outcomeTerm, err
	}
}

// settle acknowledges, terminates or negatively acknowledges a message
func (c *consumer) settle(ctx context.Context, msg adapter.Message, out outcome, cause error) {
	var err error
	switch out {
	case outcomeAck:
		err = msg.Ack()
	case outcomeDuplicate:
		logger.InfoCtx(ctx, "Ledger event already applied", zap.Error(cause))
		err = msg.Ack()
	case outcomeTerm:
		logger.ErrorCtx(ctx, cause, zap.String("message", "Rejecting ledger event"))
		err = msg.TermWithReason(cause.Error())
	case outcomeNak:
		logger.ErrorCtx(ctx, cause, zap.String("message", "Ledger event will be redelivered"))
		err = msg.Nak()
	}
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to settle message"))
	}
}

// advanceCursor records the folded block and checkpoints it every N events or N seconds
func (c *consumer) advanceCursor(ctx context.Context, event *domain.LedgerEvent) {
	chain := event.Chain
	if chain == "" {
		chain = domain.ChainEthereumMainnet
	}
	if event.BlockNumber >= c.pending[chain] {
		c.pending[chain] = event.BlockNumber
	}
	c.sinceSave++

	shouldSave := c.sinceSave >= c.config.CursorSaveEvents ||
		c.clock.Since(c.lastSaveTime) >= c.config.CursorSaveInterval
	if shouldSave {
		c.flushCursor(ctx)
	}
}

// flushCursor writes every pending chain cursor
func (c *consumer) flushCursor(ctx context.Context) {
	if c.sinceSave == 0 {
		return
	}

	for chain, block := range c.pending {
		if err := c.cursor.SetBlockCursor(ctx, string(chain), block); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to save block cursor"), zap.String("chain", string(chain)))
			return
		}
		logger.DebugCtx(ctx, "Saved block cursor", zap.String("chain", string(chain)), zap.Uint64("block", block))
	}

	c.sinceSave = 0
	c.lastSaveTime = c.clock.Now()
}

// Close closes the NATS connection
func (c *consumer) Close() {
	if c.nc == nil {
		return
	}

	c.nc.Close()
}
