package replay

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ledger/internal/adapter"
	"github.com/feral-file/ff-ledger/internal/domain"
	"github.com/feral-file/ff-ledger/internal/ledger"
	"github.com/feral-file/ff-ledger/internal/logger"
	"github.com/feral-file/ff-ledger/internal/messaging"
)

// maxLineSize bounds one NDJSON line; batch transfers can carry long id arrays
const maxLineSize = 4 * 1024 * 1024

// Target receives replayed events in file order
type Target interface {
	Apply(ctx context.Context, event *domain.LedgerEvent) error
}

// Summary counts what happened to every line of a replay
type Summary struct {
	Lines      int
	Applied    int
	Duplicates int
	Skipped    int
}

// Replayer feeds NDJSON ledger events to a target
type Replayer interface {
	// Run replays the named file ("-" for standard input).
	// Malformed lines and duplicates are counted and skipped; any other error stops the replay.
	Run(ctx context.Context, path string) (Summary, error)
}

type replayer struct {
	fs     adapter.FileSystem
	json   adapter.JSON
	target Target
}

// NewReplayer creates a replayer reading through the given file system
func NewReplayer(fs adapter.FileSystem, jsonAdapter adapter.JSON, target Target) Replayer {
	return &replayer{
		fs:     fs,
		json:   jsonAdapter,
		target: target,
	}
}

func (r *replayer) Run(ctx context.Context, path string) (Summary, error) {
	var summary Summary

	f, err := r.fs.Open(path)
	if err != nil {
		return summary, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		summary.Lines++

		var event domain.LedgerEvent
		if err := r.json.Unmarshal(line, &event); err != nil {
			logger.WarnCtx(ctx, "Skipping unparseable line", zap.Int("line", summary.Lines), zap.Error(err))
			summary.Skipped++
			continue
		}

		err := r.target.Apply(ctx, &event)
		switch {
		case err == nil:
			summary.Applied++
		case errors.Is(err, domain.ErrDuplicateTransfer):
			summary.Duplicates++
		case errors.Is(err, domain.ErrMalformedEvent):
			logger.WarnCtx(ctx, "Skipping malformed event", zap.Int("line", summary.Lines), zap.Error(err))
			summary.Skipped++
		default:
			return summary, fmt.Errorf("failed to replay line %d: %w", summary.Lines, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return summary, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return summary, nil
}

// ledgerTarget folds every event into a ledger
type ledgerTarget struct {
	ledger ledger.Ledger
}

// LedgerTarget folds replayed events directly into a ledger
func LedgerTarget(l ledger.Ledger) Target {
	return &ledgerTarget{ledger: l}
}

func (t *ledgerTarget) Apply(ctx context.Context, event *domain.LedgerEvent) error {
	return t.ledger.Handle(ctx, event)
}

// publisherTarget publishes every event to the message broker
type publisherTarget struct {
	publisher messaging.Publisher
}

// PublisherTarget publishes replayed events for the ledger worker to consume.
// Events are validated first so the stream never carries an envelope the worker would terminate.
func PublisherTarget(p messaging.Publisher) Target {
	return &publisherTarget{publisher: p}
}

func (t *publisherTarget) Apply(ctx context.Context, event *domain.LedgerEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}
	return t.publisher.PublishEvent(ctx, event)
}
