package messaging

import (
	"context"

	"github.com/feral-file/ff-ledger/internal/domain"
)

// Publisher defines the interface for publishing ledger events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// EnsureStream creates or updates the stream the events are published to
	EnsureStream(ctx context.Context) error
	// PublishEvent publishes a ledger event on its kind subject
	PublishEvent(ctx context.Context, event *domain.LedgerEvent) error
	// Close closes the connection
	Close()
}
