package fulfillment

import (
	"context"

	"concierge-backend/internal/model"
)

// Message is one queued request as handed out by the queue adapter. Receipt is
// the adapter-specific acknowledgement handle and is passed back verbatim on
// Ack.
type Message struct {
	Body    []byte
	Receipt any
}

// Queue is the at-least-once request queue the worker drains. ReceiveBatch
// returns up to max pending messages, or an empty slice when none arrive
// within the adapter's poll window. Ack removes one message; acking a message
// that was already removed (duplicate delivery) must not fail.
type Queue interface {
	ReceiveBatch(ctx context.Context, max int) ([]Message, error)
	Ack(ctx context.Context, msg Message) error
}

// Index resolves one business id for a cuisine, chosen uniformly at random
// among current matches. An empty cuisine set yields ("", nil).
type Index interface {
	RandomByCuisine(ctx context.Context, cuisine string) (string, error)
}

// Catalog is the read side of the restaurant store. A missing id yields
// (nil, nil); the index may briefly reference ids the catalog does not hold.
type Catalog interface {
	GetByID(ctx context.Context, businessID string) (*model.RestaurantRecord, error)
}

// Sender delivers one notification and returns the provider message id.
type Sender interface {
	Send(ctx context.Context, recipient, subject, body string) (string, error)
}

// ProcessedSet records request ids atomically. Seen adds the id if absent and
// reports whether it was already present, so a redelivered request is detected
// before its email is dispatched.
type ProcessedSet interface {
	Seen(ctx context.Context, requestID string) (bool, error)
}

// DeadLetters receives copies of requests the worker refuses to process, for
// manual inspection.
type DeadLetters interface {
	Publish(ctx context.Context, body []byte, reason string) error
}
