package kstream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"concierge-backend/internal/fulfillment"
)

// Consumer adapts a kafka-go consumer group to the worker's Queue contract.
// Offsets are committed explicitly per message (the acknowledge), never
// auto-committed: a crash between processing and commit leaves the message on
// the topic for redelivery, which is the at-least-once contract the worker is
// written against.
type Consumer struct {
	reader   *kafka.Reader
	pollWait time.Duration
}

// NewConsumer creates a consumer-group reader for the request topic.
// kafka.Reader handles group coordination and partition assignment.
func NewConsumer(brokers []string, topic, groupID string, pollWait time.Duration) *Consumer {
	if pollWait <= 0 {
		pollWait = 2 * time.Second
	}
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 1,
			MaxBytes: 10e6,
			// Short fetch wait so an empty topic returns control quickly.
			MaxWait: 500 * time.Millisecond,
		}),
		pollWait: pollWait,
	}
}

// ReceiveBatch fetches up to max messages, waiting at most the configured
// poll window. An idle topic yields an empty slice and no error.
func (c *Consumer) ReceiveBatch(ctx context.Context, max int) ([]fulfillment.Message, error) {
	batchCtx, cancel := context.WithTimeout(ctx, c.pollWait)
	defer cancel()

	msgs := make([]fulfillment.Message, 0, max)
	for len(msgs) < max {
		m, err := c.reader.FetchMessage(batchCtx)
		if err != nil {
			// Poll window elapsed: return whatever arrived.
			if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
				return msgs, nil
			}
			if ctx.Err() != nil {
				return msgs, ctx.Err()
			}
			return msgs, fmt.Errorf("fetch message: %w", err)
		}
		msgs = append(msgs, fulfillment.Message{Body: m.Value, Receipt: m})
	}
	return msgs, nil
}

// Ack commits the message's offset. Committing an offset the group already
// advanced past is harmless, so acking a redelivered message that was
// processed before cannot fail the worker.
func (c *Consumer) Ack(ctx context.Context, msg fulfillment.Message) error {
	m, ok := msg.Receipt.(kafka.Message)
	if !ok {
		return fmt.Errorf("ack: receipt is not a kafka message")
	}
	return c.reader.CommitMessages(ctx, m)
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
