package kstream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"concierge-backend/internal/model"
)

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},  // segmentio/kafka-go: partition selection strategy
		RequiredAcks: kafka.RequireOne,     // wait for leader ack only
		BatchTimeout: 50 * time.Millisecond,
	}
}

// Publisher sends fulfillment requests to the request topic. The intent API
// uses it to enqueue a request after the front-end confirms slot capture.
// Writes are synchronous: the 202 reply to the front-end must mean the
// request is durably queued.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{writer: newWriter(brokers, topic)}
}

// PublishRequest enqueues one fulfillment request, keyed by request id so
// retried submissions of the same request land on the same partition.
func (p *Publisher) PublishRequest(ctx context.Context, req *model.FulfillmentRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(req.RequestID),
		Value: data,
		Time:  time.Now(),
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// DeadLetterPublisher copies rejected request bodies to the dead-letter topic
// for manual inspection. The original body is preserved verbatim; the
// rejection reason travels as a message header.
type DeadLetterPublisher struct {
	writer *kafka.Writer
}

func NewDeadLetterPublisher(brokers []string, topic string) *DeadLetterPublisher {
	return &DeadLetterPublisher{writer: newWriter(brokers, topic)}
}

func (p *DeadLetterPublisher) Publish(ctx context.Context, body []byte, reason string) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Value: body,
		Headers: []kafka.Header{
			{Key: "reason", Value: []byte(reason)},
		},
		Time: time.Now(),
	})
}

func (p *DeadLetterPublisher) Close() error {
	return p.writer.Close()
}
