package fulfillment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"concierge-backend/internal/model"
)

// DefaultBatchSize bounds one ProcessBatch pass when no size is configured.
const DefaultBatchSize = 10

// Config wires the worker's collaborators. Queue, Index, Catalog and Sender
// are required; Processed and DeadLetters may be nil, which disables duplicate
// detection and dead-lettering respectively.
type Config struct {
	Queue       Queue
	Index       Index
	Catalog     Catalog
	Sender      Sender
	Processed   ProcessedSet
	DeadLetters DeadLetters

	BatchSize int
	// DeadLetterInvalid copies invalid requests to DeadLetters before they
	// are acknowledged. Invalid requests are never redelivered on the main
	// topic either way; without a feedback channel a retry cannot succeed.
	DeadLetterInvalid bool

	Logger zerolog.Logger
}

// Worker drains the request queue and turns each dining request into at most
// one recommendation email. Every failure is contained at the message
// boundary: one bad request never aborts the batch or the process.
type Worker struct {
	cfg Config
	log zerolog.Logger
}

func NewWorker(cfg Config) *Worker {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	return &Worker{
		cfg: cfg,
		log: cfg.Logger.With().Str("component", "fulfillment").Logger(),
	}
}

// ProcessBatch fetches up to BatchSize pending requests and processes them
// sequentially. An empty queue yields an empty report and no error. Each
// completed message is acknowledged regardless of its outcome; messages not
// reached before ctx is done stay on the queue for redelivery.
func (w *Worker) ProcessBatch(ctx context.Context) (*BatchReport, error) {
	msgs, err := w.cfg.Queue.ReceiveBatch(ctx, w.cfg.BatchSize)
	if err != nil {
		return &BatchReport{}, fmt.Errorf("receive batch: %w", err)
	}

	report := &BatchReport{Received: len(msgs)}
	if len(msgs) == 0 {
		w.log.Debug().Msg("no messages available")
		return report, nil
	}

	for _, msg := range msgs {
		if ctx.Err() != nil {
			// Deadline reached mid-batch: leave the rest unacknowledged.
			return report, ctx.Err()
		}

		outcome := w.processOne(ctx, msg)
		report.Outcomes = append(report.Outcomes, outcome)

		if err := w.cfg.Queue.Ack(ctx, msg); err != nil {
			w.log.Warn().Err(err).Str("requestId", outcome.RequestID).
				Msg("failed to acknowledge message")
		}
	}
	return report, nil
}

// processOne handles a single queued request. It never returns an error to
// the batch loop; every branch resolves to an Outcome and a log line.
func (w *Worker) processOne(ctx context.Context, msg Message) Outcome {
	var req model.FulfillmentRequest
	if err := json.Unmarshal(msg.Body, &req); err != nil {
		return w.rejectInvalid(ctx, msg, Outcome{
			Kind: OutcomeInvalidRequest,
			Err:  fmt.Errorf("decode request body: %w", err),
		})
	}
	if req.IntentName == "" || req.Slots == nil {
		return w.rejectInvalid(ctx, msg, Outcome{
			Kind:      OutcomeInvalidRequest,
			RequestID: req.RequestID,
			Err:       fmt.Errorf("request missing intentName or slots"),
		})
	}

	if req.IntentName != model.IntentDiningSuggestions {
		w.log.Info().Str("intent", req.IntentName).Str("requestId", req.RequestID).
			Msg("intent not supported, skipping")
		return Outcome{Kind: OutcomeUnsupportedIntent, RequestID: req.RequestID}
	}

	cuisine := strings.ToLower(strings.TrimSpace(req.Slot(model.SlotCuisine)))
	email := strings.TrimSpace(req.Slot(model.SlotEmail))
	if cuisine == "" || email == "" {
		return w.rejectInvalid(ctx, msg, Outcome{
			Kind:      OutcomeInvalidRequest,
			RequestID: req.RequestID,
			Cuisine:   cuisine,
			Err:       fmt.Errorf("request missing cuisine or email slot"),
		})
	}

	// Duplicate-delivery guard: mark-and-check before any dispatch so a
	// redelivered request sends at most one email.
	if w.cfg.Processed != nil && req.RequestID != "" {
		seen, err := w.cfg.Processed.Seen(ctx, req.RequestID)
		if err != nil {
			// Degrade to the pre-dedup behavior rather than drop the request.
			w.log.Error().Err(err).Str("requestId", req.RequestID).
				Msg("processed-set check failed, continuing without dedup")
		} else if seen {
			w.log.Info().Str("requestId", req.RequestID).
				Msg("request already processed, skipping duplicate delivery")
			return Outcome{Kind: OutcomeDuplicate, RequestID: req.RequestID, Cuisine: cuisine}
		}
	}

	businessID, err := w.cfg.Index.RandomByCuisine(ctx, cuisine)
	if err != nil {
		w.log.Error().Err(err).Str("cuisine", cuisine).Msg("index lookup failed")
		return Outcome{Kind: OutcomeNoMatch, RequestID: req.RequestID, Cuisine: cuisine, Err: err}
	}
	if businessID == "" {
		w.log.Info().Str("cuisine", cuisine).Str("requestId", req.RequestID).
			Msg("no restaurant found")
		return Outcome{Kind: OutcomeNoMatch, RequestID: req.RequestID, Cuisine: cuisine}
	}

	restaurant, err := w.cfg.Catalog.GetByID(ctx, businessID)
	if err != nil {
		w.log.Error().Err(err).Str("businessId", businessID).Msg("catalog lookup failed")
		return Outcome{Kind: OutcomeNoMatch, RequestID: req.RequestID, Cuisine: cuisine, Err: err}
	}
	if restaurant == nil {
		// Index/catalog staleness: treated the same as an empty match set.
		w.log.Info().Str("businessId", businessID).Str("cuisine", cuisine).
			Msg("no restaurant found")
		return Outcome{Kind: OutcomeNoMatch, RequestID: req.RequestID, Cuisine: cuisine}
	}

	n := BuildNotification(email, cuisine, restaurant)
	messageID, err := w.cfg.Sender.Send(ctx, n.Recipient, n.Subject, n.Body)
	if err != nil {
		w.log.Error().Err(err).Str("recipient", n.Recipient).Str("requestId", req.RequestID).
			Msg("notification dispatch failed")
		return Outcome{Kind: OutcomeDispatchFailed, RequestID: req.RequestID, Cuisine: cuisine, Err: err}
	}

	w.log.Info().
		Str("requestId", req.RequestID).
		Str("recipient", n.Recipient).
		Str("restaurant", restaurant.Name).
		Str("messageId", messageID).
		Msg("recommendation sent")
	return Outcome{Kind: OutcomeDelivered, RequestID: req.RequestID, Cuisine: cuisine}
}

// rejectInvalid logs an invalid request and, when configured, copies it to the
// dead-letter topic. The message is acknowledged by the batch loop either way.
func (w *Worker) rejectInvalid(ctx context.Context, msg Message, outcome Outcome) Outcome {
	w.log.Error().Err(outcome.Err).Str("requestId", outcome.RequestID).
		Msg("invalid fulfillment request")

	if w.cfg.DeadLetterInvalid && w.cfg.DeadLetters != nil {
		if err := w.cfg.DeadLetters.Publish(ctx, msg.Body, outcome.Err.Error()); err != nil {
			w.log.Error().Err(err).Msg("failed to publish dead letter")
		}
	}
	return outcome
}

// BuildNotification renders the recommendation email for one restaurant.
func BuildNotification(recipient, cuisine string, r *model.RestaurantRecord) model.Notification {
	return model.Notification{
		Recipient: recipient,
		Subject:   fmt.Sprintf("Your %s Restaurant Recommendation!", capitalize(cuisine)),
		Body: fmt.Sprintf(
			"Here is your recommended restaurant:\n\n"+
				"Name: %s\n"+
				"Address: %s\n"+
				"Rating: %s\n"+
				"Number of Reviews: %d\n",
			r.Name, r.Address, r.Rating, r.NumberOfReviews),
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
