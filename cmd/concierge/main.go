package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"concierge-backend/internal/catalog"
	"concierge-backend/internal/config"
	"concierge-backend/internal/cuisine"
	"concierge-backend/internal/dedup"
	"concierge-backend/internal/fulfillment"
	"concierge-backend/internal/httpapi"
	"concierge-backend/internal/kstream"
	"concierge-backend/internal/notify"
)

func main() {
	// Local runs pick up .env; in deployed environments the file is absent.
	_ = godotenv.Load()
	cfg := config.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	store, err := catalog.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("catalog init failed")
	}
	defer store.Close()

	consumer := kstream.NewConsumer(cfg.KafkaBrokers, cfg.RequestTopic, cfg.ConsumerGroup, cfg.PollWait)
	defer consumer.Close()
	publisher := kstream.NewPublisher(cfg.KafkaBrokers, cfg.RequestTopic)
	defer publisher.Close()
	deadLetters := kstream.NewDeadLetterPublisher(cfg.KafkaBrokers, cfg.DeadLetterTopic)
	defer deadLetters.Close()

	worker := fulfillment.NewWorker(fulfillment.Config{
		Queue:             consumer,
		Index:             cuisine.NewRedisIndex(rdb),
		Catalog:           store,
		Sender:            notify.NewEmailClient(cfg.EmailAPIURL, cfg.EmailAPIKey, cfg.EmailSender),
		Processed:         dedup.NewRedisSet(rdb, cfg.ProcessedTTL),
		DeadLetters:       deadLetters,
		BatchSize:         cfg.BatchSize,
		DeadLetterInvalid: cfg.DeadLetterInvalid,
		Logger:            log,
	})

	// Worker loop: one bounded batch per tick, run to completion.
	go func() {
		ticker := time.NewTicker(cfg.PollInterval)
		defer ticker.Stop()
		log.Info().Msg("fulfillment worker started")
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				report, err := worker.ProcessBatch(ctx)
				if err != nil {
					log.Error().Err(err).Msg("batch processing error")
					continue
				}
				if report.Received > 0 {
					log.Info().
						Int("received", report.Received).
						Int("delivered", report.Count(fulfillment.OutcomeDelivered)).
						Int("noMatch", report.Count(fulfillment.OutcomeNoMatch)).
						Int("invalid", report.Count(fulfillment.OutcomeInvalidRequest)).
						Msg("batch processed")
				}
			}
		}
	}()

	r := mux.NewRouter()
	httpapi.NewHandler(publisher, log).RegisterRoutes(r)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	// Graceful shutdown
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info().Msg("shutting down")
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Msg("concierge API listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server error")
	}
}
