package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKER", "b1:9092,b2:9092")
	t.Setenv("WORKER_BATCH_SIZE", "25")
	t.Setenv("WORKER_POLL_INTERVAL", "250ms")
	t.Setenv("WORKER_DEAD_LETTER_INVALID", "false")

	cfg := Load()
	assert.Equal(t, []string{"b1:9092", "b2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 25, cfg.BatchSize)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	assert.False(t, cfg.DeadLetterInvalid)
}

func TestLoadIgnoresUnparsableValues(t *testing.T) {
	t.Setenv("WORKER_BATCH_SIZE", "lots")
	t.Setenv("WORKER_POLL_INTERVAL", "soon")

	cfg := Load()
	assert.Equal(t, 10, cfg.BatchSize)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
}
