package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/tiesadafc/teamapp/internal/domain"
	"github.com/tiesadafc/teamapp/internal/infra"
)

// Audit tail for the event stream: subscribes to the team topics and logs
// every event the outbox poller published.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("outbox consumer failed", "error", err)
		os.Exit(1)
	}
}

func defaultTopics() []string {
	return []string{
		string(domain.EventPlayerCreated),
		string(domain.EventBetPlaced),
		string(domain.EventBetAccepted),
		string(domain.EventBetSettled),
		string(domain.EventMatchFinalized),
		string(domain.EventCoinsPosted),
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.KafkaEnabled {
		return fmt.Errorf("KAFKA_ENABLED must be true for the outbox consumer")
	}

	topics := defaultTopics()
	if s := os.Getenv("OUTBOX_TOPICS"); s != "" {
		topics = strings.Split(s, ",")
	}

	groupID := os.Getenv("OUTBOX_CONSUMER_GROUP")
	if groupID == "" {
		groupID = "teamapp-outbox-consumer"
	}

	logger.Info("outbox-consumer starting", "topics", topics, "group", groupID)

	var wg sync.WaitGroup
	for _, topic := range topics {
		consumer := infra.NewKafkaConsumer(cfg.KafkaBrokers, topic, groupID, true, logger)

		wg.Add(1)
		go func(topic string, c *infra.KafkaConsumer) {
			defer wg.Done()
			defer c.Close()

			for {
				msg, err := c.ReadMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					logger.Error("read message failed", "topic", topic, "error", err)
					continue
				}
				logger.Info("event consumed",
					"topic", topic,
					"key", string(msg.Key),
					"offset", msg.Offset,
					"payload_bytes", len(msg.Value),
				)
			}
		}(topic, consumer)
	}

	wg.Wait()
	logger.Info("outbox-consumer shutting down")
	return nil
}
