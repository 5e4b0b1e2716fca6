package kafka

import (
	"context"
	"fmt"

	"freight/internal/pkg/config"
	"freight/internal/pkg/readiness"
	"freight/pkg/logger"

	"github.com/IBM/sarama"
)

// NewSyncProducer синхронный продюсер: ack от всех реплик, идемпотентная запись.
func NewSyncProducer(ctx context.Context, log logger.Logger, cfg *config.Kafka, brokers []string) (sarama.SyncProducer, error) {
	saramaConfig := sarama.NewConfig()

	version, err := sarama.ParseKafkaVersion(cfg.Sarama.Version)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version %q: %w", cfg.Sarama.Version, err)
	}
	saramaConfig.Version = version

	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Retry.Max = cfg.ProducerRetryMax
	// идемпотентность требует одного запроса в полёте
	saramaConfig.Net.MaxOpenRequests = 1

	kafkaLog := log.With(
		logger.NewField("brokers", brokers),
		logger.NewField("topic", cfg.NotificationTopic),
	)

	err = readiness.UntilReady(ctx, kafkaLog, "kafka", metadataCheck(brokers, saramaConfig))
	if err != nil {
		return nil, err
	}

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync producer: %w", err)
	}

	return producer, nil
}
