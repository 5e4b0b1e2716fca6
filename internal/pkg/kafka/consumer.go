package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"freight/internal/pkg/config"
	"freight/internal/pkg/readiness"
	"freight/pkg/logger"

	"github.com/IBM/sarama"
)

type Consumer struct {
	log     logger.Logger
	group   sarama.ConsumerGroup
	topics  []string
	handler sarama.ConsumerGroupHandler
}

// ConsumerConfig конфиг группы: ручной или авто-коммит, чтение с самого старого оффсета.
func ConsumerConfig(cfg *config.Kafka) (*sarama.Config, error) {
	version, err := sarama.ParseKafkaVersion(cfg.Sarama.Version)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version %q: %w", cfg.Sarama.Version, err)
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = version
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = cfg.Sarama.ConsumerOffsetsAutocommit
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{
		sarama.NewBalanceStrategyRoundRobin(),
	}
	saramaConfig.Consumer.Return.Errors = true

	return saramaConfig, nil
}

// NewConsumer consumer group; подключение проверяется до возврата.
func NewConsumer(ctx context.Context, log logger.Logger, cfg *config.Kafka, topics []string, handler sarama.ConsumerGroupHandler) (*Consumer, error) {
	saramaConfig, err := ConsumerConfig(cfg)
	if err != nil {
		return nil, err
	}

	brokers := SplitBrokers(cfg.Brokers)
	kafkaLog := log.With(
		logger.NewField("brokers", brokers),
		logger.NewField("group", cfg.ConsumerGroup),
		logger.NewField("topics", topics),
	)

	err = readiness.UntilReady(ctx, kafkaLog, "kafka", metadataCheck(brokers, saramaConfig))
	if err != nil {
		return nil, err
	}

	group, err := sarama.NewConsumerGroup(brokers, cfg.ConsumerGroup, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("create consumer group %s: %w", cfg.ConsumerGroup, err)
	}

	return &Consumer{
		log:     kafkaLog,
		group:   group,
		topics:  topics,
		handler: handler,
	}, nil
}

// Start блокирует до отмены ctx; после каждого ребаланса Consume вызывается заново.
func (c *Consumer) Start(ctx context.Context) error {
	c.log.Info("Kafka consumer starting")

	go c.drainErrors(ctx)

	for {
		err := c.group.Consume(ctx, c.topics, c.handler)
		switch {
		case errors.Is(err, sarama.ErrClosedConsumerGroup):
			return nil
		case err != nil:
			c.log.With(logger.NewField("error", err)).Error("consume session failed")
			return fmt.Errorf("consume %v: %w", c.topics, err)
		}

		if ctx.Err() != nil {
			c.log.Info("Kafka consumer stopped")
			return nil
		}
		c.log.Debug("consumer group rebalanced")
	}
}

func (c *Consumer) Close() error {
	return c.group.Close()
}

// drainErrors ошибки сессий приходят в отдельный канал при Consumer.Return.Errors.
func (c *Consumer) drainErrors(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-c.group.Errors():
			if !ok {
				return
			}
			c.log.With(logger.NewField("error", err)).Warn("consumer group error")
		}
	}
}

// metadataCheck брокер отвечает, если отдает список топиков.
func metadataCheck(brokers []string, cfg *sarama.Config) readiness.Check {
	return func(context.Context) error {
		client, err := sarama.NewClient(brokers, cfg)
		if err != nil {
			return err
		}
		defer client.Close() //nolint:errcheck // клиент одноразовый

		_, err = client.Topics()
		return err
	}
}

// SplitBrokers разбирает список брокеров из переменной окружения.
func SplitBrokers(raw string) []string {
	brokers := strings.Split(raw, ",")
	res := make([]string, 0, len(brokers))
	for _, b := range brokers {
		b = strings.TrimSpace(b)
		if b != "" {
			res = append(res, b)
		}
	}
	return res
}
