package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"freight/internal/entities"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var publishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "freight_notifications_published_total",
		Help: "Total notifications published to the notification sink",
	},
	[]string{"kind", "status"},
)

// envelope формат сообщения в топике уведомлений.
type envelope struct {
	ID        string `json:"id"`
	DriverID  string `json:"driver_id"`
	Kind      string `json:"kind"`
	BOLID     int64  `json:"bol_id,omitempty"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

type Gateway struct {
	producer producer
	topic    string
	now      func() time.Time
}

func New(producer producer, topic string) *Gateway {
	return &Gateway{
		producer: producer,
		topic:    topic,
		now:      time.Now,
	}
}

// Notify публикует уведомление; ключ сообщения driver_id сохраняет порядок по водителю.
func (g *Gateway) Notify(ctx context.Context, n entities.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	createdAt := n.CreatedAt
	if createdAt.IsZero() {
		createdAt = g.now()
	}

	payload, err := json.Marshal(envelope{
		ID:        uuid.NewString(),
		DriverID:  n.DriverID,
		Kind:      n.Kind.String(),
		BOLID:     n.BOLID,
		Message:   n.Message,
		CreatedAt: createdAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	_, _, err = g.producer.SendMessage(&sarama.ProducerMessage{
		Topic: g.topic,
		Key:   sarama.StringEncoder(n.DriverID),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		publishedTotal.WithLabelValues(n.Kind.String(), "error").Inc()
		return fmt.Errorf("publish notification %s: %w", n.Kind, err)
	}

	publishedTotal.WithLabelValues(n.Kind.String(), "ok").Inc()
	return nil
}
