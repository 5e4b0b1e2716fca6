package driver_presence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"freight/internal/entities"
	"freight/pkg/logger"

	"github.com/IBM/sarama"
)

var ErrBadMessage = errors.New("bad presence message")

type presenceEvent struct {
	DriverID  string    `json:"driver_id"`
	Connected bool      `json:"connected"`
	At        time.Time `json:"at"`
}

type Handler struct {
	missionService           Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, missionService Service, timeout time.Duration) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "driver.presence"),
	)

	return &Handler{
		missionService:           missionService,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("driver.presence: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// ребаланс или остановка consumer group
			h.log.Info("driver.presence: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing возвращает true, если ConsumeClaim нужно прервать без коммита offset.
// Коммитятся только успешно примененные и заведомо битые сообщения.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	msgLog := h.log.With(
		logger.NewField("offset", message.Offset),
		logger.NewField("partition", message.Partition),
	)

	err := h.Handle(ctx, message.Value)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		msgLog.With(
			logger.NewField("error", err),
		).Warn("driver.presence handler context cancelled, message will be reprocessed")
		return true
	case errors.Is(err, ErrBadMessage):
		msgLog.With(
			logger.NewField("error", err),
		).Error("driver.presence handler received bad message")
	default:
		// offset не коммитим: потерянное переподключение закончилось бы сиротством миссии
		msgLog.With(
			logger.NewField("error", err),
		).Warn("driver.presence handler failed to process event, message will be reprocessed")
		return true
	}

	sess.MarkMessage(message, "")
	return false
}

// Handle применяет одно событие присутствия; оба направления идемпотентны на стороне хранилища.
func (h *Handler) Handle(ctx context.Context, value []byte) error {
	var event presenceEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("%w: %w", ErrBadMessage, err)
	}
	if event.DriverID == "" || event.At.IsZero() {
		return fmt.Errorf("%w: driver_id and at are required", ErrBadMessage)
	}

	presence := entities.Presence{
		DriverID:  event.DriverID,
		Connected: event.Connected,
		At:        event.At,
	}

	eventLog := h.log.With(
		logger.NewField("driver_id", presence.DriverID),
		logger.NewField("connected", presence.Connected),
	)

	if !presence.Connected {
		if err := h.missionService.RecordDisconnect(ctx, presence.DriverID, presence.At); err != nil {
			return fmt.Errorf("record disconnect: %w", err)
		}
		eventLog.Debug("driver.presence: disconnect recorded")
		return nil
	}

	ext, err := h.missionService.RecordReconnect(ctx, presence.DriverID, presence.At)
	if err != nil {
		return fmt.Errorf("record reconnect: %w", err)
	}
	if ext == nil {
		eventLog.Debug("driver.presence: reconnect without open outage")
		return nil
	}

	eventLog.With(
		logger.NewField("bol_id", ext.BOLID),
		logger.NewField("extension", ext.Extension.String()),
	).Info("driver.presence: delivery window extended")
	return nil
}
