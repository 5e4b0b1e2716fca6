//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=load_reservation_delete_test
package load_reservation_delete

import (
	"context"

	"freight/internal/entities"
	"freight/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	CancelReservation(ctx context.Context, driverID string, loadID int64) (*entities.ReservationRelease, error)
}
