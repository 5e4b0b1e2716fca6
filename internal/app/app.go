package app

import (
	ledgerService "freight/internal/service/ledger"
	missionService "freight/internal/service/mission"
	reconcilerService "freight/internal/service/reconciler"
	reservationService "freight/internal/service/reservation"
	"freight/pkg/background"
)

type Application struct {
	Reservation       *reservationService.Service
	Missions          *missionService.Service
	Ledger            *ledgerService.Ledger
	Reconciler        *reconcilerService.Service
	BackgroundWorkers *background.Worker
}

type KafkaWorkerApp struct {
	MissionService *missionService.Service
}

type MaintenanceApp struct {
	Reconciler *reconcilerService.Service
}
