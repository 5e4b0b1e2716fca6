package reservation

import (
	"context"
	"fmt"
	"time"

	"freight/internal/entities"
)

type Service struct {
	cfg Config
	log serviceLogger

	loads    LoadRepository
	drivers  DriverRepository
	missions MissionRepository

	ledger     Ledger
	reputation ReputationService

	credentials CredentialGateway
	wallet      WalletGateway
	inventory   InventoryGateway

	index         MissionIndex
	bolNumbers    BOLNumberFactory
	windowFactory WindowFactory
	txManager     TxManager
}

func New(
	cfg Config,
	log serviceLogger,
	loads LoadRepository,
	drivers DriverRepository,
	missions MissionRepository,
	ledger Ledger,
	reputation ReputationService,
	credentials CredentialGateway,
	wallet WalletGateway,
	inventory InventoryGateway,
	index MissionIndex,
	bolNumbers BOLNumberFactory,
	windowFactory WindowFactory,
	txManager TxManager,
) *Service {
	return &Service{
		cfg:           cfg,
		log:           log,
		loads:         loads,
		drivers:       drivers,
		missions:      missions,
		ledger:        ledger,
		reputation:    reputation,
		credentials:   credentials,
		wallet:        wallet,
		inventory:     inventory,
		index:         index,
		bolNumbers:    bolNumbers,
		windowFactory: windowFactory,
		txManager:     txManager,
	}
}

// Reserve единственная точка разрешения гонки за груз: условная запись WHERE status = 'available'.
func (s *Service) Reserve(ctx context.Context, driverID string, loadID int64, hold time.Duration) (*entities.Reservation, error) {
	if hold == 0 {
		hold = s.cfg.DefaultHold
	}
	if hold < 0 || (s.cfg.MaxHold > 0 && hold > s.cfg.MaxHold) {
		return nil, ErrInvalidHold
	}

	load, err := s.loads.GetByID(ctx, loadID)
	if err != nil {
		return nil, fmt.Errorf("get load: %w", err)
	}

	now := time.Now().UTC()
	if load.Tier >= CooldownTierThreshold {
		stats, err := s.drivers.GetStats(ctx, driverID)
		if err != nil {
			return nil, fmt.Errorf("get driver stats: %w", err)
		}
		if stats.InCooldown(now) {
			ReservationsTotal.WithLabelValues("reserve", "cooldown").Inc()
			return nil, ErrCooldownActive
		}
	}

	expiresAt := now.Add(hold)
	err = s.loads.Reserve(ctx, loadID, driverID, expiresAt)
	if err != nil {
		ReservationsTotal.WithLabelValues("reserve", outcome(err)).Inc()
		return nil, fmt.Errorf("reserve load: %w", err)
	}
	ReservationsTotal.WithLabelValues("reserve", "ok").Inc()

	return &entities.Reservation{
		LoadID:    loadID,
		DriverID:  driverID,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *Service) CancelReservation(ctx context.Context, driverID string, loadID int64) (*entities.ReservationRelease, error) {
	release := entities.ReservationRelease{
		LoadID:   loadID,
		DriverID: driverID,
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		err := s.loads.Release(ctx, loadID, driverID)
		if err != nil {
			return fmt.Errorf("release load: %w", err)
		}

		count, err := s.drivers.RegisterRelease(ctx, driverID)
		if err != nil {
			return fmt.Errorf("register release: %w", err)
		}
		release.ConsecutiveReleases = count
		release.Warning = count >= releaseWarnAt

		if count >= releaseCooldownAt {
			until := time.Now().UTC().Add(s.cfg.ReleaseCooldown)
			err = s.drivers.StartCooldown(ctx, driverID, until)
			if err != nil {
				return fmt.Errorf("start cooldown: %w", err)
			}
			release.CooldownUntil = &until
		}
		return nil
	})
	if err != nil {
		ReservationsTotal.WithLabelValues("cancel", outcome(err)).Inc()
		return nil, err
	}
	ReservationsTotal.WithLabelValues("cancel", "ok").Inc()

	return &release, nil
}

// Accept проверки идут строго по порядку и не имеют побочных эффектов;
// после списания залога любая ошибка записи возвращает деньги явным кредитом.
func (s *Service) Accept(ctx context.Context, driverID string, loadID int64, equipment entities.Equipment) (*entities.Acceptance, error) {
	if !isValidEquipment(equipment) {
		return nil, ErrInvalidEquipment
	}

	load, err := s.validateAcceptance(ctx, driverID, loadID, equipment)
	if err != nil {
		ReservationsTotal.WithLabelValues("accept", outcome(err)).Inc()
		return nil, err
	}

	memo := fmt.Sprintf("deposit: load %d", load.ID)
	if load.DepositAmount > 0 {
		ok, err := s.wallet.Debit(ctx, driverID, load.DepositAmount, memo)
		if err != nil {
			return nil, fmt.Errorf("debit deposit: %w", err)
		}
		if !ok {
			ReservationsTotal.WithLabelValues("accept", "insufficient_funds").Inc()
			return nil, ErrInsufficientFunds
		}
	}

	acceptance, err := s.createMission(ctx, driverID, load, equipment)
	if err != nil {
		s.refundDeposit(ctx, driverID, load, err)
		ReservationsTotal.WithLabelValues("accept", outcome(err)).Inc()
		return nil, err
	}
	ReservationsTotal.WithLabelValues("accept", "ok").Inc()

	s.index.Put(acceptance.Mission.Ref())

	err = s.drivers.ResetReleases(ctx, driverID)
	if err != nil {
		s.log.Warn("reset consecutive releases",
			fieldDriver(driverID),
			fieldError(err),
		)
	}

	err = s.inventory.Grant(ctx, driverID, acceptance.BOLNumber)
	if err != nil {
		s.log.Warn("grant bol document",
			fieldDriver(driverID),
			fieldBOL(acceptance.BOLNumber),
			fieldError(err),
		)
	}

	return acceptance, nil
}

func (s *Service) validateAcceptance(
	ctx context.Context,
	driverID string,
	loadID int64,
	equipment entities.Equipment,
) (*entities.Load, error) {
	hasMission, err := s.missions.ExistsForDriver(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("check live mission: %w", err)
	}
	if hasMission {
		return nil, ErrDriverHasMission
	}

	load, err := s.loads.GetByID(ctx, loadID)
	if err != nil {
		return nil, fmt.Errorf("get load: %w", err)
	}
	if load.Status != entities.LoadAvailable && !load.IsReservedBy(driverID) {
		return nil, ErrLoadUnavailable
	}

	for _, credential := range requiredCredentials(load.Requirements) {
		active, err := s.credentials.IsActive(ctx, driverID, credential)
		if err != nil {
			return nil, fmt.Errorf("check credential %s: %w", credential, err)
		}
		if !active {
			return nil, fmt.Errorf("%w: %s", ErrMissingCredential, credential)
		}
	}

	if load.Requirements.TrailerType != "" && load.Requirements.TrailerType != equipment.TrailerType {
		return nil, fmt.Errorf("%w: need %s trailer", ErrEquipmentMismatch, load.Requirements.TrailerType)
	}

	if load.Tier >= 1 {
		insured, err := s.credentials.IsActive(ctx, driverID, insuranceCredential)
		if err != nil {
			return nil, fmt.Errorf("check insurance: %w", err)
		}
		if !insured {
			return nil, ErrInsuranceRequired
		}
	}

	tier, err := s.reputation.Tier(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("get reputation tier: %w", err)
	}
	if tier.MaxLoadTier < load.Tier {
		return nil, fmt.Errorf("%w: %s allows tier %d", ErrReputationTooLow, tier.Name, tier.MaxLoadTier)
	}

	return load, nil
}

func (s *Service) createMission(
	ctx context.Context,
	driverID string,
	load *entities.Load,
	equipment entities.Equipment,
) (*entities.Acceptance, error) {
	acceptedAt := time.Now().UTC()
	windowExpiresAt := s.windowFactory.CalculateWindow(load.Tier, load.Distance, len(load.Stops), acceptedAt)
	bolNumber := s.bolNumbers.Next()

	var acceptance entities.Acceptance
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		err := s.loads.Claim(ctx, load.ID, driverID)
		if err != nil {
			return fmt.Errorf("claim load: %w", err)
		}

		bol, err := s.ledger.Open(ctx, entities.BOLCreate{
			BOLNumber:    bolNumber,
			LoadID:       load.ID,
			DriverID:     driverID,
			Tier:         load.Tier,
			CargoClass:   load.CargoClass,
			Distance:     load.Distance,
			Weight:       load.Weight,
			StopCount:    len(load.Stops),
			Ownership:    equipment.Ownership,
			LicenseMatch: load.Requirements.License != "",
			CreatedAt:    acceptedAt,
		}, load.DepositAmount)
		if err != nil {
			return fmt.Errorf("open bol: %w", err)
		}

		mission, err := s.missions.Create(ctx, entities.MissionCreate{
			LoadID:          load.ID,
			BOLID:           bol.ID,
			DriverID:        driverID,
			EquipmentID:     equipment.ID,
			Ownership:       equipment.Ownership,
			Tier:            load.Tier,
			StopCount:       len(load.Stops),
			TempMonitoring:  load.CargoClass.TemperatureControlled(),
			AcceptedAt:      acceptedAt,
			WindowExpiresAt: windowExpiresAt,
			DepositAmount:   load.DepositAmount,
		})
		if err != nil {
			return fmt.Errorf("create mission: %w", err)
		}

		fillFromLoad(mission, load)
		acceptance = entities.Acceptance{
			Mission:   *mission,
			BOLNumber: bol.BOLNumber,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &acceptance, nil
}

func (s *Service) refundDeposit(ctx context.Context, driverID string, load *entities.Load, cause error) {
	if load.DepositAmount <= 0 {
		return
	}

	memo := fmt.Sprintf("deposit refund: load %d", load.ID)
	err := s.wallet.Credit(ctx, driverID, load.DepositAmount, memo)
	if err != nil {
		s.log.Error("refund deposit after failed acceptance",
			fieldDriver(driverID),
			fieldLoad(load.ID),
			fieldAmount(load.DepositAmount),
			fieldCause(cause),
			fieldError(err),
		)
	}
}

func fillFromLoad(mission *entities.Mission, load *entities.Load) {
	mission.CargoClass = load.CargoClass
	mission.Distance = load.Distance
	mission.Weight = load.Weight
	mission.ShipperTier = load.ShipperTier
	mission.SurgeMultiplier = load.SurgeMultiplier
	mission.Destination = load.Destination
	mission.Stops = load.Stops
}
