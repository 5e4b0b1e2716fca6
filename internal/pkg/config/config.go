package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type (
	Tasks struct {
		ReservationSweepInterval time.Duration
		WindowSweepInterval      time.Duration
		MaintenanceInterval      time.Duration
		IndexRebuildInterval     time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // скорость пополнения глобального ведра
		RateLimiterBurst int           // емкость глобального ведра
		DebounceWindow   time.Duration // повторная команда водителя внутри окна отбрасывается
		PprofEnabled     bool
		PprofPort        string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
		MaxConns int
		MinConns int
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	Auth struct {
		JWTSecret string
		JWTIssuer string
	}

	Platform struct {
		WalletGRPCHost     string
		CredentialGRPCHost string
		InventoryGRPCHost  string
	}

	Kafka struct {
		PortHealthcheck   string
		Brokers           string
		PresenceTopic     string
		NotificationTopic string
		ConsumerGroup     string
		ProducerRetryMax  int
		Sarama            Sarama
		Handlers          KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		DriverPresence DriverPresence
	}

	DriverPresence struct {
		ProcessTimeout time.Duration
	}

	Freight struct {
		ReservationHold    time.Duration
		ReservationMaxHold time.Duration
		ReleaseCooldown    time.Duration
		OrphanTimeout      time.Duration
		PayoutTablesPath   string
		SnowflakeNode      int64
	}

	Config struct {
		Tasks    Tasks
		Server   HTTPServer
		Database Database
		Redis    Redis
		Auth     Auth
		Platform Platform
		Kafka    Kafka
		Freight  Freight
	}
)

const (
	defaultReservationHold    = 2 * time.Minute
	defaultReservationMaxHold = 10 * time.Minute
	defaultReleaseCooldown    = 30 * time.Minute
	defaultOrphanTimeout      = 10 * time.Minute
	defaultDebounceWindow     = 500 * time.Millisecond
	defaultProducerRetryMax   = 5
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

//nolint:funlen // плоский список переменных окружения
func loadFromEnv() (*Config, error) {
	reservationSweep, err := osGetEnvDuration("BACKGROUND_RESERVATION_SWEEP_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	windowSweep, err := osGetEnvDuration("BACKGROUND_WINDOW_SWEEP_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	maintenance, err := osGetEnvDuration("BACKGROUND_MAINTENANCE_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	indexRebuild, err := osGetEnvDuration("BACKGROUND_INDEX_REBUILD_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	presenceTimeout, err := osGetEnvDuration("KAFKA_HANDLER_DRIVER_PRESENCE_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	producerRetryMax, err := osGetInt("KAFKA_PRODUCER_RETRY_MAX")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	debounceWindow, err := osGetEnvDuration("MIDDLEWARE_DEBOUNCE_WINDOW")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dbMaxConns, err := osGetInt("POSTGRES_MAX_CONNS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dbMinConns, err := osGetInt("POSTGRES_MIN_CONNS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	redisDB, err := osGetInt("REDIS_DB")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	reservationHold, err := osGetEnvDuration("RESERVATION_HOLD")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	reservationMaxHold, err := osGetEnvDuration("RESERVATION_MAX_HOLD")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	releaseCooldown, err := osGetEnvDuration("RELEASE_COOLDOWN")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	orphanTimeout, err := osGetEnvDuration("ORPHAN_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	snowflakeNode, err := osGetInt("BOL_SNOWFLAKE_NODE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			ReservationSweepInterval: reservationSweep,
			WindowSweepInterval:      windowSweep,
			MaintenanceInterval:      maintenance,
			IndexRebuildInterval:     indexRebuild,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			DebounceWindow:   orDefault(debounceWindow, defaultDebounceWindow),
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
			MaxConns: dbMaxConns,
			MinConns: dbMinConns,
		},
		Redis: Redis{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Auth: Auth{
			JWTSecret: os.Getenv("AUTH_JWT_SECRET"),
			JWTIssuer: os.Getenv("AUTH_JWT_ISSUER"),
		},
		Platform: Platform{
			WalletGRPCHost:     os.Getenv("WALLET_SERVICE_GRPC_HOST"),
			CredentialGRPCHost: os.Getenv("CREDENTIAL_SERVICE_GRPC_HOST"),
			InventoryGRPCHost:  os.Getenv("INVENTORY_SERVICE_GRPC_HOST"),
		},
		Kafka: Kafka{
			Brokers:           os.Getenv("KAFKA_BROKERS"),
			PresenceTopic:     os.Getenv("KAFKA_PRESENCE_TOPIC"),
			NotificationTopic: os.Getenv("KAFKA_NOTIFICATION_TOPIC"),
			ConsumerGroup:     os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck:   os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			ProducerRetryMax:  orDefault(producerRetryMax, defaultProducerRetryMax),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				DriverPresence: DriverPresence{
					ProcessTimeout: presenceTimeout,
				},
			},
		},
		Freight: Freight{
			ReservationHold:    orDefault(reservationHold, defaultReservationHold),
			ReservationMaxHold: orDefault(reservationMaxHold, defaultReservationMaxHold),
			ReleaseCooldown:    orDefault(releaseCooldown, defaultReleaseCooldown),
			OrphanTimeout:      orDefault(orphanTimeout, defaultOrphanTimeout),
			PayoutTablesPath:   os.Getenv("PAYOUT_TABLES_PATH"),
			SnowflakeNode:      int64(snowflakeNode),
		},
	}, nil
}

//nolint:gocyclo // последовательная проверка обязательных переменных
func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Database.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Database.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.Database.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.Database.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}
	if cfg.Database.MaxConns < 0 || cfg.Database.MinConns < 0 {
		return errors.New("POSTGRES_MAX_CONNS and POSTGRES_MIN_CONNS must not be negative")
	}
	if cfg.Database.MaxConns > 0 && cfg.Database.MinConns > cfg.Database.MaxConns {
		return errors.New("POSTGRES_MIN_CONNS must not exceed POSTGRES_MAX_CONNS")
	}

	if cfg.Tasks.ReservationSweepInterval == time.Duration(0) {
		return errors.New("BACKGROUND_RESERVATION_SWEEP_INTERVAL is required")
	}
	if cfg.Tasks.WindowSweepInterval == time.Duration(0) {
		return errors.New("BACKGROUND_WINDOW_SWEEP_INTERVAL is required")
	}
	if cfg.Tasks.MaintenanceInterval == time.Duration(0) {
		return errors.New("BACKGROUND_MAINTENANCE_INTERVAL is required")
	}
	if cfg.Tasks.IndexRebuildInterval == time.Duration(0) {
		return errors.New("BACKGROUND_INDEX_REBUILD_INTERVAL is required")
	}

	if cfg.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET is required")
	}

	if cfg.Platform.WalletGRPCHost == "" {
		return errors.New("WALLET_SERVICE_GRPC_HOST is required")
	}
	if cfg.Platform.CredentialGRPCHost == "" {
		return errors.New("CREDENTIAL_SERVICE_GRPC_HOST is required")
	}
	if cfg.Platform.InventoryGRPCHost == "" {
		return errors.New("INVENTORY_SERVICE_GRPC_HOST is required")
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.PresenceTopic == "" {
		return errors.New("KAFKA_PRESENCE_TOPIC is required")
	}
	if cfg.Kafka.NotificationTopic == "" {
		return errors.New("KAFKA_NOTIFICATION_TOPIC is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}

	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	if cfg.Kafka.Handlers.DriverPresence.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_DRIVER_PRESENCE_PROCESS_TIMEOUT is required")
	}

	if cfg.Freight.ReservationHold > cfg.Freight.ReservationMaxHold {
		return errors.New("RESERVATION_HOLD must not exceed RESERVATION_MAX_HOLD")
	}
	// snowflake: 10 бит на узел
	if cfg.Freight.SnowflakeNode < 0 || cfg.Freight.SnowflakeNode > 1023 {
		return errors.New("BOL_SNOWFLAKE_NODE must be in [0, 1023]")
	}

	return nil
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
