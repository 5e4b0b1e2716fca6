package payout

import (
	"errors"
	"fmt"
	"os"

	"freight/internal/entities"

	"gopkg.in/yaml.v3"
)

// Bracket значение действует для входа <= UpTo; таблицы упорядочены по возрастанию UpTo.
type Bracket struct {
	UpTo  float64 `yaml:"up_to"`
	Value float64 `yaml:"value"`
}

// IntegrityBracket значение действует для целостности >= Min; упорядочены по убыванию Min.
type IntegrityBracket struct {
	Min   int     `yaml:"min"`
	Value float64 `yaml:"value"`
}

type Bonuses struct {
	WeighStation     float64         `yaml:"weigh_station"`
	SealIntact       float64         `yaml:"seal_intact"`
	LicenseMatch     float64         `yaml:"license_match"`
	PreTrip          float64         `yaml:"pre_trip"`
	ManifestVerified float64         `yaml:"manifest_verified"`
	CleanTemp        float64         `yaml:"clean_temp"`
	TopWelfare       float64         `yaml:"top_welfare"`
	ShipperTier      map[int]float64 `yaml:"shipper_tier"`
	ConvoyPerMember  float64         `yaml:"convoy_per_member"`
	ConvoyMax        float64         `yaml:"convoy_max"`
}

type Config struct {
	TierBaseRate       map[int]float64                 `yaml:"tier_base_rate"`
	CargoModifier      map[entities.CargoClass]float64 `yaml:"cargo_modifier"`
	StopPremium        []Bracket                       `yaml:"stop_premium"`
	FlatPerStop        float64                         `yaml:"flat_per_stop"`
	WeightBrackets     []Bracket                       `yaml:"weight_brackets"`
	OwnerOpBonus       map[int]float64                 `yaml:"owner_op_bonus"`
	TimeBrackets       []Bracket                       `yaml:"time_brackets"`
	WorstTimeModifier  float64                         `yaml:"worst_time_modifier"`
	RejectionThreshold int                             `yaml:"rejection_threshold"`
	IntegrityBrackets  []IntegrityBracket              `yaml:"integrity_brackets"`
	TempPenalty        map[entities.TempClass]float64  `yaml:"temp_penalty"`
	WelfareModifier    map[int]float64                 `yaml:"welfare_modifier"`
	Bonuses            Bonuses                         `yaml:"bonuses"`
	BonusCap           float64                         `yaml:"bonus_cap"`
	NightPremium       float64                         `yaml:"night_premium"`
	NightStartHour     int                             `yaml:"night_start_hour"`
	NightEndHour       int                             `yaml:"night_end_hour"`
	EconomyMultiplier  float64                         `yaml:"economy_multiplier"`
	TierFloor          map[int]int64                   `yaml:"tier_floor"`
}

func DefaultConfig() Config {
	return Config{
		TierBaseRate: map[int]float64{0: 20, 1: 30, 2: 45, 3: 65},
		CargoModifier: map[entities.CargoClass]float64{
			entities.CargoGeneral:      1.0,
			entities.CargoFragile:      1.15,
			entities.CargoRefrigerated: 1.2,
			entities.CargoLivestock:    1.25,
			entities.CargoHazmat:       1.4,
			entities.CargoOversized:    1.35,
			entities.CargoHighValue:    1.5,
		},
		StopPremium: []Bracket{
			{UpTo: 1, Value: 0.10},
			{UpTo: 2, Value: 0.18},
			{UpTo: 3, Value: 0.25},
		},
		FlatPerStop: 25,
		WeightBrackets: []Bracket{
			{UpTo: 10000, Value: 1.0},
			{UpTo: 26000, Value: 1.1},
			{UpTo: 40000, Value: 1.2},
			{UpTo: 80000, Value: 1.3},
		},
		OwnerOpBonus: map[int]float64{0: 0.15, 1: 0.20, 2: 0.25, 3: 0.30},
		TimeBrackets: []Bracket{
			{UpTo: 0.6, Value: 0.20},
			{UpTo: 0.8, Value: 0.15},
			{UpTo: 1.0, Value: 0},
			{UpTo: 1.2, Value: -0.10},
			{UpTo: 1.5, Value: -0.25},
		},
		WorstTimeModifier:  -0.40,
		RejectionThreshold: 40,
		IntegrityBrackets: []IntegrityBracket{
			{Min: 95, Value: 0},
			{Min: 80, Value: -0.05},
			{Min: 60, Value: -0.15},
			{Min: 40, Value: -0.30},
		},
		TempPenalty: map[entities.TempClass]float64{
			entities.TempClean:       0,
			entities.TempMinor:       -0.10,
			entities.TempSignificant: -0.30,
		},
		WelfareModifier: map[int]float64{1: -0.25, 2: -0.10, 3: 0, 4: 0.05, 5: 0.10},
		Bonuses: Bonuses{
			WeighStation:     0.03,
			SealIntact:       0.05,
			LicenseMatch:     0.03,
			PreTrip:          0.02,
			ManifestVerified: 0.02,
			CleanTemp:        0.04,
			TopWelfare:       0.05,
			ShipperTier:      map[int]float64{0: 0, 1: 0.02, 2: 0.03, 3: 0.05},
			ConvoyPerMember:  0.02,
			ConvoyMax:        0.06,
		},
		BonusCap:          0.25,
		NightPremium:      0.10,
		NightStartHour:    22,
		NightEndHour:      6,
		EconomyMultiplier: 1.0,
		TierFloor:         map[int]int64{0: 75, 1: 150, 2: 300, 3: 500},
	}
}

// LoadConfig поверх значений по умолчанию накладывает YAML-файл; пустой путь - только дефолты.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read payout tables %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse payout tables %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("payout tables %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	for tier := entities.MinTier; tier <= entities.MaxTier; tier++ {
		if _, ok := c.TierBaseRate[tier]; !ok {
			return fmt.Errorf("tier_base_rate: missing tier %d", tier)
		}
		if _, ok := c.TierFloor[tier]; !ok {
			return fmt.Errorf("tier_floor: missing tier %d", tier)
		}
	}
	if len(c.WeightBrackets) == 0 {
		return errors.New("weight_brackets: empty")
	}
	if len(c.TimeBrackets) == 0 {
		return errors.New("time_brackets: empty")
	}
	if len(c.IntegrityBrackets) == 0 {
		return errors.New("integrity_brackets: empty")
	}
	if !ascending(c.WeightBrackets) || !ascending(c.TimeBrackets) || !ascending(c.StopPremium) {
		return errors.New("brackets must be ordered by up_to")
	}
	for i := 1; i < len(c.IntegrityBrackets); i++ {
		if c.IntegrityBrackets[i].Min >= c.IntegrityBrackets[i-1].Min {
			return errors.New("integrity_brackets must be ordered by min descending")
		}
	}
	if c.BonusCap < 0 {
		return errors.New("bonus_cap must be non-negative")
	}
	if c.EconomyMultiplier <= 0 {
		return errors.New("economy_multiplier must be positive")
	}
	if c.NightStartHour < 0 || c.NightStartHour > 23 || c.NightEndHour < 0 || c.NightEndHour > 23 {
		return errors.New("night window hours must be within 0..23")
	}
	return nil
}

func ascending(brackets []Bracket) bool {
	for i := 1; i < len(brackets); i++ {
		if brackets[i].UpTo <= brackets[i-1].UpTo {
			return false
		}
	}
	return true
}
