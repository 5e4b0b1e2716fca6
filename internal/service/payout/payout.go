package payout

import (
	"math"

	"freight/internal/entities"
)

// floorEpsilon гасит ошибку двоичного представления перед округлением вниз (413.99999999999994 -> 414).
const floorEpsilon = 1e-6

const (
	stepBase = iota + 1
	stepMultiStop
	stepWeight
	stepOwnerOperator
	stepTimePerformance
	stepIntegrity
	stepTemperature
	stepWelfare
	stepCompliance
	stepNight
	stepEconomy
	stepFloor
)

type Calculator struct {
	cfg Config
}

func New(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// Calculate чистая функция: шаги применяются строго по порядку к текущему base.
// Из времени читается только in.DeliveredAt.
func (c *Calculator) Calculate(in entities.PayoutInput) entities.PayoutResult {
	r := &run{breakdown: make([]entities.BreakdownStep, 0, stepFloor+1)}

	surge := in.SurgeMultiplier
	if surge <= 0 {
		surge = 1
	}
	rate := c.cfg.TierBaseRate[in.Tier]
	cargo := c.cargoModifier(in.CargoClass)
	r.set(stepBase, "base", rate*cargo*in.Distance, map[string]float64{
		"tier":      float64(in.Tier),
		"base_rate": rate,
		"cargo":     cargo,
		"distance":  in.Distance,
	})
	// надбавка спроса груза: часть шага 1, но отдельной записью в журнале
	r.set(stepBase, "surge", r.base*surge, map[string]float64{
		"multiplier": surge,
	})

	stopPremium := 0.0
	flat := 0.0
	if in.StopCount > 0 {
		stopPremium = lookupCapped(c.cfg.StopPremium, float64(in.StopCount))
		flat = c.cfg.FlatPerStop * float64(in.StopCount)
	}
	r.set(stepMultiStop, "multi_stop", r.base+r.base*stopPremium+flat, map[string]float64{
		"stops":         float64(in.StopCount),
		"stop_premium":  stopPremium,
		"flat_per_stop": c.cfg.FlatPerStop,
	})

	weightMultiplier := lookupCapped(c.cfg.WeightBrackets, in.Weight)
	r.set(stepWeight, "weight", r.base*weightMultiplier, map[string]float64{
		"weight":     in.Weight,
		"multiplier": weightMultiplier,
	})

	ownerBonus := 0.0
	if in.Ownership == entities.OwnershipOwnerOperator {
		ownerBonus = c.cfg.OwnerOpBonus[in.Tier]
	}
	r.add(stepOwnerOperator, "owner_operator", ownerBonus, map[string]float64{
		"bonus": ownerBonus,
	})

	ratio := timeRatio(in)
	timeModifier := c.timeModifier(ratio)
	r.add(stepTimePerformance, "time_performance", timeModifier, map[string]float64{
		"ratio":    ratio,
		"modifier": timeModifier,
	})

	if in.Integrity < c.cfg.RejectionThreshold {
		r.set(stepIntegrity, "integrity", 0, map[string]float64{
			"integrity": float64(in.Integrity),
			"threshold": float64(c.cfg.RejectionThreshold),
		})
		return entities.PayoutResult{
			Amount:    0,
			Status:    entities.PayoutRejected,
			Breakdown: r.breakdown,
		}
	}
	integrityModifier := c.integrityModifier(in.Integrity)
	r.add(stepIntegrity, "integrity", integrityModifier, map[string]float64{
		"integrity": float64(in.Integrity),
		"threshold": float64(c.cfg.RejectionThreshold),
		"modifier":  integrityModifier,
	})

	tempPenalty := 0.0
	if in.TempMonitoring {
		tempPenalty = c.cfg.TempPenalty[in.TempClass]
	}
	r.add(stepTemperature, "temperature", tempPenalty, map[string]float64{
		"severity": float64(in.TempClass.Severity()),
		"modifier": tempPenalty,
	})

	welfare := 0.0
	welfareInputs := map[string]float64{}
	if in.WelfareRating != nil {
		welfare = c.cfg.WelfareModifier[*in.WelfareRating]
		welfareInputs["rating"] = float64(*in.WelfareRating)
	}
	welfareInputs["modifier"] = welfare
	r.add(stepWelfare, "welfare", welfare, welfareInputs)

	bonusSum := c.complianceBonus(in)
	capped := math.Min(bonusSum, c.cfg.BonusCap)
	r.add(stepCompliance, "compliance_bonus", capped, map[string]float64{
		"total": bonusSum,
		"cap":   c.cfg.BonusCap,
	})

	night := 0.0
	if c.isNight(in) {
		night = c.cfg.NightPremium
	}
	r.add(stepNight, "night_premium", night, map[string]float64{
		"hour":    float64(in.DeliveredAt.UTC().Hour()),
		"premium": night,
	})

	r.set(stepEconomy, "economy", r.base*c.cfg.EconomyMultiplier, map[string]float64{
		"multiplier": c.cfg.EconomyMultiplier,
	})

	floor := c.cfg.TierFloor[in.Tier]
	final := int64(math.Floor(r.base + floorEpsilon))
	if final < floor {
		final = floor
	}
	r.set(stepFloor, "floor", float64(final), map[string]float64{
		"tier_floor": float64(floor),
	})

	return entities.PayoutResult{
		Amount:    final,
		Status:    entities.PayoutSuccess,
		Breakdown: r.breakdown,
	}
}

func (c *Calculator) cargoModifier(class entities.CargoClass) float64 {
	if m, ok := c.cfg.CargoModifier[class]; ok {
		return m
	}
	return 1
}

func (c *Calculator) timeModifier(ratio float64) float64 {
	for _, b := range c.cfg.TimeBrackets {
		if ratio <= b.UpTo {
			return b.Value
		}
	}
	return c.cfg.WorstTimeModifier
}

func (c *Calculator) integrityModifier(integrity int) float64 {
	for _, b := range c.cfg.IntegrityBrackets {
		if integrity >= b.Min {
			return b.Value
		}
	}
	return c.cfg.IntegrityBrackets[len(c.cfg.IntegrityBrackets)-1].Value
}

func (c *Calculator) complianceBonus(in entities.PayoutInput) float64 {
	b := c.cfg.Bonuses
	sum := 0.0
	if in.Compliance.WeighStation {
		sum += b.WeighStation
	}
	if in.Compliance.SealIntact {
		sum += b.SealIntact
	}
	if in.Compliance.LicenseMatch {
		sum += b.LicenseMatch
	}
	if in.Compliance.PreTrip {
		sum += b.PreTrip
	}
	if in.Compliance.ManifestVerified {
		sum += b.ManifestVerified
	}
	sum += b.ShipperTier[in.ShipperTier]
	if in.TempMonitoring && in.TempClass == entities.TempClean {
		sum += b.CleanTemp
	}
	if in.WelfareRating != nil && *in.WelfareRating == entities.MaxWelfareRating {
		sum += b.TopWelfare
	}
	if in.ConvoySize > 1 {
		sum += math.Min(b.ConvoyPerMember*float64(in.ConvoySize-1), b.ConvoyMax)
	}
	return sum
}

func (c *Calculator) isNight(in entities.PayoutInput) bool {
	hour := in.DeliveredAt.UTC().Hour()
	start, end := c.cfg.NightStartHour, c.cfg.NightEndHour
	if start == end {
		return false
	}
	if start < end {
		return hour >= start && hour < end
	}
	return hour >= start || hour < end
}

func timeRatio(in entities.PayoutInput) float64 {
	window := in.WindowExpiresAt.Sub(in.AcceptedAt)
	if window <= 0 {
		return math.Inf(1)
	}
	elapsed := in.DeliveredAt.Sub(in.AcceptedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed.Seconds() / window.Seconds()
}

// lookupCapped выше верхнего порога действует последняя (самая высокая) ступень.
func lookupCapped(brackets []Bracket, v float64) float64 {
	if len(brackets) == 0 {
		return 0
	}
	for _, b := range brackets {
		if v <= b.UpTo {
			return b.Value
		}
	}
	return brackets[len(brackets)-1].Value
}

type run struct {
	base      float64
	breakdown []entities.BreakdownStep
}

// add прибавляет base*modifier; вклад шага считается здесь же, а не восстанавливается из итога.
func (r *run) add(step int, name string, modifier float64, inputs map[string]float64) {
	r.set(step, name, r.base+r.base*modifier, inputs)
}

func (r *run) set(step int, name string, after float64, inputs map[string]float64) {
	before := r.base
	r.base = after
	r.breakdown = append(r.breakdown, entities.BreakdownStep{
		Step:   step,
		Name:   name,
		Inputs: inputs,
		Before: before,
		Delta:  after - before,
		After:  after,
	})
}
