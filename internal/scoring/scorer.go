package scoring

import (
	"math"

	"github.com/driftwell/moodstream/internal/domain"
)

// fallbackDiscountFactor is applied to the pre-rounding weighted sum of
// synthetic low-confidence samples.
const fallbackDiscountFactor = 0.9

// Adjustment transforms the pre-rounding weighted sum of a score.
// Adjustments compose left to right, letting callers stack confidence
// discounts or bonuses without duplicating the base formula.
type Adjustment func(raw float64, s domain.PeriodicSample) float64

// FallbackDiscount scales down scores computed from synthetic samples.
func FallbackDiscount() Adjustment {
	return func(raw float64, s domain.PeriodicSample) float64 {
		if s.IsFallback {
			return raw * fallbackDiscountFactor
		}
		return raw
	}
}

// HRRangeBonus adds a flat bonus when the average heart rate sits inside
// [lo, hi]. Used by callers that want to reward a resting-range pulse.
func HRRangeBonus(lo, hi, bonus float64) Adjustment {
	return func(raw float64, s domain.PeriodicSample) float64 {
		if s.HeartRateAvg >= lo && s.HeartRateAvg <= hi {
			return raw + bonus
		}
		return raw
	}
}

// SleepScore computes the instantaneous sleep quality index (0-100) for
// one sample. Four normalized sub-scores are clamped to [0,1], weighted,
// adjusted, then rounded. Missing numeric fields contribute as zero, so
// the function is total over its domain.
//
// Sub-scores: HR (90-hr)/40, SDNN (sdnn-20)/80, MOV (60-mov)/60,
// RESP 1-|resp-16|/8. Weights 0.30/0.30/0.25/0.15.
func SleepScore(s domain.PeriodicSample, adjustments ...Adjustment) int {
	hr := clamp01((90 - s.HeartRateAvg) / (90 - 50))
	sdnn := clamp01((s.HRVSDNN - 20) / (100 - 20))
	mov := clamp01((60 - float64(s.MovementCount)) / 60)
	resp := clamp01(1 - math.Abs(s.RespiratoryRateAvg-16)/8)

	raw := hr*0.30 + sdnn*0.30 + mov*0.25 + resp*0.15
	return finalize(raw, s, adjustments)
}

// StressScore computes the instantaneous stress index (0-100) for one
// sample, independently of SleepScore.
//
// Sub-scores: HR (hr-50)/60, SDNN (100-sdnn)/80, MOV mov/60,
// RESP |resp-16|/10. Weights 0.40/0.40/0.15/0.05.
func StressScore(s domain.PeriodicSample, adjustments ...Adjustment) int {
	hr := clamp01((s.HeartRateAvg - 50) / (110 - 50))
	sdnn := clamp01((100 - s.HRVSDNN) / (100 - 20))
	mov := clamp01(float64(s.MovementCount) / 60)
	resp := clamp01(math.Abs(s.RespiratoryRateAvg-16) / 10)

	raw := hr*0.40 + sdnn*0.40 + mov*0.15 + resp*0.05
	return finalize(raw, s, adjustments)
}

// finalize applies the fallback discount, any caller adjustments, and
// rounds the weighted sum into a clamped 0-100 integer.
func finalize(raw float64, s domain.PeriodicSample, adjustments []Adjustment) int {
	raw = FallbackDiscount()(raw, s)
	for _, adjust := range adjustments {
		raw = adjust(raw, s)
	}

	score := int(math.Round(raw * 100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
