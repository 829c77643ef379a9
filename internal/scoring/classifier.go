package scoring

import "github.com/driftwell/moodstream/internal/domain"

// Stage classification thresholds.
const (
	deepHRThreshold      = 50.0
	remRespThreshold     = 17.0
	stillMovementMax     = 1
	lightMovementMax     = 4
)

// Classify assigns a sleep stage to one biometric sample.
// Rules are evaluated in order, first match wins:
// low heart rate while still means DEEP, elevated respiration while
// still means REM, moderate movement means LIGHT, anything else AWAKE.
func Classify(s domain.PeriodicSample) domain.SleepStage {
	hrLow := s.HeartRateAvg
	if s.HeartRateMin != nil {
		hrLow = *s.HeartRateMin
	}

	switch {
	case hrLow < deepHRThreshold && s.MovementCount <= stillMovementMax:
		return domain.StageDeep
	case s.MovementCount <= stillMovementMax && s.RespiratoryRateAvg >= remRespThreshold:
		return domain.StageREM
	case s.MovementCount <= lightMovementMax:
		return domain.StageLight
	default:
		return domain.StageAwake
	}
}

// ClassifyEpoch wraps a sample and its classified stage into an epoch.
func ClassifyEpoch(s domain.PeriodicSample) domain.SleepEpoch {
	return domain.SleepEpoch{Sample: s, Stage: Classify(s)}
}

// ClassifyAll classifies a batch of samples in input order.
func ClassifyAll(samples []domain.PeriodicSample) []domain.SleepEpoch {
	epochs := make([]domain.SleepEpoch, 0, len(samples))
	for _, s := range samples {
		epochs = append(epochs, ClassifyEpoch(s))
	}
	return epochs
}
