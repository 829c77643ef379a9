package scoring

import (
	"math"

	"github.com/driftwell/moodstream/internal/domain"
)

const (
	// idealSleepHours is the duration that earns a full total-sleep component.
	idealSleepHours = 8.0

	dailyWeightTotal   = 0.5
	dailyWeightStage   = 0.3
	dailyWeightQuality = 0.2
)

// AggregateDaily reduces one sleep session into a 0-100 daily score with
// its component breakdown. Components are each in [0,1]: the total-sleep
// component saturates at eight hours, the stage component rewards deep
// and REM share, the quality component penalizes awake epochs inside
// the session.
func AggregateDaily(session domain.SleepSession) domain.DailyScore {
	total := session.StageStats.Total()
	if total < 1 {
		total = 1
	}

	totalSleep := math.Min(float64(session.DurationMinutes)/60.0/idealSleepHours, 1)

	deepRatio := float64(session.StageStats.Deep) / float64(total)
	remRatio := float64(session.StageStats.REM) / float64(total)
	stage := math.Min((deepRatio*0.6+remRatio*0.4)*2, 1)

	awakeRatio := float64(session.StageStats.Awake) / float64(total)
	quality := math.Max(1-awakeRatio*2, 0)

	score := int(math.Round((totalSleep*dailyWeightTotal + stage*dailyWeightStage + quality*dailyWeightQuality) * 100))

	return domain.DailyScore{
		Score: score,
		Components: domain.DailyScoreComponents{
			TotalSleepScore: totalSleep,
			StageScore:      stage,
			QualityScore:    quality,
		},
	}
}
