package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/driftwell/moodstream/internal/domain"
	"github.com/driftwell/moodstream/internal/scoring"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const seededDays = 7

// Run seeds the database with demo users' biometric streams and slot
// timelines. Safe to call multiple times.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.BiometricSample{}, &domain.DailySlot{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	users := []uuid.UUID{
		uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		uuid.MustParse("22222222-2222-2222-2222-222222222222"),
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, userID := range users {
		if err := seedSamplesForUser(db, userID, rng); err != nil {
			return err
		}
		if err := seedSlotsForUser(db, userID); err != nil {
			return err
		}
	}

	return nil
}

// seedSamplesForUser writes one night of periodic samples per day,
// 23:00 through 07:00 at five-minute intervals.
func seedSamplesForUser(db *gorm.DB, userID uuid.UUID, rng *rand.Rand) error {
	now := time.Now().UTC()
	for i := 0; i < seededDays; i++ {
		night := now.AddDate(0, 0, -i-1)
		bedtime := time.Date(night.Year(), night.Month(), night.Day(), 23, 0, 0, 0, time.UTC)

		for at := bedtime; at.Before(bedtime.Add(8 * time.Hour)); at = at.Add(5 * time.Minute) {
			sample := nightSample(at, bedtime, rng)
			row := domain.BiometricSample{
				UserID:             userID,
				Timestamp:          at,
				HeartRateAvg:       sample.HeartRateAvg,
				HeartRateMax:       sample.HeartRateMax,
				HeartRateMin:       sample.HeartRateMin,
				HRVSDNN:            sample.HRVSDNN,
				RespiratoryRateAvg: sample.RespiratoryRateAvg,
				MovementCount:      sample.MovementCount,
				IsFallback:         sample.IsFallback,
				SleepScore:         scoring.SleepScore(sample),
				StressScore:        scoring.StressScore(sample),
			}

			err := db.Where("user_id = ? AND timestamp = ?", userID, at).
				FirstOrCreate(&row).Error
			if err != nil {
				return fmt.Errorf("failed to create sample: %w", err)
			}
		}
	}
	return nil
}

// nightSample shapes plausible biometrics: restless at first, deepest
// in the middle of the night, lighter toward morning.
func nightSample(at, bedtime time.Time, rng *rand.Rand) domain.PeriodicSample {
	elapsed := at.Sub(bedtime).Hours()

	hr := 62.0 - 10*depthCurve(elapsed) + rng.Float64()*4
	hrMin := hr - 6 - rng.Float64()*4
	hrMax := hr + 8 + rng.Float64()*6
	movement := rng.Intn(3)
	if depthCurve(elapsed) < 0.3 {
		movement += rng.Intn(4)
	}

	return domain.PeriodicSample{
		Timestamp:          at.UnixMilli(),
		HeartRateAvg:       hr,
		HeartRateMax:       &hrMax,
		HeartRateMin:       &hrMin,
		HRVSDNN:            40 + 30*depthCurve(elapsed) + rng.Float64()*10,
		RespiratoryRateAvg: 14 + rng.Float64()*4,
		MovementCount:      movement,
		IsFallback:         rng.Float32() < 0.05,
	}
}

// depthCurve peaks mid-night and tapers at the edges, 0..1.
func depthCurve(elapsedHours float64) float64 {
	mid := 4.0
	d := 1 - (elapsedHours-mid)*(elapsedHours-mid)/(mid*mid)
	if d < 0 {
		return 0
	}
	return d
}

// seedSlotsForUser ensures the full slot timeline exists for each
// seeded day. Existing rows are never touched.
func seedSlotsForUser(db *gorm.DB, userID uuid.UUID) error {
	now := time.Now().UTC()
	for i := 0; i < seededDays; i++ {
		date := domain.DayOf(now.AddDate(0, 0, -i))

		slots := make([]domain.DailySlot, 0, domain.SlotsPerDay)
		for idx := 0; idx < domain.SlotsPerDay; idx++ {
			slots = append(slots, domain.NewDefaultSlot(userID, date, idx))
		}

		err := db.Clauses(clause.OnConflict{DoNothing: true}).
			CreateInBatches(slots, domain.SlotsPerDay).Error
		if err != nil {
			return fmt.Errorf("failed to create slots: %w", err)
		}
	}
	return nil
}
