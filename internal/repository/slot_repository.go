package repository

import (
	"context"
	"time"

	"github.com/driftwell/moodstream/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailySlotRepository interface {
	// EnsureDailySlots bulk-creates any missing slot rows for the day
	// with neutral defaults and returns the resulting row count.
	// Idempotent and safe under concurrent callers: duplicate-key
	// conflicts are treated as already satisfied.
	EnsureDailySlots(ctx context.Context, userID uuid.UUID, date time.Time) (int, error)
	FindMany(ctx context.Context, userID uuid.UUID, date time.Time) ([]domain.DailySlot, error)
	Count(ctx context.Context, userID uuid.UUID, date time.Time) (int64, error)
	// Upsert inserts or replaces the substantive fields of one slot.
	// The slot index itself never changes.
	Upsert(ctx context.Context, userID uuid.UUID, date time.Time, slotIndex int, values domain.SlotValues) (*domain.DailySlot, error)
}

type dailySlotRepository struct {
	db *gorm.DB
}

func NewDailySlotRepository(db *gorm.DB) DailySlotRepository {
	return &dailySlotRepository{db: db}
}

func (r *dailySlotRepository) EnsureDailySlots(ctx context.Context, userID uuid.UUID, date time.Time) (int, error) {
	day := domain.DayOf(date)

	count, err := r.Count(ctx, userID, day)
	if err != nil {
		return 0, err
	}
	if count >= domain.SlotsPerDay {
		return int(count), nil
	}

	rows := make([]domain.DailySlot, 0, domain.SlotsPerDay)
	for i := 0; i < domain.SlotsPerDay; i++ {
		rows = append(rows, domain.NewDefaultSlot(userID, day, i))
	}

	// Racing callers may have created some or all rows in between;
	// ON CONFLICT DO NOTHING swallows the duplicates.
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		return 0, err
	}

	count, err = r.Count(ctx, userID, day)
	return int(count), err
}

func (r *dailySlotRepository) FindMany(ctx context.Context, userID uuid.UUID, date time.Time) ([]domain.DailySlot, error) {
	var slots []domain.DailySlot
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, domain.DayOf(date)).
		Order("slot_index ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *dailySlotRepository) Count(ctx context.Context, userID uuid.UUID, date time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.DailySlot{}).
		Where("user_id = ? AND date = ?", userID, domain.DayOf(date)).
		Count(&count).Error
	return count, err
}

func (r *dailySlotRepository) Upsert(ctx context.Context, userID uuid.UUID, date time.Time, slotIndex int, values domain.SlotValues) (*domain.DailySlot, error) {
	slot := domain.DailySlot{
		UserID:             userID,
		Date:               domain.DayOf(date),
		SlotIndex:          slotIndex,
		AverageStressIndex: values.AverageStressIndex,
		RecentStressIndex:  values.RecentStressIndex,
		LatestSleepScore:   values.LatestSleepScore,
		LatestSleepDur:     values.LatestSleepDur,
		Temperature:        values.Temperature,
		Humidity:           values.Humidity,
		RainType:           values.RainType,
		Sky:                values.Sky,
		Laughter:           values.Laughter,
		Sigh:               values.Sigh,
		Crying:             values.Crying,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}, {Name: "slot_index"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"average_stress_index", "recent_stress_index",
				"latest_sleep_score", "latest_sleep_duration",
				"temperature", "humidity", "rain_type", "sky",
				"laughter", "sigh", "crying", "updated_at",
			}),
		}).
		Create(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}
