package service

import (
	"context"
	"time"

	"github.com/driftwell/moodstream/internal/domain"
	"github.com/driftwell/moodstream/internal/ingest"
	"github.com/driftwell/moodstream/internal/llm"
	"github.com/driftwell/moodstream/internal/repository"
	"github.com/google/uuid"
)

// SlotService manages the fixed 144-slot daily timeline.
type SlotService interface {
	// Ensure initializes any missing slots for the day and returns the
	// resulting count. Safe to call repeatedly and concurrently.
	Ensure(ctx context.Context, userID uuid.UUID, date time.Time) (int, error)
	// ListDay ensures the timeline exists and returns all of its rows.
	ListDay(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.SlotListResponse, error)
	// Upsert replaces one slot's substantive values.
	Upsert(ctx context.Context, userID uuid.UUID, date time.Time, slotIndex int, values domain.SlotValues) (*domain.DailySlot, error)
	// Refresh fills the slot covering `at` from the live metrics cache
	// and current weather, degrading to neutral defaults when either
	// is unavailable.
	Refresh(ctx context.Context, userID uuid.UUID, at time.Time) (*domain.DailySlot, error)
}

type slotService struct {
	slotRepo   repository.DailySlotRepository
	cache      *ingest.MetricsCache
	conditions llm.ConditionsProvider
}

// NewSlotService creates a new SlotService. conditions may be nil when
// no weather lookup is configured.
func NewSlotService(slotRepo repository.DailySlotRepository, cache *ingest.MetricsCache, conditions llm.ConditionsProvider) SlotService {
	return &slotService{
		slotRepo:   slotRepo,
		cache:      cache,
		conditions: conditions,
	}
}

func (s *slotService) Ensure(ctx context.Context, userID uuid.UUID, date time.Time) (int, error) {
	return s.slotRepo.EnsureDailySlots(ctx, userID, date)
}

func (s *slotService) ListDay(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.SlotListResponse, error) {
	if _, err := s.slotRepo.EnsureDailySlots(ctx, userID, date); err != nil {
		return nil, err
	}

	rows, err := s.slotRepo.FindMany(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	return &domain.SlotListResponse{Count: len(rows), Rows: rows}, nil
}

func (s *slotService) Upsert(ctx context.Context, userID uuid.UUID, date time.Time, slotIndex int, values domain.SlotValues) (*domain.DailySlot, error) {
	if slotIndex < 0 || slotIndex >= domain.SlotsPerDay {
		return nil, domain.ErrInvalidInput
	}
	return s.slotRepo.Upsert(ctx, userID, date, slotIndex, values)
}

// SlotIndexOf maps a moment to its ten-minute bucket within the day.
func SlotIndexOf(at time.Time) int {
	at = at.UTC()
	return (at.Hour()*60 + at.Minute()) / 10
}

func (s *slotService) Refresh(ctx context.Context, userID uuid.UUID, at time.Time) (*domain.DailySlot, error) {
	if _, err := s.slotRepo.EnsureDailySlots(ctx, userID, at); err != nil {
		return nil, err
	}

	values := domain.SlotValues{
		AverageStressIndex: domain.DefaultSlotStress,
		RecentStressIndex:  domain.DefaultSlotStress,
		LatestSleepScore:   domain.DefaultSlotSleepScore,
		LatestSleepDur:     domain.DefaultSlotSleepDuration,
	}
	if metrics, ok := s.cache.Get(); ok {
		values.AverageStressIndex = metrics.StressScore
		values.RecentStressIndex = metrics.StressScore
		values.LatestSleepScore = metrics.SleepScore
	}

	conditions := domain.NeutralWeather()
	if s.conditions != nil {
		// Lookup failures already return the neutral defaults.
		conditions, _ = s.conditions.Current(ctx)
	}
	values.Temperature = conditions.Temperature
	values.Humidity = conditions.Humidity
	values.RainType = conditions.RainType
	values.Sky = conditions.Sky

	return s.slotRepo.Upsert(ctx, userID, at, SlotIndexOf(at), values)
}
