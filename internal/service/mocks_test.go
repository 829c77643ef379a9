package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/driftwell/moodstream/internal/domain"
	"github.com/google/uuid"
)

// MockSampleRepository is a mock implementation of SampleRepository
type MockSampleRepository struct {
	samples []domain.BiometricSample
	err     error
}

func NewMockSampleRepository() *MockSampleRepository {
	return &MockSampleRepository{}
}

func (m *MockSampleRepository) Create(ctx context.Context, sample *domain.BiometricSample) error {
	if m.err != nil {
		return m.err
	}
	if sample.ID == uuid.Nil {
		sample.ID = uuid.New()
	}
	m.samples = append(m.samples, *sample)
	return nil
}

func (m *MockSampleRepository) ListByDay(ctx context.Context, userID uuid.UUID, date time.Time) ([]domain.BiometricSample, error) {
	if m.err != nil {
		return nil, m.err
	}
	day := domain.DayOf(date)
	next := day.AddDate(0, 0, 1)

	var result []domain.BiometricSample
	for _, s := range m.samples {
		if s.UserID == userID && !s.Timestamp.Before(day) && s.Timestamp.Before(next) {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Timestamp.Before(result[j].Timestamp) })
	return result, nil
}

func (m *MockSampleRepository) List(ctx context.Context, userID uuid.UUID, filter domain.SampleFilter) ([]domain.BiometricSample, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.BiometricSample
	for _, s := range m.samples {
		if s.UserID == userID {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Timestamp.After(result[j].Timestamp) })
	return result, nil
}

// MockDailySlotRepository is a mock implementation of DailySlotRepository
type MockDailySlotRepository struct {
	slots map[string]domain.DailySlot
	err   error
}

func NewMockDailySlotRepository() *MockDailySlotRepository {
	return &MockDailySlotRepository{slots: make(map[string]domain.DailySlot)}
}

func slotKey(userID uuid.UUID, date time.Time, slotIndex int) string {
	return fmt.Sprintf("%s|%s|%d", userID, domain.DayOf(date).Format("2006-01-02"), slotIndex)
}

func (m *MockDailySlotRepository) EnsureDailySlots(ctx context.Context, userID uuid.UUID, date time.Time) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	// Existing rows win, mirroring ON CONFLICT DO NOTHING.
	for i := 0; i < domain.SlotsPerDay; i++ {
		key := slotKey(userID, date, i)
		if _, exists := m.slots[key]; !exists {
			m.slots[key] = domain.NewDefaultSlot(userID, domain.DayOf(date), i)
		}
	}
	count, _ := m.Count(ctx, userID, date)
	return int(count), nil
}

func (m *MockDailySlotRepository) FindMany(ctx context.Context, userID uuid.UUID, date time.Time) ([]domain.DailySlot, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.DailySlot
	for i := 0; i < domain.SlotsPerDay; i++ {
		if slot, ok := m.slots[slotKey(userID, date, i)]; ok {
			result = append(result, slot)
		}
	}
	return result, nil
}

func (m *MockDailySlotRepository) Count(ctx context.Context, userID uuid.UUID, date time.Time) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	var count int64
	for i := 0; i < domain.SlotsPerDay; i++ {
		if _, ok := m.slots[slotKey(userID, date, i)]; ok {
			count++
		}
	}
	return count, nil
}

func (m *MockDailySlotRepository) Upsert(ctx context.Context, userID uuid.UUID, date time.Time, slotIndex int, values domain.SlotValues) (*domain.DailySlot, error) {
	if m.err != nil {
		return nil, m.err
	}
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
	m.slots[slotKey(userID, date, slotIndex)] = slot
	return &slot, nil
}

// mockConditions returns fixed weather.
type mockConditions struct {
	conditions domain.WeatherConditions
	err        error
}

func (m *mockConditions) Current(ctx context.Context) (domain.WeatherConditions, error) {
	if m.err != nil {
		return domain.NeutralWeather(), m.err
	}
	return m.conditions, nil
}
