package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/driftwell/moodstream/internal/domain"
	"github.com/driftwell/moodstream/internal/ingest"
	"github.com/google/uuid"
)

func TestSlotService_EnsureIsIdempotent(t *testing.T) {
	repo := NewMockDailySlotRepository()
	svc := NewSlotService(repo, ingest.NewMetricsCache(), nil)
	userID := uuid.New()

	first, err := svc.Ensure(context.Background(), userID, testDay)
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	second, err := svc.Ensure(context.Background(), userID, testDay)
	if err != nil {
		t.Fatalf("second Ensure() error = %v", err)
	}

	if first != domain.SlotsPerDay || second != domain.SlotsPerDay {
		t.Errorf("Ensure() counts = %d, %d, want %d both times", first, second, domain.SlotsPerDay)
	}
	count, _ := repo.Count(context.Background(), userID, testDay)
	if count != domain.SlotsPerDay {
		t.Errorf("stored rows = %d, want exactly %d", count, domain.SlotsPerDay)
	}
}

func TestSlotService_EnsurePreservesExistingRows(t *testing.T) {
	repo := NewMockDailySlotRepository()
	svc := NewSlotService(repo, ingest.NewMetricsCache(), nil)
	userID := uuid.New()

	// Slot 10 already carries real values before the bulk init runs.
	if _, err := repo.Upsert(context.Background(), userID, testDay, 10, domain.SlotValues{RecentStressIndex: 93}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if _, err := svc.Ensure(context.Background(), userID, testDay); err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}

	rows, _ := repo.FindMany(context.Background(), userID, testDay)
	if rows[10].RecentStressIndex != 93 {
		t.Errorf("slot 10 recent stress = %d, bulk init overwrote an existing row", rows[10].RecentStressIndex)
	}
	if rows[11].RecentStressIndex != domain.DefaultSlotStress {
		t.Errorf("slot 11 recent stress = %d, want neutral default", rows[11].RecentStressIndex)
	}
}

func TestSlotService_ListDayInitializesFirst(t *testing.T) {
	repo := NewMockDailySlotRepository()
	svc := NewSlotService(repo, ingest.NewMetricsCache(), nil)

	resp, err := svc.ListDay(context.Background(), uuid.New(), testDay)
	if err != nil {
		t.Fatalf("ListDay() error = %v", err)
	}
	if resp.Count != domain.SlotsPerDay || len(resp.Rows) != domain.SlotsPerDay {
		t.Errorf("ListDay() count = %d rows = %d, want %d", resp.Count, len(resp.Rows), domain.SlotsPerDay)
	}
	if resp.Rows[0].SlotIndex != 0 || resp.Rows[143].SlotIndex != 143 {
		t.Errorf("rows not ordered by slot index")
	}
}

func TestSlotService_UpsertRejectsBadIndex(t *testing.T) {
	svc := NewSlotService(NewMockDailySlotRepository(), ingest.NewMetricsCache(), nil)

	tests := []int{-1, domain.SlotsPerDay, 500}
	for _, idx := range tests {
		if _, err := svc.Upsert(context.Background(), uuid.New(), testDay, idx, domain.SlotValues{}); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Upsert(index=%d) error = %v, want ErrInvalidInput", idx, err)
		}
	}
}

func TestSlotService_RefreshUsesCacheAndWeather(t *testing.T) {
	repo := NewMockDailySlotRepository()
	cache := ingest.NewMetricsCache()
	cache.Set(81, 33, time.Now())
	conditions := &mockConditions{conditions: domain.WeatherConditions{Temperature: 4, Humidity: 90, RainType: 2, Sky: 4}}

	svc := NewSlotService(repo, cache, conditions)
	at := testDay.Add(13*time.Hour + 25*time.Minute) // slot 80

	slot, err := svc.Refresh(context.Background(), uuid.New(), at)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if slot.SlotIndex != 80 {
		t.Errorf("SlotIndex = %d, want 80", slot.SlotIndex)
	}
	if slot.LatestSleepScore != 81 || slot.RecentStressIndex != 33 {
		t.Errorf("slot metrics = sleep %d stress %d, want 81/33", slot.LatestSleepScore, slot.RecentStressIndex)
	}
	if slot.Temperature != 4 || slot.Sky != 4 {
		t.Errorf("slot weather = %+v, want decorated values", slot)
	}
}

func TestSlotService_RefreshDefaultsWhenCacheEmpty(t *testing.T) {
	repo := NewMockDailySlotRepository()
	svc := NewSlotService(repo, ingest.NewMetricsCache(), nil)

	slot, err := svc.Refresh(context.Background(), uuid.New(), testDay)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if slot.LatestSleepScore != domain.DefaultSlotSleepScore || slot.RecentStressIndex != domain.DefaultSlotStress {
		t.Errorf("slot = %+v, want neutral defaults", slot)
	}
	if slot.Temperature != domain.DefaultSlotTemperature {
		t.Errorf("Temperature = %v, want neutral default", slot.Temperature)
	}
}

func TestSlotIndexOf(t *testing.T) {
	tests := []struct {
		at   time.Time
		want int
	}{
		{testDay, 0},
		{testDay.Add(9 * time.Minute), 0},
		{testDay.Add(10 * time.Minute), 1},
		{testDay.Add(23*time.Hour + 50*time.Minute), 143},
	}
	for _, tt := range tests {
		if got := SlotIndexOf(tt.at); got != tt.want {
			t.Errorf("SlotIndexOf(%v) = %d, want %d", tt.at, got, tt.want)
		}
	}
}
