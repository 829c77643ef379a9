package domain

import (
	"time"

	"github.com/google/uuid"
)

// SlotsPerDay is the fixed number of ten-minute buckets in one calendar day.
const SlotsPerDay = 144

// Neutral defaults used when a slot is initialized before any real data
// has been observed for it.
const (
	DefaultSlotStress        = 50
	DefaultSlotSleepScore    = 70
	DefaultSlotSleepDuration = 480
	DefaultSlotTemperature   = 22.0
	DefaultSlotHumidity      = 50.0
	DefaultSlotRainType      = 0
	DefaultSlotSky           = 1
)

// DayOf truncates a time to its calendar day at midnight UTC,
// the granularity slot rows are keyed on.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DailySlot is one of 144 fixed ten-minute buckets covering a calendar
// day. Exactly SlotsPerDay rows exist per (user, date); the triple
// (user_id, date, slot_index) is unique.
type DailySlot struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_daily_slots_user_date_slot" json:"user_id"`
	Date               time.Time `gorm:"type:date;not null;uniqueIndex:idx_daily_slots_user_date_slot" json:"date"`
	SlotIndex          int       `gorm:"type:smallint;not null;uniqueIndex:idx_daily_slots_user_date_slot" json:"slot_index"`
	AverageStressIndex int       `gorm:"type:smallint;not null" json:"average_stress_index"`
	RecentStressIndex  int       `gorm:"type:smallint;not null" json:"recent_stress_index"`
	LatestSleepScore   int       `gorm:"type:smallint;not null" json:"latest_sleep_score"`
	LatestSleepDur     int       `gorm:"column:latest_sleep_duration;not null" json:"latest_sleep_duration"`
	Temperature        float64   `gorm:"not null" json:"temperature"`
	Humidity           float64   `gorm:"not null" json:"humidity"`
	RainType           int       `gorm:"type:smallint;not null" json:"rainType"`
	Sky                int       `gorm:"type:smallint;not null" json:"sky"`
	Laughter           int       `gorm:"not null;default:0" json:"laughter"`
	Sigh               int       `gorm:"not null;default:0" json:"sigh"`
	Crying             int       `gorm:"not null;default:0" json:"crying"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DailySlot) TableName() string {
	return "daily_slots"
}

// NewDefaultSlot builds a slot row carrying the neutral defaults.
func NewDefaultSlot(userID uuid.UUID, date time.Time, slotIndex int) DailySlot {
	return DailySlot{
		UserID:             userID,
		Date:               date,
		SlotIndex:          slotIndex,
		AverageStressIndex: DefaultSlotStress,
		RecentStressIndex:  DefaultSlotStress,
		LatestSleepScore:   DefaultSlotSleepScore,
		LatestSleepDur:     DefaultSlotSleepDuration,
		Temperature:        DefaultSlotTemperature,
		Humidity:           DefaultSlotHumidity,
		RainType:           DefaultSlotRainType,
		Sky:                DefaultSlotSky,
	}
}

// EnsureSlotsRequest is the request body for initializing a day's slots.
// @Description Request payload for ensuring a full 144-slot timeline exists.
type EnsureSlotsRequest struct {
	// Owner user UUID
	UserID uuid.UUID `json:"userId" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Calendar day (any time on the day; normalized to midnight UTC)
	Date time.Time `json:"date" validate:"required" example:"2024-01-15T00:00:00Z"`
}

// SlotValues carries the substantive fields of one slot for an upsert.
// The slot index itself is fixed by the URL, never by the body.
type SlotValues struct {
	AverageStressIndex int     `json:"average_stress_index" validate:"min=0,max=100"`
	RecentStressIndex  int     `json:"recent_stress_index" validate:"min=0,max=100"`
	LatestSleepScore   int     `json:"latest_sleep_score" validate:"min=0,max=100"`
	LatestSleepDur     int     `json:"latest_sleep_duration" validate:"min=0"`
	Temperature        float64 `json:"temperature"`
	Humidity           float64 `json:"humidity" validate:"min=0,max=100"`
	RainType           int     `json:"rainType" validate:"min=0"`
	Sky                int     `json:"sky" validate:"min=0"`
	Laughter           int     `json:"laughter" validate:"min=0"`
	Sigh               int     `json:"sigh" validate:"min=0"`
	Crying             int     `json:"crying" validate:"min=0"`
}

// SlotListResponse is the response body for the daily slot listing.
// @Description Full slot timeline for one user and day.
type SlotListResponse struct {
	// Number of rows returned (always 144 once initialized)
	Count int `json:"count" example:"144"`
	// Slot rows ordered by slot_index
	Rows []DailySlot `json:"rows"`
}

// SlotCountResponse is the response body after ensuring a day's slots.
// @Description Row count after initialization.
type SlotCountResponse struct {
	Count int `json:"count" example:"144"`
}
