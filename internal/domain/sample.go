package domain

import (
	"time"

	"github.com/google/uuid"
)

// SleepStage represents the classified sleep stage of one biometric epoch.
// @Description Sleep stage: AWAKE, LIGHT, DEEP or REM.
type SleepStage string

const (
	StageAwake SleepStage = "AWAKE"
	StageLight SleepStage = "LIGHT"
	StageDeep  SleepStage = "DEEP"
	StageREM   SleepStage = "REM"
)

// PeriodicSample is one biometric reading pushed by the wearable.
// Immutable once received. IsFallback marks a low-confidence synthetic
// reading produced when the device could not measure directly.
type PeriodicSample struct {
	// Sample time in Unix milliseconds
	Timestamp int64 `json:"timestamp"`
	// Average heart rate over the sampling window (bpm)
	HeartRateAvg float64 `json:"heart_rate_avg"`
	// Maximum heart rate, if the device reported one
	HeartRateMax *float64 `json:"heart_rate_max,omitempty"`
	// Minimum heart rate, if the device reported one
	HeartRateMin *float64 `json:"heart_rate_min,omitempty"`
	// Heart-rate variability, SDNN (ms)
	HRVSDNN float64 `json:"hrv_sdnn"`
	// Average respiratory rate (breaths/min)
	RespiratoryRateAvg float64 `json:"respiratory_rate_avg"`
	// Movement events counted in the sampling window
	MovementCount int `json:"movement_count"`
	// True for synthetic low-confidence samples
	IsFallback bool `json:"is_fallback"`
}

// Time returns the sample timestamp as a time.Time.
func (s PeriodicSample) Time() time.Time {
	return time.UnixMilli(s.Timestamp).UTC()
}

// SleepEpoch is a PeriodicSample plus its classified stage.
// Never mutated after creation.
type SleepEpoch struct {
	Sample PeriodicSample `json:"sample"`
	Stage  SleepStage     `json:"stage"`
}

// BiometricSample is the persisted form of a scored PeriodicSample.
type BiometricSample struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;index:idx_samples_user_ts" json:"user_id"`
	Timestamp          time.Time `gorm:"not null;index:idx_samples_user_ts,sort:desc" json:"timestamp"`
	HeartRateAvg       float64   `gorm:"not null" json:"heart_rate_avg"`
	HeartRateMax       *float64  `json:"heart_rate_max,omitempty"`
	HeartRateMin       *float64  `json:"heart_rate_min,omitempty"`
	HRVSDNN            float64   `gorm:"column:hrv_sdnn;not null" json:"hrv_sdnn"`
	RespiratoryRateAvg float64   `gorm:"not null" json:"respiratory_rate_avg"`
	MovementCount      int       `gorm:"not null" json:"movement_count"`
	IsFallback         bool      `gorm:"not null;default:false" json:"is_fallback"`
	SleepScore         int       `gorm:"type:smallint;not null" json:"sleep_score"`
	StressScore        int       `gorm:"type:smallint;not null" json:"stress_score"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (BiometricSample) TableName() string {
	return "biometric_samples"
}

// ToSample converts the persisted row back to the wire-shaped sample.
func (b *BiometricSample) ToSample() PeriodicSample {
	return PeriodicSample{
		Timestamp:          b.Timestamp.UnixMilli(),
		HeartRateAvg:       b.HeartRateAvg,
		HeartRateMax:       b.HeartRateMax,
		HeartRateMin:       b.HeartRateMin,
		HRVSDNN:            b.HRVSDNN,
		RespiratoryRateAvg: b.RespiratoryRateAvg,
		MovementCount:      b.MovementCount,
		IsFallback:         b.IsFallback,
	}
}

// SampleListResponse is the response body for listing persisted samples.
// @Description Paginated list of biometric samples.
type SampleListResponse struct {
	// Array of persisted samples, newest first
	Data []BiometricSample `json:"data"`
	// Pagination metadata
	Pagination PaginationResponse `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
// @Description Cursor-based pagination info.
type PaginationResponse struct {
	// Cursor for fetching the next page (empty if no more pages)
	NextCursor string `json:"next_cursor,omitempty"`
	// True if more results are available
	HasMore bool `json:"has_more" example:"true"`
}

// SampleFilter contains filter parameters for listing samples.
type SampleFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Cursor string
}
