package domain

import "time"

// ProcessedMetrics is the most recent pair of derived indices computed
// from the live sample stream. A single process-wide instance exists;
// every new sample overwrites it.
type ProcessedMetrics struct {
	// Instantaneous sleep quality index (0-100)
	SleepScore int `json:"sleep_score" example:"80"`
	// Instantaneous stress index (0-100)
	StressScore int `json:"stress_score" example:"24"`
	// When the metrics were computed (Unix milliseconds)
	UpdatedAt int64 `json:"updated_at"`
}

// DailyScoreReason explains why no daily score could be produced.
type DailyScoreReason string

const (
	// ReasonNoData means no samples exist for the requested day.
	ReasonNoData DailyScoreReason = "NO_DATA"
	// ReasonNoSession means samples exist but no qualifying sleep session.
	ReasonNoSession DailyScoreReason = "NO_SESSION"
)

// DailyScoreComponents is the sub-score breakdown of a daily sleep score.
// All components are in [0,1].
type DailyScoreComponents struct {
	TotalSleepScore float64 `json:"totalSleepScore"`
	StageScore      float64 `json:"stageScore"`
	QualityScore    float64 `json:"qualityScore"`
}

// DailyScore is the aggregate of one sleep session into a 0-100 score.
type DailyScore struct {
	Score      int                  `json:"score"`
	Components DailyScoreComponents `json:"components"`
}

// DailyScoreResult is the outcome of the daily-score orchestration.
// Absence of data is a normal, recoverable result: Reason is set and
// Score is nil.
type DailyScoreResult struct {
	Score        *DailyScore
	Reason       DailyScoreReason
	TotalMinutes int
	StageStats   StageStats
	Session      *SleepSession
}

// SleepScoreResponse is the response body for the daily sleep score endpoint.
// @Description Daily sleep score with component breakdown, or a reason when no score exists.
type SleepScoreResponse struct {
	// Daily sleep score (null when no qualifying session exists)
	SleepScore *int `json:"sleep_score" example:"35"`
	// Reason the score is null: NO_DATA or NO_SESSION
	Reason DailyScoreReason `json:"reason,omitempty" enums:"NO_DATA,NO_SESSION"`
	// Total sleep duration of the primary session (minutes)
	TotalMinutes int `json:"totalMinutes,omitempty"`
	// Epoch counts per stage for the primary session
	StageStats *StageStats `json:"stageStats,omitempty"`
	// Sub-score breakdown for the primary session
	Components *DailyScoreComponents `json:"components,omitempty"`
}

// MetricsResponse wraps the cached live metrics for the HTTP surface.
// @Description Latest live sleep/stress indices.
type MetricsResponse struct {
	SleepScore  int       `json:"sleep_score" example:"80"`
	StressScore int       `json:"stress_score" example:"24"`
	UpdatedAt   time.Time `json:"updated_at"`
}
