package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/driftwell/moodstream/internal/domain"
	"github.com/driftwell/moodstream/internal/ingest"
	"github.com/driftwell/moodstream/internal/service"
	"github.com/driftwell/moodstream/pkg/problem"
	"github.com/google/uuid"
)

type ScoreHandler struct {
	dailyScoreService service.DailyScoreService
	cache             *ingest.MetricsCache
}

func NewScoreHandler(dailyScoreService service.DailyScoreService, cache *ingest.MetricsCache) *ScoreHandler {
	return &ScoreHandler{
		dailyScoreService: dailyScoreService,
		cache:             cache,
	}
}

// GetSleepScore handles GET /v1/sleep-score
// @Summary Get daily sleep score
// @Description Compute the daily sleep score from the day's samples. Returns a null score with a reason when no data or no qualifying session exists.
// @Tags scores
// @Produce json
// @Param userId query string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param date query string false "Calendar day (RFC3339; defaults to today)" format(date-time)
// @Success 200 {object} domain.SleepScoreResponse "Daily score or a reason it is null"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /sleep-score [get]
func (h *ScoreHandler) GetSleepScore(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.URL.Query().Get("userId"))
	if err != nil {
		problem.BadRequest("Invalid or missing userId").Write(w)
		return
	}

	date := time.Now().UTC()
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err = parseDateParam(dateStr)
		if err != nil {
			problem.BadRequest("Invalid date").Write(w)
			return
		}
	}

	result, err := h.dailyScoreService.Compute(r.Context(), userID, date)
	if err != nil {
		problem.InternalError("Failed to compute sleep score").Write(w)
		return
	}

	response := domain.SleepScoreResponse{}
	if result.Score != nil {
		response.SleepScore = &result.Score.Score
		response.TotalMinutes = result.TotalMinutes
		response.StageStats = &result.StageStats
		response.Components = &result.Score.Components
	} else {
		response.Reason = result.Reason
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetCurrentMetrics handles GET /v1/metrics/current
// @Summary Get live metrics
// @Description Return the most recently computed sleep and stress indices from the live sample stream.
// @Tags scores
// @Produce json
// @Success 200 {object} domain.MetricsResponse "Latest live metrics"
// @Failure 404 {object} problem.Problem "No samples processed yet"
// @Router /metrics/current [get]
func (h *ScoreHandler) GetCurrentMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, ok := h.cache.Get()
	if !ok {
		problem.NotFound("No metrics computed yet").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(domain.MetricsResponse{
		SleepScore:  metrics.SleepScore,
		StressScore: metrics.StressScore,
		UpdatedAt:   time.UnixMilli(metrics.UpdatedAt).UTC(),
	})
}
