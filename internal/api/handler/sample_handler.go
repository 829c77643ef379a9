package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/driftwell/moodstream/internal/domain"
	"github.com/driftwell/moodstream/internal/repository"
	"github.com/driftwell/moodstream/pkg/pagination"
	"github.com/driftwell/moodstream/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type SampleHandler struct {
	repo repository.SampleRepository
}

func NewSampleHandler(repo repository.SampleRepository) *SampleHandler {
	return &SampleHandler{repo: repo}
}

// List handles GET /v1/users/{userId}/samples
// @Summary List biometric samples
// @Description Fetch paginated sample history. Filter by time range. Results sorted by timestamp descending (newest first).
// @Tags samples
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param from query string false "Start of time range (RFC3339)" format(date-time)
// @Param to query string false "End of time range (RFC3339)" format(date-time)
// @Param limit query integer false "Results per page (1-100)" default(20) minimum(1) maximum(100)
// @Param cursor query string false "Cursor from previous response's next_cursor"
// @Success 200 {object} domain.SampleListResponse "Samples with pagination"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/samples [get]
func (h *SampleHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	filter, fieldErrors := parseSampleFilter(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	samples, err := h.repo.List(r.Context(), userID, filter)
	if err != nil {
		problem.InternalError("Failed to list samples").Write(w)
		return
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	response := domain.SampleListResponse{Data: samples}
	if len(samples) > limit {
		response.Data = samples[:limit]
		last := response.Data[limit-1]
		cursor := pagination.Cursor{ID: last.ID, Timestamp: last.Timestamp}
		response.Pagination.NextCursor = cursor.Encode()
		response.Pagination.HasMore = true
	}
	if response.Data == nil {
		response.Data = []domain.BiometricSample{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func parseSampleFilter(r *http.Request) (domain.SampleFilter, []problem.FieldError) {
	var filter domain.SampleFilter
	var fieldErrors []problem.FieldError

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{Field: "from", Message: "must be a valid RFC3339 timestamp"})
		} else {
			filter.From = &from
		}
	}

	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{Field: "to", Message: "must be a valid RFC3339 timestamp"})
		} else {
			filter.To = &to
		}
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			fieldErrors = append(fieldErrors, problem.FieldError{Field: "limit", Message: "must be a positive integer"})
		} else {
			filter.Limit = limit
		}
	}

	filter.Cursor = r.URL.Query().Get("cursor")

	if fieldErrors != nil {
		return domain.SampleFilter{}, fieldErrors
	}
	return filter, nil
}
