package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/driftwell/moodstream/internal/api/validation"
	"github.com/driftwell/moodstream/internal/domain"
	"github.com/driftwell/moodstream/internal/service"
	"github.com/driftwell/moodstream/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type SlotHandler struct {
	service service.SlotService
}

func NewSlotHandler(service service.SlotService) *SlotHandler {
	return &SlotHandler{service: service}
}

// List handles GET /v1/daily-preprocessed
// @Summary List daily slots
// @Description Fetch the full 144-slot timeline for one user and day, initializing missing slots with neutral defaults.
// @Tags daily-slots
// @Produce json
// @Param userId query string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param date query string true "Calendar day (RFC3339; time part ignored)" format(date-time) example(2024-01-15T00:00:00Z)
// @Success 200 {object} domain.SlotListResponse "Slot rows ordered by slot index"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /daily-preprocessed [get]
func (h *SlotHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, date, prob := parseUserDateQuery(r)
	if prob != nil {
		prob.Write(w)
		return
	}

	response, err := h.service.ListDay(r.Context(), userID, date)
	if err != nil {
		problem.InternalError("Failed to list daily slots").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// Ensure handles POST /v1/daily-preprocessed
// @Summary Initialize daily slots
// @Description Ensure all 144 slots exist for one user and day. Idempotent: existing rows are never touched.
// @Tags daily-slots
// @Accept json
// @Produce json
// @Param request body domain.EnsureSlotsRequest true "User and day to initialize"
// @Success 200 {object} domain.SlotCountResponse "Row count after initialization"
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 422 {object} problem.Problem "Validation failure"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /daily-preprocessed [post]
func (h *SlotHandler) Ensure(w http.ResponseWriter, r *http.Request) {
	var req domain.EnsureSlotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	count, err := h.service.Ensure(r.Context(), req.UserID, req.Date)
	if err != nil {
		problem.InternalError("Failed to initialize daily slots").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(domain.SlotCountResponse{Count: count})
}

// Upsert handles PUT /v1/daily-preprocessed/{slotIndex}
// @Summary Upsert one daily slot
// @Description Insert or replace the substantive values of one slot. The slot index is fixed by the URL.
// @Tags daily-slots
// @Accept json
// @Produce json
// @Param slotIndex path integer true "Slot index (0-143)" minimum(0) maximum(143)
// @Param userId query string true "User UUID" format(uuid)
// @Param date query string true "Calendar day (RFC3339)" format(date-time)
// @Param request body domain.SlotValues true "Slot values"
// @Success 200 {object} domain.DailySlot "Upserted slot"
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 422 {object} problem.Problem "Validation failure"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /daily-preprocessed/{slotIndex} [put]
func (h *SlotHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, date, prob := parseUserDateQuery(r)
	if prob != nil {
		prob.Write(w)
		return
	}

	slotIndex, err := strconv.Atoi(chi.URLParam(r, "slotIndex"))
	if err != nil {
		problem.BadRequest("Invalid slot index").Write(w)
		return
	}

	var values domain.SlotValues
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}
	if fieldErrors := validation.Validate(values); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	slot, err := h.service.Upsert(r.Context(), userID, date, slotIndex, values)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			problem.BadRequest("Slot index must be between 0 and 143").Write(w)
			return
		}
		problem.InternalError("Failed to upsert slot").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(slot)
}

// parseUserDateQuery extracts the userId and date query parameters.
func parseUserDateQuery(r *http.Request) (uuid.UUID, time.Time, *problem.Problem) {
	userID, err := uuid.Parse(r.URL.Query().Get("userId"))
	if err != nil {
		return uuid.Nil, time.Time{}, problem.BadRequest("Invalid or missing userId")
	}

	date, err := parseDateParam(r.URL.Query().Get("date"))
	if err != nil {
		return uuid.Nil, time.Time{}, problem.BadRequest("Invalid or missing date")
	}

	return userID, date, nil
}

// parseDateParam accepts RFC3339 or a bare calendar date.
func parseDateParam(s string) (time.Time, error) {
	if date, err := time.Parse(time.RFC3339, s); err == nil {
		return date, nil
	}
	return time.Parse("2006-01-02", s)
}
