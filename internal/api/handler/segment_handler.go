package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/driftwell/moodstream/internal/domain"
	"github.com/driftwell/moodstream/internal/scheduler"
	"github.com/driftwell/moodstream/pkg/problem"
)

type SegmentHandler struct {
	sched *scheduler.Scheduler
}

func NewSegmentHandler(sched *scheduler.Scheduler) *SegmentHandler {
	return &SegmentHandler{sched: sched}
}

// List handles GET /v1/mood-segments
// @Summary Get the mood segment queue
// @Description Returns the currently active segment (if any) and all scheduled upcoming segments ordered by start time.
// @Tags mood-segments
// @Produce json
// @Success 200 {object} domain.SegmentListResponse "Current and scheduled segments"
// @Router /mood-segments [get]
func (h *SegmentHandler) List(w http.ResponseWriter, r *http.Request) {
	response := domain.SegmentListResponse{
		Scheduled: h.sched.Scheduled(),
	}
	if current, ok := h.sched.Current(); ok {
		response.Current = &current
	}
	if response.Scheduled == nil {
		response.Scheduled = []domain.ScheduledMoodSegment{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// Regenerate handles POST /v1/mood-segments/regenerate
// @Summary Trigger segment generation
// @Description Generates a new batch of mood segments and appends them to the queue. Only one generation may run at a time.
// @Tags mood-segments
// @Produce json
// @Success 200 {object} domain.SegmentListResponse "Queue after generation"
// @Failure 409 {object} problem.Problem "A generation is already in progress"
// @Failure 500 {object} problem.Problem "Generation failed"
// @Router /mood-segments/regenerate [post]
func (h *SegmentHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	if err := h.sched.Regenerate(r.Context()); err != nil {
		if errors.Is(err, domain.ErrGenerationInFlight) {
			problem.Conflict("A segment generation is already in progress").Write(w)
			return
		}
		problem.InternalError("Failed to generate mood segments").Write(w)
		return
	}

	h.List(w, r)
}
