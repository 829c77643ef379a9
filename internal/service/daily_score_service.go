package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/driftwell/moodstream/internal/domain"
	"github.com/driftwell/moodstream/internal/repository"
	"github.com/driftwell/moodstream/internal/scoring"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DailyScoreService runs the on-demand daily pipeline: the day's raw
// samples are classified into epochs, grouped into sessions, and the
// primary session is aggregated into a single score.
type DailyScoreService interface {
	// Compute derives the daily sleep score for one user and calendar
	// day. Absence of data is a normal result carried in the Reason
	// field, never an error.
	Compute(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailyScoreResult, error)
}

type dailyScoreService struct {
	sampleRepo repository.SampleRepository
}

// NewDailyScoreService creates a new DailyScoreService.
func NewDailyScoreService(sampleRepo repository.SampleRepository) DailyScoreService {
	return &dailyScoreService{sampleRepo: sampleRepo}
}

func (s *dailyScoreService) Compute(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailyScoreResult, error) {
	tracer := otel.Tracer("moodstream-api/daily-score")
	ctx, span := tracer.Start(ctx, "DailyScoreService.Compute",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
			attribute.String("day", domain.DayOf(date).Format("2006-01-02")),
		),
	)
	defer span.End()

	rows, err := s.sampleRepo.ListByDay(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("samples.count", len(rows)))

	if len(rows) == 0 {
		return &domain.DailyScoreResult{Reason: domain.ReasonNoData}, nil
	}

	samples := make([]domain.PeriodicSample, 0, len(rows))
	for i := range rows {
		samples = append(samples, rows[i].ToSample())
	}

	epochs := scoring.ClassifyAll(samples)
	sessions := scoring.DetectSessions(epochs)
	span.SetAttributes(attribute.Int("sessions.count", len(sessions)))

	primary, ok := scoring.PrimarySession(sessions)
	if !ok {
		return &domain.DailyScoreResult{Reason: domain.ReasonNoSession}, nil
	}

	score := scoring.AggregateDaily(primary)
	result := &domain.DailyScoreResult{
		Score:        &score,
		TotalMinutes: primary.DurationMinutes,
		StageStats:   primary.StageStats,
		Session:      &primary,
	}

	// Attach output payload for Langfuse
	if outJSON, err := json.Marshal(map[string]any{
		"score":         score.Score,
		"total_minutes": primary.DurationMinutes,
		"stage_stats":   primary.StageStats,
	}); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.output", string(outJSON)))
	}

	return result, nil
}
