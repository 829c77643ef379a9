package repository

import (
	"context"
	"time"

	"github.com/driftwell/moodstream/internal/domain"
	"github.com/driftwell/moodstream/internal/ingest"
	"github.com/driftwell/moodstream/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SampleRepository interface {
	Create(ctx context.Context, sample *domain.BiometricSample) error
	// ListByDay returns the day's samples ordered ascending by timestamp.
	ListByDay(ctx context.Context, userID uuid.UUID, date time.Time) ([]domain.BiometricSample, error)
	// List returns samples newest first with cursor pagination.
	List(ctx context.Context, userID uuid.UUID, filter domain.SampleFilter) ([]domain.BiometricSample, error)
}

type sampleRepository struct {
	db *gorm.DB
}

func NewSampleRepository(db *gorm.DB) SampleRepository {
	return &sampleRepository{db: db}
}

func (r *sampleRepository) Create(ctx context.Context, sample *domain.BiometricSample) error {
	return r.db.WithContext(ctx).Create(sample).Error
}

func (r *sampleRepository) ListByDay(ctx context.Context, userID uuid.UUID, date time.Time) ([]domain.BiometricSample, error) {
	day := domain.DayOf(date)

	var samples []domain.BiometricSample
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND timestamp >= ? AND timestamp < ?", userID, day, day.AddDate(0, 0, 1)).
		Order("timestamp ASC").
		Find(&samples).Error
	if err != nil {
		return nil, err
	}
	return samples, nil
}

func (r *sampleRepository) List(ctx context.Context, userID uuid.UUID, filter domain.SampleFilter) ([]domain.BiometricSample, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC")

	if filter.From != nil {
		query = query.Where("timestamp >= ?", filter.From)
	}
	if filter.To != nil {
		query = query.Where("timestamp <= ?", filter.To)
	}

	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err == nil && cursor != nil {
			// For DESC order: rows strictly after the cursor position.
			query = query.Where(
				"(timestamp < ?) OR (timestamp = ? AND id < ?)",
				cursor.Timestamp, cursor.Timestamp, cursor.ID,
			)
		}
	}

	// Fetch one extra to determine if there are more results.
	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var samples []domain.BiometricSample
	if err := query.Find(&samples).Error; err != nil {
		return nil, err
	}
	return samples, nil
}

// listenerStore adapts a SampleRepository to the listener's narrow
// persistence contract, binding the stream to its owning user.
type listenerStore struct {
	repo   SampleRepository
	userID uuid.UUID
}

// NewListenerStore returns the ingest.SampleStore that persists the
// live stream's samples under userID.
func NewListenerStore(repo SampleRepository, userID uuid.UUID) ingest.SampleStore {
	return &listenerStore{repo: repo, userID: userID}
}

func (s *listenerStore) Store(ctx context.Context, sample domain.PeriodicSample, sleepScore, stressScore int) error {
	row := &domain.BiometricSample{
		UserID:             s.userID,
		Timestamp:          sample.Time(),
		HeartRateAvg:       sample.HeartRateAvg,
		HeartRateMax:       sample.HeartRateMax,
		HeartRateMin:       sample.HeartRateMin,
		HRVSDNN:            sample.HRVSDNN,
		RespiratoryRateAvg: sample.RespiratoryRateAvg,
		MovementCount:      sample.MovementCount,
		IsFallback:         sample.IsFallback,
		SleepScore:         sleepScore,
		StressScore:        stressScore,
	}
	return s.repo.Create(ctx, row)
}
