package scoring

import (
	"testing"
	"time"

	"github.com/driftwell/moodstream/internal/domain"
)

// epochAt builds a classified epoch at the given minute offset.
func epochAt(minute int, stage domain.SleepStage) domain.SleepEpoch {
	base := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)
	return domain.SleepEpoch{
		Sample: domain.PeriodicSample{Timestamp: base.Add(time.Duration(minute) * time.Minute).UnixMilli()},
		Stage:  stage,
	}
}

func TestDetectSessions(t *testing.T) {
	tests := []struct {
		name         string
		stages       []domain.SleepStage
		wantSessions int
	}{
		{
			name:         "empty input",
			stages:       nil,
			wantSessions: 0,
		},
		{
			name:         "run of two is discarded",
			stages:       []domain.SleepStage{domain.StageLight, domain.StageDeep},
			wantSessions: 0,
		},
		{
			name:         "run of three qualifies",
			stages:       []domain.SleepStage{domain.StageLight, domain.StageDeep, domain.StageLight},
			wantSessions: 1,
		},
		{
			name: "awake splits runs",
			stages: []domain.SleepStage{
				domain.StageLight, domain.StageDeep, domain.StageLight,
				domain.StageAwake,
				domain.StageLight, domain.StageREM, domain.StageDeep, domain.StageLight,
			},
			wantSessions: 2,
		},
		{
			name: "short middle run discarded",
			stages: []domain.SleepStage{
				domain.StageLight, domain.StageDeep, domain.StageLight,
				domain.StageAwake,
				domain.StageLight, domain.StageDeep,
				domain.StageAwake,
			},
			wantSessions: 1,
		},
		{
			name:         "all awake",
			stages:       []domain.SleepStage{domain.StageAwake, domain.StageAwake, domain.StageAwake},
			wantSessions: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var epochs []domain.SleepEpoch
			for i, stage := range tt.stages {
				epochs = append(epochs, epochAt(i, stage))
			}

			sessions := DetectSessions(epochs)
			if len(sessions) != tt.wantSessions {
				t.Errorf("DetectSessions() returned %d sessions, want %d", len(sessions), tt.wantSessions)
			}
		})
	}
}

func TestDetectSessions_SessionShape(t *testing.T) {
	epochs := []domain.SleepEpoch{
		epochAt(0, domain.StageLight),
		epochAt(1, domain.StageDeep),
		epochAt(2, domain.StageREM),
	}

	sessions := DetectSessions(epochs)
	if len(sessions) != 1 {
		t.Fatalf("DetectSessions() returned %d sessions, want 1", len(sessions))
	}

	s := sessions[0]
	if s.DurationMinutes != 2 {
		t.Errorf("DurationMinutes = %d, want 2", s.DurationMinutes)
	}
	if s.End.Before(s.Start) {
		t.Errorf("End %v before Start %v", s.End, s.Start)
	}
	want := domain.StageStats{Deep: 1, Light: 1, REM: 1}
	if s.StageStats != want {
		t.Errorf("StageStats = %+v, want %+v", s.StageStats, want)
	}
	if len(s.Epochs) != 3 {
		t.Errorf("Epochs length = %d, want 3", len(s.Epochs))
	}
}

func TestDetectSessions_ResortsInput(t *testing.T) {
	// Same epochs delivered out of order must yield the same session.
	epochs := []domain.SleepEpoch{
		epochAt(2, domain.StageREM),
		epochAt(0, domain.StageLight),
		epochAt(1, domain.StageDeep),
	}

	sessions := DetectSessions(epochs)
	if len(sessions) != 1 {
		t.Fatalf("DetectSessions() returned %d sessions, want 1", len(sessions))
	}
	if sessions[0].DurationMinutes != 2 {
		t.Errorf("DurationMinutes = %d, want 2", sessions[0].DurationMinutes)
	}
	// Original slice is untouched.
	if epochs[0].Sample.Timestamp >= epochs[1].Sample.Timestamp &&
		epochs[0].Stage != domain.StageREM {
		t.Errorf("DetectSessions() mutated its input")
	}
}

func TestPrimarySession(t *testing.T) {
	short := domain.SleepSession{Start: time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC), DurationMinutes: 60}
	long := domain.SleepSession{Start: time.Date(2024, 1, 16, 2, 0, 0, 0, time.UTC), DurationMinutes: 300}
	tieLater := domain.SleepSession{Start: time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC), DurationMinutes: 300}

	tests := []struct {
		name      string
		sessions  []domain.SleepSession
		wantOK    bool
		wantStart time.Time
	}{
		{"no sessions", nil, false, time.Time{}},
		{"single session", []domain.SleepSession{short}, true, short.Start},
		{"longest wins", []domain.SleepSession{short, long}, true, long.Start},
		{"tie broken by earliest start", []domain.SleepSession{tieLater, long}, true, long.Start},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PrimarySession(tt.sessions)
			if ok != tt.wantOK {
				t.Fatalf("PrimarySession() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !got.Start.Equal(tt.wantStart) {
				t.Errorf("PrimarySession() start = %v, want %v", got.Start, tt.wantStart)
			}
		})
	}
}
