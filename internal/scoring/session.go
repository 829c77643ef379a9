package scoring

import (
	"sort"

	"github.com/driftwell/moodstream/internal/domain"
)

// MinSessionEpochs is the minimum run length of non-awake epochs that
// qualifies as a sleep session.
const MinSessionEpochs = 3

// DetectSessions groups classified epochs into sleep sessions: maximal
// contiguous runs of non-AWAKE epochs at least MinSessionEpochs long.
// Callers should pass epochs sorted ascending by timestamp; the input
// is re-sorted defensively on a copy. The result may be empty and the
// function never fails.
func DetectSessions(epochs []domain.SleepEpoch) []domain.SleepSession {
	if len(epochs) == 0 {
		return nil
	}

	sorted := make([]domain.SleepEpoch, len(epochs))
	copy(sorted, epochs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Sample.Timestamp < sorted[j].Sample.Timestamp
	})

	var sessions []domain.SleepSession
	var run []domain.SleepEpoch

	for _, epoch := range sorted {
		if epoch.Stage == domain.StageAwake {
			if session, ok := closeRun(run); ok {
				sessions = append(sessions, session)
			}
			run = nil
			continue
		}
		run = append(run, epoch)
	}
	if session, ok := closeRun(run); ok {
		sessions = append(sessions, session)
	}

	return sessions
}

// closeRun converts an accumulated run into a session, discarding runs
// shorter than MinSessionEpochs.
func closeRun(run []domain.SleepEpoch) (domain.SleepSession, bool) {
	if len(run) < MinSessionEpochs {
		return domain.SleepSession{}, false
	}

	startMs := run[0].Sample.Timestamp
	endMs := run[len(run)-1].Sample.Timestamp

	var stats domain.StageStats
	for _, epoch := range run {
		switch epoch.Stage {
		case domain.StageDeep:
			stats.Deep++
		case domain.StageLight:
			stats.Light++
		case domain.StageREM:
			stats.REM++
		case domain.StageAwake:
			stats.Awake++
		}
	}

	epochs := make([]domain.SleepEpoch, len(run))
	copy(epochs, run)

	return domain.SleepSession{
		Start:           run[0].Sample.Time(),
		End:             run[len(run)-1].Sample.Time(),
		DurationMinutes: int((endMs - startMs) / 60000),
		StageStats:      stats,
		Epochs:          epochs,
	}, true
}

// PrimarySession selects the single session that counts as "the" sleep
// of a day: the longest one, with the earliest start breaking ties.
// Returns false when no sessions exist.
func PrimarySession(sessions []domain.SleepSession) (domain.SleepSession, bool) {
	if len(sessions) == 0 {
		return domain.SleepSession{}, false
	}

	primary := sessions[0]
	for _, s := range sessions[1:] {
		if s.DurationMinutes > primary.DurationMinutes {
			primary = s
		} else if s.DurationMinutes == primary.DurationMinutes && s.Start.Before(primary.Start) {
			primary = s
		}
	}
	return primary, true
}
