package domain

import "time"

// StageStats counts epochs per sleep stage within one session.
type StageStats struct {
	Deep  int `json:"DEEP"`
	Light int `json:"LIGHT"`
	REM   int `json:"REM"`
	Awake int `json:"AWAKE"`
}

// Total returns the number of epochs counted across all stages.
func (s StageStats) Total() int {
	return s.Deep + s.Light + s.REM + s.Awake
}

// SleepSession is a contiguous run of non-awake epochs long enough to
// count as actual sleep. Epochs are ordered ascending by timestamp and
// End is never before Start.
type SleepSession struct {
	Start           time.Time    `json:"start"`
	End             time.Time    `json:"end"`
	DurationMinutes int          `json:"duration_minutes"`
	StageStats      StageStats   `json:"stage_stats"`
	Epochs          []SleepEpoch `json:"-"`
}
