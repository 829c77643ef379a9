package domain

import "time"

// ScheduledMoodSegment is a scheduled time window with an assigned
// mood/music/scent configuration, consumed by a presentation layer
// outside this service. A segment is expired once its window has
// fully passed.
type ScheduledMoodSegment struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	MoodName   string    `json:"moodName"`
	MusicGenre string    `json:"musicGenre"`
	ScentType  string    `json:"scentType"`
	// Enrichment fields filled by the generator
	ColorTheme  string  `json:"colorTheme,omitempty"`
	Description string  `json:"description,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	Sky         int     `json:"sky,omitempty"`
}

// SegmentListResponse is the response body for the mood segment listing.
// @Description Upcoming mood segments plus the one active right now, if any.
type SegmentListResponse struct {
	// Segment whose window contains the current time (null if none)
	Current *ScheduledMoodSegment `json:"current"`
	// Remaining scheduled segments sorted by timestamp
	Scheduled []ScheduledMoodSegment `json:"scheduled"`
}

// WeatherConditions is the current outdoor state used to decorate
// slots and mood segments. Values carry the neutral defaults when the
// lookup fails.
type WeatherConditions struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	RainType    int     `json:"rainType"`
	Sky         int     `json:"sky"`
}

// NeutralWeather returns the fallback conditions used when the weather
// service is unreachable.
func NeutralWeather() WeatherConditions {
	return WeatherConditions{
		Temperature: DefaultSlotTemperature,
		Humidity:    DefaultSlotHumidity,
		RainType:    DefaultSlotRainType,
		Sky:         DefaultSlotSky,
	}
}
