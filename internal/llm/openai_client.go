package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/driftwell/moodstream/internal/domain"
	"github.com/driftwell/moodstream/internal/langfuse"
	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured or unavailable.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an error parsing the OpenAI response.
	ErrOpenAIResponse = errors.New("failed to parse OpenAI response")
)

const defaultSystemPrompt = `You are an ambient mood director for a smart living space.

You receive the user's latest biometric indices (sleep quality and stress, both 0-100), current weather conditions, and a schedule request. You design a sequence of mood segments: short time windows each pairing a mood with a music genre and a scent.

Rules:
- Coherent progression: adjacent segments should transition smoothly.
- High stress calls for calming moods, scents and genres; low stress allows more energetic choices.
- Let the weather color the choices (rain favors cozy moods, clear sky brighter ones).
- No medical claims of any kind.

You must respond as strict JSON: an array with exactly the requested number of entries, each shaped as

{
  "moodName": "one or two words",
  "musicGenre": "a real music genre",
  "scentType": "a single scent",
  "colorTheme": "a CSS-style color name",
  "description": "one short sentence"
}

No extra fields. No comments. No backticks.`

const userPromptTemplate = `Here is JSON describing the schedule request and the user's current state.

- "segments" is the number of entries you must return.
- "segment_minutes" is how long each segment plays.
- "metrics" holds the latest sleep and stress indices (null when no samples arrived yet).
- "weather" holds current outdoor conditions.

JSON:

%s

Respond with exactly "segments" entries in the required JSON array format.`

// MetricsReader exposes the latest live indices to the generator.
type MetricsReader interface {
	Get() (domain.ProcessedMetrics, bool)
}

// ConditionsProvider exposes current weather to the generator.
type ConditionsProvider interface {
	Current(ctx context.Context) (domain.WeatherConditions, error)
}

// SegmentGenerator is the interface for producing scheduled mood segments.
type SegmentGenerator interface {
	// GenerateSegments returns exactly count segments starting at nextStart.
	GenerateSegments(ctx context.Context, nextStart time.Time, count int) ([]domain.ScheduledMoodSegment, error)
}

// OpenAIClient implements SegmentGenerator using the OpenAI API.
type OpenAIClient struct {
	client          openai.Client
	model           string
	systemPrompt    string
	segmentDuration time.Duration
	metrics         MetricsReader
	conditions      ConditionsProvider
	tracer          langfuse.Client
}

// NewOpenAIClient creates a segment generator backed by OpenAI.
// Returns nil if apiKey is empty. metrics, conditions and tracer may be nil.
func NewOpenAIClient(apiKey, model, systemPrompt string, segmentDuration time.Duration, metrics MetricsReader, conditions ConditionsProvider, tracer langfuse.Client) *OpenAIClient {
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt
	}
	if segmentDuration <= 0 {
		segmentDuration = 10 * time.Minute
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAIClient{
		client:          client,
		model:           model,
		systemPrompt:    systemPrompt,
		segmentDuration: segmentDuration,
		metrics:         metrics,
		conditions:      conditions,
		tracer:          tracer,
	}
}

// generatedSegment is the raw shape the model returns per entry.
type generatedSegment struct {
	MoodName    string `json:"moodName"`
	MusicGenre  string `json:"musicGenre"`
	ScentType   string `json:"scentType"`
	ColorTheme  string `json:"colorTheme"`
	Description string `json:"description"`
}

// GenerateSegments calls OpenAI to design the next batch of mood
// segments and stamps each with its id, start time and the current
// weather decoration. A short or malformed response is an error; the
// caller's queue stays unchanged.
func (c *OpenAIClient) GenerateSegments(ctx context.Context, nextStart time.Time, count int) ([]domain.ScheduledMoodSegment, error) {
	if c == nil {
		return nil, ErrOpenAIUnavailable
	}

	conditions := domain.NeutralWeather()
	if c.conditions != nil {
		conditions, _ = c.conditions.Current(ctx)
	}

	request := map[string]any{
		"segments":        count,
		"segment_minutes": int(c.segmentDuration.Minutes()),
		"next_start":      nextStart.Format(time.RFC3339),
		"weather":         conditions,
		"metrics":         nil,
	}
	if c.metrics != nil {
		if m, ok := c.metrics.Get(); ok {
			request["metrics"] = m
		}
	}

	requestJSON, err := json.MarshalIndent(request, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to serialize request: %v", ErrOpenAIRequest, err)
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.systemPrompt),
			openai.UserMessage(fmt.Sprintf(userPromptTemplate, string(requestJSON))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	var generated []generatedSegment
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &generated); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIResponse, err)
	}
	if len(generated) != count {
		return nil, fmt.Errorf("%w: expected %d segments, got %d", ErrOpenAIResponse, count, len(generated))
	}

	segments := make([]domain.ScheduledMoodSegment, 0, count)
	for i, g := range generated {
		segments = append(segments, domain.ScheduledMoodSegment{
			ID:          uuid.NewString(),
			Timestamp:   nextStart.Add(time.Duration(i) * c.segmentDuration),
			MoodName:    g.MoodName,
			MusicGenre:  g.MusicGenre,
			ScentType:   g.ScentType,
			ColorTheme:  g.ColorTheme,
			Description: g.Description,
			Temperature: conditions.Temperature,
			Sky:         conditions.Sky,
		})
	}

	if c.tracer != nil && c.tracer.IsEnabled() {
		_, _ = c.tracer.CreateTrace(ctx, langfuse.TraceInput{
			Name:   "mood-segments",
			Input:  request,
			Output: segments,
			Tags:   []string{"moodstream"},
		})
	}

	return segments, nil
}
