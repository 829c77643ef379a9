// Package weather looks up current outdoor conditions used to decorate
// daily slots and generated mood segments. The upstream service is a
// black box; failures degrade to neutral defaults rather than erroring
// out the caller's flow.
package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/driftwell/moodstream/internal/domain"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client fetches current conditions over HTTP.
type Client struct {
	httpClient *resty.Client
	lat        string
	lon        string
	logger     *zap.Logger
}

// NewClient creates a weather client for a fixed location.
// Returns nil if baseURL is empty; callers treat a nil client as
// "always neutral conditions".
func NewClient(baseURL, lat, lon string, logger *zap.Logger) *Client {
	if baseURL == "" {
		return nil
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: httpClient,
		lat:        lat,
		lon:        lon,
		logger:     logger,
	}
}

type currentResponse struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	RainType    int     `json:"rainType"`
	Sky         int     `json:"sky"`
}

// Current returns the conditions right now. On any failure the neutral
// defaults are returned along with the error, so callers can use the
// value unconditionally.
func (c *Client) Current(ctx context.Context) (domain.WeatherConditions, error) {
	if c == nil {
		return domain.NeutralWeather(), nil
	}

	var out currentResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"lat": c.lat, "lon": c.lon}).
		SetResult(&out).
		Get("/current")
	if err != nil {
		c.logger.Warn("weather lookup failed, using neutral conditions", zap.Error(err))
		return domain.NeutralWeather(), err
	}
	if !resp.IsSuccess() {
		err := fmt.Errorf("weather service returned status %d", resp.StatusCode())
		c.logger.Warn("weather lookup failed, using neutral conditions", zap.Error(err))
		return domain.NeutralWeather(), err
	}

	return domain.WeatherConditions{
		Temperature: out.Temperature,
		Humidity:    out.Humidity,
		RainType:    out.RainType,
		Sky:         out.Sky,
	}, nil
}
