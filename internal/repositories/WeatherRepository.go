package repositories

import (
	"context"
	"errors"
	"net/http"
	"time"

	"current-weather/config"
	"current-weather/internal/models"
	"current-weather/pkg/logger"
)

// Failure kinds of a fetch. Returned errors wrap exactly one of them.
var (
	ErrTransport      = errors.New("weather provider unreachable")
	ErrUpstreamStatus = errors.New("weather provider returned an error status")
	ErrParse          = errors.New("weather provider returned malformed JSON")
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type WeatherRepository interface {
	Name() string
	FetchCurrent(ctx context.Context, city string) (models.CurrentWeather, error)
}

// NewHTTPClient returns a client with a hard timeout whose transport logs
// each request with the API key redacted.
func NewHTTPClient(timeout time.Duration, l *logger.Logger) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: logger.NewRoundTripper(l, nil),
	}
}

func InitWeatherRepository(cfg *config.Config, l *logger.Logger) (WeatherRepository, error) {
	api := cfg.WeatherAPI

	return NewOpenWeatherMapRepository(
		OpenWeatherMapOptions{
			BaseURL: api.BaseURL,
			APIKey:  api.APIKey,
			Units:   api.Units,
			Lang:    api.Lang,
		},
		l,
		NewHTTPClient(api.Timeout, l),
	)
}
