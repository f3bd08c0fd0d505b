package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"current-weather/internal/models"
	"current-weather/pkg/logger"
)

const (
	OpenWeatherMapBaseURL = "http://api.openweathermap.org/data/2.5/weather"

	// maxBodySize bounds what is read from the provider. A current weather
	// document is well under 2 KiB.
	maxBodySize = 1 << 20
)

// StatusError is returned for non-2xx answers. It wraps ErrUpstreamStatus.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: HTTP %d", ErrUpstreamStatus, e.StatusCode)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", ErrUpstreamStatus, e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error {
	return ErrUpstreamStatus
}

type OpenWeatherMapOptions struct {
	BaseURL string
	APIKey  string
	// Units and Lang are passed through when set. Without Units the
	// provider answers in Kelvin.
	Units string
	Lang  string
}

type OpenWeatherMapRepository struct {
	baseURL    *url.URL
	opts       OpenWeatherMapOptions
	httpClient HTTPClient
	l          *logger.Logger
}

func NewOpenWeatherMapRepository(opts OpenWeatherMapOptions, l *logger.Logger, httpClient HTTPClient) (*OpenWeatherMapRepository, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("API key cannot be empty")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = OpenWeatherMapBaseURL
	}

	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", opts.BaseURL)
	}

	return &OpenWeatherMapRepository{
		baseURL:    base,
		opts:       opts,
		httpClient: httpClient,
		l:          l,
	}, nil
}

func (o *OpenWeatherMapRepository) Name() string {
	return "openweathermap"
}

// RequestURL builds the GET URL for city. It holds the API key and must not
// be logged as is.
func (o *OpenWeatherMapRepository) RequestURL(city string) *url.URL {
	u := *o.baseURL
	q := u.Query()
	q.Set("appid", o.opts.APIKey)
	q.Set("q", city)
	if o.opts.Units != "" {
		q.Set("units", o.opts.Units)
	}
	if o.opts.Lang != "" {
		q.Set("lang", o.opts.Lang)
	}
	u.RawQuery = q.Encode()

	return &u
}

// FetchCurrent performs one GET for city and decodes the body.
func (o *OpenWeatherMapRepository) FetchCurrent(ctx context.Context, city string) (models.CurrentWeather, error) {
	var weather models.CurrentWeather

	u := o.RequestURL(city)
	redacted := logger.RedactURL(u)

	o.l.Debug("making openweathermap API request", map[string]any{
		"city": city,
		"url":  redacted,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return weather, fmt.Errorf("%w: failed to create request: %w", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		// *url.Error repeats the full URL, key included
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return weather, fmt.Errorf("%w: GET %s: %w", ErrTransport, redacted, err)
	}
	defer resp.Body.Close()

	o.l.Debug("received openweathermap API response", map[string]any{
		"city":       city,
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return weather, fmt.Errorf("%w: failed to read response body: %w", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return weather, statusError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, &weather); err != nil {
		return models.CurrentWeather{}, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return weather, nil
}

func statusError(code int, body []byte) *StatusError {
	se := &StatusError{StatusCode: code}

	var upstream models.UpstreamError
	if err := json.Unmarshal(body, &upstream); err == nil {
		se.Message = upstream.Message
	}

	return se
}
