package weather

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"current-weather/internal/models"
	"current-weather/internal/repositories"
	"current-weather/pkg/logger"
	"current-weather/pkg/observe"
)

var ErrEmptyCity = stderrors.New("city name is empty")

// Callback receives the outcome of FetchAsync. Exactly one of err and
// result is non-nil.
type Callback func(err error, result *models.CurrentWeather)

type FetchObserver interface {
	ObserveFetch(outcome string, d time.Duration)
}

// WeatherService fetches current weather for a city. It keeps no state
// between calls: every call is one upstream request.
type WeatherService struct {
	repo     repositories.WeatherRepository
	l        *logger.Logger
	observer FetchObserver
}

// NewWeatherService builds the service. observer may be nil.
func NewWeatherService(repo repositories.WeatherRepository, l *logger.Logger, observer FetchObserver) *WeatherService {
	return &WeatherService{
		repo:     repo,
		l:        l,
		observer: observer,
	}
}

// Fetch fetches the current weather for city.
func (s *WeatherService) Fetch(ctx context.Context, city string) (models.CurrentWeather, error) {
	start := time.Now()
	requestID := uuid.NewString()
	city = strings.TrimSpace(city)

	if city == "" {
		s.observe(observe.OutcomeInvalid, start)
		return models.CurrentWeather{}, ErrEmptyCity
	}

	s.l.Info("fetching current weather", map[string]any{
		"request_id": requestID,
		"city":       city,
		"provider":   s.repo.Name(),
	})

	result, err := s.repo.FetchCurrent(ctx, city)
	if err != nil {
		outcome := Outcome(err)
		s.observe(outcome, start)
		s.l.Warning("failed to fetch current weather", map[string]any{
			"request_id": requestID,
			"city":       city,
			"outcome":    outcome,
			"err":        err,
		})
		return models.CurrentWeather{}, errors.Wrapf(err, "fetch current weather for %q", city)
	}

	s.observe(observe.OutcomeOK, start)
	s.l.Info("fetched current weather", map[string]any{
		"request_id": requestID,
		"city":       city,
		"duration":   time.Since(start).String(),
	})

	return result, nil
}

// FetchAsync runs Fetch on a new goroutine and delivers the outcome to cb
// exactly once. A panic during the fetch is delivered as an error.
func (s *WeatherService) FetchAsync(ctx context.Context, city string, cb Callback) {
	go func() {
		delivered := false
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if delivered {
				// the callback itself panicked; it already ran once
				panic(r)
			}
			err := fmt.Errorf("weather fetch panicked: %v", r)
			s.l.Error(err, map[string]any{"city": city})
			delivered = true
			cb(err, nil)
		}()

		result, err := s.Fetch(ctx, city)
		delivered = true
		if err != nil {
			cb(err, nil)
			return
		}
		cb(nil, &result)
	}()
}

func (s *WeatherService) observe(outcome string, start time.Time) {
	if s.observer != nil {
		s.observer.ObserveFetch(outcome, time.Since(start))
	}
}

// Outcome classifies err into one of the observe.Outcome* labels.
func Outcome(err error) string {
	switch {
	case err == nil:
		return observe.OutcomeOK
	case stderrors.Is(err, ErrEmptyCity):
		return observe.OutcomeInvalid
	case stderrors.Is(err, repositories.ErrTransport):
		return observe.OutcomeTransport
	case stderrors.Is(err, repositories.ErrUpstreamStatus):
		return observe.OutcomeStatus
	case stderrors.Is(err, repositories.ErrParse):
		return observe.OutcomeParse
	default:
		return observe.OutcomeOther
	}
}
