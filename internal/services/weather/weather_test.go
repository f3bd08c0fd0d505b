package weather_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"current-weather/internal/models"
	"current-weather/internal/repositories"
	"current-weather/internal/services/weather"
	"current-weather/pkg/logger"
	"current-weather/pkg/observe"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Name() string {
	return "mock"
}

func (m *mockRepository) FetchCurrent(ctx context.Context, city string) (models.CurrentWeather, error) {
	args := m.Called(ctx, city)
	data, _ := args.Get(0).(models.CurrentWeather)
	return data, args.Error(1)
}

type panickingRepository struct{}

func (panickingRepository) Name() string { return "panicking" }

func (panickingRepository) FetchCurrent(context.Context, string) (models.CurrentWeather, error) {
	var w *models.CurrentWeather
	return *w, nil
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *recordingObserver) ObserveFetch(outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func ptr(v float64) *float64 { return &v }

func clearSky() models.CurrentWeather {
	return models.CurrentWeather{
		Weather: []models.Condition{{Description: "clear sky"}},
		Main:    &models.Readings{Temp: ptr(301.2), Humidity: ptr(40)},
	}
}

type asyncOutcome struct {
	err    error
	result *models.CurrentWeather
}

// fetchAsync waits for the callback and fails if it runs more than once.
func fetchAsync(t *testing.T, s *weather.WeatherService, city string) asyncOutcome {
	t.Helper()

	ch := make(chan asyncOutcome, 2)
	s.FetchAsync(context.Background(), city, func(err error, result *models.CurrentWeather) {
		ch <- asyncOutcome{err: err, result: result}
	})

	var out asyncOutcome
	select {
	case out = <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("callback was not invoked")
	}

	select {
	case <-ch:
		t.Fatal("callback invoked twice")
	case <-time.After(20 * time.Millisecond):
	}

	return out
}

func TestWeatherService_Fetch_Success(t *testing.T) {
	repo := &mockRepository{}
	repo.On("FetchCurrent", mock.Anything, "sousse").Return(clearSky(), nil).Once()
	obs := &recordingObserver{}

	s := weather.NewWeatherService(repo, logger.NewNop(), obs)

	result, err := s.Fetch(context.Background(), "  sousse ")
	require.NoError(t, err)
	assert.Equal(t, clearSky(), result)
	assert.Equal(t, []string{observe.OutcomeOK}, obs.outcomes)
	repo.AssertExpectations(t)
}

func TestWeatherService_Fetch_EmptyCity(t *testing.T) {
	repo := &mockRepository{}
	s := weather.NewWeatherService(repo, logger.NewNop(), nil)

	_, err := s.Fetch(context.Background(), "   ")
	assert.ErrorIs(t, err, weather.ErrEmptyCity)
	repo.AssertNotCalled(t, "FetchCurrent", mock.Anything, mock.Anything)
}

func TestWeatherService_Fetch_WrapsRepositoryError(t *testing.T) {
	repo := &mockRepository{}
	cause := fmt.Errorf("%w: dial tcp: connection refused", repositories.ErrTransport)
	repo.On("FetchCurrent", mock.Anything, "sousse").Return(models.CurrentWeather{}, cause).Once()
	obs := &recordingObserver{}

	s := weather.NewWeatherService(repo, logger.NewNop(), obs)

	_, err := s.Fetch(context.Background(), "sousse")
	require.Error(t, err)
	assert.ErrorIs(t, err, repositories.ErrTransport)
	assert.Contains(t, err.Error(), `fetch current weather for "sousse"`)
	assert.Equal(t, []string{observe.OutcomeTransport}, obs.outcomes)
}

func TestWeatherService_Fetch_IsNotCached(t *testing.T) {
	repo := &mockRepository{}
	repo.On("FetchCurrent", mock.Anything, "sousse").Return(clearSky(), nil).Twice()

	s := weather.NewWeatherService(repo, logger.NewNop(), nil)

	first, err := s.Fetch(context.Background(), "sousse")
	require.NoError(t, err)
	second, err := s.Fetch(context.Background(), "sousse")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	repo.AssertNumberOfCalls(t, "FetchCurrent", 2)
}

func TestWeatherService_FetchAsync_Success(t *testing.T) {
	repo := &mockRepository{}
	repo.On("FetchCurrent", mock.Anything, "sousse").Return(clearSky(), nil).Once()

	s := weather.NewWeatherService(repo, logger.NewNop(), nil)

	out := fetchAsync(t, s, "sousse")
	require.NoError(t, out.err)
	require.NotNil(t, out.result)

	description, _ := out.result.Description()
	temp, _ := out.result.Temperature()
	humidity, _ := out.result.Humidity()
	assert.Equal(t, "clear sky", description)
	assert.Equal(t, 301.2, temp)
	assert.Equal(t, 40.0, humidity)
}

func TestWeatherService_FetchAsync_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    error
		outcome string
	}{
		{"transport", fmt.Errorf("%w: refused", repositories.ErrTransport), repositories.ErrTransport, observe.OutcomeTransport},
		{"parse", fmt.Errorf("%w: unexpected EOF", repositories.ErrParse), repositories.ErrParse, observe.OutcomeParse},
		{"status", &repositories.StatusError{StatusCode: 401}, repositories.ErrUpstreamStatus, observe.OutcomeStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{}
			repo.On("FetchCurrent", mock.Anything, "sousse").Return(models.CurrentWeather{}, tt.err).Once()

			s := weather.NewWeatherService(repo, logger.NewNop(), nil)

			out := fetchAsync(t, s, "sousse")
			assert.Nil(t, out.result)
			assert.ErrorIs(t, out.err, tt.kind)
			assert.Equal(t, tt.outcome, weather.Outcome(out.err))
		})
	}
}

func TestWeatherService_FetchAsync_RecoversPanic(t *testing.T) {
	s := weather.NewWeatherService(panickingRepository{}, logger.NewNop(), nil)

	out := fetchAsync(t, s, "sousse")
	assert.Nil(t, out.result)
	require.Error(t, out.err)
	assert.Contains(t, out.err.Error(), "panicked")
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, observe.OutcomeOK, weather.Outcome(nil))
	assert.Equal(t, observe.OutcomeInvalid, weather.Outcome(weather.ErrEmptyCity))
	assert.Equal(t, observe.OutcomeOther, weather.Outcome(errors.New("other")))
}
