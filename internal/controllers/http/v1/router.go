package http

import (
	"context"
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"

	_ "current-weather/docs"
	"current-weather/internal/models"
	"current-weather/pkg/logger"
)

type WeatherFetcher interface {
	Fetch(ctx context.Context, city string) (models.CurrentWeather, error)
}

type routes struct {
	service WeatherFetcher
	units   string
	l       *logger.Logger
}

// NewRouter mounts the API on app. metrics may be nil to skip /metrics.
func NewRouter(
	app *fiber.App,
	service WeatherFetcher,
	metrics nethttp.Handler,
	units string,
	l *logger.Logger,
) {
	if units == "" {
		units = "standard"
	}

	r := &routes{
		service: service,
		units:   units,
		l:       l,
	}

	// Swagger documentation, served from the registered docs package
	app.Get("/swagger/*", swagger.New(swagger.Config{
		DeepLinking: true,
	}))

	if metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(metrics))
	}

	// API routes
	app.Get("/weather", r.handleWeatherCall)
}
