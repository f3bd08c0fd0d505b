package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"current-weather/internal/repositories"
	"current-weather/internal/services/weather"
)

// WeatherResponse represents the current weather of a city
type WeatherResponse struct {
	City        string   `json:"city" example:"sousse"`
	Description string   `json:"description,omitempty" example:"clear sky"`
	Temperature *float64 `json:"temperature,omitempty" example:"301.2"`
	Humidity    *float64 `json:"humidity,omitempty" example:"40"`
	Units       string   `json:"units" example:"standard"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"Missing required parameter: city"`
}

// GetCurrentWeather godoc
// @Summary Get current weather
// @Description Retrieves the current weather of a city from OpenWeatherMap. Every call hits the provider.
// @Tags Weather
// @Produce json
// @Param city query string true "City name" example(sousse)
// @Success 200 {object} WeatherResponse "Successful response"
// @Failure 400 {object} ErrorResponse "Bad request - missing city"
// @Failure 404 {object} ErrorResponse "City not known to the provider"
// @Failure 502 {object} ErrorResponse "Provider unreachable or returned an invalid answer"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /weather [get]
//
//	curl -X GET "http://localhost:8080/weather?city=sousse"
func (r *routes) handleWeatherCall(c *fiber.Ctx) error {
	city := strings.TrimSpace(c.Query("city"))

	if city == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Missing required parameter: city",
		})
	}

	result, err := r.service.Fetch(c.UserContext(), city)
	if err != nil {
		status, msg := errorStatus(err)
		if status >= fiber.StatusInternalServerError {
			r.l.Error(err, map[string]any{"city": city, "status": status})
		}

		return c.Status(status).JSON(ErrorResponse{Error: msg})
	}

	response := WeatherResponse{
		City:  city,
		Units: r.units,
	}
	if description, ok := result.Description(); ok {
		response.Description = description
	}
	if temp, ok := result.Temperature(); ok {
		response.Temperature = &temp
	}
	if humidity, ok := result.Humidity(); ok {
		response.Humidity = &humidity
	}

	return c.JSON(response)
}

func errorStatus(err error) (int, string) {
	var statusErr *repositories.StatusError

	switch {
	case errors.Is(err, weather.ErrEmptyCity):
		return fiber.StatusBadRequest, "Missing required parameter: city"
	case errors.As(err, &statusErr) && statusErr.StatusCode == fiber.StatusNotFound:
		return fiber.StatusNotFound, "City not found"
	case errors.Is(err, repositories.ErrUpstreamStatus):
		return fiber.StatusBadGateway, "Weather provider rejected the request"
	case errors.Is(err, repositories.ErrParse):
		return fiber.StatusBadGateway, "Weather provider returned an invalid response"
	case errors.Is(err, repositories.ErrTransport):
		return fiber.StatusBadGateway, "Weather provider is unreachable"
	default:
		return fiber.StatusInternalServerError, "Failed to fetch weather data"
	}
}
