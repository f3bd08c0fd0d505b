package console

import (
	"fmt"
	"io"
	"strconv"

	"current-weather/internal/models"
	"current-weather/pkg/logger"
)

// Printer writes a fetch result to the console as
//
//	description:<text>
//	Temperature:<number>
//	Humidity:<number>
//
// Errors go to the log only, never to out.
type Printer struct {
	out io.Writer
	l   *logger.Logger
}

func NewPrinter(out io.Writer, l *logger.Logger) *Printer {
	return &Printer{out: out, l: l}
}

// Handle has the shape of weather.Callback.
func (p *Printer) Handle(err error, result *models.CurrentWeather) {
	if err != nil {
		p.l.Error(err)
		return
	}

	if err := p.Print(result); err != nil {
		p.l.Error(err)
	}
}

// Print writes the lines for every field present in result. Absent fields
// are skipped with a warning.
func (p *Printer) Print(result *models.CurrentWeather) error {
	var missing []string

	if description, ok := result.Description(); ok {
		if _, err := fmt.Fprintf(p.out, "description:%s\n", description); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		missing = append(missing, "weather[0].description")
	}

	if temp, ok := result.Temperature(); ok {
		if _, err := fmt.Fprintf(p.out, "Temperature:%s\n", formatNumber(temp)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		missing = append(missing, "main.temp")
	}

	if humidity, ok := result.Humidity(); ok {
		if _, err := fmt.Fprintf(p.out, "Humidity:%s\n", formatNumber(humidity)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		missing = append(missing, "main.humidity")
	}

	if len(missing) > 0 {
		p.l.Warning("weather response is missing fields", map[string]any{"missing": missing})
	}

	return nil
}

// formatNumber prints the shortest decimal that round-trips, so 40 stays
// "40" and 301.2 stays "301.2".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
