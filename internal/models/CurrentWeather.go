package models

// CurrentWeather mirrors the OpenWeatherMap current weather body. Only the
// fields below are decoded, anything else the provider sends is ignored.
type CurrentWeather struct {
	ID      int64       `json:"id,omitempty" example:"2464915"`
	Name    string      `json:"name,omitempty" example:"Sousse"`
	Cod     any         `json:"cod,omitempty"`
	Weather []Condition `json:"weather,omitempty"`
	Main    *Readings   `json:"main,omitempty"`
}

type Condition struct {
	ID          int    `json:"id,omitempty" example:"800"`
	Main        string `json:"main,omitempty" example:"Clear"`
	Description string `json:"description" example:"clear sky"`
	Icon        string `json:"icon,omitempty" example:"01d"`
}

// Readings holds the "main" block. Every value is optional because the
// provider omits some of them depending on the station.
type Readings struct {
	Temp      *float64 `json:"temp,omitempty" example:"301.2"`
	FeelsLike *float64 `json:"feels_like,omitempty"`
	TempMin   *float64 `json:"temp_min,omitempty"`
	TempMax   *float64 `json:"temp_max,omitempty"`
	Pressure  *float64 `json:"pressure,omitempty"`
	Humidity  *float64 `json:"humidity,omitempty" example:"40"`
}

// Description returns the first weather condition description.
func (w *CurrentWeather) Description() (string, bool) {
	if w == nil || len(w.Weather) == 0 {
		return "", false
	}
	return w.Weather[0].Description, true
}

func (w *CurrentWeather) Temperature() (float64, bool) {
	if w == nil || w.Main == nil || w.Main.Temp == nil {
		return 0, false
	}
	return *w.Main.Temp, true
}

func (w *CurrentWeather) Humidity() (float64, bool) {
	if w == nil || w.Main == nil || w.Main.Humidity == nil {
		return 0, false
	}
	return *w.Main.Humidity, true
}
