package models

// UpstreamError is the body OpenWeatherMap sends with non-2xx answers,
// e.g. {"cod":"404","message":"city not found"}.
type UpstreamError struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}
