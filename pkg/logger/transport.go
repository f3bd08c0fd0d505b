package logger

import (
	"net/http"
	"net/url"
	"time"
)

// secretParams are query parameters whose values never reach the logs.
var secretParams = []string{"appid", "api_key", "apikey", "key"}

// RoundTripper logs every outbound request with its credentials redacted.
type RoundTripper struct {
	Logger *Logger
	Proxy  http.RoundTripper
}

func NewRoundTripper(l *Logger, proxy http.RoundTripper) *RoundTripper {
	if proxy == nil {
		proxy = http.DefaultTransport
	}

	return &RoundTripper{
		Logger: l,
		Proxy:  proxy,
	}
}

func (rt *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := rt.Proxy.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		rt.Logger.Warning("outbound request failed", map[string]any{
			"method":   req.Method,
			"url":      RedactURL(req.URL),
			"duration": duration.String(),
			"err":      err,
		})
		return nil, err
	}

	rt.Logger.Debug("outbound request completed", map[string]any{
		"method":      req.Method,
		"url":         RedactURL(req.URL),
		"status_code": resp.StatusCode,
		"duration":    duration.String(),
	})

	return resp, nil
}

// RedactURL renders u with secret query values replaced.
func RedactURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	redacted := *u
	q := redacted.Query()
	for _, p := range secretParams {
		if q.Has(p) {
			q.Set(p, "REDACTED")
		}
	}
	redacted.RawQuery = q.Encode()
	redacted.User = nil

	return redacted.String()
}
