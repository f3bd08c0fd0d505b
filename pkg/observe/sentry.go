package observe

import (
	"encoding/json"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"

	"current-weather/pkg/logger"
)

const (
	_sentryMaxErrorDepth        int           = 9
	_sentryFlushTimeout         time.Duration = 5 * time.Second
	_sentryServerRequestTimeout time.Duration = 5 * time.Second
)

// SentryHook is an io.Writer meant to sit next to stdout in the zap
// multi-writer. It forwards error and fatal records to Sentry.
type SentryHook struct {
	appZone string
	appName string
	capture func(*sentry.Event) *sentry.EventID
}

type logRecord struct {
	Level      string `json:"level"`
	AppName    string `json:"app_name"`
	CallerFile string `json:"caller_file"`
	CallerLine int    `json:"caller_line"`
	CallerFunc string `json:"caller_func"`
	Stack      string `json:"stack"`
	Message    string `json:"msg"`
	Error      string `json:"error"`
	Timestamp  string `json:"timestamp"`
}

func NewSentryHook(appZone, appName, dsn string) (*SentryHook, error) {
	if dsn == "" {
		return nil, errors.New("sentry: empty DSN")
	}

	sentryTransport := sentry.NewHTTPTransport()
	sentryTransport.Timeout = _sentryServerRequestTimeout
	if err := sentry.Init(sentry.ClientOptions{
		AttachStacktrace: true,
		Dsn:              dsn,
		Environment:      appZone,
		MaxErrorDepth:    _sentryMaxErrorDepth,
		ServerName:       appName,
		Transport:        sentryTransport,
	}); err != nil {
		return nil, errors.Wrap(err, "sentry init")
	}

	return &SentryHook{
		appZone: appZone,
		appName: appName,
		capture: sentry.CaptureEvent,
	}, nil
}

func (*SentryHook) mapLevel(zl zapcore.Level) sentry.Level {
	switch zl {
	case zapcore.DebugLevel, zapcore.InvalidLevel:
		return sentry.LevelDebug
	case zapcore.InfoLevel:
		return sentry.LevelInfo
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.ErrorLevel:
		return sentry.LevelError
	case zapcore.FatalLevel, zapcore.PanicLevel, zapcore.DPanicLevel:
		return sentry.LevelFatal
	}

	return sentry.LevelDebug
}

// Write never fails: a record it cannot read is dropped so that logging to
// the other writers keeps working.
func (h *SentryHook) Write(p []byte) (int, error) {
	if h.appZone != "prod" && h.appZone != "dev" {
		return len(p), nil
	}

	var rec logRecord
	if err := json.Unmarshal(p, &rec); err != nil {
		return len(p), nil
	}

	level, err := zapcore.ParseLevel(rec.Level)
	if err != nil || rec.Message == "" || level < zapcore.ErrorLevel {
		return len(p), nil
	}

	h.capture(h.event(level, rec))

	return len(p), nil
}

func (h *SentryHook) event(level zapcore.Level, rec logRecord) *sentry.Event {
	timestamp, err := time.Parse(logger.TimeLayout, rec.Timestamp)
	if err != nil {
		timestamp = time.Now().UTC()
	}

	event := sentry.NewEvent()
	event.Environment = h.appZone
	event.Level = h.mapLevel(level)
	event.Timestamp = timestamp
	event.Message = rec.Message
	event.Extra["AppName"] = h.appName
	event.Extra["Error"] = rec.Error
	event.Extra["CallerFile"] = rec.CallerFile
	event.Extra["CallerLine"] = rec.CallerLine
	event.Extra["CallerFunc"] = rec.CallerFunc
	event.Extra["Stack"] = rec.Stack
	event.Exception = append(event.Exception, sentry.Exception{
		Type:  rec.Message,
		Value: rec.Error,
	})

	return event
}

// Flush waits for buffered events to be delivered.
func (h *SentryHook) Flush() bool {
	return sentry.Flush(_sentryFlushTimeout)
}
