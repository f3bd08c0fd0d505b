package logger

import (
	"io"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// TimeLayout is the format of the "timestamp" field of every record.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

type Logger struct {
	appEnv  string
	appName string
	l       *zap.Logger
}

// NewZapLogger writes JSON records to every writer given, or to stdout when
// none is.
func NewZapLogger(appName, appEnv string, writers ...io.Writer) *Logger {
	var multiWriters []zapcore.WriteSyncer

	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = timeEncoder(TimeLayout, time.UTC)
	cfg.TimeKey = "timestamp"

	if len(writers) == 0 {
		multiWriters = append(multiWriters, zapcore.AddSync(os.Stdout))
	} else {
		for _, writer := range writers {
			multiWriters = append(multiWriters, zapcore.AddSync(writer))
		}
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(cfg),
		zapcore.NewMultiWriteSyncer(multiWriters...),
		zapcore.DebugLevel,
	)

	return &Logger{
		appEnv:  appEnv,
		appName: appName,
		l:       zap.New(core),
	}
}

// NewNop discards everything. Used by tests that do not assert on logs.
func NewNop() *Logger {
	return &Logger{l: zap.NewNop()}
}

// NewRotatingFile returns a size-rotated, gzip-compressed log file writer.
func NewRotatingFile(path string, maxSizeMB, maxBackups int) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     30,
		Compress:   true,
	}
}

func (l *Logger) Stop() error {
	return l.l.Sync()
}

func (l *Logger) Error(err error, fields ...map[string]any) {
	msg := "<nil>"
	if err != nil {
		msg = err.Error()
	}
	l.l.Error(msg, append(l.base(fields), zap.String("error", msg), zap.Stack("stack"))...)
}

func (l *Logger) Info(msg string, fields ...map[string]any) {
	l.l.Info(msg, l.base(fields)...)
}

func (l *Logger) Warning(msg string, fields ...map[string]any) {
	l.l.Warn(msg, l.base(fields)...)
}

func (l *Logger) Debug(msg string, fields ...map[string]any) {
	l.l.Debug(msg, l.base(fields)...)
}

func (l *Logger) Fatal(msg string, fields ...map[string]any) {
	l.l.Fatal(msg, l.base(fields)...)
}

// base is always called from one of the level methods above, so caller
// depth 3 points at the code that logged.
func (l *Logger) base(fields []map[string]any) []zap.Field {
	file, line, funcName := getRuntimeParams(3)

	zapFields := []zap.Field{
		zap.String("app_zone", l.appEnv),
		zap.String("app_name", l.appName),
		zap.String("caller_file", file),
		zap.Int("caller_line", line),
		zap.String("caller_func", funcName),
	}
	if len(fields) > 0 {
		zapFields = append(zapFields, mapToZapFields(fields[0])...)
	}

	return zapFields
}

func mapToZapFields(data map[string]any) []zap.Field {
	zapFields := make([]zap.Field, 0, len(data))

	for k, v := range data {
		if err, ok := v.(error); ok {
			zapFields = append(zapFields, zap.NamedError(k, err))
			continue
		}
		zapFields = append(zapFields, zap.Any(k, v))
	}

	return zapFields
}

func getRuntimeParams(skip int) (file string, line int, funcName string) {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "not_defined", 0, "not_defined"
	}

	return file, line, runtime.FuncForPC(pc).Name()
}

func timeEncoder(layout string, location *time.Location) zapcore.TimeEncoder {
	return func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		t = t.In(location)
		type appendTimeEncoder interface {
			AppendTimeLayout(time.Time, string)
		}
		if enc, ok := enc.(appendTimeEncoder); ok {
			enc.AppendTimeLayout(t, layout)
			return
		}
		enc.AppendString(t.Format(layout))
	}
}
