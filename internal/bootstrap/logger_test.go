package bootstrap

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"current-weather/config"
)

func TestNewLogger_ConsoleAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	cnf := &config.Config{
		AppName: "test-app",
		AppEnv:  "test",
		Log:     config.LogConfig{File: path, MaxSizeMB: 1, MaxBackups: 1},
	}

	var console bytes.Buffer
	l, closeFn := NewLogger(cnf, &console)
	l.Info("hello", map[string]any{"city": "sousse"})
	closeFn()

	assert.Contains(t, console.String(), `"msg":"hello"`)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"city":"sousse"`)
}

func TestNewLogger_ConsoleOnly(t *testing.T) {
	cnf := &config.Config{AppName: "test-app", AppEnv: "test"}

	var console bytes.Buffer
	l, closeFn := NewLogger(cnf, &console)
	defer closeFn()

	l.Warning("careful")
	assert.Contains(t, console.String(), `"level":"warn"`)
}
