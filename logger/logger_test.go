package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":    zapcore.DebugLevel,
		"INFO":     zapcore.InfoLevel,
		"warning":  zapcore.WarnLevel,
		" error ":  zapcore.ErrorLevel,
		"critical": zapcore.FatalLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok, s)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("chatty")
	require.False(t, ok)
}

func TestInit(t *testing.T) {
	prev, prevLevel := Logger(), Level()
	defer func() {
		SetLogger(prev)
		SetLevel(prevLevel)
	}()

	require.Error(t, Init("chatty", ""))

	file := filepath.Join(t.TempDir(), "monitor.log")
	require.NoError(t, Init("debug", file))
	require.Equal(t, zapcore.DebugLevel, Level())
	require.FileExists(t, file)
}
