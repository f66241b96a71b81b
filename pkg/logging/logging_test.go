package logging

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		format   string
		expLevel slog.Level
		expJSON  bool
	}{
		{name: "defaults", expLevel: slog.LevelInfo},
		{name: "debug", level: "debug", expLevel: slog.LevelDebug},
		{name: "json", format: "JSON", expLevel: slog.LevelInfo, expJSON: true},
		{name: "invalid level", level: "loud", expLevel: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvLogLevel, tt.level)
			t.Setenv(EnvLogFormat, tt.format)

			c := NewConfig("tests")
			require.Equal(t, Name("tests"), c.Name)
			require.Equal(t, tt.expLevel, c.Level)
			require.Equal(t, tt.expJSON, c.JSON)
		})
	}
}

func TestCommonLogger(t *testing.T) {
	_, err := CommonLogger(nil)
	require.Error(t, err)

	l, err := CommonLogger(NewConfig("tests"))
	require.NoError(t, err)
	require.NotNil(t, l)
	require.Same(t, l, slog.Default())
}
