package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Jacobbrewer1/ticketpanel/pkg/dataaccess"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "no token", mutate: func(c *Config) { c.BotToken = "" }, wantErr: ErrMissingBotToken},
		{name: "no application", mutate: func(c *Config) { c.ApplicationId = "" }, wantErr: ErrMissingApplicationId},
		{name: "mongo without uri", mutate: func(c *Config) { c.StoreDriver = dataaccess.BackendMongo }, wantErr: ErrMissingMongoUri},
		{name: "mongo", mutate: func(c *Config) {
			c.StoreDriver = dataaccess.BackendMongo
			c.MongoUri = "mongodb://localhost"
		}},
		{name: "sqlite", mutate: func(c *Config) { c.StoreDriver = dataaccess.BackendSQLite }},
		{name: "unknown driver", mutate: func(c *Config) { c.StoreDriver = "redis" }, wantErr: ErrUnknownStoreDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaultConfig()
			c.BotToken = "token"
			c.ApplicationId = "42"
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
bot_token: from-file
application_id: "1234"
store_driver: sqlite
sqlite_path: /tmp/file.db
transcript_rate: 2
`), 0o600))

	t.Setenv(EnvConfigFile, path)
	t.Setenv(EnvBotToken, "from-env")
	t.Setenv(EnvMonitoringPort, "9090")

	c, err := LoadConfig(testLogger())
	require.NoError(t, err)
	require.Equal(t, "from-env", c.BotToken)
	require.Equal(t, "1234", c.ApplicationId)
	require.Equal(t, dataaccess.BackendSQLite, c.StoreDriver)
	require.Equal(t, "/tmp/file.db", c.SQLitePath)
	require.Equal(t, "9090", c.MonitoringPort)
	require.Equal(t, 2.0, c.TranscriptRate)
	require.Equal(t, AppName, c.MongoDatabase)
}

func TestLoadConfig_Missing(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv(EnvBotToken, "")
	t.Setenv(EnvApplicationId, "")

	_, err := LoadConfig(testLogger())
	require.ErrorIs(t, err, ErrMissingBotToken)
}

func TestLoadConfig_BadRate(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv(EnvBotToken, "token")
	t.Setenv(EnvApplicationId, "42")
	t.Setenv(EnvTranscriptRate, "fast")

	_, err := LoadConfig(testLogger())
	require.Error(t, err)
}

func TestNewKV(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		c    *Config
	}{
		{name: "file", c: &Config{StoreDriver: dataaccess.BackendFile, DataDir: filepath.Join(dir, "data")}},
		{name: "sqlite", c: &Config{StoreDriver: dataaccess.BackendSQLite, SQLitePath: filepath.Join(dir, "bot.db")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv, cleanup, err := newKV(ctx, testLogger(), tt.c)
			require.NoError(t, err)
			defer cleanup()

			require.NoError(t, kv.Ping(ctx))
			require.NoError(t, kv.Put(ctx, dataaccess.NamespaceSettings, "1", []byte(`{}`)))

			got, err := kv.Get(ctx, dataaccess.NamespaceSettings, "1")
			require.NoError(t, err)
			require.JSONEq(t, `{}`, string(got))
		})
	}
}
