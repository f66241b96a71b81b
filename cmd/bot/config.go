package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/Jacobbrewer1/ticketpanel/pkg/dataaccess"
	"github.com/Jacobbrewer1/ticketpanel/pkg/dataaccess/connection"
	"github.com/Jacobbrewer1/ticketpanel/pkg/logging"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the name of the application.
	AppName = "ticketpanel"

	// EnvConfigFile is the environment variable for the optional YAML config file.
	EnvConfigFile = `CONFIG_FILE`

	// EnvBotToken is the environment variable for the bot token.
	EnvBotToken = `BOT_TOKEN`

	// EnvApplicationId is the environment variable for the application ID.
	EnvApplicationId = `APPLICATION_ID`

	// EnvStoreDriver is the environment variable for the storage backend.
	EnvStoreDriver = `STORE_DRIVER`

	// EnvDataDir is the environment variable for the directory of the file backend.
	EnvDataDir = `DATA_DIR`

	// EnvMongoUri is the environment variable for the MongoDB URI.
	EnvMongoUri = `MONGO_URI`

	// EnvMongoDatabase is the environment variable for the MongoDB database.
	EnvMongoDatabase = `MONGO_DATABASE`

	// EnvSQLitePath is the environment variable for the sqlite database file.
	EnvSQLitePath = `SQLITE_PATH`

	// EnvMonitoringPort is the environment variable for the monitoring port.
	EnvMonitoringPort = `MONITORING_PORT`

	// EnvTranscriptRate is the environment variable for the number of history pages read per second.
	EnvTranscriptRate = `TRANSCRIPT_RATE`
)

var (
	ErrMissingBotToken      = errors.New("bot token is required")
	ErrMissingApplicationId = errors.New("application id is required")
	ErrMissingMongoUri      = errors.New("mongo uri is required for the mongo store")
	ErrUnknownStoreDriver   = errors.New("unknown store driver")
)

// Config is the configuration of the bot. Values are read from the YAML file named by CONFIG_FILE, then
// overridden by the environment.
type Config struct {
	BotToken       string  `yaml:"bot_token"`
	ApplicationId  string  `yaml:"application_id"`
	StoreDriver    string  `yaml:"store_driver"`
	DataDir        string  `yaml:"data_dir"`
	MongoUri       string  `yaml:"mongo_uri"`
	MongoDatabase  string  `yaml:"mongo_database"`
	SQLitePath     string  `yaml:"sqlite_path"`
	MonitoringPort string  `yaml:"monitoring_port"`
	TranscriptRate float64 `yaml:"transcript_rate"`
}

func defaultConfig() *Config {
	return &Config{
		StoreDriver:    dataaccess.BackendFile,
		DataDir:        "data",
		MongoDatabase:  AppName,
		SQLitePath:     "data/ticketpanel.db",
		MonitoringPort: "8080",
		TranscriptRate: 4,
	}
}

// LoadConfig reads and validates the configuration. A .env file in the working directory is loaded into the
// environment first when present.
func LoadConfig(l *slog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		l.Warn("Error loading .env file", slog.String(logging.KeyError, err.Error()))
	}

	c := defaultConfig()
	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := c.loadFile(path); err != nil {
			return nil, err
		}
		l.Debug("Loaded config file", slog.String("path", path))
	}

	if err := c.loadEnv(l); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}
	return nil
}

func (c *Config) loadEnv(l *slog.Logger) error {
	values := map[string]*string{
		EnvBotToken:       &c.BotToken,
		EnvApplicationId:  &c.ApplicationId,
		EnvStoreDriver:    &c.StoreDriver,
		EnvDataDir:        &c.DataDir,
		EnvMongoUri:       &c.MongoUri,
		EnvMongoDatabase:  &c.MongoDatabase,
		EnvSQLitePath:     &c.SQLitePath,
		EnvMonitoringPort: &c.MonitoringPort,
	}
	for key, dst := range values {
		if v := os.Getenv(key); v != "" {
			l.Debug("Found config in environment", slog.String("key", key))
			*dst = v
		}
	}

	if v := os.Getenv(EnvTranscriptRate); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("error parsing %s: %w", EnvTranscriptRate, err)
		}
		c.TranscriptRate = rate
	}
	return nil
}

// Validate checks that everything required by the selected store is set.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return ErrMissingBotToken
	} else if c.ApplicationId == "" {
		return ErrMissingApplicationId
	}

	switch c.StoreDriver {
	case dataaccess.BackendFile, dataaccess.BackendSQLite:
	case dataaccess.BackendMongo:
		if c.MongoUri == "" {
			return ErrMissingMongoUri
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStoreDriver, c.StoreDriver)
	}
	return nil
}

// newKV opens the configured store. The returned func closes it.
func newKV(ctx context.Context, l *slog.Logger, c *Config) (dataaccess.KV, func(), error) {
	var (
		kv  dataaccess.KV
		err error
	)

	switch c.StoreDriver {
	case dataaccess.BackendMongo:
		mongoConn := &connection.MongoDB{ConnectionString: c.MongoUri}
		client, connErr := mongoConn.Connect(ctx)
		if connErr != nil {
			return nil, nil, connErr
		}
		kv, err = dataaccess.NewMongoKV(ctx, client, c.MongoDatabase)
		if err != nil {
			_ = client.Disconnect(ctx)
		}
	case dataaccess.BackendSQLite:
		sqliteConn := &connection.SQLite{Path: c.SQLitePath}
		db, connErr := sqliteConn.Connect()
		if connErr != nil {
			return nil, nil, connErr
		}
		kv, err = dataaccess.NewSQLiteKV(db)
		if err != nil {
			_ = db.Close()
		}
	default:
		kv, err = dataaccess.NewFileKV(c.DataDir)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("error opening %s store: %w", c.StoreDriver, err)
	}

	l.Info("Opened store", slog.String(logging.KeyBackend, c.StoreDriver))
	cleanup := func() {
		if err := kv.Close(context.Background()); err != nil {
			l.Error("Error closing store", slog.String(logging.KeyError, err.Error()))
		}
	}
	return kv, cleanup, nil
}
