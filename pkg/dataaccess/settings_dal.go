package dataaccess

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/ticketpanel/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/ticketpanel/pkg/entities"
	"github.com/Jacobbrewer1/ticketpanel/pkg/logging"
)

const settingsDalName = "settings_dal"

type SettingsDal interface {
	// LoadSettings returns the settings of the guild. A guild with no settings gets the zero value.
	LoadSettings(ctx context.Context, guildID string) (*entities.Settings, error)

	// SaveSettings replaces the settings of the guild.
	SaveSettings(ctx context.Context, guildID string, settings *entities.Settings) error
}

type settingsDalImpl struct {
	// l is the logger.
	l *slog.Logger

	// kv is the underlying store.
	kv KV
}

// NewSettingsDal creates a new settings data access layer.
func NewSettingsDal(l *slog.Logger, kv KV) SettingsDal {
	return &settingsDalImpl{
		l:  l.With(slog.String(logging.KeyDal, settingsDalName)),
		kv: kv,
	}
}

func (s *settingsDalImpl) LoadSettings(ctx context.Context, guildID string) (*entities.Settings, error) {
	data, err := s.kv.Get(ctx, NamespaceSettings, guildID)
	if errors.Is(err, ErrNotFound) {
		return new(entities.Settings), nil
	} else if err != nil {
		return nil, fmt.Errorf("error loading settings: %w", err)
	}

	settings := new(entities.Settings)
	if err := json.Unmarshal(data, settings); err != nil {
		monitoring.CorruptRecords.WithLabelValues(string(NamespaceSettings)).Inc()
		s.l.Warn("Stored settings could not be decoded, treating as empty",
			slog.String(logging.KeyGuildID, guildID),
			slog.String(logging.KeyError, err.Error()),
		)
		return new(entities.Settings), nil
	}
	return settings, nil
}

func (s *settingsDalImpl) SaveSettings(ctx context.Context, guildID string, settings *entities.Settings) error {
	if settings == nil {
		return errors.New("settings are nil")
	}

	data, err := json.MarshalIndent(settings, "", "    ")
	if err != nil {
		return fmt.Errorf("error encoding settings: %w", err)
	}

	if err := s.kv.Put(ctx, NamespaceSettings, guildID, data); err != nil {
		return fmt.Errorf("error saving settings: %w", err)
	}
	return nil
}
