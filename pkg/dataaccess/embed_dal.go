package dataaccess

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/Jacobbrewer1/ticketpanel/pkg/entities"
	"github.com/Jacobbrewer1/ticketpanel/pkg/logging"
	"github.com/samber/lo"
)

const embedDalName = "embed_dal"

// ErrEmbedNotFound is returned when the guild has no embed with the requested name.
var ErrEmbedNotFound = errors.New("embed not found")

type EmbedDal interface {
	// SaveEmbed creates or replaces a named embed.
	SaveEmbed(ctx context.Context, guildID, name string, embed *entities.EmbedTemplate) error

	// LoadEmbed returns a named embed, or ErrEmbedNotFound.
	LoadEmbed(ctx context.Context, guildID, name string) (*entities.EmbedTemplate, error)

	// DeleteEmbed removes a named embed, or returns ErrEmbedNotFound.
	DeleteEmbed(ctx context.Context, guildID, name string) error

	// ListEmbeds returns the sorted embed names of the guild.
	ListEmbeds(ctx context.Context, guildID string) ([]string, error)

	// EmbedExists reports whether the named embed exists.
	EmbedExists(ctx context.Context, guildID, name string) (bool, error)
}

type embedDalImpl struct {
	// l is the logger.
	l *slog.Logger

	// kv is the underlying store.
	kv KV
}

// NewEmbedDal creates a new embed data access layer.
func NewEmbedDal(l *slog.Logger, kv KV) EmbedDal {
	return &embedDalImpl{
		l:  l.With(slog.String(logging.KeyDal, embedDalName)),
		kv: kv,
	}
}

func (e *embedDalImpl) loadAll(ctx context.Context, guildID string) (map[string]*entities.EmbedTemplate, error) {
	data, err := e.kv.Get(ctx, NamespaceEmbeds, guildID)
	if errors.Is(err, ErrNotFound) {
		return make(map[string]*entities.EmbedTemplate), nil
	} else if err != nil {
		return nil, fmt.Errorf("error loading embeds: %w", err)
	}

	embeds := make(map[string]*entities.EmbedTemplate)
	if err := json.Unmarshal(data, &embeds); err != nil {
		if err := quarantine(ctx, e.l, e.kv, NamespaceEmbeds, guildID, data, err); err != nil {
			return nil, err
		}
		return make(map[string]*entities.EmbedTemplate), nil
	}
	return embeds, nil
}

func (e *embedDalImpl) write(ctx context.Context, guildID string, embeds map[string]*entities.EmbedTemplate) error {
	if len(embeds) == 0 {
		if err := e.kv.Delete(ctx, NamespaceEmbeds, guildID); err != nil {
			return fmt.Errorf("error deleting embeds: %w", err)
		}
		return nil
	}

	data, err := json.MarshalIndent(embeds, "", "    ")
	if err != nil {
		return fmt.Errorf("error encoding embeds: %w", err)
	}

	if err := e.kv.Put(ctx, NamespaceEmbeds, guildID, data); err != nil {
		return fmt.Errorf("error saving embeds: %w", err)
	}
	return nil
}

func (e *embedDalImpl) SaveEmbed(ctx context.Context, guildID, name string, embed *entities.EmbedTemplate) error {
	if name == "" {
		return errors.New("embed name is empty")
	} else if embed == nil {
		return errors.New("embed is nil")
	}

	embeds, err := e.loadAll(ctx, guildID)
	if err != nil {
		return err
	}

	embeds[name] = embed
	return e.write(ctx, guildID, embeds)
}

func (e *embedDalImpl) LoadEmbed(ctx context.Context, guildID, name string) (*entities.EmbedTemplate, error) {
	embeds, err := e.loadAll(ctx, guildID)
	if err != nil {
		return nil, err
	}

	embed, ok := embeds[name]
	if !ok || embed == nil {
		return nil, ErrEmbedNotFound
	}
	return embed, nil
}

func (e *embedDalImpl) DeleteEmbed(ctx context.Context, guildID, name string) error {
	embeds, err := e.loadAll(ctx, guildID)
	if err != nil {
		return err
	}

	if _, ok := embeds[name]; !ok {
		return ErrEmbedNotFound
	}
	delete(embeds, name)
	return e.write(ctx, guildID, embeds)
}

func (e *embedDalImpl) ListEmbeds(ctx context.Context, guildID string) ([]string, error) {
	embeds, err := e.loadAll(ctx, guildID)
	if err != nil {
		return nil, err
	}

	names := lo.Keys(embeds)
	slices.Sort(names)
	return names, nil
}

func (e *embedDalImpl) EmbedExists(ctx context.Context, guildID, name string) (bool, error) {
	_, err := e.LoadEmbed(ctx, guildID, name)
	if errors.Is(err, ErrEmbedNotFound) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, nil
}
