package dataaccess

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Jacobbrewer1/ticketpanel/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/ticketpanel/pkg/entities"
	"github.com/Jacobbrewer1/ticketpanel/pkg/logging"
	"github.com/google/uuid"
)

const panelDalName = "panel_dal"

// ErrPanelNotFound is returned when the guild has no panel with the requested name.
var ErrPanelNotFound = errors.New("panel not found")

type PanelDal interface {
	// LoadPanels returns every panel of the guild keyed by name. A guild with no record, or with a record that
	// cannot be decoded, has no panels; an undecodable record is first copied to NamespacePanels.Quarantine().
	// Options missing an id or panel name are repaired and written back.
	LoadPanels(ctx context.Context, guildID string) (map[string]*entities.Panel, error)

	// GetPanel returns a single panel, or ErrPanelNotFound.
	GetPanel(ctx context.Context, guildID, name string) (*entities.Panel, error)

	// SavePanel creates or replaces a panel.
	SavePanel(ctx context.Context, guildID, name string, panel *entities.Panel) error

	// DeletePanel removes a panel, or returns ErrPanelNotFound.
	DeletePanel(ctx context.Context, guildID, name string) error

	// NewOptionID returns an option id that is not used by any panel of the guild.
	NewOptionID(ctx context.Context, guildID string) (string, error)
}

type panelDalImpl struct {
	// l is the logger.
	l *slog.Logger

	// kv is the underlying store.
	kv KV
}

// NewPanelDal creates a new panel data access layer.
func NewPanelDal(l *slog.Logger, kv KV) PanelDal {
	return &panelDalImpl{
		l:  l.With(slog.String(logging.KeyDal, panelDalName)),
		kv: kv,
	}
}

func (p *panelDalImpl) LoadPanels(ctx context.Context, guildID string) (map[string]*entities.Panel, error) {
	data, err := p.kv.Get(ctx, NamespacePanels, guildID)
	if errors.Is(err, ErrNotFound) {
		return make(map[string]*entities.Panel), nil
	} else if err != nil {
		return nil, fmt.Errorf("error loading panels: %w", err)
	}

	panels := make(map[string]*entities.Panel)
	if err := json.Unmarshal(data, &panels); err != nil {
		if err := quarantine(ctx, p.l, p.kv, NamespacePanels, guildID, data, err); err != nil {
			return nil, err
		}
		return make(map[string]*entities.Panel), nil
	}

	if repairPanels(panels) {
		monitoring.IntegrityRepairs.WithLabelValues(string(NamespacePanels)).Inc()
		p.l.Info("Repaired stored panels", slog.String(logging.KeyGuildID, guildID))

		if err := p.write(ctx, guildID, panels); err != nil {
			return nil, fmt.Errorf("error saving repaired panels: %w", err)
		}
	}

	return panels, nil
}

func (p *panelDalImpl) GetPanel(ctx context.Context, guildID, name string) (*entities.Panel, error) {
	panels, err := p.LoadPanels(ctx, guildID)
	if err != nil {
		return nil, err
	}

	panel, ok := panels[name]
	if !ok {
		return nil, ErrPanelNotFound
	}
	return panel, nil
}

func (p *panelDalImpl) SavePanel(ctx context.Context, guildID, name string, panel *entities.Panel) error {
	if name == "" {
		return errors.New("panel name is empty")
	} else if panel == nil {
		return errors.New("panel is nil")
	}

	panels, err := p.LoadPanels(ctx, guildID)
	if err != nil {
		return err
	}

	// Option ids must be unique across the guild, not just the panel.
	taken := make(map[string]string)
	for otherName, other := range panels {
		if otherName == name {
			continue
		}
		for _, o := range other.Options {
			taken[o.ID] = otherName
		}
	}

	for _, o := range panel.Options {
		if o == nil {
			return fmt.Errorf("%w: nil option on panel %q", entities.ErrInvalidOption, name)
		}
		if o.PanelName == "" {
			o.PanelName = name
		}
		if o.ID == "" {
			o.ID = newOptionID(taken)
		}
		if owner, ok := taken[o.ID]; ok {
			return fmt.Errorf("%w: option id %q is already used by panel %q", entities.ErrInvalidOption, o.ID, owner)
		}
		taken[o.ID] = name

		if err := o.Validate(); err != nil {
			return err
		}
	}

	if panel.Options == nil {
		panel.Options = make([]*entities.Option, 0)
	}

	panels[name] = panel
	return p.write(ctx, guildID, panels)
}

func (p *panelDalImpl) DeletePanel(ctx context.Context, guildID, name string) error {
	panels, err := p.LoadPanels(ctx, guildID)
	if err != nil {
		return err
	}

	if _, ok := panels[name]; !ok {
		return ErrPanelNotFound
	}
	delete(panels, name)

	if len(panels) == 0 {
		if err := p.kv.Delete(ctx, NamespacePanels, guildID); err != nil {
			return fmt.Errorf("error deleting panels: %w", err)
		}
		return nil
	}
	return p.write(ctx, guildID, panels)
}

func (p *panelDalImpl) NewOptionID(ctx context.Context, guildID string) (string, error) {
	panels, err := p.LoadPanels(ctx, guildID)
	if err != nil {
		return "", err
	}

	taken := make(map[string]string)
	for name, panel := range panels {
		for _, o := range panel.Options {
			taken[o.ID] = name
		}
	}
	return newOptionID(taken), nil
}

func (p *panelDalImpl) write(ctx context.Context, guildID string, panels map[string]*entities.Panel) error {
	data, err := json.MarshalIndent(panels, "", "    ")
	if err != nil {
		return fmt.Errorf("error encoding panels: %w", err)
	}

	if err := p.kv.Put(ctx, NamespacePanels, guildID, data); err != nil {
		return fmt.Errorf("error saving panels: %w", err)
	}
	return nil
}

// repairPanels fills in missing option ids and panel names. It reports whether anything changed.
func repairPanels(panels map[string]*entities.Panel) bool {
	repaired := false

	taken := make(map[string]string)
	for name, panel := range panels {
		if panel == nil {
			delete(panels, name)
			repaired = true
			continue
		}
		for _, o := range panel.Options {
			if o != nil && o.ID != "" {
				taken[o.ID] = name
			}
		}
	}

	for name, panel := range panels {
		options := panel.Options[:0]
		for _, o := range panel.Options {
			if o == nil {
				repaired = true
				continue
			}
			if o.ID == "" {
				o.ID = newOptionID(taken)
				taken[o.ID] = name
				repaired = true
			}
			if o.PanelName == "" {
				o.PanelName = name
				repaired = true
			}
			options = append(options, o)
		}
		panel.Options = options
	}

	return repaired
}

// newOptionID returns 8 hex characters not present in taken.
func newOptionID(taken map[string]string) string {
	for {
		id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		if _, ok := taken[id]; !ok {
			return id
		}
	}
}
