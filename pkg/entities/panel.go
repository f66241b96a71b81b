package entities

import (
	"github.com/Jacobbrewer1/ticketpanel/pkg/custom"
)

// PanelStyle is how the options of a panel are presented.
type PanelStyle string

const (
	PanelStyleButtons  PanelStyle = "buttons"
	PanelStyleDropdown PanelStyle = "dropdown"
)

// Valid reports whether the style is one of the known styles.
func (s PanelStyle) Valid() bool {
	return s == PanelStyleButtons || s == PanelStyleDropdown
}

// Panel is a named ticket panel. Panels are stored per guild keyed by their name, so the name is not part of the
// record itself.
type Panel struct {
	EmbedTemplate

	Style               PanelStyle       `json:"style,omitempty"`
	TranscriptChannelID custom.Snowflake `json:"transcript_channel_id,omitempty"`
	Options             []*Option        `json:"options"`
}

// NewPanel creates an empty panel using the button style.
func NewPanel(title, description string) *Panel {
	return &Panel{
		EmbedTemplate: EmbedTemplate{
			Title:       title,
			Description: description,
		},
		Style:   PanelStyleButtons,
		Options: make([]*Option, 0),
	}
}

// EffectiveStyle returns the style of the panel, defaulting to buttons.
func (p *Panel) EffectiveStyle() PanelStyle {
	if p.Style.Valid() {
		return p.Style
	}
	return PanelStyleButtons
}

// OptionByID returns the option with the given id, or nil.
func (p *Panel) OptionByID(id string) *Option {
	for _, o := range p.Options {
		if o != nil && o.ID == id {
			return o
		}
	}
	return nil
}

// RemoveOption removes the option with the given id and reports whether it was present.
func (p *Panel) RemoveOption(id string) bool {
	for idx, o := range p.Options {
		if o != nil && o.ID == id {
			p.Options = append(p.Options[:idx], p.Options[idx+1:]...)
			return true
		}
	}
	return false
}
