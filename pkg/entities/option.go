package entities

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Jacobbrewer1/ticketpanel/pkg/custom"
)

// ErrInvalidOption is returned when an option does not satisfy the rules of its type.
var ErrInvalidOption = errors.New("invalid option")

// OptionType is the action taken when an option is selected.
type OptionType string

const (
	// OptionTypeTicket opens a ticket channel.
	OptionTypeTicket OptionType = "ticket"

	// OptionTypeEmbed shows a saved embed to the user.
	OptionTypeEmbed OptionType = "embed"
)

// Option is one selectable entry on a panel. Exactly one of Ticket or Embed is set.
type Option struct {
	// ID is generated once and never changes. Components reference options by this ID.
	ID          string
	Label       string
	Description string
	Emoji       string

	// PanelName is the name of the panel that owns the option.
	PanelName string

	Ticket *TicketOption
	Embed  *EmbedOption
}

// TicketOption holds the settings of an option that opens a ticket.
type TicketOption struct {
	// CategoryID is the category new channels are created in. When unset the category of the channel the panel
	// was used in is used.
	CategoryID custom.Snowflake

	// Prefix is the channel name prefix. The slug of the option label is used when unset.
	Prefix string

	// Limit is the maximum number of open tickets per user. Zero means unlimited.
	Limit int

	// Message is posted in the new channel. The default ticket message is used when nil.
	Message *EmbedTemplate
}

// EmbedOption holds the settings of an option that shows a saved embed.
type EmbedOption struct {
	EmbedName string
}

// NewTicketOption creates a ticket option owned by the given panel.
func NewTicketOption(id, panelName, label string) *Option {
	return &Option{
		ID:        id,
		Label:     label,
		PanelName: panelName,
		Ticket:    new(TicketOption),
	}
}

// NewEmbedOption creates an option that shows the named embed.
func NewEmbedOption(id, panelName, label, embedName string) *Option {
	return &Option{
		ID:        id,
		Label:     label,
		PanelName: panelName,
		Embed:     &EmbedOption{EmbedName: embedName},
	}
}

// Type returns the type of the option.
func (o *Option) Type() OptionType {
	if o.Embed != nil {
		return OptionTypeEmbed
	}
	return OptionTypeTicket
}

// Validate checks the option against the rules of its type.
func (o *Option) Validate() error {
	switch {
	case o.Ticket != nil && o.Embed != nil:
		return fmt.Errorf("%w: option %q is both a ticket and an embed option", ErrInvalidOption, o.ID)
	case o.Ticket == nil && o.Embed == nil:
		return fmt.Errorf("%w: option %q has no type", ErrInvalidOption, o.ID)
	case o.Label == "":
		return fmt.Errorf("%w: option %q has no label", ErrInvalidOption, o.ID)
	case o.Embed != nil && o.Embed.EmbedName == "":
		return fmt.Errorf("%w: embed option %q has no embed name", ErrInvalidOption, o.ID)
	case o.Ticket != nil && o.PanelName == "":
		return fmt.Errorf("%w: ticket option %q has no panel name", ErrInvalidOption, o.ID)
	case o.Ticket != nil && o.Ticket.Limit < 0:
		return fmt.Errorf("%w: ticket option %q has a negative limit", ErrInvalidOption, o.ID)
	}
	return nil
}

// optionRecord is the stored layout of an option. It is kept flat so records written before options were typed
// still decode.
type optionRecord struct {
	ID            string           `json:"id,omitempty"`
	Label         string           `json:"label"`
	Description   string           `json:"description,omitempty"`
	Emoji         string           `json:"emoji,omitempty"`
	Type          OptionType       `json:"type,omitempty"`
	PanelName     string           `json:"panel_name,omitempty"`
	CategoryID    custom.Snowflake `json:"category_id,omitempty"`
	TicketPrefix  string           `json:"ticket_prefix,omitempty"`
	Limit         *int             `json:"limit,omitempty"`
	TicketMessage *EmbedTemplate   `json:"ticket_message,omitempty"`
	EmbedName     string           `json:"embed_name,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface.
func (o *Option) MarshalJSON() ([]byte, error) {
	rec := optionRecord{
		ID:          o.ID,
		Label:       o.Label,
		Description: o.Description,
		Emoji:       o.Emoji,
		Type:        o.Type(),
		PanelName:   o.PanelName,
	}

	switch {
	case o.Embed != nil:
		rec.EmbedName = o.Embed.EmbedName
	case o.Ticket != nil:
		rec.CategoryID = o.Ticket.CategoryID
		rec.TicketPrefix = o.Ticket.Prefix
		rec.TicketMessage = o.Ticket.Message
		if o.Ticket.Limit > 0 {
			limit := o.Ticket.Limit
			rec.Limit = &limit
		}
	}

	return json.Marshal(rec)
}

// UnmarshalJSON implements the json.Unmarshaler interface. A missing type is read as a ticket option.
func (o *Option) UnmarshalJSON(data []byte) error {
	rec := new(optionRecord)
	if err := json.Unmarshal(data, rec); err != nil {
		return fmt.Errorf("error decoding option: %w", err)
	}

	*o = Option{
		ID:          rec.ID,
		Label:       rec.Label,
		Description: rec.Description,
		Emoji:       rec.Emoji,
		PanelName:   rec.PanelName,
	}

	switch rec.Type {
	case OptionTypeTicket, "":
		t := &TicketOption{
			CategoryID: rec.CategoryID,
			Prefix:     rec.TicketPrefix,
			Message:    rec.TicketMessage,
		}
		if rec.Limit != nil && *rec.Limit > 0 {
			t.Limit = *rec.Limit
		}
		o.Ticket = t
	case OptionTypeEmbed:
		o.Embed = &EmbedOption{EmbedName: rec.EmbedName}
	default:
		return fmt.Errorf("%w: unknown option type %q", ErrInvalidOption, rec.Type)
	}
	return nil
}
