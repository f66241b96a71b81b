package tickets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketpanel/pkg/embeds"
	"github.com/Jacobbrewer1/ticketpanel/pkg/entities"
	"github.com/Jacobbrewer1/ticketpanel/pkg/logging"
	"github.com/Jacobbrewer1/ticketpanel/pkg/messages"
)

// Custom id prefixes of the components the bot sends. A custom id is the prefix, optionally followed by ":"
// and a value.
const (
	// OptionButtonPrefix is followed by the option id.
	OptionButtonPrefix = "panel_option"

	// DropdownPrefix is followed by the panel name. The selected value is the option id.
	DropdownPrefix = "panel_dropdown"

	// ClosePrefix is followed by the owner, guild and panel of the ticket.
	ClosePrefix = "ticket_close"

	// LegacyCloseButtonID is the close button sent by old versions. It carries no ticket details.
	LegacyCloseButtonID = "ticket_close_button"

	maxCustomID       = 100
	maxOptions        = 25
	maxSelectLabel    = 100
	maxSelectDesc     = 100
	dropdownHolder    = "Select a ticket type..."
	customIDSeparator = ":"
)

// CloseRef is the ticket a close button was sent for. The channel topic takes precedence over it.
type CloseRef struct {
	OwnerID   string
	GuildID   string
	PanelName string
}

// ParseCustomID splits a custom id into its prefix and value.
func ParseCustomID(customID string) (prefix, value string) {
	prefix, value, _ = strings.Cut(customID, customIDSeparator)
	return prefix, value
}

// OptionButtonID is the custom id of the button of an option.
func OptionButtonID(optionID string) string {
	return OptionButtonPrefix + customIDSeparator + optionID
}

// DropdownID is the custom id of the dropdown of a panel.
func DropdownID(panelName string) string {
	return DropdownPrefix + customIDSeparator + panelName
}

// CloseButtonID is the custom id of a close button. The panel name is dropped when the id would be too long.
func CloseButtonID(ref CloseRef) string {
	id := strings.Join([]string{ClosePrefix, ref.OwnerID, ref.GuildID, ref.PanelName}, customIDSeparator)
	if len(id) > maxCustomID {
		id = strings.Join([]string{ClosePrefix, ref.OwnerID, ref.GuildID}, customIDSeparator)
	}
	return id
}

// ParseCloseButtonID decodes the custom id of a close button. The legacy button decodes to an empty ref.
func ParseCloseButtonID(customID string) (CloseRef, bool) {
	if customID == LegacyCloseButtonID {
		return CloseRef{}, true
	}

	parts := strings.SplitN(customID, customIDSeparator, 4)
	if parts[0] != ClosePrefix {
		return CloseRef{}, false
	}

	var ref CloseRef
	if len(parts) > 1 {
		ref.OwnerID = parts[1]
	}
	if len(parts) > 2 {
		ref.GuildID = parts[2]
	}
	if len(parts) > 3 {
		ref.PanelName = parts[3]
	}
	return ref, true
}

// Components renders the options of a panel as message components. Panels with more than one option and the
// dropdown style get a single dropdown, everything else gets buttons. A panel without options renders nothing.
func Components(panelName string, panel *entities.Panel) []discordgo.MessageComponent {
	if panel == nil {
		return nil
	}

	options := make([]*entities.Option, 0, len(panel.Options))
	for _, o := range panel.Options {
		if o != nil && o.ID != "" {
			options = append(options, o)
		}
	}
	if len(options) > maxOptions {
		options = options[:maxOptions]
	}
	if len(options) == 0 {
		return nil
	}

	if panel.EffectiveStyle() == entities.PanelStyleDropdown && len(options) > 1 {
		return []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{dropdown(panelName, options)}},
		}
	}

	buttons := make([]discordgo.MessageComponent, 0, len(options))
	for _, o := range options {
		btn := discordgo.Button{
			Label:    embeds.Truncate(o.Label, 80),
			Style:    discordgo.PrimaryButton,
			CustomID: OptionButtonID(o.ID),
		}
		if emoji, ok := embeds.ParseEmoji(o.Emoji); ok {
			btn.Emoji = emoji
		}
		buttons = append(buttons, btn)
	}
	return embeds.Rows(buttons)
}

func dropdown(panelName string, options []*entities.Option) discordgo.SelectMenu {
	selectOptions := make([]discordgo.SelectMenuOption, 0, len(options))
	for _, o := range options {
		so := discordgo.SelectMenuOption{
			Label:       embeds.Truncate(o.Label, maxSelectLabel),
			Value:       o.ID,
			Description: embeds.Truncate(o.Description, maxSelectDesc),
		}
		if emoji, ok := embeds.ParseEmoji(o.Emoji); ok {
			so.Emoji = emoji
		}
		selectOptions = append(selectOptions, so)
	}

	return discordgo.SelectMenu{
		CustomID:    DropdownID(panelName),
		Placeholder: dropdownHolder,
		MaxValues:   1,
		Options:     selectOptions,
	}
}

// PanelMessage is the message a panel is posted as.
func PanelMessage(panelName string, panel *entities.Panel) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embeds.Render(&panel.EmbedTemplate, nil)},
		Components: Components(panelName, panel),
	}
}

// CloseControl is the message with the close button posted in a new ticket channel.
func CloseControl(ref CloseRef) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content: messages.CloseTicketPrompt,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    messages.CloseTicketButtonText,
					Style:    discordgo.DangerButton,
					CustomID: CloseButtonID(ref),
					Emoji:    discordgo.ComponentEmoji{Name: "🔒"},
				},
			}},
		},
	}
}

// SelectOption handles a selection on a panel message. The option is resolved against the stored panels, not
// the message, so edited or deleted options are never acted on. An empty panel name searches every panel of the
// guild.
func (m *Manager) SelectOption(ctx context.Context, r *Responder, i *discordgo.Interaction, panelName, optionID string) error {
	if err := r.Defer(); err != nil {
		return fmt.Errorf("error deferring interaction: %w", err)
	}

	panels, err := m.panels.LoadPanels(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("error loading panels: %w", err)
	}

	if panelName == "" && IsLegacyOptionID(optionID) {
		panelName = LegacyPanel(panels, i.Message)
	}

	var opt *entities.Option
	if panelName != "" {
		opt = ResolveOption(panels[panelName], optionID)
	} else {
		panelName, opt = FindOption(panels, optionID)
	}
	if opt == nil {
		m.l.Debug("Selected option no longer exists",
			slog.String(logging.KeyGuildID, i.GuildID),
			slog.String(logging.KeyPanel, panelName),
			slog.String(logging.KeyOption, optionID))
		return &UserError{Message: messages.ErrOptionNoLongerValid}
	}
	if opt.PanelName == "" {
		opt.PanelName = panelName
	}

	return m.Open(ctx, r, i, opt)
}

// Rehydrate loads the panels of a guild so their stored records are repaired before the first interaction,
// and returns how many panels can be interacted with. Components are stateless, so panel messages sent before
// a restart keep working without being re-registered.
func (m *Manager) Rehydrate(ctx context.Context, guildID string) (int, error) {
	panels, err := m.panels.LoadPanels(ctx, guildID)
	if err != nil {
		return 0, fmt.Errorf("error loading panels: %w", err)
	}

	active := 0
	for name, p := range panels {
		if len(Components(name, p)) > 0 {
			active++
		}
	}
	return active, nil
}
