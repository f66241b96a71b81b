package tickets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketpanel/pkg/dataaccess"
	"github.com/Jacobbrewer1/ticketpanel/pkg/embeds"
	"github.com/Jacobbrewer1/ticketpanel/pkg/entities"
	"github.com/Jacobbrewer1/ticketpanel/pkg/logging"
	"github.com/Jacobbrewer1/ticketpanel/pkg/messages"
)

// Open performs the action of a selected option: embed options show their embed to the user, ticket options
// create a private ticket channel.
func (m *Manager) Open(ctx context.Context, r *Responder, i *discordgo.Interaction, opt *entities.Option) error {
	if err := opt.Validate(); err != nil {
		return &UserError{Message: messages.ErrOptionNoLongerValid, Err: err}
	}

	if opt.Type() == entities.OptionTypeEmbed {
		return m.showEmbed(ctx, r, i, opt)
	}

	ch, err := m.openTicket(ctx, i, opt)
	if err != nil {
		return err
	}
	return r.Ephemeral(fmt.Sprintf(messages.TicketCreated, ch.ID))
}

func (m *Manager) showEmbed(ctx context.Context, r *Responder, i *discordgo.Interaction, opt *entities.Option) error {
	tmpl, err := m.embeds.LoadEmbed(ctx, i.GuildID, opt.Embed.EmbedName)
	if errors.Is(err, dataaccess.ErrEmbedNotFound) {
		return &UserError{Message: messages.ErrEmbedNotFound, Err: err}
	} else if err != nil {
		return fmt.Errorf("error loading embed: %w", err)
	}

	p := embeds.NewPlaceholders(InteractionUser(i), opt.Label, m.guildName(i.GuildID))
	return r.EphemeralEmbed(embeds.Render(tmpl, p), embeds.LinkButtons(tmpl))
}

// openTicket creates the ticket channel for a ticket option and posts its opening messages.
func (m *Manager) openTicket(ctx context.Context, i *discordgo.Interaction, opt *entities.Option) (*discordgo.Channel, error) {
	user := InteractionUser(i)
	if user == nil {
		return nil, errors.New("interaction has no user")
	}

	l := m.l.With(
		slog.String(logging.KeyGuildID, i.GuildID),
		slog.String(logging.KeyUserID, user.ID),
		slog.String(logging.KeyPanel, opt.PanelName),
		slog.String(logging.KeyOption, opt.ID),
	)

	prefix := ChannelPrefix(opt)
	categoryID := m.resolveCategory(i, opt)

	if opt.Ticket.Limit > 0 {
		open, err := m.countOpen(i.GuildID, categoryID, prefix, user.ID)
		if err != nil {
			return nil, asPermissionError(fmt.Errorf("error counting open tickets: %w", err))
		}
		if open >= opt.Ticket.Limit {
			TicketsRejected.WithLabelValues(opt.PanelName).Inc()
			return nil, NewUserError(messages.ErrTicketLimit, opt.Ticket.Limit, opt.Label)
		}
	}

	settings, err := m.settings.LoadSettings(ctx, i.GuildID)
	if err != nil {
		return nil, fmt.Errorf("error loading settings: %w", err)
	}

	link := Linkage{PanelName: opt.PanelName, OwnerID: user.ID}
	ch, err := m.s.GuildChannelCreate(i.GuildID, discordgo.GuildChannelCreateData{
		Name:     TicketChannelName(prefix, user.Username),
		Type:     discordgo.ChannelTypeGuildText,
		Topic:    link.String(),
		ParentID: categoryID,
		PermissionOverwrites: openOverwrites(
			i.GuildID, user.ID, m.botID(), settings.SupportTeamRoleID.String(),
		),
	}, fmt.Sprintf("Ticket opened by %s (%s)", user.Username, user.ID))
	if err != nil {
		return nil, asPermissionError(fmt.Errorf("error creating ticket channel: %w", err))
	}

	l = l.With(slog.String(logging.KeyChannelID, ch.ID))
	l.Info("Ticket opened")
	TicketsOpened.WithLabelValues(opt.PanelName).Inc()

	tmpl := opt.Ticket.Message
	if tmpl.IsEmpty() {
		tmpl = entities.DefaultTicketMessage()
	}

	p := embeds.NewPlaceholders(user, opt.Label, m.guildName(i.GuildID))
	if _, err := m.s.ChannelMessageSend(ch.ID, &discordgo.MessageSend{
		Content: user.Mention(),
		Embeds:  []*discordgo.MessageEmbed{embeds.Render(tmpl, p)},
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Users: []string{user.ID},
		},
	}); err != nil {
		l.Error("Error sending ticket message", slog.String(logging.KeyError, err.Error()))
	}

	ref := CloseRef{OwnerID: user.ID, GuildID: i.GuildID, PanelName: opt.PanelName}
	if _, err := m.s.ChannelMessageSend(ch.ID, CloseControl(ref)); err != nil {
		l.Error("Error sending close control", slog.String(logging.KeyError, err.Error()))
	}

	return ch, nil
}

// resolveCategory returns the category a new ticket channel is created in: the configured category when it
// still exists, otherwise the category of the channel the panel was used in.
func (m *Manager) resolveCategory(i *discordgo.Interaction, opt *entities.Option) string {
	if id := opt.Ticket.CategoryID; !id.IsZero() {
		ch, err := m.s.Channel(id.String())
		if err == nil && ch.Type == discordgo.ChannelTypeGuildCategory {
			return ch.ID
		}
		m.l.Warn("Configured ticket category not found, using the panel category",
			slog.String(logging.KeyGuildID, i.GuildID),
			slog.String(logging.KeyOption, opt.ID),
			slog.String(logging.KeyChannelID, id.String()))
	}

	origin, err := m.s.Channel(i.ChannelID)
	if err != nil {
		return ""
	}
	return origin.ParentID
}

// countOpen counts the ticket channels in a category that carry the prefix and that the user can see. Closed
// tickets are renamed and so no longer match.
func (m *Manager) countOpen(guildID, categoryID, prefix, userID string) (int, error) {
	channels, err := m.s.GuildChannels(guildID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, ch := range channels {
		if ch == nil || ch.ParentID != categoryID || !strings.HasPrefix(ch.Name, prefix) {
			continue
		}
		if canView(ch, userID) {
			count++
		}
	}
	return count, nil
}
