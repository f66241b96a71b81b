package tickets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketpanel/pkg/dataaccess"
	"github.com/Jacobbrewer1/ticketpanel/pkg/embeds"
	"github.com/Jacobbrewer1/ticketpanel/pkg/logging"
	"github.com/Jacobbrewer1/ticketpanel/pkg/messages"
	"github.com/Jacobbrewer1/ticketpanel/pkg/transcript"
	"github.com/prometheus/client_golang/prometheus"
)

// maxSummaryParticipants is the number of participants listed on the transcript summary.
const maxSummaryParticipants = 15

// Close closes the ticket the interaction was used in. The channel topic is the source of truth for the owner
// and panel; ref is only used for what the topic lacks. A transcript is generated and delivered to the panel's
// transcript channel before the channel is renamed and locked. Nothing is changed when the transcript channel
// is missing.
func (m *Manager) Close(ctx context.Context, r *Responder, i *discordgo.Interaction, ref CloseRef) error {
	if err := r.Defer(); err != nil {
		return fmt.Errorf("error deferring interaction: %w", err)
	}

	ch, err := m.s.Channel(i.ChannelID)
	if err != nil {
		return asPermissionError(fmt.Errorf("error getting ticket channel: %w", err))
	}

	link, _ := ParseLinkage(ch.Topic)
	if link.OwnerID == "" && isSnowflake(ref.OwnerID) {
		link.OwnerID = ref.OwnerID
	}
	if link.PanelName == "" {
		link.PanelName = ref.PanelName
	}
	if link.PanelName == "" {
		return &UserError{Message: messages.ErrNotTicketChannel}
	}

	actor := InteractionUser(i)
	if actor == nil {
		return errors.New("interaction has no user")
	}

	l := m.l.With(
		slog.String(logging.KeyGuildID, i.GuildID),
		slog.String(logging.KeyChannelID, ch.ID),
		slog.String(logging.KeyUserID, actor.ID),
		slog.String(logging.KeyPanel, link.PanelName),
	)

	settings, err := m.settings.LoadSettings(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("error loading settings: %w", err)
	}
	supportRoleID := settings.SupportTeamRoleID.String()

	if !canClose(i.Member, actor.ID, link.OwnerID, supportRoleID) {
		return &UserError{Message: messages.ErrNoClosePermission}
	}
	if isClosed(ch, link.OwnerID) {
		return &UserError{Message: messages.ErrAlreadyClosed}
	}

	panel, err := m.panels.GetPanel(ctx, i.GuildID, link.PanelName)
	if errors.Is(err, dataaccess.ErrPanelNotFound) {
		return &UserError{Message: messages.ErrNoTranscriptChannel, Err: err}
	} else if err != nil {
		return fmt.Errorf("error loading panel: %w", err)
	}
	if panel.TranscriptChannelID.IsZero() {
		return &UserError{Message: messages.ErrNoTranscriptChannel}
	}

	transcriptChannel, err := m.s.Channel(panel.TranscriptChannelID.String())
	if err != nil {
		return &UserError{Message: messages.ErrTranscriptNotFound, Err: err}
	}

	if err := r.Ephemeral(messages.TranscriptGenerating); err != nil {
		l.Warn("Error sending progress message", slog.String(logging.KeyError, err.Error()))
	}

	timer := prometheus.NewTimer(TranscriptDuration)
	owner := m.lookupUser(link.OwnerID)
	meta := &transcript.Meta{
		Channel:   ch,
		Owner:     owner,
		GuildName: m.guildName(i.GuildID),
		PanelName: link.PanelName,
		CreatedAt: channelCreated(ch),
		ClosedAt:  m.now(),
		ClosedBy:  actor,
		Roles:     m.roleNames(i.GuildID),
		Channels:  m.channelNames(i.GuildID),
	}

	t, err := m.transcripts.Generate(ctx, meta)
	if err != nil {
		return asPermissionError(fmt.Errorf("error generating transcript: %w", err))
	}

	if _, err := m.s.ChannelMessageSend(transcriptChannel.ID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{summaryEmbed(meta, t)},
		Files: []*discordgo.File{{
			Name:        fmt.Sprintf("transcript-%s-%d.html", ch.Name, meta.ClosedAt.Unix()),
			ContentType: "text/html",
			Reader:      bytes.NewReader(t.Document),
		}},
	}); err != nil {
		return asPermissionError(fmt.Errorf("error delivering transcript: %w", err))
	}
	timer.ObserveDuration()

	overwrites := closedOverwrites(i.GuildID, link.OwnerID, m.botID(), supportRoleID)
	if _, err := m.s.ChannelEdit(ch.ID, &discordgo.ChannelEdit{
		Name:                 ClosedChannelName(owner.Username),
		PermissionOverwrites: overwrites,
	}, fmt.Sprintf("Ticket closed by %s (%s)", actor.Username, actor.ID)); err != nil {
		return asPermissionError(fmt.Errorf("error locking ticket channel: %w", err))
	}

	l.Info("Ticket closed", slog.Int("messages", t.MessageCount))
	TicketsClosed.WithLabelValues(link.PanelName).Inc()

	return r.Ephemeral(fmt.Sprintf(messages.TicketClosed, transcriptChannel.ID))
}

// summaryEmbed is posted alongside the transcript file.
func summaryEmbed(meta *transcript.Meta, t *transcript.Transcript) *discordgo.MessageEmbed {
	mentions := make([]string, 0, maxSummaryParticipants+1)
	for idx, p := range t.Participants {
		if idx == maxSummaryParticipants {
			mentions = append(mentions, fmt.Sprintf("+%d more", len(t.Participants)-maxSummaryParticipants))
			break
		}
		mentions = append(mentions, p.Mention())
	}
	participants := strings.Join(mentions, "\n")
	if participants == "" {
		participants = "None"
	}

	return &discordgo.MessageEmbed{
		Title: "📄 Ticket Closed",
		Color: embeds.ColorBlurple,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Ticket Owner", Value: userMention(meta.Owner), Inline: true},
			{Name: "Panel", Value: embeds.Truncate(meta.PanelName, 1024), Inline: true},
			{Name: "Ticket Name", Value: meta.Channel.Name, Inline: true},
			{Name: "Duration", Value: transcript.FormatDuration(meta.ClosedAt.Sub(meta.CreatedAt)), Inline: true},
			{Name: "Created", Value: discordTimestamp(meta.CreatedAt), Inline: true},
			{Name: "Closed", Value: discordTimestamp(meta.ClosedAt), Inline: true},
			{Name: "Closed By", Value: userMention(meta.ClosedBy), Inline: true},
			{Name: "Messages", Value: fmt.Sprintf("%d", t.MessageCount), Inline: true},
			{Name: fmt.Sprintf("Participants (%d)", len(t.Participants)), Value: embeds.Truncate(participants, 1024)},
		},
		Timestamp: meta.ClosedAt.Format(time.RFC3339),
	}
}

// channelCreated returns the creation time of a channel, encoded in its id.
func channelCreated(ch *discordgo.Channel) time.Time {
	created, err := discordgo.SnowflakeTimestamp(ch.ID)
	if err != nil {
		return time.Time{}
	}
	return created
}

func (m *Manager) roleNames(guildID string) map[string]string {
	roles, err := m.s.GuildRoles(guildID)
	if err != nil {
		m.l.Debug("Error getting roles", slog.String(logging.KeyGuildID, guildID), slog.String(logging.KeyError, err.Error()))
		return nil
	}
	names := make(map[string]string, len(roles))
	for _, r := range roles {
		names[r.ID] = r.Name
	}
	return names
}

func (m *Manager) channelNames(guildID string) map[string]string {
	channels, err := m.s.GuildChannels(guildID)
	if err != nil {
		m.l.Debug("Error getting channels", slog.String(logging.KeyGuildID, guildID), slog.String(logging.KeyError, err.Error()))
		return nil
	}
	names := make(map[string]string, len(channels))
	for _, c := range channels {
		names[c.ID] = c.Name
	}
	return names
}

func userMention(u *discordgo.User) string {
	if u == nil || u.ID == "" {
		return "Unknown"
	}
	return u.Mention()
}

func discordTimestamp(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return fmt.Sprintf("<t:%d:F>", t.Unix())
}
