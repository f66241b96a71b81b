package tickets

import (
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketpanel/pkg/dataaccess"
	"github.com/Jacobbrewer1/ticketpanel/pkg/logging"
	"github.com/Jacobbrewer1/ticketpanel/pkg/transcript"
)

// Manager runs the lifecycle of ticket channels. It keeps no state of its own: panels, embeds and settings are
// read from their stores on every call and the ticket state is read from the channel.
type Manager struct {
	// l is the logger.
	l *slog.Logger

	// s is the discord session.
	s Session

	panels   dataaccess.PanelDal
	embeds   dataaccess.EmbedDal
	settings dataaccess.SettingsDal

	// transcripts renders the history of closed tickets.
	transcripts *transcript.Generator

	// now is the clock.
	now func() time.Time
}

// NewManager creates a Manager.
func NewManager(
	l *slog.Logger,
	s Session,
	panels dataaccess.PanelDal,
	embeds dataaccess.EmbedDal,
	settings dataaccess.SettingsDal,
	transcripts *transcript.Generator,
) *Manager {
	return &Manager{
		l:           l,
		s:           s,
		panels:      panels,
		embeds:      embeds,
		settings:    settings,
		transcripts: transcripts,
		now:         time.Now,
	}
}

// guildName returns the name of a guild, or an empty string when it cannot be looked up.
func (m *Manager) guildName(guildID string) string {
	g, err := m.s.Guild(guildID)
	if err != nil {
		m.l.Warn("Error getting guild",
			slog.String(logging.KeyGuildID, guildID),
			slog.String(logging.KeyError, err.Error()))
		return ""
	}
	return g.Name
}

// lookupUser returns the user with the given id. Users that cannot be fetched are returned with only their id
// and a placeholder name.
func (m *Manager) lookupUser(userID string) *discordgo.User {
	if userID == "" {
		return &discordgo.User{Username: "unknown"}
	}
	u, err := m.s.User(userID)
	if err != nil || u == nil {
		m.l.Debug("Error getting user",
			slog.String(logging.KeyUserID, userID),
			slog.Any(logging.KeyError, err))
		return &discordgo.User{ID: userID, Username: "unknown"}
	}
	return u
}

func (m *Manager) botID() string {
	if u := m.s.BotUser(); u != nil {
		return u.ID
	}
	return ""
}

// InteractionUser returns the user that triggered an interaction, in a guild or a direct message.
func InteractionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}
