package tickets

import (
	"github.com/Jacobbrewer1/discordgo"
)

// Session is the part of the Discord API used to run tickets.
type Session interface {
	// BotUser returns the user the bot is logged in as.
	BotUser() *discordgo.User

	Guild(guildID string) (*discordgo.Guild, error)
	GuildRoles(guildID string) ([]*discordgo.Role, error)
	GuildChannels(guildID string) ([]*discordgo.Channel, error)
	Channel(channelID string) (*discordgo.Channel, error)
	User(userID string) (*discordgo.User, error)

	// GuildChannelCreate creates a channel. The reason is recorded in the audit log.
	GuildChannelCreate(guildID string, data discordgo.GuildChannelCreateData, reason string) (*discordgo.Channel, error)

	// ChannelEdit edits a channel. The reason is recorded in the audit log.
	ChannelEdit(channelID string, data *discordgo.ChannelEdit, reason string) (*discordgo.Channel, error)

	// ChannelPermissionSet creates or replaces a single permission overwrite.
	ChannelPermissionSet(channelID, targetID string, targetType discordgo.PermissionOverwriteType, allow, deny int64, reason string) error

	ChannelMessageSend(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error)
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string) ([]*discordgo.Message, error)

	InteractionRespond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	FollowupMessageCreate(i *discordgo.Interaction, data *discordgo.WebhookParams) (*discordgo.Message, error)
}

// realSession adapts a *discordgo.Session to Session.
type realSession struct {
	s *discordgo.Session
}

// NewSession wraps a discord session.
func NewSession(s *discordgo.Session) Session {
	return &realSession{s: s}
}

func (r *realSession) BotUser() *discordgo.User {
	if r.s.State == nil || r.s.State.User == nil {
		return nil
	}
	return r.s.State.User
}

func (r *realSession) Guild(guildID string) (*discordgo.Guild, error) {
	if r.s.State != nil {
		if g, err := r.s.State.Guild(guildID); err == nil {
			return g, nil
		}
	}
	return r.s.Guild(guildID)
}

func (r *realSession) GuildRoles(guildID string) ([]*discordgo.Role, error) {
	return r.s.GuildRoles(guildID)
}

func (r *realSession) GuildChannels(guildID string) ([]*discordgo.Channel, error) {
	return r.s.GuildChannels(guildID)
}

func (r *realSession) Channel(channelID string) (*discordgo.Channel, error) {
	return r.s.Channel(channelID)
}

func (r *realSession) User(userID string) (*discordgo.User, error) {
	return r.s.User(userID)
}

func (r *realSession) GuildChannelCreate(guildID string, data discordgo.GuildChannelCreateData, reason string) (*discordgo.Channel, error) {
	return r.s.GuildChannelCreateComplex(guildID, data, discordgo.WithAuditLogReason(reason))
}

func (r *realSession) ChannelEdit(channelID string, data *discordgo.ChannelEdit, reason string) (*discordgo.Channel, error) {
	return r.s.ChannelEditComplex(channelID, data, discordgo.WithAuditLogReason(reason))
}

func (r *realSession) ChannelPermissionSet(channelID, targetID string, targetType discordgo.PermissionOverwriteType, allow, deny int64, reason string) error {
	return r.s.ChannelPermissionSet(channelID, targetID, targetType, allow, deny, discordgo.WithAuditLogReason(reason))
}

func (r *realSession) ChannelMessageSend(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	return r.s.ChannelMessageSendComplex(channelID, data)
}

func (r *realSession) ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string) ([]*discordgo.Message, error) {
	return r.s.ChannelMessages(channelID, limit, beforeID, afterID, aroundID)
}

func (r *realSession) InteractionRespond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	return r.s.InteractionRespond(i, resp)
}

func (r *realSession) FollowupMessageCreate(i *discordgo.Interaction, data *discordgo.WebhookParams) (*discordgo.Message, error) {
	return r.s.FollowupMessageCreate(i, true, data)
}
