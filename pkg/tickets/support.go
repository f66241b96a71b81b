package tickets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketpanel/pkg/logging"
)

// GrantSupportAccess gives a role support access to every existing ticket channel of a guild. New tickets get
// the configured support role when they are created. It returns the number of channels updated.
func (m *Manager) GrantSupportAccess(ctx context.Context, guildID, roleID string, actor *discordgo.User) (int, error) {
	channels, err := m.s.GuildChannels(guildID)
	if err != nil {
		return 0, asPermissionError(fmt.Errorf("error getting channels: %w", err))
	}

	reason := "Support team access granted"
	if actor != nil {
		reason = fmt.Sprintf("Support team access granted by %s (%s)", actor.Username, actor.ID)
	}

	updated := 0
	var errs []error
	for _, ch := range channels {
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		if ch == nil || ch.Type != discordgo.ChannelTypeGuildText {
			continue
		}
		link, ok := ParseLinkage(ch.Topic)
		if !ok {
			continue
		}

		allow, deny := supportAllow, int64(0)
		if isClosed(ch, link.OwnerID) {
			allow, deny = closedOwnerAllow, discordgo.PermissionSendMessages
		}

		if err := m.s.ChannelPermissionSet(ch.ID, roleID, discordgo.PermissionOverwriteTypeRole, allow, deny, reason); err != nil {
			m.l.Warn("Error granting support access",
				slog.String(logging.KeyGuildID, guildID),
				slog.String(logging.KeyChannelID, ch.ID),
				slog.String(logging.KeyError, err.Error()))
			errs = append(errs, err)
			continue
		}
		updated++
	}

	if updated == 0 && len(errs) > 0 {
		return 0, asPermissionError(fmt.Errorf("error granting support access: %w", errors.Join(errs...)))
	}
	return updated, nil
}
