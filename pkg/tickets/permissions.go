package tickets

import (
	"strings"

	"github.com/Jacobbrewer1/discordgo"
)

const (
	ownerAllow int64 = discordgo.PermissionViewChannel |
		discordgo.PermissionSendMessages |
		discordgo.PermissionReadMessageHistory |
		discordgo.PermissionAttachFiles |
		discordgo.PermissionEmbedLinks

	closedOwnerAllow int64 = discordgo.PermissionViewChannel |
		discordgo.PermissionReadMessageHistory

	botAllow int64 = discordgo.PermissionViewChannel |
		discordgo.PermissionSendMessages |
		discordgo.PermissionReadMessageHistory |
		discordgo.PermissionManageChannels |
		discordgo.PermissionManageMessages |
		discordgo.PermissionEmbedLinks |
		discordgo.PermissionAttachFiles

	supportAllow int64 = discordgo.PermissionViewChannel |
		discordgo.PermissionSendMessages |
		discordgo.PermissionReadMessageHistory |
		discordgo.PermissionManageMessages |
		discordgo.PermissionManageChannels |
		discordgo.PermissionAttachFiles |
		discordgo.PermissionEmbedLinks
)

// openOverwrites are the permissions of a new ticket channel: only the owner, the bot and the support team can
// see it. The @everyone role shares the guild id.
func openOverwrites(guildID, ownerID, botID, supportRoleID string) []*discordgo.PermissionOverwrite {
	overwrites := []*discordgo.PermissionOverwrite{
		{ID: guildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
		{ID: ownerID, Type: discordgo.PermissionOverwriteTypeMember, Allow: ownerAllow},
	}
	if botID != "" {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID: botID, Type: discordgo.PermissionOverwriteTypeMember, Allow: botAllow,
		})
	}
	if supportRoleID != "" {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID: supportRoleID, Type: discordgo.PermissionOverwriteTypeRole, Allow: supportAllow,
		})
	}
	return overwrites
}

// closedOverwrites replace the permissions of a closed ticket. The owner keeps read access, the support team
// keeps read access and the bot keeps full control.
func closedOverwrites(guildID, ownerID, botID, supportRoleID string) []*discordgo.PermissionOverwrite {
	overwrites := []*discordgo.PermissionOverwrite{
		{ID: guildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
	}
	if ownerID != "" {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    ownerID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: closedOwnerAllow,
			Deny:  discordgo.PermissionSendMessages,
		})
	}
	if botID != "" {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID: botID, Type: discordgo.PermissionOverwriteTypeMember, Allow: botAllow,
		})
	}
	if supportRoleID != "" {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    supportRoleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: closedOwnerAllow,
			Deny:  discordgo.PermissionSendMessages,
		})
	}
	return overwrites
}

// memberOverwrite returns the member overwrite of a channel for a user, or nil.
func memberOverwrite(ch *discordgo.Channel, userID string) *discordgo.PermissionOverwrite {
	if ch == nil || userID == "" {
		return nil
	}
	for _, o := range ch.PermissionOverwrites {
		if o != nil && o.Type == discordgo.PermissionOverwriteTypeMember && o.ID == userID {
			return o
		}
	}
	return nil
}

// canView reports whether the channel grants the user view access through a member overwrite.
func canView(ch *discordgo.Channel, userID string) bool {
	o := memberOverwrite(ch, userID)
	return o != nil && o.Allow&discordgo.PermissionViewChannel != 0
}

// isClosed reports whether a ticket channel has already been closed.
func isClosed(ch *discordgo.Channel, ownerID string) bool {
	if o := memberOverwrite(ch, ownerID); o != nil && o.Deny&discordgo.PermissionSendMessages != 0 {
		return true
	}
	return ownerID == "" && strings.HasPrefix(ch.Name, closedPrefix)
}

// canClose reports whether the member may close a ticket owned by ownerID.
func canClose(member *discordgo.Member, userID, ownerID, supportRoleID string) bool {
	if ownerID != "" && userID == ownerID {
		return true
	}
	if member == nil {
		return false
	}
	if member.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	if supportRoleID == "" {
		return false
	}
	for _, r := range member.Roles {
		if r == supportRoleID {
			return true
		}
	}
	return false
}
