package main

import (
	"testing"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/stretchr/testify/require"
)

func TestParseCommandArgs(t *testing.T) {
	options := []*discordgo.ApplicationCommandInteractionDataOption{{
		Name: "panel",
		Type: discordgo.ApplicationCommandOptionSubCommandGroup,
		Options: []*discordgo.ApplicationCommandInteractionDataOption{{
			Name: "add-option",
			Type: discordgo.ApplicationCommandOptionSubCommand,
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: "panel", Type: discordgo.ApplicationCommandOptionString, Value: " support "},
				{Name: "limit", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(2)},
				{Name: "category", Type: discordgo.ApplicationCommandOptionChannel, Value: "123"},
				{Name: "inline", Type: discordgo.ApplicationCommandOptionBoolean, Value: true},
			},
		}},
	}}

	args := parseCommandArgs(options)
	require.Equal(t, "panel add-option", args.path)
	require.Equal(t, "support", args.String("panel"))
	require.Equal(t, "123", args.ID("category"))
	require.True(t, args.Bool("inline"))

	limit, ok := args.Int("limit")
	require.True(t, ok)
	require.Equal(t, 2, limit)

	_, ok = args.Int("missing")
	require.False(t, ok)
	require.Empty(t, args.String("missing"))
	require.False(t, args.Bool("missing"))
}

func TestParseCommandArgs_TopLevelSubCommand(t *testing.T) {
	args := parseCommandArgs([]*discordgo.ApplicationCommandInteractionDataOption{{
		Name: "view-config",
		Type: discordgo.ApplicationCommandOptionSubCommand,
	}})
	require.Equal(t, "view-config", args.path)
	require.Empty(t, args.opts)
}

func TestIsAdmin(t *testing.T) {
	require.True(t, isAdmin(&discordgo.Member{Permissions: discordgo.PermissionAdministrator}))
	require.True(t, isAdmin(&discordgo.Member{Permissions: discordgo.PermissionAdministrator | discordgo.PermissionManageChannels}))
	require.False(t, isAdmin(&discordgo.Member{Permissions: discordgo.PermissionManageChannels}))
	require.False(t, isAdmin(nil))
}
