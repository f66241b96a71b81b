package main

import (
	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketpanel/pkg/entities"
	"github.com/Jacobbrewer1/ticketpanel/pkg/tickets"
)

const (
	// TicketCmdName is the command for configuring ticket panels.
	TicketCmdName = "ticket"

	// EmbedCmdName is the command for managing saved embeds.
	EmbedCmdName = "embed"
)

var (
	adminPermission int64 = discordgo.PermissionAdministrator

	minZero  = 0.0
	minOne   = 1.0
	maxLimit = 25.0

	textChannelTypes = []discordgo.ChannelType{discordgo.ChannelTypeGuildText}
	categoryTypes    = []discordgo.ChannelType{discordgo.ChannelTypeGuildCategory}

	styleChoices = []*discordgo.ApplicationCommandOptionChoice{
		{Name: "Buttons", Value: string(entities.PanelStyleButtons)},
		{Name: "Dropdown", Value: string(entities.PanelStyleDropdown)},
	}

	optionTypeChoices = []*discordgo.ApplicationCommandOptionChoice{
		{Name: "Open a ticket", Value: string(entities.OptionTypeTicket)},
		{Name: "Show an embed", Value: string(entities.OptionTypeEmbed)},
	}
)

func stringOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Name:        name,
		Type:        discordgo.ApplicationCommandOptionString,
		Description: description,
		Required:    required,
	}
}

func panelNameOption() *discordgo.ApplicationCommandOption {
	o := stringOption("panel", "The name of the panel.", true)
	o.MaxLength = 64
	return o
}

func embedNameOption() *discordgo.ApplicationCommandOption {
	o := stringOption("name", "The name of the embed.", true)
	o.MaxLength = 64
	return o
}

func channelOption(name, description string, required bool, types []discordgo.ChannelType) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Name:         name,
		Type:         discordgo.ApplicationCommandOptionChannel,
		Description:  description,
		Required:     required,
		ChannelTypes: types,
	}
}

func subCommand(name, description string, options ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Name:        name,
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Description: description,
		Options:     options,
	}
}

func subCommandGroup(name, description string, options ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Name:        name,
		Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
		Description: description,
		Options:     options,
	}
}

// embedContentOptions are the options shared by commands that edit embed content.
func embedContentOptions() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		stringOption("title", "The title. Supports {user}, {username}, {option} and {guild}.", false),
		stringOption("description", "The description. Use \\n for new lines.", false),
		stringOption("color", "The colour as hex, e.g. #5865F2.", false),
	}
}

// embedMediaOptions are the footer and image options shared by commands that edit embeds.
func embedMediaOptions() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		stringOption("footer", "The footer text. Use none to remove it.", false),
		stringOption("image", "The image URL. Use none to remove it.", false),
		stringOption("thumbnail", "The thumbnail URL. Use none to remove it.", false),
	}
}

func fieldPositionOption(name string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Name:        name,
		Type:        discordgo.ApplicationCommandOptionInteger,
		Description: "The position of the field, starting at 1.",
		Required:    required,
		MinValue:    &minOne,
		MaxValue:    maxLimit,
	}
}

func boolOption(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Name:        name,
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Description: description,
	}
}

var ticketCmd = &discordgo.ApplicationCommand{
	Name:                     TicketCmdName,
	Type:                     discordgo.ChatApplicationCommand,
	Description:              "Configure ticket panels.",
	DefaultMemberPermissions: &adminPermission,
	Options: []*discordgo.ApplicationCommandOption{
		subCommandGroup("panel", "Manage ticket panels.",
			subCommand("create", "Create a new panel.", append([]*discordgo.ApplicationCommandOption{
				panelNameOption(),
				{
					Name:        "style",
					Type:        discordgo.ApplicationCommandOptionString,
					Description: "How the options are shown.",
					Choices:     styleChoices,
				},
			}, embedContentOptions()...)...),
			subCommand("edit", "Edit the embed of a panel.", append(append([]*discordgo.ApplicationCommandOption{
				panelNameOption(),
			}, embedContentOptions()...), embedMediaOptions()...)...),
			subCommand("add-field", "Add a field to the embed of a panel.",
				panelNameOption(),
				stringOption("field-name", "The name of the field.", true),
				stringOption("value", "The value of the field. Use \\n for new lines.", true),
				boolOption("inline", "Show the field inline."),
			),
			subCommand("remove-field", "Remove a field from the embed of a panel.",
				panelNameOption(),
				fieldPositionOption("index", true),
			),
			subCommand("delete", "Delete a panel.", panelNameOption()),
			subCommand("list", "List the panels of this server."),
			subCommand("send", "Post a panel.",
				panelNameOption(),
				channelOption("channel", "The channel to post in. Defaults to this channel.", false, textChannelTypes),
			),
			subCommand("style", "Choose how the options of a panel are shown.",
				panelNameOption(),
				&discordgo.ApplicationCommandOption{
					Name:        "style",
					Type:        discordgo.ApplicationCommandOptionString,
					Description: "How the options are shown.",
					Required:    true,
					Choices:     styleChoices,
				},
			),
			subCommand("add-option", "Add an option to a panel.",
				panelNameOption(),
				stringOption("label", "The label of the option.", true),
				&discordgo.ApplicationCommandOption{
					Name:        "type",
					Type:        discordgo.ApplicationCommandOptionString,
					Description: "What the option does.",
					Choices:     optionTypeChoices,
				},
				stringOption("description", "Shown under the label in dropdowns.", false),
				stringOption("emoji", "A unicode or custom emoji.", false),
				stringOption("embed", "The saved embed shown by embed options.", false),
				channelOption("category", "The category tickets are created in.", false, categoryTypes),
				stringOption("prefix", "The channel name prefix. Defaults to the label.", false),
				&discordgo.ApplicationCommandOption{
					Name:        "limit",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Description: "Open tickets allowed per user. 0 is unlimited.",
					MinValue:    &minZero,
					MaxValue:    maxLimit,
				},
			),
			subCommand("remove-option", "Remove an option from a panel.",
				panelNameOption(),
				stringOption("option", "The id of the option.", true),
			),
			subCommand("ticket-message", "Set the message posted in new tickets of an option.", append(append(append([]*discordgo.ApplicationCommandOption{
				panelNameOption(),
				stringOption("option", "The id of the option.", true),
			}, embedContentOptions()...), embedMediaOptions()...),
				stringOption("field-name", "The name of a field to add.", false),
				stringOption("field-value", "The value of the field to add.", false),
				boolOption("field-inline", "Show the added field inline."),
				fieldPositionOption("remove-field", false),
			)...),
			subCommand("preview", "Preview a panel.", panelNameOption()),
		),
		subCommand("set-transcript", "Set the channel transcripts of a panel are sent to.",
			panelNameOption(),
			channelOption("channel", "The transcript channel.", true, textChannelTypes),
		),
		subCommand("view-config", "Show the configuration of the panels.",
			func() *discordgo.ApplicationCommandOption {
				o := panelNameOption()
				o.Required = false
				return o
			}(),
		),
		subCommandGroup("support-team", "Manage the support team.",
			subCommand("set", "Set the support team role.", &discordgo.ApplicationCommandOption{
				Name:        "role",
				Type:        discordgo.ApplicationCommandOptionRole,
				Description: "The support team role.",
				Required:    true,
			}),
			subCommand("view", "Show the support team role."),
			subCommand("grant-access", "Give the support team access to every existing ticket."),
		),
	},
}

var embedCmd = &discordgo.ApplicationCommand{
	Name:                     EmbedCmdName,
	Type:                     discordgo.ChatApplicationCommand,
	Description:              "Manage saved embeds.",
	DefaultMemberPermissions: &adminPermission,
	Options: []*discordgo.ApplicationCommandOption{
		subCommand("create", "Create an embed, or edit the content of an existing one.", append(append(append([]*discordgo.ApplicationCommandOption{
			embedNameOption(),
		}, embedContentOptions()...), embedMediaOptions()...),
			stringOption("author", "The author name. Use none to remove it.", false),
		)...),
		subCommand("add-field", "Add a field to an embed.",
			embedNameOption(),
			stringOption("field-name", "The name of the field.", true),
			stringOption("value", "The value of the field. Use \\n for new lines.", true),
			boolOption("inline", "Show the field inline."),
		),
		subCommand("remove-field", "Remove a field from an embed.",
			embedNameOption(),
			fieldPositionOption("index", true),
		),
		subCommand("add-button", "Add a link button to an embed.",
			embedNameOption(),
			stringOption("label", "The button label.", true),
			stringOption("url", "The link.", true),
			stringOption("emoji", "A unicode or custom emoji.", false),
		),
		subCommand("show", "Post an embed.",
			embedNameOption(),
			channelOption("channel", "The channel to post in. Defaults to this channel.", false, textChannelTypes),
		),
		subCommand("list", "List the saved embeds."),
		subCommand("delete", "Delete an embed.", embedNameOption()),
	},
}

// slashCommands routes slash commands to their processors.
var slashCommands = map[string]*slashCommand{
	TicketCmdName: {
		def:       ticketCmd,
		adminOnly: true,
		processors: map[string]slashProcessor{
			"panel create":              panelCreate,
			"panel edit":                panelEdit,
			"panel add-field":           panelAddField,
			"panel remove-field":        panelRemoveField,
			"panel delete":              panelDelete,
			"panel list":                panelList,
			"panel send":                panelSend,
			"panel style":               panelStyle,
			"panel add-option":          panelAddOption,
			"panel remove-option":       panelRemoveOption,
			"panel ticket-message":      panelTicketMessage,
			"panel preview":             panelPreview,
			"set-transcript":            setTranscript,
			"view-config":               viewConfig,
			"support-team set":          supportTeamSet,
			"support-team view":         supportTeamView,
			"support-team grant-access": supportTeamGrantAccess,
		},
	},
	EmbedCmdName: {
		def:       embedCmd,
		adminOnly: true,
		processors: map[string]slashProcessor{
			"create":       embedCreate,
			"add-field":    embedAddField,
			"remove-field": embedRemoveField,
			"add-button":   embedAddButton,
			"show":         embedShow,
			"list":         embedList,
			"delete":       embedDelete,
		},
	},
}

// componentProcessors routes message components by the prefix of their custom id.
var componentProcessors = map[string]componentProcessor{
	tickets.OptionButtonPrefix:  optionButtonProcessor,
	tickets.DropdownPrefix:      dropdownProcessor,
	tickets.ClosePrefix:         closeProcessor,
	tickets.LegacyCloseButtonID: closeProcessor,
}

// commandDefinitions are the slash commands registered in every guild.
func commandDefinitions() []*discordgo.ApplicationCommand {
	defs := make([]*discordgo.ApplicationCommand, 0, len(slashCommands))
	for _, name := range []string{TicketCmdName, EmbedCmdName} {
		defs = append(defs, slashCommands[name].def)
	}
	return defs
}
