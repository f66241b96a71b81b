package main

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketpanel/pkg/custom"
	"github.com/Jacobbrewer1/ticketpanel/pkg/embeds"
	"github.com/Jacobbrewer1/ticketpanel/pkg/entities"
	"github.com/Jacobbrewer1/ticketpanel/pkg/logging"
	"github.com/Jacobbrewer1/ticketpanel/pkg/messages"
	"github.com/Jacobbrewer1/ticketpanel/pkg/tickets"
	"github.com/samber/lo"
)

const maxFieldValue = 1024

func setTranscript(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, args *commandArgs) error {
	name := args.String("panel")
	panel, err := loadPanel(ctx, a, i.GuildID, name)
	if err != nil {
		return err
	}

	ch, err := targetTextChannel(a, i, args)
	if err != nil {
		return err
	}

	panel.TranscriptChannelID = custom.Snowflake(ch.ID)
	if err := a.Panels().SavePanel(ctx, i.GuildID, name, panel); err != nil {
		return fmt.Errorf("error saving panel: %w", err)
	}
	return r.Ephemeral(fmt.Sprintf(messages.TranscriptChannelSet, name, ch.ID))
}

func viewConfig(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, args *commandArgs) error {
	settings, err := a.Settings().LoadSettings(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("error loading settings: %w", err)
	}

	panels, err := a.Panels().LoadPanels(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("error loading panels: %w", err)
	}

	names := lo.Keys(panels)
	if name := args.String("panel"); name != "" {
		if _, ok := panels[name]; !ok {
			return &tickets.UserError{Message: messages.ErrPanelNotFound}
		}
		names = []string{name}
	}
	slices.Sort(names)

	support := "Not set"
	if !settings.SupportTeamRoleID.IsZero() {
		support = "<@&" + settings.SupportTeamRoleID.String() + ">"
	}

	embed := &discordgo.MessageEmbed{
		Title: "⚙️ Ticket Configuration",
		Color: embeds.ColorBlurple,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Support Team", Value: support},
		},
	}
	if len(names) == 0 {
		embed.Description = messages.NoPanels
	}

	// One field is taken by the support team.
	for _, name := range lo.Subset(names, 0, maxListedPanels-1) {
		p := panels[name]
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  name,
			Value: embeds.Truncate(panelSummary(p)+"\n"+optionLines(p), maxFieldValue),
		})
	}
	return r.EphemeralEmbed(embed, nil)
}

// optionLines lists the options of a panel, one per line.
func optionLines(p *entities.Panel) string {
	lines := make([]string, 0, len(p.Options))
	for _, o := range p.Options {
		line := fmt.Sprintf("`%s` %s %s", o.ID, o.Emoji, o.Label)
		switch o.Type() {
		case entities.OptionTypeEmbed:
			line += fmt.Sprintf(" (embed **%s**)", o.Embed.EmbedName)
		default:
			if o.Ticket.Limit > 0 {
				line += fmt.Sprintf(" (limit %d)", o.Ticket.Limit)
			}
			if !o.Ticket.CategoryID.IsZero() {
				line += " in <#" + o.Ticket.CategoryID.String() + ">"
			}
		}
		lines = append(lines, strings.Join(strings.Fields(line), " "))
	}
	return strings.Join(lines, "\n")
}

func supportTeamSet(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, args *commandArgs) error {
	settings, err := a.Settings().LoadSettings(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("error loading settings: %w", err)
	}

	roleID := args.ID("role")
	settings.SupportTeamRoleID = custom.Snowflake(roleID)
	if err := a.Settings().SaveSettings(ctx, i.GuildID, settings); err != nil {
		return fmt.Errorf("error saving settings: %w", err)
	}

	a.Log().Info("Support team set",
		slog.String(logging.KeyGuildID, i.GuildID),
		slog.String("role_id", roleID))
	return r.Ephemeral(fmt.Sprintf(messages.SupportTeamSet, roleID))
}

func supportTeamView(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, _ *commandArgs) error {
	settings, err := a.Settings().LoadSettings(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("error loading settings: %w", err)
	}
	if settings.SupportTeamRoleID.IsZero() {
		return &tickets.UserError{Message: messages.ErrNoSupportTeam}
	}
	return r.Ephemeral(fmt.Sprintf(messages.SupportTeamView, settings.SupportTeamRoleID))
}

func supportTeamGrantAccess(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, _ *commandArgs) error {
	settings, err := a.Settings().LoadSettings(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("error loading settings: %w", err)
	}
	if settings.SupportTeamRoleID.IsZero() {
		return &tickets.UserError{Message: messages.ErrNoSupportTeam}
	}

	// Updating every ticket can take longer than the initial response window.
	if err := r.Defer(); err != nil {
		return fmt.Errorf("error deferring interaction: %w", err)
	}

	roleID := settings.SupportTeamRoleID.String()
	n, err := a.Tickets().GrantSupportAccess(ctx, i.GuildID, roleID, actor(i))
	if err != nil {
		return err
	}
	return r.Ephemeral(fmt.Sprintf(messages.SupportAccessGranted, roleID, n))
}
