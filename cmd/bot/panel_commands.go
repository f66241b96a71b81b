package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketpanel/pkg/custom"
	"github.com/Jacobbrewer1/ticketpanel/pkg/dataaccess"
	"github.com/Jacobbrewer1/ticketpanel/pkg/embeds"
	"github.com/Jacobbrewer1/ticketpanel/pkg/entities"
	"github.com/Jacobbrewer1/ticketpanel/pkg/logging"
	"github.com/Jacobbrewer1/ticketpanel/pkg/messages"
	"github.com/Jacobbrewer1/ticketpanel/pkg/tickets"
	"github.com/samber/lo"
)

const (
	maxPanelOptions  = 25
	maxListedPanels  = 25
	defaultPanelDesc = "Select an option below to open a ticket."
)

// loadPanel returns the named panel, reporting a missing panel to the user.
func loadPanel(ctx context.Context, a IApp, guildID, name string) (*entities.Panel, error) {
	p, err := a.Panels().GetPanel(ctx, guildID, name)
	if errors.Is(err, dataaccess.ErrPanelNotFound) {
		return nil, &tickets.UserError{Message: messages.ErrPanelNotFound, Err: err}
	} else if err != nil {
		return nil, fmt.Errorf("error getting panel: %w", err)
	}
	return p, nil
}

func panelCreate(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, args *commandArgs) error {
	name := args.String("panel")
	if !tickets.ValidPanelName(name) {
		return &tickets.UserError{Message: messages.ErrPanelNameInvalid}
	}

	_, err := a.Panels().GetPanel(ctx, i.GuildID, name)
	if err == nil {
		return &tickets.UserError{Message: messages.ErrPanelExists}
	} else if !errors.Is(err, dataaccess.ErrPanelNotFound) {
		return fmt.Errorf("error getting panel: %w", err)
	}

	panel := entities.NewPanel(name, defaultPanelDesc)
	applyEmbedContent(&panel.EmbedTemplate, args)
	if style := entities.PanelStyle(args.String("style")); style.Valid() {
		panel.Style = style
	}

	if err := a.Panels().SavePanel(ctx, i.GuildID, name, panel); err != nil {
		return fmt.Errorf("error saving panel: %w", err)
	}

	a.Log().Info("Panel created",
		slog.String(logging.KeyGuildID, i.GuildID),
		slog.String(logging.KeyPanel, name))
	return r.Ephemeral(fmt.Sprintf(messages.PanelCreated, name))
}

func panelDelete(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, args *commandArgs) error {
	name := args.String("panel")
	err := a.Panels().DeletePanel(ctx, i.GuildID, name)
	if errors.Is(err, dataaccess.ErrPanelNotFound) {
		return &tickets.UserError{Message: messages.ErrPanelNotFound, Err: err}
	} else if err != nil {
		return fmt.Errorf("error deleting panel: %w", err)
	}

	a.Log().Info("Panel deleted",
		slog.String(logging.KeyGuildID, i.GuildID),
		slog.String(logging.KeyPanel, name))
	return r.Ephemeral(fmt.Sprintf(messages.PanelDeleted, name))
}

func panelList(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, _ *commandArgs) error {
	panels, err := a.Panels().LoadPanels(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("error loading panels: %w", err)
	}
	if len(panels) == 0 {
		return r.Ephemeral(messages.NoPanels)
	}

	names := lo.Keys(panels)
	slices.Sort(names)

	embed := &discordgo.MessageEmbed{
		Title: "🎫 Ticket Panels",
		Color: embeds.ColorBlurple,
	}
	for _, name := range lo.Subset(names, 0, maxListedPanels) {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  name,
			Value: panelSummary(panels[name]),
		})
	}
	if len(names) > maxListedPanels {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d more not shown", len(names)-maxListedPanels),
		}
	}
	return r.EphemeralEmbed(embed, nil)
}

// panelSummary is the one paragraph description of a panel used in listings.
func panelSummary(p *entities.Panel) string {
	transcripts := "Not set"
	if !p.TranscriptChannelID.IsZero() {
		transcripts = "<#" + p.TranscriptChannelID.String() + ">"
	}
	return fmt.Sprintf("Style: **%s**\nOptions: **%d**\nTranscripts: %s",
		p.EffectiveStyle(), len(p.Options), transcripts)
}

func panelSend(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, args *commandArgs) error {
	name := args.String("panel")
	panel, err := loadPanel(ctx, a, i.GuildID, name)
	if err != nil {
		return err
	}
	if len(panel.Options) == 0 {
		return &tickets.UserError{Message: messages.ErrPanelNoOptions}
	}

	ch, err := targetTextChannel(a, i, args)
	if err != nil {
		return err
	}

	if _, err := a.Discord().ChannelMessageSend(ch.ID, tickets.PanelMessage(name, panel)); err != nil {
		return discordError(fmt.Errorf("error sending panel: %w", err))
	}
	return r.Ephemeral(fmt.Sprintf(messages.PanelSent, name, ch.ID))
}

func panelStyle(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, args *commandArgs) error {
	name := args.String("panel")
	panel, err := loadPanel(ctx, a, i.GuildID, name)
	if err != nil {
		return err
	}

	style := entities.PanelStyle(args.String("style"))
	if !style.Valid() {
		style = entities.PanelStyleButtons
	}
	panel.Style = style

	if err := a.Panels().SavePanel(ctx, i.GuildID, name, panel); err != nil {
		return fmt.Errorf("error saving panel: %w", err)
	}
	return r.Ephemeral(fmt.Sprintf(messages.PanelStyleSet, name, style))
}

func panelEdit(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, args *commandArgs) error {
	name := args.String("panel")
	panel, err := loadPanel(ctx, a, i.GuildID, name)
	if err != nil {
		return err
	}

	applyEmbedContent(&panel.EmbedTemplate, args)
	if err := applyEmbedMedia(&panel.EmbedTemplate, args); err != nil {
		return err
	}

	if err := a.Panels().SavePanel(ctx, i.GuildID, name, panel); err != nil {
		return fmt.Errorf("error saving panel: %w", err)
	}

	a.Log().Info("Panel edited",
		slog.String(logging.KeyGuildID, i.GuildID),
		slog.String(logging.KeyPanel, name))
	return r.Ephemeral(fmt.Sprintf(messages.PanelUpdated, name))
}

func panelAddField(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, args *commandArgs) error {
	name := args.String("panel")
	panel, err := loadPanel(ctx, a, i.GuildID, name)
	if err != nil {
		return err
	}

	if err := addField(&panel.EmbedTemplate, args.String("field-name"), args.String("value"), args.Bool("inline")); err != nil {
		return err
	}

	if err := a.Panels().SavePanel(ctx, i.GuildID, name, panel); err != nil {
		return fmt.Errorf("error saving panel: %w", err)
	}
	return r.Ephemeral(fmt.Sprintf(messages.PanelFieldAdded, name))
}

func panelRemoveField(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, args *commandArgs) error {
	name := args.String("panel")
	panel, err := loadPanel(ctx, a, i.GuildID, name)
	if err != nil {
		return err
	}

	pos, _ := args.Int("index")
	if err := removeField(&panel.EmbedTemplate, pos); err != nil {
		return err
	}

	if err := a.Panels().SavePanel(ctx, i.GuildID, name, panel); err != nil {
		return fmt.Errorf("error saving panel: %w", err)
	}
	return r.Ephemeral(fmt.Sprintf(messages.PanelFieldRemoved, pos, name))
}

func panelAddOption(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, args *commandArgs) error {
	name := args.String("panel")
	panel, err := loadPanel(ctx, a, i.GuildID, name)
	if err != nil {
		return err
	}
	if len(panel.Options) >= maxPanelOptions {
		return &tickets.UserError{Message: messages.ErrPanelTooManyOptions}
	}

	id, err := a.Panels().NewOptionID(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("error generating option id: %w", err)
	}

	label := args.String("label")
	var opt *entities.Option
	switch entities.OptionType(args.String("type")) {
	case entities.OptionTypeEmbed:
		embedName := args.String("embed")
		if embedName == "" {
			return &tickets.UserError{Message: messages.ErrEmbedTypeNeedsEmbed}
		}
		exists, err := a.Embeds().EmbedExists(ctx, i.GuildID, embedName)
		if err != nil {
			return fmt.Errorf("error checking embed: %w", err)
		} else if !exists {
			return &tickets.UserError{Message: messages.ErrEmbedNotFound}
		}
		opt = entities.NewEmbedOption(id, name, label, embedName)
	default:
		opt = entities.NewTicketOption(id, name, label)
		opt.Ticket.CategoryID = custom.Snowflake(args.ID("category"))
		opt.Ticket.Prefix = args.String("prefix")
		if limit, ok := args.Int("limit"); ok {
			opt.Ticket.Limit = limit
		}
	}
	opt.Description = args.String("description")
	if emoji, ok := embeds.ParseEmoji(args.String("emoji")); ok {
		opt.Emoji = embeds.FormatEmoji(emoji)
	}

	if err := opt.Validate(); err != nil {
		return tickets.NewUserError(messages.ErrOptionInvalid, strings.TrimPrefix(err.Error(), entities.ErrInvalidOption.Error()+": "))
	}

	panel.Options = append(panel.Options, opt)
	if err := a.Panels().SavePanel(ctx, i.GuildID, name, panel); err != nil {
		return fmt.Errorf("error saving panel: %w", err)
	}

	a.Log().Info("Option added",
		slog.String(logging.KeyGuildID, i.GuildID),
		slog.String(logging.KeyPanel, name),
		slog.String(logging.KeyOption, id))
	return r.Ephemeral(fmt.Sprintf(messages.OptionAdded, label, id, name))
}

func panelRemoveOption(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, args *commandArgs) error {
	name := args.String("panel")
	panel, err := loadPanel(ctx, a, i.GuildID, name)
	if err != nil {
		return err
	}

	id := args.String("option")
	if !panel.RemoveOption(id) {
		return &tickets.UserError{Message: messages.ErrOptionNotFound}
	}

	if err := a.Panels().SavePanel(ctx, i.GuildID, name, panel); err != nil {
		return fmt.Errorf("error saving panel: %w", err)
	}
	return r.Ephemeral(fmt.Sprintf(messages.OptionRemoved, id, name))
}

func panelTicketMessage(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, args *commandArgs) error {
	name := args.String("panel")
	panel, err := loadPanel(ctx, a, i.GuildID, name)
	if err != nil {
		return err
	}

	id := args.String("option")
	opt := panel.OptionByID(id)
	if opt == nil {
		return &tickets.UserError{Message: messages.ErrOptionNotFound}
	}
	if opt.Ticket == nil {
		return &tickets.UserError{Message: messages.ErrNotTicketOption}
	}

	if opt.Ticket.Message == nil {
		opt.Ticket.Message = entities.DefaultTicketMessage()
	}
	msg := opt.Ticket.Message
	applyEmbedContent(msg, args)
	if err := applyEmbedMedia(msg, args); err != nil {
		return err
	}

	// Removal runs before the new field is added.
	if pos, ok := args.Int("remove-field"); ok {
		if err := removeField(msg, pos); err != nil {
			return err
		}
	}
	if fieldName, fieldValue := args.String("field-name"), args.String("field-value"); fieldName != "" || fieldValue != "" {
		if err := addField(msg, fieldName, fieldValue, args.Bool("field-inline")); err != nil {
			return err
		}
	}

	if err := a.Panels().SavePanel(ctx, i.GuildID, name, panel); err != nil {
		return fmt.Errorf("error saving panel: %w", err)
	}
	return r.Ephemeral(fmt.Sprintf(messages.TicketMessageSet, id))
}

func panelPreview(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, args *commandArgs) error {
	name := args.String("panel")
	panel, err := loadPanel(ctx, a, i.GuildID, name)
	if err != nil {
		return err
	}

	msg := tickets.PanelMessage(name, panel)
	return r.Message(&discordgo.InteractionResponseData{
		Embeds:     msg.Embeds,
		Components: msg.Components,
		Flags:      discordgo.MessageFlagsEphemeral,
	})
}
