package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketpanel/pkg/dataaccess"
	"github.com/Jacobbrewer1/ticketpanel/pkg/embeds"
	"github.com/Jacobbrewer1/ticketpanel/pkg/entities"
	"github.com/Jacobbrewer1/ticketpanel/pkg/logging"
	"github.com/Jacobbrewer1/ticketpanel/pkg/messages"
	"github.com/Jacobbrewer1/ticketpanel/pkg/tickets"
)

const (
	maxEmbedFields  = 25
	maxEmbedButtons = 25
)

// loadEmbed returns the named embed, reporting a missing embed to the user.
func loadEmbed(ctx context.Context, a IApp, guildID, name string) (*entities.EmbedTemplate, error) {
	t, err := a.Embeds().LoadEmbed(ctx, guildID, name)
	if errors.Is(err, dataaccess.ErrEmbedNotFound) {
		return nil, &tickets.UserError{Message: messages.ErrSavedEmbedNotFound, Err: err}
	} else if err != nil {
		return nil, fmt.Errorf("error loading embed: %w", err)
	}
	return t, nil
}

// validURL reports whether s is an absolute http or https URL.
func validURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func embedCreate(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, args *commandArgs) error {
	name := args.String("name")
	if !tickets.ValidPanelName(name) {
		return &tickets.UserError{Message: messages.ErrPanelNameInvalid}
	}

	t, err := a.Embeds().LoadEmbed(ctx, i.GuildID, name)
	if errors.Is(err, dataaccess.ErrEmbedNotFound) {
		t = new(entities.EmbedTemplate)
	} else if err != nil {
		return fmt.Errorf("error loading embed: %w", err)
	}

	applyEmbedContent(t, args)
	if err := applyEmbedMedia(t, args); err != nil {
		return err
	}
	if v := args.String("author"); v != "" {
		t.AuthorName = clearable(v)
	}
	if t.IsEmpty() {
		t.Title = name
	}

	if err := a.Embeds().SaveEmbed(ctx, i.GuildID, name, t); err != nil {
		return fmt.Errorf("error saving embed: %w", err)
	}

	a.Log().Info("Embed saved",
		slog.String(logging.KeyGuildID, i.GuildID),
		slog.String("embed", name))
	return r.Ephemeral(fmt.Sprintf(messages.EmbedSaved, name))
}

func embedAddField(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, args *commandArgs) error {
	name := args.String("name")
	t, err := loadEmbed(ctx, a, i.GuildID, name)
	if err != nil {
		return err
	}
	if err := addField(t, args.String("field-name"), args.String("value"), args.Bool("inline")); err != nil {
		return err
	}

	if err := a.Embeds().SaveEmbed(ctx, i.GuildID, name, t); err != nil {
		return fmt.Errorf("error saving embed: %w", err)
	}
	return r.Ephemeral(fmt.Sprintf(messages.EmbedFieldAdded, name))
}

func embedRemoveField(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, args *commandArgs) error {
	name := args.String("name")
	t, err := loadEmbed(ctx, a, i.GuildID, name)
	if err != nil {
		return err
	}

	pos, _ := args.Int("index")
	if err := removeField(t, pos); err != nil {
		return err
	}

	if err := a.Embeds().SaveEmbed(ctx, i.GuildID, name, t); err != nil {
		return fmt.Errorf("error saving embed: %w", err)
	}
	return r.Ephemeral(fmt.Sprintf(messages.EmbedFieldRemoved, pos, name))
}

func embedAddButton(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, args *commandArgs) error {
	name := args.String("name")
	link := args.String("url")
	if !validURL(link) {
		return &tickets.UserError{Message: messages.ErrInvalidURL}
	}

	t, err := loadEmbed(ctx, a, i.GuildID, name)
	if err != nil {
		return err
	}
	if len(t.Buttons) >= maxEmbedButtons {
		return &tickets.UserError{Message: messages.ErrEmbedTooManyButtons}
	}

	btn := &entities.LinkButton{
		Label: args.String("label"),
		URL:   link,
	}
	if emoji, ok := embeds.ParseEmoji(args.String("emoji")); ok {
		btn.Emoji = embeds.FormatEmoji(emoji)
	}
	t.Buttons = append(t.Buttons, btn)

	if err := a.Embeds().SaveEmbed(ctx, i.GuildID, name, t); err != nil {
		return fmt.Errorf("error saving embed: %w", err)
	}
	return r.Ephemeral(fmt.Sprintf(messages.EmbedButtonAdded, name))
}

func embedShow(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, args *commandArgs) error {
	name := args.String("name")
	t, err := loadEmbed(ctx, a, i.GuildID, name)
	if err != nil {
		return err
	}

	ch, err := targetTextChannel(a, i, args)
	if err != nil {
		return err
	}

	var guildName string
	if g, err := a.Discord().Guild(i.GuildID); err == nil {
		guildName = g.Name
	}

	msg := &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embeds.Render(t, embeds.NewPlaceholders(actor(i), name, guildName))},
		Components: embeds.LinkButtons(t),
	}
	if _, err := a.Discord().ChannelMessageSend(ch.ID, msg); err != nil {
		return discordError(fmt.Errorf("error sending embed: %w", err))
	}
	return r.Ephemeral(fmt.Sprintf(messages.EmbedSent, name, ch.ID))
}

func embedList(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, _ *commandArgs) error {
	names, err := a.Embeds().ListEmbeds(ctx, i.GuildID)
	if err != nil {
		return fmt.Errorf("error listing embeds: %w", err)
	}
	if len(names) == 0 {
		return r.Ephemeral(messages.NoEmbeds)
	}

	var sb strings.Builder
	for _, n := range names {
		sb.WriteString("• `" + n + "`\n")
	}
	return r.EphemeralEmbed(&discordgo.MessageEmbed{
		Title:       "📋 Saved Embeds",
		Description: embeds.Truncate(sb.String(), 4096),
		Color:       embeds.ColorBlurple,
	}, nil)
}

func embedDelete(ctx context.Context, a IApp, r *tickets.Responder, i *discordgo.InteractionCreate, args *commandArgs) error {
	name := args.String("name")
	err := a.Embeds().DeleteEmbed(ctx, i.GuildID, name)
	if errors.Is(err, dataaccess.ErrEmbedNotFound) {
		return &tickets.UserError{Message: messages.ErrSavedEmbedNotFound, Err: err}
	} else if err != nil {
		return fmt.Errorf("error deleting embed: %w", err)
	}
	return r.Ephemeral(fmt.Sprintf(messages.EmbedDeleted, name))
}
