package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketpanel/pkg/entities"
	"github.com/Jacobbrewer1/ticketpanel/pkg/messages"
	"github.com/Jacobbrewer1/ticketpanel/pkg/tickets"
)

// commandArgs are the options of an invoked sub command.
type commandArgs struct {
	// path is the space separated chain of sub command group and sub command names.
	path string

	opts map[string]*discordgo.ApplicationCommandInteractionDataOption
}

// parseCommandArgs descends through sub command groups and sub commands and collects the options of the leaf.
func parseCommandArgs(options []*discordgo.ApplicationCommandInteractionDataOption) *commandArgs {
	names := make([]string, 0, 2)
	for len(options) == 1 &&
		(options[0].Type == discordgo.ApplicationCommandOptionSubCommandGroup ||
			options[0].Type == discordgo.ApplicationCommandOptionSubCommand) {
		names = append(names, options[0].Name)
		options = options[0].Options
	}

	args := &commandArgs{
		path: strings.Join(names, " "),
		opts: make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options)),
	}
	for _, o := range options {
		args.opts[o.Name] = o
	}
	return args
}

// String returns a string option, trimmed, or an empty string.
func (c *commandArgs) String(name string) string {
	o, ok := c.opts[name]
	if !ok {
		return ""
	}
	s, _ := o.Value.(string)
	return strings.TrimSpace(s)
}

// Int returns an integer option and whether it was given.
func (c *commandArgs) Int(name string) (int, bool) {
	o, ok := c.opts[name]
	if !ok {
		return 0, false
	}
	// Numbers arrive as float64 from the JSON payload.
	switch v := o.Value.(type) {
	case float64:
		return int(v), true
	case int64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

// Bool returns a boolean option, or false.
func (c *commandArgs) Bool(name string) bool {
	o, ok := c.opts[name]
	if !ok {
		return false
	}
	b, _ := o.Value.(bool)
	return b
}

// ID returns the id of a channel, role or user option.
func (c *commandArgs) ID(name string) string {
	return c.String(name)
}

func isAdmin(m *discordgo.Member) bool {
	return m != nil && m.Permissions&discordgo.PermissionAdministrator == discordgo.PermissionAdministrator
}

// actor returns the user that invoked an interaction.
func actor(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// discordError turns a missing permission error from Discord into an error the user can act on.
func discordError(err error) error {
	if tickets.IsMissingPermission(err) {
		return &tickets.UserError{Message: messages.ErrBotMissingPermission, Err: err}
	}
	return err
}

// applyEmbedContent copies the title, description and colour options onto a template. Options that were not
// given leave the template unchanged. A literal "\n" in the description becomes a new line.
func applyEmbedContent(t *entities.EmbedTemplate, args *commandArgs) {
	if v := args.String("title"); v != "" {
		t.Title = v
	}
	if v := args.String("description"); v != "" {
		t.Description = strings.ReplaceAll(v, `\n`, "\n")
	}
	if v := args.String("color"); v != "" {
		t.Color = v
	}
}

// clearValue given as a footer, image or thumbnail removes it.
const clearValue = "none"

// applyEmbedMedia copies the footer, image and thumbnail options onto a template. Image and thumbnail must be
// http or https URLs. Nothing is changed when a URL is rejected.
func applyEmbedMedia(t *entities.EmbedTemplate, args *commandArgs) error {
	media := []struct {
		opt string
		dst *string
	}{
		{opt: "image", dst: &t.ImageURL},
		{opt: "thumbnail", dst: &t.ThumbnailURL},
	}
	for _, m := range media {
		if v := args.String(m.opt); v != "" && !strings.EqualFold(v, clearValue) && !validURL(v) {
			return &tickets.UserError{Message: messages.ErrInvalidURL}
		}
	}

	if v := args.String("footer"); v != "" {
		t.FooterText = clearable(v)
	}
	for _, m := range media {
		if v := args.String(m.opt); v != "" {
			*m.dst = clearable(v)
		}
	}
	return nil
}

func clearable(v string) string {
	if strings.EqualFold(v, clearValue) {
		return ""
	}
	return v
}

// addField appends a field to a template. A literal "\n" in the value becomes a new line.
func addField(t *entities.EmbedTemplate, name, value string, inline bool) error {
	if name == "" || value == "" {
		return &tickets.UserError{Message: messages.ErrFieldIncomplete}
	}
	if len(t.Fields) >= maxEmbedFields {
		return &tickets.UserError{Message: messages.ErrEmbedTooManyFields}
	}
	t.Fields = append(t.Fields, &entities.Field{
		Name:   name,
		Value:  strings.ReplaceAll(value, `\n`, "\n"),
		Inline: inline,
	})
	return nil
}

// removeField removes the field at a position counted from 1.
func removeField(t *entities.EmbedTemplate, pos int) error {
	if pos < 1 || pos > len(t.Fields) {
		return &tickets.UserError{Message: messages.ErrFieldNotFound}
	}
	t.Fields = slices.Delete(t.Fields, pos-1, pos)
	return nil
}

// targetTextChannel returns the text channel named by the channel option, or the channel the interaction was
// used in.
func targetTextChannel(a IApp, i *discordgo.InteractionCreate, args *commandArgs) (*discordgo.Channel, error) {
	channelID := args.ID("channel")
	if channelID == "" {
		channelID = i.ChannelID
	}

	ch, err := a.Discord().Channel(channelID)
	if err != nil {
		return nil, discordError(fmt.Errorf("error getting channel %s: %w", channelID, err))
	}
	if ch.Type != discordgo.ChannelTypeGuildText {
		return nil, &tickets.UserError{Message: messages.ErrNotTextChannel}
	}
	return ch, nil
}
