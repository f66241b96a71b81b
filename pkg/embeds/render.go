package embeds

import (
	"strings"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketpanel/pkg/entities"
)

// Discord embed limits.
const (
	maxTitle       = 256
	maxDescription = 4096
	maxFieldName   = 256
	maxFieldValue  = 1024
	maxFooter      = 2048
	maxAuthor      = 256
	maxFields      = 25
	maxButtonLabel = 80
	maxButtonsRow  = 5
	maxButtonRows  = 5

	// zeroWidthSpace stands in for empty field names and values, which Discord rejects.
	zeroWidthSpace = "\u200b"
)

// Placeholders are the values substituted into a template when it is rendered.
type Placeholders struct {
	// UserMention replaces {user}.
	UserMention string

	// Username replaces {username}.
	Username string

	// Option replaces {option}.
	Option string

	// Guild replaces {guild}.
	Guild string
}

// NewPlaceholders creates the placeholders for a user acting on an option in a guild.
func NewPlaceholders(user *discordgo.User, option, guild string) *Placeholders {
	p := &Placeholders{
		Option: option,
		Guild:  guild,
	}
	if user != nil {
		p.UserMention = user.Mention()
		p.Username = user.Username
	}
	return p
}

// Apply substitutes the placeholders in s. A nil receiver returns s unchanged.
func (p *Placeholders) Apply(s string) string {
	if p == nil || !strings.Contains(s, "{") {
		return s
	}
	return strings.NewReplacer(
		"{user}", p.UserMention,
		"{username}", p.Username,
		"{option}", p.Option,
		"{guild}", p.Guild,
	).Replace(s)
}

// Render builds a message embed from a template. Placeholders are applied to the title, description, footer
// text and every field name and value.
func Render(t *entities.EmbedTemplate, p *Placeholders) *discordgo.MessageEmbed {
	if t == nil {
		t = new(entities.EmbedTemplate)
	}

	embed := &discordgo.MessageEmbed{
		Type:        discordgo.EmbedTypeRich,
		Title:       truncate(p.Apply(t.Title), maxTitle),
		Description: truncate(p.Apply(t.Description), maxDescription),
		Color:       ParseColor(t.Color),
	}

	if t.AuthorName != "" {
		embed.Author = &discordgo.MessageEmbedAuthor{
			Name:    truncate(t.AuthorName, maxAuthor),
			URL:     t.AuthorURL,
			IconURL: t.AuthorIcon,
		}
	}

	if t.FooterText != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text:    truncate(p.Apply(t.FooterText), maxFooter),
			IconURL: t.FooterIcon,
		}
	}

	if t.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: t.ImageURL}
	}

	if t.ThumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: t.ThumbnailURL}
	}

	for _, f := range t.Fields {
		if f == nil {
			continue
		}
		if len(embed.Fields) == maxFields {
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   orZeroWidth(truncate(p.Apply(f.Name), maxFieldName)),
			Value:  orZeroWidth(truncate(p.Apply(f.Value), maxFieldValue)),
			Inline: f.Inline,
		})
	}

	return embed
}

// LinkButtons renders the link buttons of a template, five to a row.
func LinkButtons(t *entities.EmbedTemplate) []discordgo.MessageComponent {
	if t == nil {
		return nil
	}

	buttons := make([]discordgo.MessageComponent, 0, len(t.Buttons))
	for _, b := range t.Buttons {
		if b == nil || b.URL == "" {
			continue
		}
		btn := discordgo.Button{
			Label: truncate(b.Label, maxButtonLabel),
			Style: discordgo.LinkButton,
			URL:   b.URL,
		}
		if emoji, ok := ParseEmoji(b.Emoji); ok {
			btn.Emoji = emoji
		}
		buttons = append(buttons, btn)
	}
	return Rows(buttons)
}

// Rows splits components into action rows of at most five, keeping at most five rows.
func Rows(components []discordgo.MessageComponent) []discordgo.MessageComponent {
	rows := make([]discordgo.MessageComponent, 0)
	for start := 0; start < len(components) && len(rows) < maxButtonRows; start += maxButtonsRow {
		end := start + maxButtonsRow
		if end > len(components) {
			end = len(components)
		}
		rows = append(rows, discordgo.ActionsRow{Components: components[start:end]})
	}
	if len(rows) == 0 {
		return nil
	}
	return rows
}

func orZeroWidth(s string) string {
	if strings.TrimSpace(s) == "" {
		return zeroWidthSpace
	}
	return s
}

// truncate shortens s to at most n runes, ending with an ellipsis when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	return truncate(s, n)
}
