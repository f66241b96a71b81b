package embeds

import (
	"strings"
	"testing"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketpanel/pkg/entities"
	"github.com/stretchr/testify/require"
)

func TestRender_SubstitutesPlaceholders(t *testing.T) {
	tmpl := &entities.EmbedTemplate{
		Title:       "{option} Ticket",
		Description: "Hello {user} ({username}) from {guild}",
		Color:       "#ff0000",
		FooterText:  "{guild} support",
		ImageURL:    "https://example.com/i.png",
		Fields: []*entities.Field{
			{Name: "{option}", Value: "for {username}", Inline: true},
			{Name: "", Value: ""},
		},
	}

	user := &discordgo.User{ID: "42", Username: "alice"}
	got := Render(tmpl, NewPlaceholders(user, "General", "Acme"))

	require.Equal(t, "General Ticket", got.Title)
	require.Equal(t, "Hello <@42> (alice) from Acme", got.Description)
	require.Equal(t, 0xff0000, got.Color)
	require.Equal(t, "Acme support", got.Footer.Text)
	require.Equal(t, "https://example.com/i.png", got.Image.URL)
	require.Nil(t, got.Thumbnail)
	require.Len(t, got.Fields, 2)
	require.Equal(t, "General", got.Fields[0].Name)
	require.Equal(t, "for alice", got.Fields[0].Value)
	require.True(t, got.Fields[0].Inline)
	require.Equal(t, zeroWidthSpace, got.Fields[1].Name)

	// The template itself is not modified.
	require.Equal(t, "{option} Ticket", tmpl.Title)
}

func TestRender_NilPlaceholdersAndLimits(t *testing.T) {
	tmpl := &entities.EmbedTemplate{
		Title: strings.Repeat("a", 300) + "{user}",
	}
	for i := 0; i < 30; i++ {
		tmpl.Fields = append(tmpl.Fields, &entities.Field{Name: "n", Value: "v"})
	}

	got := Render(tmpl, nil)
	require.Len(t, []rune(got.Title), maxTitle)
	require.True(t, strings.HasSuffix(got.Title, "…"))
	require.Len(t, got.Fields, maxFields)
	require.Equal(t, ColorBlurple, got.Color)

	require.NotNil(t, Render(nil, nil))
}

func TestParseColor(t *testing.T) {
	tests := map[string]int{
		"":          ColorBlurple,
		"#FF0000":   0xff0000,
		"00ff00":    0x00ff00,
		"0x0000ff":  0x0000ff,
		"blue":      ColorBlurple,
		"#1234567":  ColorBlurple,
		"  #abcdef": 0xabcdef,
	}

	for input, want := range tests {
		require.Equal(t, want, ParseColor(input), input)
	}
}

func TestParseEmoji(t *testing.T) {
	tests := []struct {
		input  string
		want   discordgo.ComponentEmoji
		wantOK bool
	}{
		{input: "", wantOK: false},
		{input: "📦", want: discordgo.ComponentEmoji{Name: "📦"}, wantOK: true},
		{input: "<:order:123456789>", want: discordgo.ComponentEmoji{Name: "order", ID: "123456789"}, wantOK: true},
		{input: "<a:spin:42>", want: discordgo.ComponentEmoji{Name: "spin", ID: "42", Animated: true}, wantOK: true},
		{input: "<:broken>", wantOK: false},
		{input: "not an emoji", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseEmoji(tt.input)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.want, got)
		})
	}

	require.Equal(t, "<a:spin:42>", FormatEmoji(discordgo.ComponentEmoji{Name: "spin", ID: "42", Animated: true}))
	require.Equal(t, "📦", FormatEmoji(discordgo.ComponentEmoji{Name: "📦"}))
}

func TestLinkButtonsAndRows(t *testing.T) {
	tmpl := &entities.EmbedTemplate{}
	for i := 0; i < 7; i++ {
		tmpl.Buttons = append(tmpl.Buttons, &entities.LinkButton{Label: "Site", URL: "https://example.com", Emoji: "💰"})
	}
	tmpl.Buttons = append(tmpl.Buttons, &entities.LinkButton{Label: "No URL"})

	rows := LinkButtons(tmpl)
	require.Len(t, rows, 2)
	require.Len(t, rows[0].(discordgo.ActionsRow).Components, 5)
	require.Len(t, rows[1].(discordgo.ActionsRow).Components, 2)

	btn := rows[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	require.Equal(t, discordgo.LinkButton, btn.Style)
	require.Equal(t, "💰", btn.Emoji.Name)

	require.Nil(t, LinkButtons(&entities.EmbedTemplate{}))
	require.Nil(t, LinkButtons(nil))
}
