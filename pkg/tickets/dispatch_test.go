package tickets

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketpanel/pkg/entities"
	"github.com/stretchr/testify/require"
)

func buttonIDs(t *testing.T, rows []discordgo.MessageComponent) []string {
	t.Helper()
	ids := make([]string, 0)
	for _, r := range rows {
		row, ok := r.(discordgo.ActionsRow)
		require.True(t, ok)
		require.LessOrEqual(t, len(row.Components), 5)
		for _, c := range row.Components {
			btn, ok := c.(discordgo.Button)
			require.True(t, ok)
			ids = append(ids, btn.CustomID)
		}
	}
	return ids
}

func TestComponents_NoOptions(t *testing.T) {
	require.Nil(t, Components("support", entities.NewPanel("Support", "")))
	require.Nil(t, Components("support", nil))

	p := entities.NewPanel("Support", "")
	p.Style = entities.PanelStyleDropdown
	require.Nil(t, Components("support", p))
}

func TestComponents_Buttons(t *testing.T) {
	p := testPanel("support", "aaaa1111", "bbbb2222")
	p.Options[0].Emoji = "🎫"

	rows := Components("support", p)
	require.Len(t, rows, 1)
	require.Equal(t, []string{"panel_option:aaaa1111", "panel_option:bbbb2222"}, buttonIDs(t, rows))

	btn := rows[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	require.Equal(t, "Label aaaa1111", btn.Label)
	require.Equal(t, discordgo.PrimaryButton, btn.Style)
	require.Equal(t, "🎫", btn.Emoji.Name)
}

func TestComponents_ButtonRows(t *testing.T) {
	ids := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		ids = append(ids, fmt.Sprintf("%08x", i))
	}

	rows := Components("support", testPanel("support", ids[:7]...))
	require.Len(t, rows, 2)
	require.Len(t, buttonIDs(t, rows), 7)

	rows = Components("support", testPanel("support", ids...))
	require.Len(t, rows, 5)
	require.Len(t, buttonIDs(t, rows), 25)
}

func TestComponents_Dropdown(t *testing.T) {
	p := testPanel("support", "aaaa1111", "bbbb2222")
	p.Style = entities.PanelStyleDropdown
	p.Options[1].Description = "Questions about payments"

	rows := Components("support", p)
	require.Len(t, rows, 1)

	row := rows[0].(discordgo.ActionsRow)
	require.Len(t, row.Components, 1)
	menu, ok := row.Components[0].(discordgo.SelectMenu)
	require.True(t, ok)
	require.Equal(t, "panel_dropdown:support", menu.CustomID)
	require.Len(t, menu.Options, 2)
	require.Equal(t, "aaaa1111", menu.Options[0].Value)
	require.Equal(t, "Questions about payments", menu.Options[1].Description)
}

func TestComponents_DropdownWithOneOption(t *testing.T) {
	p := testPanel("support", "aaaa1111")
	p.Style = entities.PanelStyleDropdown

	rows := Components("support", p)
	require.Equal(t, []string{"panel_option:aaaa1111"}, buttonIDs(t, rows))
}

func TestComponents_ResolveBack(t *testing.T) {
	p := testPanel("support", "aaaa1111", "bbbb2222", "cccc3333")
	panels := map[string]*entities.Panel{"support": p}

	for _, id := range buttonIDs(t, Components("support", p)) {
		prefix, value := ParseCustomID(id)
		require.Equal(t, OptionButtonPrefix, prefix)

		name, opt := FindOption(panels, value)
		require.Equal(t, "support", name)
		require.NotNil(t, opt)
		require.Equal(t, value, opt.ID)
	}
}

func TestPanelMessage(t *testing.T) {
	p := testPanel("support", "aaaa1111")
	p.Title = "Need help?"

	msg := PanelMessage("support", p)
	require.Len(t, msg.Embeds, 1)
	require.Equal(t, "Need help?", msg.Embeds[0].Title)
	require.Len(t, msg.Components, 1)
}

func TestParseCustomID(t *testing.T) {
	prefix, value := ParseCustomID("panel_option:aaaa1111")
	require.Equal(t, "panel_option", prefix)
	require.Equal(t, "aaaa1111", value)

	prefix, value = ParseCustomID("panel_dropdown:a:b")
	require.Equal(t, "panel_dropdown", prefix)
	require.Equal(t, "a:b", value)

	prefix, value = ParseCustomID("panel_dropdown")
	require.Equal(t, "panel_dropdown", prefix)
	require.Empty(t, value)
}

func TestCloseButtonID(t *testing.T) {
	ref := CloseRef{OwnerID: "175928847299117063", GuildID: "900000000000000001", PanelName: "support"}

	id := CloseButtonID(ref)
	require.Equal(t, "ticket_close:175928847299117063:900000000000000001:support", id)

	got, ok := ParseCloseButtonID(id)
	require.True(t, ok)
	require.Equal(t, ref, got)
}

func TestCloseButtonID_LongPanelName(t *testing.T) {
	ref := CloseRef{OwnerID: "175928847299117063", GuildID: "900000000000000001", PanelName: strings.Repeat("p", 64)}

	id := CloseButtonID(ref)
	require.LessOrEqual(t, len(id), 100)

	got, ok := ParseCloseButtonID(id)
	require.True(t, ok)
	require.Equal(t, ref.OwnerID, got.OwnerID)
	require.Empty(t, got.PanelName)
}

func TestParseCloseButtonID(t *testing.T) {
	got, ok := ParseCloseButtonID(LegacyCloseButtonID)
	require.True(t, ok)
	require.Equal(t, CloseRef{}, got)

	_, ok = ParseCloseButtonID("panel_option:aaaa1111")
	require.False(t, ok)

	got, ok = ParseCloseButtonID("ticket_close:42:1:a:b")
	require.True(t, ok)
	require.Equal(t, "a:b", got.PanelName)
}

func TestCloseControl(t *testing.T) {
	msg := CloseControl(CloseRef{OwnerID: "42", GuildID: "1", PanelName: "support"})
	require.Len(t, msg.Components, 1)

	btn := msg.Components[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	require.Equal(t, discordgo.DangerButton, btn.Style)
	require.Equal(t, "ticket_close:42:1:support", btn.CustomID)
}
