package tickets

import (
	"testing"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketpanel/pkg/entities"
	"github.com/stretchr/testify/require"
)

func testPanel(name string, ids ...string) *entities.Panel {
	p := entities.NewPanel(name, "")
	for _, id := range ids {
		p.Options = append(p.Options, entities.NewTicketOption(id, name, "Label "+id))
	}
	return p
}

func TestResolveOption(t *testing.T) {
	p := testPanel("support", "aaaa1111", "bbbb2222")

	tests := []struct {
		name string
		id   string
		want string
	}{
		{name: "by id", id: "bbbb2222", want: "bbbb2222"},
		{name: "legacy first", id: "legacy_0", want: "aaaa1111"},
		{name: "legacy second", id: "legacy_1", want: "bbbb2222"},
		{name: "legacy out of range", id: "legacy_2"},
		{name: "legacy not a number", id: "legacy_x"},
		{name: "unknown", id: "cccc3333"},
		{name: "empty", id: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveOption(p, tt.id)
			if tt.want == "" {
				require.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			require.Equal(t, tt.want, got.ID)
		})
	}
}

func TestResolveOption_NilPanel(t *testing.T) {
	require.Nil(t, ResolveOption(nil, "aaaa1111"))
}

func TestResolveOption_RemovedOption(t *testing.T) {
	p := testPanel("support", "aaaa1111", "bbbb2222")
	require.True(t, p.RemoveOption("aaaa1111"))

	require.Nil(t, ResolveOption(p, "aaaa1111"))
	require.Equal(t, "bbbb2222", ResolveOption(p, "legacy_0").ID)
}

func TestFindOption(t *testing.T) {
	panels := map[string]*entities.Panel{
		"support": testPanel("support", "aaaa1111"),
		"billing": testPanel("billing", "bbbb2222", "cccc3333"),
	}

	name, opt := FindOption(panels, "cccc3333")
	require.Equal(t, "billing", name)
	require.Equal(t, "cccc3333", opt.ID)

	name, opt = FindOption(panels, "aaaa1111")
	require.Equal(t, "support", name)
	require.Equal(t, "aaaa1111", opt.ID)

	name, opt = FindOption(panels, "dddd4444")
	require.Empty(t, name)
	require.Nil(t, opt)

	_, opt = FindOption(nil, "aaaa1111")
	require.Nil(t, opt)
}

func TestFindOption_Deterministic(t *testing.T) {
	panels := map[string]*entities.Panel{
		"zeta":  testPanel("zeta", "dup00000"),
		"alpha": testPanel("alpha", "dup00000"),
	}

	for i := 0; i < 10; i++ {
		name, _ := FindOption(panels, "dup00000")
		require.Equal(t, "alpha", name)
	}
}

func TestLegacyPanel(t *testing.T) {
	dropdown := func(title string) *entities.Panel {
		p := testPanel(title, "aaaa1111")
		p.Style = entities.PanelStyleDropdown
		return p
	}
	message := func(title string) *discordgo.Message {
		return &discordgo.Message{Embeds: []*discordgo.MessageEmbed{{Title: title}}}
	}

	tests := []struct {
		name   string
		panels map[string]*entities.Panel
		msg    *discordgo.Message
		want   string
	}{
		{
			name:   "title match",
			panels: map[string]*entities.Panel{"support": dropdown("Support"), "sales": dropdown("Sales")},
			msg:    message("Sales"),
			want:   "sales",
		},
		{
			name:   "title match on a buttons panel",
			panels: map[string]*entities.Panel{"support": dropdown("Support"), "sales": testPanel("Sales")},
			msg:    message("Sales"),
			want:   "sales",
		},
		{
			name:   "only dropdown panel",
			panels: map[string]*entities.Panel{"support": dropdown("Support"), "sales": testPanel("Sales")},
			want:   "support",
		},
		{
			name:   "unknown title falls back to the only dropdown",
			panels: map[string]*entities.Panel{"support": dropdown("Support"), "sales": testPanel("Sales")},
			msg:    message("Renamed"),
			want:   "support",
		},
		{
			name:   "ambiguous title",
			panels: map[string]*entities.Panel{"a": dropdown("Support"), "b": dropdown("Support")},
			msg:    message("Support"),
		},
		{
			name:   "several dropdowns",
			panels: map[string]*entities.Panel{"support": dropdown("Support"), "sales": dropdown("Sales")},
		},
		{
			name: "no panels",
			msg:  message("Support"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, LegacyPanel(tt.panels, tt.msg))
		})
	}
}

func TestIsLegacyOptionID(t *testing.T) {
	require.True(t, IsLegacyOptionID("legacy_0"))
	require.True(t, IsLegacyOptionID("legacy_12"))
	require.False(t, IsLegacyOptionID("legacy_"))
	require.False(t, IsLegacyOptionID("aaaa1111"))
}
