package main

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketpanel/pkg/dataaccess"
	"github.com/Jacobbrewer1/ticketpanel/pkg/tickets"
	"github.com/stretchr/testify/require"
)

const (
	testGuildID    = "100"
	testLobbyID    = "101"
	testCategoryID = "102"
	testAdminID    = "200"
	testMemberID   = "201"
)

// fakeDiscord is the part of a Discord session the command processors use. Calling anything else panics.
type fakeDiscord struct {
	tickets.Session

	channels  map[string]*discordgo.Channel
	sent      map[string][]*discordgo.MessageSend
	responses []*discordgo.InteractionResponse
	followups []*discordgo.WebhookParams
}

func newFakeDiscord() *fakeDiscord {
	return &fakeDiscord{
		channels: map[string]*discordgo.Channel{
			testLobbyID:    {ID: testLobbyID, GuildID: testGuildID, Name: "lobby", Type: discordgo.ChannelTypeGuildText},
			testCategoryID: {ID: testCategoryID, GuildID: testGuildID, Name: "Tickets", Type: discordgo.ChannelTypeGuildCategory},
		},
		sent: make(map[string][]*discordgo.MessageSend),
	}
}

func (f *fakeDiscord) BotUser() *discordgo.User {
	return &discordgo.User{ID: "1", Username: "ticketpanel", Bot: true}
}

func (f *fakeDiscord) Guild(guildID string) (*discordgo.Guild, error) {
	return &discordgo.Guild{ID: guildID, Name: "Test Guild"}, nil
}

func (f *fakeDiscord) Channel(channelID string) (*discordgo.Channel, error) {
	ch, ok := f.channels[channelID]
	if !ok {
		return nil, errors.New("unknown channel")
	}
	return ch, nil
}

func (f *fakeDiscord) ChannelMessageSend(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	if _, ok := f.channels[channelID]; !ok {
		return nil, errors.New("unknown channel")
	}
	f.sent[channelID] = append(f.sent[channelID], data)
	return &discordgo.Message{ID: "300", ChannelID: channelID}, nil
}

func (f *fakeDiscord) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeDiscord) FollowupMessageCreate(_ *discordgo.Interaction, data *discordgo.WebhookParams) (*discordgo.Message, error) {
	f.followups = append(f.followups, data)
	return &discordgo.Message{ID: "301"}, nil
}

// reply is the last message sent in answer to an interaction.
type reply struct {
	content string
	embeds  []*discordgo.MessageEmbed
}

func (f *fakeDiscord) lastReply() reply {
	if n := len(f.followups); n > 0 {
		return reply{content: f.followups[n-1].Content, embeds: f.followups[n-1].Embeds}
	}
	if n := len(f.responses); n > 0 && f.responses[n-1].Data != nil {
		return reply{content: f.responses[n-1].Data.Content, embeds: f.responses[n-1].Data.Embeds}
	}
	return reply{}
}

type fakeApp struct {
	l        *slog.Logger
	d        *fakeDiscord
	panels   dataaccess.PanelDal
	embeds   dataaccess.EmbedDal
	settings dataaccess.SettingsDal
	manager  *tickets.Manager
}

func (a *fakeApp) Log() *slog.Logger                { return a.l }
func (a *fakeApp) Discord() tickets.Session         { return a.d }
func (a *fakeApp) Tickets() *tickets.Manager        { return a.manager }
func (a *fakeApp) Panels() dataaccess.PanelDal      { return a.panels }
func (a *fakeApp) Embeds() dataaccess.EmbedDal      { return a.embeds }
func (a *fakeApp) Settings() dataaccess.SettingsDal { return a.settings }

type botHarness struct {
	t   *testing.T
	ctx context.Context
	app *fakeApp
	d   *fakeDiscord
}

func newBotHarness(t *testing.T) *botHarness {
	kv, err := dataaccess.NewFileKV(t.TempDir())
	require.NoError(t, err)

	l := testLogger()
	d := newFakeDiscord()
	app := &fakeApp{
		l:        l,
		d:        d,
		panels:   dataaccess.NewPanelDal(l, kv),
		embeds:   dataaccess.NewEmbedDal(l, kv),
		settings: dataaccess.NewSettingsDal(l, kv),
	}
	app.manager = tickets.NewManager(l, d, app.panels, app.embeds, app.settings, nil)

	return &botHarness{
		t:   t,
		ctx: context.Background(),
		app: app,
		d:   d,
	}
}

func adminMember() *discordgo.Member {
	return &discordgo.Member{
		User:        &discordgo.User{ID: testAdminID, Username: "admin"},
		Permissions: discordgo.PermissionAdministrator,
	}
}

func plainMember() *discordgo.Member {
	return &discordgo.Member{
		User: &discordgo.User{ID: testMemberID, Username: "member"},
	}
}

func arg(name string, value any) *discordgo.ApplicationCommandInteractionDataOption {
	o := &discordgo.ApplicationCommandInteractionDataOption{Name: name, Value: value}
	switch value.(type) {
	case bool:
		o.Type = discordgo.ApplicationCommandOptionBoolean
	case float64:
		o.Type = discordgo.ApplicationCommandOptionInteger
	default:
		o.Type = discordgo.ApplicationCommandOptionString
	}
	return o
}

// commandOptions nests options under the sub command group and sub command named by path.
func commandOptions(path string, options ...*discordgo.ApplicationCommandInteractionDataOption) []*discordgo.ApplicationCommandInteractionDataOption {
	names := strings.Fields(path)
	for idx := len(names) - 1; idx >= 0; idx-- {
		typ := discordgo.ApplicationCommandOptionSubCommand
		if idx < len(names)-1 {
			typ = discordgo.ApplicationCommandOptionSubCommandGroup
		}
		options = []*discordgo.ApplicationCommandInteractionDataOption{{
			Name:    names[idx],
			Type:    typ,
			Options: options,
		}}
	}
	return options
}

func commandInteraction(member *discordgo.Member, name, path string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:        "400",
		Type:      discordgo.InteractionApplicationCommand,
		GuildID:   testGuildID,
		ChannelID: testLobbyID,
		Member:    member,
		Data: discordgo.ApplicationCommandInteractionData{
			Name:    name,
			Options: commandOptions(path, options...),
		},
	}}
}

func componentInteraction(customID string, values ...string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:        "401",
		Type:      discordgo.InteractionMessageComponent,
		GuildID:   testGuildID,
		ChannelID: testLobbyID,
		Member:    plainMember(),
		Data: discordgo.MessageComponentInteractionData{
			CustomID: customID,
			Values:   values,
		},
	}}
}

// dispatch runs an interaction through the router and returns the last reply.
func (h *botHarness) dispatch(i *discordgo.InteractionCreate) reply {
	h.d.responses = nil
	h.d.followups = nil
	interactionHandler(h.app, slashCommands, componentProcessors)(i)
	return h.d.lastReply()
}

// admin runs a command as an administrator.
func (h *botHarness) admin(name, path string, options ...*discordgo.ApplicationCommandInteractionDataOption) reply {
	return h.dispatch(commandInteraction(adminMember(), name, path, options...))
}
