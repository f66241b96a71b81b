package tickets

import (
	"errors"
	"io"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/Jacobbrewer1/discordgo"
)

var errFakeNotFound = errors.New("not found")

type sentFile struct {
	Name    string
	Content []byte
}

type permissionSet struct {
	ChannelID string
	TargetID  string
	Allow     int64
	Deny      int64
}

// fakeSession is an in memory guild.
type fakeSession struct {
	mu sync.Mutex

	bot      *discordgo.User
	guild    *discordgo.Guild
	users    map[string]*discordgo.User
	roles    []*discordgo.Role
	channels map[string]*discordgo.Channel
	order    []string
	history  map[string][]*discordgo.Message
	files    map[string][]sentFile

	responses []*discordgo.InteractionResponse
	followups []*discordgo.WebhookParams
	permSets  []permissionSet
	reasons   []string

	createErr error
	nextID    uint64
}

func newFakeSession(guildID string) *fakeSession {
	s := &fakeSession{
		guild:    &discordgo.Guild{ID: guildID, Name: "Test Guild"},
		users:    make(map[string]*discordgo.User),
		channels: make(map[string]*discordgo.Channel),
		history:  make(map[string][]*discordgo.Message),
		files:    make(map[string][]sentFile),
		nextID:   1100000000000000000,
	}
	s.bot = s.addUser("TicketBot")
	s.bot.Bot = true
	return s
}

func (s *fakeSession) newID() string {
	s.nextID++
	return strconv.FormatUint(s.nextID, 10)
}

func (s *fakeSession) addUser(name string) *discordgo.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &discordgo.User{ID: s.newID(), Username: name}
	s.users[u.ID] = u
	return u
}

func (s *fakeSession) addChannel(name string, typ discordgo.ChannelType, parentID string) *discordgo.Channel {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := &discordgo.Channel{ID: s.newID(), GuildID: s.guild.ID, Name: name, Type: typ, ParentID: parentID}
	s.channels[ch.ID] = ch
	s.order = append(s.order, ch.ID)
	return ch
}

func (s *fakeSession) post(channelID string, author *discordgo.User, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[channelID] = append(s.history[channelID], &discordgo.Message{
		ID:        s.newID(),
		ChannelID: channelID,
		Author:    author,
		Content:   content,
		Timestamp: time.Now(),
	})
}

func (s *fakeSession) stored(channelID string) *discordgo.Channel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.channels[channelID]
}

func (s *fakeSession) ticketChannels() []*discordgo.Channel {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*discordgo.Channel
	for _, id := range s.order {
		if _, ok := ParseLinkage(s.channels[id].Topic); ok {
			out = append(out, s.channels[id])
		}
	}
	return out
}

func (s *fakeSession) messages(channelID string) []*discordgo.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history[channelID])
}

func (s *fakeSession) lastFollowup() *discordgo.WebhookParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.followups) == 0 {
		return nil
	}
	return s.followups[len(s.followups)-1]
}

func (s *fakeSession) BotUser() *discordgo.User {
	return s.bot
}

func (s *fakeSession) Guild(guildID string) (*discordgo.Guild, error) {
	if guildID != s.guild.ID {
		return nil, errFakeNotFound
	}
	return s.guild, nil
}

func (s *fakeSession) GuildRoles(string) ([]*discordgo.Role, error) {
	return s.roles, nil
}

func (s *fakeSession) GuildChannels(string) ([]*discordgo.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*discordgo.Channel, 0, len(s.order))
	for _, id := range s.order {
		c := *s.channels[id]
		out = append(out, &c)
	}
	return out, nil
}

func (s *fakeSession) Channel(channelID string) (*discordgo.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.channels[channelID]
	if !ok {
		return nil, errFakeNotFound
	}
	c := *ch
	return &c, nil
}

func (s *fakeSession) User(userID string) (*discordgo.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, errFakeNotFound
	}
	return u, nil
}

func (s *fakeSession) GuildChannelCreate(guildID string, data discordgo.GuildChannelCreateData, reason string) (*discordgo.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	ch := &discordgo.Channel{
		ID:                   s.newID(),
		GuildID:              guildID,
		Name:                 data.Name,
		Type:                 data.Type,
		Topic:                data.Topic,
		ParentID:             data.ParentID,
		PermissionOverwrites: data.PermissionOverwrites,
	}
	s.channels[ch.ID] = ch
	s.order = append(s.order, ch.ID)
	s.reasons = append(s.reasons, reason)
	c := *ch
	return &c, nil
}

func (s *fakeSession) ChannelEdit(channelID string, data *discordgo.ChannelEdit, reason string) (*discordgo.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.channels[channelID]
	if !ok {
		return nil, errFakeNotFound
	}
	if data.Name != "" {
		ch.Name = data.Name
	}
	if data.PermissionOverwrites != nil {
		ch.PermissionOverwrites = data.PermissionOverwrites
	}
	s.reasons = append(s.reasons, reason)
	c := *ch
	return &c, nil
}

func (s *fakeSession) ChannelPermissionSet(channelID, targetID string, targetType discordgo.PermissionOverwriteType, allow, deny int64, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.channels[channelID]
	if !ok {
		return errFakeNotFound
	}
	ch.PermissionOverwrites = append(ch.PermissionOverwrites, &discordgo.PermissionOverwrite{
		ID: targetID, Type: targetType, Allow: allow, Deny: deny,
	})
	s.permSets = append(s.permSets, permissionSet{ChannelID: channelID, TargetID: targetID, Allow: allow, Deny: deny})
	s.reasons = append(s.reasons, reason)
	return nil
}

func (s *fakeSession) ChannelMessageSend(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.channels[channelID]; !ok {
		return nil, errFakeNotFound
	}
	m := &discordgo.Message{
		ID:         s.newID(),
		ChannelID:  channelID,
		Author:     s.bot,
		Content:    data.Content,
		Embeds:     data.Embeds,
		Components: data.Components,
		Timestamp:  time.Now(),
	}
	s.history[channelID] = append(s.history[channelID], m)
	for _, f := range data.Files {
		content, err := io.ReadAll(f.Reader)
		if err != nil {
			return nil, err
		}
		s.files[channelID] = append(s.files[channelID], sentFile{Name: f.Name, Content: content})
	}
	return m, nil
}

func (s *fakeSession) ChannelMessages(channelID string, limit int, _, afterID, _ string) ([]*discordgo.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	after, _ := strconv.ParseUint(afterID, 10, 64)
	page := make([]*discordgo.Message, 0, limit)
	for _, m := range s.history[channelID] {
		id, _ := strconv.ParseUint(m.ID, 10, 64)
		if id > after {
			page = append(page, m)
		}
		if len(page) == limit {
			break
		}
	}
	slices.Reverse(page)
	return page, nil
}

func (s *fakeSession) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, resp)
	return nil
}

func (s *fakeSession) FollowupMessageCreate(_ *discordgo.Interaction, data *discordgo.WebhookParams) (*discordgo.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.followups = append(s.followups, data)
	return &discordgo.Message{ID: s.newID(), Content: data.Content}, nil
}

func missingPermissionsError() error {
	return &discordgo.RESTError{
		Response: &http.Response{Status: "403 Forbidden", StatusCode: http.StatusForbidden},
		Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeMissingPermissions, Message: "Missing Permissions"},
	}
}
