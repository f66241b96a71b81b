package transcript

import (
	"fmt"
	"html"
	"html/template"
	"path"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/dustin/go-humanize"
)

const timeLayout = "2006-01-02 15:04:05 UTC"

var (
	fencedCodeRegex = regexp.MustCompile("(?s)```(?:[a-zA-Z0-9_+-]*\\n)?(.*?)```")
	inlineCodeRegex = regexp.MustCompile("`([^`\\n]+)`")
	mentionRegex    = regexp.MustCompile(`<@!?(\d+)>|<@&(\d+)>|<#(\d+)>|<(a?):(\w+):(\d+)>`)
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

type documentView struct {
	Title        string
	ChannelName  string
	GuildName    string
	OwnerName    string
	PanelName    string
	CreatedAt    string
	ClosedAt     string
	ClosedBy     string
	MessageCount int
	Participants []string
	Messages     []*messageView
}

type messageView struct {
	ID        string
	Author    string
	AvatarURL string
	Bot       bool
	Timestamp string
	Edited    bool
	Content   template.HTML
	Embeds    []*embedView
	Files     []*attachmentView
	Rows      [][]*componentView
	Reactions []*reactionView
	IsReply   bool
	ReplyToID string
	Stickers  []string
}

type embedView struct {
	Color        string
	Author       string
	Title        string
	URL          string
	Description  template.HTML
	Fields       []*fieldView
	ThumbnailURL string
	ImageURL     string
	Footer       string
}

type fieldView struct {
	Name   string
	Value  template.HTML
	Inline bool
}

type attachmentView struct {
	Name  string
	URL   string
	Size  string
	Image bool
}

type componentView struct {
	Label   string
	Style   string
	URL     string
	Options []string
	Select  bool
}

type reactionView struct {
	Emoji    string
	ImageURL string
	Count    int
}

// renderer turns messages into views. It holds only the lookups needed to render mentions.
type renderer struct {
	meta *Meta
}

func newRenderer(meta *Meta) *renderer {
	return &renderer{meta: meta}
}

func (r *renderer) document(messages []*messageView, participants []*discordgo.User, count int) *documentView {
	doc := &documentView{
		Title:        "Transcript - " + r.meta.Channel.Name,
		ChannelName:  r.meta.Channel.Name,
		GuildName:    r.meta.GuildName,
		PanelName:    r.meta.PanelName,
		MessageCount: count,
		Messages:     messages,
	}

	if r.meta.Owner != nil {
		doc.OwnerName = displayName(r.meta.Owner)
	}
	if r.meta.ClosedBy != nil {
		doc.ClosedBy = displayName(r.meta.ClosedBy)
	}
	if !r.meta.CreatedAt.IsZero() {
		doc.CreatedAt = r.meta.CreatedAt.UTC().Format(timeLayout)
	}
	if !r.meta.ClosedAt.IsZero() {
		doc.ClosedAt = r.meta.ClosedAt.UTC().Format(timeLayout)
	}

	for _, p := range participants {
		doc.Participants = append(doc.Participants, displayName(p))
	}
	slices.SortFunc(doc.Participants, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})

	return doc
}

// message returns nil when the message has nothing to render.
func (r *renderer) message(m *discordgo.Message) *messageView {
	v := &messageView{
		ID:        m.ID,
		Timestamp: m.Timestamp.UTC().Format(timeLayout),
		Edited:    m.EditedTimestamp != nil,
		Content:   r.content(m.Content, m.Mentions),
	}

	if m.Author != nil {
		v.Author = displayName(m.Author)
		v.AvatarURL = m.Author.AvatarURL("64")
		v.Bot = m.Author.Bot
	} else {
		v.Author = "Unknown user"
	}

	if m.MessageReference != nil && m.MessageReference.MessageID != "" {
		v.IsReply = true
		v.ReplyToID = m.MessageReference.MessageID
	}

	for _, e := range m.Embeds {
		if ev := r.embed(e, m.Mentions); ev != nil {
			v.Embeds = append(v.Embeds, ev)
		}
	}

	for _, a := range m.Attachments {
		if a == nil {
			continue
		}
		v.Files = append(v.Files, attachment(a))
	}

	for _, c := range m.Components {
		if row := componentRow(c); len(row) > 0 {
			v.Rows = append(v.Rows, row)
		}
	}

	for _, re := range m.Reactions {
		if re == nil || re.Emoji == nil {
			continue
		}
		v.Reactions = append(v.Reactions, reaction(re))
	}

	for _, s := range m.StickerItems {
		if s != nil {
			v.Stickers = append(v.Stickers, s.Name)
		}
	}

	if v.Content == "" && len(v.Embeds) == 0 && len(v.Files) == 0 && len(v.Rows) == 0 &&
		len(v.Reactions) == 0 && len(v.Stickers) == 0 {
		return nil
	}
	return v
}

func (r *renderer) embed(e *discordgo.MessageEmbed, mentions []*discordgo.User) *embedView {
	if e == nil {
		return nil
	}

	v := &embedView{
		Color:       fmt.Sprintf("#%06x", e.Color),
		Title:       e.Title,
		URL:         e.URL,
		Description: r.content(e.Description, mentions),
	}
	if e.Color == 0 {
		v.Color = "#202225"
	}
	if e.Author != nil {
		v.Author = e.Author.Name
	}
	if e.Thumbnail != nil {
		v.ThumbnailURL = e.Thumbnail.URL
	}
	if e.Image != nil {
		v.ImageURL = e.Image.URL
	}
	if e.Footer != nil {
		v.Footer = e.Footer.Text
	}
	for _, f := range e.Fields {
		if f == nil {
			continue
		}
		v.Fields = append(v.Fields, &fieldView{
			Name:   f.Name,
			Value:  r.content(f.Value, mentions),
			Inline: f.Inline,
		})
	}

	if v.Title == "" && v.Description == "" && len(v.Fields) == 0 && v.ThumbnailURL == "" && v.ImageURL == "" &&
		v.Footer == "" && v.Author == "" {
		return nil
	}
	return v
}

// content renders message markdown: fenced and inline code are kept verbatim, mentions are made readable and
// everything else is escaped.
func (r *renderer) content(s string, mentions []*discordgo.User) template.HTML {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	b := new(strings.Builder)
	last := 0
	for _, loc := range fencedCodeRegex.FindAllStringSubmatchIndex(s, -1) {
		r.inline(b, s[last:loc[0]], mentions)
		b.WriteString(`<pre><code>`)
		b.WriteString(html.EscapeString(strings.TrimSuffix(s[loc[2]:loc[3]], "\n")))
		b.WriteString(`</code></pre>`)
		last = loc[1]
	}
	r.inline(b, s[last:], mentions)

	return template.HTML(b.String())
}

func (r *renderer) inline(b *strings.Builder, s string, mentions []*discordgo.User) {
	last := 0
	for _, loc := range inlineCodeRegex.FindAllStringSubmatchIndex(s, -1) {
		r.text(b, s[last:loc[0]], mentions)
		b.WriteString(`<code class="inline">`)
		b.WriteString(html.EscapeString(s[loc[2]:loc[3]]))
		b.WriteString(`</code>`)
		last = loc[1]
	}
	r.text(b, s[last:], mentions)
}

func (r *renderer) text(b *strings.Builder, s string, mentions []*discordgo.User) {
	last := 0
	for _, m := range mentionRegex.FindAllStringSubmatchIndex(s, -1) {
		b.WriteString(escapeText(s[last:m[0]]))
		b.WriteString(r.mention(s, m, mentions))
		last = m[1]
	}
	b.WriteString(escapeText(s[last:]))
}

func (r *renderer) mention(s string, m []int, mentions []*discordgo.User) string {
	group := func(i int) string {
		if m[2*i] < 0 {
			return ""
		}
		return s[m[2*i]:m[2*i+1]]
	}

	switch {
	case group(1) != "":
		name := "unknown-user"
		for _, u := range mentions {
			if u != nil && u.ID == group(1) {
				name = displayName(u)
				break
			}
		}
		return `<span class="mention">@` + html.EscapeString(name) + `</span>`
	case group(2) != "":
		name, ok := r.meta.Roles[group(2)]
		if !ok {
			name = "deleted-role"
		}
		return `<span class="mention">@` + html.EscapeString(name) + `</span>`
	case group(3) != "":
		name, ok := r.meta.Channels[group(3)]
		if !ok {
			name = "deleted-channel"
		}
		return `<span class="mention">#` + html.EscapeString(name) + `</span>`
	default:
		ext := ".png"
		if group(4) == "a" {
			ext = ".gif"
		}
		return fmt.Sprintf(`<img class="emoji" alt=":%s:" src="%s">`,
			html.EscapeString(group(5)), html.EscapeString(emojiURL(group(6), ext)))
	}
}

func escapeText(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br>")
}

func attachment(a *discordgo.MessageAttachment) *attachmentView {
	v := &attachmentView{
		Name: a.Filename,
		URL:  a.URL,
		Size: humanize.Bytes(uint64(a.Size)),
	}

	if strings.HasPrefix(a.ContentType, "image/") {
		v.Image = true
	} else if a.ContentType == "" {
		v.Image = slices.Contains(imageExtensions, strings.ToLower(path.Ext(a.Filename)))
	}
	return v
}

func componentRow(c discordgo.MessageComponent) []*componentView {
	var children []discordgo.MessageComponent
	switch row := c.(type) {
	case *discordgo.ActionsRow:
		children = row.Components
	case discordgo.ActionsRow:
		children = row.Components
	default:
		children = []discordgo.MessageComponent{c}
	}

	views := make([]*componentView, 0, len(children))
	for _, child := range children {
		if v := component(child); v != nil {
			views = append(views, v)
		}
	}
	return views
}

func component(c discordgo.MessageComponent) *componentView {
	switch comp := c.(type) {
	case *discordgo.Button:
		return button(*comp)
	case discordgo.Button:
		return button(comp)
	case *discordgo.SelectMenu:
		return selectMenu(*comp)
	case discordgo.SelectMenu:
		return selectMenu(comp)
	}
	return nil
}

func button(b discordgo.Button) *componentView {
	label := b.Label
	if b.Emoji.Name != "" {
		label = strings.TrimSpace(b.Emoji.Name + " " + label)
	}

	style := "secondary"
	switch b.Style {
	case discordgo.PrimaryButton:
		style = "primary"
	case discordgo.SuccessButton:
		style = "success"
	case discordgo.DangerButton:
		style = "danger"
	case discordgo.LinkButton:
		style = "link"
	}

	return &componentView{
		Label: label,
		Style: style,
		URL:   b.URL,
	}
}

func selectMenu(s discordgo.SelectMenu) *componentView {
	v := &componentView{
		Label:  s.Placeholder,
		Style:  "select",
		Select: true,
	}
	if v.Label == "" {
		v.Label = "Select an option"
	}
	for _, o := range s.Options {
		v.Options = append(v.Options, o.Label)
	}
	return v
}

func reaction(r *discordgo.MessageReactions) *reactionView {
	v := &reactionView{
		Emoji: r.Emoji.Name,
		Count: r.Count,
	}
	if r.Emoji.ID != "" {
		ext := ".png"
		if r.Emoji.Animated {
			ext = ".gif"
		}
		v.ImageURL = emojiURL(r.Emoji.ID, ext)
		v.Emoji = ":" + r.Emoji.Name + ":"
	}
	return v
}

func emojiURL(id, ext string) string {
	return discordgo.EndpointCDN + "emojis/" + id + ext
}

func displayName(u *discordgo.User) string {
	if u.Discriminator != "" && u.Discriminator != "0" {
		return u.Username + "#" + u.Discriminator
	}
	return u.Username
}

// FormatDuration renders a duration as days, hours and minutes.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return "less than a minute"
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	parts := make([]string, 0, 3)
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	return strings.Join(parts, " ")
}
