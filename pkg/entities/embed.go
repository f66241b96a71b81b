package entities

// Field is a single name/value pair rendered inside an embed.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// LinkButton is a URL button attached below a saved embed.
type LinkButton struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Emoji string `json:"emoji,omitempty"`
}

// EmbedTemplate is the stored form of an embed. Text values may contain placeholders which are substituted when
// the template is rendered.
type EmbedTemplate struct {
	Title        string        `json:"title,omitempty"`
	Description  string        `json:"description,omitempty"`
	Color        string        `json:"color,omitempty"`
	AuthorName   string        `json:"author_name,omitempty"`
	AuthorURL    string        `json:"author_url,omitempty"`
	AuthorIcon   string        `json:"author_icon,omitempty"`
	FooterText   string        `json:"footer_text,omitempty"`
	FooterIcon   string        `json:"footer_icon,omitempty"`
	ImageURL     string        `json:"image_url,omitempty"`
	ThumbnailURL string        `json:"thumbnail_url,omitempty"`
	Fields       []*Field      `json:"fields,omitempty"`
	Buttons      []*LinkButton `json:"buttons,omitempty"`
}

// IsEmpty reports whether the template would render an embed with no visible content.
func (t *EmbedTemplate) IsEmpty() bool {
	return t == nil || (t.Title == "" && t.Description == "" && len(t.Fields) == 0 && t.ImageURL == "" &&
		t.ThumbnailURL == "" && t.FooterText == "" && t.AuthorName == "")
}

// DefaultTicketMessage is used when a ticket option has no ticket message of its own.
func DefaultTicketMessage() *EmbedTemplate {
	return &EmbedTemplate{
		Title: "{option} Ticket",
		Description: "Hello {user} 👋\n\n" +
			"Thank you for opening a **{option}** ticket.\n" +
			"Our team will assist you shortly.\n\n" +
			"Please describe your request in detail.",
	}
}
