package embeds

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Jacobbrewer1/discordgo"
)

var customEmojiRegex = regexp.MustCompile(`^<(a?):([a-zA-Z0-9_]+):([0-9]+)>$`)

// maxUnicodeEmojiRunes allows for skin tones and joiners on a single emoji.
const maxUnicodeEmojiRunes = 4

// ParseEmoji parses a custom emoji reference (<:name:id> or <a:name:id>) or a short unicode emoji. It reports
// false when the input is empty or not recognised.
func ParseEmoji(s string) (discordgo.ComponentEmoji, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return discordgo.ComponentEmoji{}, false
	}

	if m := customEmojiRegex.FindStringSubmatch(s); m != nil {
		return discordgo.ComponentEmoji{
			Name:     m[2],
			ID:       m[3],
			Animated: m[1] == "a",
		}, true
	}

	if strings.HasPrefix(s, "<") || utf8.RuneCountInString(s) > maxUnicodeEmojiRunes {
		return discordgo.ComponentEmoji{}, false
	}
	return discordgo.ComponentEmoji{Name: s}, true
}

// FormatEmoji returns the message form of a component emoji.
func FormatEmoji(e discordgo.ComponentEmoji) string {
	switch {
	case e.ID != "" && e.Animated:
		return "<a:" + e.Name + ":" + e.ID + ">"
	case e.ID != "":
		return "<:" + e.Name + ":" + e.ID + ">"
	default:
		return e.Name
	}
}
