package tickets

import (
	"strings"
	"unicode"

	"github.com/Jacobbrewer1/ticketpanel/pkg/entities"
)

const (
	maxChannelName     = 100
	maxSlug            = 48
	maxPanelNameLength = 64

	closedPrefix  = "closed-"
	defaultPrefix = "ticket"
	unknownSlug   = "user"
)

// Slug lower cases s and collapses every run of characters that are not ASCII letters or digits into a single
// "-". Leading and trailing separators are dropped.
func Slug(s string) string {
	var sb strings.Builder
	sep := false
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if sep && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			sep = false
			sb.WriteRune(r)
			if sb.Len() >= maxSlug {
				break
			}
			continue
		}
		sep = true
	}
	return sb.String()
}

// ChannelPrefix is the name prefix of the ticket channels of an option.
func ChannelPrefix(opt *entities.Option) string {
	if opt == nil {
		return defaultPrefix
	}
	if opt.Ticket != nil {
		if p := Slug(opt.Ticket.Prefix); p != "" {
			return p
		}
	}
	if p := Slug(opt.Label); p != "" {
		return p
	}
	return defaultPrefix
}

// TicketChannelName is the name of a new ticket channel.
func TicketChannelName(prefix, username string) string {
	return limitName(prefix + "-" + userSlug(username))
}

// ClosedChannelName is the name a ticket channel is renamed to when it is closed.
func ClosedChannelName(username string) string {
	return limitName(closedPrefix + userSlug(username))
}

func userSlug(username string) string {
	if s := Slug(username); s != "" {
		return s
	}
	return unknownSlug
}

func limitName(name string) string {
	if len(name) > maxChannelName {
		return strings.TrimRight(name[:maxChannelName], "-")
	}
	return name
}
