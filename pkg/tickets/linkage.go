package tickets

import (
	"strings"
)

const (
	linkageSeparator = ";"
	linkagePanelKey  = "panel"
	linkageOwnerKey  = "owner"
)

// Linkage ties a ticket channel to the panel and user it was opened for. It is the only durable record of that
// relationship and lives in the channel topic:
//
//	topic   = segment *( ";" segment )
//	segment = key ":" value
//	key     = "panel" | "owner" | other
//
// The value runs to the next ";". Unknown keys and segments without a ":" are ignored. A topic is a ticket
// topic when it has a non-empty panel segment; the owner segment is absent on channels opened by old versions.
type Linkage struct {
	PanelName string
	OwnerID   string
}

// String encodes the linkage for a channel topic.
func (l Linkage) String() string {
	return linkagePanelKey + ":" + l.PanelName + linkageSeparator + linkageOwnerKey + ":" + l.OwnerID
}

// ParseLinkage decodes a channel topic. It reports false when the topic does not belong to a ticket.
func ParseLinkage(topic string) (Linkage, bool) {
	var l Linkage
	for _, segment := range strings.Split(topic, linkageSeparator) {
		key, value, ok := strings.Cut(segment, ":")
		if !ok {
			continue
		}

		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case linkagePanelKey:
			if l.PanelName == "" {
				l.PanelName = value
			}
		case linkageOwnerKey:
			if l.OwnerID == "" && isSnowflake(value) {
				l.OwnerID = value
			}
		}
	}
	return l, l.PanelName != ""
}

// ValidPanelName reports whether name can be stored in a linkage and a component custom ID.
func ValidPanelName(name string) bool {
	return name != "" &&
		name == strings.TrimSpace(name) &&
		len(name) <= maxPanelNameLength &&
		!strings.ContainsAny(name, linkageSeparator+"\n")
}

func isSnowflake(s string) bool {
	if s == "" || s == "0" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
