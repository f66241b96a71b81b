package tickets

import (
	"regexp"
	"slices"
	"strconv"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketpanel/pkg/embeds"
	"github.com/Jacobbrewer1/ticketpanel/pkg/entities"
	"github.com/samber/lo"
)

// legacyOptionRegex matches the positional option ids used by panel messages sent before options had ids.
var legacyOptionRegex = regexp.MustCompile(`^legacy_(\d+)$`)

// ResolveOption finds an option of the panel by id. Positional legacy ids resolve to the option at that index.
// It returns nil when nothing matches.
func ResolveOption(panel *entities.Panel, optionID string) *entities.Option {
	if panel == nil || optionID == "" {
		return nil
	}

	if opt := panel.OptionByID(optionID); opt != nil {
		return opt
	}

	m := legacyOptionRegex.FindStringSubmatch(optionID)
	if m == nil {
		return nil
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil || idx < 0 || idx >= len(panel.Options) {
		return nil
	}
	return panel.Options[idx]
}

// FindOption searches every panel of a guild for an option id. Option ids are unique within a guild, so at most
// one panel matches; panels are searched in name order so the result is stable if that ever fails to hold.
func FindOption(panels map[string]*entities.Panel, optionID string) (string, *entities.Option) {
	if optionID == "" {
		return "", nil
	}

	names := lo.Keys(panels)
	slices.Sort(names)
	for _, name := range names {
		if opt := panels[name].OptionByID(optionID); opt != nil {
			return name, opt
		}
	}
	return "", nil
}

// IsLegacyOptionID reports whether the id is a positional option id.
func IsLegacyOptionID(optionID string) bool {
	return legacyOptionRegex.MatchString(optionID)
}

// LegacyPanel finds the panel a component without a panel name was sent for. The panel whose rendered title
// matches the embed of msg wins; otherwise the only dropdown panel of the guild is used. It returns an empty
// name when the panel cannot be told apart.
func LegacyPanel(panels map[string]*entities.Panel, msg *discordgo.Message) string {
	names := lo.Keys(panels)
	slices.Sort(names)

	if msg != nil && len(msg.Embeds) > 0 && msg.Embeds[0] != nil {
		title := msg.Embeds[0].Title
		matched := lo.Filter(names, func(name string, _ int) bool {
			return embeds.Render(&panels[name].EmbedTemplate, nil).Title == title
		})
		if len(matched) == 1 {
			return matched[0]
		}
	}

	dropdowns := lo.Filter(names, func(name string, _ int) bool {
		return panels[name].EffectiveStyle() == entities.PanelStyleDropdown
	})
	if len(dropdowns) == 1 {
		return dropdowns[0]
	}
	return ""
}
