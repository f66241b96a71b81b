package embeds

import (
	"strconv"
	"strings"
)

// ColorBlurple is the colour used when none, or an invalid one, is configured.
const ColorBlurple = 0x5865F2

// ParseColor parses a hex colour such as "#ff0000", "ff0000" or "0xff0000".
func ParseColor(s string) int {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	if s == "" || len(s) > 6 {
		return ColorBlurple
	}

	c, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return ColorBlurple
	}
	return int(c)
}
