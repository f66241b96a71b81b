package custom

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Jacobbrewer1/discordgo"
)

// Snowflake represents a Discord ID. Older records stored IDs as JSON numbers, newer ones as strings, so both
// forms are accepted when decoding. It is always encoded as a string.
type Snowflake string

// IsZero reports whether the snowflake is unset. "0" is treated as unset as it is the placeholder older records
// used for a missing value.
func (s Snowflake) IsZero() bool {
	return s == "" || s == "0"
}

// String implements the fmt.Stringer interface. The unset snowflake is an empty string.
func (s Snowflake) String() string {
	if s.IsZero() {
		return ""
	}
	return string(s)
}

// Time returns the creation time encoded in the snowflake.
func (s Snowflake) Time() (time.Time, error) {
	if s.IsZero() {
		return time.Time{}, fmt.Errorf("snowflake is empty")
	}
	return discordgo.SnowflakeTimestamp(string(s))
}

// MarshalJSON implements the json.Marshaler interface.
func (s Snowflake) MarshalJSON() ([]byte, error) {
	if s.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(string(s))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *Snowflake) UnmarshalJSON(text []byte) error {
	text = bytes.TrimSpace(text)
	switch {
	case len(text) == 0, bytes.Equal(text, []byte("null")):
		*s = ""
		return nil
	case text[0] == '"':
		var str string
		if err := json.Unmarshal(text, &str); err != nil {
			return fmt.Errorf("invalid snowflake %s: %w", text, err)
		}
		*s = Snowflake(str)
		return nil
	default:
		n, err := strconv.ParseUint(string(text), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid snowflake %s: %w", text, err)
		}
		*s = Snowflake(strconv.FormatUint(n, 10))
		return nil
	}
}

// Scan implements the sql.Scanner interface.
func (s *Snowflake) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = ""
	case string:
		*s = Snowflake(v)
	case []byte:
		*s = Snowflake(v)
	case int64:
		*s = Snowflake(strconv.FormatInt(v, 10))
	default:
		return fmt.Errorf("invalid scan, type %T not supported for %T", src, s)
	}
	return nil
}
