package logging

const (
	// EnvLogLevel is the environment variable for the log level.
	EnvLogLevel = `LOG_LEVEL`

	// EnvLogFormat is the environment variable for the log format (text or json).
	EnvLogFormat = `LOG_FORMAT`
)

const (
	KeyApp       = "app"
	KeyError     = "error"
	KeyDal       = "dal"
	KeyBackend   = "backend"
	KeyGuildID   = "guild_id"
	KeyChannelID = "channel_id"
	KeyUserID    = "user_id"
	KeyPanel     = "panel"
	KeyOption    = "option"
	KeyCustomID  = "custom_id"
	KeyCommand   = "command"
)
