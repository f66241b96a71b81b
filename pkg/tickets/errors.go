package tickets

import (
	"errors"
	"fmt"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketpanel/pkg/messages"
)

// UserError is an error the invoking user can act on. Its message is shown to them as is.
type UserError struct {
	// Message is shown to the user.
	Message string

	// Err is the underlying error, if any. It is only logged.
	Err error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a UserError with a formatted message.
func NewUserError(format string, args ...any) *UserError {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

// asPermissionError turns a Discord missing permission or access error into a UserError. Other errors are
// returned unchanged.
func asPermissionError(err error) error {
	if IsMissingPermission(err) {
		return &UserError{Message: messages.ErrBotMissingPermission, Err: err}
	}
	return err
}

// IsMissingPermission reports whether err is a Discord missing permission or missing access error.
func IsMissingPermission(err error) bool {
	er := new(discordgo.RESTError)
	if !errors.As(err, &er) || er.Message == nil {
		return false
	}
	return er.Message.Code == discordgo.ErrCodeMissingPermissions || er.Message.Code == discordgo.ErrCodeMissingAccess
}
