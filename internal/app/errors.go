package app

import (
	"errors"
	"fmt"
)

// UserError is an error whose Message can be shown to the user as-is.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *UserError) Unwrap() error { return e.Err }

// UserMessage returns the user-facing message carried by err, if any.
func UserMessage(err error) (string, bool) {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Message, true
	}
	return "", false
}

// User-facing messages.
const (
	MsgRemoveFailed = "Fail to del from Watch list, please try again later"
	MsgActionFailed = "Action Failed, please try again later"
)

var (
	// ErrNoStock is returned by ToggleWatchlist with no stock in view.
	ErrNoStock = &UserError{Message: MsgActionFailed, Err: errors.New("no stock in view")}
	// ErrUnknownEntry is returned by Select for an id not in the watchlist.
	ErrUnknownEntry = errors.New("unknown watchlist entry")
)
