package ipc

import (
	"errors"

	"github.com/bnema/casement/internal/application/controller"
	"github.com/bnema/casement/internal/domain/entity"
)

// Error codes carried on the wire.
const (
	CodePinnedTab              = "pinned_tab"
	CodeMainWindowRequired     = "main_window_required"
	CodePersistence            = "persistence"
	CodeUnknownTab             = "unknown_tab"
	CodeUnknownWindow          = "unknown_window"
	CodeContentViewUnavailable = "content_view_unavailable"
	CodeSessionActive          = "session_active"
	CodeStopped                = "stopped"
	CodeBadRequest             = "bad_request"
	CodeInternal               = "internal"
)

var (
	// ErrBadRequest is returned for malformed messages.
	ErrBadRequest = errors.New("bad request")
	// ErrClosed is returned by client calls after the connection is gone.
	ErrClosed = errors.New("connection closed")
	// ErrAlreadyRunning means another controller owns the socket.
	ErrAlreadyRunning = errors.New("controller already running")
)

var codeSentinels = []struct {
	code string
	err  error
}{
	{CodePinnedTab, entity.ErrPinnedTab},
	{CodeMainWindowRequired, entity.ErrMainWindowRequired},
	{CodePersistence, entity.ErrPersistence},
	{CodeUnknownTab, entity.ErrUnknownTab},
	{CodeUnknownWindow, entity.ErrUnknownWindow},
	{CodeContentViewUnavailable, entity.ErrContentViewUnavailable},
	{CodeSessionActive, entity.ErrSessionActive},
	{CodeStopped, controller.ErrStopped},
	{CodeBadRequest, ErrBadRequest},
}

// Error is the wire form of a failed command.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap maps the code back to its sentinel so errors.Is works client-side.
func (e *Error) Unwrap() error {
	for _, cs := range codeSentinels {
		if cs.code == e.Code {
			return cs.err
		}
	}
	return nil
}

// ErrorFrom converts err for the wire. It returns nil for a nil error.
func ErrorFrom(err error) *Error {
	if err == nil {
		return nil
	}
	code := CodeInternal
	for _, cs := range codeSentinels {
		if errors.Is(err, cs.err) {
			code = cs.code
			break
		}
	}
	return &Error{Code: code, Message: err.Error()}
}
