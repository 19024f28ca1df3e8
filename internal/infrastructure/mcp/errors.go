package mcp

import (
	"errors"
	"fmt"

	"github.com/bnema/casement/internal/application/controller"
	"github.com/bnema/casement/internal/domain/entity"
)

// APIError is the error text returned to tool callers.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
}

// MapError maps controller errors to tool errors with a recovery hint.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, entity.ErrPinnedTab):
		return &APIError{Code: "PINNED_TAB", Message: "tab is pinned", RecoveryHint: "Unpin it with set_pinned first"}
	case errors.Is(err, entity.ErrMainWindowRequired):
		return &APIError{Code: "MAIN_WINDOW_REQUIRED", Message: "main window required", RecoveryHint: "Close or reattach detached windows first"}
	case errors.Is(err, entity.ErrUnknownTab):
		return &APIError{Code: "UNKNOWN_TAB", Message: "tab not found", RecoveryHint: "Call list_windows for current ids"}
	case errors.Is(err, entity.ErrUnknownWindow):
		return &APIError{Code: "UNKNOWN_WINDOW", Message: "window not found", RecoveryHint: "Call list_windows for current ids"}
	case errors.Is(err, entity.ErrSessionActive):
		return &APIError{Code: "SESSION_ACTIVE", Message: "main window already has tabs", RecoveryHint: "The saved session is restored once at startup; restart casement serve to reload it"}
	case errors.Is(err, entity.ErrPersistence):
		return &APIError{Code: "PERSISTENCE", Message: "session could not be saved", RecoveryHint: "Check disk space and permissions"}
	case errors.Is(err, entity.ErrContentViewUnavailable), errors.Is(err, controller.ErrStopped):
		return &APIError{Code: "UNAVAILABLE", Message: "controller is not running", RecoveryHint: "Start it with casement serve"}
	default:
		return err
	}
}
