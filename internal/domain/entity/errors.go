package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrPinnedTab is returned when closing a pinned tab.
	ErrPinnedTab = errors.New("tab is pinned")
	// ErrMainWindowRequired is returned when an operation would leave the main
	// window empty, or close it while detached windows exist.
	ErrMainWindowRequired = errors.New("main window required")
	// ErrPersistence wraps session store write failures.
	ErrPersistence = errors.New("session persistence failed")
	ErrUnknownTab  = errors.New("unknown tab")
	// ErrUnknownWindow is returned for window ids that are not (or no longer) open.
	ErrUnknownWindow = errors.New("unknown window")
	// ErrContentViewUnavailable means the content view factory could not allocate a view.
	// It is the only error that stops the controller.
	ErrContentViewUnavailable = errors.New("content view unavailable")
	ErrInvalidTransition      = errors.New("invalid tab state transition")
	// ErrSessionActive refuses a restore into a main window that already has tabs.
	ErrSessionActive = errors.New("session already open")
)

// LoadError describes a failed navigation. The tab stays open.
type LoadError struct {
	URL         string `json:"url"`
	Code        int    `json:"code"`
	Description string `json:"description"`
}

func (e *LoadError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("load %s failed (%d): %s", e.URL, e.Code, e.Description)
	}
	return fmt.Sprintf("load %s failed: %s", e.URL, e.Description)
}
