package entity

import (
	"errors"
	"math"
	"testing"
)

func TestTab_Transition(t *testing.T) {
	tests := []struct {
		name    string
		from    TabState
		to      TabState
		wantErr bool
	}{
		{"creating to ready", TabCreating, TabReady, false},
		{"creating closed early", TabCreating, TabClosing, false},
		{"creating cannot activate", TabCreating, TabActive, true},
		{"ready to active", TabReady, TabActive, false},
		{"active to inactive", TabActive, TabInactive, false},
		{"inactive to active", TabInactive, TabActive, false},
		{"active to detaching", TabActive, TabDetaching, false},
		{"detaching back to active", TabDetaching, TabActive, false},
		{"detaching cannot close", TabDetaching, TabClosing, true},
		{"ready cannot detach", TabReady, TabDetaching, true},
		{"closing to closed", TabClosing, TabClosed, false},
		{"closed is terminal", TabClosed, TabActive, true},
		{"same state is no-op", TabClosed, TabClosed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab := NewTab(1, MainWindowID, "about:blank")
			tab.State = tt.from

			err := tab.Transition(tt.to)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Fatalf("expected ErrInvalidTransition, got %v", err)
				}
				if tab.State != tt.from {
					t.Errorf("state changed on rejected transition: %s", tab.State)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tab.State != tt.to {
				t.Errorf("state = %s, want %s", tab.State, tt.to)
			}
		})
	}
}

func TestNewTab_Defaults(t *testing.T) {
	tab := NewTab(7, MainWindowID, "https://example.com")

	if tab.Title != DefaultTabTitle {
		t.Errorf("title = %q", tab.Title)
	}
	if tab.Zoom != ZoomDefault {
		t.Errorf("zoom = %v", tab.Zoom)
	}
	if tab.State != TabCreating {
		t.Errorf("state = %s", tab.State)
	}
	if tab.DisplayTitle() != DefaultTabTitle {
		t.Errorf("display title = %q", tab.DisplayTitle())
	}
}

func TestTab_SetTitleBlankFallsBack(t *testing.T) {
	tab := NewTab(1, MainWindowID, "https://example.com")
	tab.SetTitle("Example")
	tab.SetTitle("")

	if tab.Title != DefaultTabTitle {
		t.Errorf("title = %q", tab.Title)
	}
}

func TestTab_ZoomSteps(t *testing.T) {
	tab := NewTab(1, MainWindowID, "")

	tab.ZoomIn()
	tab.ZoomIn()
	if tab.Zoom != 1.2 {
		t.Errorf("zoom after two steps in = %v, want 1.2", tab.Zoom)
	}

	tab.ResetZoom()
	for i := 0; i < 20; i++ {
		tab.ZoomOut()
	}
	if tab.Zoom != ZoomMin {
		t.Errorf("zoom floor = %v, want %v", tab.Zoom, ZoomMin)
	}

	for i := 0; i < 40; i++ {
		tab.ZoomIn()
	}
	if tab.Zoom != ZoomMax {
		t.Errorf("zoom ceiling = %v, want %v", tab.Zoom, ZoomMax)
	}
	if tab.ZoomIn() {
		t.Error("ZoomIn at ceiling reported a change")
	}
}

func TestClampZoom(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.0, 1.0},
		{1.234, 1.23},
		{0.1, ZoomMin},
		{9, ZoomMax},
		{math.NaN(), ZoomDefault},
		{math.Inf(1), ZoomDefault},
		{1.1 + 0.1, 1.2},
	}
	for _, tt := range tests {
		if got := ClampZoom(tt.in); got != tt.want {
			t.Errorf("ClampZoom(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestZoomPercentage(t *testing.T) {
	if got := ZoomPercentage(1.1); got != 110 {
		t.Errorf("ZoomPercentage(1.1) = %d", got)
	}
}
