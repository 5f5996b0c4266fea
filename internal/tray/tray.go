// Package tray provides an optional system tray interface for the
// SpaceMusic server.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle func(enabled bool)
	onOpenUI func()
	onQuit   func()
	enabled  bool
	mu       sync.RWMutex

	// Menu items stored for later updates
	menuToggle  *systray.MenuItem
	menuPlayers *systray.MenuItem
}

// New creates a new Tray instance with tracking enabled by default.
func New() *Tray {
	return &Tray{
		enabled: true,
	}
}

// OnToggle sets the callback invoked when tracking is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnOpenUI sets the callback invoked when the open-UI menu item is
// clicked.
func (t *Tray) OnOpenUI(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onOpenUI = fn
}

// OnQuit sets the callback invoked when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// SetPlayerCount updates the player count line in the menu.
func (t *Tray) SetPlayerCount(n int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.menuPlayers != nil {
		t.menuPlayers.SetTitle(fmt.Sprintf("Players: %d", n))
	}
}

// IsEnabled returns whether tracking is currently enabled.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("SpaceMusic")
	systray.SetTooltip("SpaceMusic Gesture DJ")

	t.menuToggle = systray.AddMenuItem("● Tracking enabled", "Toggle webcam tracking")
	systray.AddSeparator()

	t.menuPlayers = systray.AddMenuItem("Players: 0", "Currently tracked players")
	t.menuPlayers.Disable()
	systray.AddSeparator()

	menuOpenUI := systray.AddMenuItem("Open SpaceMusic...", "Open the frontend in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit SpaceMusic")

	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuOpenUI.ClickedCh:
				t.handleOpenUI()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is exiting.
func (t *Tray) onExit() {}

func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled
	onToggle := t.onToggle
	if enabled {
		t.menuToggle.SetTitle("● Tracking enabled")
	} else {
		t.menuToggle.SetTitle("○ Tracking disabled")
	}
	t.mu.Unlock()

	if onToggle != nil {
		onToggle(enabled)
	}
}

func (t *Tray) handleOpenUI() {
	t.mu.RLock()
	onOpenUI := t.onOpenUI
	t.mu.RUnlock()

	if onOpenUI != nil {
		onOpenUI()
	}
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	onQuit := t.onQuit
	t.mu.RUnlock()

	if onQuit != nil {
		onQuit()
	}
	systray.Quit()
}
