// Package tray provides a system tray view of the shot statistics.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/hoopform/internal/stats"
)

// Tray represents the system tray application.
type Tray struct {
	onOpen  func()
	onReset func()
	onQuit  func()
	last    stats.Snapshot
	mu      sync.RWMutex

	// Menu items stored for later updates
	menuShots    *systray.MenuItem
	menuSuccess  *systray.MenuItem
	menuAccuracy *systray.MenuItem
}

// New creates a new Tray instance.
func New() *Tray {
	return &Tray{}
}

// OnOpen sets the callback function to be called when the open menu item is clicked.
func (t *Tray) OnOpen(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onOpen = fn
}

// OnReset sets the callback function to be called when the reset menu item is clicked.
func (t *Tray) OnReset(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onReset = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
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

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("hoopform")
	systray.SetTooltip("hoopform shooting form coach")

	t.mu.Lock()
	shots, success, accuracy := menuTitles(t.last)
	t.menuShots = systray.AddMenuItem(shots, "Shots analyzed")
	t.menuShots.Disable()
	t.menuSuccess = systray.AddMenuItem(success, "Shots above the success threshold")
	t.menuSuccess.Disable()
	t.menuAccuracy = systray.AddMenuItem(accuracy, "Accuracy of the last shot")
	t.menuAccuracy.Disable()
	t.mu.Unlock()
	systray.AddSeparator()

	menuOpen := systray.AddMenuItem("Open in Browser...", "Open the upload page")
	menuReset := systray.AddMenuItem("Reset Statistics", "Zero all counters")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit hoopform")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-menuOpen.ClickedCh:
				t.call(func() func() { return t.onOpen })
			case <-menuReset.ClickedCh:
				t.call(func() func() { return t.onReset })
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {}

// call runs the callback returned by get outside the lock.
func (t *Tray) call(get func() func()) {
	t.mu.RLock()
	callback := get()
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.call(func() func() { return t.onQuit })
	systray.Quit()
}

// SetStats updates the counters shown in the menu. It can be passed
// directly to stats.Tracker.Subscribe.
func (t *Tray) SetStats(snap stats.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.last = snap
	if t.menuShots == nil {
		return
	}

	shots, success, accuracy := menuTitles(snap)
	t.menuShots.SetTitle(shots)
	t.menuSuccess.SetTitle(success)
	t.menuAccuracy.SetTitle(accuracy)
}

// Stats returns the last counters handed to SetStats.
func (t *Tray) Stats() stats.Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.last
}

func menuTitles(snap stats.Snapshot) (shots, success, accuracy string) {
	shots = fmt.Sprintf("Shots: %d", snap.TotalShots)
	success = fmt.Sprintf("Successful: %d (%d%%)", snap.SuccessfulShots, snap.SuccessRate)
	accuracy = fmt.Sprintf("Last accuracy: %d%% (%+d)", snap.LastAccuracy, snap.Progression)
	return shots, success, accuracy
}
