// Package tray owns the notification-area icon: it rebuilds the menu when
// the folder changed, shows it near the cursor and dispatches activations.
package tray

import (
	"fmt"
	"image"
	"sync"

	"github.com/manifold/shortcuttray/pkg/config"
	"github.com/manifold/shortcuttray/pkg/icon"
	"github.com/manifold/shortcuttray/pkg/logging"
	zaplog "github.com/manifold/shortcuttray/pkg/logging/zap"
	"github.com/manifold/shortcuttray/pkg/menu"
	"github.com/manifold/shortcuttray/pkg/shell"
)

type State int

const (
	Idle State = iota
	Building
	Showing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Building:
		return "building"
	case Showing:
		return "showing"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

const (
	SettingsLabel = "Show message at startup"
	ExitLabel     = "Exit"
)

// Popup is the menu surface the controller drives.
type Popup interface {
	// Render replaces the menu contents.
	Render(entries []*menu.Entry)
	// Size estimates the on-screen size of the rendered menu.
	Size(entries []*menu.Entry) image.Point
	// Show displays the menu with its top-left corner at anchor. It may
	// block until the menu closes.
	Show(anchor image.Point)
	Hide()
	Quit()
}

type Launcher interface {
	Launch(target string, elevated bool) error
}

type PreferenceStore interface {
	Load() (config.Preferences, error)
	Save(config.Preferences) error
}

// Pruner drops cached state not used by the latest build.
type Pruner interface {
	Prune()
}

// Controller is the tray state machine. All methods are safe to call from
// the tray library's callback goroutines.
type Controller struct {
	Root            string
	OpenFolderEntry bool
	ElevateKey      shell.Key
	ExitIcon        image.Image

	Builder  *menu.Builder
	Detector *menu.Detector
	Launcher Launcher
	Prefs    PreferenceStore
	Popup    Popup
	Icons    Pruner
	Log      logging.Logger

	mu       sync.Mutex
	state    State
	modifier bool
	invalid  bool
	dirty    bool
	tree     []*menu.Entry
	entries  []*menu.Entry
	prefs    config.Preferences
}

func NewController(root string, b *menu.Builder, d *menu.Detector, l Launcher, p Popup, log logging.Logger) *Controller {
	if log == nil {
		log = zaplog.Nop()
	}
	return &Controller{
		Root:            root,
		OpenFolderEntry: true,
		ExitIcon:        icon.Exit(),
		Builder:         b,
		Detector:        d,
		Launcher:        l,
		Popup:           p,
		Log:             log,
		prefs:           config.DefaultPreferences(),
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetPreferences replaces the preferences the settings entry reflects.
func (c *Controller) SetPreferences(p config.Preferences) {
	c.mu.Lock()
	c.prefs = p
	c.dirty = true
	c.mu.Unlock()
}

func (c *Controller) Preferences() config.Preferences {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prefs
}

// Open handles a click on the tray icon. While the menu is showing it hides
// it instead.
func (c *Controller) Open(cursor image.Point) {
	c.mu.Lock()
	if c.state == Showing {
		c.state = Idle
		c.modifier = false
		c.mu.Unlock()
		c.Popup.Hide()
		return
	}
	if c.state == Building {
		c.mu.Unlock()
		return
	}
	c.state = Building
	c.modifier = false
	entries, render := c.refresh()
	c.mu.Unlock()

	if render {
		c.Popup.Render(entries)
	}
	anchor := Anchor(cursor, c.Popup.Size(entries))

	c.mu.Lock()
	c.state = Showing
	c.mu.Unlock()

	c.Popup.Show(anchor)
}

// refresh rebuilds the tree when the folder changed and reports whether
// the popup needs new contents. Called with mu held.
func (c *Controller) refresh() ([]*menu.Entry, bool) {
	fp, changed := c.Detector.Changed(c.Root)
	if changed || c.invalid || c.tree == nil {
		c.tree = c.Builder.Build(c.Root, c.OpenFolderEntry)
		c.invalid = false
		c.dirty = true
		if c.Icons != nil {
			c.Icons.Prune()
		}
		c.Log.Debugw("menu rebuilt", "root", c.Root, "entries", menu.Count(c.tree), "fingerprint", len(fp))
	}
	if !c.dirty && c.entries != nil {
		return c.entries, false
	}
	c.entries = append(append(make([]*menu.Entry, 0, len(c.tree)+3), c.tree...), c.trailer()...)
	c.dirty = false
	return c.entries, true
}

func (c *Controller) trailer() []*menu.Entry {
	return []*menu.Entry{
		{Kind: menu.KindSeparator},
		{Label: SettingsLabel, Kind: menu.KindSettings, Checked: c.prefs.ShowMessage},
		{Label: ExitLabel, Kind: menu.KindExit, Icon: c.ExitIcon},
	}
}

// Anchor places a popup of the given size so its bottom-right corner sits
// at the cursor, without leaving the screen's top or left edge.
func Anchor(cursor, size image.Point) image.Point {
	p := cursor.Sub(size)
	if p.X < 0 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
	return p
}

// KeyDown records the elevation modifier while the menu is showing.
func (c *Controller) KeyDown(k shell.Key) {
	c.mu.Lock()
	if c.state == Showing && k == c.ElevateKey {
		c.modifier = true
	}
	c.mu.Unlock()
}

func (c *Controller) KeyUp(k shell.Key) {
	c.mu.Lock()
	if c.state == Showing && k == c.ElevateKey {
		c.modifier = false
	}
	c.mu.Unlock()
}

// Dismiss closes the menu without an activation.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	if c.state == Showing {
		c.state = Idle
	}
	c.modifier = false
	c.mu.Unlock()
}

// Invalidate forces the next Open to rebuild the tree.
func (c *Controller) Invalidate() {
	c.mu.Lock()
	c.invalid = true
	c.mu.Unlock()
}

// Activate handles a chosen entry. The modifier flag is consumed here.
func (c *Controller) Activate(e *menu.Entry) {
	c.mu.Lock()
	elevated := c.modifier
	c.modifier = false
	c.state = Idle
	c.mu.Unlock()

	switch e.Kind {
	case menu.KindShortcut:
		c.launch(e.Target, elevated)
	case menu.KindOpenFolder:
		c.launch(e.Target, false)
	case menu.KindSettings:
		c.toggleShowMessage()
	case menu.KindExit:
		c.Log.Info("exit requested")
		c.Popup.Quit()
	default:
		logging.Debug(c.Log, "tray: ignoring ", e)
	}
}

func (c *Controller) launch(target string, elevated bool) {
	if err := c.Launcher.Launch(target, elevated); err != nil {
		c.Log.Errorw("launch", "target", target, "err", err)
	}
}

func (c *Controller) toggleShowMessage() {
	c.mu.Lock()
	c.prefs.ShowMessage = !c.prefs.ShowMessage
	c.dirty = true
	prefs := c.prefs
	c.mu.Unlock()

	if c.Prefs == nil {
		return
	}
	if err := c.Prefs.Save(prefs); err != nil {
		c.Log.Errorw("saving preferences", "err", err)
	}
}
