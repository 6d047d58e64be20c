package tray

import (
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/energye/systray"

	"github.com/manifold/shortcuttray/pkg/icon"
	"github.com/manifold/shortcuttray/pkg/logging"
	"github.com/manifold/shortcuttray/pkg/menu"
	"github.com/manifold/shortcuttray/pkg/shell"
)

const (
	itemWidth       = 240
	itemHeight      = 22
	separatorHeight = 9
)

// Systray renders the menu through the notification-area library. It
// implements Popup.
type Systray struct {
	Controller *Controller
	Key        shell.Key
	Tooltip    string
	Log        logging.Logger
	// CloseGrace is how long to wait after the native menu closes before
	// treating it as dismissed, giving a pending item click time to arrive.
	CloseGrace time.Duration

	mu      sync.Mutex
	icons   map[image.Image][]byte
	pending systray.IMenu
	shows   uint64
}

func NewSystray(log logging.Logger, tooltip string, key shell.Key) *Systray {
	return &Systray{
		Key:        key,
		Tooltip:    tooltip,
		Log:        log,
		CloseGrace: 250 * time.Millisecond,
		icons:      make(map[image.Image][]byte),
	}
}

// Run blocks running the tray loop until Quit.
func (s *Systray) Run(onExit func()) {
	systray.Run(s.onReady, onExit)
}

func (s *Systray) onReady() {
	if b, err := icon.EncodeICO(icon.App(32)); err == nil {
		systray.SetIcon(b)
	}
	systray.SetTooltip(s.Tooltip)
	systray.SetOnClick(s.clicked)
	systray.SetOnRClick(s.clicked)
}

func (s *Systray) clicked(m systray.IMenu) {
	s.mu.Lock()
	s.pending = m
	s.mu.Unlock()
	s.Controller.Open(shell.CursorPos())
}

func (s *Systray) Render(entries []*menu.Entry) {
	systray.ResetMenu()
	for _, e := range entries {
		s.add(nil, e)
	}
	s.pruneIcons(entries)
}

func (s *Systray) add(parent *systray.MenuItem, e *menu.Entry) {
	if e.Kind == menu.KindSeparator {
		if parent == nil {
			systray.AddSeparator()
		}
		return
	}

	var item *systray.MenuItem
	switch {
	case parent == nil && e.Kind == menu.KindSettings:
		item = systray.AddMenuItemCheckbox(e.Label, "", e.Checked)
	case parent == nil:
		item = systray.AddMenuItem(e.Label, e.Target)
	default:
		item = parent.AddSubMenuItem(e.Label, e.Target)
	}
	if b := s.ico(e.Icon); b != nil {
		item.SetIcon(b)
	}

	if e.Kind == menu.KindFolder {
		for _, child := range e.Children {
			s.add(item, child)
		}
		return
	}
	entry := e
	item.Click(func() {
		s.Controller.Activate(entry)
	})
}

func (s *Systray) ico(img image.Image) []byte {
	if img == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.icons[img]; ok {
		return b
	}
	b, err := icon.EncodeICO(img)
	if err != nil {
		logging.Debug(s.Log, "tray: encoding icon: ", err)
		return nil
	}
	s.icons[img] = b
	return b
}

// pruneIcons keeps only encodings of icons still in the menu.
func (s *Systray) pruneIcons(entries []*menu.Entry) {
	live := make(map[image.Image]bool)
	menu.Walk(entries, func(e *menu.Entry, _ int) bool {
		if e.Icon != nil {
			live[e.Icon] = true
		}
		return true
	})
	s.mu.Lock()
	for img := range s.icons {
		if !live[img] {
			delete(s.icons, img)
		}
	}
	s.mu.Unlock()
}

func (s *Systray) Size(entries []*menu.Entry) image.Point {
	h := 0
	for _, e := range entries {
		if e.Kind == menu.KindSeparator {
			h += separatorHeight
			continue
		}
		h += itemHeight
	}
	return image.Pt(itemWidth, h)
}

// Show opens the native menu. The library positions it at the cursor and
// keeps it on screen, so anchor is only logged. The library reports no key
// events, so the elevate key is sampled once, when the menu closes.
func (s *Systray) Show(anchor image.Point) {
	s.mu.Lock()
	m := s.pending
	s.pending = nil
	s.mu.Unlock()
	if m == nil {
		s.Controller.Dismiss()
		return
	}

	logging.Debug(s.Log, "tray: showing menu at ", anchor)
	if err := m.ShowMenu(); err != nil {
		s.Log.Warnw("showing menu", "err", err)
		s.Controller.Dismiss()
		return
	}

	// sample the modifier as the menu closes; a selection click follows
	if shell.ModifierDown(s.Key) {
		s.Controller.KeyDown(s.Key)
	} else {
		s.Controller.KeyUp(s.Key)
	}
	n := atomic.AddUint64(&s.shows, 1)
	time.AfterFunc(s.CloseGrace, func() {
		if atomic.LoadUint64(&s.shows) == n {
			s.Controller.Dismiss()
		}
	})
}

// Hide is a no-op: the native menu closes itself when focus leaves it.
func (s *Systray) Hide() {}

func (s *Systray) Quit() {
	systray.Quit()
}
