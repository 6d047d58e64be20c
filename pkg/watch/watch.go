// Package watch invalidates the tray menu when the shortcut folder changes.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"

	"github.com/manifold/shortcuttray/pkg/logging"
	"github.com/manifold/shortcuttray/pkg/menu"
)

const DefaultDelay = 200 * time.Millisecond

type Invalidator interface {
	Invalidate()
}

// Service watches every visible directory under Root and calls
// Invalidate after changes settle.
type Service struct {
	Root   string
	Fs     afero.Fs
	Target Invalidator
	Delay  time.Duration
	Log    logging.Logger

	watcher *fsnotify.Watcher
}

func (s *Service) InitializeDaemon() (err error) {
	if s.Delay == 0 {
		s.Delay = DefaultDelay
	}
	s.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	for _, path := range collectDirs(s.Fs, s.Root) {
		if err := s.watcher.Add(path); err != nil {
			s.Log.Warnw("unable to watch", "path", path, "err", err)
		}
	}
	return nil
}

func (s *Service) TerminateDaemon() error {
	return s.watcher.Close()
}

func (s *Service) Serve(ctx context.Context) {
	debounce := Debounce(s.Delay)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !s.relevant(event) {
				continue
			}
			logging.Debug(s.Log, "watch: ", event)
			debounce(func() {
				s.Log.Debugw("folder changed, menu invalidated", "root", s.Root)
				s.Target.Invalidate()
			})
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.Log.Warnw("watcher error", "err", err)
		}
	}
}

// relevant filters out attribute-only events and adds new directories to
// the watch.
func (s *Service) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if menu.Excluded(filepath.Base(event.Name)) {
		return false
	}
	if event.Op&fsnotify.Create == fsnotify.Create {
		fi, err := s.Fs.Stat(event.Name)
		if err == nil && fi.IsDir() && menu.Visible(fi) {
			for _, dir := range collectDirs(s.Fs, event.Name) {
				if err := s.watcher.Add(dir); err != nil {
					logging.Debug(s.Log, "watch: ", dir, ": ", err)
				}
			}
		}
	}
	return true
}

// collectDirs lists root and every visible directory beneath it.
func collectDirs(fs afero.Fs, root string) []string {
	var dirs []string
	afero.Walk(fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if p != root && !menu.Visible(info) {
			return filepath.SkipDir
		}
		dirs = append(dirs, p)
		return nil
	})
	return dirs
}
