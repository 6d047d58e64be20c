package tray

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/afero"

	"github.com/manifold/shortcuttray/pkg/config"
	"github.com/manifold/shortcuttray/pkg/daemon"
	"github.com/manifold/shortcuttray/pkg/launcher"
	"github.com/manifold/shortcuttray/pkg/logging"
)

// Runner is the blocking tray loop.
type Runner interface {
	Run(onExit func())
	Quit()
}

// Service runs the tray as a daemon service.
type Service struct {
	Controller *Controller
	Tray       Runner
	Fs         afero.Fs
	Notifier   launcher.Notifier
	Daemon     *daemon.Daemon
	Log        logging.Logger
}

// StartupMessage is the notice shown when the tray starts, if enabled.
func StartupMessage(root string) string {
	return fmt.Sprintf("Shortcuts from \"%s\" are available from the notification area.", root)
}

func (s *Service) InitializeDaemon() error {
	ok, err := afero.DirExists(s.Fs, s.Controller.Root)
	if err != nil || !ok {
		return config.ErrRootNotFound
	}
	if s.Controller.Prefs != nil {
		prefs, err := s.Controller.Prefs.Load()
		if err != nil {
			s.Log.Warnw("loading preferences, using defaults", "err", err)
		}
		s.Controller.SetPreferences(prefs)
	}
	return nil
}

func (s *Service) Serve(ctx context.Context) {
	// the tray window and its message loop must share a thread
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if s.Controller.Preferences().ShowMessage && s.Notifier != nil {
		go s.Notifier.Notify(config.AppName, StartupMessage(s.Controller.Root))
	}
	s.Log.Infow("tray running", "root", s.Controller.Root)
	s.Tray.Run(s.exited)
}

func (s *Service) exited() {
	s.Log.Info("tray exited")
	go s.Daemon.Terminate()
}

func (s *Service) TerminateDaemon() error {
	s.Tray.Quit()
	return nil
}
