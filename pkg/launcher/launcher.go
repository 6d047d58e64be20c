// Package launcher starts the program behind a menu entry.
package launcher

import (
	"errors"
	"fmt"

	"github.com/rs/xid"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/afero"

	"github.com/manifold/shortcuttray/pkg/logging"
	zaplog "github.com/manifold/shortcuttray/pkg/logging/zap"
)

var (
	ErrNotFound             = errors.New("target does not exist")
	ErrElevationUnsupported = errors.New("elevated launch is not supported on this platform")
)

// Notifier shows a blocking notice to the user.
type Notifier interface {
	Notify(title, message string)
}

// Launcher starts targets and reports failures to the user.
type Launcher struct {
	Fs       afero.Fs
	Notifier Notifier
	Title    string
	Log      logging.Logger

	start   func(target string) error
	elevate func(target string) error
}

func New(fs afero.Fs, n Notifier, log logging.Logger) *Launcher {
	if log == nil {
		log = zaplog.Nop()
	}
	return &Launcher{
		Fs:       fs,
		Notifier: n,
		Title:    "shortcuttray",
		Log:      log,
		start:    open.Start,
		elevate:  runElevated,
	}
}

// FailureMessage is the notice shown when target cannot be started.
func FailureMessage(target string) string {
	return fmt.Sprintf("Unable to start \"%s\" process", target)
}

// Launch starts target, elevated if asked. On failure the user is notified
// before Launch returns; the error is only for the caller to log.
func (l *Launcher) Launch(target string, elevated bool) error {
	id := xid.New().String()
	l.Log.Debugw("launch", "id", id, "target", target, "elevated", elevated)

	err := l.launch(target, elevated)
	if err != nil {
		l.Log.Warnw("launch failed", "id", id, "target", target, "err", err)
		if l.Notifier != nil {
			l.Notifier.Notify(l.Title, FailureMessage(target))
		}
		return fmt.Errorf("launch %s: %w", target, err)
	}
	l.Log.Infow("launched", "id", id, "target", target, "elevated", elevated)
	return nil
}

func (l *Launcher) launch(target string, elevated bool) error {
	if target == "" {
		return ErrNotFound
	}
	if _, err := l.Fs.Stat(target); err != nil {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if !elevated {
		return l.start(target)
	}
	err := l.elevate(target)
	if errors.Is(err, ErrElevationUnsupported) {
		l.Log.Warnw("elevation unsupported, launching normally", "target", target)
		return l.start(target)
	}
	return err
}
