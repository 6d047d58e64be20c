package menu

import (
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/manifold/shortcuttray/pkg/logging"
)

// Fingerprint summarises the visible files of a tree. Two equal
// fingerprints mean the tree is presumed unchanged.
type Fingerprint string

// Detector fingerprints a tree and remembers the last fingerprint it saw.
type Detector struct {
	Fs  afero.Fs
	Log logging.DebugLogger

	mu   sync.Mutex
	last Fingerprint
	seen bool
}

func NewDetector(fs afero.Fs, log logging.DebugLogger) *Detector {
	return &Detector{Fs: fs, Log: log}
}

// Fingerprint lists "<path>|<size>\n" for each visible file of root, then
// recurses into each visible subdirectory. Each directory's files are
// listed once, at that directory's own level. Links are measured by their
// targets, and a linked directory leading back to one being walked is
// skipped.
func (d *Detector) Fingerprint(root string) Fingerprint {
	var sb strings.Builder
	d.fingerprint(&sb, root, walkGuard{})
	return Fingerprint(sb.String())
}

func (d *Detector) fingerprint(sb *strings.Builder, dir string, guard walkGuard) {
	key, ok := guard.enter(d.Fs, dir)
	if !ok {
		return
	}
	defer guard.leave(key)

	infos, err := afero.ReadDir(d.Fs, dir)
	if err != nil {
		logging.Debug(d.Log, "fingerprint: skipping ", dir, ": ", err)
		return
	}
	var dirs []string
	for _, fi := range infos {
		if !Visible(fi) {
			continue
		}
		path := filepath.Join(dir, fi.Name())
		fi = follow(d.Fs, path, fi)
		if fi.IsDir() {
			dirs = append(dirs, path)
			continue
		}
		sb.WriteString(path)
		sb.WriteByte('|')
		sb.WriteString(strconv.FormatInt(fi.Size(), 10))
		sb.WriteByte('\n')
	}
	for _, sub := range dirs {
		d.fingerprint(sb, sub, guard)
	}
}

// Changed fingerprints root and reports whether it differs from the
// previous call. The first call always reports a change.
func (d *Detector) Changed(root string) (Fingerprint, bool) {
	fp := d.Fingerprint(root)

	d.mu.Lock()
	defer d.mu.Unlock()
	changed := !d.seen || fp != d.last
	d.last, d.seen = fp, true
	return fp, changed
}

// Reset forgets the last fingerprint so the next Changed reports a change.
func (d *Detector) Reset() {
	d.mu.Lock()
	d.seen = false
	d.last = ""
	d.mu.Unlock()
}
