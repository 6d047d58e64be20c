package menu

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// follow returns the FileInfo of the target when fi is a symbolic link or
// a junction, and fi itself otherwise or when the target is gone.
// The returned info keeps the link's name.
func follow(fs afero.Fs, path string, fi os.FileInfo) os.FileInfo {
	if fi.Mode()&(os.ModeSymlink|os.ModeIrregular) == 0 {
		return fi
	}
	st, err := fs.Stat(path)
	if err != nil {
		return fi
	}
	return st
}

// realPath resolves links in path when fs is the OS filesystem.
func realPath(fs afero.Fs, path string) string {
	if _, ok := fs.(*afero.OsFs); ok {
		if p, err := filepath.EvalSymlinks(path); err == nil {
			return p
		}
	}
	return filepath.Clean(path)
}

// walkGuard holds the directories on the current descent, by real path,
// so a link back to one of them is not walked again.
type walkGuard map[string]bool

func (g walkGuard) enter(fs afero.Fs, dir string) (string, bool) {
	p := realPath(fs, dir)
	if g[p] {
		return p, false
	}
	g[p] = true
	return p, true
}

func (g walkGuard) leave(p string) {
	delete(g, p)
}
