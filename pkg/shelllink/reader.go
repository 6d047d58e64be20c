package shelllink

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/manifold/shortcuttray/pkg/icon"
)

// Open reads the shell link at name from fs.
func Open(fs afero.Fs, name string) (*Link, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	l, err := Read(f)
	if err != nil {
		return nil, err
	}
	l.Dir = filepath.Dir(name)
	return l, nil
}

// Reader adapts Open to icon.LinkReader.
type Reader struct {
	Fs afero.Fs
}

func NewReader(fs afero.Fs) *Reader {
	return &Reader{Fs: fs}
}

func (r *Reader) ReadLink(path string) (icon.Link, error) {
	l, err := Open(r.Fs, path)
	if err != nil {
		return icon.Link{}, err
	}
	loc, index := l.IconLocation, l.IconIndex
	if loc != "" {
		// some writers store "file,index" in the location string itself
		if file, i := icon.ParseLocation(loc); file != loc {
			loc, index = file, i
		}
	}
	return icon.Link{
		Target:       l.Target(),
		IconLocation: loc,
		IconIndex:    index,
	}, nil
}
