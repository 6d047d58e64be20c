package menu

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/manifold/shortcuttray/pkg/icon"
	"github.com/manifold/shortcuttray/pkg/logging"
	zaplog "github.com/manifold/shortcuttray/pkg/logging/zap"
)

// Builder walks a directory into menu entries.
type Builder struct {
	Fs afero.Fs
	// Icons resolves file icons; nil leaves every shortcut without one.
	Icons icon.Resolve
	// FolderIcon is shared by every folder and open-folder entry.
	FolderIcon image.Image
	Log        logging.Logger
}

func NewBuilder(fs afero.Fs, icons icon.Resolve, log logging.Logger) *Builder {
	if log == nil {
		log = zaplog.Nop()
	}
	return &Builder{
		Fs:         fs,
		Icons:      icons,
		FolderIcon: icon.Folder(),
		Log:        log,
	}
}

// OpenFolderLabel is the label of the entry that opens dir itself.
func OpenFolderLabel(dir string) string {
	return fmt.Sprintf("Open folder \"%s\"", filepath.Base(dir))
}

// Build lists root: an optional open-folder entry, then visible
// subdirectories (each built recursively with its own open-folder entry),
// then visible files. Linked directories are followed unless they lead back
// to a directory already being built. A directory that cannot be read
// yields nil.
func (b *Builder) Build(root string, includeOpenFolder bool) []*Entry {
	return b.build(root, includeOpenFolder, walkGuard{})
}

func (b *Builder) build(root string, includeOpenFolder bool, guard walkGuard) []*Entry {
	key, ok := guard.enter(b.Fs, root)
	if !ok {
		logging.Debug(b.Log, "menu: skipping link loop at ", root)
		return nil
	}
	defer guard.leave(key)

	infos, err := afero.ReadDir(b.Fs, root)
	if err != nil {
		logging.Debug(b.Log, "menu: skipping ", root, ": ", err)
		return nil
	}

	var dirs, files []string
	for _, fi := range infos {
		if !Visible(fi) {
			continue
		}
		path := filepath.Join(root, fi.Name())
		if follow(b.Fs, path, fi).IsDir() {
			dirs = append(dirs, path)
		} else {
			files = append(files, path)
		}
	}

	var entries []*Entry
	if includeOpenFolder {
		entries = append(entries, &Entry{
			Label:  OpenFolderLabel(root),
			Icon:   b.FolderIcon,
			Kind:   KindOpenFolder,
			Target: root,
		})
	}

	for _, dir := range dirs {
		if guard[realPath(b.Fs, dir)] {
			logging.Debug(b.Log, "menu: skipping link loop at ", dir)
			continue
		}
		entries = append(entries, &Entry{
			Label:    filepath.Base(dir),
			Icon:     b.FolderIcon,
			Kind:     KindFolder,
			Children: b.build(dir, true, guard),
		})
	}

	for _, path := range files {
		entries = append(entries, &Entry{
			Label:  Label(filepath.Base(path)),
			Icon:   b.icon(path),
			Kind:   KindShortcut,
			Target: path,
		})
	}
	return entries
}

func (b *Builder) icon(path string) image.Image {
	if b.Icons == nil {
		return nil
	}
	return b.Icons.Resolve(path).Image
}

// Label strips the extension from a file name. Names that are nothing but
// an extension are kept whole.
func Label(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return name
	}
	return strings.TrimSuffix(name, ext)
}
