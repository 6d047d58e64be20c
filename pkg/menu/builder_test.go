package menu

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manifold/shortcuttray/pkg/icon"
)

func setupFs(t *testing.T, files map[string]string, dirs ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, d := range dirs {
		require.NoError(t, fs.MkdirAll(d, 0755))
	}
	for name, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(name), 0755))
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0644))
	}
	return fs
}

func labels(entries []*Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Label)
	}
	return out
}

type stubLinks map[string]string

func (s stubLinks) ReadLink(path string) (icon.Link, error) {
	if target, ok := s[path]; ok {
		return icon.Link{Target: target}, nil
	}
	return icon.Link{}, errors.New("not a link")
}

type stubShell struct {
	associated map[string]image.Image
}

func (stubShell) ExtractSmall(string, int) (image.Image, error) { return nil, icon.ErrNoIcon }
func (stubShell) FileIcon(string) (image.Image, error)          { return nil, icon.ErrNoIcon }
func (s stubShell) AssociatedIcon(path string) (image.Image, error) {
	if img, ok := s.associated[path]; ok {
		return img, nil
	}
	return nil, icon.ErrNoIcon
}

func TestBuildCounts(t *testing.T) {
	fs := setupFs(t, map[string]string{
		"/R/one.lnk":         "1",
		"/R/two.url":         "22",
		"/R/Tools/three.lnk": "333",
	}, "/R/Tools", "/R/Games")

	b := NewBuilder(fs, nil, nil)

	entries := b.Build("/R", false)
	assert.Len(t, entries, 2+2)

	entries = b.Build("/R", true)
	require.Len(t, entries, 1+2+2)
	assert.Equal(t, KindOpenFolder, entries[0].Kind)
	assert.Equal(t, "/R", entries[0].Target)
	assert.Equal(t, KindFolder, entries[1].Kind)
	assert.Equal(t, KindFolder, entries[2].Kind)
	assert.Equal(t, KindShortcut, entries[3].Kind)
	assert.Equal(t, KindShortcut, entries[4].Kind)
	assert.Equal(t, []string{`Open folder "R"`, "Games", "Tools", "one", "two"}, labels(entries))

	tools := entries[2]
	assert.Empty(t, tools.Target)
	assert.Equal(t, []string{`Open folder "Tools"`, "three"}, labels(tools.Children))
	assert.Equal(t, "/R/Tools/three.lnk", tools.Children[1].Target)
	assert.Equal(t, 8, Count(entries))
}

func TestBuildSkipsHiddenAndExcluded(t *testing.T) {
	fs := setupFs(t, map[string]string{
		"/R/.secret":                "s",
		"/R/$draft.lnk":             "d",
		"/R/keep.lnk":               "k",
		"/R/.hidden/inside.lnk":     "i",
		"/R/$skip/inside.lnk":       "i",
		"/R/A/B/$deep.lnk":          "d",
		"/R/A/B/.deeper":            "d",
		"/R/A/B/C/visible.lnk":      "v",
		"/R/A/B/C/.git/config":      "c",
		"/R/A/B/C/$trash/thing.lnk": "t",
	})

	entries := NewBuilder(fs, nil, nil).Build("/R", true)
	Walk(entries, func(e *Entry, depth int) bool {
		assert.NotContains(t, e.Label, "$")
		assert.NotContains(t, e.Label, "secret")
		assert.NotContains(t, e.Label, "hidden")
		assert.NotContains(t, e.Label, "deep")
		assert.NotContains(t, e.Label, "git")
		assert.NotContains(t, e.Label, "inside")
		return true
	})

	var found []string
	Walk(entries, func(e *Entry, _ int) bool {
		if e.Kind == KindShortcut {
			found = append(found, e.Target)
		}
		return true
	})
	assert.ElementsMatch(t, []string{"/R/keep.lnk", "/R/A/B/C/visible.lnk"}, found)
}

func TestBuildMissingDirectory(t *testing.T) {
	b := NewBuilder(afero.NewMemMapFs(), nil, nil)
	assert.Empty(t, b.Build("/nope", true))
	assert.Empty(t, b.Build("/nope", false))
}

func TestBuildEndToEnd(t *testing.T) {
	fs := setupFs(t, map[string]string{
		"/R/App.lnk": "link",
		"/R/.secret": "hush",
	}, "/R/A")

	appIcon := image.NewRGBA(image.Rect(0, 0, 32, 32))
	resolver := icon.NewResolver(
		stubLinks{"/R/App.lnk": `C:\bin\app.exe`},
		nil,
		stubShell{associated: map[string]image.Image{`C:\bin\app.exe`: appIcon}},
		nil,
	)
	entries := NewBuilder(fs, icon.NewCache(fs, resolver), nil).Build("/R", true)

	require.Equal(t, []string{`Open folder "R"`, "A", "App"}, labels(entries))

	a := entries[1]
	assert.Equal(t, KindFolder, a.Kind)
	assert.Equal(t, []string{`Open folder "A"`}, labels(a.Children))

	app := entries[2]
	assert.Equal(t, KindShortcut, app.Kind)
	assert.Equal(t, "/R/App.lnk", app.Target)
	require.NotNil(t, app.Icon)
	assert.Equal(t, image.Rect(0, 0, icon.Size, icon.Size), app.Icon.Bounds())
}

func TestBuildIconFailureLeavesNoIcon(t *testing.T) {
	fs := setupFs(t, map[string]string{"/R/broken.lnk": "junk"})
	resolver := icon.NewResolver(stubLinks{}, nil, stubShell{}, nil)

	entries := NewBuilder(fs, resolver, nil).Build("/R", false)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Icon)
	assert.Equal(t, "broken", entries[0].Label)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "App", Label("App.lnk"))
	assert.Equal(t, "archive.tar", Label("archive.tar.gz"))
	assert.Equal(t, "README", Label("README"))
	assert.Equal(t, ".profile", Label(".profile"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "open-folder", KindOpenFolder.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
	assert.True(t, KindOpenFolder.Launchable())
	assert.False(t, KindFolder.Launchable())
}
