package icon

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(n int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, n, n))
}

type fakeLinks map[string]Link

func (f fakeLinks) ReadLink(path string) (Link, error) {
	l, ok := f[path]
	if !ok {
		return Link{}, errors.New("not a link")
	}
	return l, nil
}

type panicLinks struct{}

func (panicLinks) ReadLink(string) (Link, error) {
	panic("com blew up")
}

// fakeShell serves icons from maps keyed by path; missing keys fail.
type fakeShell struct {
	small      map[string]image.Image
	fileInfo   map[string]image.Image
	associated map[string]image.Image
	calls      []string
}

func (f *fakeShell) ExtractSmall(location string, index int) (image.Image, error) {
	f.calls = append(f.calls, "small:"+location)
	return lookup(f.small, location)
}

func (f *fakeShell) FileIcon(path string) (image.Image, error) {
	f.calls = append(f.calls, "fileinfo:"+path)
	return lookup(f.fileInfo, path)
}

func (f *fakeShell) AssociatedIcon(path string) (image.Image, error) {
	f.calls = append(f.calls, "associated:"+path)
	return lookup(f.associated, path)
}

func lookup(m map[string]image.Image, key string) (image.Image, error) {
	if img, ok := m[key]; ok {
		return img, nil
	}
	return nil, ErrNoIcon
}

func TestResolveStrategyOrder(t *testing.T) {
	links := fakeLinks{
		`C:\R\App.lnk`: {Target: `C:\bin\app.exe`},
	}

	tests := []struct {
		name     string
		shell    *fakeShell
		scripts  LinkReader
		strategy string
	}{
		{
			name:     "shell link target icon",
			shell:    &fakeShell{small: map[string]image.Image{`C:\bin\app.exe`: square(16)}},
			strategy: "shelllink",
		},
		{
			name: "wrong sized link icon falls through to file info",
			shell: &fakeShell{
				small:    map[string]image.Image{`C:\bin\app.exe`: square(32)},
				fileInfo: map[string]image.Image{`C:\bin\app.exe`: square(16)},
			},
			strategy: "target-fileinfo",
		},
		{
			name:     "link file info",
			shell:    &fakeShell{fileInfo: map[string]image.Image{`C:\R\App.lnk`: square(16)}},
			strategy: "link-fileinfo",
		},
		{
			name:     "associated icon is resized",
			shell:    &fakeShell{associated: map[string]image.Image{`C:\bin\app.exe`: square(32)}},
			strategy: "target-associated",
		},
		{
			name:     "script host reports an icon location",
			shell:    &fakeShell{small: map[string]image.Image{`C:\icons\app.ico`: square(16)}},
			scripts:  fakeLinks{`C:\R\App.lnk`: {Target: `C:\bin\app.exe`, IconLocation: `C:\icons\app.ico`}},
			strategy: "scripthost",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(links, tt.scripts, tt.shell, nil)
			out := r.Resolve(`C:\R\App.lnk`)
			require.True(t, out.OK(), "calls: %v", tt.shell.calls)
			assert.Equal(t, tt.strategy, out.Strategy)
			assert.True(t, isSize(out.Image, Size))
		})
	}
}

func TestResolveUnresolvedTargetUsesLinkAssociation(t *testing.T) {
	shell := &fakeShell{associated: map[string]image.Image{`C:\R\broken.lnk`: square(48)}}
	r := NewResolver(fakeLinks{}, nil, shell, nil)

	out := r.Resolve(`C:\R\broken.lnk`)
	require.True(t, out.OK())
	assert.Equal(t, "link-associated", out.Strategy)
	assert.True(t, isSize(out.Image, Size))
}

func TestResolveSkipsLinkAssociationWhenTargetResolved(t *testing.T) {
	shell := &fakeShell{associated: map[string]image.Image{`C:\R\App.lnk`: square(32)}}
	r := NewResolver(fakeLinks{`C:\R\App.lnk`: {Target: `C:\bin\gone.exe`}}, nil, shell, nil)

	assert.False(t, r.Resolve(`C:\R\App.lnk`).OK())
}

func TestResolveNeverPanics(t *testing.T) {
	r := NewResolver(panicLinks{}, panicLinks{}, &fakeShell{}, nil)
	r.Strategies = append([]Strategy{{
		Name: "explodes",
		Fn: func(*Request) (image.Image, error) {
			var m map[string]image.Image
			m["x"] = nil
			return nil, nil
		},
	}}, r.Strategies...)

	var out Outcome
	assert.NotPanics(t, func() {
		out = r.Resolve(`C:\does\not\exist.lnk`)
	})
	assert.Equal(t, None, out)
}

func TestResolveNilExtractorResults(t *testing.T) {
	r := &Resolver{Strategies: []Strategy{
		{Name: "nil", Fn: func(*Request) (image.Image, error) { return nil, nil }},
		{Name: "tiny", Fn: func(*Request) (image.Image, error) { return square(8), nil }},
	}}
	assert.False(t, r.Resolve("x").OK())
}

func TestRequestReadsLinkOnce(t *testing.T) {
	n := 0
	lr := countingLinks(func() { n++ })
	req := NewRequest("a.lnk", lr)

	for i := 0; i < 3; i++ {
		target, err := req.Target()
		require.NoError(t, err)
		assert.Equal(t, "b.exe", target)
	}
	assert.Equal(t, 1, n)

	_, err := req.LinkAt(5)
	assert.ErrorIs(t, err, ErrUnsupported)
}

type countingLinks func()

func (c countingLinks) ReadLink(string) (Link, error) {
	c()
	return Link{Target: "b.exe"}, nil
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in    string
		file  string
		index int
	}{
		{`C:\Windows\system32\shell32.dll,131`, `C:\Windows\system32\shell32.dll`, 131},
		{`C:\app.exe, -2`, `C:\app.exe`, -2},
		{`C:\app.ico`, `C:\app.ico`, 0},
		{`C:\odd,name.ico`, `C:\odd,name.ico`, 0},
	}
	for _, tt := range tests {
		file, index := ParseLocation(tt.in)
		assert.Equal(t, tt.file, file, tt.in)
		assert.Equal(t, tt.index, index, tt.in)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("SHORTCUTTRAY_ROOT", `C:\Windows`)
	assert.Equal(t, `C:\Windows\system32\shell32.dll`, ExpandEnv(`%SHORTCUTTRAY_ROOT%\system32\shell32.dll`))
	assert.Equal(t, `%SHORTCUTTRAY_UNSET%\x`, ExpandEnv(`%SHORTCUTTRAY_UNSET%\x`))
}
