package menu

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintFormat(t *testing.T) {
	fs := setupFs(t, map[string]string{
		"/R/b.lnk":       "12345",
		"/R/a.lnk":       "1",
		"/R/.hidden":     "x",
		"/R/$skip.lnk":   "x",
		"/R/Sub/c.lnk":   "123",
		"/R/.git/config": "x",
	})
	fp := NewDetector(fs, nil).Fingerprint("/R")
	assert.Equal(t, Fingerprint("/R/a.lnk|1\n/R/b.lnk|5\n/R/Sub/c.lnk|3\n"), fp)
}

func TestFingerprintDeterministic(t *testing.T) {
	fs := setupFs(t, map[string]string{
		"/R/a.lnk":     "1",
		"/R/X/b.lnk":   "22",
		"/R/X/Y/c.lnk": "333",
	})
	d := NewDetector(fs, nil)
	assert.Equal(t, d.Fingerprint("/R"), d.Fingerprint("/R"))
	assert.Empty(t, d.Fingerprint("/missing"))
}

func TestFingerprintDetectsChanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(fs afero.Fs) error
	}{
		{"add", func(fs afero.Fs) error { return afero.WriteFile(fs, "/R/X/new.lnk", []byte("n"), 0644) }},
		{"remove", func(fs afero.Fs) error { return fs.Remove("/R/X/b.lnk") }},
		{"resize", func(fs afero.Fs) error { return afero.WriteFile(fs, "/R/a.lnk", []byte("longer"), 0644) }},
		{"rename", func(fs afero.Fs) error { return fs.Rename("/R/a.lnk", "/R/z.lnk") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := setupFs(t, map[string]string{
				"/R/a.lnk":   "1",
				"/R/X/b.lnk": "22",
			})
			d := NewDetector(fs, nil)
			before := d.Fingerprint("/R")
			require.NoError(t, tt.mutate(fs))
			assert.NotEqual(t, before, d.Fingerprint("/R"))
		})
	}
}

func TestFingerprintIgnoresHiddenChanges(t *testing.T) {
	fs := setupFs(t, map[string]string{"/R/a.lnk": "1"})
	d := NewDetector(fs, nil)
	before := d.Fingerprint("/R")

	require.NoError(t, afero.WriteFile(fs, "/R/.cache", []byte("x"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/R/$wip.lnk", []byte("x"), 0644))
	assert.Equal(t, before, d.Fingerprint("/R"))
}

func TestFingerprintInsensitiveToSubdirectoryCount(t *testing.T) {
	fs := setupFs(t, map[string]string{
		"/R/a.lnk": "1",
		"/R/b.lnk": "22",
	})
	d := NewDetector(fs, nil)
	before := d.Fingerprint("/R")

	for _, dir := range []string{"/R/One", "/R/Two", "/R/Three"} {
		require.NoError(t, fs.Mkdir(dir, 0755))
	}
	after := d.Fingerprint("/R")
	assert.Equal(t, before, after)
	assert.Equal(t, 2, countLines(string(after)))
}

func countLines(s string) int {
	n := 0
	for _, c := range s {
		if c == '\n' {
			n++
		}
	}
	return n
}

func TestDetectorChanged(t *testing.T) {
	fs := setupFs(t, map[string]string{"/R/a.lnk": "1"})
	d := NewDetector(fs, nil)

	_, changed := d.Changed("/R")
	assert.True(t, changed, "first call")

	_, changed = d.Changed("/R")
	assert.False(t, changed)

	require.NoError(t, afero.WriteFile(fs, "/R/b.lnk", []byte("2"), 0644))
	fp, changed := d.Changed("/R")
	assert.True(t, changed)
	assert.Contains(t, string(fp), "/R/b.lnk|1\n")

	d.Reset()
	_, changed = d.Changed("/R")
	assert.True(t, changed, "after reset")
}
