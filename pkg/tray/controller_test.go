package tray

import (
	"errors"
	"image"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/manifold/shortcuttray/pkg/config"
	"github.com/manifold/shortcuttray/pkg/menu"
	"github.com/manifold/shortcuttray/pkg/shell"
)

type mockPopup struct {
	mock.Mock
}

func (m *mockPopup) Render(entries []*menu.Entry) { m.Called(entries) }
func (m *mockPopup) Show(anchor image.Point)      { m.Called(anchor) }
func (m *mockPopup) Hide()                        { m.Called() }
func (m *mockPopup) Quit()                        { m.Called() }
func (m *mockPopup) Size(entries []*menu.Entry) image.Point {
	return m.Called(entries).Get(0).(image.Point)
}

type launch struct {
	target   string
	elevated bool
}

type fakeLauncher struct {
	mu       sync.Mutex
	launches []launch
	err      error
}

func (f *fakeLauncher) Launch(target string, elevated bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.launches = append(f.launches, launch{target, elevated})
	return f.err
}

type memPrefs struct {
	saved []config.Preferences
}

func (m *memPrefs) Load() (config.Preferences, error) { return config.DefaultPreferences(), nil }
func (m *memPrefs) Save(p config.Preferences) error {
	m.saved = append(m.saved, p)
	return nil
}

type countingPruner int

func (c *countingPruner) Prune() { *c++ }

func setup(t *testing.T) (*Controller, afero.Fs, *mockPopup, *fakeLauncher) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/R/App.lnk", []byte("link"), 0644))
	require.NoError(t, fs.MkdirAll("/R/A", 0755))

	p := new(mockPopup)
	p.On("Size", mock.Anything).Return(image.Pt(200, 100))
	p.On("Render", mock.Anything).Return()
	p.On("Show", mock.Anything).Return()
	l := new(fakeLauncher)
	c := NewController("/R", menu.NewBuilder(fs, nil, nil), menu.NewDetector(fs, nil), l, p, nil)
	return c, fs, p, l
}

func find(entries []*menu.Entry, kind menu.Kind) *menu.Entry {
	for _, e := range entries {
		if e.Kind == kind {
			return e
		}
	}
	return nil
}

func rendered(p *mockPopup) []*menu.Entry {
	var last []*menu.Entry
	for _, call := range p.Calls {
		if call.Method == "Render" {
			last = call.Arguments.Get(0).([]*menu.Entry)
		}
	}
	return last
}

func TestOpenBuildsAndShows(t *testing.T) {
	c, _, p, _ := setup(t)
	assert.Equal(t, Idle, c.State())

	c.Open(image.Pt(500, 400))
	assert.Equal(t, Showing, c.State())
	p.AssertCalled(t, "Show", image.Pt(300, 300))

	entries := rendered(p)
	var labels []string
	for _, e := range entries {
		labels = append(labels, e.Label)
	}
	assert.Equal(t, []string{`Open folder "R"`, "A", "App", "", SettingsLabel, ExitLabel}, labels)
	assert.True(t, find(entries, menu.KindSettings).Checked)
}

func TestOpenTogglesWhileShowing(t *testing.T) {
	c, _, p, _ := setup(t)
	p.On("Hide").Return()

	c.Open(image.Pt(10, 10))
	c.Open(image.Pt(10, 10))
	assert.Equal(t, Idle, c.State())
	p.AssertNumberOfCalls(t, "Show", 1)
	p.AssertNumberOfCalls(t, "Hide", 1)
}

func TestOpenRebuildsOnlyWhenChanged(t *testing.T) {
	c, fs, p, _ := setup(t)
	pruned := new(countingPruner)
	c.Icons = pruned

	c.Open(image.Pt(0, 0))
	c.Dismiss()
	c.Open(image.Pt(0, 0))
	c.Dismiss()
	p.AssertNumberOfCalls(t, "Render", 1)
	assert.Equal(t, 1, int(*pruned))

	require.NoError(t, afero.WriteFile(fs, "/R/New.lnk", []byte("n"), 0644))
	c.Open(image.Pt(0, 0))
	c.Dismiss()
	p.AssertNumberOfCalls(t, "Render", 2)
	assert.Len(t, rendered(p), 7)

	// an empty directory does not change the fingerprint
	require.NoError(t, fs.Mkdir("/R/Empty", 0755))
	c.Open(image.Pt(0, 0))
	c.Dismiss()
	p.AssertNumberOfCalls(t, "Render", 2)

	c.Invalidate()
	c.Open(image.Pt(0, 0))
	p.AssertNumberOfCalls(t, "Render", 3)
	assert.Len(t, rendered(p), 8)
	assert.Equal(t, 3, int(*pruned))
}

func TestAnchor(t *testing.T) {
	size := image.Pt(200, 300)
	assert.Equal(t, image.Pt(800, 700), Anchor(image.Pt(1000, 1000), size))
	assert.Equal(t, image.Pt(0, 700), Anchor(image.Pt(50, 1000), size))
	assert.Equal(t, image.Pt(800, 0), Anchor(image.Pt(1000, 20), size))
	assert.Equal(t, image.Pt(0, 0), Anchor(image.Pt(0, 0), size))
}

func TestModifierConsumedOnce(t *testing.T) {
	c, _, _, l := setup(t)
	c.ElevateKey = shell.KeyShift
	app := &menu.Entry{Label: "App", Kind: menu.KindShortcut, Target: "/R/App.lnk"}

	c.Open(image.Pt(0, 0))
	c.KeyDown(shell.KeyShift)
	c.Activate(app)
	assert.Equal(t, Idle, c.State())

	c.Open(image.Pt(0, 0))
	c.Activate(app)

	assert.Equal(t, []launch{{"/R/App.lnk", true}, {"/R/App.lnk", false}}, l.launches)
}

func TestModifierIgnoredOutsideShowing(t *testing.T) {
	c, _, _, l := setup(t)
	app := &menu.Entry{Kind: menu.KindShortcut, Target: "/R/App.lnk"}

	c.KeyDown(shell.KeyShift)
	c.Open(image.Pt(0, 0))
	c.Activate(app)
	assert.False(t, l.launches[0].elevated)
}

func TestModifierKeyUpAndOtherKeys(t *testing.T) {
	c, _, _, l := setup(t)
	app := &menu.Entry{Kind: menu.KindShortcut, Target: "/R/App.lnk"}

	c.Open(image.Pt(0, 0))
	c.KeyDown(shell.KeyCtrl)
	c.Activate(app)

	c.Open(image.Pt(0, 0))
	c.KeyDown(shell.KeyShift)
	c.KeyUp(shell.KeyShift)
	c.Activate(app)

	c.Open(image.Pt(0, 0))
	c.KeyDown(shell.KeyShift)
	c.Dismiss()
	c.Open(image.Pt(0, 0))
	c.Activate(app)

	for _, got := range l.launches {
		assert.False(t, got.elevated)
	}
	assert.Len(t, l.launches, 3)
}

func TestActivateOpenFolderNeverElevates(t *testing.T) {
	c, _, _, l := setup(t)
	c.Open(image.Pt(0, 0))
	c.KeyDown(shell.KeyShift)
	c.Activate(&menu.Entry{Kind: menu.KindOpenFolder, Target: "/R"})
	assert.Equal(t, []launch{{"/R", false}}, l.launches)
}

func TestLaunchFailureKeepsTrayAlive(t *testing.T) {
	c, _, p, l := setup(t)
	l.err = errors.New("no such file")

	c.Open(image.Pt(0, 0))
	c.Activate(&menu.Entry{Kind: menu.KindShortcut, Target: "/R/gone.lnk"})
	assert.Equal(t, Idle, c.State())

	c.Open(image.Pt(0, 0))
	assert.Equal(t, Showing, c.State())
	p.AssertNumberOfCalls(t, "Show", 2)
	p.AssertNotCalled(t, "Quit")
}

func TestActivateSettingsTogglesAndSaves(t *testing.T) {
	c, _, p, _ := setup(t)
	prefs := new(memPrefs)
	c.Prefs = prefs

	c.Open(image.Pt(0, 0))
	c.Activate(find(rendered(p), menu.KindSettings))
	require.Len(t, prefs.saved, 1)
	assert.False(t, prefs.saved[0].ShowMessage)
	assert.False(t, c.Preferences().ShowMessage)

	c.Open(image.Pt(0, 0))
	p.AssertNumberOfCalls(t, "Render", 2)
	assert.False(t, find(rendered(p), menu.KindSettings).Checked)
}

func TestActivateExitQuits(t *testing.T) {
	c, _, p, l := setup(t)
	p.On("Quit").Return().Once()

	c.Open(image.Pt(0, 0))
	c.Activate(find(rendered(p), menu.KindExit))
	p.AssertExpectations(t)
	assert.Empty(t, l.launches)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "showing", Showing.String())
	assert.Equal(t, "State(9)", State(9).String())
}
