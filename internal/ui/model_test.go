package ui

import (
	"image"
	"io"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framepick/internal/config"
	"framepick/internal/decoder"
	"framepick/internal/export"
	"framepick/internal/player"
)

type stubDecoder struct {
	frames int
	pos    int
}

func (d *stubDecoder) FrameCount() int { return d.frames }
func (d *stubDecoder) FPS() float64 { return 30 }
func (d *stubDecoder) Position() int { return d.pos }
func (d *stubDecoder) Seek(i int) {
	if i < 0 {
		i = 0
	}
	if i > d.frames {
		i = d.frames
	}
	d.pos = i
}
func (d *stubDecoder) ReadNext() (*decoder.Frame, error) {
	if d.pos >= d.frames {
		return nil, io.EOF
	}
	f := &decoder.Frame{Image: image.NewRGBA(image.Rect(0, 0, 4, 4)), Index: d.pos}
	d.pos++
	return f, nil
}
func (d *stubDecoder) Close() error { return nil }

func testModel(t *testing.T, frames int, saveDir string) Model {
	t.Helper()
	p := player.New(func(string) (decoder.Decoder, error) {
		return &stubDecoder{frames: frames}, nil
	})
	m := New(Options{
		Player:     p,
		Sequencer:  export.NewSequencer(saveDir),
		ConfigPath: filepath.Join(t.TempDir(), "config.txt"),
		Width:      80,
		Height:     24,
	})
	if frames >= 0 {
		require.NoError(t, p.Open("test.mp4"))
	}
	return m
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyMsg(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSpaceTogglesPlayback(t *testing.T) {
	m := testModel(t, 10, "")

	m, cmd := update(m, keyMsg(" "))
	assert.True(t, m.player.IsPlaying())
	assert.NotNil(t, cmd, "playing must schedule a tick")

	m, _ = update(m, keyMsg(" "))
	assert.False(t, m.player.IsPlaying())
}

func TestStaleTickIsDropped(t *testing.T) {
	m := testModel(t, 10, "")

	m, _ = update(m, keyMsg(" "))
	staleGen := m.player.Generation()
	m, _ = update(m, keyMsg(" ")) // pause; generation moves on

	idx := m.player.CurrentIndex()
	m, cmd := update(m, tickMsg{gen: staleGen})
	assert.Equal(t, idx, m.player.CurrentIndex(), "stale tick must not advance")
	assert.Nil(t, cmd)
}

func TestTickAdvancesAndReschedules(t *testing.T) {
	m := testModel(t, 10, "")

	m, _ = update(m, keyMsg(" "))
	m, cmd := update(m, tickMsg{gen: m.player.Generation()})
	assert.Equal(t, 1, m.player.CurrentIndex())
	assert.NotNil(t, cmd)
}

func TestArrowStepsForcePause(t *testing.T) {
	m := testModel(t, 10, "")
	m, _ = update(m, keyMsg(" "))

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.False(t, m.player.IsPlaying())
	assert.Equal(t, 1, m.player.CurrentIndex())

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, m.player.CurrentIndex())
}

func TestSaveWithoutDirectoryReportsError(t *testing.T) {
	m := testModel(t, 10, "")

	m, _ = update(m, keyMsg("s"))
	assert.Equal(t, statusError, m.statusKind)
	assert.Contains(t, m.status, "save directory")
}

func TestSaveFlashesAndPersists(t *testing.T) {
	dir := t.TempDir()
	m := testModel(t, 10, dir)

	m, _ = update(m, keyMsg("s"))
	assert.Equal(t, statusSaved, m.statusKind)
	assert.Equal(t, "Saved: image_0001.png", m.status)
	assert.True(t, m.flashing)
	assert.FileExists(t, filepath.Join(dir, "image_0001.png"))

	cfg, err := config.Load(m.cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.NextImage)
	assert.Equal(t, dir, cfg.SaveDir)
}

func TestPlayStateChangeShowsOverlay(t *testing.T) {
	m := testModel(t, 10, "")

	m, _ = update(m, keyMsg(" "))
	assert.Equal(t, "▶", m.overlayGlyph)

	m, _ = update(m, keyMsg(" "))
	assert.Equal(t, "⏸", m.overlayGlyph)

	// Fade steps eventually clear the glyph.
	id := m.overlayID
	for i := 0; i < overlayFrames; i++ {
		m, _ = update(m, overlayFadeMsg{id: id})
	}
	assert.Equal(t, "", m.overlayGlyph)
}

func TestSliderDrag(t *testing.T) {
	m := testModel(t, 100, "")
	m, _ = update(m, keyMsg(" "))
	sliderRow := m.videoHeight()

	m, _ = update(m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, X: 0, Y: sliderRow})
	assert.True(t, m.sliderHeld)
	assert.False(t, m.player.IsPlaying(), "grabbing the slider pauses")

	m, _ = update(m, tea.MouseMsg{Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft, X: m.width - 1, Y: sliderRow})
	assert.Equal(t, 99, m.sliderPos)
	assert.Equal(t, 99, m.player.CurrentIndex(), "live seek follows the drag")

	m, _ = update(m, tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft, X: m.width - 1, Y: sliderRow})
	assert.False(t, m.sliderHeld)
	assert.Equal(t, 99, m.player.CurrentIndex())
}

func TestVideoAreaClicks(t *testing.T) {
	m := testModel(t, 10, t.TempDir())

	m, _ = update(m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, X: 5, Y: 2})
	assert.True(t, m.player.IsPlaying())

	m, _ = update(m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight, X: 5, Y: 2})
	assert.Equal(t, "Saved: image_0001.png", m.status)
}

func TestChooseDirPrompt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "image_0007.png"), []byte("x"), 0o644))

	m := testModel(t, 10, "")
	m, _ = update(m, keyMsg("d"))
	assert.Equal(t, promptDir, m.prompt)

	m.input.SetValue(dir)
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, promptNone, m.prompt)
	assert.Equal(t, dir, m.seq.Dir())
	assert.Equal(t, 8, m.seq.NextIndex())
}

func TestPromptEscCancels(t *testing.T) {
	m := testModel(t, 10, "")
	m, _ = update(m, keyMsg("o"))
	assert.Equal(t, promptVideo, m.prompt)
	assert.False(t, m.player.IsPlaying())

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, promptNone, m.prompt)
}

func TestPromptSwallowsGlobalKeys(t *testing.T) {
	m := testModel(t, 10, "")
	m, _ = update(m, keyMsg("o"))

	// 's' must type into the input, not trigger a save.
	m, _ = update(m, keyMsg("s"))
	assert.Equal(t, "", m.status)
	assert.Contains(t, m.input.Value(), "s")
}

func TestQuitPersistsConfig(t *testing.T) {
	m := testModel(t, 10, "")

	_, cmd := update(m, keyMsg("q"))
	require.NotNil(t, cmd)
	assert.FileExists(t, m.cfgPath)

	cfg, err := config.Load(m.cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "test.mp4", cfg.LastVideo)
}

func TestViewRendersAllRows(t *testing.T) {
	m := testModel(t, 10, "")
	view := m.View()
	assert.Contains(t, view, "Frame: 0 / 10")
	assert.Contains(t, view, "Next image: 1")
}

func TestFrameAtColumn(t *testing.T) {
	m := testModel(t, 100, "")
	assert.Equal(t, 0, m.frameAtColumn(-3))
	assert.Equal(t, 0, m.frameAtColumn(0))
	assert.Equal(t, 99, m.frameAtColumn(m.width-1))
	assert.Equal(t, 99, m.frameAtColumn(m.width+10))
}
