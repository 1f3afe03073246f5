// Package ui is the presentation layer: a Bubble Tea model that renders the
// current frame, scrub bar, and status, and routes every key, mouse, and
// timer event into the playback cursor and save sequencer. All core state
// transitions happen inside Update, on the program's single event loop.
package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"framepick/internal/config"
	"framepick/internal/export"
	"framepick/internal/player"
)

// Rows below the video area: scrub bar, info line, status line, help line.
const chromeRows = 4

const (
	statusTTL     = 3 * time.Second
	overlayStep   = 120 * time.Millisecond
	overlayFrames = 5 // glyph visibility in overlay steps before it fades out
	flashTTL      = 300 * time.Millisecond
)

type promptKind int

const (
	promptNone promptKind = iota
	promptVideo
	promptDir
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusError
	statusSaved
)

// Messages.
type (
	// tickMsg advances playback; gen pins it to one playback run so ticks
	// queued before a pause are discarded, never executed.
	tickMsg struct{ gen int }

	statusExpireMsg struct{ id int }
	overlayFadeMsg  struct{ id int }
	flashExpireMsg  struct{ id int }
)

// effects collects observer notifications emitted by the core during one
// Update turn; the model drains it into visual state afterwards. A pointer
// survives bubbletea's copying of the model value.
type effects struct {
	playState []bool
	saved     []string
}

// Model is the application state.
type Model struct {
	player *player.Player
	seq    *export.Sequencer

	cfg      config.Config
	cfgPath  string
	readOnly bool

	fx *effects

	width  int
	height int

	slider     progress.Model
	sliderHeld bool
	sliderPos  int

	input  textinput.Model
	prompt promptKind

	keys keyMap
	help help.Model

	status     string
	statusKind statusKind
	statusID   int

	overlayGlyph string
	overlayTTL   int
	overlayID    int

	flashing bool
	flashID  int

	frameView string
}

// Options configures a session.
type Options struct {
	Player     *player.Player
	Sequencer  *export.Sequencer
	Config     config.Config
	ConfigPath string
	// ReadOnly sessions (SSH viewers) never rewrite the config store.
	ReadOnly bool
	Width    int
	Height   int
}

// New wires the core into a fresh model. The player and sequencer are
// expected to be freshly constructed; their observer callbacks are claimed
// here.
func New(opts Options) Model {
	fx := &effects{}
	opts.Player.OnPlayStateChanged = func(on bool) { fx.playState = append(fx.playState, on) }
	opts.Sequencer.OnSaved = func(name string) { fx.saved = append(fx.saved, name) }

	input := textinput.New()
	input.CharLimit = 0

	m := Model{
		player:   opts.Player,
		seq:      opts.Sequencer,
		cfg:      opts.Config,
		cfgPath:  opts.ConfigPath,
		readOnly: opts.ReadOnly,
		fx:       fx,
		width:    opts.Width,
		height:   opts.Height,
		slider:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		input:    input,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
	if m.width > 0 {
		m.slider.Width = m.width
		m.help.Width = m.width
	}
	m.refreshFrame()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		return m.updateKeys(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tickMsg:
		// A pause, seek, or reopen bumps the generation; this tick is stale.
		if msg.gen != m.player.Generation() || !m.player.IsPlaying() {
			return m, nil
		}
		m.player.Tick()
		m.refreshFrame()
		cmds := m.drainEffects()
		if m.player.IsPlaying() {
			cmds = append(cmds, m.tickCmd())
		}
		return m, tea.Batch(cmds...)

	case statusExpireMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil

	case overlayFadeMsg:
		if msg.id != m.overlayID {
			return m, nil
		}
		m.overlayTTL--
		if m.overlayTTL <= 0 {
			m.overlayGlyph = ""
			return m, nil
		}
		return m, tea.Tick(overlayStep, func(time.Time) tea.Msg { return overlayFadeMsg{id: msg.id} })

	case flashExpireMsg:
		if msg.id == m.flashID {
			m.flashing = false
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.slider.Width = msg.Width
		m.help.Width = msg.Width
		m.refreshFrame()
		return m, nil
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m.quit()

	case key.Matches(msg, k.PlayPause):
		m.player.Toggle()
		return m.afterTransport()

	case key.Matches(msg, k.StepBack):
		m.player.SetPlaying(false)
		m.player.Step(-1)
		return m.afterTransport()

	case key.Matches(msg, k.StepFwd):
		m.player.SetPlaying(false)
		m.player.Step(+1)
		return m.afterTransport()

	case key.Matches(msg, k.Restart):
		m.player.Restart()
		return m.afterTransport()

	case key.Matches(msg, k.Save):
		return m.saveFrame()

	case key.Matches(msg, k.Open):
		return m.openPrompt(promptVideo)

	case key.Matches(msg, k.ChooseDir):
		return m.openPrompt(promptDir)
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := m.input.Value()
		kind := m.prompt
		m.prompt = promptNone
		m.input.Blur()
		if value == "" {
			return m, nil
		}
		if kind == promptVideo {
			return m.openVideo(value)
		}
		return m.chooseDir(value)

	case "esc", "ctrl+c":
		m.prompt = promptNone
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	videoRows := m.videoHeight()
	sliderRow := videoRows

	switch {
	case msg.Action == tea.MouseActionPress && msg.Y == sliderRow:
		if !m.player.IsOpen() {
			return m, nil
		}
		m.sliderHeld = true
		m.player.SetPlaying(false)
		m.sliderPos = m.frameAtColumn(msg.X)
		m.player.SeekTo(m.sliderPos)
		m.refreshFrame()
		return m, tea.Batch(m.drainEffects()...)

	case msg.Action == tea.MouseActionMotion && m.sliderHeld:
		m.sliderPos = m.frameAtColumn(msg.X)
		m.player.SeekTo(m.sliderPos)
		m.refreshFrame()
		return m, nil

	case msg.Action == tea.MouseActionRelease && m.sliderHeld:
		// One authoritative seek resyncs decode position to the released
		// slider value.
		m.sliderHeld = false
		m.player.SeekTo(m.sliderPos)
		m.refreshFrame()
		return m, nil

	case msg.Action == tea.MouseActionPress && msg.Y < videoRows:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.player.Toggle()
			return m.afterTransport()
		case tea.MouseButtonRight:
			return m.saveFrame()
		}
	}
	return m, nil
}

// afterTransport refreshes the frame and schedules ticks/effects after any
// play/pause/seek intent.
func (m Model) afterTransport() (tea.Model, tea.Cmd) {
	m.refreshFrame()
	cmds := m.drainEffects()
	if m.player.IsPlaying() {
		cmds = append(cmds, m.tickCmd())
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) tickCmd() tea.Cmd {
	gen := m.player.Generation()
	return tea.Tick(m.player.TickInterval(), func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// drainEffects converts observer notifications from the core into overlay
// and status updates.
func (m *Model) drainEffects() []tea.Cmd {
	var cmds []tea.Cmd
	for _, on := range m.fx.playState {
		glyph := "⏸"
		if on {
			glyph = "▶"
		}
		m.overlayGlyph = glyph
		m.overlayTTL = overlayFrames
		m.overlayID++
		id := m.overlayID
		cmds = append(cmds, tea.Tick(overlayStep, func(time.Time) tea.Msg { return overlayFadeMsg{id: id} }))
	}
	m.fx.playState = nil

	for _, name := range m.fx.saved {
		cmds = append(cmds, m.setStatus(statusSaved, "Saved: "+name))
		m.flashing = true
		m.flashID++
		id := m.flashID
		cmds = append(cmds, tea.Tick(flashTTL, func(time.Time) tea.Msg { return flashExpireMsg{id: id} }))
	}
	m.fx.saved = nil
	return cmds
}

func (m *Model) setStatus(kind statusKind, text string) tea.Cmd {
	m.status = text
	m.statusKind = kind
	m.statusID++
	id := m.statusID
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return statusExpireMsg{id: id} })
}

func (m Model) openPrompt(kind promptKind) (tea.Model, tea.Cmd) {
	m.player.SetPlaying(false)
	m.prompt = kind
	if kind == promptVideo {
		m.input.Placeholder = "path to a video file or frame directory"
		m.input.SetValue(m.cfg.LastVideo)
	} else {
		m.input.Placeholder = "directory to save frames into"
		m.input.SetValue(m.seq.Dir())
	}
	m.input.CursorEnd()
	cmds := append(m.drainEffects(), m.input.Focus())
	return m, tea.Batch(cmds...)
}

func (m Model) openVideo(path string) (tea.Model, tea.Cmd) {
	if err := m.player.Open(path); err != nil {
		m.refreshFrame()
		cmds := append(m.drainEffects(), m.setStatus(statusError, "Failed to open video."))
		return m, tea.Batch(cmds...)
	}
	m.cfg.LastVideo = path
	m.persist()
	m.refreshFrame()
	cmds := append(m.drainEffects(),
		m.setStatus(statusInfo, fmt.Sprintf("Opened %s (%d frames)", path, m.player.FrameCount())))
	return m, tea.Batch(cmds...)
}

func (m Model) chooseDir(dir string) (tea.Model, tea.Cmd) {
	m.seq.SetDir(dir)
	m.cfg.SaveDir = dir
	m.persist()
	return m, m.setStatus(statusInfo, fmt.Sprintf("Save directory set, next image %d", m.seq.NextIndex()))
}

func (m Model) saveFrame() (tea.Model, tea.Cmd) {
	frame := m.player.Frame()
	if frame == nil {
		return m, nil
	}
	_, err := m.seq.Save(frame.Image)
	switch {
	case errors.Is(err, export.ErrNoDirectory):
		return m, m.setStatus(statusError, "Please select a save directory first.")
	case err != nil:
		log.Error("save failed", "err", err)
		return m, m.setStatus(statusError, "Could not save image.")
	}
	m.persist()
	return m, tea.Batch(m.drainEffects()...)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Shutdown()
	return m, tea.Quit
}

// Shutdown persists the session and releases the decoder (and with it any
// extracted-frame temp directory). Safe to call more than once.
func (m Model) Shutdown() {
	m.persist()
	m.player.Close()
}

// persist mirrors live state into the config store. Best effort: a failed
// write is logged, never surfaced.
func (m *Model) persist() {
	if m.readOnly {
		return
	}
	m.cfg.SaveDir = m.seq.Dir()
	m.cfg.NextImage = m.seq.NextIndex()
	if p := m.player.Path(); p != "" {
		m.cfg.LastVideo = p
	}
	if err := m.cfg.Save(m.cfgPath); err != nil {
		log.Error("persist config", "err", err)
	}
}

func (m *Model) refreshFrame() {
	w, h := m.width, m.videoHeight()
	if w < 1 || h < 1 {
		m.frameView = ""
		return
	}
	if frame := m.player.Frame(); frame != nil {
		m.frameView = renderFrame(frame.Image, w, h)
	} else {
		m.frameView = ""
	}
}

func (m Model) videoHeight() int {
	h := m.height - chromeRows
	if h < 1 {
		h = 1
	}
	return h
}

// frameAtColumn maps a scrub-bar column to a frame index.
func (m Model) frameAtColumn(x int) int {
	n := m.player.FrameCount()
	if n < 2 || m.width < 2 {
		return 0
	}
	if x < 0 {
		x = 0
	}
	if x >= m.width {
		x = m.width - 1
	}
	return x * (n - 1) / (m.width - 1)
}

