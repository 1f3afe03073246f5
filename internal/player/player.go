// Package player owns the playback cursor: one decoded frame, one position,
// and the Unopened/Paused/Playing state machine every navigation intent goes
// through. It holds the only reference to the decoder; callers interact via
// Open/SeekTo/Step/SetPlaying and read back the current frame and index.
//
// The package is written for a single-threaded event loop: every method runs
// to completion inside one event handler's turn, so there is no locking.
package player

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"framepick/internal/decoder"
)

// DefaultFPS substitutes for sources that report a nonpositive frame rate.
const DefaultFPS = 30.0

// OpenFunc opens a path as a frame source. Swappable for tests.
type OpenFunc func(path string) (decoder.Decoder, error)

// Player mediates all navigation against the decoder.
type Player struct {
	open OpenFunc

	dec        decoder.Decoder
	path       string
	frameCount int
	fps        float64

	index   int
	frame   *decoder.Frame
	playing bool

	// generation increments every time playback starts or stops; ticks
	// scheduled under an older generation must be dropped by the caller.
	generation int

	// OnPlayStateChanged fires on every Paused<->Playing transition.
	OnPlayStateChanged func(playing bool)
}

// New builds a player that opens sources with open (decoder.Open when nil).
func New(open OpenFunc) *Player {
	if open == nil {
		open = decoder.Open
	}
	return &Player{open: open}
}

func (p *Player) IsOpen() bool { return p.dec != nil }
func (p *Player) IsPlaying() bool { return p.playing }
func (p *Player) Path() string { return p.path }
func (p *Player) FrameCount() int { return p.frameCount }
func (p *Player) FPS() float64 { return p.fps }
func (p *Player) CurrentIndex() int { return p.index }

// Frame returns the current decoded frame as a read-only render target, or
// nil when nothing has been decoded yet.
func (p *Player) Frame() *decoder.Frame { return p.frame }

// Generation identifies the current playback run; see Player.generation.
func (p *Player) Generation() int { return p.generation }

// TickInterval is the playback cadence derived from the source frame rate.
func (p *Player) TickInterval() time.Duration {
	fps := p.fps
	if fps <= 0 {
		fps = DefaultFPS
	}
	ms := math.Round(1000 / fps)
	if ms < 1 {
		ms = 1
	}
	return time.Duration(ms) * time.Millisecond
}

// Open releases any prior source and opens path. On failure the player is
// left Unopened with no current frame (unless nothing was open before, in
// which case there was nothing to lose). On success the cursor rests Paused
// on frame 0.
func (p *Player) Open(path string) error {
	p.SetPlaying(false) // no residual tick may fire against a half-swapped session
	if p.dec != nil {
		p.dec.Close()
		p.dec = nil
		p.frame = nil
		p.frameCount = 0
		p.fps = 0
		p.index = 0
		p.path = ""
	}

	dec, err := p.open(path)
	if err != nil {
		log.Error("open failed", "path", path, "err", err)
		return fmt.Errorf("open video: %w", err)
	}

	p.dec = dec
	p.path = path
	p.frameCount = dec.FrameCount()
	p.fps = dec.FPS()
	if p.fps <= 0 {
		p.fps = DefaultFPS
	}
	p.index = 0
	p.SeekTo(0)
	return nil
}

// Close releases the decoder and returns the player to Unopened.
func (p *Player) Close() {
	p.SetPlaying(false)
	if p.dec != nil {
		p.dec.Close()
		p.dec = nil
	}
	p.frame = nil
	p.frameCount = 0
	p.fps = 0
	p.index = 0
	p.path = ""
}

// SeekTo clamps target to the valid range, positions the decoder there, and
// reads one frame. On success the decoder's reported position is ground
// truth for the new index (codecs may not land exactly where asked). On a
// failed read the prior frame and index stay put.
func (p *Player) SeekTo(target int) {
	if p.dec == nil {
		return
	}
	target = clamp(target, 0, p.frameCount-1)

	p.dec.Seek(target)
	frame, err := p.dec.ReadNext()
	if err != nil {
		return
	}
	p.index = p.dec.Position() - 1
	p.frame = frame
}

// Step is a relative seek from the current index.
func (p *Player) Step(delta int) {
	p.SeekTo(p.index + delta)
}

// SetPlaying starts or stops playback. Playing requires an opened source
// with at least one frame. Reports whether the play state changed.
func (p *Player) SetPlaying(on bool) bool {
	if on && (p.dec == nil || p.frameCount == 0) {
		return false
	}
	if on == p.playing {
		return false
	}
	p.playing = on
	p.generation++
	if p.OnPlayStateChanged != nil {
		p.OnPlayStateChanged(on)
	}
	return true
}

// Toggle flips Playing<->Paused. No-op while Unopened.
func (p *Player) Toggle() bool {
	if p.dec == nil {
		return false
	}
	return p.SetPlaying(!p.playing)
}

// Restart rewinds to frame 0 and starts playback from a clean stop.
func (p *Player) Restart() {
	if p.dec == nil {
		return
	}
	p.SetPlaying(false)
	p.SeekTo(0)
	p.SetPlaying(true)
}

// Tick advances playback by one sequential read. End of stream is not an
// error: playback simply stops. Reports whether the player is still playing.
func (p *Player) Tick() bool {
	if p.dec == nil || !p.playing {
		return false
	}
	frame, err := p.dec.ReadNext()
	if err != nil {
		p.SetPlaying(false)
		return false
	}
	p.index = p.dec.Position() - 1
	p.frame = frame
	return true
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
