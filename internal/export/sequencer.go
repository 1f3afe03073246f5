// Package export numbers and writes exported frames. The next index is never
// trusted on its own: it is re-derived from the directory contents before
// every save, so files added or removed by other programs between saves are
// tolerated.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"framepick/internal/scan"
)

// ErrNoDirectory is returned by Save when no save directory has been chosen.
var ErrNoDirectory = errors.New("no save directory selected")

// Sequencer owns the next-save-index counter for a save directory.
type Sequencer struct {
	dir  string
	next int

	// OnSaved, when set, is called with the bare filename after each
	// successful save. Presentation hooks go here; the sequencer itself
	// stays silent.
	OnSaved func(filename string)
}

// NewSequencer derives the initial counter from dir (which may be empty).
func NewSequencer(dir string) *Sequencer {
	s := &Sequencer{}
	s.SetDir(dir)
	return s
}

// SetDir points the sequencer at a different directory and re-derives the
// counter from its contents.
func (s *Sequencer) SetDir(dir string) {
	s.dir = dir
	s.Rescan()
}

// Rescan recomputes the next index as largest-found + 1. With no directory
// selected the counter rests at 1.
func (s *Sequencer) Rescan() {
	if s.dir == "" {
		s.next = 1
		return
	}
	s.next = scan.LargestNumber(s.dir) + 1
}

func (s *Sequencer) Dir() string    { return s.dir }
func (s *Sequencer) NextIndex() int { return s.next }

// Save writes img as the next numbered PNG and returns the bare filename.
// The directory is created if absent and rescanned first; the counter only
// advances after the file is on disk.
func (s *Sequencer) Save(img image.Image) (string, error) {
	if s.dir == "" {
		return "", ErrNoDirectory
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create save dir: %w", err)
	}

	s.Rescan()

	// Zero-padded to 4 digits; indices past 9999 simply render wider.
	filename := fmt.Sprintf("image_%04d.png", s.next)
	path := filepath.Join(s.dir, filename)

	if err := writePNG(path, img); err != nil {
		return "", err
	}

	s.next++
	log.Info("frame saved", "file", filename, "next", s.next)
	if s.OnSaved != nil {
		s.OnSaved(filename)
	}
	return filename, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
