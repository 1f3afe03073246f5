package decoder

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var frameNumber = regexp.MustCompile(`(\d+)\D*$`)

// Sequence serves a directory of numbered raster images as a video stream.
// Frames are ordered by the last number embedded in each filename, so both
// ffmpeg-style dumps (frame_000001.png) and loose collections (shot-12.jpg)
// scrub in the expected order. Seeks are exact.
type Sequence struct {
	files   []string
	pos     int
	fps     float64
	cleanup func() // removes the backing temp dir, if any
}

// OpenSequence lists the image files under dir. fps may be 0 when the rate is
// unknown; cleanup, if non-nil, runs on Close.
func OpenSequence(dir string, fps float64, cleanup func()) (*Sequence, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read frame dir: %w", err)
	}

	type numbered struct {
		path string
		num  int
	}
	frames := make([]numbered, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch strings.ToLower(filepath.Ext(name)) {
		case ".png", ".jpg", ".jpeg", ".bmp":
		default:
			continue
		}
		frames = append(frames, numbered{
			path: filepath.Join(dir, name),
			num:  extractFrameNumber(name),
		})
	}
	sort.Slice(frames, func(i, j int) bool {
		if frames[i].num != frames[j].num {
			return frames[i].num < frames[j].num
		}
		return frames[i].path < frames[j].path
	})

	files := make([]string, len(frames))
	for i, f := range frames {
		files[i] = f.path
	}
	return &Sequence{files: files, fps: fps, cleanup: cleanup}, nil
}

func (s *Sequence) FrameCount() int { return len(s.files) }
func (s *Sequence) FPS() float64 { return s.fps }
func (s *Sequence) Position() int { return s.pos }

// Seek positions the next read. Out-of-range targets are pinned to the valid
// range; seeking to FrameCount() parks the cursor at end of stream.
func (s *Sequence) Seek(index int) {
	if index < 0 {
		index = 0
	}
	if index > len(s.files) {
		index = len(s.files)
	}
	s.pos = index
}

func (s *Sequence) ReadNext() (*Frame, error) {
	if s.pos >= len(s.files) {
		return nil, io.EOF
	}
	f, err := os.Open(s.files[s.pos])
	if err != nil {
		return nil, fmt.Errorf("open frame %d: %w", s.pos, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode frame %d: %w", s.pos, err)
	}
	frame := &Frame{Image: img, Index: s.pos}
	s.pos++
	return frame, nil
}

func (s *Sequence) Close() error {
	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}
	return nil
}

// extractFrameNumber pulls the trailing number out of a frame filename like
// "frame_000042.png". Filenames without one sort first, in name order.
func extractFrameNumber(name string) int {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	m := frameNumber.FindStringSubmatch(base)
	if m == nil {
		return 0
	}
	if n, err := strconv.Atoi(m[1]); err == nil {
		return n
	}
	return 0
}
