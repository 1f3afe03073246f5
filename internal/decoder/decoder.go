// Package decoder turns a video resource into a seekable stream of decoded
// frames. Videos are handed to ffmpeg, which dumps every frame into a managed
// temp directory; a directory of numbered images is served as-is. Either way
// the caller scrubs over a plain image sequence with exact positions.
package decoder

import (
	"fmt"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"
)

// Frame is one decoded image paired with the index it was read at.
type Frame struct {
	Image image.Image
	Index int
}

// Decoder is the narrow contract the playback cursor consumes. Position is
// the index of the next frame ReadNext will deliver; after a successful read
// the delivered frame's index is Position()-1. ReadNext returns io.EOF at
// end of stream.
type Decoder interface {
	FrameCount() int
	// FPS reports the source frame rate, or 0 when unknown.
	FPS() float64
	Position() int
	Seek(index int)
	ReadNext() (*Frame, error)
	Close() error
}

// Open opens path as a frame source: a directory is read as a numbered image
// sequence, anything else is extracted with ffmpeg first.
func Open(path string) (Decoder, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if info.IsDir() {
		return OpenSequence(path, 0, nil)
	}
	return openVideo(path)
}
