package decoder

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// openVideo extracts every frame of the video at path into a temp directory
// with ffmpeg and serves the result as a Sequence. The temp directory lives
// until the decoder is closed.
func openVideo(path string) (*Sequence, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	fps, err := probeFPS(path)
	if err != nil {
		// Unknown rate is survivable; the cursor falls back to a default.
		log.Warn("could not probe frame rate", "path", path, "err", err)
		fps = 0
	}

	tmpDir, err := os.MkdirTemp("", "framepick_*")
	if err != nil {
		return nil, fmt.Errorf("create frame dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(tmpDir) }

	pattern := filepath.Join(tmpDir, "frame_%06d.png")
	cmd := exec.Command("ffmpeg",
		"-i", path,
		"-y",
		pattern,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("ffmpeg: %w: %s", err, tail(string(output)))
	}

	seq, err := OpenSequence(tmpDir, fps, cleanup)
	if err != nil {
		cleanup()
		return nil, err
	}
	log.Info("video opened", "path", path, "frames", seq.FrameCount(), "fps", fps)
	return seq, nil
}

// probeFPS asks ffprobe for the stream's r_frame_rate, reported as a
// rational like "30000/1001".
func probeFPS(path string) (float64, error) {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=r_frame_rate",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}
	return parseRate(strings.TrimSpace(string(output)))
}

func parseRate(s string) (float64, error) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("parse frame rate %q: %w", s, err)
		}
		return f, nil
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("parse frame rate %q: %w", s, err)
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, fmt.Errorf("parse frame rate %q", s)
	}
	return n / d, nil
}

// tail trims ffmpeg's chatty output down to its last few lines, which is
// where the actual error lives.
func tail(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > 4 {
		lines = lines[len(lines)-4:]
	}
	return strings.Join(lines, "\n")
}
