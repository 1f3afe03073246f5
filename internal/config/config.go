// Package config persists the scrub session between runs: the last opened
// video, the save directory, and the next export index. The on-disk format is
// a tiny key=value text file shared with earlier versions of the tool, so it
// is read and written by hand rather than through a structured codec.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const header = "# Simple config for Video Dataset Preparation Tool"

// Config mirrors the persisted session fields. NextImage == 0 means the index
// was absent or unparsable and must be re-derived from the save directory.
type Config struct {
	LastVideo string
	SaveDir   string
	NextImage int
}

// Load reads the config file at path. A missing file is not an error; it
// yields a zero Config. Blank lines, #-comments, unknown keys, and lines
// without '=' are skipped. A malformed integer only discards that one field.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads key=value lines from r.
func Parse(r io.Reader) (Config, error) {
	var cfg Config
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		eq := strings.Index(line, "=")
		if eq <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:eq])
		val := strings.TrimSpace(line[eq+1:])

		switch key {
		case "last_video":
			cfg.LastVideo = val
		case "save_dir":
			cfg.SaveDir = val
		case "next_image":
			if n, err := strconv.Atoi(val); err == nil && n > 0 {
				cfg.NextImage = n
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}

// Save rewrites the config file with exactly the three recognized keys,
// creating the parent directory if needed. The file is never merged.
func (c Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}

	var b strings.Builder
	fmt.Fprintln(&b, header)
	fmt.Fprintf(&b, "last_video=%s\n", c.LastVideo)
	fmt.Fprintf(&b, "save_dir=%s\n", c.SaveDir)
	fmt.Fprintf(&b, "next_image=%d\n", c.NextImage)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
