// framepick scrubs through a video frame-by-frame in the terminal and
// exports selected frames as a numbered PNG sequence for dataset building.
//
// Usage:
//
//	framepick [video-or-frame-dir]
//	framepick -ssh
//
// With no argument the last opened video is reopened, paused. Frames are
// saved with 's' (or right-click) into the chosen save directory.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"framepick/internal/config"
	"framepick/internal/export"
	"framepick/internal/player"
	"framepick/internal/ui"
)

var sshMode bool

func main() {
	flag.BoolVar(&sshMode, "ssh", false, "serve the scrubber over ssh instead of the local terminal")
	flag.Parse()

	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	setupLogging(env.LogFile)

	cfg, err := config.Load(env.ConfigPath)
	if err != nil {
		log.Warn("could not read config, starting fresh", "err", err)
		cfg = config.Config{}
	}

	if sshMode {
		runServer(cfg)
		return
	}

	p := player.New(nil)
	seq := export.NewSequencer(cfg.SaveDir)

	// A positional argument wins over the remembered video; either way the
	// session starts paused on frame 0.
	path := flag.Arg(0)
	if path == "" {
		path = cfg.LastVideo
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := p.Open(path); err != nil {
				log.Warn("could not reopen video", "path", path, "err", err)
			}
		}
	}

	m := ui.New(ui.Options{
		Player:     p,
		Sequencer:  seq,
		Config:     cfg,
		ConfigPath: env.ConfigPath,
	})

	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	final, err := prog.Run()
	if err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	// Teardown always persists the session, whichever way the program ended.
	if fm, ok := final.(ui.Model); ok {
		fm.Shutdown()
	}
}

// setupLogging sends logs to the file named by FRAMEPICK_LOG. The TUI owns
// stdout, so without a target the logger is silenced.
func setupLogging(path string) {
	if path == "" {
		log.SetOutput(io.Discard)
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return
	}
	log.SetOutput(f)
}
