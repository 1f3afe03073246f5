package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"framepick/internal/config"
	"framepick/internal/export"
	"framepick/internal/player"
	"framepick/internal/ui"
)

const (
	host = "localhost"
	port = "23234"
)

// runServer serves the scrubber over SSH. Every connection gets its own
// player and sequencer; sessions are read-only with respect to the config
// store, so remote viewers never clobber the local session state.
func runServer(cfg config.Config) {
	s, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithHostKeyPath(".ssh/id_ed25519"),
		wish.WithMiddleware(
			bubbletea.Middleware(sessionHandler(cfg)),
			activeterm.Middleware(), // Bubble Tea apps usually require a PTY.
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Error("Could not start server", "error", err)
		return
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	log.Info("Starting SSH server", "host", host, "port", port)
	go func() {
		if err = s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("Could not start server", "error", err)
			done <- nil
		}
	}()

	<-done
	log.Info("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("Could not stop server", "error", err)
	}
}

func sessionHandler(cfg config.Config) func(ssh.Session) (tea.Model, []tea.ProgramOption) {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		p := player.New(nil)
		if cfg.LastVideo != "" {
			if _, err := os.Stat(cfg.LastVideo); err == nil {
				if err := p.Open(cfg.LastVideo); err != nil {
					log.Warn("session could not open video", "path", cfg.LastVideo, "err", err)
				}
			}
		}

		pty, _, _ := s.Pty()
		m := ui.New(ui.Options{
			Player:    p,
			Sequencer: export.NewSequencer(cfg.SaveDir),
			Config:    cfg,
			ReadOnly:  true,
			Width:     pty.Window.Width,
			Height:    pty.Window.Height,
		})
		return m, []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseAllMotion()}
	}
}
