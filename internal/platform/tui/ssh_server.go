package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/overlay-arena/internal/config"
	"github.com/vovakirdan/overlay-arena/internal/session"
	"github.com/vovakirdan/overlay-arena/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade/arena_host_key.
	HostKeyPath string

	// DBPath is the path to the runs database.
	DBPath string

	// Arena configures every session's run.
	Arena config.ArenaConfig

	// Difficulty is the preset name recorded with each run.
	Difficulty string

	// Logger receives server logs; nil logs to stderr.
	Logger *log.Logger

	// MaxSessions caps concurrent sessions; 0 means unlimited.
	MaxSessions int

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		MaxSessions: 32,
		DBPath:      "~/.arcade/arena.db",
		Arena:       config.DefaultArenaConfig(),
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server. Each session plays its own arena run.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger

	active    atomic.Int64   // Sessions currently connected
	runs      sync.WaitGroup // Runs that may still save a result
	closing   chan struct{}
	closeOnce sync.Once
	storeOnce sync.Once
}

// NewSSHServer validates the arena config, opens the runs database and
// prepares the Wish server. Storage failures are logged, not fatal.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if err := cfg.Arena.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "arena-ssh",
		})
	}

	hostKeyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{
		config:  cfg,
		logger:  logger,
		closing: make(chan struct{}),
	}

	// Sessions play without history when the database is unavailable
	if store, openErr := storage.Open(cfg.DBPath); openErr != nil {
		logger.Warn("could not open runs database", "path", cfg.DBPath, "error", openErr)
	} else {
		srv.store = store
	}

	// The last middleware runs first
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.sessionMiddleware,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// resolveHostKey defaults the key to ~/.arcade/arena_host_key and makes
// sure its directory exists. Wish generates the key on first start.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".arcade", "arena_host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// teaHandler starts an arena run bound to the session and returns its model.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		wish.Fatalln(sshSession, "arena needs a terminal, try ssh -t")
		return nil, nil
	}

	run, err := session.NewRun(session.RunConfig{
		Arena:      s.config.Arena,
		Difficulty: s.config.Difficulty,
		Source:     "ssh",
		Store:      s.store,
		Logger:     s.logger.With("user", sshSession.User()),
	})
	if err != nil {
		s.logger.Error("could not create run", "user", sshSession.User(), "error", err)
		wish.Fatalln(sshSession, "could not start the arena")
		return nil, nil
	}

	// The run lives as long as the session, or until the server stops
	ctx := sshSession.Context()
	run.Start(ctx)
	s.runs.Add(1)
	go func() {
		defer s.runs.Done()
		select {
		case <-ctx.Done():
		case <-s.closing:
		}
		run.Stop()
		_, _ = run.Wait()
	}()

	model := NewModel(run, ModelOptions{
		Renderer: bubbletea.MakeRenderer(sshSession),
		Width:    pty.Window.Width,
		Height:   pty.Window.Height,
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// sessionMiddleware enforces MaxSessions and logs each session with its
// duration.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		logger := s.logger.With(
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)

		n := s.active.Add(1)
		defer s.active.Add(-1)
		if limit := s.config.MaxSessions; limit > 0 && n > int64(limit) {
			logger.Warn("session rejected", "active", n-1, "limit", limit)
			wish.Fatalln(sshSession, "the arena is full, try again later")
			return
		}

		start := time.Now()
		logger.Info("session started", "active", n)
		next(sshSession)
		logger.Info("session ended", "duration", time.Since(start).Round(time.Second))
	}
}

// Sessions returns the number of connected sessions.
func (s *SSHServer) Sessions() int {
	return int(s.active.Load())
}

// Serve accepts connections until ctx is done, then shuts down.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ssh server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...", "sessions", s.Sessions())
	return s.Shutdown()
}

// ListenAndServe serves until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx)
}

// Shutdown stops every run, waits for their results to be saved and then
// closes the server and the runs database.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.closeOnce.Do(func() { close(s.closing) })

	saved := make(chan struct{})
	go func() {
		s.runs.Wait()
		close(saved)
	}()
	select {
	case <-saved:
	case <-ctx.Done():
		s.logger.Warn("runs still active at shutdown")
	}

	err := s.server.Shutdown(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		// Players left on a final screen
		err = s.server.Close()
	}
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	s.storeOnce.Do(func() {
		if s.store != nil {
			s.store.Close()
		}
	})
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
