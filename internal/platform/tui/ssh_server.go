package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/hoops/internal/leaderboard"
)

// shutdownTimeout bounds how long open sessions get to close.
const shutdownTimeout = 10 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.hoops/host_key.
	HostKeyPath string

	// IdleTimeout closes sessions with no input. Zero disables it.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves the shared leaderboard over SSH with Wish.
// Every session reads through the same Keeper, so scores recorded by the
// host show up on open sessions at the next refresh.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	keeper *leaderboard.Keeper
	logger *log.Logger
}

// NewSSHServer creates a leaderboard server. A nil logger gets a
// timestamped stderr logger.
func NewSSHServer(cfg SSHServerConfig, keeper *leaderboard.Keeper, logger *log.Logger) (*SSHServer, error) {
	if keeper == nil {
		return nil, errors.New("ssh server needs a leaderboard keeper")
	}
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "hoops-ssh",
		})
	}

	hostKeyPath, err := resolveHostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}
	cfg.HostKeyPath = hostKeyPath

	srv := &SSHServer{
		config: cfg,
		keeper: keeper,
		logger: logger,
	}

	// Middleware runs last to first: sessions are logged, then
	// terminal-less clients are turned away before a model is built.
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.scoreboardHandler),
			activeterm.Middleware(),
			srv.sessionLogger,
		),
	}
	if cfg.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(cfg.IdleTimeout))
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	srv.server = server
	return srv, nil
}

// resolveHostKeyPath defaults to ~/.hoops/host_key and makes sure the
// key's directory exists so Wish can generate it.
func resolveHostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".hoops", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// scoreboardHandler gives each session its own live scoreboard sized to
// the client's terminal.
func (s *SSHServer) scoreboardHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	model := NewScoreboardModel(s.keeper, pty.Window.Width, pty.Window.Height).Live()
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// sessionLogger logs each session with how long it stayed connected.
func (s *SSHServer) sessionLogger(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		logger := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("session started")
		next(sess)
		logger.Info("session ended", "duration", time.Since(start).Round(time.Second))
	}
}

// Serve accepts connections until ctx is done, then shuts down gracefully.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "host_key", s.config.HostKeyPath)

	serveErr := make(chan error, 1)
	go func() {
		err := s.server.ListenAndServe()
		if errors.Is(err, ssh.ErrServerClosed) {
			err = nil
		}
		serveErr <- err
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			s.logger.Error("server error", "error", err)
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	return s.Shutdown()
}

// Shutdown stops accepting connections and waits for open sessions.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// HostKeyPath returns the resolved host key location.
func (s *SSHServer) HostKeyPath() string {
	return s.config.HostKeyPath
}
