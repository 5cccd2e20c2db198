package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/hoops/internal/leaderboard"
)

func TestNewSSHServerNeedsKeeper(t *testing.T) {
	if _, err := NewSSHServer(DefaultSSHServerConfig(), nil, nil); err == nil {
		t.Error("Expected error for nil keeper")
	}
}

func TestNewSSHServer(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "keys", "host_key")

	srv, err := NewSSHServer(cfg, leaderboard.NewKeeper(&memStore{}), nil)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	if srv.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr() = %q, expected 127.0.0.1:0", srv.Addr())
	}
}

func TestDefaultSSHServerConfig(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	if cfg.Address != ":23235" {
		t.Errorf("Address = %q, expected :23235", cfg.Address)
	}
	if cfg.IdleTimeout != 30*time.Minute {
		t.Errorf("IdleTimeout = %v, expected 30m", cfg.IdleTimeout)
	}
	if cfg.HostKeyPath != "" {
		t.Errorf("HostKeyPath = %q, expected auto-generated", cfg.HostKeyPath)
	}
}

func TestSSHServerStopsWithContext(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "host_key")

	srv, err := NewSSHServer(cfg, leaderboard.NewKeeper(&memStore{}), nil)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	if srv.HostKeyPath() != cfg.HostKeyPath {
		t.Errorf("HostKeyPath() = %q, expected %q", srv.HostKeyPath(), cfg.HostKeyPath)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v, expected nil after cancel", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("Serve() did not return after context was done")
	}
}
