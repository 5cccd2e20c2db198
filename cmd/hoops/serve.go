package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hoops/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the high score table over SSH",
	Long: `Start an SSH server that shows the high score table to every visitor.

Each SSH connection gets a live view that reloads every few seconds, so
scores recorded on this host appear without reconnecting.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.hoops/host_key

Examples:
  hoops serve                           # Listen on :23235 with auto-generated key
  hoops serve --ssh :2222               # Listen on port 2222
  hoops serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (overrides config)")
}

func runServe(_ *cobra.Command, _ []string) {
	h := mustOpenHost()
	defer h.Close()

	cfg := tui.SSHServerConfig{
		Address:     h.cfg.SSH.Address,
		HostKeyPath: h.cfg.SSH.HostKeyPath,
		IdleTimeout: h.cfg.SSH.IdleTimeout,
	}
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	server, err := tui.NewSSHServer(cfg, h.keeper, h.logger.WithPrefix("hoops-ssh"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		h.Close()
		os.Exit(1)
	}

	fmt.Printf("Serving high scores over SSH on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Serve(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		h.Close()
		os.Exit(1)
	}
}
