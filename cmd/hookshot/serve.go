package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hookshot/internal/level"
	"github.com/vovakirdan/hookshot/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeLevel  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the hookshot SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own world built from --level.
Runs are stored per-server in the --db database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.hookshot/host_key

Examples:
  hookshot serve                           # Listen on :23234 with auto-generated key
  hookshot serve --ssh :2222               # Listen on port 2222
  hookshot serve --level gauntlet          # Serve another built-in level
  hookshot serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeLevel, "level", "demo", "Level ID or file every session plays")
}

func runServe(_ *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, settings).WithPrefix("hookshot-ssh")

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}
	levels := func() (*level.Tree, string, error) {
		t, id := openLevel([]string{flagServeLevel}, logger)
		return t, id, nil
	}

	server, err := tui.NewSSHServer(cfg, settings, newTextures(settings, logger), levels, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting hookshot SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
