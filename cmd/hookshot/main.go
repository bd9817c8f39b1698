// hookshot is a 2D physics sandbox: launch boxes at spikes, saws and
// chain hooks in the terminal, in a window or over SSH.
//
// Usage:
//
//	hookshot levels list         - List built-in levels
//	hookshot levels validate <f> - Check level files and print diagnostics
//	hookshot play [level]        - Play in the terminal
//	hookshot window [level]      - Play in a desktop window
//	hookshot serve               - Start SSH server for remote play
//	hookshot runs [level]        - Show recent runs
//
// Global flags:
//
//	--config <path>    - Settings file (default: search path)
//	--log-level <lvl>  - Override logging.level
//	--fps <rate>       - Host frame rate (default: 60)
//	--db <path>        - Runs database (default: ~/.hookshot/runs.db)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hookshot/internal/config"
	"github.com/vovakirdan/hookshot/internal/level"
	"github.com/vovakirdan/hookshot/internal/registry"
	"github.com/vovakirdan/hookshot/internal/storage"
	"github.com/vovakirdan/hookshot/internal/texture"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
	flagFPS      int
	flagDBPath   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hookshot",
	Short: "Hookshot - a 2D physics sandbox",
	Long: `Hookshot is a physics sandbox: charge a launcher, fire boxes and
watch spikes, saws and chain hooks catch them.

Available commands:
  levels   - List and validate levels
  play     - Play a level in the terminal
  window   - Play a level in a desktop window
  serve    - Start SSH server for remote play
  runs     - View recent runs

Examples:
  hookshot levels list
  hookshot play demo
  hookshot play ./my_level.toml
  hookshot window gauntlet
  hookshot serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Host frame rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.hookshot/runs.db", "Path to runs database")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
}

// loadSettings reads settings and applies flag overrides.
func loadSettings() (config.Settings, error) {
	s, err := config.Load(flagConfig)
	if err != nil {
		return s, err
	}
	if flagLogLevel != "" {
		s.Logging.Level = flagLogLevel
		if err := s.Validate(); err != nil {
			return s, err
		}
	}
	return s, nil
}

// newLogger builds the charm logger described by settings.
func newLogger(w io.Writer, s config.Settings) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           s.LogLevel(),
		Prefix:          s.Logging.Prefix,
		ReportTimestamp: true,
	})
}

// fileLogger logs to ~/.hookshot/hookshot.log, for front ends that own
// the terminal. It falls back to discarding output.
func fileLogger(s config.Settings) (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return newLogger(io.Discard, s), func() {}
	}
	dir := filepath.Join(home, ".hookshot")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(io.Discard, s), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "hookshot.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return newLogger(io.Discard, s), func() {}
	}
	return newLogger(f, s), func() { f.Close() }
}

// newTextures serves assets.dir when set, plus the built-in textures.
func newTextures(s config.Settings, logger *log.Logger) *texture.Cache {
	if s.Assets.Dir == "" {
		return texture.NewCache(nil, logger)
	}
	return texture.NewCache(os.DirFS(s.Assets.Dir), logger)
}

// openStore opens the runs database, warning instead of failing.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		logger.Warn("runs disabled", "db", flagDBPath, "error", err)
		return nil
	}
	return store
}

// openLevel resolves a level reference and the ID runs are stored under.
// A level that cannot be read is logged and replaced by an empty one.
func openLevel(args []string, logger *log.Logger) (*level.Tree, string) {
	ref := "demo"
	if len(args) > 0 {
		ref = args[0]
	}
	t, err := registry.Resolve(ref)
	if err != nil {
		logger.Error("level load failed, starting with an empty world", "level", ref, "error", err)
		return level.Empty(ref), ref
	}
	id := ref
	if !registry.Exists(ref) && t.Name != "" {
		id = t.Name
	}
	return t, id
}
