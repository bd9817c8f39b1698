package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hookshot/internal/core"
	"github.com/vovakirdan/hookshot/internal/platform/tui"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level in the terminal",
	Long: `Start the sandbox in the terminal. The level is a built-in level ID
or a path to a .toml, .yaml or .yml file; it defaults to "demo".

Controls:
  Click/Space  - Press to charge the launcher, release to fire
  Arrows       - Move the aim pointer
  P/Esc        - Pause
  D            - Debug overlay
  R            - Restart the level
  Tab          - Recent runs
  Q/Ctrl+C     - Quit

Logs are written to ~/.hookshot/hookshot.log.

Examples:
  hookshot play
  hookshot play gauntlet
  hookshot play ./levels/mine.toml --fps 30`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name stored with runs (default: $USER)")
}

func runPlay(_ *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	logger, closeLog := fileLogger(settings)
	defer closeLog()

	tree, id := openLevel(args, logger)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return tui.Run(tui.Options{
		Level:    tree,
		LevelID:  id,
		Settings: settings,
		Textures: newTextures(settings, logger),
		Store:    store,
		Logger:   logger,
		Player:   playerName(),
		Runtime: core.RuntimeConfig{
			ScreenW:   width,
			ScreenH:   height,
			TickRate:  flagFPS,
			ViewportW: float64(settings.Viewport.Width),
			ViewportH: float64(settings.Viewport.Height),
		},
	})
}

func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
