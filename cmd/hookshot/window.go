package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hookshot/internal/core"
	"github.com/vovakirdan/hookshot/internal/platform/window"
)

var windowCmd = &cobra.Command{
	Use:   "window [level]",
	Short: "Play a level in a desktop window",
	Long: `Open the sandbox in a resizable window. The level argument works as
for play.

Controls:
  Click/Space  - Press to charge the launcher, release to fire
  P            - Pause
  D/F3         - Debug overlay
  R            - Restart the level
  Q/Esc        - Quit

Examples:
  hookshot window
  hookshot window demo --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name stored with runs (default: $USER)")
}

func runWindow(_ *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, settings)

	tree, id := openLevel(args, logger)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	return window.Run(window.Options{
		Level:    tree,
		LevelID:  id,
		Settings: settings,
		Textures: newTextures(settings, logger),
		Store:    store,
		Logger:   logger,
		Player:   playerName(),
		Runtime: core.RuntimeConfig{
			TickRate:  flagFPS,
			ViewportW: float64(settings.Viewport.Width),
			ViewportH: float64(settings.Viewport.Height),
		},
	})
}
