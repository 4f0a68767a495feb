package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-marbles/internal/core"
	"github.com/vovakirdan/tui-marbles/internal/platform/tui"
	"github.com/vovakirdan/tui-marbles/internal/registry"
	"github.com/vovakirdan/tui-marbles/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [table]",
	Short: "Play a table",
	Long: `Start playing the specified table (default: marbles).

Controls:
  Arrows/WASD      - Move pointer and aim
  Space            - Toggle suction at the pointer
  Mouse drag       - Hold suction under the cursor
  F/Enter/R-click  - Spit the oldest held ball
  P                - Pause
  R                - Restart (after game over)
  Esc/B            - Leave (when paused or over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Stronger suction, fewer balls, gentler mixing
  normal - Config values as written
  hard   - Weaker suction, faster spits, more balls
  fixed  - No progression during the run

Examples:
  marbles play
  marbles play marbles_wrap
  marbles play --difficulty easy
  marbles play --config ./my-marbles.yaml --seed 7`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "marbles"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown table %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'marbles list' to see available tables.")
		os.Exit(1)
	}
	checkConfig()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating table: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running table: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig sizes the playfield to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
