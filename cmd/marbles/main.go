// marbles is a terminal marble table: suck balls up, spit them out, mix
// their colours and sweep them into the delete zone.
//
// Usage:
//
//	marbles list              - List available tables
//	marbles play <table>      - Play a table
//	marbles menu              - Start menu to pick tables interactively
//	marbles serve             - Start SSH server for remote play
//	marbles scores <table>    - Show high scores and recent runs
//	marbles sim               - Run a headless, seeded simulation
//	marbles config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.marbles/scores.db)
//	--config <path>       - Use a custom marbles.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-marbles/internal/config"
	"github.com/vovakirdan/tui-marbles/internal/games/marbles"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "marbles",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "marbles",
	Short: "Marbles - suck, spit and mix coloured balls in your terminal",
	Long: `Marbles is a terminal marble table. Hold suction to pull balls into
your inventory, spit them back out one at a time, let touching balls blend
their colours, and sweep everything into the delete zone.

Available commands:
  list     - Show all available tables
  play     - Play a specific table directly
  menu     - Interactive table picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores and recent runs
  sim      - Run a headless seeded simulation
  config   - Print the effective configuration

Examples:
  marbles list
  marbles play marbles
  marbles play marbles_wrap --difficulty hard
  marbles sim --seed 7 --steps 7200 --record
  marbles serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if _, ok := config.ParsePreset(flagDifficulty); !ok {
			return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		marbles.SetConfigPath(flagConfig)
		marbles.SetDifficultyPreset(flagDifficulty)
		marbles.SetLogger(logger)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.marbles/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom marbles.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the effective config for the global flags.
func loadConfig() (config.MarblesConfig, string, error) {
	cfg, source, err := config.LoadMarblesWithSource(flagConfig)
	if err != nil {
		return cfg, source, err
	}
	if preset, ok := config.ParsePreset(flagDifficulty); ok && flagDifficulty != "" {
		config.ApplyMarblesPreset(&cfg, preset)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, source, fmt.Errorf("%s: %w", source, err)
	}
	return cfg, source, nil
}

// checkConfig fails early on a broken config so the game's fallback warning
// never lands on the alternate screen.
func checkConfig() {
	if _, _, err := loadConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid config: %v\n", err)
		os.Exit(1)
	}
}
