package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-marbles/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a run would use, after the search order
(--config, ~/.marbles/configs/marbles.yaml, ./configs/marbles.yaml,
embedded defaults) and any --difficulty preset. The source is written to
stderr so the YAML can be redirected into a new config file.

Examples:
  marbles config
  marbles config --difficulty hard > hard.yaml
  marbles config --defaults`,
	Run: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the embedded default config")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagDefaults {
		//nolint:errcheck // stdout write
		os.Stdout.Write(config.DefaultMarblesYAML())
		return
	}

	cfg, source, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "# source: %s\n", source)
	//nolint:errcheck // stdout write
	os.Stdout.Write(out)
}
