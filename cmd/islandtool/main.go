// islandtool inspects, converts and simulates levels outside the viewer.
//
// Usage:
//
//	islandtool inspect <level.tmx>                    - Summarize a level's collision and spawns
//	islandtool convert <level.tmx> [-o dir]           - Write binary collision files
//	islandtool cast <level.tmx> <x0> <y0> <x1> <y1>   - Cast a ray against a level
//	islandtool sim <level.tmx> [--frames n]           - Run a level headless
//	islandtool pools <level>                          - Show recorded pool usage
//
// Global flags:
//
//	--config <path>  - Engine YAML overlay (default: search path, then embedded)
//	--log-level <l>  - Override the configured log level
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/automoto/islandcore/config"
	"github.com/automoto/islandcore/shared/leveldata"
)

const appName = "islandcore"

var (
	flagConfig   string
	flagLogLevel string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "islandtool",
	Short: "Level tooling for the island platformer engine",
	Long: `islandtool works on Tiled levels and the binary collision files the
engine loads.

Examples:
  islandtool inspect levels/beach.tmx
  islandtool convert levels/beach.tmx -o build/
  islandtool cast levels/beach.tmx 80 200 80 0
  islandtool sim levels/beach.tmx --frames 600 --record
  islandtool pools beach`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to an engine YAML overlay")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(castCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(poolsCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	source, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagLogLevel != "" {
		config.Log.Level = flagLogLevel
	}
	logger = config.NewLogger(os.Stderr, "islandtool")
	logger.Debug("config loaded", "source", source, "command", cmd.Name())
	return nil
}

// loadLevel converts the TMX file at path, resolving external tilesets
// relative to its directory.
func loadLevel(path string) (*leveldata.Level, error) {
	dir, file := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	return leveldata.Load(os.DirFS(dir), file)
}
