// viewer plays a level in a window with collision and hit volumes drawn.
//
// Usage:
//
//	viewer <level.tmx> [--config path] [--volumes]
//
// Keys: arrows/WASD move, X jump, Z attack, P pause, . step, F1 debug, R restart.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/automoto/islandcore/config"
	"github.com/automoto/islandcore/shared/leveldata"
)

var (
	flagConfig  string
	flagVolumes bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "viewer <level.tmx>",
	Short:        "Play a level with debug drawing",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to an engine YAML overlay")
	rootCmd.Flags().BoolVar(&flagVolumes, "volumes", false, "Draw hit volumes")
}

func run(_ *cobra.Command, args []string) error {
	source, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	config.Debug.DrawCollision = true
	if flagVolumes {
		config.Debug.DrawVolumes = true
	}
	logger := config.NewLogger(os.Stderr, "viewer")
	logger.Info("config loaded", "source", source)

	dir, file := filepath.Split(args[0])
	if dir == "" {
		dir = "."
	}
	level, err := leveldata.Load(os.DirFS(dir), file)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(config.C.Width*2, config.C.Height*2)
	ebiten.SetWindowTitle("islandcore - " + level.Name)
	if config.Loop.TickRate > 0 {
		ebiten.SetTPS(config.Loop.TickRate)
	}

	return ebiten.RunGame(NewGame(level, logger))
}
