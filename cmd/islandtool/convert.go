package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var flagOutDir string

var convertCmd = &cobra.Command{
	Use:   "convert <level.tmx>...",
	Short: "Write binary collision files",
	Long: `Convert each level into <name>.tiles and <name>.world, the files the
engine's LoadLevel reads.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&flagOutDir, "out", "o", ".", "Output directory")
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(flagOutDir, 0o755); err != nil {
		return err
	}
	for _, path := range args {
		level, err := loadLevel(path)
		if err != nil {
			return err
		}
		tilesPath := filepath.Join(flagOutDir, level.Name+".tiles")
		worldPath := filepath.Join(flagOutDir, level.Name+".world")
		if err := writeLevel(level.Encode, tilesPath, worldPath); err != nil {
			return fmt.Errorf("write %s: %w", level.Name, err)
		}
		logger.Info("converted", "level", level.Name, "tiles", tilesPath, "world", worldPath)
	}
	return nil
}

func writeLevel(encode func(tiles, world io.Writer) error, tilesPath, worldPath string) error {
	tiles, err := os.Create(tilesPath)
	if err != nil {
		return err
	}
	defer tiles.Close()
	world, err := os.Create(worldPath)
	if err != nil {
		return err
	}
	defer world.Close()

	if err := encode(tiles, world); err != nil {
		return err
	}
	if err := tiles.Close(); err != nil {
		return err
	}
	return world.Close()
}
