package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <level.tmx>",
	Short: "Summarize a level's collision and spawns",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	level, err := loadLevel(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w, h := level.Size()
	fmt.Fprintf(out, "Level %s\n", level.Name)
	fmt.Fprintf(out, "  grid      %d x %d tiles of %gx%g\n", level.World.Width(), level.World.Height(), level.TileWidth, level.TileHeight)
	fmt.Fprintf(out, "  size      %g x %g\n", w, h)
	fmt.Fprintf(out, "  tiles     %d defined, %d segments\n", level.Tiles.Len(), level.Tiles.SegmentCount())

	used, segments := 0, 0
	for y := 0; y < level.World.Height(); y++ {
		for x := 0; x < level.World.Width(); x++ {
			if t := level.Tiles.Tile(level.World.TileAt(x, y)); t != nil {
				used++
				segments += len(t.Segments)
			}
		}
	}
	fmt.Fprintf(out, "  cells     %d with collision, %d segments placed\n", used, segments)

	fmt.Fprintf(out, "  spawns    %d\n", len(level.Spawns))
	for _, s := range level.Spawns {
		facing := "right"
		if s.Flip {
			facing = "left"
		}
		fmt.Fprintf(out, "    %-16s (%g, %g) facing %s\n", s.Type, s.X, s.Y, facing)
	}
	return nil
}
