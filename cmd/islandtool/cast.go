package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/automoto/islandcore/collision"
	"github.com/automoto/islandcore/config"
	"github.com/automoto/islandcore/shared/gamemath"
)

var flagDirected bool

var castCmd = &cobra.Command{
	Use:   "cast <level.tmx> <x0> <y0> <x1> <y1>",
	Short: "Cast a ray against a level",
	Long: `Cast a ray from (x0, y0) to (x1, y1) in world units, Y up, and print the
nearest hit. With --directed, surfaces facing along the ray are ignored the
way a moving object ignores one-way platforms.`,
	Args: cobra.ExactArgs(5),
	RunE: runCast,
}

func init() {
	castCmd.Flags().BoolVar(&flagDirected, "directed", false, "Skip surfaces facing along the ray")
}

func runCast(cmd *cobra.Command, args []string) error {
	level, err := loadLevel(args[0])
	if err != nil {
		return err
	}
	var coords [4]float64
	for i, a := range args[1:] {
		if coords[i], err = strconv.ParseFloat(a, 64); err != nil {
			return fmt.Errorf("coordinate %q: %w", a, err)
		}
	}
	start, end := gamemath.Vec(coords[0], coords[1]), gamemath.Vec(coords[2], coords[3])

	s := collision.NewSystem(collision.Config{
		TileWidth:            level.TileWidth,
		TileHeight:           level.TileHeight,
		MaxTemporarySurfaces: config.Collision.MaxTemporarySurfaces,
	}, logger)
	s.SetTiles(level.Tiles)
	s.SetWorld(level.World)

	filter := collision.AnyDirection
	if flagDirected {
		filter = collision.Moving(end.Sub(start))
	}

	out := cmd.OutOrStdout()
	hit, ok := s.CastRay(start, end, filter)
	if !ok {
		fmt.Fprintln(out, "no hit")
		return nil
	}
	fmt.Fprintf(out, "hit at (%g, %g) normal (%.3f, %.3f) distance %g\n",
		hit.Point.X, hit.Point.Y, hit.Normal.X, hit.Normal.Y, hit.Point.Sub(start).Length())
	return nil
}
