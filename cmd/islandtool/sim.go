package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/automoto/islandcore/archetypes"
	"github.com/automoto/islandcore/config"
	"github.com/automoto/islandcore/object"
	"github.com/automoto/islandcore/pool"
	"github.com/automoto/islandcore/shared/gamemath"
	"github.com/automoto/islandcore/systems"
)

var (
	flagFrames    int
	flagRealtime  bool
	flagRecord    bool
	flagWalk      float64
	flagJumpEvery int
)

var simCmd = &cobra.Command{
	Use:   "sim <level.tmx>",
	Short: "Run a level headless",
	Long: `Run a level without a window and report what is left alive plus pool
usage. By default frames are stepped back to back; --realtime ticks at the
configured rate until the frame limit or Ctrl-C.

Examples:
  islandtool sim levels/beach.tmx --frames 1200 --walk 1 --jump-every 45
  islandtool sim levels/beach.tmx --realtime --frames 0 --record`,
	Args: cobra.ExactArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagFrames, "frames", 600, "Frames to run (0 = until interrupted, realtime only)")
	simCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Tick at the configured rate")
	simCmd.Flags().BoolVar(&flagRecord, "record", false, "Save pool usage for the pools command")
	simCmd.Flags().Float64Var(&flagWalk, "walk", 0, "Horizontal input held for the whole run (-1..1)")
	simCmd.Flags().IntVar(&flagJumpEvery, "jump-every", 0, "Press jump every n frames")
}

func runSim(cmd *cobra.Command, args []string) error {
	level, err := loadLevel(args[0])
	if err != nil {
		return err
	}
	if flagFrames <= 0 && !flagRealtime {
		return fmt.Errorf("--frames must be positive without --realtime")
	}

	e := systems.NewEngine(logger.WithPrefix("engine"))
	archetypes.Register(e)
	if archetypes.Start(e, level) == 0 {
		logger.Warn("level has no spawns", "level", level.Name)
	}

	input := &object.ScriptedInput{Dir: gamemath.Vec(gamemath.ClampFloat(flagWalk, -1, 1), 0)}
	e.Context.Input = input

	loop := systems.NewGameLoop(e, config.Loop.TickRate)
	loop.OnTick = func(tick int) {
		jump := flagJumpEvery > 0 && tick%flagJumpEvery == 0
		input.Held[object.ButtonJump] = jump
		input.JustFired[object.ButtonJump] = jump
	}

	var ticks int
	if flagRealtime {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		ticks = loop.Run(ctx, flagFrames)
	} else {
		ticks = loop.RunFrames(flagFrames)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Level %s: %d frames, %.1fs simulated\n", level.Name, ticks, e.Context.GameTime)
	if p := e.Context.Player; p != nil {
		fmt.Fprintf(out, "  player    (%.1f, %.1f) life %d action %s\n", p.Position.X, p.Position.Y, p.Life, p.CurrentAction)
	} else {
		fmt.Fprintln(out, "  player    gone")
	}
	fmt.Fprintf(out, "  live      %d (%d active)\n", len(e.Objects.Live()), len(e.Objects.Active()))
	fmt.Fprintf(out, "  enemies   %d\n", e.Objects.CountTeam(object.TeamEnemy))
	fmt.Fprintf(out, "  hits      %d delivered, %d volumes dropped\n", e.Hits.Delivered(), e.Hits.Dropped())
	fmt.Fprintf(out, "  surfaces  %d dropped\n", e.Collision.DroppedSurfaces())
	fmt.Fprintln(out)
	printStats(out, e.Stats())

	record := e.Record(level.Name)
	if err := e.UnloadLevel(); err != nil {
		logger.Error("unload found leaks", "err", err)
	}
	if !flagRecord {
		return nil
	}
	store, err := systems.OpenRecordStore(appName, logger)
	if err != nil {
		return err
	}
	if err := store.Save(record); err != nil {
		return err
	}
	logger.Info("pool usage recorded", "level", level.Name)
	return nil
}

func printStats(w io.Writer, stats []pool.Stats) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "POOL\tCAPACITY\tIN USE\tHIGH WATER\tEXHAUSTED")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", s.Name, s.Capacity, s.Allocated, s.HighWater, s.Exhausted)
	}
	tw.Flush()
}
