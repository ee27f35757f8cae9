package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/automoto/islandcore/systems"
)

var flagClear bool

var poolsCmd = &cobra.Command{
	Use:   "pools <level>",
	Short: "Show recorded pool usage",
	Long: `Show the highest pool usage recorded by 'islandtool sim --record' for a
level, to size the pools section of the engine config.`,
	Args: cobra.ExactArgs(1),
	RunE: runPools,
}

func init() {
	poolsCmd.Flags().BoolVar(&flagClear, "clear", false, "Forget the recorded usage")
}

func runPools(cmd *cobra.Command, args []string) error {
	store, err := systems.OpenRecordStore(appName, logger)
	if err != nil {
		return err
	}
	name := args[0]
	if flagClear {
		return store.Clear(name)
	}

	record, err := store.Load(name)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if record == nil {
		fmt.Fprintf(out, "No pool usage recorded for %s.\n", name)
		fmt.Fprintf(out, "Run 'islandtool sim <%s.tmx> --record' first.\n", name)
		return nil
	}
	fmt.Fprintf(out, "Pool usage - %s (longest run %d frames, %d surfaces dropped)\n\n", record.Level, record.Frames, record.Dropped)
	printStats(out, record.Pools)
	return nil
}
