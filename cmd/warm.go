package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"gamedata-manager/core/utils"
)

// warmCmd pre-loads tables and prints the resulting cache statistics.
var warmCmd = &cobra.Command{
	Use:   "warm <table>...",
	Short: "Pre-load tables into the record caches",
	Long: `Fetches and parses each named table so the record caches start warm,
then prints per-cache hit/miss statistics and memory usage.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()

		svc, cleanup, err := buildService(cfg, logg)
		if err != nil {
			return err
		}
		defer cleanup()

		result, err := svc.Warm(cmd.Context(), args)
		if err != nil {
			return err
		}

		names := make([]string, 0, len(result.Stats))
		for name := range result.Stats {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			s := result.Stats[name]
			fmt.Printf("%-30s entries=%-6d size=%-10s hits=%d misses=%d evictions=%d\n",
				name, s.EntryCount, utils.FormatBytes(s.TotalSize), s.Hits, s.Misses, s.Evictions)
		}
		fmt.Printf("loaded=%d missing=%d failed=%d\n",
			len(result.Loaded), len(result.Missing), len(result.Failed))
		for name, ferr := range result.Failed {
			fmt.Printf("  %s: %v\n", name, ferr)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(warmCmd)
}
