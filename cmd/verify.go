package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"gamedata-manager/core/archive"
	"gamedata-manager/feature/integrity"
)

var verifyJSON bool

// verifyCmd sweeps the dataset for consistency problems.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check dataset consistency",
	Long: `Validates the location index against the archives on disk, then walks
every root entry through the encoding table and the location index to
report files a fetch could not resolve. Exits non-zero when any check
finds problems.`,
	Args: cobra.NoArgs,
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

		index, err := archive.LoadIndex(filepath.Join(cfg.Archive.Dir, cfg.Archive.IndexFile))
		if err != nil {
			return err
		}
		checker := integrity.NewService(cfg.Archive.Dir, index, svc.Root(), svc.Encoding(), logg)

		ctx := cmd.Context()
		archives, err := checker.CheckArchives(ctx)
		if err != nil {
			return err
		}
		coverage, err := checker.CheckCoverage(ctx)
		if err != nil {
			return err
		}

		if verifyJSON {
			out := map[string]any{
				"archives": archives,
				"coverage": coverage,
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return err
			}
		} else {
			fmt.Printf("locations checked:  %d\n", archives.Checked)
			fmt.Printf("missing archives:   %d\n", len(archives.MissingArchives))
			fmt.Printf("out of range:       %d\n", len(archives.OutOfRange))
			fmt.Printf("entries checked:    %d\n", coverage.Checked)
			fmt.Printf("unencoded entries:  %d\n", len(coverage.Unencoded))
			fmt.Printf("unlocated entries:  %d\n", len(coverage.Unlocated))
			for _, n := range archives.MissingArchives {
				fmt.Printf("  missing archive %s\n", archive.ArchiveName(n))
			}
			for _, key := range archives.OutOfRange {
				fmt.Printf("  out of range: %s\n", key)
			}
			for _, path := range coverage.Unencoded {
				fmt.Printf("  unencoded: %s\n", path)
			}
			for _, path := range coverage.Unlocated {
				fmt.Printf("  unlocated: %s\n", path)
			}
		}

		if !archives.Clean() || !coverage.Clean() {
			return fmt.Errorf("verification found problems")
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().BoolVar(&verifyJSON, "json", false, "emit reports as JSON")
	RootCmd.AddCommand(verifyCmd)
}
