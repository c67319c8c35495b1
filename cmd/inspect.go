package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gamedata-manager/core/utils"
)

// inspectCmd prints diagnostics for the loaded indexes, or for one
// table when a name is given.
var inspectCmd = &cobra.Command{
	Use:   "inspect [table]",
	Short: "Show index and table diagnostics",
	Long: `Parses the root index and encoding table and prints their entry counts.
With a table name, resolves and parses that table's header as well.`,
	Args: cobra.MaximumNArgs(1),
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

		fmt.Printf("root entries:     %d\n", svc.Root().EntryCount())
		fmt.Printf("root files:       %d\n", svc.Root().FileCount())
		fmt.Printf("encoding entries: %d\n", svc.Encoding().EntryCount())

		if len(args) == 0 {
			return nil
		}
		name := args[0]
		td, found, err := svc.LoadTable(cmd.Context(), name)
		if err != nil {
			return err
		}
		if !found {
			logg.Warn("table not found", zap.String("table", name))
			return nil
		}
		h := td.Header
		fmt.Printf("\n%s\n", name)
		fmt.Printf("  signature:    %s\n", h.Signature)
		if h.HasSchema() {
			fmt.Printf("  schema:       %s (v%d)\n", h.SchemaName, h.SchemaVersion)
		}
		fmt.Printf("  records:      %d\n", h.RecordCount)
		fmt.Printf("  fields:       %d/%d\n", h.FieldCount, h.TotalFieldCount)
		fmt.Printf("  record size:  %d\n", h.RecordSize)
		fmt.Printf("  id range:     %d..%d\n", h.MinID, h.MaxID)
		fmt.Printf("  sections:     %d\n", h.SectionCount)
		fmt.Printf("  file size:    %s\n", utils.FormatBytes(int64(len(td.Raw))))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(inspectCmd)
}
