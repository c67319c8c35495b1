package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// listCmd lists root-index paths matching a glob pattern.
var listCmd = &cobra.Command{
	Use:   "list [pattern]",
	Short: "List files in the root index",
	Long: `Lists the file paths retained from the root index. An optional glob
pattern filters the output; '*' matches any run of characters and '?'
matches a single character. Matching is case-insensitive.`,
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

		pattern := ""
		if len(args) > 0 {
			pattern = args[0]
		}
		files := svc.Root().ListFiles(pattern)
		sort.Strings(files)
		for _, f := range files {
			fmt.Println(f)
		}
		fmt.Printf("%d files\n", len(files))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(listCmd)
}
