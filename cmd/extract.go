package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gamedata-manager/core/utils"
)

var extractOut string

// extractCmd resolves one file by path or numeric ID and writes its
// decompressed bytes to disk.
var extractCmd = &cobra.Command{
	Use:   "extract <path-or-id>",
	Short: "Extract a file from the archives",
	Long: `Resolves a file through the root index, encoding table and archive
location index, reads and decompresses its bytes, and writes them out.
Numeric arguments are treated as file IDs.`,
	Args: cobra.ExactArgs(1),
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

		arg := args[0]
		var (
			data  []byte
			found bool
		)
		if id, convErr := strconv.ParseUint(arg, 10, 32); convErr == nil {
			data, found, err = svc.FetchByFileID(cmd.Context(), uint32(id))
		} else {
			data, found, err = svc.FetchByPath(cmd.Context(), arg)
		}
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no such file: %s", arg)
		}

		out := extractOut
		if out == "" {
			out = filepath.Base(arg)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		logg.Info("file extracted",
			zap.String("source", arg),
			zap.String("dest", out),
			zap.String("size", utils.FormatBytes(int64(len(data)))),
		)
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "output file (defaults to the base name)")
	RootCmd.AddCommand(extractCmd)
}
