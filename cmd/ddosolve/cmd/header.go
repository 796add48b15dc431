package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// resultHeader is the fixed-width column format printed by print-header and
// reused by solve as the format of its own result row, one-to-one with
// original_source/src/xputils.rs's resolution_header.
const resultHeader = "%30s | %10s | %15s | %8s | %8s | %15s | %15s | %15s | %7s | %15s | %15s\n"

var headerCmd = &cobra.Command{
	Use:   "print-header",
	Short: "Print the fixed-width column header solve's result line matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf(resultHeader,
			"NAME", "SOLVER", "STATUS", "DURATION", "RAM_MB", "BEST-VAL", "LB", "UB", "GAP", "NODES_BB", "NODES_DD")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(headerCmd)
}
