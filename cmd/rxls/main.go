// Command rxls inspects .xlsb and .xlsx workbooks from the shell: list
// sheets, dump a sheet's inferred column types, or finalize several sheets
// concurrently with batch.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rxls",
		Short: "Inspect .xlsb and .xlsx workbooks",
	}
	root.AddCommand(newSheetsCmd())
	root.AddCommand(newColumnsCmd())
	root.AddCommand(newBatchCmd())
	return root
}
