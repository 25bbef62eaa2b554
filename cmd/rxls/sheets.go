package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rxlsgo/rxls/workbook"
)

func newSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets <path>",
		Short: "List the sheet names in a workbook, in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := workbook.Open(args[0])
			if err != nil {
				return err
			}
			defer wb.Close()

			for _, name := range wb.Sheets() {
				vis := ""
				switch wb.SheetVisibility(name) {
				case workbook.SheetHidden:
					vis = " (hidden)"
				case workbook.SheetVeryHidden:
					vis = " (very hidden)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", name, vis)
			}
			return nil
		},
	}
}
