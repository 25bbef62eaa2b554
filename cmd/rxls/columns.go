package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rxlsgo/rxls/column"
	"github.com/rxlsgo/rxls/extract"
	"github.com/rxlsgo/rxls/workbook"
)

func newColumnsCmd() *cobra.Command {
	var sheet string
	var skipRows int
	var coerceNumeric bool
	var coerceTemporal bool
	var async bool

	cmd := &cobra.Command{
		Use:   "columns <path>",
		Short: "Dump a sheet's inferred column types",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extractOpts := extract.Options{SkipRows: skipRows}
			if err := extractOpts.Validate(); err != nil {
				return err
			}

			wb, err := workbook.Open(args[0])
			if err != nil {
				return err
			}
			defer wb.Close()

			if sheet == "" {
				names := wb.Sheets()
				if len(names) == 0 {
					return fmt.Errorf("rxls: workbook has no sheets")
				}
				sheet = names[0]
			}

			conflict := column.ConflictNone
			switch {
			case coerceNumeric && coerceTemporal:
				conflict = column.ConflictAll
			case coerceNumeric:
				conflict = column.ConflictNumeric
			case coerceTemporal:
				conflict = column.ConflictTemporal
			}

			cols, err := wb.Columns(sheet, workbook.ColumnOptions{
				Extract:        extractOpts,
				Conflict:       conflict,
				FloatPrecision: 6,
				Async:          async,
			})
			if err != nil {
				return err
			}

			idxs := make([]int, 0, len(cols))
			for idx := range cols {
				idxs = append(idxs, idx)
			}
			sort.Ints(idxs)

			for _, idx := range idxs {
				arr := cols[idx]
				fmt.Fprintf(cmd.OutOrStdout(), "col %d: %s (%d rows)\n", idx, arr.Kind, arr.Len())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "sheet name (defaults to the first sheet)")
	cmd.Flags().IntVar(&skipRows, "skip-rows", 0, "number of leading rows to skip (e.g. a header row)")
	cmd.Flags().BoolVar(&coerceNumeric, "coerce-numeric", false, "attempt to parse stray string values in numeric columns")
	cmd.Flags().BoolVar(&coerceTemporal, "coerce-temporal", false, "attempt to parse stray string values in temporal columns")
	cmd.Flags().BoolVar(&async, "async", false, "decode XLSX worksheets on a separate goroutine (no effect on XLSB)")
	return cmd
}
