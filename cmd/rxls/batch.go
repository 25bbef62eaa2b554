package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rxlsgo/rxls/column"
	"github.com/rxlsgo/rxls/extract"
	"github.com/rxlsgo/rxls/internal/workerpool"
	"github.com/rxlsgo/rxls/workbook"
)

// sheetColumns pairs a sheet name with its finalized columns, preserving the
// workbook's sheet order in the batch command's output.
type sheetColumns struct {
	sheet string
	cols  map[int]*column.Array
}

func newBatchCmd() *cobra.Command {
	var sheets []string
	var workers int
	var skipRows int
	var coerceNumeric bool
	var coerceTemporal bool

	cmd := &cobra.Command{
		Use:   "batch <path>",
		Short: "Finalize multiple sheets' columns concurrently",
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

			targets := sheets
			if len(targets) == 0 {
				targets = wb.Sheets()
			}
			if len(targets) == 0 {
				return fmt.Errorf("rxls: workbook has no sheets")
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

			opts := workbook.ColumnOptions{
				Extract:        extractOpts,
				Conflict:       conflict,
				FloatPrecision: 6,
			}

			jobs := make([]func() (sheetColumns, error), len(targets))
			for i, name := range targets {
				name := name
				jobs[i] = func() (sheetColumns, error) {
					cols, err := wb.Columns(name, opts)
					return sheetColumns{sheet: name, cols: cols}, err
				}
			}

			results, errs := workerpool.Map(workers, jobs)
			for i, err := range errs {
				if err != nil {
					return fmt.Errorf("rxls: sheet %q: %w", targets[i], err)
				}
			}

			for _, sc := range results {
				idxs := make([]int, 0, len(sc.cols))
				for idx := range sc.cols {
					idxs = append(idxs, idx)
				}
				sort.Ints(idxs)

				fmt.Fprintf(cmd.OutOrStdout(), "sheet %q:\n", sc.sheet)
				for _, idx := range idxs {
					arr := sc.cols[idx]
					fmt.Fprintf(cmd.OutOrStdout(), "  col %d: %s (%d rows)\n", idx, arr.Kind, arr.Len())
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&sheets, "sheet", nil, "sheet name to include (repeatable; defaults to every sheet)")
	cmd.Flags().IntVar(&workers, "workers", 4, "number of sheets finalized concurrently")
	cmd.Flags().IntVar(&skipRows, "skip-rows", 0, "number of leading rows to skip (e.g. a header row)")
	cmd.Flags().BoolVar(&coerceNumeric, "coerce-numeric", false, "attempt to parse stray string values in numeric columns")
	cmd.Flags().BoolVar(&coerceTemporal, "coerce-temporal", false, "attempt to parse stray string values in temporal columns")
	return cmd
}
