package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"gltfix/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent repair runs from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg.HistoryDBPath())
			if err != nil {
				return fmt.Errorf("open run journal: %w", err)
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, runs)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "no runs journaled yet")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.CreatedAt.Local().Format(time.DateTime),
					run.SourcePath,
					run.Status,
					strconv.Itoa(run.Scanned),
					strconv.Itoa(run.Repaired),
					strconv.Itoa(run.Rebound),
					strconv.Itoa(run.Failed),
					strconv.Itoa(run.BytesPatched),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"When", "File", "Status", "Scanned", "Repaired", "Rebound", "Failed", "Bytes"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight}))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit runs as JSON")

	return cmd
}
