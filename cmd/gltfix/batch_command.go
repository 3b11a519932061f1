package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"gltfix/internal/batch"
	"gltfix/internal/config"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "batch <directory>",
		Short: "Repair every scene file under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			store := ctx.openHistory(logger)
			defer store.Close()

			dir, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			runner := batch.NewRunner(cfg, logger, store)
			summary, err := runner.Run(cmd.Context(), dir)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, summary)
			}
			renderSummary(cmd, summary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the batch summary as JSON")

	return cmd
}

func renderSummary(cmd *cobra.Command, summary *batch.Summary) {
	out := cmd.OutOrStdout()

	rows := make([][]string, 0, len(summary.Results))
	for _, result := range summary.Results {
		status := "written"
		detail := ""
		repaired := ""
		if result.Err != nil {
			status = "failed"
			detail = result.Error
		} else {
			repaired = strconv.Itoa(len(result.Report.Repaired) + len(result.Report.Rebound))
			detail = result.OutputGLTF
		}
		rows = append(rows, []string{result.Path, status, repaired, detail})
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable(out,
			[]string{"File", "Status", "Fixed samplers", "Detail"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft}))
	}

	fmt.Fprintf(out, "%d files found: %d written, %d failed\n",
		summary.Files, summary.Written, summary.Failed)
}
