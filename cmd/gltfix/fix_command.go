package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"gltfix/internal/batch"
	"gltfix/internal/config"
	"gltfix/internal/repair"
)

func newFixCommand(ctx *commandContext) *cobra.Command {
	var outputGLTF string
	var outputBin string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "fix <input.gltf>",
		Short: "Repair a single scene file",
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

			inputPath, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			result := batch.Process(cmd.Context(), cfg, logger, store, inputPath, outputGLTF, outputBin)
			if result.Err != nil {
				return result.Err
			}

			if jsonOutput {
				return writeJSON(cmd, result)
			}
			renderResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputGLTF, "output", "o", "", "Output document path (default derives from the input)")
	cmd.Flags().StringVar(&outputBin, "bin", "", "Output binary payload path (default derives from the output document)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the run report as JSON")

	return cmd
}

func renderResult(cmd *cobra.Command, result batch.Result) {
	out := cmd.OutOrStdout()
	report := result.Report

	fmt.Fprintf(out, "%s: %d samplers scanned, %d repaired, %d rebound, %d failed, %d anomalies, %d bytes patched\n",
		result.Path, report.Scanned, len(report.Repaired), len(report.Rebound),
		len(report.Failures), len(report.Anomalies), report.BytesPatched)

	fixes := make([]repair.SamplerFix, 0, len(report.Repaired)+len(report.Rebound))
	fixes = append(fixes, report.Repaired...)
	fixes = append(fixes, report.Rebound...)
	if len(fixes) > 0 {
		rows := make([][]string, 0, len(fixes))
		for _, fix := range fixes {
			mode := "rebound"
			if fix.Synthesized {
				mode = "synthesized"
			}
			rows = append(rows, []string{
				animationLabel(fix.Animation, fix.AnimationName),
				strconv.Itoa(fix.Sampler),
				strconv.Itoa(fix.Accessor),
				strconv.Itoa(fix.Keyframes),
				mode,
				fmt.Sprintf("%.4f .. %.4f", fix.NewMin, fix.NewMax),
			})
		}
		fmt.Fprintln(out, renderTable(out,
			[]string{"Animation", "Sampler", "Accessor", "Keyframes", "Mode", "New bounds"},
			rows,
			[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft, alignLeft}))
	}

	if len(report.Failures) > 0 {
		rows := make([][]string, 0, len(report.Failures))
		for _, failure := range report.Failures {
			rows = append(rows, []string{
				animationLabel(failure.Animation, failure.AnimationName),
				strconv.Itoa(failure.Sampler),
				failure.Reason,
			})
		}
		fmt.Fprintln(out, renderTable(out,
			[]string{"Animation", "Sampler", "Failure"},
			rows,
			[]columnAlignment{alignLeft, alignRight, alignLeft}))
	}

	if len(report.Anomalies) > 0 {
		fmt.Fprintf(out, "advisory: %d non-timestamp accessors carry sentinel bounds (not repairable):\n", len(report.Anomalies))
		for _, anomaly := range report.Anomalies {
			fmt.Fprintf(out, "  accessor %d (%s)\n", anomaly.Accessor, anomaly.ElementType)
		}
	}

	if result.OutputGLTF != "" {
		fmt.Fprintf(out, "wrote %s and %s\n", result.OutputGLTF, result.OutputBin)
	}
}

func animationLabel(index int, name string) string {
	if name != "" {
		return fmt.Sprintf("%d (%s)", index, name)
	}
	return strconv.Itoa(index)
}
