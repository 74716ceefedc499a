package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportPath string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show appointment statistics",
	Args:  cobra.NoArgs,
	RunE:  showStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&exportPath, "export", "", "Also write an XLSX workbook to this path")
}

func showStats(cmd *cobra.Command, args []string) error {
	a, err := newApp(os.Stderr)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if _, err := a.login(ctx); err != nil {
		return err
	}

	summary, err := a.stats.Summary(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Pending:    %d\n", summary.Pending)
	fmt.Fprintf(out, "Accepted:   %d\n", summary.Accepted)
	fmt.Fprintf(out, "Cancelled:  %d\n", summary.Cancelled)
	fmt.Fprintf(out, "Finished:   %d\n", summary.Finished)
	fmt.Fprintf(out, "Total:      %d\n", summary.Total)
	fmt.Fprintf(out, "Feedback:   %d\n", summary.Feedback)

	if exportPath == "" {
		return nil
	}
	f, err := os.Create(exportPath)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := a.stats.Export(ctx, f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	fmt.Fprintf(out, "Exported to %s\n", exportPath)
	return nil
}
