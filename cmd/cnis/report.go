package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/cnis-flow/internal/cli"
	"github.com/Veraticus/cnis-flow/internal/contribution"
	"github.com/Veraticus/cnis-flow/internal/model"
	"github.com/Veraticus/cnis-flow/internal/report"
)

func reportCmd() *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "report <id>",
		Short: "Export a saved import as a PDF, XLSX or JSON report",
		Long: `Write a report with the insured person, every bond with its computed duration
and the total contribution time.

The format defaults to the configured report.format; the file name defaults to
cnis-<id>.<format> in report.output_dir.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := currentConfig()
			if err != nil {
				return err
			}
			if format == "" {
				format = cfg.Report.Format
			}
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			imp, err := store.GetImport(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to load import %s: %w", args[0], err)
			}

			path := out
			if path == "" {
				path = filepath.Join(cfg.Report.OutputDir, defaultReportName(imp, f))
			}

			summary := contribution.Reduce(imp.Extract.Bonds, imp.Gender)
			r := report.Build(&imp.Extract, summary, time.Now())

			if err := writeReportFile(path, f, r); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Wrote %s report to %s", f, path)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "report format (pdf, xlsx, json)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file")

	return cmd
}

func writeReportFile(path string, f report.Format, r report.Report) (err error) {
	file, err := os.Create(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close report file: %w", closeErr)
		}
	}()

	if err := report.Write(file, f, r); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func defaultReportName(imp *model.Import, f report.Format) string {
	id := imp.ID
	if i := strings.IndexByte(id, '-'); i > 0 {
		id = id[:i]
	}
	return fmt.Sprintf("cnis-%s.%s", id, f)
}
