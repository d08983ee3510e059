package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/cnis-flow/internal/cli"
	"github.com/Veraticus/cnis-flow/internal/cnis"
	"github.com/Veraticus/cnis-flow/internal/common"
	"github.com/Veraticus/cnis-flow/internal/model"
	"github.com/Veraticus/cnis-flow/internal/pdftext"
	"github.com/Veraticus/cnis-flow/internal/service"
)

func importCmd() *cobra.Command {
	var gender string

	cmd := &cobra.Command{
		Use:   "import <files...>",
		Short: "Parse and save CNIS extracts",
		Long: `Parse one or more CNIS extracts and save each as a separate import.

Files that fail to parse are reported and skipped; the rest are still saved.
Interrupting the command keeps the files finished so far.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := resolveGender(gender, "")
			if err != nil {
				return err
			}

			parser, err := newParser()
			if err != nil {
				return err
			}

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Import")
			ctx, stop := handler.HandleInterrupts(cmd.Context())
			defer stop()

			imp := &importer{
				store:     store,
				extractor: pdftext.NewExtractor(),
				parser:    parser,
			}
			result := imp.run(ctx, cmd, args, g)

			out := cmd.OutOrStdout()
			for _, f := range result.failed {
				fmt.Fprintln(out, cli.FormatError(fmt.Sprintf("%s: %v", f.path, common.Explain(f.err))))
			}
			for _, s := range result.saved {
				fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%s → %s", s.path, s.id)))
			}
			fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Imported %d of %d files", len(result.saved), len(args))))

			if handler.WasInterrupted() {
				return errors.New("import interrupted")
			}
			if len(result.saved) == 0 {
				return errors.New("no files were imported")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&gender, "gender", "", "multiplier column stored with the imports (male, female)")

	return cmd
}

type importedFile struct {
	path string
	id   string
}

type failedFile struct {
	err  error
	path string
}

type importResult struct {
	saved  []importedFile
	failed []failedFile
}

// importer saves files one by one so an interrupt keeps what is done.
type importer struct {
	store     service.Storage
	extractor service.TextExtractor
	parser    *cnis.Parser
}

func (imp *importer) run(ctx context.Context, cmd *cobra.Command, paths []string, gender model.Gender) importResult {
	var result importResult

	bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(paths), "Importing")
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}

		id, err := imp.importFile(ctx, path, gender)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			common.LogError(err, "Import failed", common.Fields{"file": path})
			result.failed = append(result.failed, failedFile{path: path, err: err})
		} else {
			result.saved = append(result.saved, importedFile{path: path, id: id})
		}

		if err := bar.Add(1); err != nil {
			slog.Debug("Failed to update progress bar", "error", err)
		}
	}

	return result
}

func (imp *importer) importFile(ctx context.Context, path string, gender model.Gender) (string, error) {
	extract, err := parseFile(ctx, imp.extractor, imp.parser, path)
	if err != nil {
		return "", err
	}

	record := newImport(path, gender, extract)
	if err := imp.store.SaveImport(ctx, record); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}

	common.LogDebug("Imported file", common.Fields{
		"file":     path,
		"id":       record.ID,
		"bonds":    len(extract.Bonds),
		"warnings": len(extract.Warnings),
	})
	return record.ID, nil
}
