package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Veraticus/cnis-flow/internal/cli"
	"github.com/Veraticus/cnis-flow/internal/contribution"
	"github.com/Veraticus/cnis-flow/internal/model"
	"github.com/Veraticus/cnis-flow/internal/pdftext"
)

// parseOutput is the JSON shape printed by parse --json.
type parseOutput struct {
	ID      string               `json:"id,omitempty"`
	Extract *model.Extract       `json:"extract"`
	Summary contribution.Summary `json:"summary"`
}

func parseCmd() *cobra.Command {
	var (
		asJSON bool
		save   bool
		gender string
	)

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a CNIS extract and compute its contribution time",
		Long: `Read a CNIS extract (.pdf or .txt), print the insured person, every bond found
and the contribution time of the included bonds.

Use --save to keep the result for later review with 'cnis imports'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			g, err := resolveGender(gender, "")
			if err != nil {
				return err
			}

			parser, err := newParser()
			if err != nil {
				return err
			}

			extract, err := parseFile(ctx, pdftext.NewExtractor(), parser, args[0])
			if err != nil {
				return err
			}
			extract.Profile.Gender = g

			var id string
			if save {
				store, err := initStorage(ctx)
				if err != nil {
					return err
				}
				defer store.Close()

				imp := newImport(args[0], g, extract)
				if err := store.SaveImport(ctx, imp); err != nil {
					return fmt.Errorf("failed to save import: %w", err)
				}
				id = imp.ID
			}

			summary := contribution.Reduce(extract.Bonds, g)
			if asJSON {
				return writeJSON(out, parseOutput{ID: id, Extract: extract, Summary: summary})
			}

			printExtract(out, extract, summary)
			if id != "" {
				fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Saved as %s", id)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the extract and summary as JSON")
	cmd.Flags().BoolVar(&save, "save", false, "save the parsed extract to the database")
	cmd.Flags().StringVar(&gender, "gender", "", "multiplier column for special activity (male, female)")

	return cmd
}

// printExtract writes the profile, bond table, warnings and totals.
func printExtract(w io.Writer, extract *model.Extract, summary contribution.Summary) {
	fmt.Fprintln(w, cli.RenderProfile(extract.Profile))
	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.FormatTitle(fmt.Sprintf("%d bonds", len(extract.Bonds))))
	fmt.Fprintln(w, cli.RenderBonds(extract.Bonds, summary.Bonds))
	if warnings := cli.RenderWarnings(extract.Warnings); warnings != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, warnings)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.RenderSummary(summary))
}
