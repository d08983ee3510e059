package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/cnis-flow/internal/cli"
	"github.com/Veraticus/cnis-flow/internal/contribution"
)

func calcCmd() *cobra.Command {
	var (
		asJSON bool
		gender string
	)

	cmd := &cobra.Command{
		Use:   "calc <id>",
		Short: "Compute the contribution time of a saved import",
		Long: `Compute per-bond and total contribution time for a saved import, honoring the
inclusion flags and activity types set with 'cnis imports set'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			imp, err := store.GetImport(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to load import %s: %w", args[0], err)
			}

			g, err := resolveGender(gender, imp.Gender)
			if err != nil {
				return err
			}

			summary := contribution.Reduce(imp.Extract.Bonds, g)
			if asJSON {
				return writeJSON(out, summary)
			}

			fmt.Fprintln(out, cli.RenderBonds(imp.Extract.Bonds, summary.Bonds))
			fmt.Fprintln(out)
			fmt.Fprintln(out, cli.RenderSummary(summary))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	cmd.Flags().StringVar(&gender, "gender", "", "override the stored multiplier column (male, female)")

	return cmd
}
