package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/cnis-flow/internal/cli"
	"github.com/Veraticus/cnis-flow/internal/contribution"
	"github.com/Veraticus/cnis-flow/internal/model"
)

func importsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "imports",
		Short: "Review saved imports",
		Long:  `List, inspect, edit and delete the CNIS extracts saved with 'cnis import' or 'cnis parse --save'.`,
	}

	cmd.AddCommand(listImportsCmd())
	cmd.AddCommand(showImportCmd())
	cmd.AddCommand(deleteImportCmd())
	cmd.AddCommand(setBondCmd())

	return cmd
}

func listImportsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved imports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			imports, err := store.ListImports(ctx)
			if err != nil {
				return fmt.Errorf("failed to list imports: %w", err)
			}

			if asJSON {
				return writeJSON(out, imports)
			}

			if len(imports) == 0 {
				fmt.Fprintln(out, cli.SubtitleStyle.Render("No imports found. Use 'cnis import' to add one."))
				return nil
			}

			fmt.Fprint(out, cli.RenderImports(imports))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the list as JSON")

	return cmd
}

func showImportCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the bonds of a saved import",
		Args:  cobra.ExactArgs(1),
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

			if asJSON {
				return writeJSON(out, imp)
			}

			fmt.Fprintln(out, cli.SubtitleStyle.Render(fmt.Sprintf("%s · %s · %s",
				imp.ID, imp.SourceFile, imp.ImportedAt.Local().Format("2006-01-02 15:04"))))
			printExtract(out, &imp.Extract, contribution.Reduce(imp.Extract.Bonds, imp.Gender))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the import as JSON")

	return cmd
}

func deleteImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved import",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteImport(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete import %s: %w", args[0], err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted import %s", args[0])))
			return nil
		},
	}
}

func setBondCmd() *cobra.Command {
	var (
		include    bool
		exclude    bool
		concurrent bool
		activity   string
		start      string
		end        string
	)

	cmd := &cobra.Command{
		Use:   "set <id> <sequence>",
		Short: "Edit one bond of a saved import",
		Long: `Change how a bond counts toward the contribution time.

Examples:
  cnis imports set <id> 3 --exclude
  cnis imports set <id> 1 --activity special_25
  cnis imports set <id> 2 --concurrent
  cnis imports set <id> 5 --end 31/12/2023`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sequence, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid sequence %q: %w", args[1], err)
			}

			update, err := buildBondUpdate(bondFlags{
				include:       include,
				exclude:       exclude,
				concurrent:    concurrent,
				concurrentSet: cmd.Flags().Changed("concurrent"),
				activity:      activity,
				start:         start,
				end:           end,
			})
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.UpdateBond(ctx, args[0], sequence, update); err != nil {
				return fmt.Errorf("failed to update bond %d: %w", sequence, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated bond %d of %s", sequence, args[0])))
			return nil
		},
	}

	cmd.Flags().BoolVar(&include, "include", false, "count the bond in the total")
	cmd.Flags().BoolVar(&exclude, "exclude", false, "leave the bond out of the total")
	cmd.Flags().BoolVar(&concurrent, "concurrent", false, "mark the bond as concurrent with another (--concurrent=false to clear)")
	cmd.Flags().StringVar(&activity, "activity", "", "activity type (common, special_25, special_20, special_15)")
	cmd.Flags().StringVar(&start, "start", "", "start date (dd/mm/yyyy)")
	cmd.Flags().StringVar(&end, "end", "", "end date (dd/mm/yyyy)")
	cmd.MarkFlagsMutuallyExclusive("include", "exclude")

	return cmd
}

type bondFlags struct {
	activity      string
	start         string
	end           string
	include       bool
	exclude       bool
	concurrent    bool
	concurrentSet bool
}

func buildBondUpdate(f bondFlags) (model.BondUpdate, error) {
	var update model.BondUpdate

	switch {
	case f.include && f.exclude:
		return update, fmt.Errorf("--include and --exclude cannot be combined")
	case f.include:
		update.Included = boolPtr(true)
	case f.exclude:
		update.Included = boolPtr(false)
	}

	if f.concurrentSet {
		update.Concurrent = boolPtr(f.concurrent)
	}

	if f.activity != "" {
		activity := model.ActivityType(f.activity)
		if !activity.Valid() {
			return update, fmt.Errorf("invalid activity type %q (use %v)", f.activity, model.ActivityTypes)
		}
		update.ActivityType = &activity
	}

	if f.start != "" {
		d, err := model.ParseBRDate(f.start)
		if err != nil {
			return update, fmt.Errorf("invalid start date: %w", err)
		}
		update.Start = &d
	}

	if f.end != "" {
		d, err := model.ParseBRDate(f.end)
		if err != nil {
			return update, fmt.Errorf("invalid end date: %w", err)
		}
		update.End = &d
	}

	if update.IsEmpty() {
		return update, fmt.Errorf("nothing to change: pass --include, --exclude, --concurrent, --activity, --start or --end")
	}
	return update, nil
}

func boolPtr(b bool) *bool {
	return &b
}
