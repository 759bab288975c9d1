package commands

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/benvon/date-night/internal/catalog"
	"github.com/benvon/date-night/internal/config"
	"github.com/benvon/date-night/internal/models"
	"github.com/benvon/date-night/internal/validation"
	"github.com/spf13/cobra"
)

// NewIdeasCmd creates the ideas command for the database-backed idea table.
func NewIdeasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ideas",
		Short: "Manage stored date night ideas",
		Long:  "List, add, delete, reset or seed the ideas served under /api/date-night-ideas.",
	}
	cmd.AddCommand(newIdeasListCmd())
	cmd.AddCommand(newIdeasAddCmd())
	cmd.AddCommand(newIdeasDeleteCmd())
	cmd.AddCommand(newIdeasResetCmd())
	cmd.AddCommand(newIdeasSeedCmd())
	return cmd
}

func newIdeasListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all ideas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withIdeaStore(func(ctx context.Context, store IdeaStore, _ *config.Config) error {
				ideas, err := store.GetAll(ctx)
				if err != nil {
					return fmt.Errorf("list ideas: %w", err)
				}
				if len(ideas) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No ideas stored. Use 'ideas add' or 'ideas seed' to add some.")
					return nil
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tBUDGET\tSUGGESTED\tTITLE")
				for _, idea := range ideas {
					fmt.Fprintf(tw, "%d\t%s\t%t\t%s\n", idea.ID, idea.BudgetCategory, idea.IsSuggested, idea.Title)
				}
				return tw.Flush()
			})
		},
	}
}

func newIdeasAddCmd() *cobra.Command {
	var title, budget, description, location string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an idea",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			title = validation.SanitizeText(title)
			if title == "" {
				return fmt.Errorf("--title is required")
			}
			category, err := validation.ValidateBudgetCategory(budget)
			if err != nil {
				return err
			}
			input := models.IdeaInput{
				Title:          title,
				BudgetCategory: category,
				Description:    validation.SanitizeOptional(&description),
				Location:       validation.SanitizeOptional(&location),
			}

			return withIdeaStore(func(ctx context.Context, store IdeaStore, _ *config.Config) error {
				idea, err := store.Create(ctx, input)
				if err != nil {
					return fmt.Errorf("add idea: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added idea %d: %s (%s)\n", idea.ID, idea.Title, idea.BudgetCategory)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Idea title (required)")
	cmd.Flags().StringVar(&budget, "budget", "", "Budget category: "+models.ValidBudgetList+" (required)")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	cmd.Flags().StringVar(&location, "location", "", "Optional location")
	return cmd
}

func newIdeasDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an idea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid idea id %q", args[0])
			}
			return withIdeaStore(func(ctx context.Context, store IdeaStore, _ *config.Config) error {
				deleted, err := store.Delete(ctx, id)
				if err != nil {
					return fmt.Errorf("delete idea: %w", err)
				}
				if !deleted {
					return fmt.Errorf("idea %d not found", id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted idea %d\n", id)
				return nil
			})
		},
	}
}

func newIdeasResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Mark every idea as not yet suggested",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withIdeaStore(func(ctx context.Context, store IdeaStore, _ *config.Config) error {
				n, err := store.Reset(ctx)
				if err != nil {
					return fmt.Errorf("reset ideas: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reset %d ideas\n", n)
				return nil
			})
		},
	}
}

func newIdeasSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert catalog ideas that are not stored yet",
		Long:  "Copy the planner catalog (built-in, or CATALOG_PATH) into the idea table, skipping titles already present.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withIdeaStore(func(ctx context.Context, store IdeaStore, cfg *config.Config) error {
				cat, err := catalog.FromPath(cfg.CatalogPath)
				if err != nil {
					return err
				}
				n, err := store.Seed(ctx, cat)
				if err != nil {
					return fmt.Errorf("seed ideas: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d of %d catalog ideas\n", n, cat.Len())
				return nil
			})
		},
	}
}
