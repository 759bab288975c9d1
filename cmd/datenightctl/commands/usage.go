package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/benvon/date-night/internal/catalog"
	"github.com/benvon/date-night/internal/database"
	"github.com/benvon/date-night/internal/models"
	"github.com/benvon/date-night/internal/planner"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewUsageCmd creates the usage command for the per-user planner state.
func NewUsageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Manage per-user planner usage",
		Long:  "Show or reset which catalog ideas each user has already been shown (USAGE_STORE).",
	}
	cmd.AddCommand(newUsageShowCmd())
	cmd.AddCommand(newUsageResetCmd())
	return cmd
}

// openPlanner loads the planner over the configured usage store. The
// returned func closes the Redis client when one was opened.
func openPlanner(ctx context.Context) (*planner.Planner, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	cat, err := catalog.FromPath(cfg.CatalogPath)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {}
	var client *redis.Client
	if cfg.UsageStore == planner.StoreRedis {
		rdb, err := database.NewRedisDB(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		closeFn = func() { _ = rdb.Close() }
		client = rdb.Client
	}
	store, err := planner.OpenStore(cfg.UsageStore, cfg.UsageFile, client, cfg.RedisUsageKey)
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	p, err := planner.New(ctx, cat, store)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return p, closeFn, nil
}

func newUsageShowCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the ideas each user has already been shown",
		Long:  "Print shown ideas per budget category for one user, or for every user when --name is omitted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, closeFn, err := openPlanner(context.Background())
			if err != nil {
				return err
			}
			defer closeFn()

			usage := p.Snapshot()
			users := make([]string, 0, len(usage))
			if name != "" {
				if _, ok := usage[name]; !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "No usage recorded for %s\n", name)
					return nil
				}
				users = append(users, name)
			} else {
				for user := range usage {
					users = append(users, user)
				}
				sort.Strings(users)
			}
			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No usage recorded")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "USER\tBUDGET\tSHOWN\tIDEAS")
			for _, user := range users {
				for _, category := range models.BudgetCategories {
					shown := usage[user][category]
					if len(shown) == 0 {
						continue
					}
					fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", user, category, len(shown), strings.Join(shown, "; "))
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "User name; all users when omitted")
	return cmd
}

func newUsageResetCmd() *cobra.Command {
	var name, budget string
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset a user's shown ideas",
		Long:  "Reset one budget category for a user, or all categories when --budget is omitted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}
			ctx := context.Background()
			p, closeFn, err := openPlanner(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			outcome := p.Reset(ctx, name, budget)
			if outcome.Kind == planner.OutcomeReset {
				// Surface a failed save instead of only logging it
				if err := p.Flush(ctx); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), outcome.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "User name (required)")
	cmd.Flags().StringVar(&budget, "budget", "", "Budget category to reset; all when omitted")
	return cmd
}
