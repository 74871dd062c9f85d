package cli

import (
	"context"

	"holonet/internal/database"
	"holonet/internal/seed"

	"github.com/spf13/cobra"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := seed.Options{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the catalog and generate users, posts and favorites",
		Long: `Load the built-in catalog of planets, vehicles and characters, then
generate users, posts and favorites with fake content.

Catalog records that already exist are reused. Every generated user has the
password "` + seed.DefaultPassword + `".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			return withRuntime(cmd, rootOpts, func(ctx context.Context, rt *Runtime) error {
				if err := database.Migrate(ctx, rt.DB()); err != nil {
					return formatter.Fail(WrapExitError(ExitCommandError, "migrate", err))
				}
				seeder, err := seed.NewSeeder(rt.Store, nil)
				if err != nil {
					return formatter.Fail(err)
				}
				report, err := seeder.Run(ctx, opts)
				if err != nil {
					return formatter.Fail(err)
				}
				return formatter.Success(reportRecord(report))
			})
		},
	}

	cmd.Flags().IntVar(&opts.NumUsers, "users", 50, "number of users to create")
	cmd.Flags().IntVar(&opts.NumPosts, "posts", 200, "number of posts to create")
	cmd.Flags().IntVar(&opts.MaxFavorites, "favorites", 3, "maximum favorites of each kind per user")
	cmd.Flags().BoolVar(&opts.ShouldClean, "clean", false, "delete all records before seeding")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed for generated content (0 = random)")
	return cmd
}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table, index and constraint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			return withRuntime(cmd, rootOpts, func(ctx context.Context, rt *Runtime) error {
				if err := database.Migrate(ctx, rt.DB()); err != nil {
					return formatter.Fail(WrapExitError(ExitCommandError, "migrate", err))
				}
				return formatter.Success(map[string]any{"tables": database.TableNames()})
			})
		},
	}
}

func reportRecord(r *seed.Report) map[string]any {
	return map[string]any{
		"planets":    r.Planets,
		"vehicles":   r.Vehicles,
		"characters": r.Characters,
		"pilots":     r.Pilots,
		"users":      r.Users,
		"posts":      r.Posts,
		"favorites":  r.Favorites,
	}
}
