package cli

import (
	"context"
	"fmt"
	"io"

	"holonet/internal/models"

	"github.com/spf13/cobra"
)

// FavoritesView is a user's favorites, each projected.
type FavoritesView struct {
	User       map[string]any   `json:"user"`
	Planets    []map[string]any `json:"planets"`
	Characters []map[string]any `json:"characters"`
	Vehicles   []map[string]any `json:"vehicles"`
}

// RenderText writes one section per relation.
func (v *FavoritesView) RenderText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "favorites of %v <%v>\n", v.User["first_name"], v.User["email"]); err != nil {
		return err
	}
	sections := []struct {
		title   string
		records []map[string]any
	}{
		{"planets", v.Planets},
		{"characters", v.Characters},
		{"vehicles", v.Vehicles},
	}
	for _, s := range sections {
		if _, err := fmt.Fprintf(w, "\n%s:\n", s.title); err != nil {
			return err
		}
		if err := writeRecords(w, "  ", s.records); err != nil {
			return err
		}
	}
	return nil
}

// NewFavoritesCommand creates the favorites command.
func NewFavoritesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "favorites <user-id>",
		Short: "Print a user's favorite planets, characters and vehicles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			userID, err := parseID(args[0])
			if err != nil {
				return formatter.Fail(err)
			}

			return withRuntime(cmd, rootOpts, func(ctx context.Context, rt *Runtime) error {
				view, err := loadFavorites(ctx, rt, userID)
				if err != nil {
					return formatter.Fail(err)
				}
				return formatter.Success(view)
			})
		},
	}
}

func loadFavorites(ctx context.Context, rt *Runtime, userID uint) (*FavoritesView, error) {
	user, err := rt.Store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	planets, err := rt.Store.Favorites.Planets(ctx, userID)
	if err != nil {
		return nil, err
	}
	characters, err := rt.Store.Favorites.Characters(ctx, userID)
	if err != nil {
		return nil, err
	}
	vehicles, err := rt.Store.Favorites.Vehicles(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &FavoritesView{
		User:       user.Serialize(),
		Planets:    models.SerializeAll(planets),
		Characters: models.SerializeAll(characters),
		Vehicles:   models.SerializeAll(vehicles),
	}, nil
}
