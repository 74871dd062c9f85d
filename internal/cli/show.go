package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"holonet/internal/models"
	"holonet/internal/repository"

	"github.com/spf13/cobra"
)

type recordKind struct {
	get  func(ctx context.Context, s *repository.Store, id uint) (models.Serializer, error)
	list func(ctx context.Context, s *repository.Store, limit, offset int) ([]map[string]any, error)
}

var recordKinds = map[string]recordKind{
	"user": {
		get: func(ctx context.Context, s *repository.Store, id uint) (models.Serializer, error) {
			return s.Users.GetByID(ctx, id)
		},
		list: func(ctx context.Context, s *repository.Store, limit, offset int) ([]map[string]any, error) {
			items, err := s.Users.List(ctx, limit, offset)
			return models.SerializeAll(items), err
		},
	},
	"planet": {
		get: func(ctx context.Context, s *repository.Store, id uint) (models.Serializer, error) {
			return s.Planets.GetByID(ctx, id)
		},
		list: func(ctx context.Context, s *repository.Store, limit, offset int) ([]map[string]any, error) {
			items, err := s.Planets.List(ctx, limit, offset)
			return models.SerializeAll(items), err
		},
	},
	"character": {
		get: func(ctx context.Context, s *repository.Store, id uint) (models.Serializer, error) {
			return s.Characters.GetByID(ctx, id)
		},
		list: func(ctx context.Context, s *repository.Store, limit, offset int) ([]map[string]any, error) {
			items, err := s.Characters.List(ctx, limit, offset)
			return models.SerializeAll(items), err
		},
	},
	"vehicle": {
		get: func(ctx context.Context, s *repository.Store, id uint) (models.Serializer, error) {
			return s.Vehicles.GetByID(ctx, id)
		},
		list: func(ctx context.Context, s *repository.Store, limit, offset int) ([]map[string]any, error) {
			items, err := s.Vehicles.List(ctx, limit, offset)
			return models.SerializeAll(items), err
		},
	},
	"post": {
		get: func(ctx context.Context, s *repository.Store, id uint) (models.Serializer, error) {
			return s.Posts.GetByID(ctx, id)
		},
		list: func(ctx context.Context, s *repository.Store, limit, offset int) ([]map[string]any, error) {
			items, err := s.Posts.List(ctx, limit, offset)
			return models.SerializeAll(items), err
		},
	},
}

func kindNames() string {
	names := make([]string, 0, len(recordKinds))
	for k := range recordKinds {
		names = append(names, k)
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}

func lookupKind(name string) (recordKind, error) {
	kind, ok := recordKinds[strings.ToLower(name)]
	if !ok {
		return recordKind{}, NewExitError(ExitCommandError, fmt.Sprintf("unknown record type %q: must be one of %s", name, kindNames()))
	}
	return kind, nil
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || id == 0 {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid id %q", arg))
	}
	return uint(id), nil
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("show <%s> <id>", kindNames()),
		Short: "Print the projection of one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			kind, err := lookupKind(args[0])
			if err != nil {
				return formatter.Fail(err)
			}
			id, err := parseID(args[1])
			if err != nil {
				return formatter.Fail(err)
			}

			return withRuntime(cmd, rootOpts, func(ctx context.Context, rt *Runtime) error {
				record, err := kind.get(ctx, rt.Store, id)
				if err != nil {
					return formatter.Fail(err)
				}
				return formatter.Success(record.Serialize())
			})
		},
	}
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("list <%s>", kindNames()),
		Short: "Print the projections of a page of records, ordered by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			kind, err := lookupKind(args[0])
			if err != nil {
				return formatter.Fail(err)
			}

			return withRuntime(cmd, rootOpts, func(ctx context.Context, rt *Runtime) error {
				records, err := kind.list(ctx, rt.Store, limit, offset)
				if err != nil {
					return formatter.Fail(err)
				}
				return formatter.Success(records)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "page size (1-100)")
	cmd.Flags().IntVar(&offset, "offset", 0, "records to skip")
	return cmd
}
