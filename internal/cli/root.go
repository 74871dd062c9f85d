// Package cli implements the holonet command.
package cli

import (
	"context"
	"fmt"

	"holonet/internal/observability"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format string // "json" | "text"
	Trace  bool
	Open   Opener
}

// Version is reported by --version and on exported traces.
var Version = "dev"

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"json", "text"}

// NewRootCommand creates the root command. open connects to the store; nil
// uses OpenRuntime.
func NewRootCommand(open Opener) *cobra.Command {
	if open == nil {
		open = OpenRuntime
	}
	opts := &RootOptions{Open: open}

	cmd := &cobra.Command{
		Use:   "holonet",
		Short: "Holonet - Star Wars social records",
		Long:  "Seed and inspect the Holonet store: users, planets, characters, vehicles, posts and favorites.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				err := NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
				fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(observability.WithCorrelationID(ctx, observability.GenerateCorrelationID()))
			return nil
		},
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "json", "output format (json|text)")
	cmd.PersistentFlags().BoolVar(&opts.Trace, "trace", false, "export repository spans to stderr")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewFavoritesCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
	}
}

// withRuntime opens the store, runs fn and closes the store.
func withRuntime(cmd *cobra.Command, opts *RootOptions, fn func(ctx context.Context, rt *Runtime) error) error {
	ctx := cmd.Context()
	rt, err := opts.Open(ctx, opts, cmd.ErrOrStderr())
	if err != nil {
		return newFormatter(opts, cmd).Fail(WrapExitError(ExitCommandError, "failed to open store", err))
	}
	defer func() {
		if cerr := rt.Close(ctx); cerr != nil {
			observability.Logger.WarnContext(ctx, "close failed", "error", cerr)
		}
	}()
	return fn(ctx, rt)
}
