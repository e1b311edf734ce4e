package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bft-labs/opstate/internal/app"
	"github.com/bft-labs/opstate/pkg/log"
	"github.com/bft-labs/opstate/pkg/state"
)

func (a *cli) repository() *state.FileRepository {
	return state.NewFileRepository(a.cfg.Root,
		state.WithLogger(log.NewZerologAdapterWithLogger(a.logger)))
}

func (a *cli) tracker() *app.Tracker {
	repo := a.repository()
	return app.NewTracker(repo, log.NewZerologAdapterWithLogger(a.logger), nil)
}

// parseStatus rejects text that would only decode to UnknownOperation.
func parseStatus(text string) (state.StateStatus, error) {
	st := state.ParseStatus(text)
	if st.IsUnknown() {
		return st, fmt.Errorf("unknown operation status %q (want list, update, Pending or Restarting)", text)
	}
	return st, nil
}

func printState(w io.Writer, st state.State) {
	id, ok := st.ID()
	if !ok {
		id = "-"
	}
	op := "-"
	if status, ok := st.Status(); ok {
		op = status.String()
	}
	fmt.Fprintf(w, "operation_id: %s\noperation:    %s\n", id, op)
}

func newShowCommand(a *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the persisted operation state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.repository().Load(cmd.Context())
			if errors.Is(err, state.ErrNotFound) {
				return fmt.Errorf("no operation state under %s (run `opstate recover` to initialize): %w", a.cfg.Root, err)
			}
			if err != nil {
				return err
			}
			printState(cmd.OutOrStdout(), st)
			return nil
		},
	}
}

func newClearCommand(a *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Reset the state to no operation in progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.repository().Clear(cmd.Context())
			if err != nil {
				return err
			}
			printState(cmd.OutOrStdout(), st)
			return nil
		},
	}
}

func newBeginCommand(a *cli) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "begin --id ID STATUS",
		Short: "Record the start of an operation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := parseStatus(args[0])
			if err != nil {
				return err
			}
			return a.tracker().Begin(cmd.Context(), id, status)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "operation id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newUpdateCommand(a *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "update STATUS",
		Short: "Change the status of the recorded operation, keeping its id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := parseStatus(args[0])
			if err != nil {
				return err
			}
			return a.tracker().Transition(cmd.Context(), status)
		},
	}
}

func newRecoverCommand(a *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "recover",
		Short: "Load the state at startup, initializing it when missing or unreadable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.tracker().Recover(cmd.Context())
			if err != nil {
				return err
			}
			printState(cmd.OutOrStdout(), st)
			return nil
		},
	}
}

func newWatchCommand(a *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the state every time it changes, until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			repo := a.repository()
			logger := log.NewZerologAdapterWithLogger(a.logger)
			out := cmd.OutOrStdout()

			w := app.NewWatcher(repo, logger, app.WatcherConfig{
				Dir:      repo.Root(),
				FileName: filepath.Base(repo.Path()),
				Debounce: a.cfg.WatchDebounce,
				OnState: func(st state.State) {
					printState(out, st)
				},
			})

			a.logger.Info().Str("path", repo.Path()).Msg("watching operation state")
			return w.Run(ctx)
		},
	}
	cmd.Flags().DurationVar(&a.cfg.WatchDebounce, "debounce", a.cfg.WatchDebounce, "delay before reloading after a change")
	return cmd
}
