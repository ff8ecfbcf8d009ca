package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"bandplanner/internal/config"
	"bandplanner/internal/logging"
	"bandplanner/internal/roster"
)

func newSessionCommand(ctx *commandContext) *cobra.Command {
	var available []string

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Start an interactive planning session",
		Long: "Start an interactive planning session. Availability and the song selection\n" +
			"last for the session only; members and songs are saved as they change.\n" +
			"Type help inside the session for the list of commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			release, err := acquireSessionLock(cfg, logger)
			if err != nil {
				return err
			}
			defer release()

			return ctx.withModel(cmd, func(c context.Context, model *roster.Model) error {
				ids, err := resolveMemberIDs(model, available)
				if err != nil {
					return err
				}
				model.SetAvailable(ids...)

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "bandplanner session (type help for commands)")
				return newSession(model, out, logger).run(c, cmd.InOrStdin())
			})
		},
	}

	cmd.Flags().StringSliceVarP(&available, "available", "a", nil, "Member who starts out available (name or id)")
	return cmd
}

// acquireSessionLock takes the exclusive session lock for on-disk backends.
// The returned function releases it.
func acquireSessionLock(cfg *config.Config, logger *slog.Logger) (func(), error) {
	if cfg.Storage.Backend == config.BackendMemory {
		return func() {}, nil
	}

	lockPath := cfg.SessionLockPath()
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire session lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another bandplanner session is already running")
	}

	logger.Debug("session lock acquired", logging.String("lock", lockPath))
	return func() {
		if err := lock.Unlock(); err != nil {
			logging.WarnWithContext(logger, "failed to release session lock", "session_lock_release_failed",
				logging.Error(err),
				logging.String("lock", lockPath),
			)
		}
	}, nil
}
