package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bft-labs/dreamteam/internal/adapters/fs"
	"github.com/bft-labs/dreamteam/internal/app"
	"github.com/bft-labs/dreamteam/internal/domain"
)

func playersCmd(env *runtimeEnv) *cobra.Command {
	var reload bool
	cmd := &cobra.Command{
		Use:   "players",
		Short: "List available players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			load := env.session.EnsureRoster
			if reload {
				load = env.session.Reload
			}
			env.renderer.Loading()
			if err := load(cmd.Context()); err != nil {
				env.renderer.Error(env.store().Error())
				return err
			}
			env.renderer.Players(env.store().Snapshot())
			return nil
		},
	}
	cmd.Flags().BoolVar(&reload, "reload", false, "fetch the roster even if one is loaded")
	return cmd
}

func teamsCmd(env *runtimeEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "Show the current team and its total runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env.renderer.Teams(env.store().Snapshot())
			return nil
		},
	}
}

func addCmd(env *runtimeEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME...",
		Short: "Add players to the current team",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				p, added, err := env.session.AddByName(cmd.Context(), name)
				if err != nil {
					if errors.Is(err, domain.ErrLoadFailed) {
						env.renderer.Error(env.store().Error())
					}
					return err
				}
				if added {
					env.renderer.Info("Added %s", p.Name)
				} else {
					env.renderer.Info("%s is already in the team", p.Name)
				}
			}
			if err := env.checkPersist(); err != nil {
				return err
			}
			env.renderer.Teams(env.store().Snapshot())
			return nil
		},
	}
}

func removeCmd(env *runtimeEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME...",
		Short: "Remove players from the current team",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				if env.session.RemoveByName(cmd.Context(), name) {
					env.renderer.Info("Removed %s", name)
				} else {
					env.renderer.Info("%s is not in the team", name)
				}
			}
			if err := env.checkPersist(); err != nil {
				return err
			}
			env.renderer.Teams(env.store().Snapshot())
			return nil
		},
	}
}

func newTeamCmd(env *runtimeEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "new-team",
		Short: "Create an empty team and select it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			i := env.store().AddNewTeam(cmd.Context())
			if err := env.checkPersist(); err != nil {
				return err
			}
			env.renderer.Info("Created Team %d", i+1)
			env.renderer.Teams(env.store().Snapshot())
			return nil
		},
	}
}

func useCmd(env *runtimeEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "use N",
		Short: "Select team N",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseTeamNumber(args[0])
			if err != nil {
				return err
			}
			if err := env.store().SetCurrentTeam(cmd.Context(), i); err != nil {
				return fmt.Errorf("select team %s: %w", args[0], err)
			}
			if err := env.checkPersist(); err != nil {
				return err
			}
			env.renderer.Teams(env.store().Snapshot())
			return nil
		},
	}
}

func deleteTeamCmd(env *runtimeEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-team N",
		Short: "Delete team N",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseTeamNumber(args[0])
			if err != nil {
				return err
			}
			if !env.store().DeleteTeam(cmd.Context(), i) {
				return fmt.Errorf("delete team %s: %w", args[0], domain.ErrIndexOutOfRange)
			}
			if err := env.checkPersist(); err != nil {
				return err
			}
			env.renderer.Info("Deleted Team %d", i+1)
			env.renderer.Teams(env.store().Snapshot())
			return nil
		},
	}
}

func resetCmd(env *runtimeEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete all teams and the saved state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := env.store().Reset(cmd.Context()); err != nil {
				return fmt.Errorf("reset teams: %w", err)
			}
			env.renderer.Info("Removed all teams")
			env.renderer.Teams(env.store().Snapshot())
			return nil
		},
	}
}

func watchCmd(env *runtimeEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Redraw the teams whenever the saved state changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, ok := env.storage.(*fs.LocalStorage)
			if !ok {
				return fmt.Errorf("watch requires the %q storage backend, got %q", "file", env.cfg.Storage)
			}
			if err := os.MkdirAll(files.Dir(), 0o700); err != nil {
				return fmt.Errorf("create state dir: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			env.renderer.Teams(env.store().Snapshot())

			w := app.NewSnapshotWatcher(files.Path(env.cfg.StorageKey), app.DefaultDebounce, env.session.Logger())
			return w.Run(ctx, func() {
				if err := env.store().Rehydrate(context.Background()); err != nil {
					env.log.Warn().Err(err).Msg("reload saved teams")
					return
				}
				env.renderer.Info("")
				env.renderer.Teams(env.store().Snapshot())
			})
		},
	}
}

// parseTeamNumber converts the one-based team number users see to an index.
func parseTeamNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid team number %q", s)
	}
	return n - 1, nil
}
