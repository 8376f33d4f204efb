package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/dreamteam/internal/adapters/fs"
	httpAdapter "github.com/bft-labs/dreamteam/internal/adapters/http"
	logAdapter "github.com/bft-labs/dreamteam/internal/adapters/log"
	"github.com/bft-labs/dreamteam/internal/adapters/memory"
	"github.com/bft-labs/dreamteam/internal/adapters/sqlite"
	"github.com/bft-labs/dreamteam/internal/app"
	"github.com/bft-labs/dreamteam/internal/cliconfig"
	"github.com/bft-labs/dreamteam/internal/domain"
	"github.com/bft-labs/dreamteam/internal/ports"
	"github.com/bft-labs/dreamteam/internal/render"
	"github.com/bft-labs/dreamteam/internal/store"
)

const helpDescription = `
Build cricket teams from a live player roster.

Players are read from the stats service; your teams and the selected team
are saved locally and restored on the next run.

Configure via $HOME/.dreamteam/config.toml, DREAMTEAM_* environment
variables (a .env file in the working directory is read first), or flags.
`

var exampleUsage = strings.TrimSpace(`
  dreamteam players
  dreamteam add "V Kohli"
  dreamteam new-team && dreamteam use 2
  dreamteam teams --storage sqlite
  dreamteam watch
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// runtimeEnv is everything a subcommand needs once configuration is loaded.
type runtimeEnv struct {
	cfg      cliconfig.Config
	log      zerolog.Logger
	storage  ports.LocalStorage
	session  *app.Session
	renderer *render.Renderer
	closer   io.Closer
}

func (e *runtimeEnv) store() *store.Store {
	return e.session.Store()
}

// checkPersist turns a failed save of the last mutation into a command error.
func (e *runtimeEnv) checkPersist() error {
	if err := e.store().LastPersistError(); err != nil {
		return fmt.Errorf("save teams: %w", err)
	}
	return nil
}

// Close releases the storage backend. It is safe to call more than once.
func (e *runtimeEnv) Close() error {
	if e.closer == nil {
		return nil
	}
	err := e.closer.Close()
	e.closer = nil
	return err
}

func main() {
	env := &runtimeEnv{log: cliconfig.Logger(cliconfig.DefaultConfig().LogLevel)}
	root := newRootCmd(env)

	err := root.ExecuteContext(context.Background())
	// Storage is closed here rather than in a post-run hook, which cobra
	// skips when a command fails.
	if cerr := env.Close(); cerr != nil {
		env.log.Warn().Err(cerr).Msg("close storage")
	}
	if err != nil {
		env.log.Error().Err(err).Msg("dreamteam")
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Configuration is resolved and env
// populated before any subcommand runs.
func newRootCmd(env *runtimeEnv) *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "dreamteam",
		Short:         "Build cricket teams from a live player roster",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Precedence: defaults < config file < environment < flags
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.LoadDotEnv(); err != nil {
				return fmt.Errorf("load .env: %w", err)
			}
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			log := cliconfig.Logger(cfg.LogLevel)
			log.Debug().Interface("config", cfg).Msg("configuration")

			return setup(cmd.Context(), env, cfg, log, cmd.OutOrStdout())
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.dreamteam/config.toml)")
	root.PersistentFlags().StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "base URL of the stats service")
	root.PersistentFlags().StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "directory for saved teams (default: $HOME/.dreamteam)")
	root.PersistentFlags().StringVar(&cfg.Storage, "storage", cfg.Storage, "storage backend: file, sqlite or memory")
	root.PersistentFlags().StringVar(&cfg.StorageKey, "storage-key", cfg.StorageKey, "namespace the teams are saved under")
	root.PersistentFlags().DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	root.PersistentFlags().BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")

	root.AddCommand(
		playersCmd(env),
		teamsCmd(env),
		addCmd(env),
		removeCmd(env),
		newTeamCmd(env),
		useCmd(env),
		deleteTeamCmd(env),
		resetCmd(env),
		watchCmd(env),
	)
	return root
}

// setup opens the configured storage, rehydrates the team store and wires
// the session.
func setup(ctx context.Context, env *runtimeEnv, cfg cliconfig.Config, log zerolog.Logger, out io.Writer) error {
	logger := logAdapter.NewZerologAdapterWithLogger(log)

	storage, closer, err := openStorage(cfg)
	if err != nil {
		return err
	}

	st := store.New(storage, store.WithNamespace(cfg.StorageKey), store.WithLogger(logger))
	if err := st.Rehydrate(ctx); err != nil {
		if errors.Is(err, domain.ErrUnsupportedVersion) {
			log.Warn().Err(err).Msg("saved teams were written by a newer version; starting fresh")
		} else {
			log.Warn().Err(err).Msg("could not restore saved teams; starting fresh")
		}
	}

	loader := httpAdapter.NewRosterLoader(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.APIURL, logger)

	env.cfg = cfg
	env.log = log
	env.storage = storage
	env.closer = closer
	env.session = app.NewSession(st, loader, logger)
	env.renderer = render.New(out, cfg.NoColor)
	return nil
}

func openStorage(cfg cliconfig.Config) (ports.LocalStorage, io.Closer, error) {
	switch cfg.Storage {
	case cliconfig.StorageMemory:
		return memory.NewLocalStorage(), nil, nil
	case cliconfig.StorageSQLite:
		if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create state dir: %w", err)
		}
		db, err := sqlite.Open(filepath.Join(cfg.StateDir, sqlite.DefaultFileName))
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	default:
		return fs.NewLocalStorage(cfg.StateDir), nil, nil
	}
}
