package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thruflo/tasklist/internal/app"
	"github.com/thruflo/tasklist/internal/config"
	"github.com/thruflo/tasklist/internal/logging"
	"github.com/thruflo/tasklist/internal/storage"
	"github.com/thruflo/tasklist/internal/view"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	flagDir      string
	flagBackend  string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "tasklist",
	Short: "A small persistent task list",
	Long: `Tasklist keeps a list of tasks on disk. Add, complete and remove tasks
from the command line, or run 'tasklist ui' for an interactive view.

Data lives in $TASKLIST_DIR, or ~/.tasklist when unset.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("tasklist version {{.Version}}\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagDir, "dir", "", "data directory (default $TASKLIST_DIR or ~/.tasklist)")
	flags.StringVar(&flagBackend, "backend", "", "storage backend: file, sqlite or memory")
	flags.StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn or error")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// settings is the configuration resolved from the data directory and
// command line flags.
type settings struct {
	dir string
	cfg *config.Config
}

func loadSettings() (*settings, error) {
	dir := flagDir
	if dir == "" {
		var err error
		dir, err = config.DefaultDir()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return nil, err
	}
	if flagBackend != "" {
		cfg.Storage.Backend = flagBackend
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logging.SetLevel(level)

	return &settings{dir: dir, cfg: cfg}, nil
}

// session is an opened task list for the duration of one command.
type session struct {
	*settings
	app   *app.App
	store *storage.Persister
}

// Close releases the underlying store.
func (s *session) Close() error {
	return s.store.Close()
}

// sessionOptions adjusts how openSession builds the App.
type sessionOptions struct {
	renderer app.Renderer
	// showDate forces the date line on; ui.date in the config can also
	// turn it on.
	showDate bool
}

// openSession loads settings, opens the configured store and restores the
// task list. A notice about unreadable stored data is written to errOut.
func openSession(ctx context.Context, errOut io.Writer, opts sessionOptions) (*session, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, err
	}

	kv, err := storage.Open(s.cfg.Storage.Backend, s.cfg.StorePath(s.dir))
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	store := storage.NewPersister(kv)

	var notice string
	renderer := opts.renderer
	if renderer == nil {
		renderer = app.RendererFunc(func(f view.Frame) {
			if f.Notice != "" {
				notice = f.Notice
			}
		})
	}

	a := app.New(store, renderer, app.Options{ShowDate: opts.showDate || s.cfg.UI.ShowDate})
	if err := a.Open(ctx); err != nil {
		store.Close()
		return nil, err
	}
	if notice != "" {
		fmt.Fprintf(errOut, "warning: %s\n", notice)
	}

	return &session{settings: s, app: a, store: store}, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
