// Package cli is the todos command tree.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todos/internal/config"
	"github.com/Makepad-fr/todos/internal/logging"
	"github.com/Makepad-fr/todos/internal/store/httpstore"
	"github.com/Makepad-fr/todos/internal/store/jsonstore"
	"github.com/Makepad-fr/todos/internal/tui"
	"github.com/Makepad-fr/todos/internal/ui"
	"github.com/Makepad-fr/todos/internal/viewmodel"
)

// Version is stamped at build time.
var Version = "dev"

// App holds persistent flags and the merged config.
type App struct {
	Endpoint string
	Timeout  string
	SeedFile string
	IDPolicy string
	Theme    string
	NoColor  bool
	Debug    bool
	LogFile  string

	cfg *config.Config
}

// NewRootCmd builds the todos command tree.
func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "todos",
		Short:         "A to-do list seeded from a remote JSON endpoint",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          usageArgs(cobra.NoArgs),
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  todos

  # Print the open todos
  todos ls --filter active

  # Serve the list to an MCP client over stdio
  todos mcp
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return usage(err)
	})

	f := cmd.PersistentFlags()
	f.StringVar(&app.Endpoint, "endpoint", "", "URL the todos are fetched from")
	f.StringVar(&app.Timeout, "timeout", "", "HTTP timeout, e.g. 5s")
	f.StringVar(&app.SeedFile, "seed-file", "", "Read todos from a local JSON file instead of the endpoint")
	f.StringVar(&app.IDPolicy, "id-policy", "", "How new todos are numbered (length|monotonic)")
	f.StringVar(&app.Theme, "theme", "", "Color theme (classic|neon|mono)")
	f.BoolVar(&app.NoColor, "no-color", false, "Disable colors")
	f.BoolVar(&app.Debug, "debug", false, "Log at debug level")
	f.StringVar(&app.LogFile, "log-file", "", "Where the TUI writes its log")

	cmd.AddCommand(newLsCmd(app))
	cmd.AddCommand(newMCPCmd(app))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// setup merges config files, env and flags, then applies the theme.
func (a *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("endpoint") {
		cfg.Endpoint = a.Endpoint
	}
	if f.Changed("timeout") {
		cfg.Timeout = a.Timeout
	}
	if f.Changed("seed-file") {
		cfg.SeedFile = a.SeedFile
	}
	if f.Changed("id-policy") {
		cfg.IDPolicy = a.IDPolicy
	}
	if f.Changed("theme") {
		cfg.Theme = a.Theme
	}
	if f.Changed("no-color") {
		cfg.NoColor = a.NoColor
	}
	if f.Changed("log-file") {
		cfg.LogFile = a.LogFile
	}
	if err := cfg.Validate(); err != nil {
		return usage(fmt.Errorf("invalid configuration: %w", err))
	}
	a.cfg = cfg

	ui.SetTheme(cfg.Theme)
	if cfg.NoColor {
		ui.SetColorForcing(false, true)
	}
	return nil
}

func (a *App) logOptions() logging.Options {
	return logging.Options{
		Level:  a.cfg.LogLevel,
		Format: a.cfg.LogFormat,
		Debug:  a.Debug,
	}
}

// logger writes to w; the TUI uses fileLogger instead.
func (a *App) logger(w io.Writer) (*log.Logger, error) {
	return logging.New(w, a.logOptions())
}

// source picks the seed file when one is configured, the endpoint otherwise.
func (a *App) source(logger *log.Logger) viewmodel.Source {
	if p := a.cfg.SeedPath(); p != "" {
		return jsonstore.File{Path: p}
	}
	c := httpstore.New(a.cfg.Endpoint, a.cfg.TimeoutDuration(), logger)
	c.UserAgent = "todos/" + Version
	return c
}

func (a *App) newList() *viewmodel.List {
	return viewmodel.New(viewmodel.WithIDPolicy(a.cfg.Policy()))
}

func runTUI(cmd *cobra.Command, app *App) error {
	logger, closer, err := logging.File(app.cfg.LogPath(), app.logOptions())
	if err != nil {
		return err
	}
	defer closer.Close()

	logger.Info("starting", "version", Version, "config", app.cfg.Files)
	return tui.Run(cmd.Context(), app.newList(), app.source(logger), logger)
}
