package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ucycle/pkg/buildinfo"
	"github.com/matzehuels/ucycle/pkg/cache"
	"github.com/matzehuels/ucycle/pkg/observability"
	"github.com/matzehuels/ucycle/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "ucycle"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *Config

	configFile string
}

// New creates a new CLI instance logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level. At debug level the pipeline and
// cache hooks log through the CLI logger as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetCycleHooks(hooks)
		observability.SetCacheHooks(hooks)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "ucycle builds and checks shorthand universal cycles for permutations",
		Long: `ucycle constructs shorthand universal cycles for the permutations of {1..n}:
cyclic sequences of length n! in which every window of n-1 symbols,
completed by its missing symbol, is a distinct permutation.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(cmd.Flags().Changed("config")); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/ucycle/config.toml)")

	root.AddCommand(c.constructCommand())
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.rankCommand())
	root.AddCommand(c.indexCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

func (c *CLI) loadConfig(explicit bool) error {
	path := c.configFile
	if path == "" {
		var err error
		if path, err = configPath(); err != nil {
			c.Logger.Debug("no config path", "err", err)
			return nil
		}
	}
	cfg, err := loadConfig(path, explicit)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", path, "max_order", cfg.MaxOrder, "cache", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(cc, nil, c.Logger)
	r.TTL = c.Config.Cache.TTL.Duration
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	opts := c.Config.cacheOptions()
	if opts.Backend == cache.BackendFile && opts.Dir == "" {
		c.Logger.Warn("no cache directory, caching disabled")
		return cache.NewNullCache(), nil
	}
	return cache.Open(ctx, opts)
}

// baseOptions returns pipeline options seeded from the config.
func (c *CLI) baseOptions(ctx context.Context, n int, strategy string) pipeline.Options {
	if strategy == "" {
		strategy = c.Config.Strategy
	}
	return pipeline.Options{
		N:        n,
		Strategy: strategy,
		MaxOrder: c.Config.MaxOrder,
		Logger:   loggerFromContext(ctx),
	}
}
