package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ucycle/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the cycle cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	cmd.AddCommand(c.cacheWarmCommand())

	return cmd
}

// cacheClearCommand removes every entry of the file cache. Remote backends
// are shared and are left alone.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the file cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.Config.Cache.Backend != cache.BackendFile {
				printWarning("Cache backend is %s; only the file cache can be cleared", c.Config.Cache.Backend)
				return nil
			}
			dir := c.Config.cacheOptions().Dir
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			if err := fc.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cleared cache")
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), c.Config.cacheOptions().Dir)
			return nil
		},
	}
}

// cacheWarmCommand builds a range of orders into the cache.
func (c *CLI) cacheWarmCommand() *cobra.Command {
	var lo, hi int
	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Build a range of orders into the cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			if hi == 0 {
				hi = c.Config.MaxOrder
			}
			prog := newProgress(loggerFromContext(ctx))
			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Warming orders %d..%d...", lo, hi))
			spinner.Start()
			cycles, err := runner.ConstructRange(ctx, lo, hi, c.baseOptions(ctx, lo, ""))
			if err != nil {
				spinner.StopWithError("Warm failed")
				return err
			}
			spinner.StopWithSuccess(fmt.Sprintf("Cached %d cycles", len(cycles)))
			prog.done(fmt.Sprintf("Warmed orders %d..%d", lo, hi))
			return nil
		},
	}
	cmd.Flags().IntVar(&lo, "from", 2, "first order")
	cmd.Flags().IntVar(&hi, "to", 0, "last order (default max_order)")
	return cmd
}
