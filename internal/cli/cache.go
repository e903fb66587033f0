package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/metro/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			store, err := c.newCache(cmd.Context(), false)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			var (
				count int
				where string
			)
			switch s := store.(type) {
			case *cache.FileCache:
				count, err = s.Clear()
				where = "Directory: " + s.Dir()
			case *cache.RedisCache:
				count, err = s.Clear(cmd.Context())
				where = "Redis: " + c.config.Redis.Addr
			default:
				printInfo(out, "Caching is disabled")
				return nil
			}
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess(out, "Cleared %d cached entries", count)
			printDetail(out, "%s", where)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
