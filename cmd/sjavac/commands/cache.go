package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"martianoff/sjavac/internal/cache"
	"martianoff/sjavac/internal/config"
)

func newCacheCmd(flags *globalFlags) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the verdict cache",
		Long: `Manage the verdict cache configured by cache.path.

Examples:
  sjavac cache stats   # Show the database path and entry count
  sjavac cache clear   # Drop every cached verdict`,
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show the cache location and size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(flags, func(store *cache.Store) error {
				n, err := store.Count()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d verdict(s)\n", store.Path(), n)
				return nil
			})
		},
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached verdict",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(flags, func(store *cache.Store) error {
				n, err := store.Count()
				if err != nil {
					return err
				}
				if err := store.Clear(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d verdict(s) from %s\n", n, store.Path())
				return nil
			})
		},
	})

	return cacheCmd
}

// withCache opens the configured cache database for fn, whether or not
// checking uses it.
func withCache(flags *globalFlags, fn func(*cache.Store) error) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	store, err := openCache(cfg)
	if err != nil {
		return fmt.Errorf("open cache %s: %w", cfg.Cache.Path, err)
	}
	defer store.Close()
	return fn(store)
}
