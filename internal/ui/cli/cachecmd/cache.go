// Package cachecmd manages the response cache.
package cachecmd

import (
	"fmt"

	"github.com/nbcoach/nbcoach/internal/appstate"
	"github.com/nbcoach/nbcoach/internal/cache"
	"github.com/nbcoach/nbcoach/internal/shared"
	"github.com/spf13/cobra"
)

// CacheCmd is the parent command for the response cache.
var CacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the response cache",
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		n, err := store.Len(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count cache entries: %w", err)
		}
		fmt.Printf("%d cached response(s)\n", n)
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached responses",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}

		if err := store.Purge(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		fmt.Println("cache cleared")
		return nil
	},
}

func openStore() (cache.Store, error) {
	cfg := appstate.Get().Config
	store, _, err := shared.OpenStores(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func init() {
	CacheCmd.AddCommand(statsCmd, clearCmd)
}
