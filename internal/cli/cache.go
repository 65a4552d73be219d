package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/qclassify/internal/cache"
	"github.com/ppiankov/qclassify/internal/model"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the adapter verdict cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached adapter verdicts",
	Long: `Remove every verdict stored in the on-disk cache (cache.dir).

The in-memory cache lives only for the duration of a single run and
needs no clearing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := clearCache(loadConfig())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

// clearCache empties the configured disk cache and reports what was done
func clearCache(cfg *model.Config) (string, error) {
	if cfg.Cache.Dir == "" {
		return "No disk cache configured (cache.dir is empty); nothing to clear.", nil
	}

	c := cache.New(cfg.Cache.Dir, cfg.Cache.MemoryTTL, cfg.Cache.DiskTTL)
	if err := c.Clear(); err != nil {
		return "", fmt.Errorf("clear cache %s: %w", cfg.Cache.Dir, err)
	}

	logger.Debug("cache cleared", zap.String("dir", cfg.Cache.Dir))
	return fmt.Sprintf("Cleared cache: %s", cfg.Cache.Dir), nil
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
