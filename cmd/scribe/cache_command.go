package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/workcache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the resolved work cache",
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheRemoveCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached works, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, err := parseFormat(format, formatTable, formatJSON, formatYAML)
			if err != nil {
				return err
			}
			cache, warn, err := workCache(ctx)
			if warn != "" {
				fmt.Fprintln(cmd.OutOrStdout(), warn)
			}
			if err != nil || cache == nil {
				return err
			}

			entries := cache.List()
			switch outputFormat {
			case formatJSON:
				return writeJSON(cmd, entries)
			case formatYAML:
				return writeYAML(cmd, entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Cache is empty")
				return nil
			}
			const stampLayout = "2006-01-02 15:04"
			rows := make([][]string, 0, len(entries))
			for i, entry := range entries {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					entry.Key.Author,
					entry.Key.Title,
					entry.Metadata.Style,
					entry.CachedAt.Local().Format(stampLayout),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Author", "Work", "Style", "Cached"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table, json or yaml")
	return cmd
}

func newCacheRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <number>",
		Short: "Remove one cached work by its number in cache list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil || number < 1 {
				return fmt.Errorf("invalid entry number %q", args[0])
			}
			cache, warn, err := workCache(ctx)
			if warn != "" {
				fmt.Fprintln(cmd.OutOrStdout(), warn)
			}
			if err != nil || cache == nil {
				return err
			}

			entries := cache.List()
			if number > len(entries) {
				return fmt.Errorf("entry %d does not exist (cache holds %d)", number, len(entries))
			}
			entry := entries[number-1]
			if err := cache.Remove(entry.Key); err != nil {
				if errors.Is(err, workcache.ErrNotFound) {
					return fmt.Errorf("entry %d was removed concurrently", number)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", entry.Key)
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached work",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, warn, err := workCache(ctx)
			if warn != "" {
				fmt.Fprintln(cmd.OutOrStdout(), warn)
			}
			if err != nil || cache == nil {
				return err
			}
			count := cache.Count()
			if err := cache.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d cached work(s)\n", count)
			return nil
		},
	}
}

func workCache(ctx *commandContext) (*workcache.Cache, string, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, "", err
	}
	if !cfg.Cache.Enabled {
		return nil, "Work cache is disabled (set [cache] enabled = true in config.toml)", nil
	}
	logger, err := ctx.newLogger(cfg, "cli-cache", "")
	if err != nil {
		return nil, "", err
	}
	return ctx.openCache(cfg, logger), "", nil
}
