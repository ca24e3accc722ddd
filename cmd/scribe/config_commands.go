package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Add a [[search.credentials]] entry (or export SCRIBE_SEARCH_API_KEY and SCRIBE_SEARCH_CSE_ID) before running scribe enrich.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			if ctx.configPath != "" {
				fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
				if _, err := os.Stat(ctx.configPath); os.IsNotExist(err) {
					fmt.Fprintln(out, "Config file did not exist; defaults were used")
				}
			}
			fmt.Fprintf(out, "Catalog: %s\n", cfg.Catalog.Path)
			if _, err := os.Stat(cfg.Catalog.Path); os.IsNotExist(err) {
				fmt.Fprintln(out, "Warning: catalog does not exist yet")
			}
			if cfg.Cache.Enabled {
				fmt.Fprintf(out, "Work cache: %s\n", filepath.Clean(cfg.Cache.Path))
			} else {
				fmt.Fprintln(out, "Work cache: disabled")
			}
			fmt.Fprintf(out, "Search credentials: %d\n", len(cfg.Search.Credentials))
			if len(cfg.Search.Credentials) == 0 {
				fmt.Fprintln(out, "Warning: no search credentials; only --interactive runs are possible")
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
