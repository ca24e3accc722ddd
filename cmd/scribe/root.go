package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string

	ctx := newCommandContext(&configFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "scribe",
		Short:         "Enrich a classical music library with IMSLP work metadata",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Local overrides first; godotenv never replaces variables already set.
			_ = godotenv.Load(".env.local")
			_ = godotenv.Load(".env")
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "C", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override logging.level (debug, info, warn, error)")

	rootCmd.AddCommand(newEnrichCommand(ctx))
	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newExplainCommand())
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newCacheCommand(ctx))

	return rootCmd
}
