package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"scribe/internal/catalog"
	"scribe/internal/enrich"
	"scribe/internal/works"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var force bool
	var format string

	cmd := &cobra.Command{
		Use:   "list [query...]",
		Short: "Show the distinct works an enrichment run would process",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, err := parseFormat(format, formatTable, formatText, formatJSON, formatYAML)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg, "cli-list", "")
			if err != nil {
				return err
			}

			store, err := catalog.Open(cmd.Context(), cfg.Catalog.Path)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer store.Close()

			runner, err := enrich.New(enrich.Dependencies{
				Catalog:  store,
				Resolver: works.NewResolver(nil, nil, logger),
				Logger:   logger,
			}, enrich.Options{Force: force, Quiet: true})
			if err != nil {
				return err
			}
			keys, err := runner.Works(cmd.Context(), catalog.ParseQuery(args))
			if err != nil {
				return err
			}

			if keys == nil {
				keys = []works.Key{}
			}
			out := cmd.OutOrStdout()
			switch outputFormat {
			case formatJSON:
				return writeJSON(cmd, keys)
			case formatYAML:
				return writeYAML(cmd, keys)
			case formatText:
				for _, key := range keys {
					fmt.Fprintln(out, key.String())
				}
				return nil
			}
			if len(keys) == 0 {
				fmt.Fprintln(out, "No works matched")
				return nil
			}
			rows := make([][]string, 0, len(keys))
			for i, key := range keys {
				rows = append(rows, []string{strconv.Itoa(i + 1), string(key.Field), key.Author, key.Title})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Field", "Author", "Work"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Include works whose items are already populated")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table, text, json or yaml")
	return cmd
}
