package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"scribe/internal/catalog"
	"scribe/internal/config"
	"scribe/internal/enrich"
	"scribe/internal/logging"
	"scribe/internal/search"
	"scribe/internal/works"
)

type enrichFlags struct {
	force            bool
	pretend          bool
	quiet            bool
	interactive      bool
	noCache          bool
	search           string
	genre            bool
	genreCategories  bool
	firstPublication bool
}

func newEnrichCommand(ctx *commandContext) *cobra.Command {
	var flags enrichFlags

	cmd := &cobra.Command{
		Use:   "enrich [query...]",
		Short: "Populate work style and genre fields from IMSLP",
		Long: `Populate work style and genre fields from IMSLP.

Items matching the query are grouped into distinct (composer, work) pairs.
Each pair is searched on IMSLP through the Custom Search API, the first result
is scraped and the collected information is written to every item of the work.

Query terms are field:value substring filters (artist, artist_sort,
composer_sort, album, title, work, genre or any flexible attribute); bare
terms match artist, album or title.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnrich(cmd, ctx, flags, args)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing values for fields")
	cmd.Flags().BoolVarP(&flags.pretend, "pretend", "p", false, "Preview changes without saving")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "Decrease the information shown during the run")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "Ask for each work's IMSLP page instead of searching")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "Ignore cached work resolutions")
	cmd.Flags().StringVarP(&flags.search, "search", "s", "", "Search string for one work; the result is applied to every queried item")
	cmd.Flags().BoolVarP(&flags.genre, "genre", "g", false, `Overwrite the standard "genre" field`)
	cmd.Flags().BoolVarP(&flags.genreCategories, "genre-categories", "c", false, `Populate field "sc_genre_categories"`)
	cmd.Flags().BoolVarP(&flags.firstPublication, "first-publication", "r", false, `Populate field "sc_first_publication"`)
	return cmd
}

func runEnrich(cmd *cobra.Command, ctx *commandContext, flags enrichFlags, args []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	runID := uuid.NewString()
	logger, err := ctx.newLogger(cfg, "cli-enrich", runID)
	if err != nil {
		return err
	}

	var finder works.LinkFinder
	var dispatcher *search.Dispatcher
	if flags.interactive {
		if !isTerminal(cmd.InOrStdin()) {
			logging.WarnWithContext(logger, "interactive mode without a terminal", "interactive_no_tty",
				logging.String(logging.FieldErrorHint, "pipe one URL per line, blank to skip"),
				logging.String(logging.FieldImpact, "answers are read from standard input"),
			)
		}
		finder = enrich.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), cfg.Search.Site)
	} else {
		dispatcher, err = enrich.NewDispatcher(cfg, logger)
		if err != nil {
			var cfgErr *search.ConfigurationError
			if errors.As(err, &cfgErr) {
				return fmt.Errorf("%w (configure [[search.credentials]] or set SCRIBE_SEARCH_API_KEY and SCRIBE_SEARCH_CSE_ID)", err)
			}
			return err
		}
		finder = dispatcher
	}

	if cfg.Catalog.Lock {
		lock, err := catalog.AcquireLock(cfg.Catalog.Path)
		if err != nil {
			return err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn("failed to release catalog lock", logging.Error(err))
			}
		}()
	}

	store, err := catalog.Open(cmd.Context(), cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer store.Close()

	deps := enrich.Dependencies{
		Catalog:  store,
		Resolver: works.NewResolver(finder, enrich.NewScraper(cfg, logger), logger),
		Cache:    ctx.openCache(cfg, logger),
		Out:      cmd.OutOrStdout(),
		Logger:   logger,
	}
	if dispatcher != nil {
		deps.Calls = dispatcher
	}
	if flags.quiet && !flags.interactive && isTerminal(cmd.ErrOrStderr()) {
		deps.Progress = cmd.ErrOrStderr()
	}

	runner, err := enrich.New(deps, enrich.Options{
		Force:       flags.force,
		Pretend:     flags.pretend,
		Quiet:       flags.quiet,
		Interactive: flags.interactive,
		NoCache:     flags.noCache,
		Search:      strings.TrimSpace(flags.search),
		Fields:      mergeFields(cfg.Fields, flags),
	})
	if err != nil {
		return err
	}

	logger.Info("enrichment run started",
		logging.String("catalog", cfg.Catalog.Path),
		logging.Bool("pretend", flags.pretend),
		logging.Bool("force", flags.force),
	)
	report, err := runner.Run(cmd.Context(), catalog.ParseQuery(args))
	if err != nil {
		return err
	}
	logger.Info("enrichment run finished",
		logging.Int("updated", report.Updated),
		logging.Int("works", report.Works),
		logging.Int("failed", report.Failed),
		logging.Int("search_calls", report.SearchCalls),
	)
	if dispatcher != nil {
		logCredentials(logger, dispatcher.Pool())
	}
	if !flags.quiet {
		printSummary(cmd.OutOrStdout(), report)
	}
	return nil
}

func mergeFields(base config.Fields, flags enrichFlags) config.Fields {
	return config.Fields{
		Genre:            base.Genre || flags.genre,
		GenreCategories:  base.GenreCategories || flags.genreCategories,
		FirstPublication: base.FirstPublication || flags.firstPublication,
	}
}

func logCredentials(logger *slog.Logger, pool *search.Pool) {
	active := len(pool.ActiveIndices())
	if exhausted := pool.Len() - active; exhausted > 0 {
		logging.WarnWithContext(logger, "search credentials rate limited this run", "search_credentials_exhausted",
			logging.Int("rate_limited", exhausted),
			logging.Int("credentials", pool.Len()),
			logging.String(logging.FieldErrorHint, "quota resets daily; add credentials to spread load"),
			logging.String(logging.FieldImpact, "later searches used the remaining credentials"),
		)
	}
	for _, cred := range pool.Snapshot() {
		logger.Debug("search credential state",
			logging.String(logging.FieldCredential, cred.Name),
			logging.Int("last_status", cred.LastStatus),
		)
	}
}

func printSummary(out io.Writer, report enrich.Report) {
	rows := [][]string{
		{"Items queried", strconv.Itoa(report.Items)},
		{"Works", strconv.Itoa(report.Works)},
		{"Works resolved", strconv.Itoa(report.Resolved)},
		{"From cache", strconv.Itoa(report.CacheHits)},
		{"Failed", strconv.Itoa(report.Failed)},
		{"Items " + report.Action(), strconv.Itoa(report.Updated)},
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable([]string{"Summary", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
}
