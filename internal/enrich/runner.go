package enrich

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"

	"scribe/internal/catalog"
	"scribe/internal/config"
	"scribe/internal/logging"
	"scribe/internal/workcache"
	"scribe/internal/works"
)

// Catalog is the store an enrichment run reads and writes.
type Catalog interface {
	Items(ctx context.Context, q catalog.Query, includePopulated bool) ([]*catalog.Item, error)
	ItemsForWork(ctx context.Context, key works.Key) ([]*catalog.Item, error)
	Save(ctx context.Context, item *catalog.Item) error
}

// CallCounter reports how many search calls a run has made.
type CallCounter interface {
	CallCount() int
}

// Options selects the behaviour of a run.
type Options struct {
	// Force includes items that already have a work style and overwrites them.
	Force bool
	// Pretend reports changes without saving them.
	Pretend bool
	// Quiet silences progress messages unless Interactive is set.
	Quiet bool
	// Interactive marks runs whose pages come from the user.
	Interactive bool
	// NoCache skips cache lookups; resolved works are still stored.
	NoCache bool
	// Search applies the result of this query to every queried item.
	Search string
	Fields config.Fields
}

// Dependencies are the collaborators of a Runner.
type Dependencies struct {
	Catalog  Catalog
	Resolver *works.Resolver
	Cache    *workcache.Cache
	Calls    CallCounter
	// Out receives progress messages. Nil discards them.
	Out io.Writer
	// Progress, when set, shows a progress bar over works.
	Progress io.Writer
	Logger   *slog.Logger
}

// Change is one item updated, or that would be updated in a pretend run.
type Change struct {
	ItemID   int64
	Item     string
	Work     works.Key
	URL      string
	Metadata works.Metadata
}

// Report summarizes a run.
type Report struct {
	Items       int
	Works       int
	Resolved    int
	CacheHits   int
	Failed      int
	Updated     int
	SearchCalls int
	Pretend     bool
	Changes     []Change
}

// Action is "updated", or "potentially updated" for pretend runs.
func (r Report) Action() string {
	if r.Pretend {
		return "potentially updated"
	}
	return "updated"
}

// Runner executes enrichment runs.
type Runner struct {
	deps   Dependencies
	opts   Options
	logger *slog.Logger
}

// New builds a Runner.
func New(deps Dependencies, opts Options) (*Runner, error) {
	if deps.Catalog == nil {
		return nil, errors.New("enrich: catalog is required")
	}
	if deps.Resolver == nil {
		return nil, errors.New("enrich: resolver is required")
	}
	if deps.Out == nil {
		deps.Out = io.Discard
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		deps:   deps,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "enrich"),
	}, nil
}

// Works returns the distinct works of the items matching q.
func (r *Runner) Works(ctx context.Context, q catalog.Query) ([]works.Key, error) {
	items, err := r.queryItems(ctx, q)
	if err != nil {
		return nil, err
	}
	return r.collect(items), nil
}

// Run enriches the items matching q.
func (r *Runner) Run(ctx context.Context, q catalog.Query) (Report, error) {
	report := Report{Pretend: r.opts.Pretend}

	items, err := r.queryItems(ctx, q)
	if err != nil {
		return report, err
	}
	report.Items = len(items)

	if r.opts.Search != "" {
		err = r.runManual(ctx, items, &report)
	} else {
		err = r.runByWork(ctx, items, &report)
	}

	if r.deps.Calls != nil {
		report.SearchCalls = r.deps.Calls.CallCount()
	}
	if !r.opts.Interactive {
		r.msg("%d google custom search call(s) executed", report.SearchCalls)
	}
	r.msg("%d item(s) %s", report.Updated, report.Action())
	return report, err
}

func (r *Runner) queryItems(ctx context.Context, q catalog.Query) ([]*catalog.Item, error) {
	r.logger.Debug("catalog query", logging.String("query", q.String()), logging.Bool("force", r.opts.Force))
	items, err := r.deps.Catalog.Items(ctx, q, r.opts.Force)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	suffix := ", excluding items already populated"
	if r.opts.Force {
		suffix = ""
	}
	r.msg("found %d item(s) matching%s", len(items), suffix)
	return items, nil
}

func (r *Runner) collect(items []*catalog.Item) []works.Key {
	logger := r.logger
	if r.silent() {
		logger = logging.NewNop()
	}
	keys := works.Collect(catalog.Records(items), logger)
	suffix := ", excluding works with items already populated"
	if r.opts.Force {
		suffix = ""
	}
	r.msg("found %d work(s) matching%s", len(keys), suffix)
	return keys
}

func (r *Runner) runManual(ctx context.Context, items []*catalog.Item, report *Report) error {
	meta, url, err := r.deps.Resolver.ResolveQuery(ctx, r.opts.Search)
	if err != nil {
		report.Failed++
		return fmt.Errorf("resolve %q: %w", r.opts.Search, err)
	}
	if !meta.Usable() {
		r.msg("no usable page found for %q", r.opts.Search)
		return nil
	}
	report.Resolved++
	for _, item := range items {
		if err := r.processItem(ctx, item, works.Key{}, url, meta, report); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runByWork(ctx context.Context, items []*catalog.Item, report *Report) error {
	keys := r.collect(items)
	report.Works = len(keys)

	var bar *progressbar.ProgressBar
	if r.deps.Progress != nil && len(keys) > 0 {
		bar = progressbar.NewOptions(len(keys),
			progressbar.OptionSetWriter(r.deps.Progress),
			progressbar.OptionSetDescription("works"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.processWork(ctx, key, report); err != nil {
			return err
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return nil
}

// processWork resolves one work and applies it. Resolution failures are
// logged and counted; only catalog write failures stop the run.
func (r *Runner) processWork(ctx context.Context, key works.Key, report *Report) error {
	r.msg("\nprocess work: %s", key)
	logger := r.logger.With(logging.String(logging.FieldWork, key.String()))

	meta, url, cached, err := r.resolve(ctx, key)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		report.Failed++
		logging.WarnWithContext(logger, "work resolution failed", "work_resolution_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check network access and search credentials, or rerun with --interactive"),
		)
		return nil
	}
	if !meta.Usable() {
		logger.Debug("no usable metadata for work", logging.String("url", url))
		return nil
	}
	report.Resolved++
	if cached {
		report.CacheHits++
	} else if r.deps.Cache.Enabled() {
		if err := r.deps.Cache.Store(workcache.Entry{Key: key, URL: url, Metadata: meta}); err != nil {
			logging.WarnWithContext(logger, "failed to cache work", "workcache_store_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "work will be searched again next run"),
			)
		}
	}

	items, err := r.deps.Catalog.ItemsForWork(ctx, key)
	if err != nil {
		return fmt.Errorf("items for work %s: %w", key, err)
	}
	logger.Debug("items for work", logging.Int("count", len(items)))
	r.msg("found %d item(s) matching the work", len(items))
	for _, item := range items {
		if err := r.processItem(ctx, item, key, url, meta, report); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) resolve(ctx context.Context, key works.Key) (works.Metadata, string, bool, error) {
	if !r.opts.NoCache {
		if entry, ok := r.deps.Cache.Lookup(key); ok {
			r.logger.Debug("work resolved from cache",
				logging.String(logging.FieldWork, key.String()),
				logging.String("url", entry.URL),
			)
			return entry.Metadata, entry.URL, true, nil
		}
	}
	meta, url, err := r.deps.Resolver.Resolve(ctx, key)
	return meta, url, false, err
}

func (r *Runner) processItem(ctx context.Context, item *catalog.Item, key works.Key, url string, meta works.Metadata, report *Report) error {
	if !r.opts.Force && item.Attr(catalog.AttrWorkStyle) != "" {
		return nil
	}
	if !r.opts.Pretend {
		apply(item, meta, r.opts.Fields)
		if err := r.deps.Catalog.Save(ctx, item); err != nil {
			return fmt.Errorf("save item %d: %w", item.ID, err)
		}
	}
	report.Updated++
	report.Changes = append(report.Changes, Change{
		ItemID:   item.ID,
		Item:     item.Label(),
		Work:     key,
		URL:      url,
		Metadata: meta,
	})
	action := "Updated"
	if r.opts.Pretend {
		action = "Potentially updated"
	}
	r.msg("%s: %s\n%s", action, item.Label(), describe(meta, r.opts.Fields))
	return nil
}

func (r *Runner) silent() bool {
	return r.opts.Quiet && !r.opts.Interactive
}

func (r *Runner) msg(format string, args ...any) {
	if r.silent() {
		return
	}
	fmt.Fprintf(r.deps.Out, format+"\n", args...)
}
