// Package refresh rebuilds the mod catalog from the wiki. It fetches every
// category listing, then every listed mod page, and merges the results
// into a new catalog snapshot.
package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/modwiki"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var _ modwiki.CatalogRefresher = (*Refresher)(nil)

// State is a phase of a refresh run.
type State int

const (
	Idle State = iota
	CollectingCategories
	FetchingMods
	Merging
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case CollectingCategories:
		return "collecting categories"
	case FetchingMods:
		return "fetching mods"
	case Merging:
		return "merging"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Event reports progress during a refresh.
type Event struct {
	State     State
	Completed int
	Total     int

	// Name is the category or mod the event refers to, if any.
	Name string
	Err  error
}

// ProgressFunc is a callback for reporting refresh progress.
// It is always called from the goroutine running Refresh.
type ProgressFunc func(event Event)

// Refresher builds a fresh catalog from the wiki.
type Refresher struct {
	Wiki       modwiki.Wiki
	Categories []modwiki.Category
	Fetcher    modwiki.Fetcher
	Members    modwiki.MemberParser
	Mods       modwiki.ModParser

	// Concurrency caps simultaneous mod page fetches. Zero means no cap.
	Concurrency int

	// RetryDelays are the waits between attempts of a retryable fetch.
	// Nil means DefaultRetryDelays; an empty slice disables retries.
	RetryDelays []time.Duration

	// RateLimiter is optional.
	RateLimiter modwiki.DomainLimiter

	Logger   *slog.Logger
	Progress ProgressFunc
	Now      func() time.Time
}

// Refresh fetches every configured category and the mods they list and
// merges them into a new catalog. Individual category and mod failures are
// reported in the result; only cancellation of ctx fails the refresh.
func (r *Refresher) Refresh(ctx context.Context) (*modwiki.RefreshResult, error) {
	runID := uuid.NewString()
	logger := r.logger().With("run_id", runID)
	begin := r.now()

	r.emit(Event{State: CollectingCategories, Total: len(r.Categories)})
	members, categoryFailures := r.collectCategories(ctx, logger)
	if err := ctx.Err(); err != nil {
		return nil, r.fail(logger, err)
	}

	names := uniqueNames(members)
	logger.Info("categories collected",
		"categories", len(members),
		"failed", len(categoryFailures),
		"mods", len(names))

	r.emit(Event{State: FetchingMods, Total: len(names)})
	results := r.fetchMods(ctx, logger, names)
	if err := ctx.Err(); err != nil {
		return nil, r.fail(logger, err)
	}

	r.emit(Event{State: Merging})
	fetchedAt := r.now()
	catalog, failures := modwiki.MergeCatalog(members, results, fetchedAt)
	for _, f := range failures {
		logger.Debug("mod skipped", "mod", f.Name, "err", f.Err)
	}
	if len(failures) > 0 || len(categoryFailures) > 0 {
		logger.Warn("refresh incomplete",
			"skipped_categories", len(categoryFailures),
			"skipped_mods", len(failures))
	}

	duration := fetchedAt.Sub(begin)
	logger.Info("refresh complete",
		"mods", catalog.Len(),
		"failed", len(failures),
		"duration", duration)
	r.emit(Event{State: Done, Completed: catalog.Len(), Total: len(names)})

	return &modwiki.RefreshResult{
		Catalog:          catalog,
		Failures:         failures,
		CategoryFailures: categoryFailures,
		RunID:            runID,
		Duration:         duration,
	}, nil
}

func (r *Refresher) fail(logger *slog.Logger, err error) error {
	logger.Error("refresh aborted", "err", err)
	r.emit(Event{State: Failed, Err: err})
	return fmt.Errorf("refresh: %w", err)
}

type categoryResult struct {
	names []string
	err   error
}

// collectCategories fetches all category listings concurrently. The result
// keeps the configured category order; a failed category has no members.
func (r *Refresher) collectCategories(ctx context.Context, logger *slog.Logger) ([]modwiki.CategoryMembers, []modwiki.CategoryFailure) {
	slots := make([]categoryResult, len(r.Categories))

	var g errgroup.Group
	for i, cat := range r.Categories {
		g.Go(func() error {
			names, err := r.collectCategory(ctx, cat)
			slots[i] = categoryResult{names: names, err: err}
			return nil
		})
	}
	_ = g.Wait()

	members := make([]modwiki.CategoryMembers, len(r.Categories))
	var failures []modwiki.CategoryFailure
	for i, cat := range r.Categories {
		slot := slots[i]
		members[i] = modwiki.CategoryMembers{Category: cat.Name, Names: slot.names}
		if slot.err != nil {
			logger.Debug("category skipped", "category", cat.Name, "err", slot.err)
			failures = append(failures, modwiki.CategoryFailure{Category: cat.Name, Err: slot.err})
		} else {
			logger.Debug("category collected", "category", cat.Name, "mods", len(slot.names))
		}
		r.emit(Event{State: CollectingCategories, Completed: i + 1, Total: len(r.Categories), Name: cat.Name, Err: slot.err})
	}
	return members, failures
}

func (r *Refresher) collectCategory(ctx context.Context, cat modwiki.Category) ([]string, error) {
	body, err := r.fetch(ctx, r.Wiki.CategoryURL(cat.Key))
	if err != nil {
		return nil, err
	}
	names, err := r.Members.ParseMembers(body)
	if err != nil {
		return nil, fmt.Errorf("category %q: %w", cat.Name, err)
	}
	return names, nil
}

// fetchMods fetches and parses one page per name and returns the results
// keyed by name.
func (r *Refresher) fetchMods(ctx context.Context, logger *slog.Logger, names []string) map[string]modwiki.ModResult {
	resultCh := make(chan modwiki.ModResult, len(names))

	var g errgroup.Group
	if r.Concurrency > 0 {
		g.SetLimit(r.Concurrency)
	}

	go func() {
		for _, name := range names {
			g.Go(func() error {
				resultCh <- r.processMod(ctx, name)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make(map[string]modwiki.ModResult, len(names))
	for result := range resultCh {
		results[result.Name] = result
		if result.Err != nil {
			logger.Debug("mod failed", "mod", result.Name, "err", result.Err)
		}
		r.emit(Event{State: FetchingMods, Completed: len(results), Total: len(names), Name: result.Name, Err: result.Err})
	}
	return results
}

// processMod fetches and parses a single mod page.
func (r *Refresher) processMod(ctx context.Context, name string) modwiki.ModResult {
	result := modwiki.ModResult{
		Name:      name,
		SourceURL: r.Wiki.PageURL(name),
	}

	html, err := r.fetch(ctx, result.SourceURL)
	if err != nil {
		result.Err = err
		return result
	}

	fields, err := r.Mods.ParseMod(html, name)
	if err != nil {
		result.Err = fmt.Errorf("mod %q: %w", name, err)
		return result
	}

	result.Fields = fields
	result.ContentHash = ContentHash(fields)
	return result
}

func (r *Refresher) fetch(ctx context.Context, url string) (string, error) {
	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetry(ctx, url, func(ctx context.Context, url string) (string, error) {
		if r.RateLimiter != nil {
			if err := r.RateLimiter.Wait(ctx, hostOf(url)); err != nil {
				return "", err
			}
		}
		return r.Fetcher.Fetch(ctx, url)
	}, r.logger(), delays)
}

func (r *Refresher) emit(e Event) {
	if r.Progress != nil {
		r.Progress(e)
	}
}

func (r *Refresher) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (r *Refresher) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// uniqueNames returns every listed name once, in first-seen order.
func uniqueNames(members []modwiki.CategoryMembers) []string {
	seen := make(map[string]bool)
	var names []string
	for _, cm := range members {
		for _, name := range cm.Names {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// ContentHash fingerprints parsed mod fields.
func ContentHash(f *modwiki.ModFields) string {
	h := xxhash.New()
	for _, s := range []string{f.Name, f.Description, f.Author, f.Version, f.RepositoryURL, strings.Join(f.Dependencies, "\x1f")} {
		_, _ = h.WriteString(s)
		_, _ = h.WriteString("\x00")
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
