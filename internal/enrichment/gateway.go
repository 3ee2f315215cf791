// Package enrichment shortens and classifies fixture names through an
// external text-generation capability, guarded by a cache and a rate-limit
// circuit breaker. Every failure falls back to the original fixture text;
// nothing in here can block event output.
package enrichment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twickenham/events/internal/models"
)

// The enrichment failure taxonomy. Throttling is deliberately absent: quota
// exhaustion is a degradation handled by the breaker, not an error.
var (
	ErrUnavailable   = errors.New("text-generation capability unavailable")
	ErrMissingAPIKey = errors.New("enrichment enabled but no api key configured")
	ErrMissingPrompt = errors.New("enrichment enabled but no prompt template configured")
	ErrEmptyResponse = errors.New("empty response from text-generation model")
	ErrOverWidth     = errors.New("generated short name exceeds visual width limit")
)

// Config holds the enrichment settings consumed from the configuration
// surface.
type Config struct {
	Enabled             bool
	Model               string
	APIKey              string
	MaxLength           int
	CacheEnabled        bool
	RetryMinutesOnQuota int
	FlagsEnabled        bool
	PromptTemplate      string
}

// Result is the enrichment outcome for one fixture. Err, when set, is a soft
// failure: ShortName already holds the fallback (original) text and the
// category comes from the keyword classifier.
type Result struct {
	ShortName string
	Category  models.Category
	Emoji     string
	MDIIcon   string
	Err       error
}

// Gateway mediates between the event pipeline and the text-generation
// collaborator. One gateway instance owns one breaker for the life of the
// process; it is only used from within the single active service cycle.
type Gateway struct {
	cfg     Config
	gen     TextGenerator
	cache   Store
	breaker Breaker
	logger  *slog.Logger
	now     func() time.Time
}

// NewGateway wires a gateway. gen may be nil when the capability is not
// installed; cache may be nil to get a fresh in-memory store.
func NewGateway(cfg Config, gen TextGenerator, cache Store, logger *slog.Logger) *Gateway {
	if cfg.MaxLength <= 0 {
		cfg.MaxLength = 16
	}
	if cfg.RetryMinutesOnQuota <= 0 {
		cfg.RetryMinutesOnQuota = 10
	}
	if cfg.PromptTemplate == "" {
		cfg.PromptTemplate = DefaultPromptTemplate
	}
	if cache == nil {
		cache = NewMemoryStore()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		cfg:    cfg,
		gen:    gen,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// Enabled reports whether AI enrichment is switched on.
func (g *Gateway) Enabled() bool { return g.cfg.Enabled }

// SetNowFunc overrides the clock, for tests.
func (g *Gateway) SetNowFunc(now func() time.Time) { g.now = now }

func (g *Gateway) backoff() time.Duration {
	return time.Duration(g.cfg.RetryMinutesOnQuota) * time.Minute
}

func fallbackResult(fixture string, err error) Result {
	category := Classify(fixture)
	emoji, mdi := category.Icons()
	return Result{
		ShortName: fixture,
		Category:  category,
		Emoji:     emoji,
		MDIIcon:   mdi,
		Err:       err,
	}
}

// ShortName returns a shortened display name for one fixture. On any soft
// failure the original text comes back together with the error; while the
// breaker is open, or when enrichment is disabled, the original comes back
// with no error at all.
func (g *Gateway) ShortName(ctx context.Context, fixture string) (string, error) {
	if !g.cfg.Enabled {
		return fixture, nil
	}

	if g.cfg.CacheEnabled {
		if cached, ok := g.cache.Get(fixture); ok {
			if res, ok := cached[fixture]; ok {
				return res.ShortName, nil
			}
		}
	}

	if g.gen == nil {
		return fixture, ErrUnavailable
	}
	now := g.now()
	if !g.breaker.ShouldAttempt(now, g.backoff()) {
		return fixture, nil
	}
	if g.cfg.APIKey == "" {
		return fixture, ErrMissingAPIKey
	}
	if g.cfg.PromptTemplate == "" {
		return fixture, ErrMissingPrompt
	}

	prompt := buildShortenPrompt(g.cfg.PromptTemplate, fixture, g.cfg.MaxLength, g.cfg.FlagsEnabled)
	text, err := g.gen.GenerateText(ctx, systemPrompt, prompt)
	if err != nil {
		if IsThrottled(err) {
			g.breaker.Trip(now)
			g.logger.Warn("enrichment quota hit, backing off",
				"backoff_minutes", g.cfg.RetryMinutesOnQuota)
			return fixture, nil
		}
		return fixture, fmt.Errorf("shortening %q: %w", fixture, err)
	}
	if text == "" {
		return fixture, fmt.Errorf("shortening %q: %w", fixture, ErrEmptyResponse)
	}

	if g.cfg.FlagsEnabled {
		text = StandardizeFlagSpacing(text)
	}
	if width := VisualWidth(text); width > g.cfg.MaxLength {
		return fixture, fmt.Errorf("shortening %q: %w (%d > %d)",
			fixture, ErrOverWidth, width, g.cfg.MaxLength)
	}

	if g.cfg.CacheEnabled {
		res := fallbackResult(fixture, nil)
		res.ShortName = text
		g.cache.Set(fixture, map[string]Result{fixture: res})
	}
	return text, nil
}

// BatchInfo enriches a whole batch of fixture names with a single API call
// and returns a Result per original name. It never fails as a whole: each
// entry carries its own soft error and falls back to the keyword classifier.
func (g *Gateway) BatchInfo(ctx context.Context, fixtures []string) map[string]Result {
	unique := dedupe(fixtures)
	results := make(map[string]Result, len(unique))
	if len(unique) == 0 {
		return results
	}

	if !g.cfg.Enabled {
		for _, name := range unique {
			results[name] = fallbackResult(name, nil)
		}
		return results
	}

	key := BatchKey(unique)
	if g.cfg.CacheEnabled {
		if cached, ok := g.cache.Get(key); ok {
			for name, res := range cached {
				results[name] = res
			}
			return results
		}
	}

	var batchErr error
	switch {
	case g.gen == nil:
		batchErr = ErrUnavailable
	case !g.breaker.ShouldAttempt(g.now(), g.backoff()):
		// Throttled: degradation, not failure.
		for _, name := range unique {
			results[name] = fallbackResult(name, nil)
		}
		return results
	case g.cfg.APIKey == "":
		batchErr = ErrMissingAPIKey
	}
	if batchErr != nil {
		for _, name := range unique {
			results[name] = fallbackResult(name, batchErr)
		}
		return results
	}

	now := g.now()
	response, err := g.gen.GenerateText(ctx, systemPrompt,
		buildBatchPrompt(unique, g.cfg.MaxLength, g.cfg.FlagsEnabled))
	if err != nil {
		if IsThrottled(err) {
			g.breaker.Trip(now)
			g.logger.Warn("enrichment quota hit, backing off",
				"backoff_minutes", g.cfg.RetryMinutesOnQuota)
			for _, name := range unique {
				results[name] = fallbackResult(name, nil)
			}
			return results
		}
		for _, name := range unique {
			results[name] = fallbackResult(name, fmt.Errorf("batch enrichment: %w", err))
		}
		return results
	}
	if response == "" {
		for _, name := range unique {
			results[name] = fallbackResult(name, ErrEmptyResponse)
		}
		return results
	}

	lines := parseBatchResponse(response, unique)
	allOK := true
	for _, name := range unique {
		line, ok := lines[name]
		if !ok || line.short == "" {
			results[name] = fallbackResult(name,
				fmt.Errorf("batch response missing %q: %w", name, ErrEmptyResponse))
			allOK = false
			continue
		}

		short := line.short
		if g.cfg.FlagsEnabled {
			short = StandardizeFlagSpacing(short)
		}
		if width := VisualWidth(short); width > g.cfg.MaxLength {
			results[name] = fallbackResult(name,
				fmt.Errorf("shortening %q: %w (%d > %d)", name, ErrOverWidth, width, g.cfg.MaxLength))
			allOK = false
			continue
		}

		category := models.Category(line.category)
		switch category {
		case models.CategoryTrophy, models.CategoryRugby, models.CategoryConcert, models.CategoryGeneric:
		default:
			category = Classify(name)
		}
		emoji, mdi := category.Icons()
		results[name] = Result{
			ShortName: short,
			Category:  category,
			Emoji:     emoji,
			MDIIcon:   mdi,
		}
	}

	// Only an entirely clean batch is cached, so transient per-item failures
	// get another chance next cycle.
	if allOK && g.cfg.CacheEnabled {
		g.cache.Set(key, results)
	}
	return results
}

// EnrichAll annotates every event in the day summaries with a category and
// icons, and with a shortened fixture name where enrichment succeeded. The
// returned errors are soft, one per failing fixture, for the caller to
// aggregate; the events themselves always keep their original text on
// failure.
func (g *Gateway) EnrichAll(ctx context.Context, days []models.DaySummary) []error {
	var fixtures []string
	seen := make(map[string]bool)
	for _, day := range days {
		for _, ev := range day.Events {
			if !seen[ev.Fixture] {
				seen[ev.Fixture] = true
				fixtures = append(fixtures, ev.Fixture)
			}
		}
	}
	if len(fixtures) == 0 {
		return nil
	}

	results := g.BatchInfo(ctx, fixtures)

	var errs []error
	reported := make(map[string]bool)
	for di := range days {
		for ei := range days[di].Events {
			ev := &days[di].Events[ei]
			res, ok := results[ev.Fixture]
			if !ok {
				continue
			}
			ev.Category = res.Category
			ev.Emoji = res.Emoji
			ev.MDIIcon = res.MDIIcon
			if res.Err != nil {
				if !reported[ev.Fixture] {
					reported[ev.Fixture] = true
					errs = append(errs, res.Err)
				}
				continue
			}
			if res.ShortName != "" && res.ShortName != ev.Fixture {
				ev.FixtureShort = res.ShortName
			}
		}
	}
	return errs
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
