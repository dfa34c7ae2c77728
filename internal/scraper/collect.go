package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fr4nk3nst1ner/langsalary/internal/logging"
	"github.com/fr4nk3nst1ner/langsalary/internal/models"
	"github.com/fr4nk3nst1ner/langsalary/internal/salary"
)

// DefaultMaxPages bounds a single query when no limit is configured.
const DefaultMaxPages = 200

// ErrPageLimit is returned when a source keeps reporting more pages past the
// configured limit.
var ErrPageLimit = errors.New("page limit reached")

// Page is one fetched batch of listings reduced to what the collector needs
type Page struct {
	// Found is the total number of vacancies the provider reports for the query.
	Found int
	// Listings is the number of items carried by this page.
	Listings int
	// Estimates holds one salary estimate per estimable listing on the page.
	Estimates []float64
	// HasMore reports whether another page should be requested.
	HasMore bool
}

// Source is a job-listing provider that can be paged through by language
type Source interface {
	Name() string
	FetchPage(ctx context.Context, language string, page int) (Page, error)
}

// EstimateFilter is implemented by sources that post-process the collected
// estimates before they are averaged.
type EstimateFilter interface {
	FilterEstimates(estimates []float64) []float64
}

// Progress receives one tick per finished language
type Progress interface {
	Increment()
}

// Options tune how a query is paged through
type Options struct {
	// MaxPages caps the number of pages fetched for one language. Zero means DefaultMaxPages.
	MaxPages int
	// PageDelay is waited between two consecutive page fetches.
	PageDelay time.Duration
}

// Collect pages through src for one language, starting at page 0, until the
// source reports no more pages, and reduces the estimates into a row.
func Collect(ctx context.Context, src Source, language string, opts Options) (models.LanguageStats, error) {
	logger := logging.NewLogger("collector")

	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	var (
		found     int
		seen      int
		estimates []float64
	)

	for page := 0; ; page++ {
		if page >= maxPages {
			return models.LanguageStats{}, fmt.Errorf("%s %q: %w after %d pages", src.Name(), language, ErrPageLimit, page)
		}
		if page > 0 && opts.PageDelay > 0 {
			if err := sleepContext(ctx, opts.PageDelay); err != nil {
				return models.LanguageStats{}, err
			}
		}

		p, err := src.FetchPage(ctx, language, page)
		if err != nil {
			return models.LanguageStats{}, fmt.Errorf("%s %q page %d: %w", src.Name(), language, page, err)
		}

		found = p.Found
		seen += p.Listings
		estimates = append(estimates, p.Estimates...)

		if !p.HasMore {
			break
		}
	}

	if filter, ok := src.(EstimateFilter); ok {
		estimates = filter.FilterEstimates(estimates)
	}

	stats := models.LanguageStats{
		Language:  language,
		Found:     found,
		Processed: len(estimates),
		Average:   salary.Average(estimates),
	}

	logger.Debug().
		Str("source", src.Name()).
		Str("language", language).
		Int("found", stats.Found).
		Int("seen", seen).
		Int("processed", stats.Processed).
		Int("average", stats.Average).
		Msg("language collected")

	return stats, nil
}

// CollectTable runs Collect for every language in order and assembles the
// rows into a table. The first failure aborts the table.
func CollectTable(ctx context.Context, src Source, title string, languages []string, opts Options, progress Progress) (models.StatsTable, error) {
	table := models.StatsTable{
		Title: title,
		Rows:  make([]models.LanguageStats, 0, len(languages)),
	}

	for _, language := range languages {
		stats, err := Collect(ctx, src, language, opts)
		if err != nil {
			return models.StatsTable{}, err
		}
		table.Rows = append(table.Rows, stats)
		if progress != nil {
			progress.Increment()
		}
	}

	return table, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
