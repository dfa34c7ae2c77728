package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr4nk3nst1ner/langsalary/internal/models"
)

// fakeSource replays pages per language; once a script runs out, the last
// page is repeated.
type fakeSource struct {
	pages map[string][]Page
	errs  map[string]error
	calls map[string][]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		pages: map[string][]Page{},
		errs:  map[string]error{},
		calls: map[string][]int{},
	}
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) FetchPage(_ context.Context, language string, page int) (Page, error) {
	f.calls[language] = append(f.calls[language], page)
	if err := f.errs[language]; err != nil {
		return Page{}, err
	}
	script := f.pages[language]
	if len(script) == 0 {
		return Page{}, nil
	}
	if page >= len(script) {
		return script[len(script)-1], nil
	}
	return script[page], nil
}

type zeroDroppingSource struct {
	*fakeSource
	filtered int
}

func (z *zeroDroppingSource) FilterEstimates(estimates []float64) []float64 {
	z.filtered++
	kept := estimates[:0:0]
	for _, e := range estimates {
		if e != 0 {
			kept = append(kept, e)
		}
	}
	return kept
}

type countingProgress struct{ n int }

func (c *countingProgress) Increment() { c.n++ }

func TestCollect_FollowsHasMore(t *testing.T) {
	src := newFakeSource()
	src.pages["Go"] = []Page{
		{Found: 7, Listings: 3, Estimates: []float64{100000, 200000}, HasMore: true},
		{Found: 7, Listings: 3, Estimates: []float64{300000}, HasMore: true},
		{Found: 6, Listings: 1, Estimates: nil, HasMore: false},
	}

	stats, err := Collect(context.Background(), src, "Go", Options{})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, src.calls["Go"])
	assert.Equal(t, models.LanguageStats{Language: "Go", Found: 6, Processed: 3, Average: 200000}, stats)
}

func TestCollect_NoEstimates(t *testing.T) {
	src := newFakeSource()
	src.pages["Rust"] = []Page{{Found: 4, Listings: 4}}

	stats, err := Collect(context.Background(), src, "Rust", Options{})
	require.NoError(t, err)

	assert.Equal(t, models.LanguageStats{Language: "Rust", Found: 4, Processed: 0, Average: 0}, stats)
}

func TestCollect_AppliesEstimateFilter(t *testing.T) {
	src := &zeroDroppingSource{fakeSource: newFakeSource()}
	src.pages["PHP"] = []Page{
		{Found: 3, Listings: 3, Estimates: []float64{0, 40000, 0}},
	}

	stats, err := Collect(context.Background(), src, "PHP", Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, src.filtered)
	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 40000, stats.Average)
}

func TestCollect_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	src := newFakeSource()
	src.errs["Go"] = boom

	_, err := Collect(context.Background(), src, "Go", Options{})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `fake "Go" page 0`)
}

func TestCollect_PageLimit(t *testing.T) {
	src := newFakeSource()
	src.pages["Java"] = []Page{{Found: 1, HasMore: true}}

	_, err := Collect(context.Background(), src, "Java", Options{MaxPages: 4})
	assert.ErrorIs(t, err, ErrPageLimit)
	assert.Len(t, src.calls["Java"], 4)
}

func TestCollect_DefaultPageLimit(t *testing.T) {
	src := newFakeSource()
	src.pages["Java"] = []Page{{HasMore: true}}

	_, err := Collect(context.Background(), src, "Java", Options{})
	assert.ErrorIs(t, err, ErrPageLimit)
	assert.Len(t, src.calls["Java"], DefaultMaxPages)
}

func TestCollect_DelayHonoursContext(t *testing.T) {
	src := newFakeSource()
	src.pages["Go"] = []Page{{HasMore: true}}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := Collect(ctx, src, "Go", Options{PageDelay: time.Hour})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, []int{0}, src.calls["Go"])
}

func TestCollectTable_PreservesOrder(t *testing.T) {
	src := newFakeSource()
	src.pages["Python"] = []Page{{Found: 10, Listings: 2, Estimates: []float64{120000}}}
	src.pages["Go"] = []Page{{Found: 2, Listings: 2, Estimates: []float64{150000}}}
	src.pages["C"] = []Page{{Found: 0}}

	progress := &countingProgress{}
	table, err := CollectTable(context.Background(), src, "fake Moscow", []string{"Python", "Go", "C"}, Options{}, progress)
	require.NoError(t, err)

	assert.Equal(t, "fake Moscow", table.Title)
	assert.Equal(t, []models.LanguageStats{
		{Language: "Python", Found: 10, Processed: 1, Average: 120000},
		{Language: "Go", Found: 2, Processed: 1, Average: 150000},
		{Language: "C", Found: 0, Processed: 0, Average: 0},
	}, table.Rows)
	assert.Equal(t, 3, progress.n)
}

func TestCollectTable_AbortsOnError(t *testing.T) {
	src := newFakeSource()
	src.pages["Python"] = []Page{{Found: 1}}
	src.errs["Go"] = errors.New("status 500")

	table, err := CollectTable(context.Background(), src, "fake", []string{"Python", "Go", "C"}, Options{}, nil)
	require.Error(t, err)
	assert.Empty(t, table.Rows)
	assert.Empty(t, src.calls["C"])
}
