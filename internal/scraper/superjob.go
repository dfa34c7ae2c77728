package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/fr4nk3nst1ner/langsalary/internal/client"
	"github.com/fr4nk3nst1ner/langsalary/internal/config"
	"github.com/fr4nk3nst1ner/langsalary/internal/logging"
	"github.com/fr4nk3nst1ner/langsalary/internal/salary"
)

const superJobTokenHeader = "X-Api-App-Id"

// SuperJobResponse is one page of the SuperJob vacancies search
type SuperJobResponse struct {
	Total   *int              `json:"total"`
	More    *bool             `json:"more"`
	Objects []SuperJobVacancy `json:"objects"`
}

// SuperJobVacancy represents a job posting from SuperJob
type SuperJobVacancy struct {
	ID          int64  `json:"id"`
	Profession  string `json:"profession"`
	PaymentFrom *int64 `json:"payment_from"`
	PaymentTo   *int64 `json:"payment_to"`
	Currency    string `json:"currency"`
}

// SuperJob pages through SuperJob vacancies until the response clears its
// "more" flag.
type SuperJob struct {
	cfg        config.SuperJobConfig
	token      string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewSuperJob creates a SuperJob source authenticated with token
func NewSuperJob(cfg config.SuperJobConfig, token string, httpClient *http.Client) *SuperJob {
	return &SuperJob{
		cfg:        cfg,
		token:      token,
		httpClient: httpClient,
		logger:     logging.NewLogger("superjob"),
	}
}

// Name implements Source
func (s *SuperJob) Name() string { return "superjob" }

func (s *SuperJob) params(language string, page int) url.Values {
	params := url.Values{}
	params.Set("keyword", language)
	params.Set("t", s.cfg.Town)
	params.Set("catalogues", s.cfg.Catalogue)
	params.Set("period", strconv.Itoa(s.cfg.Period))
	params.Set("count", strconv.Itoa(s.cfg.Count))
	params.Set("page", strconv.Itoa(page))
	return params
}

// FetchPage implements Source. Listings in another currency are skipped.
func (s *SuperJob) FetchPage(ctx context.Context, language string, page int) (Page, error) {
	headers := http.Header{}
	headers.Set(superJobTokenHeader, s.token)

	var resp SuperJobResponse
	if err := client.GetJSON(ctx, s.httpClient, s.cfg.BaseURL, s.params(language, page), headers, &resp); err != nil {
		return Page{}, err
	}
	if resp.Total == nil || resp.More == nil || resp.Objects == nil {
		return Page{}, fmt.Errorf("%w: superjob response lacks total, more or objects", client.ErrUnexpectedResponse)
	}

	estimates := make([]float64, 0, len(resp.Objects))
	for _, vacancy := range resp.Objects {
		if vacancy.Currency != s.cfg.Currency {
			continue
		}
		if estimate, ok := salary.Estimate(vacancy.PaymentFrom, vacancy.PaymentTo); ok {
			estimates = append(estimates, estimate)
		}
	}

	s.logger.Debug().
		Str("language", language).
		Int("page", page).
		Bool("more", *resp.More).
		Int("total", *resp.Total).
		Int("objects", len(resp.Objects)).
		Int("estimates", len(estimates)).
		Msg("page fetched")

	return Page{
		Found:     *resp.Total,
		Listings:  len(resp.Objects),
		Estimates: estimates,
		HasMore:   *resp.More,
	}, nil
}

// FilterEstimates implements EstimateFilter by dropping zero estimates
func (s *SuperJob) FilterEstimates(estimates []float64) []float64 {
	return salary.DropZero(estimates)
}
