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
	"github.com/fr4nk3nst1ner/langsalary/internal/models"
	"github.com/fr4nk3nst1ner/langsalary/internal/salary"
)

// HeadHunterResponse is one page of the hh.ru vacancies search. Fields are
// pointers so a missing key can be told apart from a zero value.
type HeadHunterResponse struct {
	Found *int                `json:"found"`
	Pages *int                `json:"pages"`
	Items []HeadHunterVacancy `json:"items"`
}

// HeadHunterVacancy is a single hh.ru listing. Salary is nil when the
// employer did not publish one.
type HeadHunterVacancy struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Salary *models.Salary `json:"salary"`
}

// HeadHunter pages through hh.ru vacancies. Pagination ends once the
// requested page reaches the page count of the latest response.
type HeadHunter struct {
	cfg        config.HeadHunterConfig
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewHeadHunter creates an hh.ru source
func NewHeadHunter(cfg config.HeadHunterConfig, httpClient *http.Client) *HeadHunter {
	return &HeadHunter{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logging.NewLogger("headhunter"),
	}
}

// Name implements Source
func (h *HeadHunter) Name() string { return "headhunter" }

func (h *HeadHunter) params(language string, page int) url.Values {
	params := url.Values{}
	params.Set("text", language)
	params.Set("area", h.cfg.Area)
	params.Set("period", strconv.Itoa(h.cfg.Period))
	params.Set("per_page", strconv.Itoa(h.cfg.PerPage))
	params.Set("currency", h.cfg.Currency)
	params.Set("page", strconv.Itoa(page))
	return params
}

// FetchPage implements Source
func (h *HeadHunter) FetchPage(ctx context.Context, language string, page int) (Page, error) {
	headers := http.Header{}
	if h.cfg.UserAgent != "" {
		headers.Set("User-Agent", h.cfg.UserAgent)
	}

	var resp HeadHunterResponse
	if err := client.GetJSON(ctx, h.httpClient, h.cfg.BaseURL, h.params(language, page), headers, &resp); err != nil {
		return Page{}, err
	}
	if resp.Found == nil || resp.Pages == nil || resp.Items == nil {
		return Page{}, fmt.Errorf("%w: hh.ru response lacks found, pages or items", client.ErrUnexpectedResponse)
	}

	estimates := make([]float64, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Salary == nil {
			continue
		}
		if estimate, ok := salary.Estimate(item.Salary.From, item.Salary.To); ok {
			estimates = append(estimates, estimate)
		}
	}

	h.logger.Debug().
		Str("language", language).
		Int("page", page).
		Int("pages", *resp.Pages).
		Int("found", *resp.Found).
		Int("items", len(resp.Items)).
		Int("estimates", len(estimates)).
		Msg("page fetched")

	return Page{
		Found:     *resp.Found,
		Listings:  len(resp.Items),
		Estimates: estimates,
		HasMore:   page+1 < *resp.Pages,
	}, nil
}
