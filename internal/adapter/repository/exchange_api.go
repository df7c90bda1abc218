package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lavida77-ai/currency-converter/internal/domain/model"
	"github.com/lavida77-ai/currency-converter/pkg/logger"
)

// maxBodyBytes caps how much of a provider response is decoded.
const maxBodyBytes = 1 << 20

// ExchangeAPI fetches the latest rates from an exchangerate-api.com style
// endpoint: GET {baseURL}/v4/latest/{base}.
type ExchangeAPI struct {
	baseURL    string
	base       model.Currency
	httpClient *http.Client
	log        *logger.Logger
}

type latestRatesResponse struct {
	Base            string             `json:"base"`
	Date            string             `json:"date"`
	TimeLastUpdated int64              `json:"time_last_updated"`
	Rates           map[string]float64 `json:"rates"`
}

func NewExchangeAPI(baseURL string, base model.Currency, timeout time.Duration, log *logger.Logger) *ExchangeAPI {
	return &ExchangeAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		base:    base,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

func (e *ExchangeAPI) FetchLatestRates(ctx context.Context) (model.RateSnapshot, error) {
	url := fmt.Sprintf("%s/v4/latest/%s", e.baseURL, e.base)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", model.ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to send request: %v", model.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: API returned non-OK status: %d", model.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var apiResp latestRatesResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", model.ErrMalformedRates, err)
	}

	if len(apiResp.Rates) == 0 {
		return nil, fmt.Errorf("%w: response has no rates", model.ErrMalformedRates)
	}

	snapshot := make(model.RateSnapshot, len(apiResp.Rates))
	for code, rate := range apiResp.Rates {
		snapshot[model.ParseCurrency(code)] = rate
	}

	e.log.Info("Fetched latest exchange rates",
		"base", e.base,
		"date", apiResp.Date,
		"currencies", len(snapshot),
	)

	return snapshot, nil
}
