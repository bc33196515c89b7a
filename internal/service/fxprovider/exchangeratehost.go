package fxprovider

import (
	"context"
	"fmt"
	"time"

	"FXBench/internal/domain/models"
	drepo "FXBench/internal/domain/repository"
	xhttp "FXBench/pkg/http"
)

const exchangeRateHostURL = "https://api.exchangerate.host"

// ExchangeRateHost quotes spot rates from the exchangerate.host convert
// endpoint. Primary live provider in the default priority order.
type ExchangeRateHost struct {
	baseURL string
	client  *xhttp.Client
}

// NewExchangeRateHost creates the client. baseURL falls back to the public
// endpoint when empty; timeout bounds every call.
func NewExchangeRateHost(baseURL string, timeout time.Duration) drepo.RateProvider {
	if baseURL == "" {
		baseURL = exchangeRateHostURL
	}
	return &ExchangeRateHost{
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

func (p *ExchangeRateHost) Name() string { return "exchangerate.host" }

func (p *ExchangeRateHost) Quote(ctx context.Context, base, quote models.Currency) (float64, error) {
	var resp struct {
		Success bool     `json:"success"`
		Result  *float64 `json:"result"`
	}

	err := p.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    p.baseURL + "/convert",
		QueryParams: map[string][]string{
			"from": {string(base)},
			"to":   {string(quote)},
		},
	}, &resp)
	if err != nil {
		return 0, fmt.Errorf("convert %s/%s: %w", base, quote, err)
	}

	if !resp.Success || resp.Result == nil {
		return 0, fmt.Errorf("convert %s/%s: no result in response", base, quote)
	}
	return *resp.Result, nil
}
