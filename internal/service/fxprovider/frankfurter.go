package fxprovider

import (
	"context"
	"fmt"
	"time"

	"FXBench/internal/domain/models"
	drepo "FXBench/internal/domain/repository"
	xhttp "FXBench/pkg/http"
)

const frankfurterURL = "https://api.frankfurter.app"

// Frankfurter quotes ECB reference rates via frankfurter.app. Secondary,
// independent fallback behind exchangerate.host.
type Frankfurter struct {
	baseURL string
	client  *xhttp.Client
}

func NewFrankfurter(baseURL string, timeout time.Duration) drepo.RateProvider {
	if baseURL == "" {
		baseURL = frankfurterURL
	}
	return &Frankfurter{
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

func (p *Frankfurter) Name() string { return "frankfurter.app" }

func (p *Frankfurter) Quote(ctx context.Context, base, quote models.Currency) (float64, error) {
	var resp struct {
		Rates map[string]float64 `json:"rates"`
	}

	err := p.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    p.baseURL + "/latest",
		QueryParams: map[string][]string{
			"from": {string(base)},
			"to":   {string(quote)},
		},
	}, &resp)
	if err != nil {
		return 0, fmt.Errorf("latest %s/%s: %w", base, quote, err)
	}

	v, ok := resp.Rates[string(quote)]
	if !ok {
		return 0, fmt.Errorf("latest %s/%s: quote currency missing from response", base, quote)
	}
	return v, nil
}
