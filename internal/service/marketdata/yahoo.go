package marketdata

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"FXBench/internal/domain/models"
	drepo "FXBench/internal/domain/repository"
	xhttp "FXBench/pkg/http"
)

const yahooChartURL = "https://query1.finance.yahoo.com"

// YahooChart fetches index price history from the Yahoo Finance chart
// endpoint and derives the year-to-date change from the first and last
// non-null closes in the window.
type YahooChart struct {
	baseURL string
	client  *xhttp.Client
}

func NewYahooChart(baseURL string, timeout time.Duration) drepo.MarketDataProvider {
	if baseURL == "" {
		baseURL = yahooChartURL
	}
	return &YahooChart{
		baseURL: baseURL,
		client: xhttp.NewClient(
			xhttp.WithTimeout(timeout),
			xhttp.WithUserAgent("Mozilla/5.0 (compatible; fxbench/1.0)"),
		),
	}
}

func (p *YahooChart) Name() string { return "yahoo-chart" }

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchYTD pulls daily closes from Jan 1 of year through now (or through
// Dec 31 for past years) and computes the percent change, rounded to two
// decimals the way the rest of the pipeline reports percentages.
func (p *YahooChart) FetchYTD(ctx context.Context, symbol string, year int) (*models.IndexYTD, error) {
	now := time.Now().UTC()
	if year == 0 {
		year = now.Year()
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := now
	if year < now.Year() {
		end = time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
	}

	var resp chartResponse
	err := p.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    p.baseURL + "/v8/finance/chart/" + symbol,
		QueryParams: map[string][]string{
			"period1":  {strconv.FormatInt(start.Unix(), 10)},
			"period2":  {strconv.FormatInt(end.Unix(), 10)},
			"interval": {"1d"},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", symbol, err)
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart %s: %s (%s)", symbol, resp.Chart.Error.Description, resp.Chart.Error.Code)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart %s: empty result", symbol)
	}

	closes := resp.Chart.Result[0].Indicators.Quote[0].Close
	first, last := firstLastClose(closes)
	if first == nil || last == nil || *first == 0 {
		return nil, fmt.Errorf("chart %s: no usable closes in window", symbol)
	}

	ytd := (*last - *first) / *first * 100
	ytd = math.Round(ytd*100) / 100

	return &models.IndexYTD{
		Symbol:         symbol,
		CurrentPrice:   last,
		YearStartPrice: first,
		YTDPercent:     &ytd,
		AsOf:           now,
	}, nil
}

func firstLastClose(closes []*float64) (first, last *float64) {
	for _, c := range closes {
		if c == nil {
			continue
		}
		if first == nil {
			first = c
		}
		last = c
	}
	return first, last
}
