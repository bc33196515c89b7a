package insights

import (
	"strings"
	"testing"

	"FXBench/internal/domain/models"
)

func fp(v float64) *float64 { return &v }

func out(region, exchange string, ccy models.Currency, ytd, capUSD, adtvUSD *float64) models.ExchangeOutput {
	o := models.ExchangeOutput{
		Region:        region,
		Exchange:      exchange,
		LocalCurrency: ccy,
		YTDPercent:    ytd,
		MarketCapUSD:  capUSD,
		ADTVUSD:       adtvUSD,
	}
	o.MarketCapDisplay = "N/A"
	o.ADTVDisplay = "N/A"
	return o
}

func TestSummarizePositiveLeader(t *testing.T) {
	dfm := out("UAE", "DFM", models.AED, fp(12.5), fp(66.44e9), fp(108.92e6))
	dfm.MarketCapDisplay = "$66.44B"
	dfm.ADTVDisplay = "$108.92M"
	tadawul := out("Saudi Arabia", "Tadawul", models.SAR, fp(2.0), fp(2.6e12), fp(1.5e9))
	tadawul.MarketCapDisplay = "$2.60T"
	tadawul.ADTVDisplay = "$1.50B"

	got := Summarize([]models.ExchangeOutput{dfm, tadawul}, 2025)
	if len(got) != 6 {
		t.Fatalf("expected 6 insights, got %d: %v", len(got), got)
	}
	if got[0] != "DFM leads in YTD performance at +12.50%, outperforming other exchanges in the comparison." {
		t.Fatalf("unexpected leader insight: %q", got[0])
	}
	if !strings.Contains(got[1], "10.5 percentage points separate the best (DFM) from the weakest (Tadawul)") {
		t.Fatalf("unexpected dispersion insight: %q", got[1])
	}
	if !strings.Contains(got[2], "Tadawul dominates by market capitalization at $2.60T") {
		t.Fatalf("unexpected dominance insight: %q", got[2])
	}
	if got[5] != "UAE region shows the strongest average performance at +12.50% across its exchanges." {
		t.Fatalf("unexpected regional insight: %q", got[5])
	}
}

func TestSummarizeAllNegativeNamesLeastDecline(t *testing.T) {
	dfm := out("UAE", "DFM", models.AED, fp(-3.2), nil, nil)

	got := Summarize([]models.ExchangeOutput{dfm}, 2025)
	if len(got) != 2 {
		t.Fatalf("expected 2 insights, got %d: %v", len(got), got)
	}
	if got[0] != "All exchanges show negative YTD returns in 2025, with DFM declining the least at -3.20%." {
		t.Fatalf("unexpected insight: %q", got[0])
	}
	if got[1] != "Note: 1 exchange(s) have incomplete data marked as N/A. Insights are based on available data only." {
		t.Fatalf("unexpected completeness note: %q", got[1])
	}
}

func TestSummarizeLiquidityTurnoverEstimate(t *testing.T) {
	tadawul := out("Saudi Arabia", "Tadawul", models.SAR, nil, fp(2.6e12), fp(1.5e9))
	tadawul.ADTVDisplay = "$1.50B"

	got := Summarize([]models.ExchangeOutput{tadawul, out("UAE", "DFM", models.AED, nil, nil, nil)}, 2025)

	found := false
	for _, s := range got {
		if s == "Tadawul shows the highest liquidity with $1.50B average daily traded value, implying ~15% annualized turnover." {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected turnover estimate, got %v", got)
	}
}

func TestSummarizeTurnoverSuppressedWhenImplausible(t *testing.T) {
	churner := out("R1", "Churner", models.USD, nil, fp(100e9), fp(5e9))
	churner.ADTVDisplay = "$5.00B"

	got := Summarize([]models.ExchangeOutput{churner, out("R2", "Quiet", models.USD, nil, nil, nil)}, 2025)

	for _, s := range got {
		if strings.Contains(s, "annualized turnover") {
			t.Fatalf("turnover above the plausibility cutoff must be suppressed: %q", s)
		}
	}
}

func TestSummarizeCurrencyUnificationFallback(t *testing.T) {
	nyse := out("Americas", "NYSE", models.USD, nil, fp(28e12), nil)
	nyse.MarketCapDisplay = "$28.00T"
	lse := out("Europe", "LSE", models.GBP, nil, fp(3e12), nil)
	lse.MarketCapDisplay = "$3.00T"

	got := Summarize([]models.ExchangeOutput{nyse, lse}, 2025)

	found := false
	for _, s := range got {
		if s == "Currency unification applied across 2 currencies (GBP, USD) to enable direct comparison." {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected currency unification note, got %v", got)
	}
}

func TestSummarizeCapsAtSix(t *testing.T) {
	alpha := out("R1", "Alpha", models.USD, fp(20), fp(10e9), fp(1e6))
	alpha.ADTVDisplay = "$1.00M"
	beta := out("R1", "Beta", models.USD, fp(5), fp(100e9), fp(5e9))
	beta.ADTVDisplay = "$5.00B"
	gamma := out("R2", "Gamma", models.USD, fp(-1), fp(200e9), fp(2e6))
	gamma.ADTVDisplay = "$2.00M"

	got := Summarize([]models.ExchangeOutput{alpha, beta, gamma}, 2025)
	if len(got) != 6 {
		t.Fatalf("expected the list capped at 6, got %d: %v", len(got), got)
	}
	// The regional insight is generated seventh and must be the one trimmed.
	for _, s := range got {
		if strings.Contains(s, "region shows the strongest average performance") {
			t.Fatalf("entries past the cap must be dropped in generation order: %v", got)
		}
	}
	if !strings.Contains(got[5], "Alpha demonstrates strong performance (+20.00%) despite its smaller market cap") {
		t.Fatalf("unexpected final insight: %q", got[5])
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize(nil, 2025); len(got) != 0 {
		t.Fatalf("no outputs must yield no insights, got %v", got)
	}
}

func TestRankOrderings(t *testing.T) {
	outputs := []models.ExchangeOutput{
		out("UAE", "DFM", models.AED, fp(12.5), fp(66.44e9), nil),
		out("Saudi Arabia", "Tadawul", models.SAR, fp(-2.0), fp(2.6e12), fp(1.5e9)),
		out("Kuwait", "Boursa Kuwait", models.KWD, nil, nil, fp(60e6)),
	}

	r := Rank(outputs)

	if len(r.YTDBest) != 2 || r.YTDBest[0].Exchange != "DFM" || r.YTDBest[1].Exchange != "Tadawul" {
		t.Fatalf("unexpected ytd_best: %+v", r.YTDBest)
	}
	if len(r.YTDWorst) != 2 || r.YTDWorst[0].Exchange != "Tadawul" {
		t.Fatalf("unexpected ytd_worst: %+v", r.YTDWorst)
	}
	if len(r.MarketCapLargest) != 2 || r.MarketCapLargest[0].Exchange != "Tadawul" {
		t.Fatalf("unexpected market_cap_largest: %+v", r.MarketCapLargest)
	}
	if len(r.ADTVHighest) != 2 || r.ADTVHighest[0].Exchange != "Tadawul" || r.ADTVHighest[1].Exchange != "Boursa Kuwait" {
		t.Fatalf("unexpected adtv_highest: %+v", r.ADTVHighest)
	}
}

func TestExecutiveSummary(t *testing.T) {
	outputs := []models.ExchangeOutput{
		out("UAE", "DFM", models.AED, fp(12.5), fp(66.44e9), nil),
		out("Saudi Arabia", "Tadawul", models.SAR, fp(-2.5), fp(2.6e12), nil),
	}

	got := ExecutiveSummary(outputs, "2025 YTD (Jan 1 - Aug 31)", models.USD)
	want := "This analysis compares 2 stock exchanges across 2 regions for 2025 YTD (Jan 1 - Aug 31). " +
		"Average YTD performance is +5.00%, with 1 of 2 exchanges showing positive returns. " +
		"Combined market capitalization totals $2.67T."
	if got != want {
		t.Fatalf("unexpected summary:\n got: %q\nwant: %q", got, want)
	}
}

func TestExecutiveSummaryWithoutData(t *testing.T) {
	outputs := []models.ExchangeOutput{out("UAE", "DFM", models.AED, nil, nil, nil)}

	got := ExecutiveSummary(outputs, "2025 Full Year", models.USD)
	if got != "This analysis compares 1 stock exchanges across 1 regions for 2025 Full Year." {
		t.Fatalf("unexpected summary: %q", got)
	}
}
