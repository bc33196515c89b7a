package compute

import "testing"

func fp(v float64) *float64 { return &v }

func TestFormatMarketCapTiers(t *testing.T) {
	cases := []struct {
		in   *float64
		want string
	}{
		{fp(2.3e12), "$2.30T"},
		{fp(1.5e9), "$1.50B"},
		{fp(66.44e9), "$66.44B"},
		{fp(250e6), "$250.00M"},
		{fp(999), "$999"},
		{fp(1234), "$1,234"},
		{nil, "N/A"},
	}
	for _, c := range cases {
		if got := FormatMarketCap(c.in, "$"); got != c.want {
			t.Fatalf("FormatMarketCap(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatADTVHasKTier(t *testing.T) {
	cases := []struct {
		in   *float64
		want string
	}{
		{fp(3.2e9), "$3.20B"},
		{fp(410e6), "$410.00M"},
		{fp(8500), "$8.50K"},
		{fp(500), "$500"},
		{nil, "N/A"},
	}
	for _, c := range cases {
		if got := FormatADTV(c.in, "$"); got != c.want {
			t.Fatalf("FormatADTV(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatPercentSign(t *testing.T) {
	if got := FormatPercent(fp(5.231)); got != "+5.23%" {
		t.Fatalf("positive: got %q", got)
	}
	if got := FormatPercent(fp(-2.1)); got != "-2.10%" {
		t.Fatalf("negative: got %q", got)
	}
	if got := FormatPercent(fp(0)); got != "+0.00%" {
		t.Fatalf("zero: got %q", got)
	}
	if got := FormatPercent(nil); got != "N/A" {
		t.Fatalf("nil: got %q", got)
	}
}

func TestFormatNonUSDSymbol(t *testing.T) {
	if got := FormatMarketCap(fp(1.2e9), "€"); got != "€1.20B" {
		t.Fatalf("got %q", got)
	}
}
