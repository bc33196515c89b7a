package models

import "time"

// IndexConfig describes one well-known index a market-data provider can
// pre-fill an input record for.
type IndexConfig struct {
	Key           string   `json:"key"`
	Symbol        string   `json:"symbol"`
	Name          string   `json:"index_name"`
	Region        string   `json:"region"`
	Exchange      string   `json:"exchange"`
	LocalCurrency Currency `json:"local_currency"`
}

// IndexYTD is one year-to-date observation fetched for an index.
type IndexYTD struct {
	Symbol         string    `json:"symbol"`
	CurrentPrice   *float64  `json:"current_price"`
	YearStartPrice *float64  `json:"year_start_price"`
	YTDPercent     *float64  `json:"ytd_percent"`
	AsOf           time.Time `json:"as_of"`
}

// DefaultIndexCatalog lists the exchanges the service knows how to fetch.
// Reference data, not logic: callers may extend or replace it via config.
func DefaultIndexCatalog() []IndexConfig {
	return []IndexConfig{
		{Key: "DFM", Symbol: "^DFMGI.AE", Name: "DFM General Index", Region: "UAE", Exchange: "DFM", LocalCurrency: AED},
		{Key: "ADX", Symbol: "^FTFADGI", Name: "ADX General Index", Region: "UAE", Exchange: "ADX", LocalCurrency: AED},
		{Key: "TASI", Symbol: "^TASI.SR", Name: "TASI", Region: "Saudi Arabia", Exchange: "Tadawul", LocalCurrency: SAR},
		{Key: "BKP", Symbol: "^BKP", Name: "Premier Market Index", Region: "Kuwait", Exchange: "Boursa Kuwait", LocalCurrency: KWD},
		{Key: "QSI", Symbol: "^QSI", Name: "QE Index", Region: "Qatar", Exchange: "QSE", LocalCurrency: QAR},
		{Key: "NYA", Symbol: "^NYA", Name: "NYSE Composite", Region: "USA", Exchange: "NYSE", LocalCurrency: USD},
		{Key: "IXIC", Symbol: "^IXIC", Name: "NASDAQ Composite", Region: "USA", Exchange: "NASDAQ", LocalCurrency: USD},
		{Key: "FTSE", Symbol: "^FTSE", Name: "FTSE 100", Region: "UK", Exchange: "LSE", LocalCurrency: GBP},
		{Key: "DAX", Symbol: "^GDAXI", Name: "DAX", Region: "Germany", Exchange: "XETRA", LocalCurrency: EUR},
		{Key: "CAC", Symbol: "^FCHI", Name: "CAC 40", Region: "France", Exchange: "Euronext Paris", LocalCurrency: EUR},
		{Key: "N225", Symbol: "^N225", Name: "Nikkei 225", Region: "Japan", Exchange: "TSE", LocalCurrency: JPY},
		{Key: "HSI", Symbol: "^HSI", Name: "Hang Seng", Region: "Hong Kong", Exchange: "HKEX", LocalCurrency: HKD},
	}
}
