package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"FXBench/internal/domain/models"
	pkgch "FXBench/pkg/clickhouse"
	applogger "FXBench/pkg/logger"
)

// AuditStore persists audit records to ClickHouse. The table is append-only:
// records are never updated or deleted, so a MergeTree ordered by
// (computed_at, exchange) is enough.
type AuditStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

func NewAuditStore(ch *pkgch.Client, table string) *AuditStore {
	if table == "" {
		table = "fx_audit_trail"
	}
	return &AuditStore{db: ch.DB(), table: table}
}

// SetLogger injects a structured logger.
func (s *AuditStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *AuditStore) Name() string { return "clickhouse" }

// Schema returns idempotent DDL for the audit table.
func (s *AuditStore) Schema() []string {
	return []string{fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            exchange              String,
            input_currency        LowCardinality(String),
            input_market_cap      Nullable(Float64),
            input_adtv            Nullable(Float64),
            input_ytd_percent     Nullable(Float64),
            fx_rate               Nullable(Float64),
            fx_source             String,
            output_market_cap_usd Nullable(Float64),
            output_adtv_usd       Nullable(Float64),
            computed_at           DateTime64(3),
            missing_fields        String
        ) ENGINE = MergeTree
        ORDER BY (computed_at, exchange)
    `, s.table)}
}

func (s *AuditStore) Store(ctx context.Context, records []models.AuditRecord) error {
	if len(records) == 0 {
		return nil
	}
	start := time.Now()

	const cols = 11
	placeholders := make([]string, 0, len(records))
	args := make([]interface{}, 0, len(records)*cols)
	for _, r := range records {
		placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			r.Exchange,
			string(r.InputLocalCurrency),
			r.InputMarketCap,
			r.InputADTV,
			r.InputYTDPercent,
			r.FXRate,
			r.FXSource,
			r.OutputMarketCapUSD,
			r.OutputADTVUSD,
			r.ComputedAt,
			strings.Join(r.MissingFields, ","),
		)
	}

	q := fmt.Sprintf(
		"INSERT INTO %s (exchange, input_currency, input_market_cap, input_adtv, input_ytd_percent, fx_rate, fx_source, output_market_cap_usd, output_adtv_usd, computed_at, missing_fields) VALUES %s",
		s.table, strings.Join(placeholders, ", "),
	)

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse audit insert error",
				applogger.String("table", s.table),
				applogger.Int("records", len(records)),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("insert audit records: %w", err)
	}

	if s.l != nil {
		s.l.Info("clickhouse audit insert ok",
			applogger.String("table", s.table),
			applogger.Int("records", len(records)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

// Close is a no-op: the connection pool belongs to the shared client.
func (s *AuditStore) Close() error { return nil }
