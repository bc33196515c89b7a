package repository

import (
	"context"

	"FXBench/internal/domain/models"
	pkgkafka "FXBench/pkg/kafka"
)

// AuditPublisher fans the audit trail out to a Kafka topic so downstream
// consumers (reporting, reconciliation) see every computed record. Keyed by
// exchange name for per-exchange ordering.
type AuditPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewAuditPublisher(producer *pkgkafka.Producer, topic string) *AuditPublisher {
	if topic == "" {
		topic = "fx.audit.records"
	}
	return &AuditPublisher{producer: producer, topic: topic}
}

func (p *AuditPublisher) Name() string { return "kafka" }

func (p *AuditPublisher) Store(ctx context.Context, records []models.AuditRecord) error {
	if len(records) == 0 {
		return nil
	}

	msgs := make([]pkgkafka.Message, 0, len(records))
	for _, r := range records {
		msgs = append(msgs, pkgkafka.Message{
			Key:   []byte(r.Exchange),
			Value: r,
		})
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *AuditPublisher) Close() error {
	return p.producer.Close()
}
