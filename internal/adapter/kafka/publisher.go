// Package kafka publishes finished impact reports to a Kafka topic so
// downstream dashboards can consume them without polling the HTTP endpoint.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/storm-impact-report/internal/config"
	"github.com/couchcryptid/storm-impact-report/internal/report"
	kafkago "github.com/segmentio/kafka-go"
)

// Publisher produces report messages to a Kafka topic.
// It implements pipeline.ReportSink.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured report topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// Deliver serializes the report and publishes it, keyed by run ID.
func (p *Publisher) Deliver(ctx context.Context, rep *report.ImpactReport) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("serialize impact report: %w", err)
	}

	msg := kafkago.Message{
		Key:   []byte(rep.RunID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "report_type", Value: []byte("impact_summary")},
			{Key: "generated_at", Value: []byte(rep.GeneratedAt.Format(time.RFC3339))},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish impact report: %w", err)
	}

	p.logger.Info("report published", "topic", p.writer.Topic, "run_id", rep.RunID)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
