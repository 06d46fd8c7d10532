// Package kafka publishes resolved telemetry snapshots for downstream
// consumers such as the agent process and dashboard backends.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/harvestline/agrodata/internal/config"
	"github.com/harvestline/agrodata/internal/refresh"
)

// Writer produces snapshot messages to a Kafka topic.
// It implements refresh.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured snapshot topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishBatch serializes and publishes multiple snapshots in a single
// WriteMessages call.
func (w *Writer) PublishBatch(ctx context.Context, snapshots []refresh.Snapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(snapshots))
	for i := range snapshots {
		msg, err := serializeToMessage(snapshots[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a snapshot into a Kafka message keyed by
// domain, so consumers reading with log compaction always see the latest
// resolution per domain.
func serializeToMessage(snapshot refresh.Snapshot) (kafkago.Message, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize snapshot: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(snapshot.Domain),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "source_type", Value: []byte(snapshot.Source.SourceType)},
			{Key: "confidence", Value: []byte(strconv.FormatFloat(snapshot.Source.Confidence, 'f', -1, 64))},
			{Key: "resolved_at", Value: []byte(snapshot.Source.Timestamp.Format(time.RFC3339))},
		},
	}, nil
}
