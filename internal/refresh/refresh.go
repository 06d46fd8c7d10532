// Package refresh runs the periodic resolution pass: it re-resolves all
// four telemetry domains from the local datasets, keeps the presence gauges
// current, and hands resolved snapshots to an optional downstream publisher.
package refresh

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/harvestline/agrodata/internal/domain"
	"github.com/harvestline/agrodata/internal/observability"
)

// Snapshot pairs one domain's resolved payload with its provenance.
type Snapshot struct {
	Domain  string            `json:"domain"`
	Payload any               `json:"payload"`
	Source  domain.SourceInfo `json:"source"`
}

// Publisher delivers resolved snapshots to downstream consumers.
type Publisher interface {
	PublishBatch(ctx context.Context, snapshots []Snapshot) error
}

// Source is the resolution surface the refresher drives.
type Source interface {
	LoadWeather(locationFilter string, daysBack int) (domain.Table, domain.SourceInfo)
	LoadSensor(locationFilter string, window *domain.DateRange) ([]domain.SensorReading, domain.SourceInfo)
	LoadResources() (domain.ResourceMap, domain.SourceInfo)
	LoadMarket(daysBack int) (domain.Table, domain.SourceInfo)
	DatasetSummary() map[string]string
}

// Refresher re-resolves all domains on a fixed interval.
type Refresher struct {
	source    Source
	publisher Publisher // nil disables publishing
	logger    *slog.Logger
	metrics   *observability.Metrics
	interval  time.Duration
	ready     atomic.Bool
}

// New creates a Refresher. Pass a nil publisher to run resolution-only.
func New(source Source, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics, interval time.Duration) *Refresher {
	return &Refresher{
		source:    source,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		interval:  interval,
	}
}

// CheckReadiness returns nil once the first resolution pass has completed.
func (f *Refresher) CheckReadiness(_ context.Context) error {
	if !f.ready.Load() {
		return errors.New("no resolution pass has completed yet")
	}
	return nil
}

// Run executes resolution passes until the context is cancelled. The first
// pass happens immediately so readiness does not wait a full interval.
func (f *Refresher) Run(ctx context.Context) error {
	f.logger.Info("refresher started", "interval", f.interval)
	f.metrics.RefresherRunning.Set(1)
	defer f.metrics.RefresherRunning.Set(0)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	f.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			f.logger.Info("refresher stopping", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			f.runOnce(ctx)
		}
	}
}

// runOnce resolves every domain unfiltered and publishes the snapshots.
// Resolution itself cannot fail; only publishing can, and a publish failure
// does not block the next pass.
func (f *Refresher) runOnce(ctx context.Context) {
	f.source.DatasetSummary()

	weather, weatherInfo := f.source.LoadWeather("", 0)
	readings, sensorInfo := f.source.LoadSensor("", nil)
	resources, resourcesInfo := f.source.LoadResources()
	market, marketInfo := f.source.LoadMarket(0)

	snapshots := []Snapshot{
		{Domain: "weather", Payload: weather, Source: weatherInfo},
		{Domain: "sensor", Payload: readings, Source: sensorInfo},
		{Domain: "resources", Payload: resources, Source: resourcesInfo},
		{Domain: "market", Payload: market, Source: marketInfo},
	}

	if f.publisher != nil {
		if err := f.publisher.PublishBatch(ctx, snapshots); err != nil {
			f.logger.Error("snapshot publish failed", "error", err)
			f.metrics.PublishErrors.Inc()
		} else {
			f.metrics.SnapshotsPublished.Add(float64(len(snapshots)))
		}
	}

	f.ready.Store(true)
}
