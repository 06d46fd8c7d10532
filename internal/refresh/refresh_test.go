package refresh_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harvestline/agrodata/internal/domain"
	"github.com/harvestline/agrodata/internal/observability"
	"github.com/harvestline/agrodata/internal/refresh"
	"github.com/harvestline/agrodata/internal/resolver"
)

type capturingPublisher struct {
	batches [][]refresh.Snapshot
	err     error
}

func (p *capturingPublisher) PublishBatch(_ context.Context, snapshots []refresh.Snapshot) error {
	if p.err != nil {
		return p.err
	}
	p.batches = append(p.batches, snapshots)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSourceWithDatasets(t *testing.T) refresh.Source {
	t.Helper()
	dir := t.TempDir()
	now := time.Now().UTC()
	weatherCSV := "date,location,rainfall_mm\n" + now.Format("2006-01-02") + ",Khandwa,3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "weather_data_tehsil.csv"), []byte(weatherCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "farm_resources.json"), []byte(`{"farm_001":{}}`), 0o644))

	return resolver.New(
		resolver.Config{DatasetDir: dir, TabularEnabled: true},
		clockwork.NewRealClock(),
		discardLogger(),
		observability.NewMetricsForTesting(),
	)
}

func TestRefresher_FirstPassPublishesAllDomains(t *testing.T) {
	source := newSourceWithDatasets(t)
	publisher := &capturingPublisher{}
	f := refresh.New(source, publisher, discardLogger(), observability.NewMetricsForTesting(), time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	require.NoError(t, f.Run(ctx))

	require.Len(t, publisher.batches, 1)
	batch := publisher.batches[0]
	require.Len(t, batch, 4)

	byDomain := make(map[string]refresh.Snapshot, len(batch))
	for _, snap := range batch {
		byDomain[snap.Domain] = snap
	}
	assert.Equal(t, domain.SourceDataset, byDomain["weather"].Source.SourceType)
	assert.Equal(t, domain.SourceDataset, byDomain["resources"].Source.SourceType)
	// Sensor and market files were not written, so those degrade.
	assert.Equal(t, domain.SourceError, byDomain["sensor"].Source.SourceType)
	assert.Equal(t, domain.SourceError, byDomain["market"].Source.SourceType)
}

func TestRefresher_ReadinessFlipsAfterFirstPass(t *testing.T) {
	source := newSourceWithDatasets(t)
	f := refresh.New(source, nil, discardLogger(), observability.NewMetricsForTesting(), time.Hour)

	require.Error(t, f.CheckReadiness(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	require.NoError(t, f.Run(ctx))

	assert.NoError(t, f.CheckReadiness(context.Background()))
}

func TestRefresher_PublishFailureDoesNotBlockReadiness(t *testing.T) {
	source := newSourceWithDatasets(t)
	publisher := &capturingPublisher{err: errors.New("broker unreachable")}
	f := refresh.New(source, publisher, discardLogger(), observability.NewMetricsForTesting(), time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	require.NoError(t, f.Run(ctx))

	assert.NoError(t, f.CheckReadiness(context.Background()))
	assert.Empty(t, publisher.batches)
}

func TestRefresher_RunsAgainOnInterval(t *testing.T) {
	source := newSourceWithDatasets(t)
	publisher := &capturingPublisher{}
	f := refresh.New(source, publisher, discardLogger(), observability.NewMetricsForTesting(), 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	require.NoError(t, f.Run(ctx))

	assert.GreaterOrEqual(t, len(publisher.batches), 2)
}
