// Package resolver implements the tiered dataset resolution layer. For each
// telemetry domain it locates the primary on-disk dataset, normalizes it,
// applies the requested filters, and attaches provenance. Every failure
// mode (missing file, disabled tabular capability, malformed content)
// degrades to an empty payload of the correct shape plus an error-marked
// SourceInfo; a resolution never returns an error and never panics.
package resolver

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/harvestline/agrodata/internal/domain"
	"github.com/harvestline/agrodata/internal/observability"
)

// Default lookback windows for the tabular domains, in days.
const (
	DefaultWeatherLookbackDays = 30
	DefaultMarketLookbackDays  = 60
)

// dataset describes one domain's backing file and how to treat it.
type dataset struct {
	name    string // metric label
	label   string // operator-facing summary label
	file    string
	tabular bool
}

var (
	weatherDataset   = dataset{name: "weather", label: "Weather Data", file: "weather_data_tehsil.csv", tabular: true}
	sensorDataset    = dataset{name: "sensor", label: "Sensor Data", file: "farm_sensor_data_tehsil_with_date.json"}
	resourcesDataset = dataset{name: "resources", label: "Farm Resources", file: "farm_resources.json"}
	marketDataset    = dataset{name: "market", label: "Market Prices", file: "market_prices.csv", tabular: true}

	datasets = []dataset{weatherDataset, sensorDataset, resourcesDataset, marketDataset}
)

// Config holds the resolver's construction-time settings. TabularEnabled is
// the capability flag for the CSV domains: when false they behave exactly
// as if their backing files were missing, regardless of why the capability
// is off.
type Config struct {
	DatasetDir     string
	TabularEnabled bool
}

// Resolver resolves telemetry requests against the dataset directory. It
// holds no per-request state, so concurrent use is safe.
type Resolver struct {
	datasetDir string
	tabular    bool
	clock      clockwork.Clock
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// New creates a Resolver. Pass a nil clock to use real time.
func New(cfg Config, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Resolver {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Resolver{
		datasetDir: cfg.DatasetDir,
		tabular:    cfg.TabularEnabled,
		clock:      clock,
		logger:     logger,
		metrics:    metrics,
	}
}

// LoadWeather resolves the weather dataset. locationFilter is a
// case-insensitive substring match against the location column; empty
// matches everything. daysBack <= 0 selects the 30-day default; the window
// is [now-daysBack, now] inclusive.
func (r *Resolver) LoadWeather(locationFilter string, daysBack int) (domain.Table, domain.SourceInfo) {
	now := r.clock.Now()

	data, ok := r.readDataset(weatherDataset)
	if !ok {
		return domain.Table{}, r.failed(weatherDataset, now)
	}
	tbl, skipped, err := domain.ParseTable(bytes.NewReader(data))
	if err != nil {
		r.logger.Warn("weather dataset unparsable", "file", weatherDataset.file, "error", err)
		return domain.Table{}, r.failed(weatherDataset, now)
	}
	r.noteSkipped(weatherDataset, skipped)

	// Provenance reflects load success; filters never downgrade it.
	info := domain.DatasetSource(weatherDataset.file, now, len(tbl.Rows))

	if daysBack <= 0 {
		daysBack = DefaultWeatherLookbackDays
	}
	window := domain.DateRange{Start: now.AddDate(0, 0, -daysBack), End: now}
	tbl = tbl.Filter(func(row domain.Row) bool {
		date, ok := row.Date()
		return ok && window.Contains(date) && domain.MatchesLocation(row.Location(), locationFilter)
	})

	info.RecordCount = len(tbl.Rows)
	r.noteSuccess(weatherDataset, info.RecordCount)
	return tbl, info
}

// LoadSensor resolves the field-sensor dataset. window is an optional
// inclusive date range; nil disables date filtering. Malformed records are
// skipped, not fatal.
func (r *Resolver) LoadSensor(locationFilter string, window *domain.DateRange) ([]domain.SensorReading, domain.SourceInfo) {
	now := r.clock.Now()

	data, ok := r.readDataset(sensorDataset)
	if !ok {
		return []domain.SensorReading{}, r.failed(sensorDataset, now)
	}
	readings, skipped, err := domain.ParseSensorReadings(data, now)
	if err != nil {
		r.logger.Warn("sensor dataset unparsable", "file", sensorDataset.file, "error", err)
		return []domain.SensorReading{}, r.failed(sensorDataset, now)
	}
	r.noteSkipped(sensorDataset, skipped)

	info := domain.DatasetSource(sensorDataset.file, now, len(readings))

	filtered := make([]domain.SensorReading, 0, len(readings))
	for _, reading := range readings {
		if window != nil && !window.Contains(reading.Date) {
			continue
		}
		if !domain.MatchesLocation(reading.Location, locationFilter) {
			continue
		}
		filtered = append(filtered, reading)
	}

	info.RecordCount = len(filtered)
	r.noteSuccess(sensorDataset, info.RecordCount)
	return filtered, info
}

// LoadResources resolves the farm resources dataset. There is no filtering;
// existence and parse success alone determine the outcome, and the record
// count is the number of top-level farm keys.
func (r *Resolver) LoadResources() (domain.ResourceMap, domain.SourceInfo) {
	now := r.clock.Now()

	data, ok := r.readDataset(resourcesDataset)
	if !ok {
		return domain.ResourceMap{}, r.failed(resourcesDataset, now)
	}
	resources, err := domain.ParseResourceMap(data)
	if err != nil {
		r.logger.Warn("resources dataset unparsable", "file", resourcesDataset.file, "error", err)
		return domain.ResourceMap{}, r.failed(resourcesDataset, now)
	}

	info := domain.DatasetSource(resourcesDataset.file, now, len(resources))
	r.noteSuccess(resourcesDataset, info.RecordCount)
	return resources, info
}

// LoadMarket resolves the market prices dataset. daysBack <= 0 selects the
// 60-day default.
func (r *Resolver) LoadMarket(daysBack int) (domain.Table, domain.SourceInfo) {
	now := r.clock.Now()

	data, ok := r.readDataset(marketDataset)
	if !ok {
		return domain.Table{}, r.failed(marketDataset, now)
	}
	tbl, skipped, err := domain.ParseTable(bytes.NewReader(data))
	if err != nil {
		r.logger.Warn("market dataset unparsable", "file", marketDataset.file, "error", err)
		return domain.Table{}, r.failed(marketDataset, now)
	}
	r.noteSkipped(marketDataset, skipped)

	info := domain.DatasetSource(marketDataset.file, now, len(tbl.Rows))

	if daysBack <= 0 {
		daysBack = DefaultMarketLookbackDays
	}
	window := domain.DateRange{Start: now.AddDate(0, 0, -daysBack), End: now}
	tbl = tbl.Filter(func(row domain.Row) bool {
		date, ok := row.Date()
		return ok && window.Contains(date)
	})

	info.RecordCount = len(tbl.Rows)
	r.noteSuccess(marketDataset, info.RecordCount)
	return tbl, info
}

// DatasetSummary reports, per domain label, whether the backing file exists
// ("Cached") or not ("Missing"). It also refreshes the dataset_present
// gauges.
func (r *Resolver) DatasetSummary() map[string]string {
	summary := make(map[string]string, len(datasets))
	for _, ds := range datasets {
		status := "Missing"
		present := 0.0
		if _, err := os.Stat(filepath.Join(r.datasetDir, ds.file)); err == nil {
			status = "Cached"
			present = 1
		}
		summary[ds.label] = status
		r.metrics.DatasetPresent.WithLabelValues(ds.name).Set(present)
	}
	return summary
}

// readDataset fetches the raw bytes for a domain, reporting ok=false when
// the tabular capability is off or the file cannot be read. Both conditions
// take the same degraded path.
func (r *Resolver) readDataset(ds dataset) ([]byte, bool) {
	if ds.tabular && !r.tabular {
		r.logger.Debug("tabular capability disabled", "domain", ds.name)
		return nil, false
	}
	data, err := os.ReadFile(filepath.Join(r.datasetDir, ds.file))
	if err != nil {
		r.logger.Debug("dataset unavailable", "domain", ds.name, "file", ds.file, "error", err)
		return nil, false
	}
	return data, true
}

func (r *Resolver) failed(ds dataset, now time.Time) domain.SourceInfo {
	r.metrics.ResolutionsTotal.WithLabelValues(ds.name, "error").Inc()
	return domain.ErrorSource(ds.file, now)
}

func (r *Resolver) noteSuccess(ds dataset, count int) {
	r.metrics.ResolutionsTotal.WithLabelValues(ds.name, "success").Inc()
	r.metrics.RecordsReturned.WithLabelValues(ds.name).Observe(float64(count))
}

func (r *Resolver) noteSkipped(ds dataset, skipped int) {
	if skipped == 0 {
		return
	}
	r.metrics.RecordsSkipped.WithLabelValues(ds.name).Add(float64(skipped))
	r.logger.Warn("skipped malformed records", "domain", ds.name, "file", ds.file, "count", skipped)
}
