// Command checkdata performs a one-shot integrity check of a dataset
// directory. It resolves all four telemetry domains unfiltered and prints
// each domain's provenance, exiting non-zero if any primary dataset failed
// to load.
//
// Usage:
//
//	go run ./cmd/checkdata -dataset-dir ./datasets
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/harvestline/agrodata/internal/domain"
	"github.com/harvestline/agrodata/internal/observability"
	"github.com/harvestline/agrodata/internal/resolver"
)

func main() {
	datasetDir := flag.String("dataset-dir", "datasets", "directory containing the telemetry dataset files")
	noTabular := flag.Bool("no-tabular", false, "disable the tabular capability, as on deployments without CSV support")
	flag.Parse()

	logger := observability.NewLogger("warn", "text")
	res := resolver.New(resolver.Config{
		DatasetDir:     *datasetDir,
		TabularEnabled: !*noTabular,
	}, nil, logger, observability.NewMetrics())

	_, weatherInfo := res.LoadWeather("", 0)
	_, sensorInfo := res.LoadSensor("", nil)
	_, resourcesInfo := res.LoadResources()
	_, marketInfo := res.LoadMarket(0)

	results := []struct {
		domain string
		info   domain.SourceInfo
	}{
		{"weather", weatherInfo},
		{"sensor", sensorInfo},
		{"resources", resourcesInfo},
		{"market", marketInfo},
	}

	failed := 0
	for _, r := range results {
		fmt.Printf("%-10s %-8s %-40s records=%-6d confidence=%.1f\n",
			r.domain, r.info.SourceType, r.info.SourceName, r.info.RecordCount, r.info.Confidence)
		if r.info.SourceType == domain.SourceError {
			failed++
		}
	}

	for label, status := range res.DatasetSummary() {
		fmt.Printf("%-25s %s\n", label, status)
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d datasets failed to load\n", failed, len(results))
		os.Exit(1)
	}
}
